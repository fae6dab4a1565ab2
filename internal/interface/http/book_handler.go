package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookshare/internal/application"
	"github.com/oksasatya/bookshare/internal/interface/middleware"
	"github.com/oksasatya/bookshare/pkg/apperror"
	"github.com/oksasatya/bookshare/pkg/helpers"
	"github.com/oksasatya/bookshare/pkg/response"
)

type UploadLimits struct {
	MaxBytes  int64
	MaxMemory int64
}

type BookHandler struct {
	Books     *application.BookService
	Catalog   *application.CatalogService
	Downloads *application.DownloadService
	Logger    *logrus.Logger
	Limits    UploadLimits
}

func NewBookHandler(books *application.BookService, catalog *application.CatalogService, downloads *application.DownloadService, logger *logrus.Logger, limits UploadLimits) *BookHandler {
	return &BookHandler{Books: books, Catalog: catalog, Downloads: downloads, Logger: logger, Limits: limits}
}

type uploadResponse struct {
	Message string `json:"message"`
	application.BookRecord
}

func fileUpload(fh *multipart.FileHeader) *application.FileUpload {
	return &application.FileUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func firstFile(form *multipart.Form, field string) *application.FileUpload {
	if files := form.File[field]; len(files) > 0 {
		return fileUpload(files[0])
	}
	return nil
}

func firstValue(form *multipart.Form, field string) string {
	if v := form.Value[field]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// Upload accepts multipart fields bookName, authorName, genre,
// bookDescription, pdfFile and coverImageFile.
func (h *BookHandler) Upload(c *gin.Context) {
	if h.Limits.MaxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Limits.MaxBytes)
	}
	if err := c.Request.ParseMultipartForm(h.Limits.MaxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.FromError(c, h.Logger, apperror.BadRequest("upload exceeds "+strconv.FormatInt(tooLarge.Limit, 10)+" bytes"))
			return
		}
		response.FromError(c, h.Logger, apperror.BadRequest("invalid multipart form"))
		return
	}
	form := c.Request.MultipartForm
	defer func() { _ = form.RemoveAll() }()

	in := application.BookInput{
		BookName:        firstValue(form, "bookName"),
		AuthorName:      firstValue(form, "authorName"),
		Genre:           firstValue(form, "genre"),
		BookDescription: firstValue(form, "bookDescription"),
	}
	files := application.UploadFiles{
		PDF:   firstFile(form, "pdfFile"),
		Cover: firstFile(form, "coverImageFile"),
	}

	rec, err := h.Books.Submit(c.Request.Context(), middleware.CurrentUser(c), in, files)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, uploadResponse{Message: "Book uploaded successfully!", BookRecord: *rec})
}

func (h *BookHandler) List(c *gin.Context) {
	books, err := h.Catalog.List(c.Request.Context())
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *BookHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	books, err := h.Catalog.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *BookHandler) Get(c *gin.Context) {
	rec, err := h.Catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *BookHandler) Delete(c *gin.Context) {
	if err := h.Books.Delete(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("id")); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Book deleted."})
}

// Download redirects to the file or streams it as an attachment.
func (h *BookHandler) Download(c *gin.Context) {
	target, err := h.Downloads.Resolve(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("id"), c.Query("filename"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	c.Header("Content-Disposition", helpers.AttachmentDisposition(target.Filename))
	if target.Object == nil {
		c.Redirect(http.StatusFound, target.RedirectURL)
		return
	}

	obj := target.Object
	defer func() { _ = obj.Body.Close() }()
	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj.Body, nil)
}

// DownloadByQuery serves /download-book?id=... for older clients.
func (h *BookHandler) DownloadByQuery(c *gin.Context) {
	c.Params = append(c.Params, gin.Param{Key: "id", Value: c.Query("id")})
	h.Download(c)
}
