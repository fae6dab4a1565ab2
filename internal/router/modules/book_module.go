package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/bookshare/internal/interface/http"
)

// BookModule routes the catalog.
// Public: GET /books, GET /books/search, GET /books/:id
// Protected: POST /upload-book, DELETE /books/:id, GET /download-book/:id
type BookModule struct {
	Handler *handlers.BookHandler
	Auth    gin.HandlerFunc
}

func NewBookModule(h *handlers.BookHandler, auth gin.HandlerFunc) *BookModule {
	return &BookModule{Handler: h, Auth: auth}
}

func (m *BookModule) Name() string { return "books" }

func (m *BookModule) Register(rg *gin.RouterGroup) {
	rg.GET("/books", m.Handler.List)
	rg.GET("/books/search", m.Handler.Search)
	rg.GET("/books/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(m.Auth)
	{
		auth.POST("/upload-book", m.Handler.Upload)
		auth.DELETE("/books/:id", m.Handler.Delete)
		auth.GET("/download-book/:id", m.Handler.Download)
		auth.GET("/download-book", m.Handler.DownloadByQuery)
	}
}
