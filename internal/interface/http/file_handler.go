package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookshare/internal/domain/storage"
	"github.com/oksasatya/bookshare/pkg/response"
)

// publicPrefixes lists the object folders served without authentication.
var publicPrefixes = []string{"covers/"}

// FileHandler serves cover images straight from the object store for
// drivers without a public endpoint of their own.
type FileHandler struct {
	Store  storage.ObjectStore
	Logger *logrus.Logger
}

func NewFileHandler(store storage.ObjectStore, logger *logrus.Logger) *FileHandler {
	return &FileHandler{Store: store, Logger: logger}
}

func isPublicKey(key string) bool {
	if strings.Contains(key, "..") {
		return false
	}
	for _, p := range publicPrefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

func (h *FileHandler) Serve(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if !isPublicKey(key) {
		response.Error(c, http.StatusNotFound, "file not found", nil)
		return
	}
	obj, err := h.Store.Open(c.Request.Context(), key)
	if errors.Is(err, storage.ErrNotFound) {
		response.Error(c, http.StatusNotFound, "file not found", nil)
		return
	}
	if err != nil {
		h.Logger.WithError(err).WithField("key", key).Error("failed to open object")
		response.Error(c, http.StatusInternalServerError, "failed to read file", nil)
		return
	}
	defer func() { _ = obj.Body.Close() }()
	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj.Body, nil)
}
