package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bureaunet/directory-backend/pkg/storage"
)

// FileHandler serves stored uploads under their public paths
type FileHandler struct {
	store  storage.Store
	logger *logrus.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(store storage.Store, logger *logrus.Logger) *FileHandler {
	return &FileHandler{store: store, logger: logger}
}

// Serve returns the handler for GET /<category>/*filepath
func (h *FileHandler) Serve(category storage.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimPrefix(c.Param("filepath"), "/")

		obj, err := h.store.Open(c.Request.Context(), category, name)
		if errors.Is(err, storage.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		if err != nil {
			h.logger.WithError(err).WithField("path", c.Request.URL.Path).Error("Failed to open stored file")
			c.Status(http.StatusInternalServerError)
			return
		}
		defer obj.Close()

		c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj, nil)
	}
}
