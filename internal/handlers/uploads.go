package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bureaunet/directory-backend/internal/metrics"
	"github.com/bureaunet/directory-backend/internal/services"
	"github.com/bureaunet/directory-backend/pkg/storage"
)

const (
	// MaxDocuments is the number of files accepted in one registration
	MaxDocuments = 10

	documentsField = "documents"
	imageField     = "image"
)

// Uploader writes multipart files to the upload store. Files are written as
// soon as they are received and are not removed if the request later fails.
type Uploader struct {
	store  storage.Store
	logger *logrus.Logger
}

// NewUploader creates a new uploader
func NewUploader(store storage.Store, logger *logrus.Logger) *Uploader {
	return &Uploader{store: store, logger: logger}
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// SaveDocuments stores every file of the "documents" field and returns their public paths
func (u *Uploader) SaveDocuments(c *gin.Context) ([]string, error) {
	if !isMultipart(c) {
		return nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, &services.ValidationError{Message: "Invalid multipart form."}
	}

	files := form.File[documentsField]
	if len(files) > MaxDocuments {
		return nil, &services.ValidationError{Message: "A maximum of 10 documents can be uploaded."}
	}

	paths := make([]string, 0, len(files))
	for _, file := range files {
		path, err := u.save(c, storage.Documents, file)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// SaveImage stores the single "image" file into category. It returns an empty
// path when the request carries no image.
func (u *Uploader) SaveImage(c *gin.Context, category storage.Category) (string, error) {
	file, err := c.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", &services.ValidationError{Message: "Invalid multipart form."}
	}

	return u.save(c, category, file)
}

func (u *Uploader) save(c *gin.Context, category storage.Category, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", &services.StoreError{Op: "open upload", Err: err}
	}
	defer src.Close()

	path, err := u.store.Save(c.Request.Context(), category, file.Filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		u.logger.WithError(err).WithFields(logrus.Fields{
			"category": category,
			"filename": file.Filename,
		}).Error("Failed to store upload")
		return "", &services.StoreError{Op: "store upload", Err: err}
	}

	metrics.UploadedFilesTotal.WithLabelValues(string(category)).Inc()
	u.logger.WithFields(logrus.Fields{
		"category": category,
		"path":     path,
		"size":     file.Size,
	}).Debug("Upload stored")

	return path, nil
}
