package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bureaunet/directory-backend/internal/services"
	"github.com/bureaunet/directory-backend/pkg/storage"
)

// ImageHandler handles the welcome banner and the slider and gallery collections
type ImageHandler struct {
	images  *services.ImageService
	uploads *Uploader
	logger  *logrus.Logger
}

// NewImageHandler creates a new image handler
func NewImageHandler(images *services.ImageService, uploads *Uploader, logger *logrus.Logger) *ImageHandler {
	return &ImageHandler{images: images, uploads: uploads, logger: logger}
}

// ImageUploadResponse is returned after an image upload
type ImageUploadResponse struct {
	Message  string `json:"message"`
	ImageURL string `json:"imageUrl"`
}

// UploadBanner handles PUT /api/bureau/uploadBanner
func (h *ImageHandler) UploadBanner(c *gin.Context) {
	imageURL, err := h.uploads.SaveImage(c, storage.HomeBanners)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.images.SetWelcomeBanner(c.Request.Context(), c.PostForm("bureauId"), imageURL); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, ImageUploadResponse{Message: "Image uploaded successfully", ImageURL: imageURL})
}

// AddSliderImage handles POST /api/bureau/slider
func (h *ImageHandler) AddSliderImage(c *gin.Context) {
	h.addImage(c, services.SliderCollection, storage.SliderImages,
		"Image uploaded and inserted into slider_images table successfully.")
}

// AddGalleryImage handles POST /api/gallery/upload
func (h *ImageHandler) AddGalleryImage(c *gin.Context) {
	h.addImage(c, services.GalleryCollection, storage.GalleryImages,
		"Image uploaded and inserted into gallery_images table successfully.")
}

func (h *ImageHandler) addImage(c *gin.Context, collection services.Collection, category storage.Category, message string) {
	imageURL, err := h.uploads.SaveImage(c, category)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.images.AddImage(c.Request.Context(), collection, c.PostForm("bureauId"), imageURL); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, ImageUploadResponse{Message: message, ImageURL: imageURL})
}

// ListSliderImages handles GET /api/bureau/getBannerImages?bureauId=
func (h *ImageHandler) ListSliderImages(c *gin.Context) {
	images, err := h.images.ListImages(c.Request.Context(), services.SliderCollection, c.Query("bureauId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Banner images fetched successfully.",
		"bannerImages": images,
	})
}

// ListGalleryImages handles GET /api/gallery/getImages?bureauId=
func (h *ImageHandler) ListGalleryImages(c *gin.Context) {
	images, err := h.images.ListImages(c.Request.Context(), services.GalleryCollection, c.Query("bureauId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Gallery images fetched successfully.",
		"galleryImages": images,
	})
}

// DeleteSliderImage handles DELETE /api/deleteBannerImage/:imageId
func (h *ImageHandler) DeleteSliderImage(c *gin.Context) {
	h.deleteImage(c, services.SliderCollection)
}

// DeleteGalleryImage handles DELETE /api/deleteGalleryImage/:imageId
func (h *ImageHandler) DeleteGalleryImage(c *gin.Context) {
	h.deleteImage(c, services.GalleryCollection)
}

func (h *ImageHandler) deleteImage(c *gin.Context, collection services.Collection) {
	imageID, err := strconv.ParseInt(c.Param("imageId"), 10, 64)
	if err != nil || imageID <= 0 {
		badRequest(c, "Please provide imageId.")
		return
	}

	if err := h.images.DeleteImage(c.Request.Context(), collection, imageID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Image deleted successfully."})
}
