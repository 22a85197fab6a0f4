package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/bureaunet/directory-backend/internal/database"
	"github.com/bureaunet/directory-backend/internal/models"
)

// Collection names a per-bureau image table
type Collection string

const (
	SliderCollection  Collection = "slider"
	GalleryCollection Collection = "gallery"
)

// ImageService manages the welcome banner and the slider and gallery images of bureaus.
// Deletes go by image id alone; ownership is not checked.
type ImageService struct {
	bureaus     BureauStore
	collections map[Collection]ImageStore
	logger      *logrus.Logger
}

// NewImageService creates a new image service
func NewImageService(bureaus BureauStore, sliders, gallery ImageStore, logger *logrus.Logger) *ImageService {
	return &ImageService{
		bureaus: bureaus,
		collections: map[Collection]ImageStore{
			SliderCollection:  sliders,
			GalleryCollection: gallery,
		},
		logger: logger,
	}
}

// SetWelcomeBanner points the bureau's welcome banner at an uploaded image
func (s *ImageService) SetWelcomeBanner(ctx context.Context, bureauID, imageURL string) error {
	if bureauID == "" || imageURL == "" {
		return errMissingImageUpload()
	}

	err := s.bureaus.UpdateWelcomeBanner(ctx, bureauID, imageURL)
	if errors.Is(err, database.ErrNotFound) {
		return ErrBureauNotFound
	}
	if err != nil {
		return s.storeFailed(storeError("update welcome banner", err))
	}

	s.logger.WithFields(logrus.Fields{
		"bureau_id": bureauID,
		"image_url": imageURL,
	}).Info("Welcome banner updated")
	return nil
}

// AddImage inserts one image into a collection
func (s *ImageService) AddImage(ctx context.Context, collection Collection, bureauID, imageURL string) error {
	if bureauID == "" || imageURL == "" {
		return errMissingImageUpload()
	}

	store, err := s.collection(collection)
	if err != nil {
		return err
	}

	err = store.Add(ctx, bureauID, imageURL)
	if errors.Is(err, database.ErrNotFound) {
		return ErrImageTargetNotFound
	}
	if err != nil {
		return s.storeFailed(storeError("insert into "+store.Table(), err))
	}

	s.logger.WithFields(logrus.Fields{
		"bureau_id":  bureauID,
		"collection": collection,
		"image_url":  imageURL,
	}).Info("Image added")
	return nil
}

// ListImages returns the images of one bureau; an empty collection is reported as not found
func (s *ImageService) ListImages(ctx context.Context, collection Collection, bureauID string) ([]models.Image, error) {
	if bureauID == "" {
		return nil, &ValidationError{Message: "Please provide bureauId."}
	}

	store, err := s.collection(collection)
	if err != nil {
		return nil, err
	}

	images, err := store.ListByBureau(ctx, bureauID)
	if err != nil {
		return nil, s.storeFailed(storeError("list "+store.Table(), err))
	}
	if len(images) == 0 {
		return nil, ErrNoImages
	}

	return images, nil
}

// DeleteImage removes one image by its id
func (s *ImageService) DeleteImage(ctx context.Context, collection Collection, imageID int64) error {
	store, err := s.collection(collection)
	if err != nil {
		return err
	}

	err = store.Delete(ctx, imageID)
	if errors.Is(err, database.ErrNotFound) {
		return ErrImageNotFound
	}
	if err != nil {
		return s.storeFailed(storeError("delete from "+store.Table(), err))
	}

	s.logger.WithFields(logrus.Fields{
		"collection": collection,
		"image_id":   imageID,
	}).Info("Image deleted")
	return nil
}

func (s *ImageService) collection(c Collection) (ImageStore, error) {
	store, ok := s.collections[c]
	if !ok || store == nil {
		return nil, fmt.Errorf("unknown image collection %q", c)
	}
	return store, nil
}

func (s *ImageService) storeFailed(err *StoreError) error {
	s.logger.WithError(err.Err).WithField("op", err.Op).Error("Database operation failed")
	return err
}

func errMissingImageUpload() error {
	return &ValidationError{Message: "Please provide bureauId and an image to upload."}
}
