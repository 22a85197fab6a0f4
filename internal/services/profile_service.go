package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/bureaunet/directory-backend/internal/database"
	"github.com/bureaunet/directory-backend/internal/models"
)

// ProfileService lists accounts and applies bureau profile updates
type ProfileService struct {
	admins       AdminStore
	distributors DistributorStore
	bureaus      BureauStore
	logger       *logrus.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(admins AdminStore, distributors DistributorStore, bureaus BureauStore, logger *logrus.Logger) *ProfileService {
	return &ProfileService{
		admins:       admins,
		distributors: distributors,
		bureaus:      bureaus,
		logger:       logger,
	}
}

// ListAdmins returns every admin account
func (s *ProfileService) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	admins, err := s.admins.List(ctx)
	if err != nil {
		return nil, s.storeFailed(storeError("list admins", err))
	}
	return admins, nil
}

// ListDistributors returns every distributor profile
func (s *ProfileService) ListDistributors(ctx context.Context) ([]models.Distributor, error) {
	distributors, err := s.distributors.List(ctx)
	if err != nil {
		return nil, s.storeFailed(storeError("list distributors", err))
	}
	return distributors, nil
}

// ListBureaus returns every bureau profile
func (s *ProfileService) ListBureaus(ctx context.Context) ([]models.Bureau, error) {
	bureaus, err := s.bureaus.List(ctx)
	if err != nil {
		return nil, s.storeFailed(storeError("list bureaus", err))
	}
	return bureaus, nil
}

// ListBureausByDistributor returns the bureaus of one distributor
func (s *ProfileService) ListBureausByDistributor(ctx context.Context, distributorID string) ([]models.Bureau, error) {
	if distributorID == "" {
		return nil, &ValidationError{Message: "Distributor ID is required"}
	}

	bureaus, err := s.bureaus.ListByDistributor(ctx, distributorID)
	if err != nil {
		return nil, s.storeFailed(storeError("list bureaus by distributor", err))
	}
	return bureaus, nil
}

// ListBureausByBureauID returns the bureaus carrying a public bureau id
func (s *ProfileService) ListBureausByBureauID(ctx context.Context, bureauID string) ([]models.Bureau, error) {
	if bureauID == "" {
		return nil, &ValidationError{Message: "bureauId is required"}
	}

	bureaus, err := s.bureaus.ListByBureauID(ctx, bureauID)
	if err != nil {
		return nil, s.storeFailed(storeError("list bureaus by bureau id", err))
	}
	return bureaus, nil
}

// UpdateBureau applies a sparse update; fields left nil keep their stored value
func (s *ProfileService) UpdateBureau(ctx context.Context, bureauID string, update models.BureauUpdate) error {
	if bureauID == "" || update.IsEmpty() {
		return &ValidationError{Message: "Please provide bureauId and at least one field to update."}
	}

	err := s.bureaus.Update(ctx, bureauID, update)
	if errors.Is(err, database.ErrNotFound) {
		return ErrBureauNotFound
	}
	if err != nil {
		return s.storeFailed(storeError("update bureau", err))
	}

	s.logger.WithField("bureau_id", bureauID).Info("Bureau profile updated")
	return nil
}

func (s *ProfileService) storeFailed(err *StoreError) error {
	s.logger.WithError(err.Err).WithField("op", err.Op).Error("Database operation failed")
	return err
}
