package services

import (
	"context"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bureaunet/directory-backend/internal/metrics"
	"github.com/bureaunet/directory-backend/internal/models"
	"github.com/bureaunet/directory-backend/pkg/validator"
)

// RegistrationService creates distributor and bureau accounts and links
// their uploaded documents.
//
// Each step commits on its own. The duplicate check and the insert are not
// atomic, so two concurrent registrations with the same email can both succeed.
// Document rows are written after the parent row; a failed document insert is
// logged and counted but does not fail the registration.
type RegistrationService struct {
	distributors DistributorStore
	bureaus      BureauStore
	hasher       Hasher
	ids          *BureauIDGenerator
	validate     *validator.Validator
	audit        Auditor
	logger       *logrus.Logger
	now          func() time.Time
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	distributors DistributorStore,
	bureaus BureauStore,
	hasher Hasher,
	ids *BureauIDGenerator,
	audit Auditor,
	logger *logrus.Logger,
) *RegistrationService {
	return &RegistrationService{
		distributors: distributors,
		bureaus:      bureaus,
		hasher:       hasher,
		ids:          ids,
		validate:     validator.New(),
		audit:        auditorOrNop(audit),
		logger:       logger,
		now:          time.Now,
	}
}

// CreateDistributor registers a distributor and returns the stored profile
func (s *RegistrationService) CreateDistributor(ctx context.Context, req models.DistributorRegistration, client ClientInfo) (*models.Distributor, error) {
	const kind = "distributor"

	if missing := s.validate.MissingFields(req); len(missing) > 0 {
		metrics.RegistrationsTotal.WithLabelValues(kind, metrics.OutcomeInvalid).Inc()
		return nil, &ValidationError{Message: msgMissingFields, Fields: missing}
	}

	exists, err := s.distributors.ExistsByEmailOrMobile(ctx, req.Email, req.MobileNumber)
	if err != nil {
		return nil, s.fail(kind, storeError("check existing distributor", err))
	}
	if exists {
		metrics.RegistrationsTotal.WithLabelValues(kind, metrics.OutcomeConflict).Inc()
		return nil, ErrDistributorExists
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, s.fail(kind, storeError("hash distributor password", err))
	}

	createdAt := s.now()
	if req.CreatedAt != nil {
		createdAt = *req.CreatedAt
	}

	distributor := &models.Distributor{
		FullName:      req.FullName,
		Email:         req.Email,
		MobileNumber:  req.MobileNumber,
		PasswordHash:  passwordHash,
		CreatedAt:     createdAt,
		Location:      req.Location,
		PaymentStatus: req.PaymentStatus,
		CompanyName:   req.CompanyName,
	}

	id, err := s.distributors.Create(ctx, distributor)
	if err != nil {
		return nil, s.fail(kind, storeError("insert distributor", err))
	}

	for _, path := range req.Documents {
		if err := s.distributors.AddDocument(ctx, id, path); err != nil {
			s.documentLinkFailed(kind, strconv.FormatInt(id, 10), path, err)
		}
	}

	metrics.RegistrationsTotal.WithLabelValues(kind, metrics.OutcomeSuccess).Inc()
	s.logger.WithFields(logrus.Fields{
		"distributor_id": id,
		"documents":      len(req.Documents),
	}).Info("Distributor registered")

	s.audit.Record(ctx, AuditEvent{
		Action:     "registration",
		EntityType: kind,
		EntityID:   strconv.FormatInt(id, 10),
		Client:     client,
		Details:    map[string]interface{}{"email": req.Email, "documents": len(req.Documents)},
	})

	return distributor, nil
}

// CreateBureau registers a bureau under a fresh public bureau id and returns the stored profile
func (s *RegistrationService) CreateBureau(ctx context.Context, req models.BureauRegistration, client ClientInfo) (*models.Bureau, error) {
	const kind = "bureau"

	if missing := s.validate.MissingFields(req); len(missing) > 0 {
		metrics.RegistrationsTotal.WithLabelValues(kind, metrics.OutcomeInvalid).Inc()
		return nil, &ValidationError{Message: msgMissingFields, Fields: missing}
	}

	bureauID := s.ids.Generate()

	exists, err := s.bureaus.ExistsByEmailOrMobile(ctx, req.Email, req.MobileNumber)
	if err != nil {
		return nil, s.fail(kind, storeError("check existing bureau", err))
	}
	if exists {
		metrics.RegistrationsTotal.WithLabelValues(kind, metrics.OutcomeConflict).Inc()
		return nil, ErrBureauExists
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, s.fail(kind, &StoreError{Op: "hash bureau password", Err: err, Message: msgHashFailed})
	}

	bureau := &models.Bureau{
		BureauID:      bureauID,
		BureauName:    req.BureauName,
		MobileNumber:  req.MobileNumber,
		About:         req.About,
		Location:      req.Location,
		Email:         req.Email,
		OwnerName:     req.OwnerName,
		PaymentStatus: req.PaymentStatus,
		DistributorID: req.DistributorID,
		PasswordHash:  passwordHash,
		CreatedAt:     s.now(),
	}

	key, err := s.bureaus.Create(ctx, bureau)
	if err != nil {
		return nil, s.fail(kind, storeError("insert bureau", err))
	}

	for _, path := range req.Documents {
		if err := s.bureaus.AddDocument(ctx, key, path); err != nil {
			s.documentLinkFailed(kind, bureauID, path, err)
		}
	}

	metrics.RegistrationsTotal.WithLabelValues(kind, metrics.OutcomeSuccess).Inc()
	s.logger.WithFields(logrus.Fields{
		"bureau_id":      bureauID,
		"distributor_id": req.DistributorID,
		"documents":      len(req.Documents),
	}).Info("Bureau registered")

	s.audit.Record(ctx, AuditEvent{
		Action:     "registration",
		EntityType: kind,
		EntityID:   bureauID,
		Client:     client,
		Details:    map[string]interface{}{"email": req.Email, "distributor_id": req.DistributorID, "documents": len(req.Documents)},
	})

	return bureau, nil
}

func (s *RegistrationService) fail(kind string, err *StoreError) error {
	metrics.RegistrationsTotal.WithLabelValues(kind, metrics.OutcomeFailure).Inc()
	s.logger.WithError(err.Err).WithFields(logrus.Fields{
		"kind": kind,
		"op":   err.Op,
	}).Error("Registration failed")
	return err
}

func (s *RegistrationService) documentLinkFailed(kind, ownerID, path string, err error) {
	metrics.DocumentLinkFailuresTotal.WithLabelValues(kind).Inc()
	s.logger.WithError(err).WithFields(logrus.Fields{
		"kind":      kind,
		"owner_id":  ownerID,
		"file_path": path,
	}).Error("Failed to link uploaded document")
}
