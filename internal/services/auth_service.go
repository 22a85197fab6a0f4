package services

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/bureaunet/directory-backend/internal/metrics"
	"github.com/bureaunet/directory-backend/internal/models"
)

// AuthService verifies admin, distributor and bureau credentials.
// There are no sessions or tokens; a successful login only identifies the account.
type AuthService struct {
	admins       AdminStore
	distributors DistributorStore
	bureaus      BureauStore
	hasher       Hasher
	audit        Auditor
	logger       *logrus.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	admins AdminStore,
	distributors DistributorStore,
	bureaus BureauStore,
	hasher Hasher,
	audit Auditor,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		admins:       admins,
		distributors: distributors,
		bureaus:      bureaus,
		hasher:       hasher,
		audit:        auditorOrNop(audit),
		logger:       logger,
	}
}

// LoginAdmin verifies an admin account
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string, client ClientInfo) (*models.Admin, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return nil, s.loginFailed(ctx, "admin", email, client, storeError("get admin", err))
	}
	if admin == nil {
		return nil, s.loginFailed(ctx, "admin", email, client, ErrAdminNotFound)
	}
	if !s.hasher.Verify(password, admin.PasswordHash) {
		return nil, s.loginFailed(ctx, "admin", email, client, ErrInvalidPassword)
	}

	s.loginSucceeded(ctx, "admin", strconv.FormatInt(admin.ID, 10), email, client)
	return admin, nil
}

// LoginDistributor verifies a distributor account
func (s *AuthService) LoginDistributor(ctx context.Context, email, password string, client ClientInfo) (*models.Distributor, error) {
	distributor, err := s.distributors.GetByEmail(ctx, email)
	if err != nil {
		return nil, s.loginFailed(ctx, "distributor", email, client, storeError("get distributor", err))
	}
	if distributor == nil {
		return nil, s.loginFailed(ctx, "distributor", email, client, ErrDistributorNotFound)
	}
	if !s.hasher.Verify(password, distributor.PasswordHash) {
		return nil, s.loginFailed(ctx, "distributor", email, client, ErrInvalidPassword)
	}

	s.loginSucceeded(ctx, "distributor", strconv.FormatInt(distributor.ID, 10), email, client)
	return distributor, nil
}

// LoginBureau verifies a bureau account
func (s *AuthService) LoginBureau(ctx context.Context, email, password string, client ClientInfo) (*models.Bureau, error) {
	bureau, err := s.bureaus.GetByEmail(ctx, email)
	if err != nil {
		return nil, s.loginFailed(ctx, "bureau", email, client, storeError("get bureau", err))
	}
	if bureau == nil {
		return nil, s.loginFailed(ctx, "bureau", email, client, ErrBureauAccountNotFound)
	}
	if !s.hasher.Verify(password, bureau.PasswordHash) {
		return nil, s.loginFailed(ctx, "bureau", email, client, ErrInvalidPassword)
	}

	s.loginSucceeded(ctx, "bureau", bureau.BureauID, email, client)
	return bureau, nil
}

func (s *AuthService) loginSucceeded(ctx context.Context, kind, entityID, email string, client ClientInfo) {
	metrics.LoginAttemptsTotal.WithLabelValues(kind, metrics.OutcomeSuccess).Inc()
	s.audit.Record(ctx, AuditEvent{
		Action:     "login_success",
		EntityType: kind,
		EntityID:   entityID,
		Client:     client,
		Details:    map[string]interface{}{"email": email},
	})
}

func (s *AuthService) loginFailed(ctx context.Context, kind, email string, client ClientInfo, err error) error {
	outcome := metrics.OutcomeFailure
	reason := err.Error()

	switch e := err.(type) {
	case *StoreError:
		s.logger.WithError(e.Err).WithFields(logrus.Fields{
			"kind": kind,
			"op":   e.Op,
		}).Error("Login lookup failed")
	case *NotFoundError:
		outcome = "unknown_account"
	case *AuthError:
		outcome = "invalid_password"
	}

	metrics.LoginAttemptsTotal.WithLabelValues(kind, outcome).Inc()
	s.audit.Record(ctx, AuditEvent{
		Action:     "login_failed",
		EntityType: kind,
		Client:     client,
		Details:    map[string]interface{}{"email": email, "reason": reason},
	})

	return err
}
