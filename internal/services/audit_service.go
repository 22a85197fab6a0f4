package services

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/bureaunet/directory-backend/internal/database"
	"github.com/bureaunet/directory-backend/internal/utils"
)

// AuditEvent is one row of the audit trail
type AuditEvent struct {
	Action     string // e.g. "login_success", "registration"
	EntityType string // admin, distributor, bureau
	EntityID   string // empty before an account is identified
	Client     ClientInfo
	Details    map[string]interface{}
}

// Auditor records security relevant events. Recording never fails the caller.
type Auditor interface {
	Record(ctx context.Context, event AuditEvent)
}

type nopAuditor struct{}

func (nopAuditor) Record(context.Context, AuditEvent) {}

func auditorOrNop(a Auditor) Auditor {
	if a == nil {
		return nopAuditor{}
	}
	return a
}

// AuditService writes audit events to the audit_logs table
type AuditService struct {
	db     database.DB
	logger *logrus.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(db database.DB, logger *logrus.Logger) *AuditService {
	return &AuditService{
		db:     db,
		logger: logger,
	}
}

// Record inserts the event; failures are logged and dropped
func (s *AuditService) Record(ctx context.Context, event AuditEvent) {
	details := event.Details
	if details == nil {
		details = map[string]interface{}{}
	}
	details["device_info"] = utils.ParseUserAgent(event.Client.UserAgent)

	payload, err := json.Marshal(details)
	if err != nil {
		s.logger.WithError(err).WithField("action", event.Action).Warn("Failed to encode audit details")
		payload = []byte("{}")
	}

	var entityID interface{}
	if event.EntityID != "" {
		entityID = event.EntityID
	}

	query := `
		INSERT INTO audit_logs (action, entity_type, entity_id, ip_address, user_agent, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, NOW())
	`

	_, err = s.db.ExecContext(ctx, query,
		event.Action,
		event.EntityType,
		entityID,
		event.Client.IPAddress,
		event.Client.UserAgent,
		string(payload),
	)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"action":      event.Action,
			"entity_type": event.EntityType,
		}).Warn("Failed to write audit event")
	}
}
