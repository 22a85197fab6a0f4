package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bureaunet/directory-backend/internal/services"
	"github.com/bureaunet/directory-backend/internal/utils"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// MessageResponse is the body of requests that only report an outcome
type MessageResponse struct {
	Message string `json:"message"`
}

const msgServerError = "Server error. Please try again later."

// respondError translates a service error into the matching status and body
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	var (
		validationErr *services.ValidationError
		conflictErr   *services.ConflictError
		notFoundErr   *services.NotFoundError
		authErr       *services.AuthError
		storeErr      *services.StoreError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: validationErr.Message,
			Fields:  validationErr.Fields,
		})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "conflict", Message: conflictErr.Message})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Message: notFoundErr.Message})
	case errors.As(err, &authErr):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: authErr.Message})
	case errors.As(err, &storeErr):
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "server_error", Message: storeErr.PublicMessage()})
	default:
		logger.WithError(err).WithField("path", c.FullPath()).Error("Unhandled request error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "server_error", Message: msgServerError})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: message})
}

func clientInfo(c *gin.Context) services.ClientInfo {
	return services.ClientInfo{
		IPAddress: utils.ClientIP(c),
		UserAgent: utils.UserAgent(c),
	}
}

// optional maps an empty form value to "not provided"
func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
