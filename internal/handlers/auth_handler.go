package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bureaunet/directory-backend/internal/models"
	"github.com/bureaunet/directory-backend/internal/services"
)

// AuthHandler handles the three login endpoints
type AuthHandler struct {
	auth   *services.AuthService
	logger *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *services.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// LoginResponse is returned by a successful login. ID is the distributor's
// numeric id or the bureau's public bureau id; admins get no id.
type LoginResponse struct {
	Message string      `json:"message"`
	ID      interface{} `json:"id,omitempty"`
}

func (h *AuthHandler) bindLogin(c *gin.Context) (models.LoginRequest, bool) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "Invalid request body.")
		return req, false
	}
	return req, true
}

// AdminLogin handles POST /api/admin/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	req, ok := h.bindLogin(c)
	if !ok {
		return
	}

	if _, err := h.auth.LoginAdmin(c.Request.Context(), req.Email, req.Password, clientInfo(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Message: "Login successful"})
}

// DistributorLogin handles POST /api/distributor/login
func (h *AuthHandler) DistributorLogin(c *gin.Context) {
	req, ok := h.bindLogin(c)
	if !ok {
		return
	}

	distributor, err := h.auth.LoginDistributor(c.Request.Context(), req.Email, req.Password, clientInfo(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Message: "Login successful", ID: distributor.ID})
}

// BureauLogin handles POST /api/bureaulogin
func (h *AuthHandler) BureauLogin(c *gin.Context) {
	req, ok := h.bindLogin(c)
	if !ok {
		return
	}

	bureau, err := h.auth.LoginBureau(c.Request.Context(), req.Email, req.Password, clientInfo(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Message: "Login successful", ID: bureau.BureauID})
}
