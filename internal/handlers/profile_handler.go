package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bureaunet/directory-backend/internal/models"
	"github.com/bureaunet/directory-backend/internal/services"
)

// ProfileHandler serves account listings and bureau profile updates
type ProfileHandler struct {
	profiles *services.ProfileService
	logger   *logrus.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles *services.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

// ListAdmins handles GET /api/admin
func (h *ProfileHandler) ListAdmins(c *gin.Context) {
	admins, err := h.profiles.ListAdmins(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, admins)
}

// ListDistributors handles GET /api/distributors
func (h *ProfileHandler) ListDistributors(c *gin.Context) {
	distributors, err := h.profiles.ListDistributors(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"distributors": distributors})
}

// ListBureaus handles GET /api/bureau_profiles
func (h *ProfileHandler) ListBureaus(c *gin.Context) {
	bureaus, err := h.profiles.ListBureaus(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bureauProfiles": bureaus})
}

// ListBureausByDistributor handles GET /api/bureau_profiles_distributer?distributorId=
func (h *ProfileHandler) ListBureausByDistributor(c *gin.Context) {
	bureaus, err := h.profiles.ListBureausByDistributor(c.Request.Context(), c.Query("distributorId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bureauProfiles": bureaus})
}

// ListBureausByBureauID handles GET /api/bureau_profiles_bureauId?bureauId=
func (h *ProfileHandler) ListBureausByBureauID(c *gin.Context) {
	bureaus, err := h.profiles.ListBureausByBureauID(c.Request.Context(), c.Query("bureauId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bureauProfiles": bureaus})
}

// FlexibleID accepts an identifier sent either as a JSON string or a JSON number
type FlexibleID string

// UnmarshalJSON implements json.Unmarshaler
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = FlexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = FlexibleID(n.String())
	return nil
}

// UpdateBureauRequest is the body of PUT /api/bureau/update.
// An absent or empty field is left unchanged.
type UpdateBureauRequest struct {
	BureauID     FlexibleID `json:"bureauId" form:"bureauId"`
	BureauName   string     `json:"bureauName" form:"bureauName"`
	MobileNumber string     `json:"mobileNumber" form:"mobileNumber"`
	About        string     `json:"about" form:"about"`
	Location     string     `json:"location" form:"location"`
}

// UpdateBureau handles PUT /api/bureau/update
func (h *ProfileHandler) UpdateBureau(c *gin.Context) {
	var req UpdateBureauRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "Invalid request body.")
		return
	}

	update := models.BureauUpdate{
		BureauName:   optional(req.BureauName),
		MobileNumber: optional(req.MobileNumber),
		About:        optional(req.About),
		Location:     optional(req.Location),
	}

	bureauID := strings.TrimSpace(string(req.BureauID))
	if err := h.profiles.UpdateBureau(c.Request.Context(), bureauID, update); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Bureau updated successfully"})
}
