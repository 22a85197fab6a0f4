package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bureaunet/directory-backend/internal/models"
	"github.com/bureaunet/directory-backend/internal/services"
)

// RegistrationHandler handles distributor and bureau creation
type RegistrationHandler struct {
	registrations *services.RegistrationService
	uploads       *Uploader
	logger        *logrus.Logger
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(registrations *services.RegistrationService, uploads *Uploader, logger *logrus.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		registrations: registrations,
		uploads:       uploads,
		logger:        logger,
	}
}

// CreateDistributorRequest holds the form fields of POST /api/distributor/create
type CreateDistributorRequest struct {
	FullName      string `form:"fullName" json:"fullName"`
	Email         string `form:"email" json:"email"`
	MobileNumber  string `form:"mobileNumber" json:"mobileNumber"`
	Password      string `form:"password" json:"password"`
	CreatedAt     string `form:"createdAt" json:"createdAt"`
	Location      string `form:"location" json:"location"`
	PaymentStatus string `form:"paymentStatus" json:"paymentStatus"`
	CompanyName   string `form:"companyName" json:"companyName"`
}

// CreateBureauRequest holds the form fields of POST /api/bureau/create
type CreateBureauRequest struct {
	BureauName    string     `form:"bureauName" json:"bureauName"`
	MobileNumber  string     `form:"mobileNumber" json:"mobileNumber"`
	About         string     `form:"about" json:"about"`
	Location      string     `form:"location" json:"location"`
	Email         string     `form:"email" json:"email"`
	OwnerName     string     `form:"ownerName" json:"ownerName"`
	PaymentStatus string     `form:"paymentStatus" json:"paymentStatus"`
	DistributorID FlexibleID `form:"distributorId" json:"distributorId"`
	Password      string     `form:"password" json:"password"`
}

// CreateBureauResponse is returned after a bureau is created
type CreateBureauResponse struct {
	Message  string `json:"message"`
	BureauID string `json:"bureauId"`
}

// parseCreatedAt accepts RFC 3339 timestamps and plain dates
func parseCreatedAt(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, &services.ValidationError{Message: "createdAt must be an RFC 3339 timestamp or a YYYY-MM-DD date.", Fields: []string{"createdAt"}}
	}
	return &t, nil
}

// CreateDistributor handles POST /api/distributor/create
func (h *RegistrationHandler) CreateDistributor(c *gin.Context) {
	documents, err := h.uploads.SaveDocuments(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req CreateDistributorRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "Invalid request body.")
		return
	}

	createdAt, err := parseCreatedAt(req.CreatedAt)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	_, err = h.registrations.CreateDistributor(c.Request.Context(), models.DistributorRegistration{
		FullName:      req.FullName,
		Email:         req.Email,
		MobileNumber:  req.MobileNumber,
		Password:      req.Password,
		CompanyName:   req.CompanyName,
		CreatedAt:     createdAt,
		Location:      optional(req.Location),
		PaymentStatus: optional(req.PaymentStatus),
		Documents:     documents,
	}, clientInfo(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, MessageResponse{Message: "Distributor created successfully"})
}

// CreateBureau handles POST /api/bureau/create
func (h *RegistrationHandler) CreateBureau(c *gin.Context) {
	documents, err := h.uploads.SaveDocuments(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req CreateBureauRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "Invalid request body.")
		return
	}

	bureau, err := h.registrations.CreateBureau(c.Request.Context(), models.BureauRegistration{
		BureauName:    req.BureauName,
		MobileNumber:  req.MobileNumber,
		About:         req.About,
		Location:      req.Location,
		Email:         req.Email,
		OwnerName:     req.OwnerName,
		DistributorID: string(req.DistributorID),
		Password:      req.Password,
		PaymentStatus: optional(req.PaymentStatus),
		Documents:     documents,
	}, clientInfo(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, CreateBureauResponse{
		Message:  "Bureau created successfully",
		BureauID: bureau.BureauID,
	})
}
