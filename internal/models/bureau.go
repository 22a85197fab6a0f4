package models

import "time"

// Bureau represents a bureau_profiles row.
// ID is the store-generated key; BureauID is the public 7-digit identifier.
type Bureau struct {
	ID                 int64     `db:"id" json:"id"`
	BureauID           string    `db:"bureau_id" json:"bureauId"`
	BureauName         string    `db:"bureau_name" json:"bureauName"`
	MobileNumber       string    `db:"mobile_number" json:"mobileNumber"`
	About              string    `db:"about" json:"about"`
	Location           string    `db:"location" json:"location"`
	Email              string    `db:"email" json:"email"`
	OwnerName          string    `db:"owner_name" json:"ownerName"`
	PaymentStatus      *string   `db:"payment_status" json:"paymentStatus"`
	DistributorID      string    `db:"distributor_id" json:"distributorId"`
	PasswordHash       string    `db:"password" json:"-"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
	WelcomeImageBanner *string   `db:"welcome_image_banner" json:"welcomeImageBanner"`
}

// BureauRegistration carries the fields accepted by bureau creation
type BureauRegistration struct {
	BureauName    string `json:"bureauName" validate:"required"`
	MobileNumber  string `json:"mobileNumber" validate:"required"`
	About         string `json:"about" validate:"required"`
	Location      string `json:"location" validate:"required"`
	Email         string `json:"email" validate:"required"`
	OwnerName     string `json:"ownerName" validate:"required"`
	DistributorID string `json:"distributorId" validate:"required"`
	Password      string `json:"password" validate:"required"`
	PaymentStatus *string
	Documents     []string
}

// BureauDocument links an uploaded file to a bureau's store-generated key
type BureauDocument struct {
	ID       int64  `db:"id" json:"id"`
	BureauID int64  `db:"bureau_id" json:"bureauId"`
	FilePath string `db:"file_path" json:"filePath"`
}

// BureauUpdate is a sparse update: a nil field is left untouched
type BureauUpdate struct {
	BureauName   *string
	MobileNumber *string
	About        *string
	Location     *string
}

// IsEmpty reports whether the update names no field
func (u BureauUpdate) IsEmpty() bool {
	return u.BureauName == nil && u.MobileNumber == nil && u.About == nil && u.Location == nil
}
