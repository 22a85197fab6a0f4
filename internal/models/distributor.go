package models

import "time"

// Distributor represents a distributor_profiles row
type Distributor struct {
	ID            int64     `db:"id" json:"id"`
	FullName      string    `db:"full_name" json:"fullName"`
	Email         string    `db:"email" json:"email"`
	MobileNumber  string    `db:"mobile_number" json:"mobileNumber"`
	PasswordHash  string    `db:"password" json:"-"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	Location      *string   `db:"location" json:"location"`
	PaymentStatus *string   `db:"payment_status" json:"paymentStatus"`
	CompanyName   string    `db:"company_name" json:"companyName"`
}

// DistributorRegistration carries the fields accepted by distributor creation.
// Documents holds the public paths of files already written by the upload store.
type DistributorRegistration struct {
	FullName      string `json:"fullName" validate:"required"`
	Email         string `json:"email" validate:"required"`
	MobileNumber  string `json:"mobileNumber" validate:"required"`
	Password      string `json:"password" validate:"required"`
	CompanyName   string `json:"companyName" validate:"required"`
	CreatedAt     *time.Time
	Location      *string
	PaymentStatus *string
	Documents     []string
}

// DistributorDocument links an uploaded file to a distributor
type DistributorDocument struct {
	ID            int64  `db:"id" json:"id"`
	DistributorID int64  `db:"distributor_id" json:"distributorId"`
	FilePath      string `db:"file_path" json:"filePath"`
}
