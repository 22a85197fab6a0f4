package models

// Admin represents a row of the admin table. Admin accounts are provisioned
// out of band (see cmd/seed-admin); the API only reads them.
type Admin struct {
	ID           int64  `db:"id" json:"id"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password" json:"-"` // Never expose password hash in JSON
}

// LoginRequest is the body shared by the admin, distributor and bureau login endpoints
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}
