package services

import "fmt"

// Client-facing messages. Store failure details are logged, never returned.
const (
	msgServerError   = "Server error. Please try again later."
	msgMissingFields = "Please fill all required fields."
	msgHashFailed    = "Error hashing password."
)

// ValidationError reports missing or malformed input
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (%v)", e.Message, e.Fields)
}

// ConflictError reports an email or mobile number already in use
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NotFoundError reports that no row matched a lookup, update or delete
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// AuthError reports a credential mismatch
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// StoreError wraps a failed database or hashing operation
type StoreError struct {
	Op      string
	Err     error
	Message string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// PublicMessage is the text returned to API clients
func (e *StoreError) PublicMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return msgServerError
}

func storeError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

var (
	ErrDistributorExists = &ConflictError{Message: "Distributor already exists with this email or mobile number."}
	ErrBureauExists      = &ConflictError{Message: "Bureau already exists with this email or mobile number."}

	ErrAdminNotFound         = &NotFoundError{Message: "Admin not found"}
	ErrDistributorNotFound   = &NotFoundError{Message: "Distributor not found"}
	ErrBureauAccountNotFound = &NotFoundError{Message: "Bureau not found"}
	ErrBureauNotFound        = &NotFoundError{Message: "Bureau not found."}
	ErrImageTargetNotFound   = &NotFoundError{Message: "Bureau not found or image could not be inserted."}
	ErrNoImages              = &NotFoundError{Message: "No images found for the given bureau."}
	ErrImageNotFound         = &NotFoundError{Message: "Image not found."}

	ErrInvalidPassword = &AuthError{Message: "Invalid password"}
)
