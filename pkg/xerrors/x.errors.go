package xerrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func ParsePGErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code // e.g. 23505 for unique_violation
	}
	return "unknown"
}

// IsUniqueViolation reports whether err is a postgres unique_violation.
func IsUniqueViolation(err error) bool {
	return ParsePGErrorCode(err) == "23505"
}

// Generic
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrInternalServer = errors.New("internal server error")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
)

// Registration / Login
var (
	ErrEmailAlreadyInUse  = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrUserNotFound       = errors.New("user not found")

	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("password must be 8-72 characters and include a symbol")
	ErrInvalidFullName    = errors.New("full name must be at least 2 characters")
	ErrInvalidGender      = errors.New("gender must be one of m, f, o")
	ErrInvalidMobile      = errors.New("mobile number must be 8-20 characters")
	ErrUserIDRequired     = errors.New("user_id is required")
)

// Company profile
var (
	ErrCompanyExists   = errors.New("Company already exists for this user")
	ErrCompanyNotFound = errors.New("Company profile not found. Please create a profile first.")
)

// Token
var (
	ErrInvalidToken = errors.New("Invalid or expired token")
	ErrMissingToken = errors.New("Missing Authorization token")
)

// Uploads
var (
	ErrNoFileUploaded  = errors.New("No file uploaded")
	ErrNotAnImage      = errors.New("Only image files are allowed")
	ErrFileTooLarge    = errors.New("File exceeds the 5MB limit")
	ErrUploadSourceReq = errors.New("file or filePath required")
	ErrUploadFailed    = errors.New("Image upload failed")
)

// ValidationError carries per-field messages so the boundary can return
// a details array alongside the generic message.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "Validation failed"
}

func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}
