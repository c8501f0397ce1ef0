package domain

import "time"

type User struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	FullName         string    `json:"full_name"`
	Gender           string    `json:"gender"`
	MobileNo         string    `json:"mobile_no"`
	SignupType       string    `json:"signup_type"`
	IsEmailVerified  bool      `json:"is_email_verified"`
	IsMobileVerified bool      `json:"is_mobile_verified"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SanitizedUser is the login response view. The stored full_name is split
// into first/last at this boundary only, never persisted split.
type SanitizedUser struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
	Gender    string `json:"gender"`
	MobileNo  string `json:"mobileNo"`
}
