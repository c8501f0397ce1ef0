package utils

import (
	"regexp"
	"strings"
)

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	symbolRegex  = regexp.MustCompile(`[!@#\$%\^&\*\(\)_\+\-=\[\]\{\}\\|;:'",.<>\/?~` + "`" + `]`)
	websiteRegex = regexp.MustCompile(`^https?:\/\/(localhost(:\d+)?|.+\..+)`)
)

// ValidateEmail checks if an email address is valid.
func ValidateEmail(email string) bool {
	if strings.TrimSpace(email) == "" {
		return false
	}
	return emailRegex.MatchString(email)
}

// ValidatePassword enforces the registration password policy: 8 to 72
// characters with at least one symbol. The upper bound is bcrypt's input
// limit; anything longer would fail at hashing time.
func ValidatePassword(password string) bool {
	if len(password) < 8 || len(password) > 72 {
		return false
	}
	return symbolRegex.MatchString(password)
}

func ValidateGender(gender string) bool {
	return gender == "m" || gender == "f" || gender == "o"
}

func ValidateMobile(mobile string) bool {
	n := len(strings.TrimSpace(mobile))
	return n >= 8 && n <= 20
}

// ValidateWebsite accepts http(s) URLs with a dotted host, plus localhost
// with an optional port.
func ValidateWebsite(website string) bool {
	return websiteRegex.MatchString(website)
}
