package jwtutil

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by every bearer token issued at login.
type Claims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type Signer struct {
	secret []byte
	expiry time.Duration
}

func NewSigner(secret string, expiry time.Duration) *Signer {
	return &Signer{secret: []byte(secret), expiry: expiry}
}

func (s *Signer) Sign(userID int64, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
