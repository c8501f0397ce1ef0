// Package identity provisions users with the external identity provider.
// The provider is chosen once at startup and injected into the auth
// usecase; nothing resolves it through global state.
package identity

import "context"

type NewUser struct {
	Email       string
	Password    string
	PhoneNumber string // E.164, optional
}

type Provider interface {
	// CreateUser provisions a user and returns the provider's uid.
	CreateUser(ctx context.Context, u NewUser) (string, error)
	// VerifyToken validates a provider-issued ID token and returns the
	// uid it belongs to.
	VerifyToken(ctx context.Context, idToken string) (string, error)
}
