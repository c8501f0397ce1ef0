package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StubProvider stands in when no service account is configured so local
// development works without the external provider. Registration still
// succeeds; token verification is unsupported.
type StubProvider struct {
	logger *zap.Logger
}

func NewStubProvider(logger *zap.Logger) *StubProvider {
	return &StubProvider{logger: logger}
}

func (p *StubProvider) CreateUser(ctx context.Context, u NewUser) (string, error) {
	uid := "local_" + uuid.NewString()
	p.logger.Info("stub identity provisioned",
		zap.String("email", u.Email), zap.String("uid", uid))
	return uid, nil
}

func (p *StubProvider) VerifyToken(ctx context.Context, idToken string) (string, error) {
	return "", errors.New("identity provider not configured")
}
