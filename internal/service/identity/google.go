package identity

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"company-service/internal/config"

	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"go.uber.org/zap"
)

// GoogleProvider provisions users through the Google Identity Toolkit
// (Firebase Auth) REST surface using a service-account credential.
type GoogleProvider struct {
	svc       *identitytoolkit.Service
	projectID string
	logger    *zap.Logger
	timeout   time.Duration
}

// NewGoogleProvider builds the provider from config. The service account
// may be inline JSON or a path to a credentials file.
func NewGoogleProvider(ctx context.Context, cfg config.FirebaseConfig, logger *zap.Logger) (*GoogleProvider, error) {
	if cfg.ServiceAccount == "" {
		return nil, errors.New("firebase service account not configured")
	}

	creds := []byte(cfg.ServiceAccount)
	if !strings.HasPrefix(strings.TrimSpace(cfg.ServiceAccount), "{") {
		data, err := os.ReadFile(cfg.ServiceAccount)
		if err != nil {
			return nil, fmt.Errorf("read firebase credentials file: %w", err)
		}
		creds = data
	}

	svc, err := identitytoolkit.NewService(ctx, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("init identity toolkit client: %w", err)
	}

	return &GoogleProvider{
		svc:       svc,
		projectID: cfg.ProjectID,
		logger:    logger,
		timeout:   10 * time.Second,
	}, nil
}

// CreateUser makes a single provisioning call with an explicit timeout
// and no retries; a retry here could double-create external identities.
func (p *GoogleProvider) CreateUser(ctx context.Context, u NewUser) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req := &identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:    u.Email,
		Password: u.Password,
	}

	resp, err := p.svc.Relyingparty.SignupNewUser(req).Context(ctx).Do()
	if err != nil {
		p.logger.Error("identity provisioning failed",
			zap.String("email", u.Email), zap.Error(err))
		return "", fmt.Errorf("identity provisioning: %w", err)
	}

	p.logger.Info("identity provisioned",
		zap.String("email", u.Email), zap.String("uid", resp.LocalId))
	return resp.LocalId, nil
}

func (p *GoogleProvider) VerifyToken(ctx context.Context, idToken string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.svc.Relyingparty.GetAccountInfo(&identitytoolkit.IdentitytoolkitRelyingpartyGetAccountInfoRequest{
		IdToken: idToken,
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("verify id token: %w", err)
	}
	if len(resp.Users) == 0 {
		return "", errors.New("no account matches the id token")
	}
	return resp.Users[0].LocalId, nil
}
