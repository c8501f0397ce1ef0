package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"company-service/internal/domain"
	"company-service/internal/service/identity"
	"company-service/pkg/jwtutil"
	"company-service/pkg/utils"
	xerrors "company-service/pkg/xerrors"

	"go.uber.org/zap"
)

// UserStore is the credential store consumed by the auth usecase.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetEmailVerified(ctx context.Context, userID int64, value bool) error
	SetMobileVerified(ctx context.Context, userID int64, value bool) error
}

type RegisterRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"full_name"`
	Gender     string `json:"gender"`
	MobileNo   string `json:"mobile_no"`
	SignupType string `json:"signup_type"`
}

type AuthUsecase struct {
	users  UserStore
	idp    identity.Provider
	signer *jwtutil.Signer
	logger *zap.Logger
}

func NewAuthUsecase(users UserStore, idp identity.Provider, signer *jwtutil.Signer, logger *zap.Logger) *AuthUsecase {
	return &AuthUsecase{users: users, idp: idp, signer: signer, logger: logger}
}

// ValidateRegister returns one message per failed field so the boundary
// can reject before any side effect happens.
func ValidateRegister(req *RegisterRequest) *xerrors.ValidationError {
	var fields []string
	if !utils.ValidateEmail(req.Email) {
		fields = append(fields, "email: "+xerrors.ErrInvalidEmailFormat.Error())
	}
	if !utils.ValidatePassword(req.Password) {
		fields = append(fields, "password: "+xerrors.ErrWeakPassword.Error())
	}
	if len(strings.TrimSpace(req.FullName)) < 2 {
		fields = append(fields, "full_name: "+xerrors.ErrInvalidFullName.Error())
	}
	if !utils.ValidateGender(req.Gender) {
		fields = append(fields, "gender: "+xerrors.ErrInvalidGender.Error())
	}
	if !utils.ValidateMobile(req.MobileNo) {
		fields = append(fields, "mobile_no: "+xerrors.ErrInvalidMobile.Error())
	}
	if len(fields) > 0 {
		return xerrors.NewValidationError(fields...)
	}
	return nil
}

// Register provisions the external identity first (its failure aborts
// the whole registration), then hashes and persists the user. Returns
// the new user id.
func (uc *AuthUsecase) Register(ctx context.Context, req *RegisterRequest) (int64, error) {
	email := utils.Sanitize(req.Email)
	fullName := utils.Sanitize(req.FullName)
	mobileNo := utils.Sanitize(req.MobileNo)

	if _, err := uc.users.GetByEmail(ctx, email); err == nil {
		return 0, xerrors.ErrEmailAlreadyInUse
	} else if !errors.Is(err, xerrors.ErrNotFound) {
		return 0, err
	}

	phone := ""
	if strings.HasPrefix(mobileNo, "+") {
		phone = mobileNo
	}
	if _, err := uc.idp.CreateUser(ctx, identity.NewUser{
		Email:       email,
		Password:    req.Password,
		PhoneNumber: phone,
	}); err != nil {
		return 0, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Gender:       req.Gender,
		MobileNo:     mobileNo,
		SignupType:   "e",
	}
	created, err := uc.users.Create(ctx, user)
	if err != nil {
		return 0, err
	}

	uc.logger.Info("user registered",
		zap.Int64("user_id", created.ID), zap.String("email", created.Email))
	return created.ID, nil
}

// Login deliberately reports the same ErrInvalidCredentials for an
// unknown email and for a wrong password.
func (uc *AuthUsecase) Login(ctx context.Context, email, password string) (string, *domain.SanitizedUser, error) {
	user, err := uc.users.GetByEmail(ctx, utils.Sanitize(email))
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return "", nil, xerrors.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		return "", nil, xerrors.ErrInvalidCredentials
	}

	token, err := uc.signer.Sign(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	uc.logger.Info("user logged in", zap.Int64("user_id", user.ID))
	return token, sanitizeUser(user), nil
}

func (uc *AuthUsecase) VerifyEmail(ctx context.Context, userID int64) error {
	return uc.users.SetEmailVerified(ctx, userID, true)
}

// VerifyMobile marks the mobile number verified. The otp value is
// accepted without being checked against any stored code; the original
// system ships the same behavior and no product decision has replaced
// it yet.
func (uc *AuthUsecase) VerifyMobile(ctx context.Context, userID int64, otp string) error {
	_ = otp
	return uc.users.SetMobileVerified(ctx, userID, true)
}

func sanitizeUser(u *domain.User) *domain.SanitizedUser {
	first, last := "", ""
	if u.FullName != "" {
		parts := strings.Fields(u.FullName)
		first = parts[0]
		if len(parts) > 1 {
			last = strings.Join(parts[1:], " ")
		}
	}
	return &domain.SanitizedUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: first,
		LastName:  last,
		FullName:  u.FullName,
		Gender:    u.Gender,
		MobileNo:  u.MobileNo,
	}
}
