package handler

import (
	"net/http"
	"strconv"

	"company-service/internal/usecase"
	"company-service/pkg/response"
	xerrors "company-service/pkg/xerrors"

	"go.uber.org/zap"
)

type AuthHandler struct {
	uc     *usecase.AuthUsecase
	logger *zap.Logger
}

func NewAuthHandler(uc *usecase.AuthUsecase, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req usecase.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if vErr := usecase.ValidateRegister(&req); vErr != nil {
		writeError(w, r, h.logger, vErr)
		return
	}

	userID, err := h.uc.Register(r.Context(), &req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.JSON(w, http.StatusCreated,
		"User registered successfully. Please verify mobile OTP.",
		map[string]interface{}{"user_id": userID})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, r, h.logger, xerrors.ErrInvalidCredentials)
		return
	}

	token, user, err := h.uc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, "Login successful", map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// VerifyEmail handles GET /api/auth/verify-email?user_id=.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID == 0 {
		writeError(w, r, h.logger, xerrors.ErrUserIDRequired)
		return
	}

	if err := h.uc.VerifyEmail(r.Context(), userID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, "Email verified", nil)
}

type verifyMobileRequest struct {
	UserID int64  `json:"user_id"`
	OTP    string `json:"otp"`
}

// VerifyMobile handles POST /api/auth/verify-mobile. The otp is carried
// but not checked; see the auth usecase.
func (h *AuthHandler) VerifyMobile(w http.ResponseWriter, r *http.Request) {
	var req verifyMobileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if req.UserID == 0 {
		writeError(w, r, h.logger, xerrors.ErrUserIDRequired)
		return
	}

	if err := h.uc.VerifyMobile(r.Context(), req.UserID, req.OTP); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, "Mobile verified", nil)
}
