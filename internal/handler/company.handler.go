package handler

import (
	"net/http"

	"company-service/internal/domain"
	"company-service/internal/usecase"
	"company-service/pkg/middleware"
	"company-service/pkg/response"

	"go.uber.org/zap"
)

type CompanyHandler struct {
	uc     *usecase.CompanyUsecase
	logger *zap.Logger
}

func NewCompanyHandler(uc *usecase.CompanyUsecase, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{uc: uc, logger: logger}
}

func (h *CompanyHandler) caller(w http.ResponseWriter, r *http.Request) (int64, string, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return 0, "", false
	}
	email, _ := middleware.GetUserEmail(r.Context())
	return userID, email, true
}

// RegisterCompany handles POST /api/company/register.
func (h *CompanyHandler) RegisterCompany(w http.ResponseWriter, r *http.Request) {
	ownerID, email, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req usecase.CreateCompanyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if vErr := usecase.ValidateCreate(&req); vErr != nil {
		writeError(w, r, h.logger, vErr)
		return
	}

	profile, err := h.uc.CreateProfile(r.Context(), ownerID, email, &req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusCreated, "Company created", profile)
}

// GetProfile handles GET /api/company/profile. An absent profile is a
// 200 with null data, not an error.
func (h *CompanyHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ownerID, email, ok := h.caller(w, r)
	if !ok {
		return
	}

	profile, err := h.uc.GetProfile(r.Context(), ownerID, email)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if profile == nil {
		// typed nil so the envelope carries an explicit data:null
		response.JSON(w, http.StatusOK, "", (*domain.CompanyProfile)(nil))
		return
	}
	response.JSON(w, http.StatusOK, "", profile)
}

// UpdateProfile handles PUT /api/company/profile.
func (h *CompanyHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ownerID, _, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req usecase.UpdateCompanyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if vErr := usecase.ValidateUpdate(&req); vErr != nil {
		writeError(w, r, h.logger, vErr)
		return
	}

	profile, err := h.uc.UpdateProfile(r.Context(), ownerID, &req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, "Company updated", profile)
}

// UploadLogo handles POST /api/company/upload-logo: multipart file or
// JSON filePath, auto-creating a placeholder profile when none exists.
func (h *CompanyHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	h.attach(w, r, domain.AssetLogo, "logo", true, "Logo uploaded")
}

// UploadBanner handles POST /api/company/upload-banner.
func (h *CompanyHandler) UploadBanner(w http.ResponseWriter, r *http.Request) {
	h.attach(w, r, domain.AssetBanner, "banner", true, "Banner uploaded")
}

// EditLogo handles PUT /api/company/edit-logo: multipart only, 404 when
// no profile exists yet.
func (h *CompanyHandler) EditLogo(w http.ResponseWriter, r *http.Request) {
	h.attachExisting(w, r, domain.AssetLogo, "logo", "Logo updated successfully")
}

// EditBanner handles PUT /api/company/edit-banner.
func (h *CompanyHandler) EditBanner(w http.ResponseWriter, r *http.Request) {
	h.attachExisting(w, r, domain.AssetBanner, "banner", "Banner updated successfully")
}

func (h *CompanyHandler) attach(w http.ResponseWriter, r *http.Request, kind domain.AssetKind, field string, allowFilePath bool, message string) {
	ownerID, email, ok := h.caller(w, r)
	if !ok {
		return
	}

	src, err := parseImageSource(r, field, allowFilePath)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	url, profile, err := h.uc.AttachAsset(r.Context(), ownerID, email, kind, src, false)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, message, map[string]interface{}{
		"url":     url,
		"company": profile,
	})
}

func (h *CompanyHandler) attachExisting(w http.ResponseWriter, r *http.Request, kind domain.AssetKind, field, message string) {
	ownerID, email, ok := h.caller(w, r)
	if !ok {
		return
	}

	src, err := parseImageSource(r, field, false)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	url, profile, err := h.uc.AttachAsset(r.Context(), ownerID, email, kind, src, true)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, message, map[string]interface{}{
		"url":     url,
		"company": profile,
	})
}
