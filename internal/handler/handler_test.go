package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"company-service/internal/domain"
	"company-service/internal/handler"
	"company-service/internal/repository"
	"company-service/internal/service/assets"
	"company-service/internal/service/identity"
	"company-service/internal/usecase"
	"company-service/pkg/jwtutil"
	"company-service/pkg/middleware"
	xerrors "company-service/pkg/xerrors"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memUserStore struct {
	nextID  int64
	byEmail map[string]*domain.User
}

func (s *memUserStore) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := s.byEmail[u.Email]; ok {
		return nil, xerrors.ErrEmailAlreadyInUse
	}
	cp := *u
	cp.ID = s.nextID
	s.nextID++
	s.byEmail[cp.Email] = &cp
	return &cp, nil
}

func (s *memUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) SetEmailVerified(ctx context.Context, userID int64, value bool) error {
	return nil
}

func (s *memUserStore) SetMobileVerified(ctx context.Context, userID int64, value bool) error {
	return nil
}

type memCompanyStore struct {
	nextID  int64
	byOwner map[int64]*domain.CompanyProfile
}

func (s *memCompanyStore) Create(ctx context.Context, p *domain.CompanyProfile) (*domain.CompanyProfile, error) {
	if _, ok := s.byOwner[p.OwnerID]; ok {
		return nil, xerrors.ErrCompanyExists
	}
	cp := *p
	cp.ID = s.nextID
	s.nextID++
	s.byOwner[cp.OwnerID] = &cp
	out := cp
	return &out, nil
}

func (s *memCompanyStore) GetByOwner(ctx context.Context, ownerID int64) (*domain.CompanyProfile, error) {
	p, ok := s.byOwner[ownerID]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *memCompanyStore) UpdateByOwner(ctx context.Context, ownerID int64, upd *repository.CompanyUpdate) (*domain.CompanyProfile, error) {
	p, ok := s.byOwner[ownerID]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	if upd.CompanyName != nil {
		p.CompanyName = *upd.CompanyName
	}
	cp := *p
	return &cp, nil
}

func (s *memCompanyStore) SetAssetURL(ctx context.Context, ownerID int64, column, url string) (*domain.CompanyProfile, error) {
	p, ok := s.byOwner[ownerID]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	if column == "banner_url" {
		p.BannerURL = &url
	} else {
		p.LogoURL = &url
	}
	cp := *p
	return &cp, nil
}

type memUploader struct{}

func (memUploader) Upload(ctx context.Context, src assets.Source, folder string) (string, error) {
	return "https://cdn.example.com/" + folder + "/asset.png", nil
}

func newAuthHandler() (*handler.AuthHandler, *memUserStore) {
	logger := zap.NewNop()
	store := &memUserStore{nextID: 1, byEmail: map[string]*domain.User{}}
	uc := usecase.NewAuthUsecase(store, identity.NewStubProvider(logger),
		jwtutil.NewSigner("test-secret", time.Hour), logger)
	return handler.NewAuthHandler(uc, logger), store
}

func newCompanyHandler() (*handler.CompanyHandler, *memCompanyStore) {
	logger := zap.NewNop()
	store := &memCompanyStore{nextID: 1, byOwner: map[int64]*domain.CompanyProfile{}}
	uc := usecase.NewCompanyUsecase(store, memUploader{}, "company-module", logger)
	return handler.NewCompanyHandler(uc, logger), store
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Details []string        `json:"details"`
}

func decodeResp(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var out apiResponse
	require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func authedRequest(method, target string, body *bytes.Buffer) *http.Request {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	ctx := context.WithValue(req.Context(), middleware.ContextUserID, int64(7))
	ctx = context.WithValue(ctx, middleware.ContextUserEmail, "owner@acme.com")
	return req.WithContext(ctx)
}

func TestRegisterEndpoint(t *testing.T) {
	h, _ := newAuthHandler()

	body := bytes.NewBufferString(`{
		"email": "jane@example.com",
		"password": "secret!pass",
		"full_name": "Jane Doe",
		"gender": "f",
		"mobile_no": "+14155550123"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	out := decodeResp(t, rec)
	require.True(t, out.Success)
	require.Equal(t, "User registered successfully. Please verify mobile OTP.", out.Message)

	var data struct {
		UserID int64 `json:"user_id"`
	}
	require.Nil(t, json.Unmarshal(out.Data, &data))
	require.Equal(t, int64(1), data.UserID)
}

func TestRegisterValidationDetails(t *testing.T) {
	h, _ := newAuthHandler()

	body := bytes.NewBufferString(`{"email": "bad", "password": "short"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	out := decodeResp(t, rec)
	require.False(t, out.Success)
	require.Equal(t, "Validation failed", out.Message)
	require.NotEmpty(t, out.Details)
}

func TestLoginBadCredentials(t *testing.T) {
	h, _ := newAuthHandler()

	body := bytes.NewBufferString(`{"email": "nobody@example.com", "password": "whatever1!"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	out := decodeResp(t, rec)
	require.False(t, out.Success)
	require.Equal(t, "Invalid credentials", out.Message)
}

func TestAuthMiddleware(t *testing.T) {
	verifier := jwtutil.NewVerifier("test-secret")
	am := middleware.NewAuthMiddleware(verifier)

	var gotUserID int64
	var gotEmail string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = middleware.GetUserID(r.Context())
		gotEmail, _ = middleware.GetUserEmail(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := am.Require(next)

	// missing token
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/company/profile", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Missing Authorization token", decodeResp(t, rec).Message)

	// garbage token
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/company/profile", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	protected.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid or expired token", decodeResp(t, rec).Message)

	// valid token
	token, err := jwtutil.NewSigner("test-secret", time.Hour).Sign(7, "owner@acme.com")
	require.Nil(t, err)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/company/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	protected.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(7), gotUserID)
	require.Equal(t, "owner@acme.com", gotEmail)
}

func TestGetProfileAbsentReturnsNullData(t *testing.T) {
	h, _ := newCompanyHandler()

	rec := httptest.NewRecorder()
	h.GetProfile(rec, authedRequest(http.MethodGet, "/api/company/profile", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), `"data":null`))
}

func TestRegisterCompanyEndpoint(t *testing.T) {
	h, store := newCompanyHandler()

	body := bytes.NewBufferString(`{
		"company_name": "Acme Corp",
		"address": "1 Main St",
		"city": "Nairobi",
		"state": "Nairobi",
		"country": "Kenya",
		"postal_code": "00100",
		"industry": "Technology"
	}`)
	rec := httptest.NewRecorder()
	h.RegisterCompany(rec, authedRequest(http.MethodPost, "/api/company/register", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	out := decodeResp(t, rec)
	require.True(t, out.Success)
	require.Contains(t, store.byOwner, int64(7))

	// second create for the same owner conflicts
	body = bytes.NewBufferString(`{
		"company_name": "Acme Corp",
		"address": "1 Main St",
		"city": "Nairobi",
		"state": "Nairobi",
		"country": "Kenya",
		"postal_code": "00100",
		"industry": "Technology"
	}`)
	rec = httptest.NewRecorder()
	h.RegisterCompany(rec, authedRequest(http.MethodPost, "/api/company/register", body))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Company already exists for this user", decodeResp(t, rec).Message)
}

func TestUpdateProfileWithoutCompany(t *testing.T) {
	h, _ := newCompanyHandler()

	body := bytes.NewBufferString(`{"company_name": "Renamed"}`)
	rec := httptest.NewRecorder()
	h.UpdateProfile(rec, authedRequest(http.MethodPut, "/api/company/profile", body))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Company profile not found. Please create a profile first.", decodeResp(t, rec).Message)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.Nil(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	return buf.Bytes()
}

func multipartBody(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.Nil(t, err)
	_, err = part.Write(data)
	require.Nil(t, err)
	require.Nil(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadLogoAutoCreatesProfile(t *testing.T) {
	h, store := newCompanyHandler()

	body, ct := multipartBody(t, "logo", "logo.png", "image/png", pngBytes(t))
	req := authedRequest(http.MethodPost, "/api/company/upload-logo", body)
	req.Header.Set("Content-Type", ct)

	rec := httptest.NewRecorder()
	h.UploadLogo(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeResp(t, rec)
	require.True(t, out.Success)

	p := store.byOwner[7]
	require.NotNil(t, p)
	require.Equal(t, domain.SentinelCompanyName, p.CompanyName)
	require.NotNil(t, p.LogoURL)
	require.Contains(t, *p.LogoURL, "company-module/logos")
}

func TestUploadRejectsNonImage(t *testing.T) {
	h, _ := newCompanyHandler()

	body, ct := multipartBody(t, "logo", "notes.txt", "image/png", []byte("plain text, not pixels"))
	req := authedRequest(http.MethodPost, "/api/company/upload-logo", body)
	req.Header.Set("Content-Type", ct)

	rec := httptest.NewRecorder()
	h.UploadLogo(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, decodeResp(t, rec).Success)
}

func TestUploadMalformedMultipart(t *testing.T) {
	h, _ := newCompanyHandler()

	body := bytes.NewBufferString("this is not a multipart body")
	req := authedRequest(http.MethodPost, "/api/company/upload-logo", body)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")

	rec := httptest.NewRecorder()
	h.UploadLogo(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	out := decodeResp(t, rec)
	require.Equal(t, "invalid request", out.Message)
}

func TestEditBannerRequiresProfile(t *testing.T) {
	h, _ := newCompanyHandler()

	body, ct := multipartBody(t, "banner", "banner.png", "image/png", pngBytes(t))
	req := authedRequest(http.MethodPut, "/api/company/edit-banner", body)
	req.Header.Set("Content-Type", ct)

	rec := httptest.NewRecorder()
	h.EditBanner(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
