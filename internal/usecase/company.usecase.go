package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"company-service/internal/domain"
	"company-service/internal/repository"
	"company-service/internal/service/assets"
	"company-service/pkg/utils"
	xerrors "company-service/pkg/xerrors"

	"go.uber.org/zap"
)

// CompanyStore is the profile store consumed by the company usecase.
type CompanyStore interface {
	Create(ctx context.Context, p *domain.CompanyProfile) (*domain.CompanyProfile, error)
	GetByOwner(ctx context.Context, ownerID int64) (*domain.CompanyProfile, error)
	UpdateByOwner(ctx context.Context, ownerID int64, upd *repository.CompanyUpdate) (*domain.CompanyProfile, error)
	SetAssetURL(ctx context.Context, ownerID int64, column, url string) (*domain.CompanyProfile, error)
}

type CreateCompanyRequest struct {
	CompanyName   string             `json:"company_name"`
	Address       string             `json:"address"`
	City          string             `json:"city"`
	State         string             `json:"state"`
	Country       string             `json:"country"`
	PostalCode    string             `json:"postal_code"`
	Industry      string             `json:"industry"`
	Website       *string            `json:"website"`
	FoundedDate   *string            `json:"founded_date"`
	Description   *string            `json:"description"`
	SocialLinks   domain.SocialLinks `json:"social_links"`
	CompanySize   *string            `json:"company_size"`
	Email         *string            `json:"email"`
	Phone         *string            `json:"phone"`
	Mission       *string            `json:"mission"`
	Vision        *string            `json:"vision"`
	FoundingStory *string            `json:"founding_story"`
}

// UpdateCompanyRequest mirrors the create payload with every field
// optional. A nil pointer means "not part of this update".
type UpdateCompanyRequest struct {
	CompanyName   *string            `json:"company_name"`
	Address       *string            `json:"address"`
	City          *string            `json:"city"`
	State         *string            `json:"state"`
	Country       *string            `json:"country"`
	PostalCode    *string            `json:"postal_code"`
	Industry      *string            `json:"industry"`
	Website       *string            `json:"website"`
	FoundedDate   *string            `json:"founded_date"`
	Description   *string            `json:"description"`
	SocialLinks   domain.SocialLinks `json:"social_links"`
	CompanySize   *string            `json:"company_size"`
	Email         *string            `json:"email"`
	Phone         *string            `json:"phone"`
	Mission       *string            `json:"mission"`
	Vision        *string            `json:"vision"`
	FoundingStory *string            `json:"founding_story"`
}

type CompanyUsecase struct {
	companies  CompanyStore
	uploader   assets.Uploader
	baseFolder string
	logger     *zap.Logger
}

func NewCompanyUsecase(companies CompanyStore, uploader assets.Uploader, baseFolder string, logger *zap.Logger) *CompanyUsecase {
	return &CompanyUsecase{
		companies:  companies,
		uploader:   uploader,
		baseFolder: baseFolder,
		logger:     logger,
	}
}

// field length limits shared by create and update validation.
const (
	maxDescriptionLen   = 2000
	maxMissionVisionLen = 1000
	maxStoryLen         = 2000
)

func ValidateCreate(req *CreateCompanyRequest) *xerrors.ValidationError {
	var fields []string
	check := func(name, value string, min int) {
		if len(strings.TrimSpace(value)) < min {
			fields = append(fields, name+": must be at least "+strconv.Itoa(min)+" characters")
		}
	}
	check("company_name", req.CompanyName, 2)
	check("address", req.Address, 3)
	check("city", req.City, 2)
	check("state", req.State, 2)
	check("country", req.Country, 2)
	check("postal_code", req.PostalCode, 3)
	check("industry", req.Industry, 2)
	fields = append(fields, validateOptional(req.Website, req.FoundedDate, req.Description,
		req.Email, req.Mission, req.Vision, req.FoundingStory)...)
	if len(fields) > 0 {
		return xerrors.NewValidationError(fields...)
	}
	return nil
}

func ValidateUpdate(req *UpdateCompanyRequest) *xerrors.ValidationError {
	var fields []string
	check := func(name string, value *string, min int) {
		if value != nil && strings.TrimSpace(*value) != "" && len(strings.TrimSpace(*value)) < min {
			fields = append(fields, name+": must be at least "+strconv.Itoa(min)+" characters")
		}
	}
	check("company_name", req.CompanyName, 2)
	check("address", req.Address, 3)
	check("city", req.City, 2)
	check("state", req.State, 2)
	check("country", req.Country, 2)
	check("postal_code", req.PostalCode, 3)
	check("industry", req.Industry, 2)
	fields = append(fields, validateOptional(req.Website, req.FoundedDate, req.Description,
		req.Email, req.Mission, req.Vision, req.FoundingStory)...)
	if len(fields) > 0 {
		return xerrors.NewValidationError(fields...)
	}
	return nil
}

func validateOptional(website, foundedDate, description, email, mission, vision, story *string) []string {
	var fields []string
	if website != nil && strings.TrimSpace(*website) != "" && !utils.ValidateWebsite(strings.TrimSpace(*website)) {
		fields = append(fields, "website: must be a valid URL")
	}
	if foundedDate != nil && strings.TrimSpace(*foundedDate) != "" {
		if _, err := parseDate(strings.TrimSpace(*foundedDate)); err != nil {
			fields = append(fields, "founded_date: must be a valid date")
		}
	}
	if description != nil && len(*description) > maxDescriptionLen {
		fields = append(fields, "description: must be less than 2000 characters")
	}
	if email != nil && strings.TrimSpace(*email) != "" && !utils.ValidateEmail(strings.TrimSpace(*email)) {
		fields = append(fields, "email: must be valid")
	}
	if mission != nil && len(*mission) > maxMissionVisionLen {
		fields = append(fields, "mission: must be less than 1000 characters")
	}
	if vision != nil && len(*vision) > maxMissionVisionLen {
		fields = append(fields, "vision: must be less than 1000 characters")
	}
	if story != nil && len(*story) > maxStoryLen {
		fields = append(fields, "founding_story: must be less than 2000 characters")
	}
	return fields
}

// CreateProfile persists the single profile row for the owner. A blank
// email is backfilled from the authenticated user's email before
// storage. The store's unique constraint decides conflicts.
func (uc *CompanyUsecase) CreateProfile(ctx context.Context, ownerID int64, ownerEmail string, req *CreateCompanyRequest) (*domain.CompanyProfile, error) {
	profile := &domain.CompanyProfile{
		OwnerID:     ownerID,
		CompanyName: utils.Sanitize(req.CompanyName),
		Address:     utils.Sanitize(req.Address),
		City:        utils.Sanitize(req.City),
		State:       utils.Sanitize(req.State),
		Country:     utils.Sanitize(req.Country),
		PostalCode:  utils.Sanitize(req.PostalCode),
		Industry:    utils.Sanitize(req.Industry),
	}

	profile.Website = sanitizeOpt(req.Website)
	profile.Description = sanitizeOpt(req.Description)
	profile.CompanySize = sanitizeOpt(req.CompanySize)
	profile.Phone = sanitizeOpt(req.Phone)
	profile.Mission = sanitizeOpt(req.Mission)
	profile.Vision = sanitizeOpt(req.Vision)
	profile.FoundingStory = sanitizeOpt(req.FoundingStory)

	if req.FoundedDate != nil && strings.TrimSpace(*req.FoundedDate) != "" {
		d, err := parseDate(strings.TrimSpace(*req.FoundedDate))
		if err != nil {
			return nil, xerrors.NewValidationError("founded_date: must be a valid date")
		}
		profile.FoundedDate = &d
	}

	if len(req.SocialLinks) > 0 {
		profile.SocialLinks = sanitizeLinks(req.SocialLinks)
	}

	email := ""
	if req.Email != nil {
		email = strings.TrimSpace(*req.Email)
	}
	if email == "" {
		email = ownerEmail
	}
	email = utils.Sanitize(email)
	profile.Email = &email

	created, err := uc.companies.Create(ctx, profile)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("company profile created",
		zap.Int64("owner_id", ownerID), zap.Int64("profile_id", created.ID))
	return created, nil
}

// GetProfile returns nil (not an error) when no profile exists. A blank
// stored email is merged with the caller's email for display only; the
// read never persists it.
func (uc *CompanyUsecase) GetProfile(ctx context.Context, ownerID int64, ownerEmail string) (*domain.CompanyProfile, error) {
	profile, err := uc.companies.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if profile.Email == nil || strings.TrimSpace(*profile.Email) == "" {
		profile.Email = &ownerEmail
	}
	return profile, nil
}

// UpdateProfile applies a partial update. The update set keeps only
// fields present with non-null values; trimmed-empty strings are
// dropped except inside social_links, where an empty string explicitly
// clears that one link. Social links merge per-key at the store.
func (uc *CompanyUsecase) UpdateProfile(ctx context.Context, ownerID int64, req *UpdateCompanyRequest) (*domain.CompanyProfile, error) {
	if _, err := uc.companies.GetByOwner(ctx, ownerID); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrCompanyNotFound
		}
		return nil, err
	}

	upd := BuildUpdate(req)

	profile, err := uc.companies.UpdateByOwner(ctx, ownerID, upd)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrCompanyNotFound
		}
		return nil, err
	}

	uc.logger.Info("company profile updated", zap.Int64("owner_id", ownerID))
	return profile, nil
}

// BuildUpdate computes the update set from the request payload.
func BuildUpdate(req *UpdateCompanyRequest) *repository.CompanyUpdate {
	upd := &repository.CompanyUpdate{}

	upd.CompanyName = cleanOpt(req.CompanyName)
	upd.Address = cleanOpt(req.Address)
	upd.City = cleanOpt(req.City)
	upd.State = cleanOpt(req.State)
	upd.Country = cleanOpt(req.Country)
	upd.PostalCode = cleanOpt(req.PostalCode)
	upd.Industry = cleanOpt(req.Industry)
	upd.Website = cleanOpt(req.Website)
	upd.Description = cleanOpt(req.Description)
	upd.CompanySize = cleanOpt(req.CompanySize)
	upd.Email = cleanOpt(req.Email)
	upd.Phone = cleanOpt(req.Phone)
	upd.Mission = cleanOpt(req.Mission)
	upd.Vision = cleanOpt(req.Vision)
	upd.FoundingStory = cleanOpt(req.FoundingStory)

	if req.FoundedDate != nil && strings.TrimSpace(*req.FoundedDate) != "" {
		if d, err := parseDate(strings.TrimSpace(*req.FoundedDate)); err == nil {
			upd.FoundedDate = &d
		}
	}

	if req.SocialLinks != nil {
		upd.SocialLinks = sanitizeLinks(req.SocialLinks)
	}

	return upd
}

// AttachAsset uploads an image and writes its hosted URL to the profile
// row. With requireExisting false (the upload-* routes), a missing
// profile is auto-created with sentinel values first; with true (the
// edit-* routes), a missing profile is an error.
func (uc *CompanyUsecase) AttachAsset(ctx context.Context, ownerID int64, ownerEmail string, kind domain.AssetKind, src assets.Source, requireExisting bool) (string, *domain.CompanyProfile, error) {
	_, err := uc.companies.GetByOwner(ctx, ownerID)
	if errors.Is(err, xerrors.ErrNotFound) {
		if requireExisting {
			return "", nil, xerrors.ErrCompanyNotFound
		}
		email := ownerEmail
		placeholder := &domain.CompanyProfile{
			OwnerID:     ownerID,
			CompanyName: domain.SentinelCompanyName,
			Address:     domain.SentinelAddress,
			City:        domain.SentinelAddress,
			State:       domain.SentinelAddress,
			Country:     domain.SentinelAddress,
			PostalCode:  domain.SentinelPostalCode,
			Industry:    domain.SentinelIndustry,
			Email:       &email,
		}
		if _, err := uc.companies.Create(ctx, placeholder); err != nil {
			// A concurrent upload may have created the row already.
			if !errors.Is(err, xerrors.ErrCompanyExists) {
				return "", nil, err
			}
		}
		uc.logger.Info("placeholder profile auto-created", zap.Int64("owner_id", ownerID))
	} else if err != nil {
		return "", nil, err
	}

	folder := uc.baseFolder + "/logos"
	if kind == domain.AssetBanner {
		folder = uc.baseFolder + "/banners"
	}

	url, err := uc.uploader.Upload(ctx, src, folder)
	if err != nil {
		return "", nil, err
	}

	profile, err := uc.companies.SetAssetURL(ctx, ownerID, kind.Column(), url)
	if err != nil {
		return "", nil, err
	}

	uc.logger.Info("asset attached",
		zap.Int64("owner_id", ownerID), zap.String("kind", string(kind)), zap.String("url", url))
	return url, profile, nil
}

// cleanOpt trims and sanitizes a string field, dropping it from the
// update set when it is absent or trimmed-empty.
func cleanOpt(v *string) *string {
	if v == nil {
		return nil
	}
	s := utils.Sanitize(*v)
	if s == "" {
		return nil
	}
	return &s
}

// sanitizeOpt keeps nil for absent fields but does not drop
// trimmed-empty values (creation treats them as provided blanks).
func sanitizeOpt(v *string) *string {
	if v == nil {
		return nil
	}
	s := utils.Sanitize(*v)
	return &s
}

// sanitizeLinks applies the per-platform rules: values are trimmed and
// sanitized, and empty strings survive so a single link can be cleared.
// Unknown platform keys are ignored.
func sanitizeLinks(links domain.SocialLinks) domain.SocialLinks {
	out := domain.SocialLinks{}
	for _, platform := range domain.SocialPlatforms {
		if v, ok := links[platform]; ok {
			out[platform] = utils.Sanitize(v)
		}
	}
	return out
}

func parseDate(v string) (time.Time, error) {
	if d, err := time.Parse("2006-01-02", v); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, v)
}
