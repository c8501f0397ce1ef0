package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"company-service/internal/domain"
	xerrors "company-service/pkg/xerrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const companyColumns = `
	id, owner_id, company_name, address, city, state, country, postal_code,
	website, logo_url, banner_url, industry, founded_date, description,
	social_links, company_size, email, phone, mission, vision, founding_story,
	created_at, updated_at`

// CompanyUpdate is a partial-update set: only non-nil fields are written.
// SocialLinks is merged into the stored jsonb key-by-key, never replaced
// wholesale, so platform keys absent from an update survive it.
type CompanyUpdate struct {
	CompanyName   *string
	Address       *string
	City          *string
	State         *string
	Country       *string
	PostalCode    *string
	Website       *string
	Industry      *string
	FoundedDate   *time.Time
	Description   *string
	SocialLinks   domain.SocialLinks
	CompanySize   *string
	Email         *string
	Phone         *string
	Mission       *string
	Vision        *string
	FoundingStory *string
}

type CompanyRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCompanyRepository(db *pgxpool.Pool, logger *zap.Logger) *CompanyRepository {
	return &CompanyRepository{db: db, logger: logger}
}

// Create inserts the single profile row for an owner. The unique
// constraint on owner_id is the authoritative "one profile per user"
// guard; a violation maps to ErrCompanyExists even when two creates
// race past the service-level existence check.
func (r *CompanyRepository) Create(ctx context.Context, p *domain.CompanyProfile) (*domain.CompanyProfile, error) {
	var linksJSON []byte
	if len(p.SocialLinks) > 0 {
		linksJSON, _ = json.Marshal(p.SocialLinks)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO company_profile
			(owner_id, company_name, address, city, state, country, postal_code,
			 website, logo_url, banner_url, industry, founded_date, description,
			 social_links, company_size, email, phone, mission, vision, founding_story)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		RETURNING `+companyColumns,
		p.OwnerID, p.CompanyName, p.Address, p.City, p.State, p.Country, p.PostalCode,
		p.Website, p.LogoURL, p.BannerURL, p.Industry, p.FoundedDate, p.Description,
		linksJSON, p.CompanySize, p.Email, p.Phone, p.Mission, p.Vision, p.FoundingStory,
	)

	created, err := scanCompany(row)
	if err != nil {
		if xerrors.IsUniqueViolation(err) {
			return nil, xerrors.ErrCompanyExists
		}
		r.logger.Error("failed to create company profile",
			zap.Int64("owner_id", p.OwnerID), zap.Error(err))
		return nil, fmt.Errorf("create company profile: %w", err)
	}
	return created, nil
}

func (r *CompanyRepository) GetByOwner(ctx context.Context, ownerID int64) (*domain.CompanyProfile, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+companyColumns+`
		FROM company_profile
		WHERE owner_id = $1
	`, ownerID)

	p, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrNotFound
		}
		return nil, fmt.Errorf("get company by owner: %w", err)
	}
	return p, nil
}

// UpdateByOwner applies a partial update and returns the updated row.
// An empty update set degenerates to a read. A vanished owner row maps
// to ErrNotFound.
func (r *CompanyRepository) UpdateByOwner(ctx context.Context, ownerID int64, upd *CompanyUpdate) (*domain.CompanyProfile, error) {
	sets := []string{}
	args := []interface{}{ownerID}
	argPos := 2

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if upd.CompanyName != nil {
		add("company_name", *upd.CompanyName)
	}
	if upd.Address != nil {
		add("address", *upd.Address)
	}
	if upd.City != nil {
		add("city", *upd.City)
	}
	if upd.State != nil {
		add("state", *upd.State)
	}
	if upd.Country != nil {
		add("country", *upd.Country)
	}
	if upd.PostalCode != nil {
		add("postal_code", *upd.PostalCode)
	}
	if upd.Website != nil {
		add("website", *upd.Website)
	}
	if upd.Industry != nil {
		add("industry", *upd.Industry)
	}
	if upd.FoundedDate != nil {
		add("founded_date", *upd.FoundedDate)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.SocialLinks != nil {
		linksJSON, _ := json.Marshal(upd.SocialLinks)
		sets = append(sets, fmt.Sprintf("social_links = COALESCE(social_links, '{}'::jsonb) || $%d::jsonb", argPos))
		args = append(args, linksJSON)
		argPos++
	}
	if upd.CompanySize != nil {
		add("company_size", *upd.CompanySize)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.Phone != nil {
		add("phone", *upd.Phone)
	}
	if upd.Mission != nil {
		add("mission", *upd.Mission)
	}
	if upd.Vision != nil {
		add("vision", *upd.Vision)
	}
	if upd.FoundingStory != nil {
		add("founding_story", *upd.FoundingStory)
	}

	if len(sets) == 0 {
		return r.GetByOwner(ctx, ownerID)
	}

	query := fmt.Sprintf(`
		UPDATE company_profile
		SET %s, updated_at = NOW()
		WHERE owner_id = $1
		RETURNING %s
	`, strings.Join(sets, ", "), companyColumns)

	row := r.db.QueryRow(ctx, query, args...)
	p, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrNotFound
		}
		r.logger.Error("failed to update company profile",
			zap.Int64("owner_id", ownerID), zap.Error(err))
		return nil, fmt.Errorf("update company profile: %w", err)
	}
	return p, nil
}

// SetAssetURL writes a hosted image URL into the asset column picked by
// domain.AssetKind.Column and returns the updated row.
func (r *CompanyRepository) SetAssetURL(ctx context.Context, ownerID int64, column, url string) (*domain.CompanyProfile, error) {
	query := fmt.Sprintf(`
		UPDATE company_profile
		SET %s = $2, updated_at = NOW()
		WHERE owner_id = $1
		RETURNING %s
	`, column, companyColumns)

	row := r.db.QueryRow(ctx, query, ownerID, url)
	p, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrNotFound
		}
		r.logger.Error("failed to set asset url",
			zap.Int64("owner_id", ownerID), zap.String("column", column), zap.Error(err))
		return nil, fmt.Errorf("set asset url: %w", err)
	}
	return p, nil
}

func scanCompany(row pgx.Row) (*domain.CompanyProfile, error) {
	var (
		p        domain.CompanyProfile
		linksRaw []byte
	)
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.CompanyName, &p.Address, &p.City, &p.State,
		&p.Country, &p.PostalCode, &p.Website, &p.LogoURL, &p.BannerURL,
		&p.Industry, &p.FoundedDate, &p.Description, &linksRaw, &p.CompanySize,
		&p.Email, &p.Phone, &p.Mission, &p.Vision, &p.FoundingStory,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(linksRaw) > 0 {
		if err := json.Unmarshal(linksRaw, &p.SocialLinks); err != nil {
			return nil, fmt.Errorf("decode social_links: %w", err)
		}
	}
	return &p, nil
}
