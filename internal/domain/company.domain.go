package domain

import "time"

// SocialLinks maps a platform name (linkedin, twitter, facebook,
// instagram) to a URL. Empty string means the link was explicitly
// cleared; an absent key means it was never touched.
type SocialLinks map[string]string

// SocialPlatforms are the platform keys accepted in social_links.
var SocialPlatforms = []string{"linkedin", "twitter", "facebook", "instagram"}

type CompanyProfile struct {
	ID            int64       `json:"id"`
	OwnerID       int64       `json:"owner_id"`
	CompanyName   string      `json:"company_name"`
	Address       string      `json:"address"`
	City          string      `json:"city"`
	State         string      `json:"state"`
	Country       string      `json:"country"`
	PostalCode    string      `json:"postal_code"`
	Website       *string     `json:"website"`
	LogoURL       *string     `json:"logo_url"`
	BannerURL     *string     `json:"banner_url"`
	Industry      string      `json:"industry"`
	FoundedDate   *time.Time  `json:"founded_date"`
	Description   *string     `json:"description"`
	SocialLinks   SocialLinks `json:"social_links"`
	CompanySize   *string     `json:"company_size"`
	Email         *string     `json:"email"`
	Phone         *string     `json:"phone"`
	Mission       *string     `json:"mission"`
	Vision        *string     `json:"vision"`
	FoundingStory *string     `json:"founding_story"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// AssetKind selects which image column an upload attaches to.
type AssetKind string

const (
	AssetLogo   AssetKind = "logo"
	AssetBanner AssetKind = "banner"
)

func (k AssetKind) Column() string {
	if k == AssetBanner {
		return "banner_url"
	}
	return "logo_url"
}

// Sentinel placeholder values used when an asset upload arrives before
// any profile exists and a row has to be auto-created to attach to.
const (
	SentinelCompanyName = "My Company"
	SentinelAddress     = "TBD"
	SentinelPostalCode  = "00000"
	SentinelIndustry    = "Technology"
)
