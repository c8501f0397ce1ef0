package client

import (
	"context"
	"strings"
)

// ProfileForm holds the flat setup-wizard fields. Names mirror the form
// inputs; DiffProfileForm translates them to API field paths.
type ProfileForm struct {
	Name          string
	Description   string
	Website       string
	Industry      string
	Size          string
	Address       string
	City          string
	State         string
	Country       string
	ZipCode       string
	FoundedYear   string
	FoundingStory string
	Mission       string
	Vision        string
	Email         string
	Phone         string
	LinkedinURL   string
	TwitterURL    string
	FacebookURL   string
	InstagramURL  string
}

type fieldRule struct {
	formValue func(ProfileForm) string
	current   func(*Profile) string
	apply     func(map[string]interface{}, string)
}

func scalar(name string, get func(ProfileForm) string, cur func(*Profile) string) fieldRule {
	return fieldRule{
		formValue: get,
		current:   cur,
		apply: func(m map[string]interface{}, v string) {
			m[name] = v
		},
	}
}

func social(platform string, get func(ProfileForm) string) fieldRule {
	return fieldRule{
		formValue: get,
		current: func(p *Profile) string {
			return p.SocialLinks[platform]
		},
		apply: func(m map[string]interface{}, v string) {
			links, _ := m["social_links"].(map[string]string)
			if links == nil {
				links = map[string]string{}
				m["social_links"] = links
			}
			links[platform] = v
		},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var profileFields = []fieldRule{
	scalar("company_name", func(f ProfileForm) string { return f.Name }, func(p *Profile) string { return p.CompanyName }),
	scalar("description", func(f ProfileForm) string { return f.Description }, func(p *Profile) string { return deref(p.Description) }),
	scalar("website", func(f ProfileForm) string { return f.Website }, func(p *Profile) string { return deref(p.Website) }),
	scalar("industry", func(f ProfileForm) string { return f.Industry }, func(p *Profile) string { return p.Industry }),
	scalar("company_size", func(f ProfileForm) string { return f.Size }, func(p *Profile) string { return deref(p.CompanySize) }),
	scalar("address", func(f ProfileForm) string { return f.Address }, func(p *Profile) string { return p.Address }),
	scalar("city", func(f ProfileForm) string { return f.City }, func(p *Profile) string { return p.City }),
	scalar("state", func(f ProfileForm) string { return f.State }, func(p *Profile) string { return p.State }),
	scalar("country", func(f ProfileForm) string { return f.Country }, func(p *Profile) string { return p.Country }),
	scalar("postal_code", func(f ProfileForm) string { return f.ZipCode }, func(p *Profile) string { return p.PostalCode }),
	{
		// The form carries a bare year; the API stores a full date.
		formValue: func(f ProfileForm) string {
			if strings.TrimSpace(f.FoundedYear) == "" {
				return ""
			}
			return strings.TrimSpace(f.FoundedYear) + "-01-01"
		},
		current: func(p *Profile) string { return deref(p.FoundedDate) },
		apply: func(m map[string]interface{}, v string) {
			m["founded_date"] = v
		},
	},
	scalar("founding_story", func(f ProfileForm) string { return f.FoundingStory }, func(p *Profile) string { return deref(p.FoundingStory) }),
	scalar("mission", func(f ProfileForm) string { return f.Mission }, func(p *Profile) string { return deref(p.Mission) }),
	scalar("vision", func(f ProfileForm) string { return f.Vision }, func(p *Profile) string { return deref(p.Vision) }),
	scalar("email", func(f ProfileForm) string { return f.Email }, func(p *Profile) string { return deref(p.Email) }),
	scalar("phone", func(f ProfileForm) string { return f.Phone }, func(p *Profile) string { return deref(p.Phone) }),
	social("linkedin", func(f ProfileForm) string { return f.LinkedinURL }),
	social("twitter", func(f ProfileForm) string { return f.TwitterURL }),
	social("facebook", func(f ProfileForm) string { return f.FacebookURL }),
	social("instagram", func(f ProfileForm) string { return f.InstagramURL }),
}

// DiffProfileForm compares the form against the current profile and
// returns the update payload containing only changed fields. Both sides
// are compared as trimmed strings, so whitespace-only edits do not count
// as changes. When current is nil every non-empty field is included.
// The second return is false when nothing changed.
func DiffProfileForm(form ProfileForm, current *Profile) (map[string]interface{}, bool) {
	updates := map[string]interface{}{}
	for _, f := range profileFields {
		formVal := strings.TrimSpace(f.formValue(form))
		var curVal string
		if current != nil {
			curVal = strings.TrimSpace(f.current(current))
		}
		if current == nil {
			if formVal != "" {
				f.apply(updates, formVal)
			}
			continue
		}
		if formVal != curVal {
			f.apply(updates, formVal)
		}
	}
	return updates, len(updates) > 0
}

// SaveProfile creates the profile when none exists, otherwise sends only
// the changed fields. An unchanged form is a no-op: the current profile
// is returned without a network call.
func (c *Client) SaveProfile(ctx context.Context, form ProfileForm) (*Profile, error) {
	current, err := c.GetCompany(ctx)
	if err != nil {
		return nil, err
	}
	updates, changed := DiffProfileForm(form, current)
	if current == nil {
		return c.CreateCompany(ctx, updates)
	}
	if !changed {
		return current, nil
	}
	return c.UpdateCompany(ctx, updates)
}
