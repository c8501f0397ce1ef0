package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"company-service/pkg/client"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func existingProfile() *client.Profile {
	return &client.Profile{
		ID:          1,
		OwnerID:     7,
		CompanyName: "Acme Corp",
		Address:     "1 Main St",
		City:        "Nairobi",
		State:       "Nairobi",
		Country:     "Kenya",
		PostalCode:  "00100",
		Industry:    "Technology",
		Website:     strPtr("https://acme.example.com"),
		FoundedDate: strPtr("2015-01-01"),
		SocialLinks: map[string]string{"linkedin": "https://linkedin.com/company/acme"},
	}
}

func matchingForm() client.ProfileForm {
	return client.ProfileForm{
		Name:        "Acme Corp",
		Address:     "1 Main St",
		City:        "Nairobi",
		State:       "Nairobi",
		Country:     "Kenya",
		ZipCode:     "00100",
		Industry:    "Technology",
		Website:     "https://acme.example.com",
		FoundedYear: "2015",
		LinkedinURL: "https://linkedin.com/company/acme",
	}
}

func TestDiffNoChanges(t *testing.T) {
	updates, changed := client.DiffProfileForm(matchingForm(), existingProfile())
	require.False(t, changed)
	require.Empty(t, updates)
}

func TestDiffWhitespaceOnlyEditIsNoChange(t *testing.T) {
	form := matchingForm()
	form.Name = "  Acme Corp  "
	form.City = "Nairobi "

	_, changed := client.DiffProfileForm(form, existingProfile())
	require.False(t, changed)
}

func TestDiffChangedFields(t *testing.T) {
	form := matchingForm()
	form.Name = "Acme Reborn"
	form.ZipCode = "00200"
	form.Description = "We make everything."

	updates, changed := client.DiffProfileForm(form, existingProfile())
	require.True(t, changed)
	require.Equal(t, "Acme Reborn", updates["company_name"])
	require.Equal(t, "00200", updates["postal_code"])
	require.Equal(t, "We make everything.", updates["description"])
	require.NotContains(t, updates, "address")
	require.NotContains(t, updates, "industry")
}

func TestDiffFoundedYearExpandsToDate(t *testing.T) {
	form := matchingForm()
	form.FoundedYear = "2020"

	updates, changed := client.DiffProfileForm(form, existingProfile())
	require.True(t, changed)
	require.Equal(t, "2020-01-01", updates["founded_date"])
}

func TestDiffSocialLinksGrouped(t *testing.T) {
	form := matchingForm()
	form.LinkedinURL = ""
	form.TwitterURL = "https://twitter.com/acme"

	updates, changed := client.DiffProfileForm(form, existingProfile())
	require.True(t, changed)

	links, ok := updates["social_links"].(map[string]string)
	require.True(t, ok)
	// clearing one platform and setting another travel in the same map
	require.Equal(t, "", links["linkedin"])
	require.Equal(t, "https://twitter.com/acme", links["twitter"])
	require.NotContains(t, links, "facebook")
}

func TestDiffAgainstNilIncludesNonEmptyOnly(t *testing.T) {
	form := client.ProfileForm{
		Name:    "Fresh Co",
		Address: "2 Side St",
	}
	updates, changed := client.DiffProfileForm(form, nil)
	require.True(t, changed)
	require.Equal(t, "Fresh Co", updates["company_name"])
	require.Equal(t, "2 Side St", updates["address"])
	require.NotContains(t, updates, "city")
	require.NotContains(t, updates, "social_links")
}

func envelope(data interface{}) []byte {
	b, _ := json.Marshal(map[string]interface{}{
		"success": true,
		"message": "ok",
		"data":    data,
	})
	return b
}

func TestSaveProfileUnchangedSkipsNetwork(t *testing.T) {
	var updateCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/company/profile":
			w.Write(envelope(existingProfile()))
		case r.Method == http.MethodPut && r.URL.Path == "/api/company/profile":
			atomic.AddInt32(&updateCalls, 1)
			w.Write(envelope(existingProfile()))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"success":false,"message":"Route not found"}`))
		}
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	c.SetToken("test-token")

	p, err := c.SaveProfile(context.Background(), matchingForm())
	require.Nil(t, err)
	require.Equal(t, "Acme Corp", p.CompanyName)
	require.Equal(t, int32(0), atomic.LoadInt32(&updateCalls))
}

func TestSaveProfileSendsOnlyChanges(t *testing.T) {
	var sent map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/company/profile":
			w.Write(envelope(existingProfile()))
		case r.Method == http.MethodPut && r.URL.Path == "/api/company/profile":
			json.NewDecoder(r.Body).Decode(&sent)
			updated := existingProfile()
			updated.CompanyName = "Acme Reborn"
			w.Write(envelope(updated))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"success":false,"message":"Route not found"}`))
		}
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	c.SetToken("test-token")

	form := matchingForm()
	form.Name = "Acme Reborn"
	p, err := c.SaveProfile(context.Background(), form)
	require.Nil(t, err)
	require.Equal(t, "Acme Reborn", p.CompanyName)
	require.Equal(t, map[string]interface{}{"company_name": "Acme Reborn"}, sent)
}

func TestSaveProfileCreatesWhenAbsent(t *testing.T) {
	var created map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/company/profile":
			w.Write(envelope(nil))
		case r.Method == http.MethodPost && r.URL.Path == "/api/company/register":
			json.NewDecoder(r.Body).Decode(&created)
			w.WriteHeader(http.StatusCreated)
			w.Write(envelope(existingProfile()))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"success":false,"message":"Route not found"}`))
		}
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	c.SetToken("test-token")

	p, err := c.SaveProfile(context.Background(), matchingForm())
	require.Nil(t, err)
	require.NotNil(t, p)
	require.Equal(t, "Acme Corp", created["company_name"])
}

func TestClientAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	_, err := c.Login(context.Background(), "a@b.com", "wrong")
	require.NotNil(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, "Invalid credentials", apiErr.Message)
}
