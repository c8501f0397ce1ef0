// Package client is a Go SDK for the company-service REST API. Profile
// saves go through the same field-diff the web wizard performs: only
// changed fields are sent, and an unchanged form never hits the network.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken installs the bearer token used on protected routes.
func (c *Client) SetToken(token string) { c.token = token }

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Details []string        `json:"details"`
}

// APIError is a non-2xx response from the service.
type APIError struct {
	Status  int
	Message string
	Details []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type RegisterInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"full_name"`
	Gender     string `json:"gender"`
	MobileNo   string `json:"mobile_no"`
	SignupType string `json:"signup_type"`
}

type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
	Gender    string `json:"gender"`
	MobileNo  string `json:"mobileNo"`
}

// Profile mirrors the company_profile row as served by the API.
type Profile struct {
	ID            int64             `json:"id"`
	OwnerID       int64             `json:"owner_id"`
	CompanyName   string            `json:"company_name"`
	Address       string            `json:"address"`
	City          string            `json:"city"`
	State         string            `json:"state"`
	Country       string            `json:"country"`
	PostalCode    string            `json:"postal_code"`
	Website       *string           `json:"website"`
	LogoURL       *string           `json:"logo_url"`
	BannerURL     *string           `json:"banner_url"`
	Industry      string            `json:"industry"`
	FoundedDate   *string           `json:"founded_date"`
	Description   *string           `json:"description"`
	SocialLinks   map[string]string `json:"social_links"`
	CompanySize   *string           `json:"company_size"`
	Email         *string           `json:"email"`
	Phone         *string           `json:"phone"`
	Mission       *string           `json:"mission"`
	Vision        *string           `json:"vision"`
	FoundingStory *string           `json:"founding_story"`
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (int64, error) {
	if in.SignupType == "" {
		in.SignupType = "e"
	}
	var out struct {
		UserID int64 `json:"user_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", in, &out); err != nil {
		return 0, err
	}
	return out.UserID, nil
}

// Login authenticates and installs the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}
	var out struct {
		Token string `json:"token"`
		User  *User  `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return out.User, nil
}

func (c *Client) VerifyEmail(ctx context.Context, userID int64) error {
	return c.do(ctx, http.MethodGet, fmt.Sprintf("/api/auth/verify-email?user_id=%d", userID), nil, nil)
}

func (c *Client) VerifyMobile(ctx context.Context, userID int64, otp string) error {
	body := map[string]interface{}{"user_id": userID, "otp": otp}
	return c.do(ctx, http.MethodPost, "/api/auth/verify-mobile", body, nil)
}

func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &APIError{Status: resp.StatusCode, Message: "health check failed"}
	}
	return nil
}

func (c *Client) CreateCompany(ctx context.Context, payload map[string]interface{}) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodPost, "/api/company/register", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCompany returns nil when no profile exists yet.
func (c *Client) GetCompany(ctx context.Context) (*Profile, error) {
	var out *Profile
	if err := c.do(ctx, http.MethodGet, "/api/company/profile", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateCompany(ctx context.Context, updates map[string]interface{}) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodPut, "/api/company/profile", updates, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadLogo sends a multipart logo image; the service auto-creates the
// profile when none exists.
func (c *Client) UploadLogo(ctx context.Context, filename string, data []byte) (string, *Profile, error) {
	return c.upload(ctx, http.MethodPost, "/api/company/upload-logo", "logo", filename, data)
}

func (c *Client) UploadBanner(ctx context.Context, filename string, data []byte) (string, *Profile, error) {
	return c.upload(ctx, http.MethodPost, "/api/company/upload-banner", "banner", filename, data)
}

// EditLogo replaces the logo on an existing profile; it fails with a 404
// when no profile exists.
func (c *Client) EditLogo(ctx context.Context, filename string, data []byte) (string, *Profile, error) {
	return c.upload(ctx, http.MethodPut, "/api/company/edit-logo", "logo", filename, data)
}

func (c *Client) EditBanner(ctx context.Context, filename string, data []byte) (string, *Profile, error) {
	return c.upload(ctx, http.MethodPut, "/api/company/edit-banner", "banner", filename, data)
}

func (c *Client) upload(ctx context.Context, method, path, field, filename string, data []byte) (string, *Profile, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return "", nil, err
	}
	if _, err := part.Write(data); err != nil {
		return "", nil, err
	}
	if err := mw.Close(); err != nil {
		return "", nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	var out struct {
		URL     string   `json:"url"`
		Company *Profile `json:"company"`
	}
	if err := c.send(req, &out); err != nil {
		return "", nil, err
	}
	return out.URL, out.Company, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Message, Details: env.Details}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}
