// Package remote implements the data-access service interfaces against an
// upstream HTTP API exposing the same resource paths as this server. The
// upstream is required to use identical field names and status vocabulary, so
// handlers can be wired to either implementation without changing call sites.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	apperrors "practicas/internal/errors"
	"practicas/internal/model"
	"practicas/internal/repository"
	"practicas/internal/service"
)

// Client is a typed HTTP client for the upstream placement API. It implements
// the offer, application, user and metrics service interfaces; authentication
// stays local because tokens are owned by this server.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

var (
	_ service.OfferService       = (*Client)(nil)
	_ service.ApplicationService = (*Client)(nil)
	_ service.UserService        = (*Client)(nil)
	_ service.MetricsService     = (*Client)(nil)
)

// New creates a remote client. The token, if set, is sent as a bearer token
// on every request.
func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("upstream API error %d: %s", e.Code, e.Body)
}

// notFound rewrites upstream 404 responses into the matching domain error so
// callers see the same failure taxonomy as with the local provider.
func notFound(err, domainErr error) error {
	if se, ok := err.(*statusError); ok && se.Code == http.StatusNotFound {
		return domainErr
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return &statusError{Code: resp.StatusCode, Body: string(bodyBytes)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// --- offers ---

func (c *Client) ListOffers(ctx context.Context, filter repository.OfferFilter) ([]model.Offer, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.CompanyID != 0 {
		query.Set("company_id", strconv.FormatUint(uint64(filter.CompanyID), 10))
	}
	if filter.Career != "" {
		query.Set("career", filter.Career)
	}
	if filter.Type != "" {
		query.Set("type", filter.Type)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}

	var offers []model.Offer
	if err := c.do(ctx, http.MethodGet, "/offers", query, nil, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

func (c *Client) GetOffer(ctx context.Context, id uint) (*model.Offer, error) {
	var offer model.Offer
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/offers/%d", id), nil, nil, &offer); err != nil {
		return nil, notFound(err, apperrors.ErrOfferNotFound)
	}
	return &offer, nil
}

func (c *Client) CreateOffer(ctx context.Context, offer *model.Offer) (*model.Offer, error) {
	var created model.Offer
	if err := c.do(ctx, http.MethodPost, "/offers", nil, offer, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateOffer(ctx context.Context, id uint, update service.OfferUpdate) (*model.Offer, error) {
	var updated model.Offer
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/offers/%d", id), nil, update, &updated); err != nil {
		return nil, notFound(err, apperrors.ErrOfferNotFound)
	}
	return &updated, nil
}

func (c *Client) DeleteOffer(ctx context.Context, id uint) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/offers/%d", id), nil, nil, nil); err != nil {
		// Deleting an absent offer is a no-op locally; mirror that here.
		if se, ok := err.(*statusError); ok && se.Code == http.StatusNotFound {
			return nil
		}
		return err
	}
	return nil
}

// --- applications ---

type applyRequest struct {
	StudentID       uint                  `json:"student_id"`
	ProfileSnapshot model.ProfileSnapshot `json:"profile_snapshot"`
}

func (c *Client) Apply(ctx context.Context, offerID, studentID uint, snapshot model.ProfileSnapshot) (*model.Application, error) {
	req := applyRequest{StudentID: studentID, ProfileSnapshot: snapshot}
	var app model.Application
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/offers/%d/apply", offerID), nil, req, &app); err != nil {
		return nil, notFound(err, apperrors.ErrOfferNotFound)
	}
	return &app, nil
}

type reviewRequest struct {
	Status string `json:"status"`
	service.AdminReviewOptions
}

func (c *Client) CompanyReview(ctx context.Context, id uint, status string) (*model.Application, error) {
	var app model.Application
	req := reviewRequest{Status: status}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/applications/%d/company-review", id), nil, req, &app); err != nil {
		return nil, notFound(err, apperrors.ErrApplicationNotFound)
	}
	return &app, nil
}

func (c *Client) AdminReview(ctx context.Context, id uint, status string, opts service.AdminReviewOptions) (*model.Application, error) {
	var app model.Application
	req := reviewRequest{Status: status, AdminReviewOptions: opts}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/applications/%d/admin-review", id), nil, req, &app); err != nil {
		return nil, notFound(err, apperrors.ErrApplicationNotFound)
	}
	return &app, nil
}

func (c *Client) ListForStudent(ctx context.Context, studentID uint) ([]model.Application, error) {
	var apps []model.Application
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/students/%d/applications", studentID), nil, nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (c *Client) ListForOffer(ctx context.Context, offerID uint) ([]model.Application, error) {
	var apps []model.Application
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/offers/%d/applicants", offerID), nil, nil, &apps); err != nil {
		return nil, notFound(err, apperrors.ErrOfferNotFound)
	}
	return apps, nil
}

func (c *Client) ListAll(ctx context.Context, status string) ([]model.Application, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	var apps []model.Application
	if err := c.do(ctx, http.MethodGet, "/applications", query, nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// --- users ---

func (c *Client) ListUsers(ctx context.Context, filter repository.UserFilter) ([]model.User, error) {
	query := url.Values{}
	if filter.Role != "" {
		query.Set("role", filter.Role)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/admin/users", query, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/admin/users/%d", id), nil, nil, &user); err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound)
	}
	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, id uint, update service.UserUpdate) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/users/%d", id), nil, update, &user); err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound)
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id uint) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/users/%d", id), nil, nil, nil); err != nil {
		if se, ok := err.(*statusError); ok && se.Code == http.StatusNotFound {
			return nil
		}
		return err
	}
	return nil
}

// --- metrics ---

func (c *Client) AdminMetrics(ctx context.Context) (*service.Metrics, error) {
	var m service.Metrics
	if err := c.do(ctx, http.MethodGet, "/admin/metrics", nil, nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
