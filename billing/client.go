// Package billing is the typed client for the remote NetPesa billing API.
// Every domain operation in the panel maps to exactly one method here; the
// client attaches bearer auth, normalizes error shapes, and remaps the
// snake_case wire format into camelCase view models. It never retries and
// never caches — callers own both concerns.
package billing

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	json "github.com/goccy/go-json"
)

const genericErrorMsg = "an error occurred"

// TokenSource supplies the bearer token for authenticated calls. It is
// injected so tests and the CLI can run without the settings store.
type TokenSource interface {
	APIToken() (string, error)
}

// StaticToken is a fixed-token TokenSource.
type StaticToken string

func (t StaticToken) APIToken() (string, error) { return string(t), nil }

// Config carries the client's construction parameters.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

// APIError is a normalized upstream failure: the server-provided message
// when the body was parseable JSON, a generic one otherwise.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// Client issues HTTP calls against the billing API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// NewClient builds a Client. A nil HTTPClient falls back to a plain
// http.Client with no timeout; a hung request is the caller's context to
// cancel.
func NewClient(cfg Config, tokens TokenSource) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    httpClient,
		tokens:  tokens,
	}
}

// Login exchanges credentials for an upstream API token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	data, err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, false)
	if err != nil {
		return "", err
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if resp.Token == "" {
		return "", &APIError{StatusCode: http.StatusOK, Message: "login response carried no token"}
	}
	return resp.Token, nil
}

// ListCustomers returns one server-driven page of customers.
func (c *Client) ListCustomers(ctx context.Context, params CustomerParams) ([]Customer, *Pagination, error) {
	q := url.Values{}
	params.encode(q)
	data, err := c.do(ctx, http.MethodGet, "/customers", q, nil, true)
	if err != nil {
		return nil, nil, err
	}
	wires, pg, err := decodePage[customerWire](data)
	if err != nil {
		return nil, nil, err
	}
	out := make([]Customer, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toView())
	}
	return out, pg, nil
}

// ListPlans returns all plans.
func (c *Client) ListPlans(ctx context.Context) ([]Plan, error) {
	data, err := c.do(ctx, http.MethodGet, "/plans", nil, nil, true)
	if err != nil {
		return nil, err
	}
	wires, err := decodeArray[planWire](data)
	if err != nil {
		return nil, err
	}
	out := make([]Plan, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toView())
	}
	return out, nil
}

// PlanInput is the create payload for a plan.
type PlanInput struct {
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	DurationValue  int     `json:"duration_value"`
	DurationUnit   string  `json:"duration_unit"`
	SpeedMbps      int     `json:"speed_mbps"`
	ConnectionType string  `json:"connection_type"`
}

// CreatePlan creates a plan and returns the stored entity.
func (c *Client) CreatePlan(ctx context.Context, input PlanInput) (*Plan, error) {
	data, err := c.do(ctx, http.MethodPost, "/plans", nil, input, true)
	if err != nil {
		return nil, err
	}
	var w planWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	plan := w.toView()
	return &plan, nil
}

// DeletePlan removes a plan.
func (c *Client) DeletePlan(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, "/plans/"+strconv.Itoa(id), nil, nil, true)
	return err
}

// ListAds returns all ads.
func (c *Client) ListAds(ctx context.Context) ([]Ad, error) {
	data, err := c.do(ctx, http.MethodGet, "/ads", nil, nil, true)
	if err != nil {
		return nil, err
	}
	wires, err := decodeArray[adWire](data)
	if err != nil {
		return nil, err
	}
	out := make([]Ad, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toView())
	}
	return out, nil
}

// GetAd returns one ad.
func (c *Client) GetAd(ctx context.Context, id int) (*Ad, error) {
	data, err := c.do(ctx, http.MethodGet, "/ads/"+strconv.Itoa(id), nil, nil, true)
	if err != nil {
		return nil, err
	}
	var w adWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode ad: %w", err)
	}
	ad := w.toView()
	return &ad, nil
}

// AdInput is the create payload for an ad.
type AdInput struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	SellerName   string  `json:"seller_name"`
	SellerPhone  string  `json:"seller_phone"`
	Badge        string  `json:"badge"`
	Active       bool    `json:"active"`
	ExpiresAt    string  `json:"expires_at"`
	AdvertiserId int     `json:"advertiser_id"`
}

// CreateAd creates an ad and returns the stored entity.
func (c *Client) CreateAd(ctx context.Context, input AdInput) (*Ad, error) {
	data, err := c.do(ctx, http.MethodPost, "/ads", nil, input, true)
	if err != nil {
		return nil, err
	}
	var w adWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode ad: %w", err)
	}
	ad := w.toView()
	return &ad, nil
}

// UpdateAd patches an ad with the given wire fields. Use DiffAd to compute
// them so unchanged fields stay out of the payload.
func (c *Client) UpdateAd(ctx context.Context, id int, fields map[string]any) (*Ad, error) {
	data, err := c.do(ctx, http.MethodPatch, "/ads/"+strconv.Itoa(id), nil, fields, true)
	if err != nil {
		return nil, err
	}
	var w adWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode ad: %w", err)
	}
	ad := w.toView()
	return &ad, nil
}

// DeleteAd removes an ad.
func (c *Client) DeleteAd(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, "/ads/"+strconv.Itoa(id), nil, nil, true)
	return err
}

// DiffAd maps only the fields that differ between the original and edited
// ad to their wire names, so an update payload never carries unchanged
// fields.
func DiffAd(orig, edited Ad) map[string]any {
	fields := make(map[string]any)
	if edited.Title != orig.Title {
		fields["title"] = edited.Title
	}
	if edited.Description != orig.Description {
		fields["description"] = edited.Description
	}
	if edited.Price != orig.Price {
		fields["price"] = edited.Price
	}
	if edited.SellerName != orig.SellerName {
		fields["seller_name"] = edited.SellerName
	}
	if edited.SellerPhone != orig.SellerPhone {
		fields["seller_phone"] = edited.SellerPhone
	}
	if edited.Badge != orig.Badge {
		fields["badge"] = edited.Badge
	}
	if edited.Active != orig.Active {
		fields["active"] = edited.Active
	}
	if edited.ExpiresAt != orig.ExpiresAt {
		fields["expires_at"] = edited.ExpiresAt
	}
	if edited.AdvertiserId != orig.AdvertiserId {
		fields["advertiser_id"] = edited.AdvertiserId
	}
	return fields
}

// ListAdvertisers returns all advertisers.
func (c *Client) ListAdvertisers(ctx context.Context) ([]Advertiser, error) {
	data, err := c.do(ctx, http.MethodGet, "/advertisers", nil, nil, true)
	if err != nil {
		return nil, err
	}
	wires, err := decodeArray[advertiserWire](data)
	if err != nil {
		return nil, err
	}
	out := make([]Advertiser, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toView())
	}
	return out, nil
}

// AdvertiserInput is the create payload for an advertiser.
type AdvertiserInput struct {
	Name         string `json:"name"`
	BusinessName string `json:"business_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

// CreateAdvertiser creates an advertiser and returns the stored entity.
func (c *Client) CreateAdvertiser(ctx context.Context, input AdvertiserInput) (*Advertiser, error) {
	data, err := c.do(ctx, http.MethodPost, "/advertisers", nil, input, true)
	if err != nil {
		return nil, err
	}
	var w advertiserWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode advertiser: %w", err)
	}
	adv := w.toView()
	return &adv, nil
}

// ListTransactions returns one server-driven page of M-Pesa transactions.
// The context matters here: the transactions page cancels a stale in-flight
// request when filters change.
func (c *Client) ListTransactions(ctx context.Context, params TransactionParams) ([]Transaction, *Pagination, error) {
	q := url.Values{}
	params.encode(q)
	data, err := c.do(ctx, http.MethodGet, "/transactions", q, nil, true)
	if err != nil {
		return nil, nil, err
	}
	wires, pg, err := decodePage[transactionWire](data)
	if err != nil {
		return nil, nil, err
	}
	out := make([]Transaction, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toView())
	}
	return out, pg, nil
}

// ListRouters returns all routers.
func (c *Client) ListRouters(ctx context.Context) ([]Router, error) {
	data, err := c.do(ctx, http.MethodGet, "/routers", nil, nil, true)
	if err != nil {
		return nil, err
	}
	wires, err := decodeArray[routerWire](data)
	if err != nil {
		return nil, err
	}
	out := make([]Router, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toView())
	}
	return out, nil
}

// RouterStatus fetches a telemetry snapshot for one router.
func (c *Client) RouterStatus(ctx context.Context, routerId int) (*RouterStatus, error) {
	data, err := c.do(ctx, http.MethodGet, "/routers/"+strconv.Itoa(routerId)+"/status", nil, nil, true)
	if err != nil {
		return nil, err
	}
	var w routerStatusWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode telemetry: %w", err)
	}
	return w.toView()
}

// BandwidthHistory fetches the bandwidth series for one router over the
// trailing window.
func (c *Client) BandwidthHistory(ctx context.Context, routerId, hours int) ([]BandwidthPoint, error) {
	q := url.Values{}
	if hours > 0 {
		q.Set("hours", strconv.Itoa(hours))
	}
	data, err := c.do(ctx, http.MethodGet, "/routers/"+strconv.Itoa(routerId)+"/bandwidth", q, nil, true)
	if err != nil {
		return nil, err
	}
	wires, err := decodeArray[bandwidthPointWire](data)
	if err != nil {
		return nil, err
	}
	out := make([]BandwidthPoint, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toView())
	}
	return out, nil
}

// TopUsers fetches the heaviest users for one router.
func (c *Client) TopUsers(ctx context.Context, routerId, limit int) ([]TopUser, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	data, err := c.do(ctx, http.MethodGet, "/routers/"+strconv.Itoa(routerId)+"/top-users", q, nil, true)
	if err != nil {
		return nil, err
	}
	wires, err := decodeArray[topUserWire](data)
	if err != nil {
		return nil, err
	}
	out := make([]TopUser, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toView())
	}
	return out, nil
}

// GetAnalytics fetches the aggregate report for one filter window.
func (c *Client) GetAnalytics(ctx context.Context, params AnalyticsParams) (*Analytics, error) {
	q := url.Values{}
	params.encode(q)
	data, err := c.do(ctx, http.MethodGet, "/analytics", q, nil, true)
	if err != nil {
		return nil, err
	}
	var w analyticsWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode analytics: %w", err)
	}
	return w.toView(), nil
}

// ListRatings returns ratings, optionally filtered by star value.
func (c *Client) ListRatings(ctx context.Context, stars int) ([]Rating, error) {
	q := url.Values{}
	if stars > 0 {
		q.Set("stars", strconv.Itoa(stars))
	}
	data, err := c.do(ctx, http.MethodGet, "/ratings", q, nil, true)
	if err != nil {
		return nil, err
	}
	wires, err := decodeArray[ratingWire](data)
	if err != nil {
		return nil, err
	}
	out := make([]Rating, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toView())
	}
	return out, nil
}

// do issues one request and returns the raw success body. Non-2xx
// responses come back as *APIError with the normalized server message.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, authed bool) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token, err := c.tokens.APIToken()
		if err != nil {
			return nil, fmt.Errorf("read api token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, normalizeError(resp.StatusCode, data)
	}
	return data, nil
}

// normalizeError extracts the server-provided message from an error body,
// falling back to a generic message when the body is not JSON the panel
// understands.
func normalizeError(status int, body []byte) *APIError {
	var wire struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := genericErrorMsg
	if err := json.Unmarshal(body, &wire); err == nil {
		if wire.Message != "" {
			msg = wire.Message
		} else if wire.Error != "" {
			msg = wire.Error
		}
	}
	return &APIError{StatusCode: status, Message: msg}
}

// decodePage decodes a paginated list envelope.
func decodePage[W any](data []byte) ([]W, *Pagination, error) {
	var env listEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, nil, fmt.Errorf("decode list envelope: %w", err)
	}
	var items []W
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &items); err != nil {
			return nil, nil, fmt.Errorf("decode list items: %w", err)
		}
	}
	pg := &Pagination{Page: env.Page, PerPage: env.PerPage, Total: env.Total}
	if pg.Page == 0 {
		pg.Page = 1
	}
	return items, pg, nil
}

// decodeArray decodes a bare JSON array response.
func decodeArray[W any](data []byte) ([]W, error) {
	var items []W
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return items, nil
}
