// Package client implements the typed HTTP gateway to the vehicle-catalog
// backend: the four CRUD operations per entity type plus the auth endpoints.
// Every authenticated call carries the configured token as
// "Authorization: token <value>"; when no token is configured the request is
// issued anyway and the backend rejects it.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/garagectl/garagectl/internal/cliconfig"
	"github.com/garagectl/garagectl/pkg/catalog"
)

// AuthHeader is the HTTP header carrying the token credential.
const AuthHeader = "Authorization"

// CatalogClient provides methods for communicating with the catalog API.
type CatalogClient interface {
	// Login obtains a token for the given credentials.
	Login(username, password string) (string, error)
	// Register creates a new user account.
	Register(username, password string) (*catalog.Profile, error)
	// Profile returns the authenticated user.
	Profile() (*catalog.Profile, error)

	// ListSegments returns all segments in server order.
	ListSegments() ([]catalog.Segment, error)
	// CreateSegment creates a segment and returns the server-assigned record.
	CreateSegment(name string) (*catalog.Segment, error)
	// UpdateSegment updates a segment by its id and returns the canonical
	// post-update record.
	UpdateSegment(seg catalog.Segment) (*catalog.Segment, error)
	// DeleteSegment deletes a segment and returns the deleted id.
	DeleteSegment(id int) (int, error)

	ListBrands() ([]catalog.Brand, error)
	CreateBrand(name string) (*catalog.Brand, error)
	UpdateBrand(b catalog.Brand) (*catalog.Brand, error)
	DeleteBrand(id int) (int, error)

	ListVehicles() ([]catalog.Vehicle, error)
	// CreateVehicle creates a vehicle from a draft; the draft's sentinel id
	// is ignored by the server.
	CreateVehicle(v catalog.Vehicle) (*catalog.Vehicle, error)
	UpdateVehicle(v catalog.Vehicle) (*catalog.Vehicle, error)
	DeleteVehicle(id int) (int, error)
}

// catalogClient implements CatalogClient using HTTP.
type catalogClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// ClientOption configures a catalog client.
type ClientOption func(*catalogClient)

// WithTimeout sets the HTTP timeout for the client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *catalogClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithToken sets the auth token attached to every call.
func WithToken(token string) ClientOption {
	return func(c *catalogClient) {
		c.token = token
	}
}

// New creates a new catalog API client. The baseURL should be the backend
// base URL (e.g. "http://localhost:8000/").
func New(baseURL string, opts ...ClientOption) CatalogClient {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	c := &catalogClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig creates a client using resolved configuration (flag > env >
// context > default) with the stored token, if any. This is the way CLI
// commands build their client.
func NewFromConfig(flagAPIURL string, opts ...ClientOption) CatalogClient {
	if token := cliconfig.ResolveToken(); token != "" {
		opts = append([]ClientOption{WithToken(token)}, opts...)
	}
	return New(cliconfig.ResolveAPIURL(flagAPIURL), opts...)
}

// Login obtains a token for the given credentials.
func (c *catalogClient) Login(username, password string) (string, error) {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return "", &OpError{Kind: CreateFailed, Scope: ScopeLogin, Err: err}
	}

	resp, err := c.doRequest(http.MethodPost, "api/auth/", body, false)
	if err != nil {
		return "", &OpError{Kind: CreateFailed, Scope: ScopeLogin, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return "", &OpError{Kind: CreateFailed, Scope: ScopeLogin, Err: c.parseError(resp)}
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &OpError{Kind: CreateFailed, Scope: ScopeLogin, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	return result.Token, nil
}

// Register creates a new user account.
func (c *catalogClient) Register(username, password string) (*catalog.Profile, error) {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return nil, &OpError{Kind: CreateFailed, Scope: ScopeRegistration, Err: err}
	}

	resp, err := c.doRequest(http.MethodPost, "api/create/", body, false)
	if err != nil {
		return nil, &OpError{Kind: CreateFailed, Scope: ScopeRegistration, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return nil, &OpError{Kind: CreateFailed, Scope: ScopeRegistration, Err: c.parseError(resp)}
	}

	var created catalog.Profile
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, &OpError{Kind: CreateFailed, Scope: ScopeRegistration, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	return &created, nil
}

// Profile returns the authenticated user.
func (c *catalogClient) Profile() (*catalog.Profile, error) {
	resp, err := c.get("api/profile/")
	if err != nil {
		return nil, &OpError{Kind: FetchFailed, Scope: ScopeProfile, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return nil, &OpError{Kind: FetchFailed, Scope: ScopeProfile, Err: c.parseError(resp)}
	}

	var profile catalog.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, &OpError{Kind: FetchFailed, Scope: ScopeProfile, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	return &profile, nil
}

// ListSegments returns all segments in server order.
func (c *catalogClient) ListSegments() ([]catalog.Segment, error) {
	var segments []catalog.Segment
	if err := c.list("api/segments/", catalog.KindSegment, &segments); err != nil {
		return nil, err
	}
	return segments, nil
}

// CreateSegment creates a segment and returns the server-assigned record.
func (c *catalogClient) CreateSegment(name string) (*catalog.Segment, error) {
	var created catalog.Segment
	payload := map[string]string{"segment_name": name}
	if err := c.create("api/segments/", catalog.KindSegment, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateSegment updates a segment by its id.
func (c *catalogClient) UpdateSegment(seg catalog.Segment) (*catalog.Segment, error) {
	var updated catalog.Segment
	if err := c.update(fmt.Sprintf("api/segments/%d/", seg.ID), catalog.KindSegment, seg, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteSegment deletes a segment and returns the deleted id.
func (c *catalogClient) DeleteSegment(id int) (int, error) {
	return c.remove(fmt.Sprintf("api/segments/%d/", id), catalog.KindSegment, id)
}

// ListBrands returns all brands in server order.
func (c *catalogClient) ListBrands() ([]catalog.Brand, error) {
	var brands []catalog.Brand
	if err := c.list("api/brands/", catalog.KindBrand, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// CreateBrand creates a brand and returns the server-assigned record.
func (c *catalogClient) CreateBrand(name string) (*catalog.Brand, error) {
	var created catalog.Brand
	payload := map[string]string{"brand_name": name}
	if err := c.create("api/brands/", catalog.KindBrand, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateBrand updates a brand by its id.
func (c *catalogClient) UpdateBrand(b catalog.Brand) (*catalog.Brand, error) {
	var updated catalog.Brand
	if err := c.update(fmt.Sprintf("api/brands/%d/", b.ID), catalog.KindBrand, b, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteBrand deletes a brand and returns the deleted id.
func (c *catalogClient) DeleteBrand(id int) (int, error) {
	return c.remove(fmt.Sprintf("api/brands/%d/", id), catalog.KindBrand, id)
}

// ListVehicles returns all vehicles in server order.
func (c *catalogClient) ListVehicles() ([]catalog.Vehicle, error) {
	var vehicles []catalog.Vehicle
	if err := c.list("api/vehicles/", catalog.KindVehicle, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// CreateVehicle creates a vehicle from a draft.
func (c *catalogClient) CreateVehicle(v catalog.Vehicle) (*catalog.Vehicle, error) {
	var created catalog.Vehicle
	if err := c.create("api/vehicles/", catalog.KindVehicle, v, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateVehicle updates a vehicle by its id.
func (c *catalogClient) UpdateVehicle(v catalog.Vehicle) (*catalog.Vehicle, error) {
	var updated catalog.Vehicle
	if err := c.update(fmt.Sprintf("api/vehicles/%d/", v.ID), catalog.KindVehicle, v, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteVehicle deletes a vehicle and returns the deleted id.
func (c *catalogClient) DeleteVehicle(id int) (int, error) {
	return c.remove(fmt.Sprintf("api/vehicles/%d/", id), catalog.KindVehicle, id)
}

// list performs a GET and decodes the server-ordered collection into out.
func (c *catalogClient) list(path string, kind catalog.Kind, out any) error {
	resp, err := c.get(path)
	if err != nil {
		return &OpError{Kind: FetchFailed, Scope: string(kind), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return &OpError{Kind: FetchFailed, Scope: string(kind), Err: c.parseError(resp)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &OpError{Kind: FetchFailed, Scope: string(kind), Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	return nil
}

// create performs a POST and decodes the server-assigned record into out.
func (c *catalogClient) create(path string, kind catalog.Kind, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &OpError{Kind: CreateFailed, Scope: string(kind), Err: fmt.Errorf("failed to encode request: %w", err)}
	}

	resp, err := c.post(path, body)
	if err != nil {
		return &OpError{Kind: CreateFailed, Scope: string(kind), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return &OpError{Kind: CreateFailed, Scope: string(kind), Err: c.parseError(resp)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &OpError{Kind: CreateFailed, Scope: string(kind), Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	return nil
}

// update performs a PUT with the full record and decodes the canonical
// post-update record into out.
func (c *catalogClient) update(path string, kind catalog.Kind, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &OpError{Kind: UpdateFailed, Scope: string(kind), Err: fmt.Errorf("failed to encode request: %w", err)}
	}

	resp, err := c.put(path, body)
	if err != nil {
		return &OpError{Kind: UpdateFailed, Scope: string(kind), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return &OpError{Kind: UpdateFailed, Scope: string(kind), Err: c.parseError(resp)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &OpError{Kind: UpdateFailed, Scope: string(kind), Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	return nil
}

// remove performs a DELETE and echoes back the deleted id so callers can key
// the collection removal off it.
func (c *catalogClient) remove(path string, kind catalog.Kind, id int) (int, error) {
	resp, err := c.delete(path)
	if err != nil {
		return 0, &OpError{Kind: DeleteFailed, Scope: string(kind), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return 0, &OpError{Kind: DeleteFailed, Scope: string(kind), Err: c.parseError(resp)}
	}
	return id, nil
}

// get performs an HTTP GET request.
func (c *catalogClient) get(path string) (*http.Response, error) {
	return c.doRequest(http.MethodGet, path, nil, true)
}

// post performs an HTTP POST request.
func (c *catalogClient) post(path string, body []byte) (*http.Response, error) {
	return c.doRequest(http.MethodPost, path, body, true)
}

// put performs an HTTP PUT request.
func (c *catalogClient) put(path string, body []byte) (*http.Response, error) {
	return c.doRequest(http.MethodPut, path, body, true)
}

// delete performs an HTTP DELETE request.
func (c *catalogClient) delete(path string) (*http.Response, error) {
	return c.doRequest(http.MethodDelete, path, nil, true)
}

// doRequest performs an HTTP request. Login and registration are the only
// unauthenticated calls.
func (c *catalogClient) doRequest(method, path string, body []byte, authed bool) (*http.Response, error) {
	fullURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if authed && c.token != "" {
		req.Header.Set(AuthHeader, "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{
			StatusCode: 0,
			Message:    fmt.Sprintf("cannot connect to catalog API at %s: %v", c.baseURL, err),
		}
	}
	return resp, nil
}

// success reports whether the response is any 2xx. The core draws no finer
// distinction between status codes.
func success(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// parseError parses an error response from the API.
func (c *catalogClient) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Detail != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errResp.Detail,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("server returned status %d: %s", resp.StatusCode, string(body)),
	}
}
