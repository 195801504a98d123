// Package wordpress is a client for the headless WordPress REST API that
// feeds the storefront catalog, plus the coercion helpers that tame its
// loosely typed ACF fields.
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Client talks to one WordPress instance. Construct it once at startup and
// pass it to whatever needs remote content; there is no package-level
// instance on purpose.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
	log      *slog.Logger
}

// NewClient trims a trailing slash off baseURL. username/password are
// optional; when set they are sent as Basic auth, which WordPress requires
// for writes.
func NewClient(baseURL, username, password string, log *slog.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		http:     &http.Client{},
		log:      log,
	}
}

// Rendered wraps WordPress's {"rendered": "..."} envelope.
type Rendered struct {
	Rendered string `json:"rendered"`
}

// Entry is a raw record from any custom post type collection. ACF holds the
// entity-specific attribute bag, typed however the source felt like typing it.
type Entry struct {
	ID            int            `json:"id"`
	Title         Rendered       `json:"title"`
	Content       Rendered       `json:"content"`
	Excerpt       Rendered       `json:"excerpt"`
	FeaturedMedia int            `json:"featured_media"`
	Date          string         `json:"date"`
	Status        string         `json:"status,omitempty"`
	ACF           map[string]any `json:"acf"`
}

// AdditionalImageRefs maps the numbered imagen_adicional_1..slots ACF keys
// into an ordered list of raw media references, dropping empty slots. This is
// the only place that knows about the numbered-key scheme.
func (e *Entry) AdditionalImageRefs(slots int) []any {
	var refs []any
	for i := 1; i <= slots; i++ {
		v := e.ACF[fmt.Sprintf("imagen_adicional_%d", i)]
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && (s == "" || s == "0") {
			continue
		}
		refs = append(refs, v)
	}
	return refs
}

// Media is a record from the media endpoint.
type Media struct {
	ID        int      `json:"id"`
	SourceURL string   `json:"source_url"`
	AltText   string   `json:"alt_text"`
	Title     Rendered `json:"title"`
}

// ListOptions are the standard WP collection query parameters. Zero values
// are omitted from the request.
type ListOptions struct {
	PerPage int
	Page    int
	Status  string
	OrderBy string
	Order   string
}

// APIError is a non-2xx response from the content API.
type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wordpress: %s returned HTTP %d", e.URL, e.StatusCode)
}

// ListEntries fetches a collection, e.g. "productos" or "plantas-aromaticas".
func (c *Client) ListEntries(ctx context.Context, collection string, opts ListOptions) ([]Entry, error) {
	query := url.Values{}
	if opts.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(opts.PerPage))
	}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}
	if opts.OrderBy != "" {
		query.Set("orderby", opts.OrderBy)
	}
	if opts.Order != "" {
		query.Set("order", opts.Order)
	}

	var entries []Entry
	if err := c.do(ctx, http.MethodGet, "/"+collection, query, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetMedia fetches one media record by id.
func (c *Client) GetMedia(ctx context.Context, id int) (*Media, error) {
	var media Media
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/media/%d", id), nil, nil, &media); err != nil {
		return nil, err
	}
	return &media, nil
}

// CreateEntry posts a new record to an authenticated collection.
func (c *Client) CreateEntry(ctx context.Context, collection string, payload map[string]any) (*Entry, error) {
	var entry Entry
	if err := c.do(ctx, http.MethodPost, "/"+collection, nil, payload, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateEntry updates an existing record in an authenticated collection.
func (c *Client) UpdateEntry(ctx context.Context, collection string, id int, payload map[string]any) (*Entry, error) {
	var entry Entry
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/%s/%d", collection, id), nil, payload, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteEntry deletes a record from an authenticated collection.
func (c *Client) DeleteEntry(ctx context.Context, collection string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/%s/%d", collection, id), nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + "/wp-json/wp/v2" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.username != "" && c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("wordpress: request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, URL: endpoint}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("wordpress: decoding %s response: %w", endpoint, err)
	}
	return nil
}
