package splitser

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

// DefaultBaseURL is the production Splitser API root.
const DefaultBaseURL = "https://app.splitser.com/api"

// SortField is one field of an ordered sort specification.
type SortField struct {
	Field     string
	Direction string
}

// DefaultSort orders by payment date, then creation time, newest first.
func DefaultSort() []SortField {
	return []SortField{
		{Field: "payed_on", Direction: "desc"},
		{Field: "created_at", Direction: "desc"},
	}
}

// PageRequest describes one list-items page fetch.
type PageRequest struct {
	ListID  string
	Page    int
	PerPage int
	Sort    []SortField
	Settled bool
}

// Client is a thin client for the Splitser list-items API, authenticated by
// an opaque session cookie.
type Client struct {
	BaseURL    string
	Cookie     string
	HTTPClient *http.Client
}

// NewClient creates a new Client with the provided session cookie.
func NewClient(cookie string) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		Cookie:     cookie,
		HTTPClient: http.DefaultClient,
	}
}

// GetPage fetches one page of list items. It performs a single GET with no
// retry; any transport, status, or decode failure aborts the fetch.
func (c *Client) GetPage(ctx context.Context, req PageRequest) (*Page, error) {
	if _, err := uuid.Parse(req.ListID); err != nil {
		return nil, fmt.Errorf("GetPage: invalid list id %q: %w", req.ListID, err)
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(req.Page))
	params.Set("per_page", strconv.Itoa(req.PerPage))
	for _, s := range req.Sort {
		params.Set(fmt.Sprintf("sort[%s]", s.Field), s.Direction)
	}
	params.Set("filter[settled]", strconv.FormatBool(req.Settled))

	endpoint := fmt.Sprintf("%s/lists/%s/list_items?%s", c.BaseURL, req.ListID, params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("GetPage: %w", err)
	}
	httpReq.Header.Set("accept", "application/json")
	httpReq.Header.Set("accept-language", "en")
	httpReq.Header.Set("accept-version", "10")
	httpReq.Header.Set("cookie", c.Cookie)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("GetPage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("GetPage: unexpected status %d: %s", resp.StatusCode, body)
	}

	var page Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("GetPage: %w", err)
	}
	return &page, nil
}
