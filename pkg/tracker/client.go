package tracker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/matzehuels/roadmapper/pkg/errors"
	"github.com/matzehuels/roadmapper/pkg/httputil"
)

// pageSize is the number of issues requested per search page.
const pageSize = 50

// Client provides read access to the issue tracker's REST API.
// It handles authentication, pagination and automatic retries on
// transient failures. All requests are GETs and safe to retry.
type Client struct {
	http    *http.Client
	baseURL string
	email   string
	token   string
}

// NewClient creates a tracker client for the given instance base URL.
// Credentials are sent as basic auth (email + API token).
func NewClient(baseURL, email, token string) *Client {
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		email:   email,
		token:   token,
	}
}

// Search pages through all issues matching the JQL filter.
// It returns an empty slice (never nil error) when nothing matches;
// deciding whether that is fatal is the caller's concern.
func (c *Client) Search(ctx context.Context, jql string) ([]RawIssue, error) {
	var all []RawIssue
	startAt := 0

	for {
		page, err := c.searchPage(ctx, jql, startAt)
		if err != nil {
			return nil, err
		}
		for _, i := range page.Issues {
			raw, err := i.flatten(c.baseURL)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeNetwork, err, "malformed search response")
			}
			all = append(all, raw)
		}

		startAt += len(page.Issues)
		if startAt >= page.Total || len(page.Issues) == 0 {
			break
		}
	}
	if all == nil {
		all = []RawIssue{}
	}
	return all, nil
}

func (c *Client) searchPage(ctx context.Context, jql string, startAt int) (*searchResponse, error) {
	q := url.Values{}
	q.Set("jql", jql)
	q.Set("startAt", strconv.Itoa(startAt))
	q.Set("maxResults", strconv.Itoa(pageSize))
	endpoint := c.baseURL + "/rest/api/2/search?" + q.Encode()

	var page searchResponse
	err := httputil.RetryWithBackoff(ctx, func() error {
		return c.get(ctx, endpoint, &page)
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) get(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.email != "" || c.token != "" {
		req.SetBasicAuth(c.email, c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &httputil.RetryableError{
			Err: errors.Wrap(errors.ErrCodeNetwork, err, "issue search failed"),
		}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusUnauthorized:
		return errors.New(errors.ErrCodeUnauthorized, "issue source rejected credentials")
	case code == http.StatusForbidden:
		return errors.New(errors.ErrCodeForbidden, "issue source denied access")
	case code >= 500:
		return &httputil.RetryableError{
			Err: errors.New(errors.ErrCodeNetwork, "issue source returned status %d", code),
		}
	default:
		return errors.New(errors.ErrCodeNetwork, "issue source returned status %d", code)
	}
}
