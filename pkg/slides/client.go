package slides

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/roadmapper/pkg/errors"
)

// DefaultBaseURL is the production presentation API endpoint.
const DefaultBaseURL = "https://slides.googleapis.com"

// Client executes drawing-operation batches against a remote presentation.
//
// Each BatchUpdate call is transactional on the service side: all operations
// succeed or the call fails as a whole. Calls are never retried here because
// they create objects and a replay would duplicate them.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

// NewClient creates a presentation client authenticating with a bearer token.
// Pass an empty baseURL to use [DefaultBaseURL].
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    &http.Client{Timeout: 60 * time.Second},
		baseURL: baseURL,
		token:   token,
	}
}

type batchUpdateBody struct {
	Requests []Request `json:"requests"`
}

// BatchUpdate applies the ordered operation batch to the presentation.
// A non-2xx response surfaces as a REMOTE_EXECUTION error; whatever earlier
// batches already created stays in place (no rollback).
func (c *Client) BatchUpdate(ctx context.Context, presentationID string, requests []Request) error {
	body, err := json.Marshal(batchUpdateBody{Requests: requests})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode operation batch")
	}

	endpoint := c.baseURL + "/v1/presentations/" + presentationID + ":batchUpdate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "build batch request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRemoteExecution, err, "execute operation batch")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.New(errors.ErrCodeRemoteExecution,
			"presentation service returned status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}
	return nil
}
