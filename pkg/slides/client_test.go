package slides

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/roadmapper/pkg/errors"
)

func sampleBatch() []Request {
	return []Request{
		{CreateSlide: &CreateSlide{
			ObjectID: "slide-1",
			SlideLayoutReference: &SlideLayoutReference{
				PredefinedLayout: "SECTION_HEADER",
			},
		}},
		{InsertText: &InsertText{
			ObjectID: "title-1",
			Text:     "Roadmap",
		}},
	}
}

func TestBatchUpdate(t *testing.T) {
	var (
		gotPath string
		gotAuth string
		gotBody batchUpdateBody
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		io.WriteString(w, `{"presentationId": "pres-1", "replies": []}`)
	}))
	defer server.Close()

	c := NewClient(server.URL, "token123")
	if err := c.BatchUpdate(context.Background(), "pres-1", sampleBatch()); err != nil {
		t.Fatalf("BatchUpdate() failed: %v", err)
	}

	if want := "/v1/presentations/pres-1:batchUpdate"; gotPath != want {
		t.Errorf("path = %s, want %s", gotPath, want)
	}
	if want := "Bearer token123"; gotAuth != want {
		t.Errorf("Authorization = %q, want %q", gotAuth, want)
	}
	if len(gotBody.Requests) != 2 {
		t.Fatalf("sent %d requests, want 2", len(gotBody.Requests))
	}
	if gotBody.Requests[0].CreateSlide == nil || gotBody.Requests[0].CreateSlide.ObjectID != "slide-1" {
		t.Errorf("first request = %+v, want createSlide slide-1", gotBody.Requests[0])
	}
	if gotBody.Requests[1].InsertText == nil || gotBody.Requests[1].InsertText.Text != "Roadmap" {
		t.Errorf("second request = %+v, want insertText Roadmap", gotBody.Requests[1])
	}
}

func TestBatchUpdate_RemoteFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error": {"status": "INVALID_ARGUMENT", "message": "Invalid requests[0]"}}`)
	}))
	defer server.Close()

	c := NewClient(server.URL, "token123")
	err := c.BatchUpdate(context.Background(), "pres-1", sampleBatch())
	if err == nil {
		t.Fatal("BatchUpdate() = nil, want error")
	}
	if !errors.Is(err, errors.ErrCodeRemoteExecution) {
		t.Errorf("code = %v, want REMOTE_EXECUTION", errors.GetCode(err))
	}
	if !strings.Contains(err.Error(), "status 400") || !strings.Contains(err.Error(), "INVALID_ARGUMENT") {
		t.Errorf("error = %v, want status and service detail", err)
	}
}

// Batches must never be retried: a replay would duplicate the created objects.
func TestBatchUpdate_SingleAttempt(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(server.URL, "token123")
	if err := c.BatchUpdate(context.Background(), "pres-1", sampleBatch()); err == nil {
		t.Fatal("BatchUpdate() = nil, want error")
	}
	if calls != 1 {
		t.Errorf("service called %d times, want 1", calls)
	}
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	c := NewClient("", "token123")
	if c.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %s, want %s", c.baseURL, DefaultBaseURL)
	}
}
