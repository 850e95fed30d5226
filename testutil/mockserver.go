package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// MockBackend imitates the PDF question-answering HTTP API for tests. It
// records every request path so tests can assert on call counts.
type MockBackend struct {
	Server *httptest.Server

	mu       sync.Mutex
	requests []string

	// Answer and Sources shape the /api/query response.
	Answer  string
	Sources []map[string]interface{}

	// Images maps "<filename>/<page>" to the /api/images response items.
	Images map[string][]map[string]interface{}

	// UploadStatus and UploadError shape the /api/upload-pdf response.
	// A zero UploadStatus means 200 with default stats.
	UploadStatus int
	UploadError  string
}

// NewMockBackend starts a mock backend; it shuts down with the test.
func NewMockBackend(t *testing.T) *MockBackend {
	t.Helper()

	mb := &MockBackend{
		Answer: "mock answer",
		Images: make(map[string][]map[string]interface{}),
	}
	mb.Server = httptest.NewServer(http.HandlerFunc(mb.handle))
	t.Cleanup(mb.Server.Close)
	return mb
}

// Requests returns the method+path log of every call received.
func (mb *MockBackend) Requests() []string {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	out := make([]string, len(mb.requests))
	copy(out, mb.requests)
	return out
}

// RequestCount returns how many requests matched the given path prefix.
func (mb *MockBackend) RequestCount(pathPrefix string) int {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	count := 0
	for _, r := range mb.requests {
		if strings.Contains(r, pathPrefix) {
			count++
		}
	}
	return count
}

func (mb *MockBackend) handle(w http.ResponseWriter, r *http.Request) {
	mb.mu.Lock()
	mb.requests = append(mb.requests, r.Method+" "+r.URL.Path)
	mb.mu.Unlock()

	switch {
	case r.URL.Path == "/api/health":
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"database": "sqlite",
			"status":   "ok",
		})
	case r.URL.Path == "/api/init":
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"stats": map[string]int{
				"pdf_count":    1,
				"total_pages":  12,
				"total_chunks": 48,
			},
			"pdf_list": []map[string]interface{}{
				{"filename": "guide.pdf", "page_count": 12, "total_chunks": 48, "added_date": "2026-08-01"},
			},
		})
	case r.URL.Path == "/api/query":
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"answer":  mb.Answer,
			"sources": mb.Sources,
		})
	case r.URL.Path == "/api/reset":
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	case r.URL.Path == "/api/upload-pdf":
		status := mb.UploadStatus
		if status == 0 {
			status = http.StatusOK
		}
		if status < 200 || status > 299 {
			writeJSON(w, status, map[string]interface{}{"error": mb.UploadError})
			return
		}
		writeJSON(w, status, map[string]interface{}{
			"stats": map[string]interface{}{
				"filename":     "uploaded.pdf",
				"page_count":   3,
				"total_chunks": 9,
			},
		})
	case strings.HasPrefix(r.URL.Path, "/api/images/"):
		key := strings.TrimPrefix(r.URL.Path, "/api/images/")
		images, ok := mb.Images[key]
		if !ok {
			images = []map[string]interface{}{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"images": images})
	default:
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"error": fmt.Sprintf("unknown endpoint: %s", r.URL.Path),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
