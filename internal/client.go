package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const defaultRequestTimeout = 60 * time.Second

// Client talks to the PDF question-answering backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultRequestTimeout},
	}
}

// HealthResponse is the /api/health payload.
type HealthResponse struct {
	Database string `json:"database"`
	Status   string `json:"status"`
}

// CorpusStats summarizes the indexed PDF library.
type CorpusStats struct {
	PDFCount    int `json:"pdf_count"`
	TotalPages  int `json:"total_pages"`
	TotalChunks int `json:"total_chunks"`
}

// PDFInfo describes one indexed document.
type PDFInfo struct {
	Filename    string `json:"filename"`
	PageCount   int    `json:"page_count"`
	TotalChunks int    `json:"total_chunks"`
	AddedDate   string `json:"added_date"`
}

// InitResponse is the /api/init payload.
type InitResponse struct {
	Stats   CorpusStats `json:"stats"`
	PDFList []PDFInfo   `json:"pdf_list"`
}

// QueryResponse is the /api/query payload. NoData is set when the backend
// has no indexed PDFs to answer from.
type QueryResponse struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources,omitempty"`
	NoData  bool     `json:"no_data,omitempty"`
}

// UploadStats describes an indexed upload.
type UploadStats struct {
	Filename    string `json:"filename"`
	PageCount   int    `json:"page_count"`
	TotalChunks int    `json:"total_chunks"`
}

// UploadResponse is the /api/upload-pdf success payload.
type UploadResponse struct {
	Stats UploadStats `json:"stats"`
}

// ImageInfo is one extracted page image.
type ImageInfo struct {
	URL        string `json:"url"`
	ImageIndex int    `json:"image_index"`
}

type imagesResponse struct {
	Images []ImageInfo `json:"images"`
}

// Health checks backend availability.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.getJSON(ctx, "/api/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Init fetches corpus stats and the indexed PDF list.
func (c *Client) Init(ctx context.Context) (*InitResponse, error) {
	var out InitResponse
	if err := c.getJSON(ctx, "/api/init", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Query asks a question within a session's conversation.
func (c *Client) Query(ctx context.Context, question, sessionID string) (*QueryResponse, error) {
	body := map[string]string{
		"question":   question,
		"session_id": sessionID,
	}
	var out QueryResponse
	if err := c.postJSON(ctx, "/api/query", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reset clears the backend's conversation state for a session. The
// acknowledgement body is not inspected.
func (c *Client) Reset(ctx context.Context, sessionID string) error {
	return c.postJSON(ctx, "/api/reset", map[string]string{"session_id": sessionID}, nil)
}

// PageImages fetches the images extracted for one (filename, page) pair.
func (c *Client) PageImages(ctx context.Context, filename string, page int) ([]ImageInfo, error) {
	endpoint := fmt.Sprintf("/api/images/%s/%d", url.PathEscape(filename), page)
	var out imagesResponse
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return out.Images, nil
}

// UploadPDF validates and uploads a PDF for indexing. progress, when
// non-nil, receives bytes-sent updates as the request body streams.
func (c *Client) UploadPDF(ctx context.Context, path string, progress func(sent, total int64)) (*UploadResponse, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if err := ValidateUpload(filepath.Base(path), info.Size()); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	total := int64(buf.Len())
	var body io.Reader = &buf
	if progress != nil {
		body = &progressReader{r: &buf, total: total, report: progress}
	}

	const endpoint = "/api/upload-pdf"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.ContentLength = total

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Endpoint: endpoint, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiErrorFromBody(endpoint, resp.StatusCode, data)
	}

	var out UploadResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &APIError{Endpoint: endpoint, Status: resp.StatusCode, Err: err}
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, endpoint, out)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, in, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doJSON(req, endpoint, out)
}

func (c *Client) doJSON(req *http.Request, endpoint string, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Endpoint: endpoint, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiErrorFromBody(endpoint, resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &APIError{Endpoint: endpoint, Status: resp.StatusCode, Err: err}
	}
	return nil
}

// apiErrorFromBody surfaces the backend's error field when the body
// carries one.
func apiErrorFromBody(endpoint string, status int, data []byte) *APIError {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return &APIError{Endpoint: endpoint, Status: status, Message: body.Error}
	}
	return &APIError{Endpoint: endpoint, Status: status}
}
