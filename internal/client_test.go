package internal

import (
	"context"
	"errors"
	"testing"

	"pdfchat/testutil"
)

func TestClient_Health(t *testing.T) {
	mb := testutil.NewMockBackend(t)
	client := NewClient(mb.Server.URL)

	health, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if health.Status != "ok" || health.Database != "sqlite" {
		t.Errorf("Health() = %+v", health)
	}
}

func TestClient_Init(t *testing.T) {
	mb := testutil.NewMockBackend(t)
	client := NewClient(mb.Server.URL)

	initData, err := client.Init(context.Background())
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if initData.Stats.PDFCount != 1 || initData.Stats.TotalChunks != 48 {
		t.Errorf("Init() stats = %+v", initData.Stats)
	}
	if len(initData.PDFList) != 1 || initData.PDFList[0].Filename != "guide.pdf" {
		t.Errorf("Init() pdf list = %+v", initData.PDFList)
	}
}

func TestClient_Query(t *testing.T) {
	mb := testutil.NewMockBackend(t)
	mb.Answer = "see 画像(guide.pdf, 3)"
	mb.Sources = []map[string]interface{}{
		{"filename": "guide.pdf", "page": 3, "similarity": 0.92, "text": "chunk"},
	}
	client := NewClient(mb.Server.URL)

	resp, err := client.Query(context.Background(), "what is on page 3?", "session_1_abc")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if resp.Answer != "see 画像(guide.pdf, 3)" {
		t.Errorf("Answer = %q", resp.Answer)
	}
	if len(resp.Sources) != 1 || resp.Sources[0].Page != 3 {
		t.Errorf("Sources = %+v", resp.Sources)
	}
	if mb.RequestCount("/api/query") != 1 {
		t.Errorf("query requests = %d, want 1", mb.RequestCount("/api/query"))
	}
}

func TestClient_Reset(t *testing.T) {
	mb := testutil.NewMockBackend(t)
	client := NewClient(mb.Server.URL)

	if err := client.Reset(context.Background(), "session_1_abc"); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if mb.RequestCount("/api/reset") != 1 {
		t.Errorf("reset requests = %d, want 1", mb.RequestCount("/api/reset"))
	}
}

func TestClient_PageImages(t *testing.T) {
	mb := testutil.NewMockBackend(t)
	mb.Images["guide.pdf/3"] = []map[string]interface{}{
		{"url": "/images/guide/p3-0.png", "image_index": 0},
	}
	client := NewClient(mb.Server.URL)

	images, err := client.PageImages(context.Background(), "guide.pdf", 3)
	if err != nil {
		t.Fatalf("PageImages() error = %v", err)
	}
	if len(images) != 1 || images[0].URL != "/images/guide/p3-0.png" {
		t.Errorf("PageImages() = %+v", images)
	}

	requests := mb.Requests()
	if len(requests) != 1 || requests[0] != "GET /api/images/guide.pdf/3" {
		t.Errorf("requests = %v", requests)
	}
}

func TestClient_PageImagesNone(t *testing.T) {
	mb := testutil.NewMockBackend(t)
	client := NewClient(mb.Server.URL)

	images, err := client.PageImages(context.Background(), "guide.pdf", 99)
	if err != nil {
		t.Fatalf("PageImages() error = %v", err)
	}
	if len(images) != 0 {
		t.Errorf("PageImages() = %+v, want empty", images)
	}
}

func TestClient_UploadPDF(t *testing.T) {
	mb := testutil.NewMockBackend(t)
	client := NewClient(mb.Server.URL)

	path := testutil.WriteTempFile(t, "small.pdf", 2048)

	var lastSent, lastTotal int64
	resp, err := client.UploadPDF(context.Background(), path, func(sent, total int64) {
		lastSent, lastTotal = sent, total
	})
	if err != nil {
		t.Fatalf("UploadPDF() error = %v", err)
	}
	if resp.Stats.Filename != "uploaded.pdf" || resp.Stats.PageCount != 3 {
		t.Errorf("UploadPDF() stats = %+v", resp.Stats)
	}
	if mb.RequestCount("/api/upload-pdf") != 1 {
		t.Errorf("upload requests = %d, want 1", mb.RequestCount("/api/upload-pdf"))
	}
	if lastTotal == 0 || lastSent != lastTotal {
		t.Errorf("progress ended at %d/%d, want complete", lastSent, lastTotal)
	}
}

func TestClient_UploadPDFRejectsNonPDF(t *testing.T) {
	mb := testutil.NewMockBackend(t)
	client := NewClient(mb.Server.URL)

	path := testutil.WriteTempFile(t, "notes.docx", 128)

	_, err := client.UploadPDF(context.Background(), path, nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("UploadPDF() error = %v, want ValidationError", err)
	}

	// Validation happens before any request is made.
	if got := mb.RequestCount("/api/upload-pdf"); got != 0 {
		t.Errorf("upload requests = %d, want 0", got)
	}
}

func TestClient_UploadPDFServerError(t *testing.T) {
	mb := testutil.NewMockBackend(t)
	mb.UploadStatus = 400
	mb.UploadError = "file is corrupt"
	client := NewClient(mb.Server.URL)

	path := testutil.WriteTempFile(t, "broken.pdf", 64)

	_, err := client.UploadPDF(context.Background(), path, nil)
	var aerr *APIError
	if !errors.As(err, &aerr) {
		t.Fatalf("UploadPDF() error = %v, want APIError", err)
	}
	if aerr.Status != 400 || aerr.Message != "file is corrupt" {
		t.Errorf("APIError = %+v", aerr)
	}
}

func TestClient_ErrorBodySurfaced(t *testing.T) {
	mb := testutil.NewMockBackend(t)
	client := NewClient(mb.Server.URL)

	err := client.getJSON(context.Background(), "/api/does-not-exist", &struct{}{})
	var aerr *APIError
	if !errors.As(err, &aerr) {
		t.Fatalf("getJSON() error = %v, want APIError", err)
	}
	if aerr.Status != 404 || aerr.Message == "" {
		t.Errorf("APIError = %+v", aerr)
	}
}
