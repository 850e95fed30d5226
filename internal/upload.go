package internal

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// MaxUploadBytes is the client-side cap on PDF size, matching the
// backend's limit. Oversized files are rejected before any request.
const MaxUploadBytes = 50 << 20

// ValidateUpload rejects non-PDF or oversized files. Violations are
// user-facing and mean no network call is made.
func ValidateUpload(filename string, size int64) error {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return &ValidationError{Field: "file", Reason: fmt.Sprintf("%s is not a PDF file", filename)}
	}
	if size > MaxUploadBytes {
		return &ValidationError{
			Field:  "file",
			Reason: fmt.Sprintf("file is larger than the %d MB limit", MaxUploadBytes>>20),
		}
	}
	return nil
}

// progressReader reports bytes consumed from the wrapped request body, so
// upload progress reflects what was actually sent.
type progressReader struct {
	r      io.Reader
	total  int64
	sent   int64
	report func(sent, total int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		p.report(p.sent, p.total)
	}
	return n, err
}
