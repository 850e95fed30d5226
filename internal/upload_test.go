package internal

import (
	"errors"
	"testing"
)

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  bool
	}{
		{"valid pdf", "guide.pdf", 10 << 20, false},
		{"uppercase extension", "GUIDE.PDF", 1024, false},
		{"at size limit", "big.pdf", MaxUploadBytes, false},
		{"over size limit", "huge.pdf", MaxUploadBytes + 1, true},
		{"wrong extension", "notes.docx", 1024, true},
		{"no extension", "guide", 1024, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.filename, tt.size)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUpload(%q, %d) error = %v, wantErr %v", tt.filename, tt.size, err, tt.wantErr)
			}
			if err != nil {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("error type = %T, want *ValidationError", err)
				}
			}
		})
	}
}
