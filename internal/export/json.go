package export

import (
	"encoding/json"
	"io"

	"pdfchat/internal"
)

// JSONExporter exports conversations in JSON format (pretty-printed)
type JSONExporter struct{}

// Export exports a history record to JSON format
func (e *JSONExporter) Export(rec *internal.HistoryRecord, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(rec)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
