package export

import (
	"encoding/json"
	"fmt"
	"io"

	"pdfchat/internal"
)

// JSONLExporter exports conversations in JSONL format (one message per line)
type JSONLExporter struct{}

// Export exports a history record to JSONL format
func (e *JSONLExporter) Export(rec *internal.HistoryRecord, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, msg := range rec.Messages {
		obj := map[string]interface{}{
			"role": role(msg),
			"text": msg.Text,
		}

		if msg.Timestamp != "" {
			obj["timestamp"] = msg.Timestamp
		}
		if len(msg.Sources) > 0 {
			obj["sources"] = msg.Sources
		}

		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
