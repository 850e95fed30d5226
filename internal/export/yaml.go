package export

import (
	"io"

	"pdfchat/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports conversations in YAML format
type YAMLExporter struct{}

type yamlMessage struct {
	Role      string            `yaml:"role"`
	Text      string            `yaml:"text"`
	Timestamp string            `yaml:"timestamp,omitempty"`
	Sources   []internal.Source `yaml:"sources,omitempty"`
}

type yamlRecord struct {
	SessionID   string        `yaml:"session_id"`
	LastUpdated string        `yaml:"last_updated,omitempty"`
	Messages    []yamlMessage `yaml:"messages"`
}

// Export exports a history record to YAML format
func (e *YAMLExporter) Export(rec *internal.HistoryRecord, w io.Writer) error {
	doc := yamlRecord{
		SessionID:   rec.SessionID,
		LastUpdated: rec.LastUpdated,
		Messages:    make([]yamlMessage, 0, len(rec.Messages)),
	}
	for _, msg := range rec.Messages {
		doc.Messages = append(doc.Messages, yamlMessage{
			Role:      role(msg),
			Text:      msg.Text,
			Timestamp: msg.Timestamp,
			Sources:   msg.Sources,
		})
	}

	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(doc)
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
