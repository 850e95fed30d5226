package export

import (
	"fmt"
	"io"
	"strings"

	"pdfchat/internal"
)

// MarkdownExporter exports conversations in Markdown format
type MarkdownExporter struct{}

// Export exports a history record to Markdown format
func (e *MarkdownExporter) Export(rec *internal.HistoryRecord, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# Conversation %s\n\n", rec.SessionID)

	if rec.LastUpdated != "" {
		_, _ = fmt.Fprintf(w, "**Updated:** %s  \n", rec.LastUpdated)
	}
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(rec.Messages))

	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range rec.Messages {
		timestamp := ""
		if msg.Timestamp != "" {
			timestamp = fmt.Sprintf(" (%s)", msg.Timestamp)
		}

		content := escapeMarkdown(msg.Text)

		_, _ = fmt.Fprintf(w, "**%s:**%s\n\n%s\n\n", role(msg), timestamp, content)

		for _, src := range msg.Sources {
			_, _ = fmt.Fprintf(w, "> 📄 %s p.%d\n", src.Filename, src.Page)
		}
		if len(msg.Sources) > 0 {
			_, _ = fmt.Fprintf(w, "\n")
		}

		if i < len(rec.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// escapeMarkdown escapes markdown special characters
func escapeMarkdown(text string) string {
	// Basic escaping - preserve code blocks
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
