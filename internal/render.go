package internal

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	userLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			Padding(0, 1)

	botLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Bold(true).
			Padding(0, 1)

	messageTimeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Italic(true)

	messageBodyStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	sourceLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Padding(0, 2)

	imageLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Padding(0, 2)
)

var ansiEscapeRe = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

// SanitizeText strips terminal escape sequences and non-printing control
// characters from message content. Sanitizing happens before any styling,
// so content (including content from the backend) can never smuggle
// terminal formatting of its own.
func SanitizeText(text string) string {
	text = ansiEscapeRe.ReplaceAllString(text, "")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' || (r >= 0x20 && r != 0x7f) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatRelativeDate renders a listing date label: time of day for today,
// "yesterday" for yesterday, month/day otherwise.
func FormatRelativeDate(t, now time.Time) string {
	if t.IsZero() {
		return "—"
	}

	t = t.Local()
	now = now.Local()
	yesterday := now.AddDate(0, 0, -1)

	switch {
	case t.Year() == now.Year() && t.YearDay() == now.YearDay():
		return t.Format("15:04")
	case t.Year() == yesterday.Year() && t.YearDay() == yesterday.YearDay():
		return "yesterday"
	default:
		return t.Format("Jan 2")
	}
}

// RenderMessage writes one transcript entry with its role label. Image
// markers are stripped and the remaining text sanitized before styling.
func RenderMessage(w io.Writer, msg Message) {
	var label string
	if msg.IsUser {
		label = userLabelStyle.Render("👤 You")
	} else {
		label = botLabelStyle.Render("🤖 Assistant")
	}

	header := label
	if msg.Timestamp != "" {
		if t, err := time.Parse(time.RFC3339, msg.Timestamp); err == nil {
			header += " " + messageTimeStyle.Render(t.Local().Format("15:04:05"))
		}
	}
	fmt.Fprintln(w, header)

	text := SanitizeText(StripImageMarkers(msg.Text))
	if text == "" {
		fmt.Fprintln(w, messageBodyStyle.Render("(empty message)"))
	} else {
		fmt.Fprintln(w, messageBodyStyle.Render(wrapText(text, 80)))
	}

	for _, src := range msg.Sources {
		fmt.Fprintln(w, sourceLineStyle.Render(fmt.Sprintf("📄 %s p.%d", src.Filename, src.Page)))
	}
}

// RenderImages appends resolved page images under their message.
func RenderImages(w io.Writer, images []ImageInfo) {
	for _, img := range images {
		fmt.Fprintln(w, imageLineStyle.Render(fmt.Sprintf("🖼  %s", img.URL)))
	}
}

// RenderTranscript writes messages in order, with any resolved images
// attached by transcript position.
func RenderTranscript(w io.Writer, messages []Message, images ResolvedImages) {
	for i, msg := range messages {
		RenderMessage(w, msg)
		if imgs := images[i]; len(imgs) > 0 {
			RenderImages(w, imgs)
		}
	}
}

// wrapText wraps long lines at width, preserving existing line breaks.
func wrapText(text string, width int) string {
	lines := strings.Split(text, "\n")
	var wrapped []string

	for _, line := range lines {
		if len(line) <= width {
			wrapped = append(wrapped, line)
			continue
		}

		words := strings.Fields(line)
		currentLine := ""
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				if currentLine != "" {
					wrapped = append(wrapped, currentLine)
					currentLine = word
				} else {
					wrapped = append(wrapped, word)
					currentLine = ""
				}
			} else {
				if currentLine == "" {
					currentLine = word
				} else {
					currentLine += " " + word
				}
			}
		}
		if currentLine != "" {
			wrapped = append(wrapped, currentLine)
		}
	}

	return strings.Join(wrapped, "\n")
}
