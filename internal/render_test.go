package internal

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "hello world", "hello world"},
		{"ansi color stripped", "\x1b[31mred\x1b[0m text", "red text"},
		{"cursor movement stripped", "\x1b[2Jcleared", "cleared"},
		{"control chars removed", "a\x07b\x00c", "abc"},
		{"newline and tab kept", "line1\n\tline2", "line1\n\tline2"},
		{"multibyte kept", "画像を参照", "画像を参照"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeText(tt.in); got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatRelativeDate(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero time", time.Time{}, "—"},
		{"today", time.Date(2026, 9, 1, 9, 30, 0, 0, time.Local), "09:30"},
		{"yesterday", time.Date(2026, 8, 31, 23, 0, 0, 0, time.Local), "yesterday"},
		{"earlier this year", time.Date(2026, 8, 15, 10, 0, 0, 0, time.Local), "Aug 15"},
		{"last year", time.Date(2025, 12, 24, 10, 0, 0, 0, time.Local), "Dec 24"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRelativeDate(tt.t, now); got != tt.want {
				t.Errorf("FormatRelativeDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderMessage_StripsMarkers(t *testing.T) {
	var buf bytes.Buffer
	RenderMessage(&buf, Message{
		Text:   "The flow is shown in 画像(guide.pdf, 3) above.",
		IsUser: false,
	})

	out := buf.String()
	if strings.Contains(out, "画像(") {
		t.Errorf("RenderMessage() left marker text:\n%s", out)
	}
	if !strings.Contains(out, "The flow is shown in") {
		t.Errorf("RenderMessage() dropped message text:\n%s", out)
	}
	if !strings.Contains(out, "Assistant") {
		t.Errorf("RenderMessage() missing role label:\n%s", out)
	}
}

func TestRenderMessage_SanitizesContent(t *testing.T) {
	var buf bytes.Buffer
	RenderMessage(&buf, Message{Text: "evil \x1b[2J\x1b[31m payload", IsUser: true})

	if strings.Contains(buf.String(), "\x1b[2J") {
		t.Errorf("RenderMessage() passed escape sequence through:\n%q", buf.String())
	}
}

func TestRenderMessage_EmptyFallback(t *testing.T) {
	var buf bytes.Buffer
	RenderMessage(&buf, Message{Text: "画像(guide.pdf, 3)", IsUser: false})

	if !strings.Contains(buf.String(), "(empty message)") {
		t.Errorf("RenderMessage() missing empty fallback:\n%s", buf.String())
	}
}

func TestRenderMessage_Sources(t *testing.T) {
	var buf bytes.Buffer
	RenderMessage(&buf, Message{
		Text:    "answer",
		Sources: []Source{{Filename: "guide.pdf", Page: 4}},
	})

	if !strings.Contains(buf.String(), "guide.pdf p.4") {
		t.Errorf("RenderMessage() missing source line:\n%s", buf.String())
	}
}

func TestRenderTranscript_AttachesImagesByIndex(t *testing.T) {
	messages := []Message{
		{Text: "question", IsUser: true},
		{Text: "answer with figure", IsUser: false},
	}
	images := ResolvedImages{
		1: {{URL: "/images/guide/p3-0.png"}},
	}

	var buf bytes.Buffer
	RenderTranscript(&buf, messages, images)

	out := buf.String()
	if !strings.Contains(out, "/images/guide/p3-0.png") {
		t.Errorf("RenderTranscript() missing image line:\n%s", out)
	}

	// The image line belongs to the second message, so it must come after
	// the answer text.
	if strings.Index(out, "/images/guide/p3-0.png") < strings.Index(out, "answer with figure") {
		t.Errorf("image rendered before its message:\n%s", out)
	}
}

func TestWrapText(t *testing.T) {
	long := strings.Repeat("word ", 30)
	wrapped := wrapText(strings.TrimSpace(long), 40)

	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > 40 {
			t.Errorf("line longer than width: %q", line)
		}
	}

	if got := wrapText("short line", 40); got != "short line" {
		t.Errorf("wrapText() changed short input: %q", got)
	}
}
