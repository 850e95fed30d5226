package internal

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// SessionPointerKey holds the id of the active session.
	SessionPointerKey = "chat_session_id"

	// HistoryKeyPrefix prefixes the one stored record per session.
	HistoryKeyPrefix = "chat_history_"

	sessionIDPrefix = "session_"
	titleMaxRunes   = 30
	untitledLabel   = "New conversation"
)

// Message is a single transcript entry.
type Message struct {
	Text      string   `json:"text"`
	IsUser    bool     `json:"isUser"`
	Timestamp string   `json:"timestamp,omitempty"`
	Sources   []Source `json:"sources,omitempty"`
}

// Source is a citation reference attached to an answer.
type Source struct {
	Filename   string  `json:"filename"`
	Page       int     `json:"page"`
	Similarity float64 `json:"similarity,omitempty"`
	Text       string  `json:"text,omitempty"`
}

// HistoryRecord is the persisted conversation for one session.
type HistoryRecord struct {
	SessionID   string    `json:"sessionId"`
	Messages    []Message `json:"messages"`
	LastUpdated string    `json:"lastUpdated"`
}

// HistorySummary is the derived listing entry for one stored session.
type HistorySummary struct {
	SessionID    string
	Title        string
	LastUpdated  time.Time
	MessageCount int
}

// NewSessionID generates a fresh session identifier. Uniqueness is
// best-effort: millisecond timestamp plus a short random suffix.
func NewSessionID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s%d_%s", sessionIDPrefix, time.Now().UnixMilli(), suffix)
}

// HistoryKey returns the storage key for a session's history record.
func HistoryKey(sessionID string) string {
	return HistoryKeyPrefix + sessionID
}

// SessionIDFromKey extracts the session id from a history-record key.
func SessionIDFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, HistoryKeyPrefix) {
		return "", false
	}
	id := key[len(HistoryKeyPrefix):]
	if id == "" {
		return "", false
	}
	return id, true
}

// ParseHistoryRecord parses a stored JSON value into a HistoryRecord.
// The session id from the key is authoritative.
func ParseHistoryRecord(key, value string) (*HistoryRecord, error) {
	id, ok := SessionIDFromKey(key)
	if !ok {
		return nil, fmt.Errorf("invalid history key format: %s", key)
	}

	var rec HistoryRecord
	if err := json.Unmarshal([]byte(value), &rec); err != nil {
		return nil, &ParseError{Key: key, Err: err}
	}
	rec.SessionID = id

	return &rec, nil
}

// Title derives a listing title from the first user message, truncated to
// 30 runes with an ellipsis. Sessions without a user message get a
// placeholder.
func (r *HistoryRecord) Title() string {
	for _, msg := range r.Messages {
		if msg.IsUser {
			return truncateTitle(msg.Text)
		}
	}
	return untitledLabel
}

func truncateTitle(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return untitledLabel
	}
	runes := []rune(text)
	if len(runes) <= titleMaxRunes {
		return text
	}
	return string(runes[:titleMaxRunes]) + "..."
}

// UpdatedAt parses the record's lastUpdated timestamp. A missing or
// malformed value yields the zero time, which sorts last.
func (r *HistoryRecord) UpdatedAt() time.Time {
	t, err := time.Parse(time.RFC3339, r.LastUpdated)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Summary derives the listing entry for a record.
func (r *HistoryRecord) Summary() HistorySummary {
	return HistorySummary{
		SessionID:    r.SessionID,
		Title:        r.Title(),
		LastUpdated:  r.UpdatedAt(),
		MessageCount: len(r.Messages),
	}
}

// SortSummaries orders listing entries most recently updated first.
func SortSummaries(summaries []HistorySummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].LastUpdated.After(summaries[j].LastUpdated)
	})
}
