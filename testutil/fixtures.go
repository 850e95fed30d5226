package testutil

import (
	"encoding/json"
	"testing"
)

// FixtureMessage mirrors the persisted message shape without depending on
// the package under test.
type FixtureMessage struct {
	Text      string `json:"text"`
	IsUser    bool   `json:"isUser"`
	Timestamp string `json:"timestamp,omitempty"`
}

// HistoryValue builds the JSON value of a history record as it would be
// stored, alternating user/assistant messages for the given texts.
func HistoryValue(t *testing.T, sessionID, lastUpdated string, texts ...string) string {
	t.Helper()

	messages := make([]FixtureMessage, 0, len(texts))
	for i, text := range texts {
		messages = append(messages, FixtureMessage{
			Text:   text,
			IsUser: i%2 == 0,
		})
	}

	record := map[string]interface{}{
		"sessionId":   sessionID,
		"messages":    messages,
		"lastUpdated": lastUpdated,
	}

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("Failed to marshal history fixture: %v", err)
	}
	return string(data)
}
