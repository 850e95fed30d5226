package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// MaxPersistedMessages bounds a record after a quota failure: the oldest
// entries are dropped and the save retried once. Best effort only — a
// single conversation larger than the quota on its own still fails.
const MaxPersistedMessages = 50

// Manager owns the active session pointer and its in-memory transcript.
// All persistence goes through the Store boundary; saving never blocks or
// fails the caller, since the message has already been shown.
type Manager struct {
	store    Store
	session  string
	messages []Message
	now      func() time.Time
}

// NewManager restores (or creates) the active session and loads its
// stored transcript.
func NewManager(store Store) (*Manager, error) {
	m := &Manager{store: store, now: time.Now}
	if _, err := m.ActiveSession(); err != nil {
		return nil, err
	}
	m.Load()
	return m, nil
}

// ActiveSession returns the active session id, generating and persisting
// a fresh one when no pointer exists yet.
func (m *Manager) ActiveSession() (string, error) {
	if m.session != "" {
		return m.session, nil
	}

	value, ok, err := m.store.Get(SessionPointerKey)
	if err != nil {
		return "", err
	}
	if ok && value != "" {
		m.session = value
		return m.session, nil
	}

	id := NewSessionID()
	if err := m.store.Set(SessionPointerKey, id); err != nil {
		return "", err
	}
	m.session = id
	return id, nil
}

// Messages returns the in-memory transcript in render order.
func (m *Manager) Messages() []Message {
	return m.messages
}

// Append adds a message to the transcript, stamping it if needed, and
// persists the record.
func (m *Manager) Append(msg Message) {
	if msg.Timestamp == "" {
		msg.Timestamp = m.now().UTC().Format(time.RFC3339)
	}
	m.messages = append(m.messages, msg)
	m.Save()
}

// Save serializes the transcript under the session's history key. On a
// quota failure the transcript is trimmed to the most recent
// MaxPersistedMessages entries and the save retried once. Other failures
// are logged and swallowed.
func (m *Manager) Save() {
	session, err := m.ActiveSession()
	if err != nil {
		LogError("Failed to resolve active session: %v", err)
		return
	}

	err = m.writeRecord(session)
	if err == nil {
		return
	}

	if errors.Is(err, ErrQuotaExceeded) {
		if len(m.messages) > MaxPersistedMessages {
			m.messages = m.messages[len(m.messages)-MaxPersistedMessages:]
		}
		if retryErr := m.writeRecord(session); retryErr != nil {
			LogError("Failed to save chat history after trim: %v", retryErr)
		} else {
			LogWarn("Chat history trimmed to the last %d message(s)", MaxPersistedMessages)
		}
		return
	}

	LogError("Failed to save chat history: %v", err)
}

func (m *Manager) writeRecord(session string) error {
	rec := HistoryRecord{
		SessionID:   session,
		Messages:    m.messages,
		LastUpdated: m.now().UTC().Format(time.RFC3339),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return m.store.Set(HistoryKey(session), string(data))
}

// Load replaces the transcript with the active session's stored record.
// A missing or malformed record resets to an empty transcript; nothing
// surfaces to the user.
func (m *Manager) Load() {
	session, err := m.ActiveSession()
	if err != nil {
		LogError("Failed to resolve active session: %v", err)
		m.messages = nil
		return
	}

	key := HistoryKey(session)
	value, ok, err := m.store.Get(key)
	if err != nil {
		LogError("Failed to read chat history: %v", err)
		m.messages = nil
		return
	}
	if !ok {
		m.messages = nil
		return
	}

	rec, err := ParseHistoryRecord(key, value)
	if err != nil {
		LogWarn("Discarding malformed chat history for %s: %v", session, err)
		m.messages = nil
		return
	}
	m.messages = rec.Messages
}

// Record reads a stored history record without touching the active
// session or transcript.
func (m *Manager) Record(sessionID string) (*HistoryRecord, error) {
	key := HistoryKey(sessionID)
	value, ok, err := m.store.Get(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return ParseHistoryRecord(key, value)
}

// ListHistories scans every stored record and derives listing summaries,
// most recently updated first. Records with no messages are never listed;
// malformed ones are skipped with a warning.
func (m *Manager) ListHistories() ([]HistorySummary, error) {
	keys, err := m.store.Keys(HistoryKeyPrefix)
	if err != nil {
		return nil, err
	}

	summaries := make([]HistorySummary, 0, len(keys))
	for _, key := range keys {
		value, ok, err := m.store.Get(key)
		if err != nil {
			LogWarn("Failed to read history record %s: %v", key, err)
			continue
		}
		if !ok {
			continue
		}

		rec, err := ParseHistoryRecord(key, value)
		if err != nil {
			LogWarn("Skipping malformed history record %s: %v", key, err)
			continue
		}
		if len(rec.Messages) == 0 {
			continue
		}
		summaries = append(summaries, rec.Summary())
	}

	SortSummaries(summaries)
	return summaries, nil
}

// Switch makes sessionID active and loads its transcript. Switching to
// the already-active session touches neither storage nor the transcript.
// A session with no stored record is a user-facing error.
func (m *Manager) Switch(sessionID string) error {
	active, err := m.ActiveSession()
	if err != nil {
		return err
	}
	if sessionID == active {
		return nil
	}

	key := HistoryKey(sessionID)
	value, ok, err := m.store.Get(key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	rec, err := ParseHistoryRecord(key, value)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	if err := m.store.Set(SessionPointerKey, sessionID); err != nil {
		return err
	}
	m.session = sessionID
	m.messages = rec.Messages
	return nil
}

// Delete removes a stored session. Deleting the active session starts a
// brand-new empty one, so exactly one session stays active.
func (m *Manager) Delete(sessionID string) error {
	if err := m.store.Delete(HistoryKey(sessionID)); err != nil {
		return err
	}

	active, err := m.ActiveSession()
	if err != nil {
		return err
	}
	if sessionID == active {
		return m.StartNew()
	}
	return nil
}

// StartNew abandons the current pointer and begins an empty session. The
// old record, if any, stays in storage.
func (m *Manager) StartNew() error {
	id := NewSessionID()
	if err := m.store.Set(SessionPointerKey, id); err != nil {
		return err
	}
	m.session = id
	m.messages = nil
	return nil
}
