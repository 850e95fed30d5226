package internal

import (
	"errors"
	"fmt"
)

// ErrQuotaExceeded is returned by a Store when a write would push the
// total stored size past its byte quota.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// ErrSessionNotFound is returned when a named session has no stored record.
var ErrSessionNotFound = errors.New("session not found")

// StorageError represents errors accessing the local key/value store
type StorageError struct {
	Key string
	Op  string // "get", "set", "delete", "keys"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ParseError represents errors parsing a stored record
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s]: %v", e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// APIError represents a failed backend call: either a transport error or
// a non-2xx response, with the backend's error message when it sent one.
type APIError struct {
	Endpoint string
	Status   int
	Message  string
	Err      error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error [%s] status %d: %s", e.Endpoint, e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("api error [%s]: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("api error [%s] status %d", e.Endpoint, e.Status)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// ValidationError rejects bad input before any network call is made
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
