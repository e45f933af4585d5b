// Package models defines records shared by the journal and its readers.
package models

import (
	"errors"
	"strings"
	"time"
)

// EventType categorizes journal entries.
type EventType string

const (
	EventTypeModeChanged  EventType = "mode.changed"
	EventTypeThemeChanged EventType = "theme.changed"
)

// Event is one notification observed from a mode manager.
type Event struct {
	// ID is the unique identifier for the event.
	ID string `json:"id"`

	// Timestamp is when the notification was observed.
	Timestamp time.Time `json:"timestamp"`

	// Type says whether a mode or a theme was delivered.
	Type EventType `json:"type"`

	// Value is the delivered mode or theme.
	Value string `json:"value"`

	// Source names the process that observed the notification.
	Source string `json:"source"`

	// Metadata contains additional context.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Validate checks that the required fields are present.
func (e *Event) Validate() error {
	var errs []error
	if strings.TrimSpace(string(e.Type)) == "" {
		errs = append(errs, errors.New("type: event type is required"))
	}
	if strings.TrimSpace(e.Value) == "" {
		errs = append(errs, errors.New("value: value is required"))
	}
	if strings.TrimSpace(e.Source) == "" {
		errs = append(errs, errors.New("source: source is required"))
	}
	return errors.Join(errs...)
}
