// Package events records mode manager notifications to the journal.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/opencode-ai/thememode/internal/mode"
	"github.com/opencode-ai/thememode/internal/models"
	"github.com/rs/zerolog"
)

const writeTimeout = 2 * time.Second

// Repository is the minimal interface needed to write events.
type Repository interface {
	Create(ctx context.Context, event *models.Event) error
}

// LogModeChanged records a mode notification.
func LogModeChanged(ctx context.Context, repo Repository, source string, m mode.Mode) error {
	return logEvent(ctx, repo, models.EventTypeModeChanged, source, string(m))
}

// LogThemeChanged records a theme notification.
func LogThemeChanged(ctx context.Context, repo Repository, source string, t mode.Theme) error {
	return logEvent(ctx, repo, models.EventTypeThemeChanged, source, string(t))
}

func logEvent(ctx context.Context, repo Repository, eventType models.EventType, source, value string) error {
	if repo == nil {
		return fmt.Errorf("event repository is required")
	}
	if source == "" {
		return fmt.Errorf("event source is required")
	}

	return repo.Create(ctx, &models.Event{
		Type:   eventType,
		Value:  value,
		Source: source,
	})
}

// Recorder journals every mode and theme notification of a manager.
type Recorder struct {
	repo   Repository
	source string
	logger zerolog.Logger
}

// NewRecorder creates a Recorder that tags entries with source.
func NewRecorder(repo Repository, source string, logger zerolog.Logger) *Recorder {
	return &Recorder{repo: repo, source: source, logger: logger}
}

// Attach subscribes to manager. The current mode and theme are recorded
// immediately. The returned function detaches the recorder.
func (r *Recorder) Attach(manager *mode.Manager) (detach func()) {
	unwatchMode := manager.WatchMode(func(m mode.Mode) {
		r.write(func(ctx context.Context) error {
			return LogModeChanged(ctx, r.repo, r.source, m)
		})
	})
	unwatchTheme := manager.WatchTheme(func(t mode.Theme) {
		r.write(func(ctx context.Context) error {
			return LogThemeChanged(ctx, r.repo, r.source, t)
		})
	})

	return func() {
		unwatchMode()
		unwatchTheme()
	}
}

func (r *Recorder) write(fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		r.logger.Warn().Err(err).Msg("failed to journal notification")
	}
}
