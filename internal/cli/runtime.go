package cli

import (
	"context"
	"fmt"

	"github.com/opencode-ai/thememode/internal/config"
	"github.com/opencode-ai/thememode/internal/db"
	"github.com/opencode-ai/thememode/internal/events"
	"github.com/opencode-ai/thememode/internal/logging"
	"github.com/opencode-ai/thememode/internal/mode"
	"github.com/opencode-ai/thememode/internal/modesvc"
	"github.com/opencode-ai/thememode/internal/platform"
)

// runtime is a mode manager plus everything it was built from.
type runtime struct {
	signal  *platform.Opened
	manager *mode.Manager
	journal *db.DB
	detach  func()
}

func openSignal(cfg *config.Config) (*platform.Opened, error) {
	opened, err := platform.Open(platform.Options{
		Name:         cfg.Mode.Signal,
		StaticDark:   cfg.Mode.StaticDark,
		PollInterval: cfg.Mode.PollInterval,
		Logger:       logging.Component("platform"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open preference source: %w", err)
	}
	return opened, nil
}

func openJournal(ctx context.Context, path string) (*db.DB, error) {
	database, err := db.Open(path, logging.Component("db"))
	if err != nil {
		return nil, err
	}
	if _, err := database.MigrateUp(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate journal: %w", err)
	}
	return database, nil
}

// startRuntime opens the preference source, builds the manager and, when
// enabled, attaches the journal recorder tagged with source.
func startRuntime(ctx context.Context, cfg *config.Config, source string) (*runtime, error) {
	opened, err := openSignal(cfg)
	if err != nil {
		return nil, err
	}

	logger := logging.Component("mode")
	manager := mode.New(cfg.Mode.Initial, opened, mode.WithLogger(logger))
	logger.Info().
		Str("initial", cfg.Mode.Initial).
		Str("signal", opened.Source).
		Str("mode", string(manager.Mode())).
		Str("theme", string(manager.Theme())).
		Msg("mode manager ready")

	rt := &runtime{signal: opened, manager: manager}
	if cfg.Journal.Enabled {
		journal, err := openJournal(ctx, cfg.Journal.Path)
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.journal = journal
		recorder := events.NewRecorder(db.NewEventRepository(journal), source, logging.Component("journal"))
		rt.detach = recorder.Attach(manager)
	}
	return rt, nil
}

func (rt *runtime) Close() {
	if rt.detach != nil {
		rt.detach()
	}
	if rt.manager != nil {
		rt.manager.Close()
	}
	if rt.journal != nil {
		rt.journal.Close()
	}
	if rt.signal != nil {
		rt.signal.Close()
	}
}

func dialService(cfg *config.Config) (*modesvc.Client, error) {
	client, err := modesvc.Dial(cfg.Server.Addr)
	if err != nil {
		return nil, &PreflightError{
			Message:  fmt.Sprintf("cannot reach mode service at %s: %v", cfg.Server.Addr, err),
			Hint:     "Start the service first, or pass --addr",
			NextStep: "thememode serve",
		}
	}
	return client, nil
}
