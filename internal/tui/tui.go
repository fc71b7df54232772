package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justin-mueller/Einkaufsliste/internal/config"
	"github.com/justin-mueller/Einkaufsliste/internal/store"
	"github.com/justin-mueller/Einkaufsliste/internal/telemetry"
)

// newEmitter opens the telemetry log named by the config. When none is
// configured it returns nil, which is a valid no-op emitter.
func newEmitter(cfg config.Config) (*telemetry.Emitter, error) {
	if cfg.TelemetryLog == "" {
		return nil, nil
	}
	return telemetry.NewEmitter(cfg.TelemetryLog)
}

// Run starts the interactive shopping screen and blocks until it exits.
// A config-file watcher pushes reloaded configuration into the running
// program; the watcher is optional and a failure to start it is not fatal.
func Run(cfg config.Config) error {
	if cfg.ServerURL == "" {
		return fmt.Errorf("tui: keine server_url konfiguriert")
	}

	events, err := newEmitter(cfg)
	if err != nil {
		return fmt.Errorf("tui: telemetry: %w", err)
	}

	client := store.NewClient(cfg.ServerURL, cfg.Timeout())
	p := tea.NewProgram(New(cfg, client, events), tea.WithAltScreen())

	watcher, err := config.NewWatcher()
	if err == nil && watcher != nil {
		defer watcher.Stop()
		go func() {
			for next := range watcher.Changes {
				p.Send(MsgConfigChanged{Config: next})
			}
		}()
	}

	// The model owns the emitter from here: a config reload may have
	// swapped it, so close whichever one the final model holds.
	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.events.Close()
	} else {
		events.Close()
	}
	return err
}
