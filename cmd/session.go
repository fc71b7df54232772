package cmd

import (
	"errors"
	"fmt"

	"github.com/justin-mueller/Einkaufsliste/internal/config"
	"github.com/justin-mueller/Einkaufsliste/internal/store"
	"github.com/justin-mueller/Einkaufsliste/internal/sync"
	"github.com/justin-mueller/Einkaufsliste/internal/telemetry"
	"github.com/justin-mueller/Einkaufsliste/internal/ui"
)

// session bundles everything a command needs to talk to the list server.
type session struct {
	cfg     config.Config
	client  *store.Client
	events  *telemetry.Emitter
	printer *ui.Printer
}

// newSession loads the configuration and wires the store client and
// telemetry emitter. Fails when no server URL is configured.
func newSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.ServerURL == "" {
		return nil, errors.New("no server configured (set server_url in .einkaufsliste.yaml, EINKAUFSLISTE_SERVER_URL, or --server)")
	}

	var events *telemetry.Emitter
	if cfg.TelemetryLog != "" {
		events, err = telemetry.NewEmitter(cfg.TelemetryLog)
		if err != nil {
			return nil, err
		}
	}

	return &session{
		cfg:     cfg,
		client:  store.NewClient(cfg.ServerURL, cfg.Timeout()),
		events:  events,
		printer: ui.New(),
	}, nil
}

// close releases session resources.
func (s *session) close() {
	_ = s.events.Close()
}

// reportMutationErr prints a mutation failure the way the failure class
// demands: validation problems as plain errors, reverted persists with the
// rollback note, and unknown-state failures with the reload warning.
func (s *session) reportMutationErr(op string, err error) error {
	switch {
	case errors.Is(err, sync.ErrStateUnknown):
		s.printer.Error(err.Error())
		s.printer.Warn("Der lokale Stand könnte veraltet sein — bitte neu laden.")
	case errors.Is(err, sync.ErrMutationInFlight):
		s.printer.Warn(err.Error())
	default:
		var transport *store.TransportError
		var rejection *store.ServerRejection
		if errors.As(err, &transport) || errors.As(err, &rejection) {
			s.printer.Reverted(op, err)
		} else {
			s.printer.Error(err.Error())
		}
	}
	return err
}
