package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justin-mueller/Einkaufsliste/internal/daily"
	"github.com/justin-mueller/Einkaufsliste/internal/history"
	"github.com/justin-mueller/Einkaufsliste/internal/telemetry"
)

// loadCmd fetches all collections the screen needs.
func (m Model) loadCmd() tea.Cmd {
	client := m.client
	timeout := m.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		items, err := client.FetchItems(ctx)
		if err != nil {
			return MsgLoaded{Err: err}
		}
		articles, err := client.FetchArticles(ctx)
		if err != nil {
			return MsgLoaded{Err: err}
		}
		categories, err := client.FetchCategories(ctx)
		if err != nil {
			return MsgLoaded{Err: err}
		}
		return MsgLoaded{Items: items, Articles: articles, Categories: categories}
	}
}

// persistCmd writes the complete items collection. The snapshot travels with
// the result so a failure can roll back to exactly the pre-mutation state.
func (m Model) persistCmd(op string, next, snapshot []daily.Item, completes bool) tea.Cmd {
	client := m.client
	events := m.events
	timeout := m.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := client.ReplaceItems(ctx, next)
		kind := telemetry.KindMutationPersisted
		if err != nil {
			kind = telemetry.KindMutationReverted
		}
		_ = events.Emit(telemetry.Event{Kind: kind, Collection: "items", Count: len(next)})

		return MsgPersisted{Op: op, Snapshot: snapshot, Completes: completes, Err: err}
	}
}

// archiveCmd records the completed list in the local purchase archive.
// Best effort: failures surface nowhere but the telemetry log.
func (m Model) archiveCmd(items []daily.Item) tea.Cmd {
	path := m.cfg.HistoryDB
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		archive, err := history.Open(ctx, path)
		if err != nil {
			return nil
		}
		defer archive.Close()
		_ = archive.Record(ctx, items, time.Now())
		return nil
	}
}

func celebrationStepCmd() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(time.Time) tea.Msg {
		return MsgCelebrationStep{}
	})
}
