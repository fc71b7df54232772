// Package tui implements the interactive shopping screen: today's list with
// check toggles, the available catalog articles, ad-hoc entry, and the
// completion celebration. Mutations apply to the model before the persist
// command resolves; a failed persist rolls back to the carried snapshot.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/justin-mueller/Einkaufsliste/internal/catalog"
	"github.com/justin-mueller/Einkaufsliste/internal/category"
	"github.com/justin-mueller/Einkaufsliste/internal/config"
	"github.com/justin-mueller/Einkaufsliste/internal/daily"
	"github.com/justin-mueller/Einkaufsliste/internal/store"
	"github.com/justin-mueller/Einkaufsliste/internal/telemetry"
)

// pane identifies which list has keyboard focus.
type pane int

const (
	paneList pane = iota
	paneAvailable
)

// Model is the root bubbletea model for the shopping screen.
type Model struct {
	client *store.Client
	events *telemetry.Emitter
	cfg    config.Config
	keys   KeyMap

	width  int
	height int

	loading bool
	spin    spinner.Model

	items    []daily.Item
	articles []catalog.Article
	cats     []category.Category

	focus       pane
	cursorList  int
	cursorAvail int

	persisting bool

	adhocMode  bool
	adhocInput textinput.Model

	confirmClear bool

	celebrating    bool
	celebrationRow int

	status      string
	statusIsErr bool
}

// New creates the shopping screen model.
func New(cfg config.Config, client *store.Client, events *telemetry.Emitter) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	input := textinput.New()
	input.Placeholder = "Artikelname eingeben…"
	input.CharLimit = 120

	return Model{
		client:     client,
		events:     events,
		cfg:        cfg,
		keys:       DefaultKeyMap(),
		loading:    true,
		spin:       sp,
		adhocInput: input,
	}
}

// Init starts the spinner and the initial data load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.loadCmd())
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case MsgLoaded:
		m.loading = false
		if msg.Err != nil {
			m.setError("Fehler beim Laden: " + msg.Err.Error())
			return m, nil
		}
		m.items = msg.Items
		m.articles = msg.Articles
		m.cats = msg.Categories
		m.clampCursors()
		return m, nil

	case MsgPersisted:
		m.persisting = false
		if msg.Err != nil {
			m.items = msg.Snapshot
			m.clampCursors()
			m.setError(msg.Op + " fehlgeschlagen — Änderung zurückgenommen")
			return m, nil
		}
		m.setInfo("Gespeichert.")
		if msg.Completes {
			m.celebrating = true
			m.celebrationRow = 0
			return m, tea.Batch(celebrationStepCmd(), m.archiveCmd(m.items))
		}
		return m, nil

	case MsgCelebrationStep:
		m.celebrationRow++
		if m.celebrationRow > len(m.items) {
			return m, tea.Tick(400*time.Millisecond, func(time.Time) tea.Msg {
				return MsgCelebrationDone{}
			})
		}
		return m, celebrationStepCmd()

	case MsgCelebrationDone:
		m.celebrating = false
		return m, nil

	case MsgConfigChanged:
		if msg.Config.TelemetryLog != m.cfg.TelemetryLog {
			m.events.Close()
			m.events = nil
			if msg.Config.TelemetryLog != "" {
				if ev, err := telemetry.NewEmitter(msg.Config.TelemetryLog); err == nil {
					m.events = ev
				}
			}
		}
		m.cfg = msg.Config
		m.client = store.NewClient(msg.Config.ServerURL, msg.Config.Timeout())
		m.setInfo("Konfiguration neu geladen.")
		return m, m.loadCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes key presses by mode: ad-hoc entry and the clear-confirm
// overlay capture input before the pane bindings apply.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.adhocMode {
		return m.handleAdhocKey(msg)
	}
	if m.confirmClear {
		return m.handleConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Switch):
		if m.focus == paneList {
			m.focus = paneAvailable
		} else {
			m.focus = paneList
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, m.loadCmd()

	case key.Matches(msg, m.keys.AdHoc):
		m.adhocMode = true
		m.adhocInput.SetValue("")
		return m, m.adhocInput.Focus()

	case key.Matches(msg, m.keys.Clear):
		if len(m.items) > 0 && !m.persisting {
			m.confirmClear = true
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		return m.handleToggle()

	case key.Matches(msg, m.keys.Remove):
		return m.handleRemove()
	}

	return m, nil
}

func (m Model) handleAdhocKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adhocMode = false
		m.adhocInput.Blur()
		return m, nil
	case "enter":
		name := m.adhocInput.Value()
		m.adhocMode = false
		m.adhocInput.Blur()
		item, err := daily.NewAdHocItem(name, time.Now())
		if err != nil {
			m.setError(err.Error())
			return m, nil
		}
		return m.mutateItems("Hinzufügen", daily.Add(m.items, item), false)
	}
	var cmd tea.Cmd
	m.adhocInput, cmd = m.adhocInput.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "J", "y", "Y":
		m.confirmClear = false
		return m.mutateItems("Liste leeren", daily.Clear(), false)
	default:
		m.confirmClear = false
		return m, nil
	}
}

// handleToggle checks an item (list pane) or adds an article (catalog pane).
func (m Model) handleToggle() (tea.Model, tea.Cmd) {
	if m.persisting {
		return m, nil
	}
	switch m.focus {
	case paneList:
		if len(m.items) == 0 || m.cursorList >= len(m.items) {
			return m, nil
		}
		id := m.items[m.cursorList].ID
		completes := daily.WillCompleteList(m.items, id)
		return m.mutateItems("Abhaken", daily.Toggle(m.items, id), completes)

	case paneAvailable:
		available := m.available()
		if len(available) == 0 || m.cursorAvail >= len(available) {
			return m, nil
		}
		return m.mutateItems("Hinzufügen", daily.AddCatalogItem(m.items, available[m.cursorAvail]), false)
	}
	return m, nil
}

func (m Model) handleRemove() (tea.Model, tea.Cmd) {
	if m.persisting || m.focus != paneList || len(m.items) == 0 || m.cursorList >= len(m.items) {
		return m, nil
	}
	return m.mutateItems("Entfernen", daily.Remove(m.items, m.items[m.cursorList].ID), false)
}

// mutateItems performs one optimistic mutation: snapshot, immediate local
// install, persist in the background. Only one mutation runs at a time.
func (m Model) mutateItems(op string, next []daily.Item, completes bool) (tea.Model, tea.Cmd) {
	if m.persisting {
		m.setError("Eine Änderung wird noch gespeichert.")
		return m, nil
	}
	snapshot := m.items
	m.items = next
	m.persisting = true
	m.clampCursors()
	_ = m.events.Emit(telemetry.Event{Kind: telemetry.KindMutationApplied, Collection: "items", Count: len(next)})
	return m, m.persistCmd(op, next, snapshot, completes)
}

// available returns the catalog articles not yet on the list, sorted for
// display.
func (m Model) available() []catalog.Article {
	return catalog.Sort(daily.AvailableArticles(m.articles, m.items))
}

func (m *Model) moveCursor(delta int) {
	if m.focus == paneList {
		m.cursorList += delta
	} else {
		m.cursorAvail += delta
	}
	m.clampCursors()
}

func (m *Model) clampCursors() {
	if m.cursorList >= len(m.items) {
		m.cursorList = len(m.items) - 1
	}
	if m.cursorList < 0 {
		m.cursorList = 0
	}
	if n := len(m.available()); m.cursorAvail >= n {
		m.cursorAvail = n - 1
	}
	if m.cursorAvail < 0 {
		m.cursorAvail = 0
	}
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusIsErr = true
}

func (m *Model) setInfo(s string) {
	m.status = s
	m.statusIsErr = false
}
