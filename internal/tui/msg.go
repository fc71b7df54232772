package tui

import (
	"github.com/justin-mueller/Einkaufsliste/internal/catalog"
	"github.com/justin-mueller/Einkaufsliste/internal/category"
	"github.com/justin-mueller/Einkaufsliste/internal/config"
	"github.com/justin-mueller/Einkaufsliste/internal/daily"
)

// MsgLoaded carries the initial (or reloaded) collections.
type MsgLoaded struct {
	Items      []daily.Item
	Articles   []catalog.Article
	Categories []category.Category
	Err        error
}

// MsgPersisted reports the outcome of a persist call. Snapshot holds the
// pre-mutation state; on failure the model rolls back to exactly this value.
type MsgPersisted struct {
	Op        string
	Snapshot  []daily.Item
	Completes bool
	Err       error
}

// MsgCelebrationStep advances the completion animation by one row.
type MsgCelebrationStep struct{}

// MsgCelebrationDone ends the completion animation.
type MsgCelebrationDone struct{}

// MsgConfigChanged carries a freshly reloaded configuration from the
// config-file watcher.
type MsgConfigChanged struct {
	Config config.Config
}
