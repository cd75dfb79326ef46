package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/notemaster/pkg/core"
	"github.com/aretw0/notemaster/pkg/exchange"
)

// storeChangedMsg carries a change published by the store, e.g. a save
// fired by the auto-save timer.
type storeChangedMsg struct {
	change core.Change
}

type prefsChangedMsg struct {
	settings core.Settings
	theme    core.Theme
}

type toastExpiredMsg struct {
	seq int
}

type importDoneMsg struct {
	change core.Change
}

type fileWrittenMsg struct {
	label string
	path  string
}

type errMsg struct {
	err error
}

// Read a bundle file and prepend its notes to the store
func importBundle(ctx context.Context, store *core.Store, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return errMsg{fmt.Errorf("%w: %v", exchange.ErrUnreadable, err)}
		}
		defer f.Close()

		notes, err := exchange.ReadBundle(f)
		if err != nil {
			return errMsg{err}
		}
		return importDoneMsg{change: store.Import(ctx, notes)}
	}
}

// Write one note in the given format into dir
func exportNote(n core.Note, format exchange.Format, dir string) tea.Cmd {
	return func() tea.Msg {
		file, err := exchange.Export(n, format)
		if err != nil {
			return errMsg{err}
		}
		path := filepath.Join(dir, file.Name)
		if err := os.WriteFile(path, file.Content, 0644); err != nil {
			return errMsg{fmt.Errorf("failed to write %s: %w", path, err)}
		}
		return fileWrittenMsg{label: "Exported", path: path}
	}
}

// Write the full collection as a backup bundle into dir
func backupNotes(notes []core.Note, now time.Time, dir string) tea.Cmd {
	return func() tea.Msg {
		data, err := exchange.ExportBundle(notes, now)
		if err != nil {
			return errMsg{err}
		}
		path := filepath.Join(dir, exchange.BundleFilename)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return errMsg{fmt.Errorf("failed to write %s: %w", path, err)}
		}
		return fileWrittenMsg{label: fmt.Sprintf("Backed up %d notes to", len(notes)), path: path}
	}
}

func expireToast(seq int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}
