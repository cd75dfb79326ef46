// Package tui is the terminal view of the note store.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/notemaster/pkg/autosave"
	"github.com/aretw0/notemaster/pkg/core"
	"github.com/aretw0/notemaster/pkg/exchange"
)

type focus int

const (
	focusList focus = iota
	focusTitle
	focusTags
	focusContent
	focusSearch
)

type mode int

const (
	modeNormal mode = iota
	modeConfirmDelete
	modeImportPath
)

type model struct {
	ctx      context.Context
	store    *core.Store
	prefs    *core.Preferences
	autosave *autosave.Debouncer
	now      func() time.Time

	notes  []core.Note // Query output shown in the list
	cursor int         // Index of the highlighted note

	editing   bool // The editor holds a note
	editingID int64
	priority  core.Priority
	title     textinput.Model
	tags      textinput.Model
	content   textarea.Model
	search    textinput.Model
	path      textinput.Model

	focus     focus
	mode      mode
	deleteID  int64
	exportDir string

	settings core.Settings
	theme    core.Theme
	styles   styles

	toast    string
	toastErr bool
	toastSeq int

	width  int
	height int
}

// Initialize TUI model
func newModel(ctx context.Context, store *core.Store, prefs *core.Preferences) model {
	title := textinput.New()
	title.Placeholder = core.DefaultTitle
	title.CharLimit = 256

	tags := textinput.New()
	tags.Placeholder = "tags, separated, by commas"
	tags.CharLimit = 512

	content := textarea.New()
	content.Placeholder = "Start writing..."
	content.ShowLineNumbers = false
	content.CharLimit = 0

	search := textinput.New()
	search.Placeholder = "Search notes"
	search.Prompt = "/ "

	path := textinput.New()
	path.Placeholder = exchange.BundleFilename

	settings := prefs.Settings()
	theme := prefs.Theme()

	m := model{
		ctx:       ctx,
		store:     store,
		prefs:     prefs,
		autosave:  autosave.New(interval(settings)),
		now:       time.Now,
		title:     title,
		tags:      tags,
		content:   content,
		search:    search,
		path:      path,
		exportDir: ".",
		settings:  settings,
		theme:     theme,
		styles:    newStyles(theme),
	}
	m.search.SetValue(store.Query().Search)
	m.refresh()
	if n, ok := store.Current(); ok {
		m.loadEditor(n)
	}
	return m
}

func interval(s core.Settings) time.Duration {
	return time.Duration(s.AutoSaveInterval) * time.Millisecond
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

// Processes store changes, preference changes and key presses
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case storeChangedMsg:
		m.refresh()
		if msg.change.Kind == core.ChangeDeleted && m.editing && msg.change.ID == m.editingID {
			m.clearEditor()
		}
		if msg.change.Persist == core.PersistDegraded {
			return m.showToast("Could not save, changes kept in memory", true)
		}
		return m, nil

	case prefsChangedMsg:
		m.settings = msg.settings
		m.theme = msg.theme
		m.styles = newStyles(msg.theme)
		m.autosave.SetDelay(interval(msg.settings))
		return m, nil

	case importDoneMsg:
		m.refresh()
		return m.showToast(fmt.Sprintf("Imported %d notes", msg.change.Count), false)

	case fileWrittenMsg:
		return m.showToast(msg.label+" "+msg.path, false)

	case errMsg:
		return m.showToast(msg.err.Error(), true)

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forward(msg)
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.autosave.Flush()
		return m, tea.Quit
	}

	switch m.mode {
	case modeConfirmDelete:
		switch key {
		case "y", "Y", "enter":
			return m.deleteConfirmed()
		case "n", "N", "esc":
			m.mode = modeNormal
		}
		return m, nil

	case modeImportPath:
		switch key {
		case "enter":
			path := strings.TrimSpace(m.path.Value())
			if path == "" {
				path = exchange.BundleFilename
			}
			m.mode = modeNormal
			m.path.Reset()
			m.path.Blur()
			return m, importBundle(m.ctx, m.store, path)
		case "esc":
			m.mode = modeNormal
			m.path.Reset()
			m.path.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.path, cmd = m.path.Update(msg)
		return m, cmd
	}

	switch key {
	case "ctrl+n":
		m.autosave.Flush()
		c := m.store.Create(m.ctx)
		m.refresh()
		m.loadEditor(*c.Note)
		return m.setFocus(focusTitle)

	case "ctrl+s":
		return m.saveNow()

	case "ctrl+d":
		if !m.editing {
			return m, nil
		}
		m.autosave.Flush()
		c, ok := m.store.Duplicate(m.ctx, m.editingID)
		if !ok {
			return m, nil
		}
		m.refresh()
		m.loadEditor(*c.Note)
		return m.showToast("Note duplicated", false)

	case "ctrl+x":
		return m.askDelete()

	case "ctrl+f":
		return m.setFocus(focusSearch)

	case "ctrl+t":
		theme, _ := m.prefs.ToggleTheme(m.ctx)
		m.theme = theme
		m.styles = newStyles(theme)
		return m, nil

	case "ctrl+p":
		if !m.editing {
			return m, nil
		}
		m.priority = m.priority.Next()
		m.scheduleSave()
		return m, nil

	case "ctrl+o":
		m.store.SetSort(m.store.Query().Sort.Next())
		m.refresh()
		return m, nil

	case "ctrl+g":
		m.store.SetFilter(nextFilter(m.store.Query().Filter, m.store.Tags()))
		m.refresh()
		return m, nil

	case "f2":
		return m.exportCurrent(exchange.FormatMarkdown)
	case "f3":
		return m.exportCurrent(exchange.FormatText)
	case "f4":
		return m.exportCurrent(exchange.FormatHTML)

	case "f5":
		m.autosave.Flush()
		return m, backupNotes(m.store.Notes(), m.now(), m.exportDir)

	case "f6":
		m.mode = modeImportPath
		return m, m.path.Focus()

	case "tab":
		return m.setFocus(m.nextFocus(1))

	case "shift+tab":
		return m.setFocus(m.nextFocus(-1))

	case "esc":
		m.autosave.Flush()
		return m.setFocus(focusList)
	}

	switch m.focus {
	case focusList:
		return m.listKey(key)
	case focusSearch:
		if key == "enter" {
			return m.setFocus(focusList)
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != m.store.Query().Search {
			m.store.SetSearch(m.search.Value())
			m.refresh()
		}
		return m, cmd
	case focusContent:
		if f, ok := formattingKeys[key]; ok {
			m.content.InsertString(f.Wrap(""))
			m.scheduleSave()
			return m, nil
		}
	}
	return m.forward(msg)
}

var formattingKeys = map[string]core.Formatting{
	"alt+b": core.FormatBold,
	"alt+i": core.FormatItalic,
	"alt+u": core.FormatUnderline,
	"alt+c": core.FormatCode,
	"alt+l": core.FormatList,
	"alt+q": core.FormatQuote,
}

func (m model) listKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.notes)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(m.notes) {
			m.selectNote(m.notes[m.cursor].ID)
			return m.setFocus(focusTitle)
		}
	case "/":
		return m.setFocus(focusSearch)
	case "n":
		return m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlN})
	case "d", "delete":
		if m.cursor < len(m.notes) {
			m.selectNote(m.notes[m.cursor].ID)
			return m.askDelete()
		}
	case "q":
		m.autosave.Flush()
		return m, tea.Quit
	}
	return m, nil
}

// forward routes input to the focused editor field and schedules an
// auto-save when the draft changed.
func (m model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.editing {
		return m, nil
	}
	before := m.draft()

	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.title, cmd = m.title.Update(msg)
	case focusTags:
		m.tags, cmd = m.tags.Update(msg)
	case focusContent:
		m.content, cmd = m.content.Update(msg)
	default:
		return m, nil
	}

	if m.draft() != before {
		m.scheduleSave()
	}
	return m, cmd
}

func (m model) draft() core.Input {
	return core.Input{
		Title:    m.title.Value(),
		Content:  m.content.Value(),
		Tags:     m.tags.Value(),
		Priority: string(m.priority),
	}
}

// scheduleSave binds the current draft to the note being edited.
func (m *model) scheduleSave() {
	if !m.editing {
		return
	}
	in := m.draft()
	store, ctx := m.store, m.ctx
	m.autosave.Schedule(m.editingID, func(id int64) {
		store.Save(ctx, id, in)
	})
}

func (m model) saveNow() (tea.Model, tea.Cmd) {
	if !m.editing {
		return m, nil
	}
	m.autosave.Stop()
	c, ok := m.store.Save(m.ctx, m.editingID, m.draft())
	if !ok {
		return m, nil
	}
	m.refresh()
	if !c.Persisted() {
		return m.showToast("Could not save, changes kept in memory", true)
	}
	return m.showToast("Note saved", false)
}

func (m model) askDelete() (tea.Model, tea.Cmd) {
	if !m.editing {
		return m, nil
	}
	m.deleteID = m.editingID
	m.mode = modeConfirmDelete
	return m, nil
}

func (m model) deleteConfirmed() (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	if id, pending := m.autosave.Pending(); pending && id == m.deleteID {
		m.autosave.Stop()
	} else {
		m.autosave.Flush()
	}
	if _, ok := m.store.Delete(m.ctx, m.deleteID); !ok {
		return m, nil
	}
	if m.editing && m.editingID == m.deleteID {
		m.clearEditor()
	}
	m.refresh()
	m.focus = focusList
	return m.showToast("Note deleted", false)
}

func (m model) exportCurrent(f exchange.Format) (tea.Model, tea.Cmd) {
	if !m.editing {
		return m, nil
	}
	m.autosave.Flush()
	n, ok := m.store.Get(m.editingID)
	if !ok {
		return m, nil
	}
	return m, exportNote(n, f, m.exportDir)
}

// selectNote commits the pending draft before the editor switches notes.
func (m *model) selectNote(id int64) {
	if m.editing && m.editingID == id {
		return
	}
	m.autosave.Flush()
	if !m.store.Select(id) {
		return
	}
	if n, ok := m.store.Current(); ok {
		m.loadEditor(n)
	}
}

func (m *model) loadEditor(n core.Note) {
	m.editing = true
	m.editingID = n.ID
	m.priority = n.Priority
	in := core.InputFrom(n)
	// The placeholder shows DefaultTitle; Save restores it for a blank field.
	if n.Title == core.DefaultTitle {
		in.Title = ""
	}
	m.title.SetValue(in.Title)
	m.tags.SetValue(in.Tags)
	m.content.SetValue(in.Content)
	m.moveCursorTo(n.ID)
}

func (m *model) clearEditor() {
	m.editing = false
	m.editingID = 0
	m.title.Reset()
	m.tags.Reset()
	m.content.Reset()
	m.title.Blur()
	m.tags.Blur()
	m.content.Blur()
	if m.focus != focusSearch {
		m.focus = focusList
	}
}

// refresh re-runs the query and keeps the cursor on the edited note.
func (m *model) refresh() {
	m.notes = m.store.View()
	if m.editing {
		m.moveCursorTo(m.editingID)
	}
	if m.cursor >= len(m.notes) {
		m.cursor = len(m.notes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) moveCursorTo(id int64) {
	for i, n := range m.notes {
		if n.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m model) nextFocus(step int) focus {
	order := []focus{focusList, focusTitle, focusTags, focusContent}
	if !m.editing {
		return focusList
	}
	i := 0
	for j, f := range order {
		if f == m.focus {
			i = j
		}
	}
	return order[(i+step+len(order))%len(order)]
}

func (m model) setFocus(f focus) (tea.Model, tea.Cmd) {
	if f != focusList && f != focusSearch && !m.editing {
		f = focusList
	}
	m.focus = f
	m.title.Blur()
	m.tags.Blur()
	m.content.Blur()
	m.search.Blur()

	switch f {
	case focusTitle:
		return m, m.title.Focus()
	case focusTags:
		return m, m.tags.Focus()
	case focusContent:
		return m, m.content.Focus()
	case focusSearch:
		return m, m.search.Focus()
	}
	return m, nil
}

func (m model) showToast(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.toastSeq++
	m.toast = text
	m.toastErr = isErr
	return m, expireToast(m.toastSeq)
}

// nextFilter cycles "all" followed by every tag.
func nextFilter(current string, tags []string) string {
	options := append([]string{core.FilterAll}, tags...)
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return core.FilterAll
}

func (m *model) layout() {
	_, rightWidth := m.columns()
	inner := rightWidth - 4
	if inner < 10 {
		inner = 10
	}
	m.title.Width = inner - 8
	m.tags.Width = inner - 8
	m.content.SetWidth(inner)
	height := m.height - 14
	if height < 3 {
		height = 3
	}
	m.content.SetHeight(height)
}

func (m model) columns() (int, int) {
	width := m.width
	if width == 0 {
		width = 100
	}
	left := (width * 35) / 100
	return left, width - left
}

func (m model) View() string {
	width, height := m.width, m.height
	if width == 0 {
		width = 100
	}
	if height == 0 {
		height = 30
	}
	s := m.styles
	leftWidth, rightWidth := m.columns()

	titleBar := s.title.Width(width).Render("NoteMaster")

	// Left column: query controls and note list
	var left strings.Builder
	q := m.store.Query()
	left.WriteString(s.subtitle.Render("  Notes") + "\n")
	left.WriteString(s.muted.Render(fmt.Sprintf("  filter: %s  sort: %s", q.Filter, q.Sort)) + "\n")
	left.WriteString("  " + m.search.View() + "\n\n")

	now := m.now()
	if len(m.notes) == 0 {
		left.WriteString(s.muted.Render("  No notes found. Press ctrl+n to create one.") + "\n")
	}
	available := leftWidth - 8
	for i, n := range m.notes {
		pointer := "  "
		itemStyle := s.inactive
		if i == m.cursor {
			pointer = "> "
			itemStyle = s.selected
		}
		line := core.PriorityIcon(n.Priority) + " " + n.Title
		line = lipgloss.NewStyle().MaxWidth(available).Render(line)
		left.WriteString(pointer + itemStyle.Render(line) + "\n")
		if preview := core.Preview(strings.Join(strings.Fields(n.Content), " "), previewLimit); preview != "" {
			left.WriteString("    " + s.text.Render(preview) + "\n")
		}

		meta := core.RelativeDate(n.UpdatedAt, now)
		if len(n.Tags) > 0 {
			meta += "  " + s.tag.Render(strings.Join(n.Tags, " "))
		}
		left.WriteString("    " + s.muted.Render(meta) + "\n")
	}

	// Right column: editor, delete confirmation or import prompt
	var right strings.Builder
	switch {
	case m.mode == modeConfirmDelete:
		n, _ := m.store.Get(m.deleteID)
		right.WriteString(s.subtitle.Render("Delete Note") + "\n\n")
		right.WriteString("Title: " + s.danger.Render(n.Title) + "\n\n")
		right.WriteString("This cannot be undone. (y to confirm, n or esc to cancel)")
	case m.mode == modeImportPath:
		right.WriteString(s.subtitle.Render("Import Notes") + "\n\n")
		right.WriteString("Bundle file: " + m.path.View() + "\n\n")
		right.WriteString("(enter to import, esc to cancel)")
	case m.editing:
		right.WriteString(s.subtitle.Render("Title: ") + m.title.View() + "\n")
		right.WriteString(s.subtitle.Render("Tags:  ") + m.tags.View() + "\n")
		right.WriteString(s.subtitle.Render("Priority: ") +
			s.text.Render(core.PriorityIcon(m.priority)+" "+string(m.priority)) + "\n\n")
		right.WriteString(m.content.View())
		if m.settings.ShowWordCount {
			content := m.content.Value()
			right.WriteString("\n" + s.muted.Render(fmt.Sprintf("%d words, %d characters",
				core.CountWords(content), core.CountCharacters(content))))
		}
	default:
		right.WriteString(s.muted.Render("Select a note or press ctrl+n to create one."))
	}

	panelHeight := height - 4
	leftPanel := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(s.border).
		Width(leftWidth).Height(panelHeight).
		Render(left.String())
	rightPanel := lipgloss.NewStyle().Padding(0, 2).
		Width(rightWidth).Height(panelHeight).
		Render(right.String())
	columns := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, rightPanel)

	// Footer: stats, toast and usage
	stats := m.store.Stats()
	status := fmt.Sprintf("%d notes • %d words • %d tags • %d today",
		stats.TotalNotes, stats.TotalWords, stats.TotalTags, stats.CreatedToday)
	if m.toast != "" {
		toastStyle := s.toast
		if m.toastErr {
			toastStyle = s.toastErr
		}
		status += "   " + toastStyle.Render(m.toast)
	}
	help := "ctrl+n new • ctrl+s save • ctrl+d duplicate • ctrl+x delete • ctrl+f search • " +
		"ctrl+g filter • ctrl+o sort • ctrl+p priority • ctrl+t theme • f2-f4 export • f5 backup • f6 import"

	return titleBar + "\n" + columns + "\n" + status + "\n" + s.footer.Width(width).Render(help)
}

// Run starts the terminal UI and blocks until the user quits or ctx ends.
// A pending auto-save is committed before returning.
func Run(ctx context.Context, store *core.Store, prefs *core.Preferences) error {
	m := newModel(ctx, store, prefs)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	// Send blocks until the program reads it; never call it from the
	// goroutine that runs Update.
	unsubscribe := store.Subscribe(func(c core.Change) {
		go p.Send(storeChangedMsg{change: c})
	})
	defer unsubscribe()
	stopPrefs := prefs.OnChange(func(s core.Settings, t core.Theme) {
		go p.Send(prefsChangedMsg{settings: s, theme: t})
	})
	defer stopPrefs()

	_, err := p.Run()
	m.autosave.Flush()
	return err
}
