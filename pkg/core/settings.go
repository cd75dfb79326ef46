package core

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Settings are the user preferences of the editor.
type Settings struct {
	AutoSaveInterval int    `json:"autoSaveInterval" yaml:"autoSaveInterval" validate:"gt=0"`
	FontSize         string `json:"fontSize" yaml:"fontSize" validate:"required,fontsize"`
	WordWrap         bool   `json:"wordWrap" yaml:"wordWrap"`
	ShowWordCount    bool   `json:"showWordCount" yaml:"showWordCount"`
}

// DefaultSettings is used for every field missing from storage.
func DefaultSettings() Settings {
	return Settings{
		AutoSaveInterval: 1000,
		FontSize:         "16px",
		WordWrap:         true,
		ShowWordCount:    true,
	}
}

// SettingNames lists the keys accepted by Preferences.Set.
var SettingNames = []string{"autoSaveInterval", "fontSize", "wordWrap", "showWordCount"}

// Theme is the colour scheme of the views.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Toggle flips dark and light.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// ParseTheme accepts "dark" or "light".
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeDark, ThemeLight:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
}

// NewSettingsValidator returns a validator that knows the fontsize tag
// (a positive CSS pixel size such as "16px").
func NewSettingsValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("fontsize", func(fl validator.FieldLevel) bool {
		px, ok := strings.CutSuffix(fl.Field().String(), "px")
		if !ok {
			return false
		}
		n, err := strconv.Atoi(px)
		return err == nil && n > 0
	})
	return v
}

// Preferences holds Settings and Theme, persisting every change.
type Preferences struct {
	mu       sync.RWMutex
	settings Settings
	theme    Theme
	persist  *Persistence
	validate *validator.Validate

	subMu     sync.Mutex
	subs      map[int]func(Settings, Theme)
	nextSubID int
}

// NewPreferences returns defaults until Load is called.
func NewPreferences(p *Persistence) *Preferences {
	return &Preferences{
		settings: DefaultSettings(),
		theme:    ThemeDark,
		persist:  p,
		validate: NewSettingsValidator(),
		subs:     make(map[int]func(Settings, Theme)),
	}
}

// Load merges stored settings over the defaults and reads the theme.
// Stored settings that fail validation are ignored as a whole.
func (p *Preferences) Load(ctx context.Context) {
	settings := DefaultSettings()
	if p.persist.Load(ctx, KeySettings, &settings) {
		if err := p.validate.Struct(settings); err != nil {
			p.persist.logger.Warn("stored settings are invalid, using defaults", "error", err)
			settings = DefaultSettings()
		}
	} else {
		settings = DefaultSettings()
	}

	theme := ThemeDark
	var stored string
	if p.persist.Load(ctx, KeyTheme, &stored) {
		if t, err := ParseTheme(stored); err == nil {
			theme = t
		}
	}

	p.mu.Lock()
	p.settings = settings
	p.theme = theme
	p.mu.Unlock()
	p.notify()
}

// Reload re-reads settings after an external change.
func (p *Preferences) Reload(ctx context.Context) {
	p.Load(ctx)
}

// Settings returns the current settings.
func (p *Preferences) Settings() Settings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.settings
}

// Theme returns the current theme.
func (p *Preferences) Theme() Theme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.theme
}

// Update applies fn to a copy of the settings, validates and persists it.
// Invalid results are rejected and nothing changes.
func (p *Preferences) Update(ctx context.Context, fn func(*Settings)) (PersistStatus, error) {
	p.mu.Lock()
	next := p.settings
	fn(&next)
	if err := p.validate.Struct(next); err != nil {
		p.mu.Unlock()
		return PersistSkipped, fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}
	p.settings = next
	status := p.persist.Save(ctx, KeySettings, next)
	p.mu.Unlock()

	p.notify()
	return status, nil
}

// Set assigns a single setting from its text form, as typed on a command line.
func (p *Preferences) Set(ctx context.Context, name, value string) (PersistStatus, error) {
	var apply func(*Settings)
	switch strings.ToLower(name) {
	case "autosaveinterval":
		n, err := strconv.Atoi(value)
		if err != nil {
			return PersistSkipped, fmt.Errorf("%w: autoSaveInterval must be an integer: %v", ErrInvalidSetting, err)
		}
		apply = func(s *Settings) { s.AutoSaveInterval = n }
	case "fontsize":
		apply = func(s *Settings) { s.FontSize = value }
	case "wordwrap":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return PersistSkipped, fmt.Errorf("%w: wordWrap must be a boolean: %v", ErrInvalidSetting, err)
		}
		apply = func(s *Settings) { s.WordWrap = b }
	case "showwordcount":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return PersistSkipped, fmt.Errorf("%w: showWordCount must be a boolean: %v", ErrInvalidSetting, err)
		}
		apply = func(s *Settings) { s.ShowWordCount = b }
	default:
		return PersistSkipped, fmt.Errorf("%w: unknown setting %q", ErrInvalidSetting, name)
	}
	return p.Update(ctx, apply)
}

// SetTheme stores t.
func (p *Preferences) SetTheme(ctx context.Context, t Theme) PersistStatus {
	p.mu.Lock()
	p.theme = t
	status := p.persist.Save(ctx, KeyTheme, string(t))
	p.mu.Unlock()

	p.notify()
	return status
}

// ToggleTheme flips and stores the theme, returning the new one.
func (p *Preferences) ToggleTheme(ctx context.Context) (Theme, PersistStatus) {
	next := p.Theme().Toggle()
	return next, p.SetTheme(ctx, next)
}

// OnChange registers fn to run after every settings or theme change. The
// returned func removes the registration.
func (p *Preferences) OnChange(fn func(Settings, Theme)) (unsubscribe func()) {
	p.subMu.Lock()
	id := p.nextSubID
	p.nextSubID++
	p.subs[id] = fn
	p.subMu.Unlock()

	return func() {
		p.subMu.Lock()
		delete(p.subs, id)
		p.subMu.Unlock()
	}
}

func (p *Preferences) notify() {
	settings, theme := p.Settings(), p.Theme()
	p.subMu.Lock()
	subs := make([]func(Settings, Theme), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.subMu.Unlock()
	for _, fn := range subs {
		fn(settings, theme)
	}
}
