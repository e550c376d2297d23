// Package prefs holds the persisted UI preferences: the selected theme and
// whether the navigation menu is collapsed.
//
// A Store is not safe for concurrent use. It is meant to be owned by the UI
// event loop, which is also where viewport notifications are delivered.
package prefs

import (
	"strconv"

	"github.com/rs/zerolog"

	"toolterm/internal/theme"
	"toolterm/internal/viewport"
)

const (
	// ThemeStorageKey is the persistence key of the selected theme.
	ThemeStorageKey = "it-tools-theme"
	// MenuStorageKey is the persistence key of the menu-collapsed flag.
	MenuStorageKey = "isMenuCollapsed"

	// DefaultThemeKey is used when nothing has been persisted yet.
	DefaultThemeKey = "dark"

	lightKey = "light"
	darkKey  = "dark"

	// fallbackIndex is the registry position used for unknown theme keys.
	fallbackIndex = 1
)

// Persistence is the host key-value storage.
type Persistence interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Event names the preference that changed.
type Event int

const (
	EventTheme Event = iota
	EventMenu
)

func (e Event) String() string {
	switch e {
	case EventTheme:
		return "theme"
	case EventMenu:
		return "menu"
	default:
		return "unknown"
	}
}

// Store is the live preference state.
type Store struct {
	persist  Persistence
	registry []theme.Record
	logger   zerolog.Logger

	themeKey      string
	menuCollapsed bool
	smallScreen   bool

	listeners map[int]func(Event)
	order     []int
	nextID    int

	unsubscribe func()
}

// Option customises Initialize.
type Option func(*Store)

// WithLogger routes persistence failures to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithRegistry replaces the built-in theme registry. The registry must hold
// at least two records.
func WithRegistry(records []theme.Record) Option {
	return func(s *Store) {
		s.registry = records
	}
}

// Initialize reads the persisted preferences, seeding missing ones, and binds
// the menu flag to the viewport signal. Every later narrow/wide crossing
// overwrites the menu flag, including one the user set by hand.
func Initialize(p Persistence, v viewport.Signal, opts ...Option) *Store {
	s := &Store{
		persist:   p,
		registry:  theme.All(),
		logger:    zerolog.Nop(),
		listeners: map[int]func(Event){},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.smallScreen = v.Narrow()
	s.themeKey = s.loadString(ThemeStorageKey, DefaultThemeKey)
	s.menuCollapsed = s.loadBool(MenuStorageKey, s.smallScreen)

	s.unsubscribe = v.Subscribe(func(narrow bool) {
		s.smallScreen = narrow
		s.logger.Debug().Bool("narrow", narrow).Msg("viewport crossed narrow threshold")
		s.SetMenuCollapsed(narrow)
	})

	s.logger.Debug().
		Str("theme", s.themeKey).
		Bool("menu_collapsed", s.menuCollapsed).
		Bool("small_screen", s.smallScreen).
		Msg("preferences loaded")
	return s
}

// Close detaches the store from the viewport signal.
func (s *Store) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// ThemeKey returns the raw selected key, which may not be in the registry.
func (s *Store) ThemeKey() string {
	return s.themeKey
}

// CurrentTheme returns the selected record, or the second registry entry if
// the selected key is unknown.
func (s *Store) CurrentTheme() theme.Record {
	if rec, ok := theme.Find(s.registry, s.themeKey); ok {
		return rec
	}
	return s.registry[fallbackIndex]
}

// IsDarkTheme reports whether the current theme is in the dark bucket.
func (s *Store) IsDarkTheme() bool {
	return s.CurrentTheme().Base == theme.Dark
}

// ToggleDark switches to the default light theme when the current one is
// dark and to the default dark theme otherwise.
func (s *Store) ToggleDark() {
	next := darkKey
	if s.IsDarkTheme() {
		next = lightKey
	}
	s.writeTheme(next)
}

// SetTheme selects key. Keys missing from the registry are ignored.
func (s *Store) SetTheme(key string) {
	if _, ok := theme.Find(s.registry, key); !ok {
		s.logger.Debug().Str("theme", key).Msg("ignoring unknown theme")
		return
	}
	s.writeTheme(key)
}

// MenuCollapsed reports whether the navigation menu is collapsed.
func (s *Store) MenuCollapsed() bool {
	return s.menuCollapsed
}

// SetMenuCollapsed sets and persists the menu flag.
func (s *Store) SetMenuCollapsed(collapsed bool) {
	if s.menuCollapsed == collapsed {
		return
	}
	s.menuCollapsed = collapsed
	s.save(MenuStorageKey, strconv.FormatBool(collapsed))
	s.notify(EventMenu)
}

// IsSmallScreen mirrors the viewport signal.
func (s *Store) IsSmallScreen() bool {
	return s.smallScreen
}

// Subscribe registers fn to run after a preference changes. Writes that leave
// a value as it was do not notify.
func (s *Store) Subscribe(fn func(Event)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	return func() {
		if _, ok := s.listeners[id]; !ok {
			return
		}
		delete(s.listeners, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

func (s *Store) writeTheme(key string) {
	if s.themeKey == key {
		return
	}
	s.themeKey = key
	s.save(ThemeStorageKey, key)
	s.notify(EventTheme)
}

func (s *Store) notify(ev Event) {
	ids := make([]int, len(s.order))
	copy(ids, s.order)
	for _, id := range ids {
		if fn, ok := s.listeners[id]; ok {
			fn(ev)
		}
	}
}

func (s *Store) save(key, value string) {
	if err := s.persist.Set(key, value); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to persist preference")
	}
}

func (s *Store) loadString(key, fallback string) string {
	value, ok, err := s.persist.Get(key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to read preference")
		return fallback
	}
	if !ok {
		s.save(key, fallback)
		return fallback
	}
	return value
}

func (s *Store) loadBool(key string, fallback bool) bool {
	raw := s.loadString(key, strconv.FormatBool(fallback))
	value, err := strconv.ParseBool(raw)
	if err != nil {
		s.logger.Warn().Str("key", key).Str("value", raw).Msg("ignoring malformed preference")
		return fallback
	}
	return value
}
