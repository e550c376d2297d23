package prefs

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolterm/internal/storage"
	"toolterm/internal/theme"
	"toolterm/internal/viewport"
)

type fakePersistence struct {
	values  map[string]string
	sets    int
	failGet bool
	failSet bool
}

func newFakePersistence(values map[string]string) *fakePersistence {
	if values == nil {
		values = map[string]string{}
	}
	return &fakePersistence{values: values}
}

func (f *fakePersistence) Get(key string) (string, bool, error) {
	if f.failGet {
		return "", false, errors.New("disk on fire")
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakePersistence) Set(key, value string) error {
	f.sets++
	if f.failSet {
		return errors.New("read-only")
	}
	f.values[key] = value
	return nil
}

func wide() *viewport.Watcher   { return viewport.NewWatcher(1280) }
func narrow() *viewport.Watcher { return viewport.NewWatcher(500) }

func TestInitializeDefaults(t *testing.T) {
	p := newFakePersistence(nil)
	s := Initialize(p, wide())

	assert.Equal(t, DefaultThemeKey, s.ThemeKey())
	assert.Equal(t, "dark", s.CurrentTheme().Key)
	assert.True(t, s.IsDarkTheme())
	assert.False(t, s.MenuCollapsed())
	assert.False(t, s.IsSmallScreen())

	assert.Equal(t, "dark", p.values[ThemeStorageKey])
	assert.Equal(t, "false", p.values[MenuStorageKey])
}

func TestInitializeNarrowViewportCollapsesMenu(t *testing.T) {
	p := newFakePersistence(nil)
	s := Initialize(p, narrow())

	assert.True(t, s.MenuCollapsed())
	assert.True(t, s.IsSmallScreen())
	assert.Equal(t, "true", p.values[MenuStorageKey])
}

func TestInitializeKeepsPersistedMenuFlag(t *testing.T) {
	p := newFakePersistence(map[string]string{MenuStorageKey: "false"})
	s := Initialize(p, narrow())

	assert.False(t, s.MenuCollapsed())
	assert.True(t, s.IsSmallScreen())
}

func TestInitializeMalformedMenuFlagFallsBack(t *testing.T) {
	p := newFakePersistence(map[string]string{MenuStorageKey: "sideways"})
	s := Initialize(p, narrow())
	assert.True(t, s.MenuCollapsed())
}

func TestPersistedThemeIsUsed(t *testing.T) {
	p := newFakePersistence(map[string]string{ThemeStorageKey: "ocean"})
	s := Initialize(p, wide())

	assert.Equal(t, "ocean", s.CurrentTheme().Key)
	assert.True(t, s.IsDarkTheme())
}

func TestUnknownPersistedThemeFallsBackByIndex(t *testing.T) {
	p := newFakePersistence(map[string]string{ThemeStorageKey: "doesnotexist"})
	s := Initialize(p, wide())

	assert.Equal(t, "doesnotexist", s.ThemeKey())
	assert.Equal(t, theme.All()[1], s.CurrentTheme())
	assert.Equal(t, "dark", s.CurrentTheme().Key)
	assert.Equal(t, "doesnotexist", p.values[ThemeStorageKey], "fallback must not rewrite storage")
}

func TestFallbackIsPositionalNotByKey(t *testing.T) {
	registry := []theme.Record{
		{Key: "dark", Base: theme.Dark},
		{Key: "paper", Base: theme.Light},
		{Key: "light", Base: theme.Light},
	}
	p := newFakePersistence(map[string]string{ThemeStorageKey: "gone"})
	s := Initialize(p, wide(), WithRegistry(registry))

	assert.Equal(t, "paper", s.CurrentTheme().Key)
	assert.False(t, s.IsDarkTheme())
}

func TestSetThemeKnownKeys(t *testing.T) {
	p := newFakePersistence(nil)
	s := Initialize(p, wide())

	for _, rec := range theme.All() {
		s.SetTheme(rec.Key)
		assert.Equal(t, rec.Key, s.CurrentTheme().Key)
		assert.Equal(t, rec.Key, p.values[ThemeStorageKey])
		assert.Equal(t, s.CurrentTheme().Base == theme.Dark, s.IsDarkTheme())
	}
}

func TestSetThemeUnknownKeyIsNoop(t *testing.T) {
	p := newFakePersistence(map[string]string{ThemeStorageKey: "nord"})
	s := Initialize(p, wide())
	before := s.CurrentTheme()
	setsBefore := p.sets

	for _, key := range []string{"doesnotexist", "", "NORD", " nord"} {
		s.SetTheme(key)
		assert.Equal(t, before, s.CurrentTheme())
		assert.Equal(t, "nord", s.ThemeKey())
	}
	assert.Equal(t, setsBefore, p.sets)
}

func TestToggleDark(t *testing.T) {
	tests := []struct {
		start string
		want  string
	}{
		{start: "forest", want: "dark"},
		{start: "light", want: "dark"},
		{start: "dark", want: "light"},
		{start: "ocean", want: "light"},
		{start: "midnight", want: "light"},
		{start: "doesnotexist", want: "light"},
	}
	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			p := newFakePersistence(map[string]string{ThemeStorageKey: tt.start})
			s := Initialize(p, wide())

			s.ToggleDark()
			assert.Equal(t, tt.want, s.ThemeKey())
			assert.Equal(t, tt.want, p.values[ThemeStorageKey])
			assert.Contains(t, []string{"light", "dark"}, s.ThemeKey())
		})
	}
}

func TestToggleDarkRoundTrip(t *testing.T) {
	s := Initialize(newFakePersistence(nil), wide())
	s.SetTheme("cyberpunk")
	s.ToggleDark()
	assert.Equal(t, "light", s.ThemeKey())
	assert.False(t, s.IsDarkTheme())
	s.ToggleDark()
	assert.Equal(t, "dark", s.ThemeKey())
	assert.True(t, s.IsDarkTheme())
}

func TestViewportCrossingOverridesManualToggle(t *testing.T) {
	w := wide()
	p := newFakePersistence(nil)
	s := Initialize(p, w)
	require.False(t, s.MenuCollapsed())

	w.Resize(600)
	assert.True(t, s.MenuCollapsed())
	assert.True(t, s.IsSmallScreen())
	assert.Equal(t, "true", p.values[MenuStorageKey])

	s.SetMenuCollapsed(false)
	assert.False(t, s.MenuCollapsed())

	// A resize that stays narrow does not fire.
	w.Resize(550)
	assert.False(t, s.MenuCollapsed())

	w.Resize(1200)
	assert.False(t, s.MenuCollapsed())
	w.Resize(320)
	assert.True(t, s.MenuCollapsed(), "crossing into narrow overwrites the manual choice")
}

func TestViewportCrossingOverridesPersistedFlag(t *testing.T) {
	w := narrow()
	p := newFakePersistence(map[string]string{MenuStorageKey: "true"})
	s := Initialize(p, w)
	require.True(t, s.MenuCollapsed())

	w.Resize(1600)
	assert.False(t, s.MenuCollapsed())
	assert.Equal(t, "false", p.values[MenuStorageKey])
}

func TestCloseDetachesViewport(t *testing.T) {
	w := wide()
	s := Initialize(newFakePersistence(nil), w)
	s.Close()
	s.Close()

	w.Resize(300)
	assert.False(t, s.MenuCollapsed())
}

func TestSubscribeNotifiesOnChangeOnly(t *testing.T) {
	w := wide()
	s := Initialize(newFakePersistence(nil), w)

	var events []Event
	cancel := s.Subscribe(func(ev Event) { events = append(events, ev) })

	s.SetTheme("dark")
	s.SetTheme("unknown")
	s.SetTheme("ocean")
	s.ToggleDark()
	s.SetMenuCollapsed(false)
	s.SetMenuCollapsed(true)
	w.Resize(400)
	w.Resize(900)

	assert.Equal(t, []Event{EventTheme, EventTheme, EventMenu, EventMenu}, events)

	cancel()
	s.SetTheme("nord")
	assert.Len(t, events, 4)
}

func TestPersistenceFailuresAreAbsorbed(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	p := newFakePersistence(nil)
	p.failGet = true
	p.failSet = true
	s := Initialize(p, narrow(), WithLogger(logger))

	assert.Equal(t, DefaultThemeKey, s.ThemeKey())
	assert.True(t, s.MenuCollapsed())

	s.SetTheme("forest")
	assert.Equal(t, "forest", s.CurrentTheme().Key)
	assert.Contains(t, buf.String(), "failed to persist preference")
	assert.Contains(t, buf.String(), "failed to read preference")
}

func TestStoreWithStorageBackend(t *testing.T) {
	backend := storage.NewMemory()
	s := Initialize(backend, wide())
	s.SetTheme("catppuccin")
	s.SetMenuCollapsed(true)

	again := Initialize(backend, wide())
	assert.Equal(t, "catppuccin", again.CurrentTheme().Key)
	assert.True(t, again.MenuCollapsed())
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "theme", EventTheme.String())
	assert.Equal(t, "menu", EventMenu.String())
	assert.Equal(t, "unknown", Event(42).String())
}
