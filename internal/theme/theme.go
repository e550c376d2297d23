// Package theme holds the built-in color presets and the helpers that turn
// them into terminal styles.
package theme

import (
	"errors"
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Base is the coarse light/dark bucket a theme belongs to.
type Base string

const (
	Light Base = "light"
	Dark  Base = "dark"
)

// Colors is the accent pair shown in theme pickers.
type Colors struct {
	Primary    string `json:"primary" yaml:"primary"`
	Background string `json:"background" yaml:"background"`
}

// Record is a single named preset.
type Record struct {
	Key         string    `json:"key" yaml:"key"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Base        Base      `json:"base" yaml:"base"`
	Overrides   Overrides `json:"overrides" yaml:"overrides"`
	Colors      Colors    `json:"colors" yaml:"colors"`

	swatch swatch
}

// IsDark reports whether the record belongs to the dark bucket.
func (r Record) IsDark() bool {
	return r.Base == Dark
}

// ErrUnknownTheme indicates a key that is not in the registry.
var ErrUnknownTheme = errors.New("unknown theme")

var registry = []Record{
	newRecord("light", "Light (Default)", "Clean and bright default theme.", Light, swatch{
		Primary:        "#18a058",
		PrimaryHover:   "#36ad6a",
		PrimaryPressed: "#0c7a43",
		Bg:             "#f1f5f9",
		Sider:          "#ffffff",
		Card:           "#ffffff",
		Border:         "#eee",
	}),
	newRecord("dark", "Dark (Default)", "Easy on the eyes under low light.", Dark, swatch{
		Primary:        "#1ea54c",
		PrimaryHover:   "#36ad6a",
		PrimaryPressed: "#0c7a43",
		Bg:             "#1c1c1c",
		Sider:          "#232323",
		Card:           "#232323",
		Border:         "#282828",
	}),
	newRecord("ocean", "Ocean Blue", "Deep sea tones.", Dark, swatch{
		Primary:        "#0ea5e9",
		PrimaryHover:   "#38bdf8",
		PrimaryPressed: "#0284c7",
		Bg:             "#0f172a",
		Sider:          "#1e293b",
		Card:           "#1e293b",
		Border:         "#334155",
	}),
	newRecord("forest", "Forest Green", "Nature inspired light theme.", Light, swatch{
		Primary:        "#166534",
		PrimaryHover:   "#15803d",
		PrimaryPressed: "#14532d",
		Bg:             "#ecfdf5",
		Sider:          "#d1fae5",
		Card:           "#ffffff",
		Border:         "#a7f3d0",
	}),
	newRecord("cyberpunk", "Cyberpunk", "High contrast neon.", Dark, swatch{
		Primary:        "#f472b6",
		PrimaryHover:   "#f9a8d4",
		PrimaryPressed: "#db2777",
		Bg:             "#0a0a0a",
		Sider:          "#171717",
		Card:           "#171717",
		Border:         "#f472b6",
	}),
	newRecord("dracula", "Dracula", "Classic vampire coding theme.", Dark, swatch{
		Primary:        "#bd93f9",
		PrimaryHover:   "#d6bbfb",
		PrimaryPressed: "#9b6bdf",
		Bg:             "#282a36",
		Sider:          "#44475a",
		Card:           "#44475a",
		Border:         "#6272a4",
	}),
	newRecord("nord", "Nord", "Arctic, cold, and clean.", Dark, swatch{
		Primary:        "#88C0D0",
		PrimaryHover:   "#81A1C1",
		PrimaryPressed: "#5E81AC",
		Bg:             "#2E3440",
		Sider:          "#3B4252",
		Card:           "#3B4252",
		Border:         "#4C566A",
	}),
	newRecord("catppuccin", "Catppuccin Macchiato", "Soothing pastel theme.", Dark, swatch{
		Primary:        "#f5bde6",
		PrimaryHover:   "#f0c6c6",
		PrimaryPressed: "#ee99a0",
		Bg:             "#24273a",
		Sider:          "#1e2030",
		Card:           "#363a4f",
		Border:         "#494d64",
	}),
	newRecord("coffee", "Morning Coffee", "Warm earth tones.", Dark, swatch{
		Primary:        "#d4a373",
		PrimaryHover:   "#faedcd",
		PrimaryPressed: "#bc6c25",
		Bg:             "#282624",
		Sider:          "#383532",
		Card:           "#383532",
		Border:         "#4a4641",
	}),
	newRecord("synthwave", "Synthwave 84", "Retro futuristic grid.", Dark, swatch{
		Primary:        "#ff7edb",
		PrimaryHover:   "#ff9ce6",
		PrimaryPressed: "#e64eb5",
		Bg:             "#2b213a",
		Sider:          "#241b31",
		Card:           "#241b31",
		Border:         "#3a2e4d",
		TextBase:       "#ffff00",
	}),
	newRecord("sunset", "Sunset", "Gradient orange and reds.", Dark, swatch{
		Primary:        "#fb923c",
		PrimaryHover:   "#fdba74",
		PrimaryPressed: "#ea580c",
		Bg:             "#431407",
		Sider:          "#571c0b",
		Card:           "#571c0b",
		Border:         "#7c2d12",
	}),
	newRecord("midnight", "Midnight Purple", "Deepest dark purple.", Dark, swatch{
		Primary:        "#a855f7",
		PrimaryHover:   "#c084fc",
		PrimaryPressed: "#7e22ce",
		Bg:             "#0f0a1e",
		Sider:          "#180e36",
		Card:           "#180e36",
		Border:         "#2e1866",
	}),
}

func newRecord(key, name, description string, base Base, s swatch) Record {
	return Record{
		Key:         key,
		Name:        name,
		Description: description,
		Base:        base,
		Overrides:   newOverrides(s),
		Colors:      Colors{Primary: s.Primary, Background: s.Bg},
		swatch:      s,
	}
}

// All returns the registry in display order.
func All() []Record {
	out := make([]Record, len(registry))
	copy(out, registry)
	return out
}

// Keys returns the registry keys in display order.
func Keys() []string {
	keys := make([]string, 0, len(registry))
	for _, r := range registry {
		keys = append(keys, r.Key)
	}
	return keys
}

// Lookup returns the built-in record with the given key.
func Lookup(key string) (Record, bool) {
	return Find(registry, key)
}

// Find looks key up in records using an exact match.
func Find(records []Record, key string) (Record, bool) {
	for _, r := range records {
		if r.Key == key {
			return r, true
		}
	}
	return Record{}, false
}

// Validate checks the invariants the preference store relies on: records
// exist, keys are unique and both bases are present. Accent colors and any
// swatch colors must parse as hex.
func Validate(records []Record) error {
	if len(records) == 0 {
		return errors.New("theme registry is empty")
	}
	seen := make(map[string]struct{}, len(records))
	var hasLight, hasDark bool
	for i, r := range records {
		if r.Key == "" {
			return fmt.Errorf("theme %d: key required", i)
		}
		if _, dup := seen[r.Key]; dup {
			return fmt.Errorf("theme %q: duplicate key", r.Key)
		}
		seen[r.Key] = struct{}{}
		switch r.Base {
		case Light:
			hasLight = true
		case Dark:
			hasDark = true
		default:
			return fmt.Errorf("theme %q: invalid base %q", r.Key, r.Base)
		}
		colors := r.swatch.fields()
		colors["primary"] = r.Colors.Primary
		colors["background"] = r.Colors.Background
		for name, value := range colors {
			if value == "" && name != "primary" && name != "background" {
				continue
			}
			if _, err := colorful.Hex(value); err != nil {
				return fmt.Errorf("theme %q: %s must be a hex color like #aabbcc: %w", r.Key, name, err)
			}
		}
	}
	if !hasLight {
		return errors.New("theme registry has no light theme")
	}
	if !hasDark {
		return errors.New("theme registry has no dark theme")
	}
	return nil
}
