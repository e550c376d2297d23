package theme

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	darkText  = "#000000"
	lightText = "#ffffff"

	lightBaseText = "#333639"
	darkBaseText  = "#e0e0e0"

	lightDanger = "#d03050"
	darkDanger  = "#e88080"
)

// Styles is the terminal rendition of a record's override bundle.
type Styles struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Text      lipgloss.Style
	Faint     lipgloss.Style
	Accent    lipgloss.Style
	Highlight lipgloss.Style
	Selected  lipgloss.Style
	Success   lipgloss.Style
	Danger    lipgloss.Style
	Sider     lipgloss.Style
	Card      lipgloss.Style
	Border    lipgloss.Style
	HelpKey   lipgloss.Style
	HelpValue lipgloss.Style
}

// NewStyles builds lipgloss styles from the record's overrides.
func NewStyles(r Record) Styles {
	o := r.Overrides
	text := o.Common.TextColorBase
	if text == "" {
		text = lightBaseText
		if r.IsDark() {
			text = darkBaseText
		}
	}
	danger := lightDanger
	if r.IsDark() {
		danger = darkDanger
	}
	muted := Blend(text, o.Layout.Color, 0.45)
	primary := lipgloss.Color(o.Common.PrimaryColor)

	return Styles{
		Title:     lipgloss.NewStyle().Foreground(primary).Bold(true).Underline(true),
		Subtitle:  lipgloss.NewStyle().Foreground(lipgloss.Color(text)).Bold(true),
		Text:      lipgloss.NewStyle().Foreground(lipgloss.Color(text)),
		Faint:     lipgloss.NewStyle().Foreground(lipgloss.Color(muted)),
		Accent:    lipgloss.NewStyle().Foreground(primary).Bold(true),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color(o.Common.PrimaryColorHover)).Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ReadableOn(o.Button.ColorPrimary))).
			Background(primary).
			Bold(true),
		Success: lipgloss.NewStyle().Foreground(primary).Bold(true),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color(danger)).Bold(true),
		Sider: lipgloss.NewStyle().
			Foreground(lipgloss.Color(text)).
			Background(lipgloss.Color(o.Layout.SiderColor)).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(lipgloss.Color(o.Layout.SiderBorderColor)).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Foreground(lipgloss.Color(text)).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(o.Card.BorderColor)).
			Padding(0, 1),
		Border:    lipgloss.NewStyle().Foreground(lipgloss.Color(o.Card.BorderColor)),
		HelpKey:   lipgloss.NewStyle().Foreground(primary).Bold(true),
		HelpValue: lipgloss.NewStyle().Foreground(lipgloss.Color(muted)),
	}
}

// Swatch renders a small block filled with the given color.
func Swatch(hex string, width int) string {
	if width <= 0 {
		width = 2
	}
	block := make([]rune, width)
	for i := range block {
		block[i] = ' '
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render(string(block))
}

// ReadableOn picks black or white text, whichever contrasts better with bg.
// Unparseable colors get white text.
func ReadableOn(bg string) string {
	dark, err := ContrastRatio(darkText, bg)
	if err != nil {
		return lightText
	}
	light, err := ContrastRatio(lightText, bg)
	if err != nil {
		return lightText
	}
	if dark > light {
		return darkText
	}
	return lightText
}

// ContrastRatio is the WCAG contrast ratio between two hex colors.
func ContrastRatio(a, b string) (float64, error) {
	la, err := luminance(a)
	if err != nil {
		return 0, err
	}
	lb, err := luminance(b)
	if err != nil {
		return 0, err
	}
	return (math.Max(la, lb) + 0.05) / (math.Min(la, lb) + 0.05), nil
}

// Blend mixes a toward b in Lab space. t=0 returns a, t=1 returns b.
// If either color fails to parse, a is returned unchanged.
func Blend(a, b string, t float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	return ca.BlendLab(cb, t).Clamped().Hex()
}

func luminance(hex string) (float64, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, err
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b, nil
}
