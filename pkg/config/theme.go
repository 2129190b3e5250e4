package config

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
)

// Theme represents configurable colors for UI, cursor, highlights, and syntax.
type Theme struct {
	// Base UI
	UIBackground tcell.Color
	UIForeground tcell.Color

	// Status bar and mini-buffer
	StatusBackground tcell.Color
	StatusForeground tcell.Color
	MiniBackground   tcell.Color
	MiniForeground   tcell.Color
	ErrorForeground  tcell.Color

	CursorText       tcell.Color
	CursorBackground tcell.Color

	// Find matches
	MatchBackground        tcell.Color
	MatchForeground        tcell.Color
	MatchCurrentBackground tcell.Color
	MatchCurrentForeground tcell.Color

	// SyntaxColors maps a highlight category name (keyword, string,
	// comment) to its foreground color.
	SyntaxColors map[string]tcell.Color
}

// DefaultTheme returns the built-in theme. The category colors follow the
// classic orange keyword, green string, gray comment scheme.
func DefaultTheme() Theme {
	return Theme{
		UIBackground: tcell.ColorBlack,
		UIForeground: tcell.ColorWhite,

		StatusBackground: tcell.ColorWhite,
		StatusForeground: tcell.ColorBlack,
		MiniBackground:   tcell.ColorWhite,
		MiniForeground:   tcell.ColorBlack,
		ErrorForeground:  tcell.ColorRed,

		CursorText:       tcell.ColorBlack,
		CursorBackground: tcell.ColorGreen,

		MatchBackground:        tcell.ColorYellow,
		MatchForeground:        tcell.ColorBlack,
		MatchCurrentBackground: tcell.ColorBlue,
		MatchCurrentForeground: tcell.ColorWhite,

		SyntaxColors: map[string]tcell.Color{
			"keyword": tcell.ColorOrange,
			"string":  tcell.ColorGreen,
			"comment": tcell.ColorGray,
		},
	}
}

// TerminalTheme leverages terminal-provided defaults and ANSI palette colors
// so the editor follows the user's terminal theme.
func TerminalTheme() Theme {
	return Theme{
		UIBackground: tcell.ColorDefault,
		UIForeground: tcell.ColorDefault,

		StatusBackground: tcell.ColorGray,
		StatusForeground: tcell.ColorDefault,
		MiniBackground:   tcell.ColorGray,
		MiniForeground:   tcell.ColorDefault,
		ErrorForeground:  tcell.ColorMaroon,

		CursorText:       tcell.ColorDefault,
		CursorBackground: tcell.ColorBlue,

		MatchBackground:        tcell.ColorYellow,
		MatchForeground:        tcell.ColorDefault,
		MatchCurrentBackground: tcell.ColorBlue,
		MatchCurrentForeground: tcell.ColorDefault,

		SyntaxColors: map[string]tcell.Color{
			"keyword": tcell.ColorYellow,
			"string":  tcell.ColorGreen,
			"comment": tcell.ColorGray, // often maps to bright black
		},
	}
}

func darkTheme() Theme {
	t := DefaultTheme()
	t.StatusBackground = tcell.ColorGray
	t.StatusForeground = tcell.ColorWhite
	t.MiniBackground = tcell.ColorGray
	t.MiniForeground = tcell.ColorWhite
	t.CursorBackground = tcell.ColorLightBlue
	t.MatchBackground = tcell.ColorDarkOliveGreen
	t.MatchForeground = tcell.ColorWhite
	t.SyntaxColors = map[string]tcell.Color{
		"keyword": tcell.ColorDarkOrange,
		"string":  tcell.ColorLightGreen,
		"comment": tcell.ColorSilver,
	}
	return t
}

// BuiltinThemes exposes the presets by name.
var BuiltinThemes = map[string]func() Theme{
	"default":  DefaultTheme,
	"light":    DefaultTheme,
	"dark":     darkTheme,
	"terminal": TerminalTheme,
}

// ThemeByName resolves a built-in preset or, failing that, a chroma style of
// the same name. The boolean is false when neither exists, in which case the
// default theme is returned.
func ThemeByName(name string) (Theme, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if mk, ok := BuiltinThemes[key]; ok {
		return mk(), true
	}
	if style, ok := styles.Registry[key]; ok {
		return ThemeFromChroma(style), true
	}
	return DefaultTheme(), false
}

// ThemeFromChroma derives a theme from a chroma style: the style background
// and text colors drive the UI, and its Keyword, LiteralString and Comment
// entries drive the highlight categories.
func ThemeFromChroma(style *chroma.Style) Theme {
	t := DefaultTheme()
	bg := style.Get(chroma.Background)
	t.UIBackground = chromaColor(bg.Background, t.UIBackground)
	t.UIForeground = chromaColor(bg.Colour, t.UIForeground)
	t.StatusBackground = t.UIForeground
	t.StatusForeground = t.UIBackground
	t.MiniBackground = t.UIForeground
	t.MiniForeground = t.UIBackground
	t.CursorText = t.UIBackground
	t.CursorBackground = t.UIForeground

	for name, tt := range map[string]chroma.TokenType{
		"keyword": chroma.Keyword,
		"string":  chroma.LiteralString,
		"comment": chroma.Comment,
	} {
		t.SyntaxColors[name] = chromaColor(style.Get(tt).Colour, t.SyntaxColors[name])
	}
	return t
}

func chromaColor(c chroma.Colour, fallback tcell.Color) tcell.Color {
	if !c.IsSet() {
		return fallback
	}
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}

// ParseColor returns a tcell.Color from a name or hex like "#aabbcc".
// If parsing fails, it returns the provided fallback.
func ParseColor(s string, fallback tcell.Color) tcell.Color {
	if s == "" {
		return fallback
	}
	c := tcell.GetColor(strings.ToLower(s))
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
