package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
)

// DefaultAutosaveInterval is how often the open document is written back.
const DefaultAutosaveInterval = 60 * time.Second

// Keybinding represents a single key combination.
type Keybinding struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// Config holds user configuration values.
type Config struct {
	Keymap           map[string]Keybinding
	Theme            string
	AutosaveInterval time.Duration
	// Keywords overrides the highlighted reserved words when non-nil.
	Keywords []string
}

// fileConfig is the on-disk shape of Config.
type fileConfig struct {
	Keymap           map[string]string `toml:"keymap"`
	Theme            string            `toml:"theme"`
	AutosaveInterval string            `toml:"autosave_interval"`
	Keywords         []string          `toml:"keywords"`
}

// Default returns a Config with default key mappings.
func Default() *Config {
	return &Config{
		Keymap:           DefaultKeymap(),
		Theme:            "default",
		AutosaveInterval: DefaultAutosaveInterval,
	}
}

// DefaultKeymap provides builtin command bindings.
func DefaultKeymap() map[string]Keybinding {
	return map[string]Keybinding{
		"quit":    mustParse("Ctrl+Q"),
		"new":     mustParse("Ctrl+N"),
		"open":    mustParse("Ctrl+O"),
		"save":    mustParse("Ctrl+S"),
		"saveas":  mustParse("Ctrl+W"),
		"find":    mustParse("Ctrl+F"),
		"replace": mustParse("Ctrl+R"),
		"undo":    mustParse("Ctrl+Z"),
		"redo":    mustParse("Ctrl+Y"),
		"font":    mustParse("Ctrl+T"),
		"menu":    mustParse("F10"),
		"help":    mustParse("F1"),
	}
}

// Load loads configuration from the provided path. If the file does not
// exist, defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for cmd, binding := range fc.Keymap {
		kb, err := ParseKeybinding(binding)
		if err != nil {
			return nil, fmt.Errorf("keymap %s: %w", cmd, err)
		}
		cfg.Keymap[cmd] = kb
	}
	if fc.Theme != "" {
		cfg.Theme = fc.Theme
	}
	if fc.AutosaveInterval != "" {
		d, err := time.ParseDuration(fc.AutosaveInterval)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid autosave_interval %q", fc.AutosaveInterval)
		}
		cfg.AutosaveInterval = d
	}
	if fc.Keywords != nil {
		cfg.Keywords = fc.Keywords
	}
	return cfg, nil
}

// LoadDefault attempts to read ~/.quill/config.toml.
func LoadDefault() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), nil
	}
	return Load(filepath.Join(home, ".quill", "config.toml"))
}

// ParseKeybinding converts a textual key description like "Ctrl+S" or
// "F10" into a Keybinding. Supported forms are Ctrl+<letter> and F1..F12.
func ParseKeybinding(s string) (Keybinding, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == 'F' || s[0] == 'f') {
		n, err := strconv.Atoi(s[1:])
		if err != nil || n < 1 || n > 12 {
			return Keybinding{}, errors.New("invalid function key: " + s)
		}
		return Keybinding{Key: tcell.KeyF1 + tcell.Key(n-1)}, nil
	}
	parts := strings.Split(s, "+")
	if len(parts) != 2 {
		return Keybinding{}, errors.New("invalid keybinding: " + s)
	}
	if !strings.EqualFold(parts[0], "ctrl") {
		return Keybinding{}, errors.New("invalid modifier in keybinding: " + s)
	}
	r := []rune(strings.ToLower(parts[1]))
	if len(r) != 1 || r[0] < 'a' || r[0] > 'z' {
		return Keybinding{}, errors.New("invalid key in keybinding: " + s)
	}
	return Keybinding{Key: tcell.KeyRune, Rune: r[0], Mod: tcell.ModCtrl}, nil
}

func mustParse(s string) Keybinding {
	kb, err := ParseKeybinding(s)
	if err != nil {
		panic(err)
	}
	return kb
}

// Matches returns true if the binding matches the provided event.
func (k Keybinding) Matches(ev *tcell.EventKey) bool {
	if k.Key != tcell.KeyRune {
		return k.Key == ev.Key() && ev.Modifiers()&^tcell.ModShift == k.Mod
	}
	if ev.Key() == tcell.KeyRune && k.Rune == ev.Rune() && k.Mod == ev.Modifiers() {
		return true
	}
	if k.Mod == tcell.ModCtrl && k.Rune >= 'a' && k.Rune <= 'z' {
		return ev.Key() == tcell.KeyCtrlA+tcell.Key(k.Rune-'a')
	}
	return false
}
