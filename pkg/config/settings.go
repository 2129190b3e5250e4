package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultFontFamily = "Courier New"
	DefaultFontSize   = 12

	settingsFile = "editor_config.toml"
)

// ErrSettingsInvalid reports a settings file that could not be used as-is.
var ErrSettingsInvalid = errors.New("settings: invalid record")

// FontFamilies lists the families offered by the font prompt.
var FontFamilies = []string{
	"Consolas",
	"Courier New",
	"DejaVu Sans Mono",
	"Fira Code",
	"Hack",
	"IBM Plex Mono",
	"Inconsolata",
	"JetBrains Mono",
	"Liberation Mono",
	"Menlo",
	"Monaco",
	"Source Code Pro",
	"Ubuntu Mono",
}

// FontSizes lists the sizes offered by the font prompt.
var FontSizes = []int{8, 9, 10, 11, 12, 14, 16, 18, 20, 22, 24, 26, 28, 36, 48, 72}

// Font is the persisted font choice.
type Font struct {
	Family string `toml:"family"`
	Size   int    `toml:"size"`
}

// Settings is the record persisted across sessions.
type Settings struct {
	Font Font `toml:"font"`
}

// DefaultSettings returns the built-in record.
func DefaultSettings() Settings {
	return Settings{Font: Font{Family: DefaultFontFamily, Size: DefaultFontSize}}
}

// Validate reports whether every field holds a usable value.
func (s Settings) Validate() error {
	if s.Font.Family == "" {
		return fmt.Errorf("%w: font family is empty", ErrSettingsInvalid)
	}
	if s.Font.Size <= 0 {
		return fmt.Errorf("%w: font size %d", ErrSettingsInvalid, s.Font.Size)
	}
	return nil
}

// DefaultSettingsPath returns ~/.quill/editor_config.toml, or the file name
// alone when the home directory is unknown.
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return settingsFile
	}
	return filepath.Join(home, ".quill", settingsFile)
}

// LoadSettings reads the settings record at path. It always returns a valid
// record: a missing or unreadable file, or missing and invalid keys, fall back
// to the defaults and the file is rewritten straight away. A non-nil error
// describes what was substituted (and any failure rewriting the file).
func LoadSettings(path string) (Settings, error) {
	def := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %v", ErrSettingsInvalid, err)
		}
		return def, errors.Join(err, SaveSettings(path, def))
	}

	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		err = fmt.Errorf("%w: %v", ErrSettingsInvalid, err)
		return def, errors.Join(err, SaveSettings(path, def))
	}
	var problems []error
	if s.Font.Family == "" {
		s.Font.Family = def.Font.Family
		problems = append(problems, fmt.Errorf("%w: font family missing", ErrSettingsInvalid))
	}
	if s.Font.Size <= 0 {
		problems = append(problems, fmt.Errorf("%w: font size %d", ErrSettingsInvalid, s.Font.Size))
		s.Font.Size = def.Font.Size
	}
	if len(problems) == 0 {
		return s, nil
	}
	problems = append(problems, SaveSettings(path, s))
	return s, errors.Join(problems...)
}

// SaveSettings rewrites the settings file wholesale.
func SaveSettings(path string, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
