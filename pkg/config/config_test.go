package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestParseKeybinding(t *testing.T) {
	kb, err := ParseKeybinding("Ctrl+X")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !kb.Matches(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModCtrl)) {
		t.Fatalf("expected match for Ctrl+X rune event")
	}
	if !kb.Matches(tcell.NewEventKey(tcell.KeyCtrlX, 0, tcell.ModCtrl)) {
		t.Fatalf("expected match for KeyCtrlX")
	}
	if kb.Matches(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Fatalf("plain x must not match Ctrl+X")
	}
}

func TestParseKeybinding_FunctionKey(t *testing.T) {
	kb, err := ParseKeybinding("F10")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !kb.Matches(tcell.NewEventKey(tcell.KeyF10, 0, tcell.ModNone)) {
		t.Fatalf("expected match for F10")
	}
	if kb.Matches(tcell.NewEventKey(tcell.KeyF9, 0, tcell.ModNone)) {
		t.Fatalf("F9 must not match F10")
	}
}

func TestParseKeybinding_Invalid(t *testing.T) {
	for _, s := range []string{"Ctrl+", "Alt+X", "Ctrl+1", "F0", "F13", "Q"} {
		if _, err := ParseKeybinding(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AutosaveInterval != DefaultAutosaveInterval || cfg.Theme != "default" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if len(cfg.Keymap) != len(DefaultKeymap()) {
		t.Fatalf("expected default keymap")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := []byte(`theme = "monokai"
autosave_interval = "15s"
keywords = ["fn", "let"]

[keymap]
quit = "Ctrl+X"
menu = "F2"
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Keymap["quit"].Matches(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModCtrl)) {
		t.Fatalf("expected remapped quit to Ctrl+X")
	}
	if !cfg.Keymap["menu"].Matches(tcell.NewEventKey(tcell.KeyF2, 0, tcell.ModNone)) {
		t.Fatalf("expected remapped menu to F2")
	}
	if !cfg.Keymap["save"].Matches(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)) {
		t.Fatalf("expected untouched bindings to keep defaults")
	}
	if cfg.Theme != "monokai" || cfg.AutosaveInterval != 15*time.Second {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(cfg.Keywords) != 2 || cfg.Keywords[0] != "fn" {
		t.Fatalf("unexpected keywords: %v", cfg.Keywords)
	}
}

func TestLoadConfig_BadBinding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[keymap]\nquit = \"Meta+Q\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for bad binding")
	}
}
