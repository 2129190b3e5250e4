package app

import (
	"path/filepath"
	"strings"
	"testing"

	"example.com/quill/pkg/config"
	"example.com/quill/pkg/editor"
	"github.com/gdamore/tcell/v2"
)

// newTestRunner returns a runner on an 80x24 simulation screen holding text,
// with autosave disabled.
func newTestRunner(t *testing.T, text string) (*Runner, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("initializing simulation screen failed: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(80, 24)

	sess := editor.New(config.DefaultSettings(), filepath.Join(t.TempDir(), "editor_config.toml"), nil)
	if err := sess.Insert(0, text); err != nil {
		t.Fatalf("insert: %v", err)
	}
	sess.Dirty = false
	sess.History.Reset()

	cfg := config.Default()
	cfg.AutosaveInterval = 0
	r := New(sess, cfg)
	r.Screen = s
	r.rehighlight()
	return r, s
}

// feed queues events for the runner's prompts. Once they are consumed the
// source reports closed.
func feed(r *Runner, evs ...tcell.Event) {
	ch := make(chan tcell.Event, len(evs))
	for _, ev := range evs {
		ch <- ev
	}
	close(ch)
	r.Events = ch
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func ctrl(c rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyCtrlA+tcell.Key(c-'a'), 0, tcell.ModCtrl)
}

func typed(text string) []tcell.Event {
	evs := make([]tcell.Event, 0, len(text))
	for _, ch := range text {
		evs = append(evs, tcell.NewEventKey(tcell.KeyRune, ch, tcell.ModNone))
	}
	return evs
}

// seq flattens events and event slices into one list.
func seq(parts ...any) []tcell.Event {
	var out []tcell.Event
	for _, p := range parts {
		switch v := p.(type) {
		case tcell.Event:
			out = append(out, v)
		case []tcell.Event:
			out = append(out, v...)
		}
	}
	return out
}

func rowText(s tcell.SimulationScreen, y int) string {
	w, _ := s.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		c, _, _, _ := s.GetContent(x, y)
		sb.WriteRune(c)
	}
	return strings.TrimRight(sb.String(), " ")
}
