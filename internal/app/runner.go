package app

import (
	"context"
	"path/filepath"
	"time"

	"example.com/quill/pkg/autosave"
	"example.com/quill/pkg/config"
	"example.com/quill/pkg/editor"
	"example.com/quill/pkg/logs"
	"example.com/quill/pkg/watch"
	"github.com/gdamore/tcell/v2"
)

// Runner owns the terminal lifecycle and the event loop for one session.
// All session mutation happens on the goroutine that calls Run.
type Runner struct {
	Screen   tcell.Screen
	Session  *editor.Session
	Cursor   int // cursor position in runes
	TopLine  int
	LeftCol  int
	ShowHelp bool
	Logger   *logs.Logger
	MiniBuf  []string
	MiniErr  string
	Keymap   map[string]config.Keybinding
	Theme    config.Theme

	// AutosaveInterval is the period between background saves. Zero
	// disables autosave.
	AutosaveInterval time.Duration

	// Events, when set, replaces Screen.PollEvent as the event source.
	// A closed channel behaves like a finalized screen.
	Events <-chan tcell.Event

	currentMatch int
	lastQuery    string
	notice       string
	highlightErr string
	autosave     *autosave.Task
	watcher      *watch.Watcher
}

// autosaveEvent is posted by the autosave timer.
type autosaveEvent struct {
	tcell.EventTime
}

// fileChangedEvent is posted when the open file is modified by another
// program.
type fileChangedEvent struct {
	tcell.EventTime
	path string
}

// New creates a Runner for the session using cfg for keys, colors and the
// autosave period.
func New(s *editor.Session, cfg *config.Config) *Runner {
	if cfg == nil {
		cfg = config.Default()
	}
	theme, ok := config.ThemeByName(cfg.Theme)
	if !ok {
		theme = config.DefaultTheme()
	}
	return &Runner{
		Session:          s,
		Keymap:           cfg.Keymap,
		Theme:            theme,
		AutosaveInterval: cfg.AutosaveInterval,
		currentMatch:     -1,
	}
}

func (r *Runner) setMiniBuffer(lines []string) {
	r.MiniBuf = lines
}

func (r *Runner) clearMiniBuffer() {
	r.MiniBuf = nil
	r.MiniErr = ""
}

// InitScreen initializes a tcell screen if one is not already set.
func (r *Runner) InitScreen() error {
	if r.Screen != nil {
		return nil
	}
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.SetStyle(tcell.StyleDefault)
	s.Clear()
	r.Screen = s
	return nil
}

// Fini finalizes the screen if initialized.
func (r *Runner) Fini() {
	if r.Screen != nil {
		r.Screen.Fini()
		r.Screen = nil
	}
}

// Run starts the event loop. It will initialize the screen if needed and
// return when the user quits.
func (r *Runner) Run() error {
	if r.Screen == nil {
		if err := r.InitScreen(); err != nil {
			return err
		}
		defer r.Fini()
	}
	r.startBackground()
	defer r.stopBackground()

	r.Logger.Event("run.start", map[string]any{"file": r.Session.FilePath})
	defer r.Logger.Event("run.end", map[string]any{"file": r.Session.FilePath})

	r.rehighlight()
	r.draw()
	r.flushNotice()
	for {
		ev := r.waitEvent()
		if ev == nil {
			return nil
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if r.ShowHelp {
				r.ShowHelp = false
				r.draw()
				continue
			}
			if r.handleKeyEvent(ev) {
				r.Logger.Event("action", map[string]any{"name": "quit"})
				return nil
			}
		case *tcell.EventResize:
			r.Screen.Sync()
			r.draw()
		}
		r.flushNotice()
	}
}

// waitEvent returns the next event for the foreground. Background events
// are handled here, so prompts keep autosaving while they wait for input.
// It returns nil once the event source is closed.
func (r *Runner) waitEvent() tcell.Event {
	for {
		var ev tcell.Event
		if r.Events != nil {
			var ok bool
			if ev, ok = <-r.Events; !ok {
				return nil
			}
		} else {
			ev = r.Screen.PollEvent()
		}
		if ev == nil {
			return nil
		}
		switch ev := ev.(type) {
		case *autosaveEvent:
			r.runAutosave()
		case *fileChangedEvent:
			r.fileChanged(ev.path)
		default:
			return ev
		}
	}
}

func (r *Runner) isCancelKey(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEsc || ev.Key() == tcell.KeyCtrlG
}

// startBackground starts the autosave timer and the file watcher. Both only
// post events to the screen.
func (r *Runner) startBackground() {
	screen := r.Screen
	r.autosave = autosave.Start(context.Background(), r.AutosaveInterval, func() {
		ev := &autosaveEvent{}
		ev.SetEventNow()
		_ = screen.PostEvent(ev)
	})
	w, err := watch.New(func(path string) {
		ev := &fileChangedEvent{path: path}
		ev.SetEventNow()
		_ = screen.PostEvent(ev)
	}, func(err error) {
		r.Logger.Error("watch.error", err, nil)
	})
	if err != nil {
		r.Logger.Error("watch.error", err, nil)
		return
	}
	r.watcher = w
	r.retarget()
}

func (r *Runner) stopBackground() {
	r.autosave.Stop()
	r.autosave = nil
	if r.watcher != nil {
		_ = r.watcher.Close()
		r.watcher = nil
	}
}

// retarget points the file watcher at the session's current path.
func (r *Runner) retarget() {
	if r.watcher == nil {
		return
	}
	if err := r.watcher.Watch(r.Session.FilePath); err != nil {
		r.Logger.Error("watch.error", err, map[string]any{"file": r.Session.FilePath})
	}
}

// runAutosave writes the document on the autosave schedule. Failures are
// logged and otherwise ignored.
func (r *Runner) runAutosave() {
	wrote, err := r.Session.Autosave()
	if err != nil {
		r.Logger.Error("autosave.error", err, map[string]any{"file": r.Session.FilePath})
		return
	}
	if wrote {
		r.Logger.Event("autosave.success", map[string]any{"file": r.Session.FilePath})
		r.draw()
	}
}

func (r *Runner) fileChanged(path string) {
	if r.Session.FilePath == "" {
		return
	}
	abs, err := filepath.Abs(r.Session.FilePath)
	if err != nil || abs != path {
		return
	}
	if !r.Session.ChangedOnDisk() {
		return
	}
	r.Logger.Event("file.changed", map[string]any{"file": path})
	r.notice = filepath.Base(path) + " was changed by another program"
}

// flushNotice shows a pending notice once the foreground is idle.
func (r *Runner) flushNotice() {
	if r.notice == "" {
		return
	}
	msg := r.notice
	r.notice = ""
	r.showDialog(msg)
}
