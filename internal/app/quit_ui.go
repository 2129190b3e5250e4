package app

import "github.com/gdamore/tcell/v2"

// confirm shows a yes/no question in the mini-buffer. It returns true when
// the user answers y.
func (r *Runner) confirm(question string) bool {
	if r.Screen == nil {
		return true
	}
	r.setMiniBuffer([]string{question})
	r.draw()
	defer r.clearMiniBuffer()
	for {
		ev := r.waitEvent()
		if ev == nil {
			return false
		}
		kev, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		if r.isCancelKey(kev) || (kev.Key() == tcell.KeyRune && (kev.Rune() == 'n' || kev.Rune() == 'N')) {
			return false
		}
		if kev.Key() == tcell.KeyRune && (kev.Rune() == 'y' || kev.Rune() == 'Y') {
			return true
		}
	}
}

// showDialog displays a message in the mini-buffer and waits for a key press.
func (r *Runner) showDialog(message string) {
	if r.Screen == nil {
		return
	}
	r.setMiniBuffer([]string{message, "Press any key to continue"})
	r.draw()
	defer func() {
		r.clearMiniBuffer()
		r.draw()
	}()
	for {
		ev := r.waitEvent()
		if ev == nil {
			return
		}
		if _, ok := ev.(*tcell.EventKey); ok {
			return
		}
	}
}
