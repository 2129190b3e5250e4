package app

import "github.com/gdamore/tcell/v2"

// runPrompt reads a line of input in the mini-buffer. On Enter accept is
// called with the input; a non-nil error is shown beside the prompt and
// editing continues. It returns false when the prompt was cancelled.
func (r *Runner) runPrompt(label, initial string, accept func(string) error) bool {
	input := []rune(initial)
	defer func() {
		r.clearMiniBuffer()
		r.draw()
	}()
	for {
		r.setMiniBuffer([]string{label + string(input)})
		r.draw()
		ev := r.waitEvent()
		if ev == nil {
			return false
		}
		kev, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		switch {
		case r.isCancelKey(kev):
			return false
		case kev.Key() == tcell.KeyEnter:
			if err := accept(string(input)); err != nil {
				r.MiniErr = err.Error()
				continue
			}
			return true
		case kev.Key() == tcell.KeyBackspace || kev.Key() == tcell.KeyBackspace2:
			if len(input) > 0 {
				input = input[:len(input)-1]
			}
			r.MiniErr = ""
		case kev.Key() == tcell.KeyRune && kev.Modifiers()&^tcell.ModShift == 0:
			input = append(input, kev.Rune())
			r.MiniErr = ""
		}
	}
}
