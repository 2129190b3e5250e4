package app

// runSaveAsPrompt prompts for a file path and saves the buffer there.
// Existing files are overwritten.
func (r *Runner) runSaveAsPrompt() {
	r.runPrompt("Save As: ", r.Session.FilePath, func(path string) error {
		if path == "" {
			return errPathRequired
		}
		if err := r.Session.SaveAs(path); err != nil {
			r.Logger.Error("save.error", err, map[string]any{"file": path})
			return err
		}
		r.retarget()
		r.Logger.Event("save.success", map[string]any{"file": path})
		return nil
	})
}
