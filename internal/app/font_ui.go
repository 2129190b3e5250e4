package app

import (
	"slices"
	"strconv"

	"example.com/quill/pkg/config"
)

// runFontPrompt lets the user pick a font family and size. The choice is
// persisted to the settings file straight away.
func (r *Runner) runFontPrompt() {
	cur := r.Session.Settings.Font
	fi, ok := r.runChooser("Font: ", config.FontFamilies, max(slices.Index(config.FontFamilies, cur.Family), 0))
	if !ok {
		return
	}
	sizes := make([]string, len(config.FontSizes))
	for i, n := range config.FontSizes {
		sizes[i] = strconv.Itoa(n)
	}
	si, ok := r.runChooser("Size: ", sizes, max(slices.Index(config.FontSizes, cur.Size), 0))
	if !ok {
		return
	}
	family, size := config.FontFamilies[fi], config.FontSizes[si]
	if err := r.Session.SetFont(family, size); err != nil {
		r.Logger.Error("settings.error", err, map[string]any{"file": r.Session.SettingsPath})
		r.showDialog("Could not save settings: " + err.Error())
		return
	}
	r.Logger.Event("settings.font", map[string]any{"family": family, "size": size})
}
