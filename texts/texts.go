// Package texts is the keyed message catalog for user-facing copy.
package texts

import (
	"fmt"
	"strings"
)

// Params carries substitution values for a template.
type Params map[string]string

// catalog maps message keys to templates with {placeholder} slots.
var catalog = map[string]string{
	"start":          "Send me a photo and I'll turn it into a Telegram theme.",
	"help":           "Send a photo, then pick colors with the buttons. Color 1 becomes the background. Press Default to accept a ready-made layout.",
	"choose_color_1": "Choose color 1. It will be used for the background.",
	"choose_color_2": "Choose color 2. Currently using: {colors}",
	"choose_color_3": "Choose color 3. Currently using: {colors}",
	"choose_color_4": "Choose color 4. Currently using: {colors}",
	"type_of_theme":  "What kind of theme would you like?",
	"cant_reuse_bg":  "You can't use the same color twice in a row.",
	"not_your_theme": "This isn't your theme.",
	"no_theme_found": "There is no theme in progress here. Send a new photo to start over.",
	"dont_click":     "Please don't click that again.",
	"not_a_photo":    "That doesn't look like a photo I can work with.",
}

// Render resolves a message key and substitutes {name} placeholders.
// Unknown keys render as the key itself so a missing entry is visible
// instead of silent.
func Render(key string, params Params) string {
	tmpl, ok := catalog[key]
	if !ok {
		return key
	}
	if len(params) == 0 {
		return tmpl
	}
	out := tmpl
	for name, value := range params {
		out = strings.ReplaceAll(out, "{"+name+"}", value)
	}
	return out
}

// ChooseColor renders the color-selection prompt for the given 1-based step.
func ChooseColor(step int, colors []string) string {
	return Render(fmt.Sprintf("choose_color_%d", step), Params{
		"colors": strings.Join(colors, ", "),
	})
}
