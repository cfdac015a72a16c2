package theme

import (
	"encoding/json"

	colorful "github.com/lucasb-eyer/go-colorful"
)

type iosTheme struct {
	Name    string            `json:"name"`
	BasedOn string            `json:"basedOn"`
	Colors  map[string]string `json:"colors"`
}

// encodeIOS writes a Telegram iOS theme as a JSON color map.
func encodeIOS(name string, r roleColors) ([]byte, error) {
	basedOn := "day"
	if _, _, l := r.bg.Hsl(); l < 0.5 {
		basedOn = "night"
	}

	hex := func(c colorful.Color) string { return c.Clamped().Hex() }
	t := iosTheme{
		Name:    name,
		BasedOn: basedOn,
		Colors: map[string]string{
			"rootController.navigationBar.background": hex(r.accent),
			"rootController.navigationBar.primary":    hex(textOn(r.accent)),
			"chatList.background":                     hex(r.bg),
			"chatList.title":                          hex(textOn(r.bg)),
			"chat.background":                         hex(r.bg),
			"chat.incomingBubble":                     hex(r.surface),
			"chat.incomingPrimaryText":                hex(r.text),
			"chat.outgoingBubble":                     hex(r.out),
			"chat.outgoingPrimaryText":                hex(r.outText),
			"chat.inputPanel.background":              hex(shade(r.bg, 0.1)),
			"chat.inputPanel.primaryText":             hex(textOn(r.bg)),
			"chat.accent":                             hex(r.accent),
		},
	}
	return json.MarshalIndent(t, "", "    ")
}
