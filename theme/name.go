package theme

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var hueNouns = []string{
	"Crimson", // 0
	"Amber",
	"Gold",
	"Lime",
	"Emerald",
	"Jade",
	"Cyan",
	"Azure",
	"Sapphire",
	"Indigo",
	"Orchid",
	"Rose",
}

var lightnessAdjectives = []string{
	"Midnight",
	"Dusky",
	"Deep",
	"Mellow",
	"Bright",
	"Pale",
}

// DeriveName builds a deterministic human-readable theme name from two colors:
// an adjective from the lightness of the first and a noun from the hue of the
// second. Unparsable colors fall back to neutral words so the name is always
// non-empty.
func DeriveName(colorA, colorB string) string {
	return adjectiveFor(colorA) + " " + nounFor(colorB)
}

func adjectiveFor(hex string) string {
	c, err := colorful.Hex(normalizeHex(hex))
	if err != nil {
		return "Plain"
	}
	_, _, l := c.Hsl()
	idx := int(l * float64(len(lightnessAdjectives)))
	if idx >= len(lightnessAdjectives) {
		idx = len(lightnessAdjectives) - 1
	}
	return lightnessAdjectives[idx]
}

func nounFor(hex string) string {
	c, err := colorful.Hex(normalizeHex(hex))
	if err != nil {
		return "Canvas"
	}
	h, s, l := c.Hsl()
	if s < 0.08 || l < 0.04 || l > 0.97 {
		// effectively monochrome
		switch {
		case l < 0.25:
			return "Graphite"
		case l < 0.7:
			return "Slate"
		default:
			return "Ivory"
		}
	}
	idx := int(h/30.0) % len(hueNouns)
	return hueNouns[idx]
}

func normalizeHex(hex string) string {
	hex = strings.TrimSpace(strings.ToLower(hex))
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	return hex
}
