package theme

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// roleColors assigns the ordered selections to the surfaces they paint.
// The first selection is always the chat background (hence the reuse guard
// on consecutive picks), the rest style bars and bubbles.
type roleColors struct {
	bg      colorful.Color
	accent  colorful.Color
	surface colorful.Color
	out     colorful.Color
	text    colorful.Color
	outText colorful.Color
}

func rolesOf(sel []Selection) (roleColors, error) {
	if len(sel) < 3 {
		return roleColors{}, ErrNotEnoughColors
	}
	bg, err := colorful.Hex(normalizeHex(sel[0].Color))
	if err != nil {
		return roleColors{}, fmt.Errorf("theme: background color: %w", err)
	}
	accent, err := colorful.Hex(normalizeHex(sel[1].Color))
	if err != nil {
		return roleColors{}, fmt.Errorf("theme: accent color: %w", err)
	}
	surface, err := colorful.Hex(normalizeHex(sel[2].Color))
	if err != nil {
		return roleColors{}, fmt.Errorf("theme: surface color: %w", err)
	}
	out := shade(accent, -0.25)
	if len(sel) > 3 {
		out, err = colorful.Hex(normalizeHex(sel[3].Color))
		if err != nil {
			return roleColors{}, fmt.Errorf("theme: bubble color: %w", err)
		}
	}
	return roleColors{
		bg:      bg,
		accent:  accent,
		surface: surface,
		out:     out,
		text:    textOn(surface),
		outText: textOn(out),
	}, nil
}

// textOn picks a readable foreground for the given background.
func textOn(c colorful.Color) colorful.Color {
	_, _, l := c.Hsl()
	if l < 0.55 {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return colorful.Color{R: 0, G: 0, B: 0}
}

// Encode produces the artifact bytes for the chosen format. The wallpaper is
// the original source photo; only formats that embed wallpapers use it.
func Encode(format Format, name string, wallpaper []byte, sel []Selection) ([]byte, error) {
	roles, err := rolesOf(sel)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatAndroid:
		return encodeAndroid(roles, wallpaper), nil
	case FormatIOS:
		return encodeIOS(name, roles)
	case FormatX:
		return encodeX(name, roles), nil
	default:
		return nil, fmt.Errorf("theme: unknown format %q", format)
	}
}

// FileName renders the artifact attachment name the way the bot signs it.
func FileName(name, botUsername string, format Format) string {
	return fmt.Sprintf("%s by @%s.%s", name, botUsername, format.Ext())
}
