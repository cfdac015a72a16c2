package theme

import (
	"bytes"
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// wallpaper payload delimiters of the .attheme container.
const (
	wallpaperStart = "WPS\n"
	wallpaperEnd   = "\nWPE\n"
)

// encodeAndroid writes a Telegram Android theme: key=#AARRGGBB lines followed
// by the wallpaper embedded between WPS/WPE markers.
func encodeAndroid(r roleColors, wallpaper []byte) []byte {
	var buf bytes.Buffer

	write := func(key string, c colorful.Color, alpha uint8) {
		cr, cg, cb := c.Clamped().RGB255()
		fmt.Fprintf(&buf, "%s=#%02x%02x%02x%02x\n", key, alpha, cr, cg, cb)
	}

	barText := textOn(r.accent)
	bgText := textOn(r.bg)

	write("actionBarDefault", r.accent, 0xff)
	write("actionBarDefaultIcon", barText, 0xff)
	write("actionBarDefaultTitle", barText, 0xff)
	write("actionBarDefaultSubtitle", shade(barText, -0.2), 0xff)
	write("avatar_backgroundActionBarBlue", r.accent, 0xff)
	write("chats_actionBackground", r.accent, 0xff)
	write("chats_actionIcon", barText, 0xff)
	write("chat_inBubble", r.surface, 0xff)
	write("chat_inBubbleShadow", shade(r.surface, -0.3), 0xff)
	write("chat_messageTextIn", r.text, 0xff)
	write("chat_inTimeText", shade(r.text, 0.25), 0xff)
	write("chat_outBubble", r.out, 0xff)
	write("chat_outBubbleShadow", shade(r.out, -0.3), 0xff)
	write("chat_messageTextOut", r.outText, 0xff)
	write("chat_outTimeText", shade(r.outText, 0.25), 0xff)
	write("chat_messagePanelBackground", shade(r.bg, 0.1), 0xff)
	write("chat_messagePanelText", bgText, 0xff)
	write("chat_messagePanelHint", shade(r.bg, 0.4), 0xff)
	write("chat_serviceBackground", r.bg, 0x99)
	write("chat_serviceText", textOn(r.bg), 0xff)
	write("windowBackgroundWhite", r.bg, 0xff)
	write("windowBackgroundWhiteBlackText", bgText, 0xff)
	write("windowBackgroundWhiteBlueText", r.accent, 0xff)
	write("divider", shade(r.bg, -0.15), 0xff)
	write("listSelectorSDK21", shade(r.bg, -0.1), 0x33)

	if len(wallpaper) > 0 {
		buf.WriteString(wallpaperStart)
		buf.Write(wallpaper)
		buf.WriteString(wallpaperEnd)
	}
	return buf.Bytes()
}
