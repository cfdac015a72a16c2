package theme

import (
	"bytes"
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// encodeX writes a Telegram X theme as a property sheet.
func encodeX(name string, r roleColors) []byte {
	var buf bytes.Buffer
	buf.WriteString("!\n")
	fmt.Fprintf(&buf, "name: %s\n", name)

	write := func(key string, c colorful.Color) {
		cr, cg, cb := c.Clamped().RGB255()
		fmt.Fprintf(&buf, "%s: #%02x%02x%02x\n", key, cr, cg, cb)
	}

	write("background", r.bg)
	write("headerBackground", r.accent)
	write("headerText", textOn(r.accent))
	write("bubbleIn_background", r.surface)
	write("bubbleIn_text", r.text)
	write("bubbleOut_background", r.out)
	write("bubbleOut_text", r.outText)
	write("chatBackground", r.bg)
	write("text", textOn(r.bg))
	write("textLink", r.accent)
	write("inputBackground", shade(r.bg, 0.1))

	return buf.Bytes()
}
