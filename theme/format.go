package theme

// Format names a target theme encoding. The zero value is invalid.
type Format string

const (
	// FormatAndroid is the Telegram Android .attheme format.
	FormatAndroid Format = "attheme"
	// FormatIOS is the Telegram iOS .tgios-theme format.
	FormatIOS Format = "tgios-theme"
	// FormatX is the Telegram X .tgx-theme format.
	FormatX Format = "tgx-theme"
)

// ParseFormat maps a raw token to a known format.
func ParseFormat(token string) (Format, bool) {
	switch Format(token) {
	case FormatAndroid, FormatIOS, FormatX:
		return Format(token), true
	}
	return "", false
}

// Ext returns the artifact file extension, which equals the format token.
func (f Format) Ext() string {
	return string(f)
}

// SupportsPreview reports whether a preview image can be rendered for the format.
// Only Android themes get one; the other clients use layouts the renderer
// does not model.
func (f Format) SupportsPreview() bool {
	return f == FormatAndroid
}
