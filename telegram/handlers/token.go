package handlers

import (
	"strconv"
	"strings"

	"github.com/m3rciful/themebot/theme"
)

// Token is an inbound button press decoded into its intent. Decoding happens
// once at the transport boundary; everything downstream switches exhaustively
// over the concrete types.
type Token interface {
	isToken()
}

// CancelToken discards the draft. Only the embedded requester may use it.
type CancelToken struct {
	RequesterID int64
}

// DefaultToken accepts the preset color layout.
type DefaultToken struct{}

// BackspaceToken removes the most recent selection.
type BackspaceToken struct{}

// NamedColorToken selects a fixed color outside the extracted palette.
type NamedColorToken struct {
	Color string
	Label string
}

// IndexedColorToken selects a palette entry by position.
type IndexedColorToken struct {
	Index int
}

// FormatToken ends the conversation by naming the artifact format.
type FormatToken struct {
	Kind theme.Format
}

// UnknownToken is anything the decoder could not classify.
type UnknownToken struct {
	Raw string
}

func (CancelToken) isToken()       {}
func (DefaultToken) isToken()      {}
func (BackspaceToken) isToken()    {}
func (NamedColorToken) isToken()   {}
func (IndexedColorToken) isToken() {}
func (FormatToken) isToken()       {}
func (UnknownToken) isToken()      {}

// DecodeToken classifies raw callback data. A malformed cancel id yields a
// CancelToken that matches no real requester, so the authorization check
// denies it downstream.
func DecodeToken(raw string) Token {
	if strings.HasPrefix(raw, "cancel") {
		parts := strings.Split(raw, ",")
		id, err := strconv.ParseInt(parts[len(parts)-1], 10, 64)
		if err != nil {
			id = 0
		}
		return CancelToken{RequesterID: id}
	}

	switch raw {
	case "default":
		return DefaultToken{}
	case "-":
		return BackspaceToken{}
	case "white":
		return NamedColorToken{Color: "#ffffff", Label: "White"}
	case "black":
		return NamedColorToken{Color: "#000000", Label: "Black"}
	}

	if format, ok := theme.ParseFormat(raw); ok {
		return FormatToken{Kind: format}
	}

	if idx, err := strconv.Atoi(raw); err == nil && idx >= 0 && idx < theme.PaletteSize {
		return IndexedColorToken{Index: idx}
	}

	return UnknownToken{Raw: raw}
}
