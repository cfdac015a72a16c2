package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m3rciful/themebot/theme"
)

func TestDecodeToken(t *testing.T) {
	cases := []struct {
		raw  string
		want Token
	}{
		{"cancel,42", CancelToken{RequesterID: 42}},
		{"cancel,nonsense", CancelToken{RequesterID: 0}},
		{"default", DefaultToken{}},
		{"-", BackspaceToken{}},
		{"white", NamedColorToken{Color: "#ffffff", Label: "White"}},
		{"black", NamedColorToken{Color: "#000000", Label: "Black"}},
		{"0", IndexedColorToken{Index: 0}},
		{"4", IndexedColorToken{Index: 4}},
		{"attheme", FormatToken{Kind: theme.FormatAndroid}},
		{"tgios-theme", FormatToken{Kind: theme.FormatIOS}},
		{"tgx-theme", FormatToken{Kind: theme.FormatX}},
		{"5", UnknownToken{Raw: "5"}},
		{"-1", UnknownToken{Raw: "-1"}},
		{"garbage", UnknownToken{Raw: "garbage"}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DecodeToken(tc.raw), "token %q", tc.raw)
	}
}
