package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorsKeyboardTokens(t *testing.T) {
	kb := Colors(1234, true)
	require.Len(t, kb.InlineKeyboard, 4)

	palette := kb.InlineKeyboard[0]
	require.Len(t, palette, 5)
	for i, btn := range palette {
		assert.Equal(t, string(rune('0'+i)), btn.Data)
	}

	var data []string
	for _, row := range kb.InlineKeyboard[1:] {
		for _, btn := range row {
			data = append(data, btn.Data)
		}
	}
	assert.Equal(t, []string{"white", "black", "default", "-", "cancel,1234"}, data)
}

func TestColorsKeyboardHidesBackspaceOnEmptyDraft(t *testing.T) {
	kb := Colors(1234, false)
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			assert.NotEqual(t, "-", btn.Data)
		}
	}
}

func TestFormatsKeyboardTokens(t *testing.T) {
	kb := Formats(99)
	require.Len(t, kb.InlineKeyboard, 2)

	var data []string
	for _, btn := range kb.InlineKeyboard[0] {
		data = append(data, btn.Data)
	}
	assert.Equal(t, []string{"attheme", "tgios-theme", "tgx-theme"}, data)
	assert.Equal(t, "cancel,99", kb.InlineKeyboard[1][0].Data)
}
