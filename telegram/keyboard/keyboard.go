// Package keyboard builds the inline keyboards driving the theme
// conversation. Button data carries the tokens the callback dispatcher
// decodes; labels are what the user sees.
package keyboard

import (
	"fmt"
	"strconv"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/themebot/theme"
)

// Colors returns the color-picking keyboard attached to a draft message.
// The first row addresses the extracted palette by index so the draft can be
// re-colored later even if extraction order changes. The cancel button
// embeds the owner id so only the requester who started the draft can
// discard it.
func Colors(ownerID int64, showBackspace bool) *tele.ReplyMarkup {
	palette := make([]tele.InlineButton, 0, theme.PaletteSize)
	for i := 0; i < theme.PaletteSize; i++ {
		palette = append(palette, tele.InlineButton{
			Text: strconv.Itoa(i + 1),
			Data: strconv.Itoa(i),
		})
	}

	rows := [][]tele.InlineButton{
		palette,
		{
			{Text: "White", Data: "white"},
			{Text: "Black", Data: "black"},
		},
	}

	controls := []tele.InlineButton{
		{Text: "Default", Data: "default"},
	}
	if showBackspace {
		controls = append(controls, tele.InlineButton{Text: "⌫", Data: "-"})
	}
	rows = append(rows, controls, []tele.InlineButton{
		{Text: "Cancel", Data: fmt.Sprintf("cancel,%d", ownerID)},
	})

	return &tele.ReplyMarkup{InlineKeyboard: rows}
}

// Formats returns the terminal keyboard offering the output formats.
func Formats(ownerID int64) *tele.ReplyMarkup {
	return &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{
		{
			{Text: "Android", Data: string(theme.FormatAndroid)},
			{Text: "iOS", Data: string(theme.FormatIOS)},
			{Text: "Telegram X", Data: string(theme.FormatX)},
		},
		{
			{Text: "Cancel", Data: fmt.Sprintf("cancel,%d", ownerID)},
		},
	}}
}
