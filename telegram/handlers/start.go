package handlers

import (
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/themebot/telegram/helpers"
	"github.com/m3rciful/themebot/texts"
)

// Start greets the user and explains how to begin.
func Start() tele.HandlerFunc {
	return func(c tele.Context) error {
		helpers.WithHandler(c, "start")
		return c.Reply(texts.Render("start", nil))
	}
}

// Help describes the conversation steps.
func Help() tele.HandlerFunc {
	return func(c tele.Context) error {
		helpers.WithHandler(c, "help")
		return c.Reply(texts.Render("help", nil))
	}
}

// NotAPhoto answers anything the bot cannot build a theme from.
func NotAPhoto() tele.HandlerFunc {
	return func(c tele.Context) error {
		helpers.WithHandler(c, "fallback")
		return c.Reply(texts.Render("not_a_photo", nil))
	}
}
