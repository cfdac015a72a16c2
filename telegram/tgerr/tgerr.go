// Package tgerr classifies Telegram Bot API errors that the conversation
// flow must react to differently from ordinary transport failures.
package tgerr

import (
	"errors"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// IsQueryTooOld reports whether err means the callback query expired before
// the bot answered it. The API rejects answerCallbackQuery for queries older
// than its freshness window; nothing useful can be done with such a query.
func IsQueryTooOld(err error) bool {
	return hasDescription(err, "query is too old")
}

// IsNotModified reports whether err means an edit produced content identical
// to what the message already shows.
func IsNotModified(err error) bool {
	return hasDescription(err, "message is not modified")
}

func hasDescription(err error, fragment string) bool {
	if err == nil {
		return false
	}
	var apiErr *tele.Error
	if errors.As(err, &apiErr) {
		return strings.Contains(strings.ToLower(apiErr.Description), fragment)
	}
	return strings.Contains(strings.ToLower(err.Error()), fragment)
}
