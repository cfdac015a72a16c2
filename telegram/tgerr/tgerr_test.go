package tgerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v4"
)

func TestIsQueryTooOld(t *testing.T) {
	apiErr := &tele.Error{
		Code:        400,
		Description: "Bad Request: query is too old and response timeout expired or query ID is invalid",
	}
	assert.True(t, IsQueryTooOld(apiErr))
	assert.True(t, IsQueryTooOld(fmt.Errorf("respond: %w", apiErr)))
	assert.False(t, IsQueryTooOld(errors.New("connection reset")))
	assert.False(t, IsQueryTooOld(nil))
}

func TestIsNotModified(t *testing.T) {
	apiErr := &tele.Error{
		Code:        400,
		Description: "Bad Request: message is not modified: specified new message content and reply markup are exactly the same",
	}
	assert.True(t, IsNotModified(apiErr))
	assert.True(t, IsNotModified(fmt.Errorf("edit caption: %w", apiErr)))
	assert.False(t, IsNotModified(&tele.Error{Code: 400, Description: "Bad Request: message to edit not found"}))
}
