package texts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSubstitutesParams(t *testing.T) {
	got := Render("choose_color_2", Params{"colors": "1. #112233"})
	assert.Equal(t, "Choose color 2. Currently using: 1. #112233", got)
}

func TestRenderUnknownKeyIsVisible(t *testing.T) {
	assert.Equal(t, "no_such_key", Render("no_such_key", nil))
}

func TestChooseColorSteps(t *testing.T) {
	assert.Contains(t, ChooseColor(3, []string{"1. #112233", "2. #445566"}), "Choose color 3")
	assert.Contains(t, ChooseColor(3, []string{"1. #112233", "2. #445566"}), "#445566")
}
