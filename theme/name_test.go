package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveNameDeterministic(t *testing.T) {
	a := DeriveName("#1c2733", "#5288c1")
	b := DeriveName("#1c2733", "#5288c1")
	assert.Equal(t, a, b)
	assert.NotEmpty(t, a)
}

func TestDeriveNameUsesBothColors(t *testing.T) {
	assert.NotEqual(t,
		DeriveName("#000000", "#ff0000"),
		DeriveName("#ffffff", "#ff0000"),
		"lightness of the first color drives the adjective",
	)
	assert.NotEqual(t,
		DeriveName("#808080", "#ff0000"),
		DeriveName("#808080", "#0000ff"),
		"hue of the second color drives the noun",
	)
}

func TestDeriveNameMonochrome(t *testing.T) {
	assert.Equal(t, "Midnight Graphite", DeriveName("#000000", "#111111"))
	assert.Equal(t, "Pale Ivory", DeriveName("#ffffff", "#fefefe"))
}

func TestDeriveNameUnparsableFallsBack(t *testing.T) {
	assert.Equal(t, "Plain Canvas", DeriveName("nope", "also-nope"))
}
