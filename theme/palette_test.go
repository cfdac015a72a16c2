package theme

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stripedImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	stripes := []color.RGBA{
		{R: 0xff, A: 0xff},
		{G: 0xff, A: 0xff},
		{B: 0xff, A: 0xff},
		{R: 0xff, G: 0xff, A: 0xff},
		{R: 0xff, B: 0xff, A: 0xff},
	}
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, stripes[x/20])
		}
	}
	return img
}

func TestPaletteOfDistinctImage(t *testing.T) {
	got := PaletteOf(stripedImage())
	require.Len(t, got, PaletteSize)

	seen := map[string]struct{}{}
	for _, hex := range got {
		assert.Regexp(t, `^#[0-9a-f]{6}$`, hex)
		seen[hex] = struct{}{}
	}
	assert.Len(t, seen, PaletteSize, "palette colors must be distinct")
}

func TestPaletteOfUniformImagePads(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff})
		}
	}
	got := PaletteOf(img)
	require.Len(t, got, PaletteSize)
}

func TestExtractPaletteDecodes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, stripedImage()))

	got, err := ExtractPalette(&buf)
	require.NoError(t, err)
	assert.Len(t, got, PaletteSize)
}

func TestExtractPaletteRejectsGarbage(t *testing.T) {
	_, err := ExtractPalette(bytes.NewReader([]byte("not an image")))
	require.Error(t, err)
}
