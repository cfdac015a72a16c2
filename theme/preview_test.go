package theme

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPreviewAndroid(t *testing.T) {
	data, err := RenderPreview(FormatAndroid, fourSelections())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, previewWidth, bounds.Dx())
	assert.Equal(t, previewHeight, bounds.Dy())
}

func TestRenderPreviewUnsupportedFormatsAreAbsent(t *testing.T) {
	for _, f := range []Format{FormatIOS, FormatX} {
		data, err := RenderPreview(f, fourSelections())
		require.NoError(t, err, f)
		assert.Nil(t, data, f)
	}
}

func TestRenderPreviewNeedsColors(t *testing.T) {
	_, err := RenderPreview(FormatAndroid, nil)
	require.ErrorIs(t, err, ErrNotEnoughColors)
}
