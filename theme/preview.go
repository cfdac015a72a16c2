package theme

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	previewWidth  = 480
	previewHeight = 854
)

// RenderPreview paints a mock chat screenshot for the theme. Formats without
// preview support return (nil, nil); absence is a valid outcome, not an error.
func RenderPreview(format Format, sel []Selection) ([]byte, error) {
	if !format.SupportsPreview() {
		return nil, nil
	}
	roles, err := rolesOf(sel)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, previewWidth, previewHeight))

	fill(img, img.Bounds(), roles.bg)

	// header bar
	fill(img, image.Rect(0, 0, previewWidth, 84), roles.accent)
	fill(img, image.Rect(24, 34, 200, 50), textOn(roles.accent))

	// incoming bubbles with placeholder text lines
	bubble(img, image.Rect(16, 140, 300, 220), roles.surface, roles.text)
	bubble(img, image.Rect(16, 240, 260, 300), roles.surface, roles.text)

	// outgoing bubbles
	bubble(img, image.Rect(170, 330, previewWidth-16, 420), roles.out, roles.outText)
	bubble(img, image.Rect(220, 440, previewWidth-16, 500), roles.out, roles.outText)

	// input panel
	fill(img, image.Rect(0, previewHeight-72, previewWidth, previewHeight), shade(roles.bg, 0.1))
	fill(img, image.Rect(20, previewHeight-52, 280, previewHeight-36), shade(roles.bg, 0.4))

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func bubble(img *image.RGBA, r image.Rectangle, bg, fg colorful.Color) {
	fill(img, r, bg)
	// two text lines inset into the bubble
	inset := r.Inset(14)
	line1 := image.Rect(inset.Min.X, inset.Min.Y, inset.Max.X, inset.Min.Y+10)
	fill(img, line1, fg)
	if r.Dy() > 60 {
		line2 := image.Rect(inset.Min.X, inset.Min.Y+22, inset.Max.X-40, inset.Min.Y+32)
		fill(img, line2, fg)
	}
}

func fill(img *image.RGBA, r image.Rectangle, c colorful.Color) {
	cr, cg, cb := c.Clamped().RGB255()
	draw.Draw(img, r, &image.Uniform{C: color.RGBA{R: cr, G: cg, B: cb, A: 0xff}}, image.Point{}, draw.Src)
}
