package theme

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// minPaletteDistance keeps extracted colors perceptually apart (CIE Lab units).
const minPaletteDistance = 12.0

// ExtractPalette decodes the image and returns exactly PaletteSize hex colors
// ordered by how much of the picture they cover. Near-duplicate shades are
// collapsed by Lab distance; if the picture is too uniform the palette is
// padded with lightness variants of the dominant color.
func ExtractPalette(r io.Reader) ([]string, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("theme: decode image: %w", err)
	}
	return PaletteOf(img), nil
}

// PaletteOf samples the image and quantizes it into PaletteSize colors.
func PaletteOf(img image.Image) []string {
	counts := make(map[uint32]int)
	bounds := img.Bounds()

	// Sample on a grid; full-resolution scanning buys nothing for a palette.
	stepX := bounds.Dx() / 64
	stepY := bounds.Dy() / 64
	if stepX < 1 {
		stepX = 1
	}
	if stepY < 1 {
		stepY = 1
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			r, g, b, _ := img.At(x, y).RGBA()
			counts[quantize(r, g, b)]++
		}
	}

	type bucket struct {
		key   uint32
		count int
	}
	buckets := make([]bucket, 0, len(counts))
	for k, n := range counts {
		buckets = append(buckets, bucket{key: k, count: n})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].count != buckets[j].count {
			return buckets[i].count > buckets[j].count
		}
		return buckets[i].key < buckets[j].key
	})

	var picked []colorful.Color
	for _, b := range buckets {
		if len(picked) == PaletteSize {
			break
		}
		c := unquantize(b.key)
		distinct := true
		for _, p := range picked {
			if c.DistanceLab(p)*100 < minPaletteDistance {
				distinct = false
				break
			}
		}
		if distinct {
			picked = append(picked, c)
		}
	}

	// Uniform pictures: pad with shades of the dominant color.
	for len(picked) < PaletteSize {
		base := colorful.Color{R: 0.5, G: 0.5, B: 0.5}
		if len(picked) > 0 {
			base = picked[0]
		}
		t := float64(len(picked)) / float64(PaletteSize)
		picked = append(picked, shade(base, 0.8*t-0.4))
	}

	out := make([]string, PaletteSize)
	for i, c := range picked {
		out[i] = c.Hex()
	}
	return out
}

// quantize folds a 16-bit RGB triple into a 4-bit-per-channel bucket key.
func quantize(r, g, b uint32) uint32 {
	return (r>>12)<<8 | (g>>12)<<4 | (b >> 12)
}

func unquantize(key uint32) colorful.Color {
	r := float64((key>>8)&0xF) / 15.0
	g := float64((key>>4)&0xF) / 15.0
	b := float64(key&0xF) / 15.0
	return colorful.Color{R: r, G: g, B: b}
}

// shade lightens (t > 0) or darkens (t < 0) a color by blending towards
// white or black in Lab space.
func shade(c colorful.Color, t float64) colorful.Color {
	if t >= 0 {
		return c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, t).Clamped()
	}
	return c.BlendLab(colorful.Color{R: 0, G: 0, B: 0}, -t).Clamped()
}
