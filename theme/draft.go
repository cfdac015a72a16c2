// Package theme holds the theme-building domain: the per-conversation draft,
// palette extraction, name derivation, and the artifact encoders.
package theme

import (
	"errors"
	"fmt"
	"strings"
)

// PaletteSize is the number of candidate colors offered per conversation.
const PaletteSize = 5

// MaxSelections caps the ordered color choices of a draft.
const MaxSelections = 4

var (
	// ErrColorReused rejects a selection matching the most recent one.
	ErrColorReused = errors.New("theme: color matches the previous selection")
	// ErrEmptySelection guards against removing from an empty selection list.
	ErrEmptySelection = errors.New("theme: no selections to remove")
	// ErrDraftFull guards against appending beyond MaxSelections.
	ErrDraftFull = errors.New("theme: selection list is full")
	// ErrNotEnoughColors is returned when encoding is requested too early.
	ErrNotEnoughColors = errors.New("theme: at least three selections are required")
)

// Selection is one labeled color choice. Order within a draft is significant:
// the position decides which part of the theme the color paints.
type Selection struct {
	Color string `json:"color"`
	Label string `json:"label"`
}

// Draft is the mutable in-progress theme state of one conversation,
// keyed externally by the message id it is rendered on.
type Draft struct {
	// Colors is the fixed five-color palette extracted at creation.
	Colors []string `json:"colors"`
	// Using is the ordered list of selections, append/pop only.
	Using []Selection `json:"using"`
	// Photo references the source image (Telegram file id).
	Photo string `json:"photo"`
}

// NewDraft creates a draft over the given palette and source photo.
func NewDraft(colors []string, photo string) (*Draft, error) {
	if len(colors) != PaletteSize {
		return nil, fmt.Errorf("theme: palette must have %d colors, got %d", PaletteSize, len(colors))
	}
	return &Draft{
		Colors: append([]string(nil), colors...),
		Photo:  photo,
	}, nil
}

// Append adds a labeled color. A color equal to the most recent selection is
// rejected so two consecutive swatches never look identical.
func (d *Draft) Append(color, label string) error {
	if len(d.Using) >= MaxSelections {
		return ErrDraftFull
	}
	if n := len(d.Using); n > 0 && strings.EqualFold(d.Using[n-1].Color, color) {
		return ErrColorReused
	}
	d.Using = append(d.Using, Selection{Color: color, Label: label})
	return nil
}

// Pop removes the most recent selection.
func (d *Draft) Pop() error {
	if len(d.Using) == 0 {
		return ErrEmptySelection
	}
	d.Using = d.Using[:len(d.Using)-1]
	return nil
}

// ApplyPreset replaces the selections wholesale with the default layout:
// palette entries 1, 5, 4 and 2, in that order.
func (d *Draft) ApplyPreset() {
	d.Using = []Selection{
		{Label: "1", Color: d.Colors[0]},
		{Label: "5", Color: d.Colors[4]},
		{Label: "4", Color: d.Colors[3]},
		{Label: "2", Color: d.Colors[1]},
	}
}

// Step reports the 1-based number of the next color to choose.
func (d *Draft) Step() int {
	return len(d.Using) + 1
}

// Summary lists the chosen colors, optionally prefixed with their labels.
func (d *Draft) Summary(withLabels bool) []string {
	out := make([]string, 0, len(d.Using))
	for _, s := range d.Using {
		if withLabels {
			out = append(out, fmt.Sprintf("%s. %s", s.Label, s.Color))
			continue
		}
		out = append(out, s.Color)
	}
	return out
}
