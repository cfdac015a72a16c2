package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPalette = []string{"#112233", "#445566", "#778899", "#aabbcc", "#ddeeff"}

func newTestDraft(t *testing.T) *Draft {
	t.Helper()
	d, err := NewDraft(testPalette, "photo-file-id")
	require.NoError(t, err)
	return d
}

func TestNewDraftRequiresFullPalette(t *testing.T) {
	_, err := NewDraft([]string{"#112233"}, "photo")
	require.Error(t, err)
}

func TestAppendGrowsInOrder(t *testing.T) {
	d := newTestDraft(t)

	require.NoError(t, d.Append(testPalette[0], "1"))
	require.NoError(t, d.Append(testPalette[2], "3"))

	require.Len(t, d.Using, 2)
	assert.Equal(t, Selection{Color: testPalette[0], Label: "1"}, d.Using[0])
	assert.Equal(t, Selection{Color: testPalette[2], Label: "3"}, d.Using[1])
	assert.Equal(t, 3, d.Step())
}

func TestAppendRejectsConsecutiveDuplicate(t *testing.T) {
	d := newTestDraft(t)
	require.NoError(t, d.Append(testPalette[0], "1"))

	for i := 0; i < 3; i++ {
		err := d.Append(testPalette[0], "1")
		require.ErrorIs(t, err, ErrColorReused)
	}
	assert.Len(t, d.Using, 1, "rejected selections must not mutate the draft")

	// the same color is fine again once another selection sits in between
	require.NoError(t, d.Append(testPalette[1], "2"))
	require.NoError(t, d.Append(testPalette[0], "1"))
	assert.Len(t, d.Using, 3)
}

func TestAppendDuplicateIsCaseInsensitive(t *testing.T) {
	d := newTestDraft(t)
	require.NoError(t, d.Append("#AABBCC", "4"))
	require.ErrorIs(t, d.Append("#aabbcc", "4"), ErrColorReused)
}

func TestAppendCapsAtMaxSelections(t *testing.T) {
	d := newTestDraft(t)
	for i := 0; i < MaxSelections; i++ {
		require.NoError(t, d.Append(testPalette[i], "x"))
	}
	require.ErrorIs(t, d.Append(testPalette[4], "5"), ErrDraftFull)
}

func TestPopRemovesLast(t *testing.T) {
	d := newTestDraft(t)
	require.NoError(t, d.Append(testPalette[0], "1"))
	require.NoError(t, d.Append(testPalette[1], "2"))

	require.NoError(t, d.Pop())
	require.Len(t, d.Using, 1)
	assert.Equal(t, testPalette[0], d.Using[0].Color)
}

func TestPopOnEmptyUnderflows(t *testing.T) {
	d := newTestDraft(t)
	require.ErrorIs(t, d.Pop(), ErrEmptySelection)
}

func TestApplyPresetReplacesWholesale(t *testing.T) {
	d := newTestDraft(t)
	require.NoError(t, d.Append(testPalette[2], "3"))

	d.ApplyPreset()

	require.Equal(t, []Selection{
		{Label: "1", Color: testPalette[0]},
		{Label: "5", Color: testPalette[4]},
		{Label: "4", Color: testPalette[3]},
		{Label: "2", Color: testPalette[1]},
	}, d.Using)
}

func TestSummary(t *testing.T) {
	d := newTestDraft(t)
	require.NoError(t, d.Append(testPalette[0], "1"))
	require.NoError(t, d.Append(testPalette[3], "4"))

	assert.Equal(t, []string{"1. #112233", "4. #aabbcc"}, d.Summary(true))
	assert.Equal(t, []string{"#112233", "#aabbcc"}, d.Summary(false))
}
