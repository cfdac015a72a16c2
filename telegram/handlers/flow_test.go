package handlers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/themebot/render"
	"github.com/m3rciful/themebot/store"
	"github.com/m3rciful/themebot/theme"
)

var testPalette = []string{"#1c2733", "#5288c1", "#242f3d", "#2b5278", "#ffffff"}

var (
	errStale = &tele.Error{
		Code:        400,
		Description: "Bad Request: query is too old and response timeout expired or query ID is invalid",
	}
	errNotModified = &tele.Error{
		Code:        400,
		Description: "Bad Request: message is not modified: specified new message content and reply markup are exactly the same",
	}
)

type captionEdit struct {
	text   string
	markup *tele.ReplyMarkup
}

type ackCall struct {
	text  string
	alert bool
}

type fakeRenderer struct {
	captions []captionEdit
	media    []Artifact
	photos   []string
	acks     []ackCall
	deleted  bool

	editErr   error
	ackErr    error
	sourceErr error
}

func (r *fakeRenderer) EditCaption(_ context.Context, text string, markup *tele.ReplyMarkup) error {
	if r.editErr != nil {
		return r.editErr
	}
	r.captions = append(r.captions, captionEdit{text: text, markup: markup})
	return nil
}

func (r *fakeRenderer) EditMedia(_ context.Context, a Artifact) error {
	r.media = append(r.media, a)
	return nil
}

func (r *fakeRenderer) Delete(context.Context) error {
	r.deleted = true
	return nil
}

func (r *fakeRenderer) ReplyPhoto(_ context.Context, _ []byte, caption string) error {
	r.photos = append(r.photos, caption)
	return nil
}

func (r *fakeRenderer) Acknowledge(_ context.Context, text string, alert bool) error {
	if r.ackErr != nil {
		return r.ackErr
	}
	r.acks = append(r.acks, ackCall{text: text, alert: alert})
	return nil
}

func (r *fakeRenderer) SourcePhoto(context.Context, string) ([]byte, error) {
	if r.sourceErr != nil {
		return nil, r.sourceErr
	}
	return []byte("raw-photo-bytes"), nil
}

func (r *fakeRenderer) lastCaption(t *testing.T) captionEdit {
	t.Helper()
	require.NotEmpty(t, r.captions)
	return r.captions[len(r.captions)-1]
}

type flowFixture struct {
	flow  *Flow
	store store.Store
	pool  *render.Pool
}

func newFixture(t *testing.T, donateURL string) *flowFixture {
	t.Helper()
	pool := render.NewPool(render.Options{Workers: 1, QueueSize: 8})
	t.Cleanup(pool.Close)
	st := store.NewMemory()
	return &flowFixture{
		flow:  NewFlow(st, pool, "testbot", donateURL),
		store: st,
		pool:  pool,
	}
}

func (f *flowFixture) seed(t *testing.T, messageID int, selections ...theme.Selection) *theme.Draft {
	t.Helper()
	d, err := theme.NewDraft(testPalette, "photo-file-id")
	require.NoError(t, err)
	d.Using = selections
	require.NoError(t, f.store.Save(context.Background(), messageID, d))
	return d
}

func (f *flowFixture) dispatch(t *testing.T, r Renderer, messageID int, requesterID int64, raw string) error {
	t.Helper()
	return f.flow.Dispatch(context.Background(), Event{
		Token:       DecodeToken(raw),
		MessageID:   messageID,
		RequesterID: requesterID,
	}, r)
}

func (f *flowFixture) load(t *testing.T, messageID int) *theme.Draft {
	t.Helper()
	d, err := f.store.Load(context.Background(), messageID)
	require.NoError(t, err)
	return d
}

func TestSelectColorAppendsAndAdvances(t *testing.T) {
	f := newFixture(t, "")
	f.seed(t, 10)
	r := &fakeRenderer{}

	require.NoError(t, f.dispatch(t, r, 10, 7, "0"))

	d := f.load(t, 10)
	require.Len(t, d.Using, 1)
	assert.Equal(t, theme.Selection{Color: testPalette[0], Label: "1"}, d.Using[0])

	edit := r.lastCaption(t)
	assert.Contains(t, edit.text, "Choose color 2")
	assert.Contains(t, edit.text, testPalette[0])
	require.NotNil(t, edit.markup)
	assert.Equal(t, []ackCall{{text: "", alert: false}}, r.acks)
}

func TestDuplicateSelectionNeverMutates(t *testing.T) {
	f := newFixture(t, "")
	f.seed(t, 10, theme.Selection{Color: testPalette[0], Label: "1"})
	r := &fakeRenderer{}

	for i := 0; i < 3; i++ {
		require.NoError(t, f.dispatch(t, r, 10, 7, "0"))
	}

	d := f.load(t, 10)
	require.Len(t, d.Using, 1)
	assert.Empty(t, r.captions, "a rejected pick must not re-render")
	// each attempt sends the refusal plus the trailing plain answer
	require.Len(t, r.acks, 6)
	assert.Contains(t, r.acks[0].text, "twice in a row")
}

func TestIndexedSelectionScenario(t *testing.T) {
	f := newFixture(t, "")
	f.seed(t, 10)
	r := &fakeRenderer{}

	require.NoError(t, f.dispatch(t, r, 10, 7, "0"))
	require.NoError(t, f.dispatch(t, r, 10, 7, "0")) // rejected
	require.NoError(t, f.dispatch(t, r, 10, 7, "2"))

	d := f.load(t, 10)
	require.Len(t, d.Using, 2)
	assert.Equal(t, theme.Selection{Color: testPalette[0], Label: "1"}, d.Using[0])
	assert.Equal(t, theme.Selection{Color: testPalette[2], Label: "3"}, d.Using[1])
	assert.Contains(t, r.lastCaption(t).text, "Choose color 3")
}

func TestNamedColorSelection(t *testing.T) {
	f := newFixture(t, "")
	f.seed(t, 10)
	r := &fakeRenderer{}

	require.NoError(t, f.dispatch(t, r, 10, 7, "white"))
	require.NoError(t, f.dispatch(t, r, 10, 7, "black"))

	d := f.load(t, 10)
	require.Len(t, d.Using, 2)
	assert.Equal(t, theme.Selection{Color: "#ffffff", Label: "White"}, d.Using[0])
	assert.Equal(t, theme.Selection{Color: "#000000", Label: "Black"}, d.Using[1])
}

func TestThirdSelectionShowsFormatPrompt(t *testing.T) {
	f := newFixture(t, "")
	f.seed(t, 10,
		theme.Selection{Color: testPalette[0], Label: "1"},
		theme.Selection{Color: testPalette[1], Label: "2"},
	)
	r := &fakeRenderer{}

	require.NoError(t, f.dispatch(t, r, 10, 7, "2"))

	edit := r.lastCaption(t)
	assert.Contains(t, edit.text, "What kind of theme")
	require.NotNil(t, edit.markup)
	assert.Equal(t, "attheme", edit.markup.InlineKeyboard[0][0].Data)
}

func TestUnmodifiedFormatPromptAsksNotToClick(t *testing.T) {
	f := newFixture(t, "")
	f.seed(t, 10,
		theme.Selection{Color: testPalette[0], Label: "1"},
		theme.Selection{Color: testPalette[1], Label: "2"},
		theme.Selection{Color: testPalette[2], Label: "3"},
	)
	r := &fakeRenderer{editErr: errNotModified}

	require.NoError(t, f.dispatch(t, r, 10, 7, "white"))

	d := f.load(t, 10)
	assert.Len(t, d.Using, 4, "the selection itself still lands")
	require.NotEmpty(t, r.acks)
	assert.True(t, r.acks[0].alert)
	assert.Contains(t, r.acks[0].text, "don't click")
}

func TestBackspaceRemovesLastSelection(t *testing.T) {
	f := newFixture(t, "")
	f.seed(t, 10,
		theme.Selection{Color: testPalette[0], Label: "1"},
		theme.Selection{Color: testPalette[1], Label: "2"},
	)
	r := &fakeRenderer{}

	require.NoError(t, f.dispatch(t, r, 10, 7, "-"))

	d := f.load(t, 10)
	require.Len(t, d.Using, 1)
	edit := r.lastCaption(t)
	assert.Contains(t, edit.text, "Choose color 2")
}

func TestBackspaceKeyboardHidesItselfWhenEmpty(t *testing.T) {
	f := newFixture(t, "")
	f.seed(t, 10, theme.Selection{Color: testPalette[0], Label: "1"})
	r := &fakeRenderer{}

	require.NoError(t, f.dispatch(t, r, 10, 7, "-"))

	edit := r.lastCaption(t)
	for _, row := range edit.markup.InlineKeyboard {
		for _, btn := range row {
			assert.NotEqual(t, "-", btn.Data)
		}
	}
}

func TestBackspaceUnderflowIsAFault(t *testing.T) {
	f := newFixture(t, "")
	f.seed(t, 10)
	r := &fakeRenderer{}

	err := f.dispatch(t, r, 10, 7, "-")
	assert.ErrorIs(t, err, theme.ErrEmptySelection)
	assert.Empty(t, r.captions)
}

func TestPresetReplacesSelectionsWholesale(t *testing.T) {
	f := newFixture(t, "")
	f.seed(t, 10, theme.Selection{Color: "#123456", Label: "1"})
	r := &fakeRenderer{}

	require.NoError(t, f.dispatch(t, r, 10, 7, "default"))

	d := f.load(t, 10)
	require.Len(t, d.Using, 4)
	assert.Equal(t, []theme.Selection{
		{Label: "1", Color: testPalette[0]},
		{Label: "5", Color: testPalette[4]},
		{Label: "4", Color: testPalette[3]},
		{Label: "2", Color: testPalette[1]},
	}, d.Using)
	assert.Contains(t, r.lastCaption(t).text, "What kind of theme")
}

func TestPresetRenderFailureLeavesDraftUntouched(t *testing.T) {
	f := newFixture(t, "")
	f.seed(t, 10, theme.Selection{Color: "#123456", Label: "1"})
	r := &fakeRenderer{editErr: errors.New("edit exploded")}

	err := f.dispatch(t, r, 10, 7, "default")
	require.Error(t, err)

	d := f.load(t, 10)
	require.Len(t, d.Using, 1)
	assert.Equal(t, "#123456", d.Using[0].Color)
}

func TestCancelByOwnerDeletesEverything(t *testing.T) {
	f := newFixture(t, "")
	f.seed(t, 10)
	r := &fakeRenderer{}

	require.NoError(t, f.dispatch(t, r, 10, 42, "cancel,42"))

	assert.True(t, r.deleted)
	assert.Nil(t, f.load(t, 10))
	assert.Empty(t, r.acks, "cancellation has no trailing answer")
}

func TestCancelByStrangerIsDenied(t *testing.T) {
	f := newFixture(t, "")
	f.seed(t, 10, theme.Selection{Color: testPalette[0], Label: "1"})
	r := &fakeRenderer{}

	require.NoError(t, f.dispatch(t, r, 10, 99, "cancel,42"))

	assert.False(t, r.deleted)
	require.NotNil(t, f.load(t, 10))
	require.Len(t, r.acks, 1)
	assert.Contains(t, r.acks[0].text, "isn't your theme")
}

func TestCancelIsIdempotent(t *testing.T) {
	f := newFixture(t, "")
	r := &fakeRenderer{}

	require.NoError(t, f.dispatch(t, r, 77, 42, "cancel,42"))
	assert.True(t, r.deleted)
}

func TestMissingDraftAnswersWithAlert(t *testing.T) {
	f := newFixture(t, "")
	r := &fakeRenderer{}

	require.NoError(t, f.dispatch(t, r, 555, 7, "0"))

	require.Len(t, r.acks, 1)
	assert.True(t, r.acks[0].alert)
	assert.Contains(t, r.acks[0].text, "no theme in progress")
}

func TestCompleteThemeDeliversArtifactAndPreview(t *testing.T) {
	f := newFixture(t, "")
	f.seed(t, 10,
		theme.Selection{Color: testPalette[0], Label: "1"},
		theme.Selection{Color: testPalette[1], Label: "2"},
		theme.Selection{Color: testPalette[2], Label: "3"},
		theme.Selection{Color: testPalette[3], Label: "4"},
	)
	r := &fakeRenderer{}

	require.NoError(t, f.dispatch(t, r, 10, 7, "attheme"))

	require.Len(t, r.media, 1)
	artifact := r.media[0]
	assert.True(t, strings.HasSuffix(artifact.FileName, "by @testbot.attheme"), artifact.FileName)
	assert.NotEmpty(t, artifact.Data)
	assert.Contains(t, artifact.Caption, "Made by @testbot")
	assert.Contains(t, artifact.Caption, "#theme "+strings.Join(testPalette[:4], " "))
	assert.NotContains(t, artifact.Caption, "donate")

	require.Len(t, r.photos, 1, "android themes come with a preview")
	assert.Contains(t, r.photos[0], "Preview by @testbot.attheme")

	assert.Nil(t, f.load(t, 10), "completion clears the draft")
}

func TestCompleteThemeWithoutPreviewFormats(t *testing.T) {
	f := newFixture(t, "")
	f.seed(t, 10,
		theme.Selection{Color: testPalette[0], Label: "1"},
		theme.Selection{Color: testPalette[1], Label: "2"},
		theme.Selection{Color: testPalette[2], Label: "3"},
	)
	r := &fakeRenderer{}

	require.NoError(t, f.dispatch(t, r, 10, 7, "tgios-theme"))

	require.Len(t, r.media, 1)
	assert.Empty(t, r.photos, "no preview exists for iOS themes")
	assert.Nil(t, f.load(t, 10))
}

func TestCompleteThemeDonationLine(t *testing.T) {
	f := newFixture(t, "https://t.me/testbot?start=donate")
	f.seed(t, 10,
		theme.Selection{Color: testPalette[0], Label: "1"},
		theme.Selection{Color: testPalette[1], Label: "2"},
		theme.Selection{Color: testPalette[2], Label: "3"},
	)
	r := &fakeRenderer{}

	require.NoError(t, f.dispatch(t, r, 10, 7, "tgx-theme"))

	require.Len(t, r.media, 1)
	assert.Contains(t, r.media[0].Caption, `<a href="https://t.me/testbot?start=donate">donate</a>`)
	assert.True(t, r.media[0].HTML)
}

func TestCompleteThemeSourcePhotoFailureKeepsDraft(t *testing.T) {
	f := newFixture(t, "")
	f.seed(t, 10,
		theme.Selection{Color: testPalette[0], Label: "1"},
		theme.Selection{Color: testPalette[1], Label: "2"},
		theme.Selection{Color: testPalette[2], Label: "3"},
	)
	r := &fakeRenderer{sourceErr: errors.New("file gone")}

	err := f.dispatch(t, r, 10, 7, "attheme")
	require.Error(t, err)
	assert.NotNil(t, f.load(t, 10), "a failed delivery leaves the draft for retry")
}

func TestStaleAcknowledgementIsSuppressed(t *testing.T) {
	f := newFixture(t, "")
	f.seed(t, 10)
	r := &fakeRenderer{ackErr: errStale}

	assert.NoError(t, f.dispatch(t, r, 10, 7, "0"))
}

func TestRealAcknowledgementFailurePropagates(t *testing.T) {
	f := newFixture(t, "")
	f.seed(t, 10)
	r := &fakeRenderer{ackErr: errors.New("socket closed")}

	assert.Error(t, f.dispatch(t, r, 10, 7, "0"))
}

func TestUnknownTokenOnlyAnswers(t *testing.T) {
	f := newFixture(t, "")
	f.seed(t, 10, theme.Selection{Color: testPalette[0], Label: "1"})
	r := &fakeRenderer{}

	require.NoError(t, f.dispatch(t, r, 10, 7, "garbage"))

	d := f.load(t, 10)
	require.Len(t, d.Using, 1)
	assert.Empty(t, r.captions)
	assert.Equal(t, []ackCall{{text: "", alert: false}}, r.acks)
}
