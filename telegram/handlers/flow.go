// Package handlers implements the callback-driven theme conversation: token
// dispatch, draft transitions, and the terminal artifact pipeline.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/themebot/logger"
	"github.com/m3rciful/themebot/render"
	"github.com/m3rciful/themebot/store"
	"github.com/m3rciful/themebot/telegram/keyboard"
	"github.com/m3rciful/themebot/telegram/tgerr"
	"github.com/m3rciful/themebot/texts"
	"github.com/m3rciful/themebot/theme"
)

// Artifact is a completed theme ready to replace the conversation message.
type Artifact struct {
	FileName string
	Data     []byte
	Caption  string
	HTML     bool
}

// Renderer is the per-conversation view of the messaging endpoint. Every
// method targets the message the draft is rendered on. Implementations wrap
// the transport; the flow never touches it directly so transitions stay
// testable without a live bot.
type Renderer interface {
	EditCaption(ctx context.Context, text string, markup *tele.ReplyMarkup) error
	EditMedia(ctx context.Context, a Artifact) error
	Delete(ctx context.Context) error
	ReplyPhoto(ctx context.Context, image []byte, caption string) error
	Acknowledge(ctx context.Context, text string, alert bool) error
	SourcePhoto(ctx context.Context, fileID string) ([]byte, error)
}

// AckOutcome classifies one acknowledgement attempt.
type AckOutcome int

const (
	// AckAnswered means the endpoint accepted the acknowledgement.
	AckAnswered AckOutcome = iota
	// AckSuppressedStale means the query expired first; harmless.
	AckSuppressedStale
	// AckFailed means the acknowledgement failed for a real reason.
	AckFailed
)

// Event is one inbound button press.
type Event struct {
	Token       Token
	MessageID   int
	RequesterID int64
}

// Flow owns the conversation state machine. One Flow serves all
// conversations; per-conversation state lives in the store.
type Flow struct {
	store     store.Store
	pool      *render.Pool
	botName   string
	donateURL string
}

// NewFlow wires the conversation flow. donateURL may be empty, which omits
// the donation line from artifact captions.
func NewFlow(st store.Store, pool *render.Pool, botName, donateURL string) *Flow {
	return &Flow{
		store:     st,
		pool:      pool,
		botName:   botName,
		donateURL: donateURL,
	}
}

// Dispatch routes one event against its conversation draft. It returns an
// error only for faults that should reach the top-level reporting boundary;
// expected conditions (stale queries, duplicate picks, missing drafts,
// foreign cancel attempts) are handled internally.
func (f *Flow) Dispatch(ctx context.Context, ev Event, r Renderer) error {
	if cancel, ok := ev.Token.(CancelToken); ok {
		return f.handleCancel(ctx, ev, cancel, r)
	}

	draft, err := f.store.Load(ctx, ev.MessageID)
	if err != nil {
		return err
	}
	if draft == nil {
		outcome, err := f.acknowledge(ctx, r, texts.Render("no_theme_found", nil), true)
		if outcome == AckFailed {
			return err
		}
		return nil
	}

	switch tok := ev.Token.(type) {
	case DefaultToken:
		err = f.applyPreset(ctx, ev, draft, r)
	case BackspaceToken:
		err = f.removeLast(ctx, ev, draft, r)
	case NamedColorToken:
		err = f.saveColor(ctx, ev, draft, r, tok.Color, tok.Label)
	case IndexedColorToken:
		err = f.saveColor(ctx, ev, draft, r, draft.Colors[tok.Index], strconv.Itoa(tok.Index+1))
	case FormatToken:
		err = f.completeTheme(ctx, ev, draft, r, tok.Kind)
	case UnknownToken:
		logger.Warn(ctx, "tg.flow", "token.unknown",
			slog.String("cb_token", logger.SanitizeLimit(tok.Raw, 64)),
			slog.Int("theme_id", ev.MessageID),
		)
	}
	if err != nil {
		return err
	}

	// The press is answered even when the branch above already sent an
	// informative acknowledgement; a double answer fails as stale and is
	// swallowed like any other late ack.
	outcome, ackErr := f.acknowledge(ctx, r, "", false)
	if outcome == AckFailed {
		return ackErr
	}
	return nil
}

// handleCancel tears the conversation down if the presser owns it. It is
// idempotent: cancelling an already-absent draft still deletes the message.
func (f *Flow) handleCancel(ctx context.Context, ev Event, tok CancelToken, r Renderer) error {
	if tok.RequesterID != ev.RequesterID {
		outcome, err := f.acknowledge(ctx, r, texts.Render("not_your_theme", nil), false)
		if outcome == AckFailed {
			return err
		}
		return nil
	}
	if err := r.Delete(ctx); err != nil {
		return err
	}
	return f.store.Save(ctx, ev.MessageID, nil)
}

// applyPreset swaps the selections for the stock layout and jumps straight
// to the format prompt. The edit happens before the draft is touched so a
// failed render leaves the stored state unchanged.
func (f *Flow) applyPreset(ctx context.Context, ev Event, draft *theme.Draft, r Renderer) error {
	if err := r.EditCaption(ctx, texts.Render("type_of_theme", nil), keyboard.Formats(ev.RequesterID)); err != nil {
		return err
	}
	draft.ApplyPreset()
	return f.store.Save(ctx, ev.MessageID, draft)
}

func (f *Flow) removeLast(ctx context.Context, ev Event, draft *theme.Draft, r Renderer) error {
	if err := draft.Pop(); err != nil {
		return fmt.Errorf("backspace on conversation %d: %w", ev.MessageID, err)
	}
	if err := f.store.Save(ctx, ev.MessageID, draft); err != nil {
		return err
	}
	return r.EditCaption(ctx,
		texts.ChooseColor(draft.Step(), draft.Summary(true)),
		keyboard.Colors(ev.RequesterID, len(draft.Using) > 0),
	)
}

// saveColor appends one selection and advances the prompt. A pick equal to
// the previous one is refused without touching the draft.
func (f *Flow) saveColor(ctx context.Context, ev Event, draft *theme.Draft, r Renderer, color, label string) error {
	if err := draft.Append(color, label); err != nil {
		if errors.Is(err, theme.ErrColorReused) {
			outcome, ackErr := f.acknowledge(ctx, r, texts.Render("cant_reuse_bg", nil), false)
			if outcome == AckFailed {
				return ackErr
			}
			return nil
		}
		return fmt.Errorf("select color on conversation %d: %w", ev.MessageID, err)
	}
	if err := f.store.Save(ctx, ev.MessageID, draft); err != nil {
		return err
	}

	if len(draft.Using) < 3 {
		return r.EditCaption(ctx,
			texts.ChooseColor(draft.Step(), draft.Summary(true)),
			keyboard.Colors(ev.RequesterID, true),
		)
	}

	err := r.EditCaption(ctx, texts.Render("type_of_theme", nil), keyboard.Formats(ev.RequesterID))
	if tgerr.IsNotModified(err) {
		// The user re-pressed a button on an already-final prompt.
		outcome, ackErr := f.acknowledge(ctx, r, texts.Render("dont_click", nil), true)
		if outcome == AckFailed {
			return ackErr
		}
		return nil
	}
	return err
}

// completeTheme runs the artifact pipeline: encode, swap the message for the
// file, attach a preview when the format has one, then clear the draft. The
// draft survives an encode or delivery failure so the user can retry; once
// the artifact is delivered the conversation is over even if the preview
// never arrives.
func (f *Flow) completeTheme(ctx context.Context, ev Event, draft *theme.Draft, r Renderer, format theme.Format) error {
	if len(draft.Using) < 3 {
		return fmt.Errorf("complete conversation %d: %w", ev.MessageID, theme.ErrNotEnoughColors)
	}

	name := theme.DeriveName(draft.Using[0].Color, draft.Using[2].Color)

	wallpaper, err := r.SourcePhoto(ctx, draft.Photo)
	if err != nil {
		return fmt.Errorf("fetch source photo for conversation %d: %w", ev.MessageID, err)
	}

	var artifact []byte
	err = f.pool.Do(ctx, "encode."+string(format), func(context.Context) error {
		var encErr error
		artifact, encErr = theme.Encode(format, name, wallpaper, draft.Using)
		return encErr
	})
	if err != nil {
		return fmt.Errorf("encode conversation %d: %w", ev.MessageID, err)
	}

	if err := r.EditMedia(ctx, Artifact{
		FileName: theme.FileName(name, f.botName, format),
		Data:     artifact,
		Caption:  f.artifactCaption(draft),
		HTML:     true,
	}); err != nil {
		return err
	}

	var preview []byte
	previewErr := f.pool.Do(ctx, "preview."+string(format), func(context.Context) error {
		var renderErr error
		preview, renderErr = theme.RenderPreview(format, draft.Using)
		return renderErr
	})
	if previewErr == nil && preview != nil {
		previewErr = r.ReplyPhoto(ctx, preview,
			fmt.Sprintf("Preview by @%s.%s", f.botName, format.Ext()))
	}
	if previewErr != nil {
		logger.Warn(ctx, "tg.flow", "preview.fail",
			slog.Int("theme_id", ev.MessageID),
			slog.String("format", string(format)),
			slog.String("error", previewErr.Error()),
		)
	}

	if err := f.store.Save(ctx, ev.MessageID, nil); err != nil {
		return err
	}
	logger.Info(ctx, "tg.flow", "theme.completed",
		slog.Int("theme_id", ev.MessageID),
		slog.String("format", string(format)),
		slog.String("theme_name", name),
	)
	return nil
}

func (f *Flow) artifactCaption(draft *theme.Draft) string {
	lines := []string{
		fmt.Sprintf("Made by @%s", f.botName),
		fmt.Sprintf("#theme %s", strings.Join(draft.Summary(false), " ")),
	}
	if f.donateURL != "" {
		lines = append(lines, "",
			fmt.Sprintf(`If you'd like to help support the bot, please <a href="%s">donate</a>.`, f.donateURL))
	}
	return strings.Join(lines, "\n")
}

// acknowledge answers the pending callback query, classifying the result.
// Stale rejections mean the query timed out remotely; nothing can be done
// about them and they carry no signal.
func (f *Flow) acknowledge(ctx context.Context, r Renderer, text string, alert bool) (AckOutcome, error) {
	err := r.Acknowledge(ctx, text, alert)
	if err == nil {
		return AckAnswered, nil
	}
	if tgerr.IsQueryTooOld(err) {
		return AckSuppressedStale, nil
	}
	return AckFailed, err
}
