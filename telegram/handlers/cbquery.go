package handlers

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/themebot/logger"
	"github.com/m3rciful/themebot/telegram/helpers"
)

// teleRenderer adapts tele.Context to the Renderer the flow dispatches
// against. Every call targets the message the pressed button hangs off.
type teleRenderer struct {
	c tele.Context
}

func (r *teleRenderer) message() *tele.Message {
	return r.c.Callback().Message
}

func (r *teleRenderer) EditCaption(_ context.Context, text string, markup *tele.ReplyMarkup) error {
	_, err := r.c.Bot().EditCaption(r.message(), text, markup)
	return err
}

func (r *teleRenderer) EditMedia(_ context.Context, a Artifact) error {
	doc := &tele.Document{
		File:     tele.FromReader(bytes.NewReader(a.Data)),
		FileName: a.FileName,
		Caption:  a.Caption,
	}
	opts := []interface{}{}
	if a.HTML {
		opts = append(opts, tele.ModeHTML)
	}
	_, err := r.c.Bot().EditMedia(r.message(), doc, opts...)
	return err
}

func (r *teleRenderer) Delete(_ context.Context) error {
	return r.c.Bot().Delete(r.message())
}

func (r *teleRenderer) ReplyPhoto(_ context.Context, image []byte, caption string) error {
	photo := &tele.Photo{
		File:    tele.FromReader(bytes.NewReader(image)),
		Caption: caption,
	}
	_, err := r.c.Bot().Reply(r.message(), photo)
	return err
}

func (r *teleRenderer) Acknowledge(_ context.Context, text string, alert bool) error {
	if text == "" && !alert {
		return r.c.Respond()
	}
	return r.c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: alert})
}

func (r *teleRenderer) SourcePhoto(_ context.Context, fileID string) ([]byte, error) {
	rc, err := r.c.Bot().File(&tele.File{FileID: fileID})
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// OnCallback turns button presses into flow events. It is the reporting
// boundary of a dispatch: faults are logged here and never crash the update
// loop or leak into other conversations.
func OnCallback(flow *Flow) tele.HandlerFunc {
	return func(c tele.Context) error {
		cb := c.Callback()
		if cb == nil || cb.Message == nil || c.Sender() == nil {
			return nil
		}
		ctx := helpers.WithHandler(c, "cbquery")

		raw := strings.TrimSpace(cb.Data)
		ev := Event{
			Token:       DecodeToken(raw),
			MessageID:   cb.Message.ID,
			RequesterID: c.Sender().ID,
		}

		start := time.Now()
		err := flow.Dispatch(ctx, ev, &teleRenderer{c: c})
		logger.LogEvent(ctx, logger.Component("tg"), slog.LevelInfo, "cbquery",
			slog.String("status", logger.Status(err)),
			slog.String("cb_token", logger.SanitizeLimit(raw, 64)),
			slog.Int("theme_id", ev.MessageID),
			slog.Duration("duration", logger.Took(start)),
		)
		if err != nil {
			logger.Error(ctx, "tg.flow", "dispatch.fail",
				slog.Int("theme_id", ev.MessageID),
				slog.String("cb_token", logger.SanitizeLimit(raw, 64)),
				slog.String("error", err.Error()),
			)
		}
		return nil
	}
}
