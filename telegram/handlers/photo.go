package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/themebot/logger"
	"github.com/m3rciful/themebot/render"
	"github.com/m3rciful/themebot/store"
	"github.com/m3rciful/themebot/telegram/helpers"
	"github.com/m3rciful/themebot/telegram/keyboard"
	"github.com/m3rciful/themebot/texts"
	"github.com/m3rciful/themebot/theme"
)

// OnPhoto starts a conversation: it extracts a palette from the incoming
// photo, sends the photo back with the color keyboard, and stores a fresh
// draft under the sent message's id.
func OnPhoto(st store.Store, pool *render.Pool) tele.HandlerFunc {
	return func(c tele.Context) error {
		msg := c.Message()
		if msg == nil || msg.Photo == nil || c.Sender() == nil {
			return nil
		}
		ctx := helpers.WithHandler(c, "photo")
		start := time.Now()

		colors, err := extractPalette(ctx, c, pool, &msg.Photo.File)
		if err != nil {
			logger.Warn(ctx, "tg.flow", "palette.fail",
				slog.String("error", err.Error()),
			)
			return c.Reply(texts.Render("not_a_photo", nil))
		}

		draft, err := theme.NewDraft(colors, msg.Photo.File.FileID)
		if err != nil {
			return err
		}

		prompt := &tele.Photo{
			File:    tele.File{FileID: msg.Photo.File.FileID},
			Caption: texts.Render("choose_color_1", nil),
		}
		sent, err := c.Bot().Reply(msg, prompt, keyboard.Colors(c.Sender().ID, false))
		if err != nil {
			return err
		}

		if err := st.Save(ctx, sent.ID, draft); err != nil {
			return err
		}

		logger.Info(ctx, "tg.flow", "theme.started",
			slog.Int("theme_id", sent.ID),
			slog.Duration("duration", logger.Took(start)),
		)
		return nil
	}
}

func extractPalette(ctx context.Context, c tele.Context, pool *render.Pool, file *tele.File) ([]string, error) {
	rc, err := c.Bot().File(file)
	if err != nil {
		return nil, fmt.Errorf("download photo: %w", err)
	}
	defer rc.Close()

	var colors []string
	err = pool.Do(ctx, "palette", func(context.Context) error {
		var exErr error
		colors, exErr = theme.ExtractPalette(rc)
		return exErr
	})
	return colors, err
}
