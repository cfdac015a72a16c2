package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/themebot/logger"
	"github.com/m3rciful/themebot/theme"
)

type postgresStore struct {
	db *sqlx.DB
}

// NewPostgres constructs the production Store over the theme_drafts table.
func NewPostgres(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

func (p *postgresStore) Load(ctx context.Context, messageID int) (*theme.Draft, error) {
	start := time.Now()
	var payload []byte
	err := p.db.GetContext(ctx, &payload,
		`SELECT payload FROM theme_drafts WHERE message_id = $1`, int64(messageID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.DB.Error("draft load failed",
			slog.String("event", "draft.load"),
			slog.Int("theme_id", messageID),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("store: load draft %d: %w", messageID, err)
	}

	var d theme.Draft
	if err := json.Unmarshal(payload, &d); err != nil {
		return nil, fmt.Errorf("store: decode draft %d: %w", messageID, err)
	}
	logger.DB.Debug("draft loaded",
		slog.String("event", "draft.load"),
		slog.Int("theme_id", messageID),
		slog.Duration("duration", logger.Took(start)),
	)
	return &d, nil
}

func (p *postgresStore) Save(ctx context.Context, messageID int, d *theme.Draft) error {
	if d == nil {
		if _, err := p.db.ExecContext(ctx,
			`DELETE FROM theme_drafts WHERE message_id = $1`, int64(messageID)); err != nil {
			return fmt.Errorf("store: clear draft %d: %w", messageID, err)
		}
		logger.DB.Debug("draft cleared",
			slog.String("event", "draft.clear"),
			slog.Int("theme_id", messageID),
		)
		return nil
	}

	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("store: encode draft %d: %w", messageID, err)
	}
	_, err = p.db.ExecContext(ctx, `
		INSERT INTO theme_drafts (message_id, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (message_id)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
		int64(messageID), payload)
	if err != nil {
		return fmt.Errorf("store: save draft %d: %w", messageID, err)
	}
	return nil
}
