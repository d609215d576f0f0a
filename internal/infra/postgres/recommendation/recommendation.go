package infra_postgres_recommendation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/moviehistory/core/internal/model"
	usecase_recommendation "github.com/moviehistory/core/internal/usecase/recommendation"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type recommendationDTO struct {
	ID             uuid.UUID `db:"id"`
	TrackedEntryID uuid.UUID `db:"tracked_entry_id"`
	FromUserID     uuid.UUID `db:"from_user_id"`
	ToUserID       uuid.UUID `db:"to_user_id"`
}

type receivedDTO struct {
	ID        uuid.UUID `db:"id"`
	Title     string    `db:"title"`
	ImgURL    string    `db:"img_url"`
	FromLogin string    `db:"from_login"`
	FromName  string    `db:"from_name"`
	CreatedAt time.Time `db:"created_at"`
}

func (d *Driver) Insert(ctx context.Context, rec model.Recommendation) error {
	dto := recommendationDTO{
		ID:             rec.ID,
		TrackedEntryID: rec.TrackedEntryID,
		FromUserID:     rec.FromUserID,
		ToUserID:       rec.ToUserID,
	}

	query := `
		INSERT INTO recommendations (id, tracked_entry_id, from_user_id, to_user_id)
		VALUES (:id, :tracked_entry_id, :from_user_id, :to_user_id)
	`

	if _, err := d.db.NamedExecContext(ctx, query, dto); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case uniqueViolation:
				return usecase_recommendation.ErrAlreadyRecommended
			case foreignKeyViolation:
				return usecase_recommendation.ErrUserNotFound
			}
		}
		return fmt.Errorf("failed to insert recommendation: %w", err)
	}

	return nil
}

func (d *Driver) ReceivedBy(ctx context.Context, userID uuid.UUID) ([]model.ReceivedRecommendation, error) {
	query := `
		SELECT r.id, m.title, m.img_url, u.login AS from_login, u.name AS from_name, r.created_at
		FROM recommendations r
		JOIN tracked_entries te ON te.id = r.tracked_entry_id
		JOIN movies m ON m.id = te.movie_id
		JOIN users u ON u.id = r.from_user_id
		WHERE r.to_user_id = $1
		ORDER BY r.created_at DESC
	`

	var rows []receivedDTO
	if err := d.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to query received recommendations: %w", err)
	}

	recs := make([]model.ReceivedRecommendation, len(rows))
	for i, row := range rows {
		recs[i] = model.ReceivedRecommendation{
			ID:        row.ID,
			Title:     row.Title,
			ImgURL:    row.ImgURL,
			FromLogin: row.FromLogin,
			FromName:  row.FromName,
			CreatedAt: row.CreatedAt,
		}
	}

	return recs, nil
}
