package infra_postgres_tracked

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/moviehistory/core/internal/model"
	usecase_recommendation "github.com/moviehistory/core/internal/usecase/recommendation"
	usecase_tracking "github.com/moviehistory/core/internal/usecase/tracking"
)

const uniqueViolation = "23505"

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type movieDTO struct {
	ID     uuid.UUID `db:"id"`
	APIID  int64     `db:"api_id"`
	Title  string    `db:"title"`
	ImgURL string    `db:"img_url"`
}

type entryDTO struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	MovieID   uuid.UUID `db:"movie_id"`
	Genre     string    `db:"genre"`
	Favorited bool      `db:"favorited"`
	Watched   bool      `db:"watched"`
}

type entryViewDTO struct {
	ID        uuid.UUID `db:"id"`
	APIID     int64     `db:"api_id"`
	Title     string    `db:"title"`
	ImgURL    string    `db:"img_url"`
	Genre     string    `db:"genre"`
	Favorited bool      `db:"favorited"`
	Watched   bool      `db:"watched"`
}

// Track runs the whole unit of work in one transaction: find or
// create the movie row for the catalog id, then insert the entry.
// The (user_id, movie_id) constraint resolves the concurrent-track
// race in favor of exactly one entry.
func (d *Driver) Track(ctx context.Context, userID uuid.UUID, apiID int64, title, imgURL string) (model.TrackedEntry, error) {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.TrackedEntry{}, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upsertMovieQuery := `
		INSERT INTO movies (id, api_id, title, img_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (api_id) DO UPDATE SET api_id = EXCLUDED.api_id
		RETURNING id
	`

	var movieID uuid.UUID
	err = tx.GetContext(ctx, &movieID, upsertMovieQuery, uuid.New(), apiID, title, imgURL)
	if err != nil {
		return model.TrackedEntry{}, fmt.Errorf("failed to find or create movie: %w", err)
	}

	insertEntryQuery := `
		INSERT INTO tracked_entries (id, user_id, movie_id)
		VALUES ($1, $2, $3)
	`

	entryID := uuid.New()
	if _, err := tx.ExecContext(ctx, insertEntryQuery, entryID, userID, movieID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return model.TrackedEntry{}, usecase_tracking.ErrAlreadyTracked
		}
		return model.TrackedEntry{}, fmt.Errorf("failed to insert tracked entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.TrackedEntry{}, fmt.Errorf("failed to commit: %w", err)
	}

	return model.TrackedEntry{
		ID:      entryID,
		UserID:  userID,
		MovieID: movieID,
	}, nil
}

func (d *Driver) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.TrackedEntryView, error) {
	query := `
		SELECT te.id, m.api_id, m.title, m.img_url, te.genre, te.favorited, te.watched
		FROM tracked_entries te
		JOIN movies m ON m.id = te.movie_id
		WHERE te.user_id = $1
		ORDER BY te.created_at
	`

	var rows []entryViewDTO
	if err := d.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to query tracked entries: %w", err)
	}

	views := make([]model.TrackedEntryView, len(rows))
	for i, row := range rows {
		views[i] = model.TrackedEntryView{
			ID:        row.ID,
			APIID:     row.APIID,
			Title:     row.Title,
			ImgURL:    row.ImgURL,
			Genre:     row.Genre,
			Favorited: row.Favorited,
			Watched:   row.Watched,
		}
	}

	return views, nil
}

func (d *Driver) LoadEntry(ctx context.Context, entryID uuid.UUID) (model.TrackedEntry, model.Movie, error) {
	query := `
		SELECT te.id, te.user_id, te.movie_id, te.genre, te.favorited, te.watched,
			m.id AS "movie.id", m.api_id AS "movie.api_id",
			m.title AS "movie.title", m.img_url AS "movie.img_url"
		FROM tracked_entries te
		JOIN movies m ON m.id = te.movie_id
		WHERE te.id = $1
	`

	var row struct {
		entryDTO
		Movie movieDTO `db:"movie"`
	}
	if err := d.db.GetContext(ctx, &row, query, entryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.TrackedEntry{}, model.Movie{}, usecase_recommendation.ErrEntryNotFound
		}
		return model.TrackedEntry{}, model.Movie{}, fmt.Errorf("failed to load tracked entry: %w", err)
	}

	entry := model.TrackedEntry{
		ID:        row.ID,
		UserID:    row.UserID,
		MovieID:   row.MovieID,
		Genre:     row.Genre,
		Favorited: row.Favorited,
		Watched:   row.Watched,
	}
	movie := model.Movie{
		ID:     row.Movie.ID,
		APIID:  row.Movie.APIID,
		Title:  row.Movie.Title,
		ImgURL: row.Movie.ImgURL,
	}

	return entry, movie, nil
}

func (d *Driver) SetFavorited(ctx context.Context, userID, entryID uuid.UUID, favorited bool) error {
	query := `UPDATE tracked_entries SET favorited = $3 WHERE id = $1 AND user_id = $2`
	return d.exec(ctx, query, entryID, userID, favorited)
}

func (d *Driver) SetWatched(ctx context.Context, userID, entryID uuid.UUID, watched bool) error {
	query := `UPDATE tracked_entries SET watched = $3 WHERE id = $1 AND user_id = $2`
	return d.exec(ctx, query, entryID, userID, watched)
}

func (d *Driver) SetGenre(ctx context.Context, userID, entryID uuid.UUID, genre string) error {
	query := `UPDATE tracked_entries SET genre = $3 WHERE id = $1 AND user_id = $2`
	return d.exec(ctx, query, entryID, userID, genre)
}

func (d *Driver) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	query := `DELETE FROM tracked_entries WHERE id = $1 AND user_id = $2`
	return d.exec(ctx, query, entryID, userID)
}

func (d *Driver) exec(ctx context.Context, query string, args ...any) error {
	result, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return usecase_tracking.ErrNotFound
	}

	return nil
}
