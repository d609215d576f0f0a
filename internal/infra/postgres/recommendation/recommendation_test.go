package infra_postgres_recommendation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/moviehistory/core/internal/model"
	usecase_recommendation "github.com/moviehistory/core/internal/usecase/recommendation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initDriver(t *testing.T) (*Driver, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return New(sqlx.NewDb(db, "sqlmock")), mock
}

func sampleRecommendation() model.Recommendation {
	return model.Recommendation{
		ID:             uuid.New(),
		TrackedEntryID: uuid.New(),
		FromUserID:     uuid.New(),
		ToUserID:       uuid.New(),
	}
}

func TestInsertStoresRecommendation(t *testing.T) {
	driver, mock := initDriver(t)
	rec := sampleRecommendation()

	mock.ExpectExec("INSERT INTO recommendations").
		WithArgs(rec.ID, rec.TrackedEntryID, rec.FromUserID, rec.ToUserID).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, driver.Insert(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertReportsDuplicate(t *testing.T) {
	driver, mock := initDriver(t)
	rec := sampleRecommendation()

	mock.ExpectExec("INSERT INTO recommendations").
		WithArgs(rec.ID, rec.TrackedEntryID, rec.FromUserID, rec.ToUserID).
		WillReturnError(&pq.Error{Code: "23505"})

	err := driver.Insert(context.Background(), rec)

	assert.True(t, errors.Is(err, usecase_recommendation.ErrAlreadyRecommended))
}

func TestInsertReportsMissingTarget(t *testing.T) {
	driver, mock := initDriver(t)
	rec := sampleRecommendation()

	mock.ExpectExec("INSERT INTO recommendations").
		WithArgs(rec.ID, rec.TrackedEntryID, rec.FromUserID, rec.ToUserID).
		WillReturnError(&pq.Error{Code: "23503"})

	err := driver.Insert(context.Background(), rec)

	assert.True(t, errors.Is(err, usecase_recommendation.ErrUserNotFound))
}

func TestReceivedByJoinsMovieAndSender(t *testing.T) {
	driver, mock := initDriver(t)
	userID := uuid.New()
	recID := uuid.New()
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "title", "img_url", "from_login", "from_name", "created_at"}).
		AddRow(recID, "The Matrix", "/poster.jpg", "alice", "Alice", createdAt)

	mock.ExpectQuery("SELECT r.id, m.title").
		WithArgs(userID).
		WillReturnRows(rows)

	recs, err := driver.ReceivedBy(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "The Matrix", recs[0].Title)
	assert.Equal(t, "alice", recs[0].FromLogin)
	assert.Equal(t, createdAt, recs[0].CreatedAt)
}

func TestReceivedByEmpty(t *testing.T) {
	driver, mock := initDriver(t)
	userID := uuid.New()

	mock.ExpectQuery("SELECT r.id, m.title").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "img_url", "from_login", "from_name", "created_at"}))

	recs, err := driver.ReceivedBy(context.Background(), userID)

	require.NoError(t, err)
	assert.Empty(t, recs)
}
