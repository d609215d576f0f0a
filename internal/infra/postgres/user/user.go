package infra_postgres_user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/moviehistory/core/internal/model"
	usecase_auth "github.com/moviehistory/core/internal/usecase/auth"
	usecase_recommendation "github.com/moviehistory/core/internal/usecase/recommendation"
)

const uniqueViolation = "23505"

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type userDTO struct {
	ID       uuid.UUID `db:"id"`
	Login    string    `db:"login"`
	Name     string    `db:"name"`
	Password []byte    `db:"password"`
}

func (d userDTO) toDomain() model.User {
	return model.User{
		ID:       d.ID,
		Login:    d.Login,
		Name:     d.Name,
		Password: d.Password,
	}
}

func (d *Driver) Create(ctx context.Context, u model.User) error {
	query := `
		INSERT INTO users (id, login, name, password)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := d.db.ExecContext(ctx, query, u.ID, u.Login, u.Name, u.Password); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return usecase_auth.ErrLoginTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (d *Driver) ByLogin(ctx context.Context, login string) (model.User, error) {
	query := `SELECT id, login, name, password FROM users WHERE login = $1`

	var row userDTO
	if err := d.db.GetContext(ctx, &row, query, login); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, usecase_auth.ErrInvalidCredentials
		}
		return model.User{}, fmt.Errorf("failed to load user by login: %w", err)
	}

	return row.toDomain(), nil
}

func (d *Driver) ByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT id, login, name, password FROM users WHERE id = $1`

	var row userDTO
	if err := d.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, usecase_recommendation.ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("failed to load user by id: %w", err)
	}

	return row.toDomain(), nil
}

// ListExcept returns every user other than the given one, for the
// recommendation-target selector. The user base is small enough that
// no pagination is needed.
func (d *Driver) ListExcept(ctx context.Context, userID uuid.UUID) ([]model.User, error) {
	query := `SELECT id, login, name, password FROM users WHERE id <> $1 ORDER BY login`

	var rows []userDTO
	if err := d.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]model.User, len(rows))
	for i, row := range rows {
		users[i] = row.toDomain()
	}

	return users, nil
}
