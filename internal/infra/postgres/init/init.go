package infra_pg_init

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/moviehistory/core/internal/config"
)

func MustEstablishConn(cfg config.Postgres) *sqlx.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.SSLMode,
	)
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		log.Fatal(err)
	}

	return db
}

// Uniqueness constraints double as the duplicate guards: one movie
// per catalog id, one tracked entry per (user, movie), one
// recommendation per (entry, target).
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id uuid PRIMARY KEY,
	login text NOT NULL UNIQUE,
	name text NOT NULL DEFAULT '',
	password bytea NOT NULL,
	created_at timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS movies (
	id uuid PRIMARY KEY,
	api_id bigint NOT NULL UNIQUE,
	title text NOT NULL,
	img_url text NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS tracked_entries (
	id uuid PRIMARY KEY,
	user_id uuid NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	movie_id uuid NOT NULL REFERENCES movies (id),
	genre text NOT NULL DEFAULT '',
	favorited boolean NOT NULL DEFAULT false,
	watched boolean NOT NULL DEFAULT false,
	created_at timestamptz NOT NULL DEFAULT now(),
	UNIQUE (user_id, movie_id)
);

CREATE TABLE IF NOT EXISTS recommendations (
	id uuid PRIMARY KEY,
	tracked_entry_id uuid NOT NULL REFERENCES tracked_entries (id) ON DELETE CASCADE,
	from_user_id uuid NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	to_user_id uuid NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	created_at timestamptz NOT NULL DEFAULT now(),
	UNIQUE (tracked_entry_id, to_user_id)
);
`

func MustEnsureSchema(ctx context.Context, db *sqlx.DB) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}
}
