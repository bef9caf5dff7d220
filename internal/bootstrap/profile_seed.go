package bootstrap

import (
	"context"
	"os"
	"time"

	"profile_server/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// schemaDDL creates the tables the update pipeline touches. The unique
// constraint on users.nickname is the authoritative duplicate signal.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS socials (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(50) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS subscribe (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(50) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS gender (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(50) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255),
		nickname VARCHAR(100) UNIQUE,
		height DOUBLE PRECISION,
		weight DOUBLE PRECISION,
		skeletal_muscle_mass DOUBLE PRECISION,
		goal_weight DOUBLE PRECISION,
		goal_body_fat DOUBLE PRECISION,
		goal_skeletal_muscle_mass DOUBLE PRECISION,
		body_fat DOUBLE PRECISION,
		birth_year INTEGER,
		gender_id BIGINT REFERENCES gender(id),
		subscribe_id BIGINT REFERENCES subscribe(id),
		sns_id VARCHAR(255) NOT NULL,
		social_id BIGINT NOT NULL REFERENCES socials(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ,
		UNIQUE (sns_id, social_id)
	)`,
}

// RunSeed creates the schema and populates the reference tables. Idempotent:
// re-running against an existing database is a no-op.
func RunSeed(cfg *config.Config) error {
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
		With().Timestamp().Str("component", "seed").Logger()

	deps, cleanup, err := NewDependencies(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, ddl := range schemaDDL {
		if _, err := deps.DB.Exec(ctx, ddl); err != nil {
			zlog.Error().Err(err).Msg("schema statement failed")
			return err
		}
	}
	zlog.Info().Msg("schema ensured")

	if err := seedReference(ctx, deps.DB, "socials", []string{"kakao", "naver", "google", "apple"}); err != nil {
		return err
	}
	if err := seedReference(ctx, deps.DB, "subscribe", []string{"free", "premium"}); err != nil {
		return err
	}
	if err := seedReference(ctx, deps.DB, "gender", []string{"male", "female"}); err != nil {
		return err
	}
	zlog.Info().Msg("reference tables seeded")

	if cfg.IsDevelopment() {
		if err := seedDevUser(ctx, deps, zlog); err != nil {
			return err
		}
	}

	return nil
}

func seedReference(ctx context.Context, db *pgxpool.Pool, table string, names []string) error {
	batch := &pgx.Batch{}
	for _, name := range names {
		batch.Queue("INSERT INTO "+table+" (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", name)
	}
	results := db.SendBatch(ctx, batch)
	defer results.Close()

	for range names {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// seedDevUser inserts a linked test account so the update endpoint can be
// exercised immediately after a fresh seed.
func seedDevUser(ctx context.Context, deps *Dependencies, zlog zerolog.Logger) error {
	var socialID int64
	if err := deps.DB.QueryRow(ctx, "SELECT id FROM socials WHERE name = $1", "kakao").Scan(&socialID); err != nil {
		return err
	}

	existing, err := deps.UserRepo.FindBySNS(ctx, "dev-sns-id", socialID)
	if err != nil {
		return err
	}
	if existing != nil {
		zlog.Info().Int64("user_id", existing.ID).Msg("dev user already present")
		return nil
	}

	id, err := deps.UserRepo.Create(ctx, "dev@example.com", "dev-sns-id", socialID)
	if err != nil {
		return err
	}
	zlog.Info().Int64("user_id", id).Msg("dev user created")

	return nil
}
