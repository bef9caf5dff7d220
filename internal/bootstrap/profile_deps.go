// Package bootstrap wires configuration, infrastructure and services into a
// runnable application.
package bootstrap

import (
	"context"
	"time"

	"profile_server/adapter/out/mongodb"
	"profile_server/adapter/out/persistence"
	"profile_server/config"
	"profile_server/core/port/out"
	"profile_server/core/service/user"
	"profile_server/infra/database"
	"profile_server/pkg/logger"
	"profile_server/pkg/token"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver for database/sql
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type Dependencies struct {
	Config  *config.Config
	DB      *pgxpool.Pool
	SQLDB   *sqlx.DB
	Redis   *redis.Client
	MongoDB *mongo.Client

	// Repositories
	UserRepo   out.UserRepository
	GenderRepo out.GenderRepository
	ChangeLog  out.ChangeLogRepository

	// Auth
	TokenVerifier *token.Verifier

	// Services
	UserService *user.Service
}

// NewDependencies builds the dependency graph. Postgres is mandatory; redis
// and mongodb are optional and the server degrades gracefully without them.
func NewDependencies(cfg *config.Config) (*Dependencies, func(), error) {
	deps := &Dependencies{Config: cfg}
	var cleanups []func()

	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	// Database (pgxpool, used for health checks and seeding)
	db, err := database.NewPostgres(cfg.DatabaseURL, database.DefaultPostgresConfig(cfg.DBMaxConns))
	if err != nil {
		return nil, nil, err
	}
	deps.DB = db
	cleanups = append(cleanups, func() { db.Close() })

	// Database (sqlx, used by the persistence adapters)
	sqlDB, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	sqlDB.SetMaxOpenConns(int(cfg.DBMaxConns))
	sqlDB.SetMaxIdleConns(int(cfg.DBMaxConns) / 2)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	deps.SQLDB = sqlDB
	cleanups = append(cleanups, func() { sqlDB.Close() })

	deps.UserRepo = persistence.NewUserAdapter(sqlDB)

	genderRepo := out.GenderRepository(persistence.NewGenderAdapter(sqlDB))

	// Redis (optional): read-through cache over the gender lookup
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedis(cfg.RedisURL, nil)
		if err != nil {
			logger.Warn("Redis connection failed, gender cache disabled: %v", err)
		} else {
			deps.Redis = redisClient
			cleanups = append(cleanups, func() { redisClient.Close() })
			genderRepo = persistence.NewCachedGenderRepository(genderRepo, redisClient, cfg.GenderCacheTTL)
		}
	}
	deps.GenderRepo = genderRepo

	// MongoDB (optional): profile change log
	if cfg.MongoDBURL != "" {
		mongoClient, err := mongodb.NewClient(cfg.MongoDBURL)
		if err != nil {
			logger.Warn("MongoDB connection failed, change log disabled: %v", err)
		} else {
			deps.MongoDB = mongoClient
			cleanups = append(cleanups, func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = mongoClient.Disconnect(ctx)
			})

			changeLog := mongodb.NewChangeLogAdapter(mongoClient.Database(cfg.MongoDBName))
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := changeLog.EnsureIndexes(ctx); err != nil {
				logger.Warn("Failed to ensure change log indexes: %v", err)
			}
			cancel()
			deps.ChangeLog = changeLog
		}
	}

	deps.TokenVerifier = token.NewVerifier(cfg.JWTSecret)
	deps.UserService = user.NewService(deps.UserRepo, deps.GenderRepo, deps.ChangeLog)

	logger.Info("Dependencies initialized")

	return deps, cleanup, nil
}
