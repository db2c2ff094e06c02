package server

import (
	"context"
	"fmt"

	"github.com/philly/quillpost/internal/adapters/boltstore"
	"github.com/philly/quillpost/internal/adapters/memory"
	"github.com/philly/quillpost/internal/adapters/mongostore"
	"github.com/philly/quillpost/internal/adapters/postgres"
	"github.com/philly/quillpost/internal/adapters/rest"
	"github.com/philly/quillpost/internal/adapters/sqlitestore"
	"github.com/philly/quillpost/internal/platform/logger"
	postsPorts "github.com/philly/quillpost/internal/posts/ports"
	usersPorts "github.com/philly/quillpost/internal/users/ports"
)

// Storage is the selected backend seen through the repository ports
type Storage struct {
	Posts  postsPorts.PostRepository
	Users  usersPorts.UserRepository
	Pinger rest.Pinger
}

// ProvideStorage opens the backend named by config.StorageBackend. The
// cleanup closes whatever connection or file the backend holds.
func ProvideStorage(ctx context.Context, config Config, log logger.Logger) (Storage, func(), error) {
	log.Info(ctx, "opening storage", "backend", config.StorageBackend)

	switch config.StorageBackend {
	case BackendMemory:
		posts := memory.NewPostRepository()
		return Storage{
			Posts:  posts,
			Users:  memory.NewUserRepository(),
			Pinger: posts,
		}, func() {}, nil

	case BackendPostgres:
		pool, cleanup, err := OpenPostgres(ctx, config, log)
		if err != nil {
			return Storage{}, nil, err
		}
		return Storage{
			Posts:  postgres.NewPostRepository(pool),
			Users:  postgres.NewUserRepository(pool),
			Pinger: pool,
		}, cleanup, nil

	case BackendMongo:
		db, cleanup, err := mongostore.Connect(ctx, config.MongoURI, config.MongoDatabase)
		if err != nil {
			log.Error(ctx, "failed to connect to mongo", "error", err)
			return Storage{}, nil, err
		}
		posts := mongostore.NewPostRepository(db)
		return Storage{
			Posts:  posts,
			Users:  mongostore.NewUserRepository(db),
			Pinger: posts,
		}, func() {
			log.Info(context.Background(), "disconnecting from mongo")
			cleanup()
		}, nil

	case BackendBolt:
		db, err := boltstore.Open(config.BoltPath)
		if err != nil {
			log.Error(ctx, "failed to open bolt file", "error", err)
			return Storage{}, nil, err
		}
		posts := boltstore.NewPostRepository(db)
		return Storage{
			Posts:  posts,
			Users:  boltstore.NewUserRepository(db),
			Pinger: posts,
		}, func() {
			log.Info(context.Background(), "closing bolt file", "path", config.BoltPath)
			_ = db.Close()
		}, nil

	case BackendSQLite:
		db, err := sqlitestore.Open(ctx, config.SQLitePath)
		if err != nil {
			log.Error(ctx, "failed to open sqlite database", "error", err)
			return Storage{}, nil, err
		}
		posts := sqlitestore.NewPostRepository(db)
		return Storage{
			Posts:  posts,
			Users:  sqlitestore.NewUserRepository(db),
			Pinger: posts,
		}, func() {
			log.Info(context.Background(), "closing sqlite database", "path", config.SQLitePath)
			_ = db.Close()
		}, nil

	default:
		return Storage{}, nil, fmt.Errorf("unknown storage backend %q", config.StorageBackend)
	}
}
