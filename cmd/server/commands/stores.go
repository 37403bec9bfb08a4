package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/project-management-api/internal/auth"
	"github.com/yukikurage/project-management-api/internal/config"
	"github.com/yukikurage/project-management-api/internal/database"
	"github.com/yukikurage/project-management-api/internal/repository"
	"go.uber.org/zap"
)

// stores holds the repositories for the configured database driver and
// the revocation store for logged-out tokens.
type stores struct {
	users       repository.UserRepository
	projects    repository.ProjectRepository
	tasks       repository.TaskRepository
	revocations auth.RevocationStore

	closers []func(context.Context) error
}

// openStores opens the database through openDatabase and connects to Redis
// when enabled.
func openStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (*stores, error) {
	s, err := openDatabase(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if cfg.Redis.Enabled {
		client, err := database.OpenRedis(ctx, &cfg.Redis)
		if err != nil {
			_ = s.close(ctx)
			return nil, err
		}
		s.closers = append(s.closers, func(context.Context) error { return client.Close() })
		s.revocations = auth.NewRedisRevocationStore(client)
		log.Info("Token revocation backed by Redis",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	} else {
		s.revocations = auth.NewInMemoryRevocationStore()
	}

	return s, nil
}

// openDatabase connects to the configured database and brings its schema up
// to date. Redis is left alone.
func openDatabase(ctx context.Context, cfg *config.Config, log *zap.Logger) (*stores, error) {
	s := &stores{}

	if cfg.Database.Driver == config.DriverMongo {
		client, db, err := database.OpenMongo(ctx, &cfg.Database, log)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, client.Disconnect)

		if err := database.EnsureMongoIndexes(ctx, db); err != nil {
			_ = s.close(ctx)
			return nil, err
		}
		s.users = repository.NewMongoUserRepository(db)
		s.projects = repository.NewMongoProjectRepository(db)
		s.tasks = repository.NewMongoTaskRepository(db)
	} else {
		db, err := database.Open(&cfg.Database, log)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func(context.Context) error { return database.Close(db) })

		if err := database.Migrate(db); err != nil {
			_ = s.close(ctx)
			return nil, err
		}
		s.users = repository.NewUserRepository(db)
		s.projects = repository.NewProjectRepository(db)
		s.tasks = repository.NewTaskRepository(db)
	}

	return s, nil
}

// close releases connections in reverse order of opening.
func (s *stores) close(ctx context.Context) error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to close stores: %w", errors.Join(errs...))
	}
	return nil
}
