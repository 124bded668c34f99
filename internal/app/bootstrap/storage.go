package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	contactmemory "estatehub/contexts/engagement/contact-service/adapters/memory"
	contactmongo "estatehub/contexts/engagement/contact-service/adapters/mongo"
	contactpostgres "estatehub/contexts/engagement/contact-service/adapters/postgres"
	contactports "estatehub/contexts/engagement/contact-service/ports"
	notificationmemory "estatehub/contexts/engagement/notification-service/adapters/memory"
	notificationmongo "estatehub/contexts/engagement/notification-service/adapters/mongo"
	notificationpostgres "estatehub/contexts/engagement/notification-service/adapters/postgres"
	notificationports "estatehub/contexts/engagement/notification-service/ports"
	accountmemory "estatehub/contexts/identity-access/account-service/adapters/memory"
	accountmongo "estatehub/contexts/identity-access/account-service/adapters/mongo"
	accountpostgres "estatehub/contexts/identity-access/account-service/adapters/postgres"
	accountports "estatehub/contexts/identity-access/account-service/ports"
	propertygridfs "estatehub/contexts/listings/property-service/adapters/gridfs"
	propertymemory "estatehub/contexts/listings/property-service/adapters/memory"
	propertymongo "estatehub/contexts/listings/property-service/adapters/mongo"
	propertypostgres "estatehub/contexts/listings/property-service/adapters/postgres"
	propertyports "estatehub/contexts/listings/property-service/ports"
	"estatehub/internal/platform/config"
	"estatehub/internal/platform/db"
	"estatehub/internal/platform/docstore"
)

// Storage is the set of repositories for one storage driver.
type Storage struct {
	Driver        string
	Accounts      accountports.Repository
	Properties    propertyports.Repository
	Images        propertyports.ImageStore
	Notifications notificationports.Repository
	Contacts      contactports.Repository

	postgres *db.Postgres
	mongo    *docstore.Mongo
	indexers []func(context.Context) error
}

// NewMemoryStorage keeps everything in process memory.
func NewMemoryStorage() *Storage {
	return &Storage{
		Driver:        config.StorageMemory,
		Accounts:      accountmemory.NewStore(nil),
		Properties:    propertymemory.NewStore(nil),
		Images:        propertymemory.NewImageStore(),
		Notifications: notificationmemory.NewStore(),
		Contacts:      contactmemory.NewStore(),
	}
}

func OpenStorage(cfg config.Config, logger *slog.Logger) (*Storage, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return NewMemoryStorage(), nil
	case config.StoragePostgres:
		pg, err := db.Connect(cfg.PostgresDSN, db.DefaultPool)
		if err != nil {
			return nil, err
		}
		return &Storage{
			Driver:        config.StoragePostgres,
			Accounts:      accountpostgres.NewRepository(pg.DB, logger),
			Properties:    propertypostgres.NewRepository(pg.DB, logger),
			Images:        propertypostgres.NewImageStore(pg.DB),
			Notifications: notificationpostgres.NewRepository(pg.DB, logger),
			Contacts:      contactpostgres.NewRepository(pg.DB, logger),
			postgres:      pg,
		}, nil
	case config.StorageMongo:
		mg, err := docstore.Connect(cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		images, err := propertygridfs.NewImageStore(mg.Database)
		if err != nil {
			_ = mg.Close()
			return nil, err
		}
		accounts := accountmongo.NewRepository(mg.Database, logger)
		properties := propertymongo.NewRepository(mg.Database, logger)
		notifications := notificationmongo.NewRepository(mg.Database, logger)
		contacts := contactmongo.NewRepository(mg.Database, logger)
		return &Storage{
			Driver:        config.StorageMongo,
			Accounts:      accounts,
			Properties:    properties,
			Images:        images,
			Notifications: notifications,
			Contacts:      contacts,
			mongo:         mg,
			indexers: []func(context.Context) error{
				accounts.EnsureIndexes,
				properties.EnsureIndexes,
				notifications.EnsureIndexes,
				contacts.EnsureIndexes,
			},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// Migrate creates tables (postgres) or indexes (mongo). Memory storage needs nothing.
func (s *Storage) Migrate(ctx context.Context) error {
	if s.postgres != nil {
		var models []any
		models = append(models, accountpostgres.Models()...)
		models = append(models, propertypostgres.Models()...)
		models = append(models, notificationpostgres.Models()...)
		models = append(models, contactpostgres.Models()...)
		if err := s.postgres.Migrate(ctx, models...); err != nil {
			return err
		}
	}
	for _, ensure := range s.indexers {
		if err := ensure(ctx); err != nil {
			return fmt.Errorf("ensure mongo indexes: %w", err)
		}
	}
	return nil
}

func (s *Storage) Close() error {
	var errs []error
	if s.postgres != nil {
		errs = append(errs, s.postgres.Close())
	}
	if s.mongo != nil {
		errs = append(errs, s.mongo.Close())
	}
	return errors.Join(errs...)
}
