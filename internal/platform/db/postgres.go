package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Postgres is the gorm handle every context's postgres adapter shares.
type Postgres struct {
	DB *gorm.DB
}

// Pool bounds the database/sql connection pool. Zero fields keep the
// database/sql defaults.
type Pool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

var DefaultPool = Pool{
	MaxOpenConns:    20,
	MaxIdleConns:    5,
	ConnMaxLifetime: 30 * time.Minute,
}

// Connect opens dsn with driver errors translated to gorm sentinels, so
// adapters can match gorm.ErrDuplicatedKey.
func Connect(dsn string, pool Pool) (*Postgres, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open gorm postgres: %w", err)
	}
	pg := &Postgres{DB: gdb}
	if err := pg.applyPool(pool); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pg.Ping(ctx); err != nil {
		_ = pg.Close()
		return nil, err
	}
	return pg, nil
}

func (p *Postgres) applyPool(pool Pool) error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return fmt.Errorf("resolve sql db handle: %w", err)
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
	return nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return fmt.Errorf("resolve sql db handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}

// Migrate creates or updates the tables behind models.
func (p *Postgres) Migrate(ctx context.Context, models ...any) error {
	if err := p.DB.WithContext(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func (p *Postgres) Close() error {
	if p == nil || p.DB == nil {
		return nil
	}
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
