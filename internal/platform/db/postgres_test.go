package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type widget struct {
	ID   string `gorm:"primaryKey"`
	Name string
}

func openSQLite(t *testing.T) *Postgres {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	return &Postgres{DB: gdb}
}

func TestConnectRequiresDSN(t *testing.T) {
	_, err := Connect("", DefaultPool)
	assert.Error(t, err)
}

func TestApplyPool(t *testing.T) {
	pg := openSQLite(t)
	t.Cleanup(func() { _ = pg.Close() })

	require.NoError(t, pg.applyPool(Pool{MaxOpenConns: 3}))
	sqlDB, err := pg.DB.DB()
	require.NoError(t, err)
	assert.Equal(t, 3, sqlDB.Stats().MaxOpenConnections)

	require.NoError(t, pg.applyPool(Pool{}))
	assert.Equal(t, 3, sqlDB.Stats().MaxOpenConnections)
}

func TestMigratePingAndClose(t *testing.T) {
	pg := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, pg.Ping(ctx))
	require.NoError(t, pg.Migrate(ctx, &widget{}))
	assert.True(t, pg.DB.Migrator().HasTable(&widget{}))
	assert.NoError(t, pg.Close())
	assert.Error(t, pg.Ping(ctx))

	var nilPG *Postgres
	assert.NoError(t, nilPG.Close())
}
