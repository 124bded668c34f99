package postgresadapter

import (
	"context"
	"fmt"
	"testing"
	"time"

	"estatehub/contexts/listings/property-service/domain/entities"
	domainerrors "estatehub/contexts/listings/property-service/domain/errors"
	"estatehub/contexts/listings/property-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(Models()...))
	return db
}

func sampleProperty(id, owner string, status entities.PropertyStatus, createdAt time.Time) entities.Property {
	bedrooms := 3
	return entities.Property{
		PropertyID:  id,
		OwnerID:     owner,
		Title:       "Harbour Flat " + id,
		Description: "Bright flat",
		Type:        entities.PropertyTypeApartment,
		Price:       420000,
		Location:    "Harbour",
		Size:        90,
		SizeUnit:    entities.SizeUnitSqm,
		Bedrooms:    &bedrooms,
		Amenities:   []string{"Gym", "Elevator"},
		Images:      []string{"img-1"},
		Status:      status,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	repo := NewRepository(openTestDB(t), nil)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateProperty(ctx, sampleProperty("p1", "s1", entities.PropertyStatusPending, now)))

	got, err := repo.GetProperty(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Gym", "Elevator"}, got.Amenities)
	assert.Equal(t, []string{"img-1"}, got.Images)
	require.NotNil(t, got.Bedrooms)
	assert.Equal(t, 3, *got.Bedrooms)

	got.Status = entities.PropertyStatusActive
	got.Images = []string{"img-2", "img-3"}
	got.Bedrooms = nil
	require.NoError(t, repo.UpdateProperty(ctx, got))

	updated, err := repo.GetProperty(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, entities.PropertyStatusActive, updated.Status)
	assert.Equal(t, []string{"img-2", "img-3"}, updated.Images)
	assert.Nil(t, updated.Bedrooms)
}

func TestRepositoryRejectsDuplicateID(t *testing.T) {
	repo := NewRepository(openTestDB(t), nil)
	ctx := context.Background()
	property := sampleProperty("p1", "s1", entities.PropertyStatusPending, time.Now().UTC())

	require.NoError(t, repo.CreateProperty(ctx, property))
	err := repo.CreateProperty(ctx, property)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidProperty)
	assert.Contains(t, err.Error(), "duplicate property id")
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("create: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(gorm.ErrRecordNotFound))
}

func TestRepositoryNotFound(t *testing.T) {
	repo := NewRepository(openTestDB(t), nil)
	ctx := context.Background()

	_, err := repo.GetProperty(ctx, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrPropertyNotFound)
	assert.ErrorIs(t, repo.UpdateProperty(ctx, sampleProperty("missing", "s1", entities.PropertyStatusPending, time.Now())), domainerrors.ErrPropertyNotFound)
	assert.ErrorIs(t, repo.DeleteProperty(ctx, "missing"), domainerrors.ErrPropertyNotFound)
}

func TestRepositoryListFilters(t *testing.T) {
	repo := NewRepository(openTestDB(t), nil)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateProperty(ctx, sampleProperty("p1", "s1", entities.PropertyStatusActive, base)))
	require.NoError(t, repo.CreateProperty(ctx, sampleProperty("p2", "s1", entities.PropertyStatusPending, base.Add(time.Hour))))
	require.NoError(t, repo.CreateProperty(ctx, sampleProperty("p3", "s2", entities.PropertyStatusActive, base.Add(2*time.Hour))))

	owned, err := repo.ListProperties(ctx, ports.PropertyFilter{OwnerID: "s1"})
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, "p2", owned[0].PropertyID)

	active, err := repo.ListProperties(ctx, ports.PropertyFilter{
		Statuses: []entities.PropertyStatus{entities.PropertyStatusActive},
		Limit:    1,
	})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "p3", active[0].PropertyID)
}

func TestRepositoryDeleteByOwner(t *testing.T) {
	repo := NewRepository(openTestDB(t), nil)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.CreateProperty(ctx, sampleProperty("p1", "s1", entities.PropertyStatusActive, now)))
	require.NoError(t, repo.CreateProperty(ctx, sampleProperty("p2", "s1", entities.PropertyStatusPending, now)))
	require.NoError(t, repo.CreateProperty(ctx, sampleProperty("p3", "s2", entities.PropertyStatusActive, now)))

	removed, err := repo.DeletePropertiesByOwner(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, removed, 2)

	remaining, err := repo.ListProperties(ctx, ports.PropertyFilter{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "s2", remaining[0].OwnerID)
}
