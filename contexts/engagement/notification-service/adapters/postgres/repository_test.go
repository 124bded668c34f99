package postgresadapter

import (
	"context"
	"testing"
	"time"

	"estatehub/contexts/engagement/notification-service/domain/entities"
	domainerrors "estatehub/contexts/engagement/notification-service/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestNotificationRepository(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()
	require.NoError(t, db.AutoMigrate(Models()...))

	repo := NewRepository(db, nil)
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateNotification(ctx, entities.NewNotification("n1", "a1", entities.PropertySubject("p1", "Loft"), base)))
	require.NoError(t, repo.CreateNotification(ctx, entities.NewNotification("n2", "a1", entities.ContactSubject("c1", "Jane"), base.Add(time.Minute))))
	require.NoError(t, repo.CreateNotification(ctx, entities.NewNotification("n3", "a2", entities.ContactSubject("c1", "Jane"), base)))

	items, err := repo.ListByRecipient(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "n2", items[0].NotificationID)
	assert.Equal(t, "c1", items[0].RelatedContactID)
	assert.Empty(t, items[0].RelatedPropertyID)

	require.NoError(t, repo.MarkRead(ctx, "n1"))
	got, err := repo.GetNotification(ctx, "n1")
	require.NoError(t, err)
	assert.True(t, got.IsRead)
	assert.Equal(t, "p1", got.RelatedPropertyID)

	assert.ErrorIs(t, repo.MarkRead(ctx, "missing"), domainerrors.ErrNotificationNotFound)
	_, err = repo.GetNotification(ctx, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotificationNotFound)
}
