package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"estatehub/contexts/engagement/notification-service/domain/entities"
	domainerrors "estatehub/contexts/engagement/notification-service/domain/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func Models() []any {
	return []any{&notificationModel{}}
}

func (r *Repository) CreateNotification(ctx context.Context, notification entities.Notification) error {
	row := notificationModel{
		NotificationID:    strings.TrimSpace(notification.NotificationID),
		RecipientID:       strings.TrimSpace(notification.RecipientID),
		Type:              string(notification.Type),
		RelatedPropertyID: nullable(notification.RelatedPropertyID),
		RelatedContactID:  nullable(notification.RelatedContactID),
		Message:           notification.Message,
		IsRead:            notification.IsRead,
		CreatedAt:         notification.CreatedAt.UTC(),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetNotification(ctx context.Context, notificationID string) (entities.Notification, error) {
	var row notificationModel
	err := r.db.WithContext(ctx).
		Where("notification_id = ?", strings.TrimSpace(notificationID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Notification{}, domainerrors.ErrNotificationNotFound
		}
		return entities.Notification{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListByRecipient(ctx context.Context, recipientID string) ([]entities.Notification, error) {
	var rows []notificationModel
	if err := r.db.WithContext(ctx).
		Where("recipient_id = ?", strings.TrimSpace(recipientID)).
		Order("created_at DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Notification, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) MarkRead(ctx context.Context, notificationID string) error {
	result := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("notification_id = ?", strings.TrimSpace(notificationID)).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotificationNotFound
	}
	return nil
}

type notificationModel struct {
	NotificationID    string    `gorm:"column:notification_id;primaryKey"`
	RecipientID       string    `gorm:"column:recipient_id;index"`
	Type              string    `gorm:"column:type"`
	RelatedPropertyID *string   `gorm:"column:related_property_id"`
	RelatedContactID  *string   `gorm:"column:related_contact_id"`
	Message           string    `gorm:"column:message"`
	IsRead            bool      `gorm:"column:is_read;default:false"`
	CreatedAt         time.Time `gorm:"column:created_at"`
}

func (notificationModel) TableName() string {
	return "notifications"
}

func (m notificationModel) toEntity() entities.Notification {
	item := entities.Notification{
		NotificationID: m.NotificationID,
		RecipientID:    m.RecipientID,
		Type:           entities.NotificationType(m.Type),
		Message:        m.Message,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt.UTC(),
	}
	if m.RelatedPropertyID != nil {
		item.RelatedPropertyID = *m.RelatedPropertyID
	}
	if m.RelatedContactID != nil {
		item.RelatedContactID = *m.RelatedContactID
	}
	return item
}

func nullable(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
