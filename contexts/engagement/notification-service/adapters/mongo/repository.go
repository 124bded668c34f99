package mongoadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"estatehub/contexts/engagement/notification-service/domain/entities"
	domainerrors "estatehub/contexts/engagement/notification-service/domain/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

func NewRepository(database *mongo.Database, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		collection: database.Collection("notifications"),
		logger:     logger,
	}
}

func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

func (r *Repository) CreateNotification(ctx context.Context, notification entities.Notification) error {
	_, err := r.collection.InsertOne(ctx, documentFromEntity(notification))
	return err
}

func (r *Repository) GetNotification(ctx context.Context, notificationID string) (entities.Notification, error) {
	var doc notificationDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": strings.TrimSpace(notificationID)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return entities.Notification{}, domainerrors.ErrNotificationNotFound
		}
		return entities.Notification{}, err
	}
	return doc.toEntity(), nil
}

func (r *Repository) ListByRecipient(ctx context.Context, recipientID string) ([]entities.Notification, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"recipient_id": strings.TrimSpace(recipientID)},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	var docs []notificationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	items := make([]entities.Notification, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.toEntity())
	}
	return items, nil
}

func (r *Repository) MarkRead(ctx context.Context, notificationID string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": strings.TrimSpace(notificationID)},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domainerrors.ErrNotificationNotFound
	}
	return nil
}

type notificationDocument struct {
	NotificationID    string    `bson:"_id"`
	RecipientID       string    `bson:"recipient_id"`
	Type              string    `bson:"type"`
	RelatedPropertyID string    `bson:"related_property_id,omitempty"`
	RelatedContactID  string    `bson:"related_contact_id,omitempty"`
	Message           string    `bson:"message"`
	IsRead            bool      `bson:"is_read"`
	CreatedAt         time.Time `bson:"created_at"`
}

func documentFromEntity(notification entities.Notification) notificationDocument {
	return notificationDocument{
		NotificationID:    strings.TrimSpace(notification.NotificationID),
		RecipientID:       strings.TrimSpace(notification.RecipientID),
		Type:              string(notification.Type),
		RelatedPropertyID: notification.RelatedPropertyID,
		RelatedContactID:  notification.RelatedContactID,
		Message:           notification.Message,
		IsRead:            notification.IsRead,
		CreatedAt:         notification.CreatedAt.UTC(),
	}
}

func (d notificationDocument) toEntity() entities.Notification {
	return entities.Notification{
		NotificationID:    d.NotificationID,
		RecipientID:       d.RecipientID,
		Type:              entities.NotificationType(d.Type),
		RelatedPropertyID: d.RelatedPropertyID,
		RelatedContactID:  d.RelatedContactID,
		Message:           d.Message,
		IsRead:            d.IsRead,
		CreatedAt:         d.CreatedAt.UTC(),
	}
}
