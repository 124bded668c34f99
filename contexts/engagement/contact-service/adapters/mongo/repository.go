package mongoadapter

import (
	"context"
	"log/slog"
	"time"

	"estatehub/contexts/engagement/contact-service/domain/entities"

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
	return &Repository{collection: database.Collection("contacts"), logger: logger}
}

func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	return err
}

func (r *Repository) CreateContact(ctx context.Context, contact entities.Contact) error {
	_, err := r.collection.InsertOne(ctx, documentFromEntity(contact))
	return err
}

func (r *Repository) ListContacts(ctx context.Context) ([]entities.Contact, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var docs []contactDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	items := make([]entities.Contact, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.toEntity())
	}
	return items, nil
}

type contactDocument struct {
	ContactID string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Message   string    `bson:"message"`
	CreatedAt time.Time `bson:"created_at"`
}

func documentFromEntity(contact entities.Contact) contactDocument {
	return contactDocument{
		ContactID: contact.ContactID,
		Name:      contact.Name,
		Email:     contact.Email,
		Message:   contact.Message,
		CreatedAt: contact.CreatedAt.UTC(),
	}
}

func (d contactDocument) toEntity() entities.Contact {
	return entities.Contact{
		ContactID: d.ContactID,
		Name:      d.Name,
		Email:     d.Email,
		Message:   d.Message,
		CreatedAt: d.CreatedAt.UTC(),
	}
}
