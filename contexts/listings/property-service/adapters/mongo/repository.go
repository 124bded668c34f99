package mongoadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"estatehub/contexts/listings/property-service/domain/entities"
	domainerrors "estatehub/contexts/listings/property-service/domain/errors"
	"estatehub/contexts/listings/property-service/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "properties"

type Repository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

func NewRepository(database *mongo.Database, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		collection: database.Collection(collectionName),
		logger:     logger,
	}
}

// EnsureIndexes creates the owner and listing-order indexes.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create property indexes: %w", err)
	}
	return nil
}

func (r *Repository) CreateProperty(ctx context.Context, property entities.Property) error {
	if _, err := r.collection.InsertOne(ctx, documentFromEntity(property)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: duplicate property id", domainerrors.ErrInvalidProperty)
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateProperty(ctx context.Context, property entities.Property) error {
	doc := documentFromEntity(property)
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": doc.PropertyID},
		bson.M{"$set": bson.M{
			"title":       doc.Title,
			"description": doc.Description,
			"type":        doc.Type,
			"price":       doc.Price,
			"location":    doc.Location,
			"size":        doc.Size,
			"size_unit":   doc.SizeUnit,
			"bedrooms":    doc.Bedrooms,
			"amenities":   doc.Amenities,
			"images":      doc.Images,
			"status":      doc.Status,
			"updated_at":  doc.UpdatedAt,
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domainerrors.ErrPropertyNotFound
	}
	return nil
}

func (r *Repository) GetProperty(ctx context.Context, propertyID string) (entities.Property, error) {
	var doc propertyDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": strings.TrimSpace(propertyID)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return entities.Property{}, domainerrors.ErrPropertyNotFound
		}
		return entities.Property{}, err
	}
	return doc.toEntity(), nil
}

func (r *Repository) ListProperties(ctx context.Context, filter ports.PropertyFilter) ([]entities.Property, error) {
	query := bson.M{}
	if ownerID := strings.TrimSpace(filter.OwnerID); ownerID != "" {
		query["owner_id"] = ownerID
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, status := range filter.Statuses {
			statuses = append(statuses, string(status))
		}
		query["status"] = bson.M{"$in": statuses}
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	return r.find(ctx, query, opts)
}

func (r *Repository) DeleteProperty(ctx context.Context, propertyID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": strings.TrimSpace(propertyID)})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domainerrors.ErrPropertyNotFound
	}
	return nil
}

func (r *Repository) DeletePropertiesByOwner(ctx context.Context, ownerID string) ([]entities.Property, error) {
	query := bson.M{"owner_id": strings.TrimSpace(ownerID)}
	removed, err := r.find(ctx, query, options.Find())
	if err != nil {
		return nil, err
	}
	if len(removed) == 0 {
		return removed, nil
	}
	if _, err := r.collection.DeleteMany(ctx, query); err != nil {
		return nil, err
	}
	return removed, nil
}

func (r *Repository) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]entities.Property, error) {
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	var docs []propertyDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	items := make([]entities.Property, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.toEntity())
	}
	return items, nil
}

type propertyDocument struct {
	PropertyID  string    `bson:"_id"`
	OwnerID     string    `bson:"owner_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Type        string    `bson:"type"`
	Price       float64   `bson:"price"`
	Location    string    `bson:"location"`
	Size        float64   `bson:"size"`
	SizeUnit    string    `bson:"size_unit"`
	Bedrooms    *int      `bson:"bedrooms,omitempty"`
	Amenities   []string  `bson:"amenities"`
	Images      []string  `bson:"images"`
	Status      string    `bson:"status"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func documentFromEntity(item entities.Property) propertyDocument {
	amenities := item.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	images := item.Images
	if images == nil {
		images = []string{}
	}
	return propertyDocument{
		PropertyID:  strings.TrimSpace(item.PropertyID),
		OwnerID:     strings.TrimSpace(item.OwnerID),
		Title:       item.Title,
		Description: item.Description,
		Type:        string(item.Type),
		Price:       item.Price,
		Location:    item.Location,
		Size:        item.Size,
		SizeUnit:    string(item.SizeUnit),
		Bedrooms:    item.Bedrooms,
		Amenities:   amenities,
		Images:      images,
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt.UTC(),
		UpdatedAt:   item.UpdatedAt.UTC(),
	}
}

func (d propertyDocument) toEntity() entities.Property {
	return entities.Property{
		PropertyID:  d.PropertyID,
		OwnerID:     d.OwnerID,
		Title:       d.Title,
		Description: d.Description,
		Type:        entities.PropertyType(d.Type),
		Price:       d.Price,
		Location:    d.Location,
		Size:        d.Size,
		SizeUnit:    entities.SizeUnit(d.SizeUnit),
		Bedrooms:    d.Bedrooms,
		Amenities:   d.Amenities,
		Images:      d.Images,
		Status:      entities.PropertyStatus(d.Status),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}
