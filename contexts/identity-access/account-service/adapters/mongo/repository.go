package mongoadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"estatehub/contexts/identity-access/account-service/domain/entities"
	domainerrors "estatehub/contexts/identity-access/account-service/domain/errors"
	policyentities "estatehub/contexts/identity-access/access-policy/domain/entities"

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
		collection: database.Collection("users"),
		logger:     logger,
	}
}

// EnsureIndexes enforces unique emails at the storage layer.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	})
	return err
}

func (r *Repository) CreateUser(ctx context.Context, user entities.User) error {
	if _, err := r.collection.InsertOne(ctx, documentFromEntity(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainerrors.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateUser(ctx context.Context, user entities.User) error {
	doc := documentFromEntity(user)
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": doc.UserID}, bson.M{"$set": bson.M{
		"full_name":     doc.FullName,
		"email":         doc.Email,
		"phone":         doc.Phone,
		"password_hash": doc.PasswordHash,
		"role":          doc.Role,
		"avatar":        doc.Avatar,
		"updated_at":    doc.UpdatedAt,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainerrors.ErrEmailTaken
		}
		return err
	}
	if result.MatchedCount == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *Repository) GetUser(ctx context.Context, userID string) (entities.User, error) {
	return r.findOne(ctx, bson.M{"_id": strings.TrimSpace(userID)})
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *Repository) ListUsers(ctx context.Context, role policyentities.Role) ([]entities.User, error) {
	query := bson.M{}
	if role != policyentities.RoleNone {
		query["role"] = role.String()
	}
	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	users := make([]entities.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.toEntity())
	}
	return users, nil
}

func (r *Repository) DeleteUser(ctx context.Context, userID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": strings.TrimSpace(userID)})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *Repository) findOne(ctx context.Context, query bson.M) (entities.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, query).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return doc.toEntity(), nil
}

type userDocument struct {
	UserID       string    `bson:"_id"`
	FullName     string    `bson:"full_name"`
	Email        string    `bson:"email"`
	Phone        string    `bson:"phone"`
	PasswordHash string    `bson:"password_hash"`
	Role         string    `bson:"role"`
	Avatar       string    `bson:"avatar,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func documentFromEntity(user entities.User) userDocument {
	return userDocument{
		UserID:       strings.TrimSpace(user.UserID),
		FullName:     user.FullName,
		Email:        strings.ToLower(strings.TrimSpace(user.Email)),
		Phone:        user.Phone,
		PasswordHash: user.PasswordHash,
		Role:         user.Role.String(),
		Avatar:       user.Avatar,
		CreatedAt:    user.CreatedAt.UTC(),
		UpdatedAt:    user.UpdatedAt.UTC(),
	}
}

func (d userDocument) toEntity() entities.User {
	role, _ := policyentities.ParseRole(d.Role)
	return entities.User{
		UserID:       d.UserID,
		FullName:     d.FullName,
		Email:        d.Email,
		Phone:        d.Phone,
		PasswordHash: d.PasswordHash,
		Role:         role,
		Avatar:       d.Avatar,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}
