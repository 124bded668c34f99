package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"estatehub/contexts/identity-access/account-service/domain/entities"
	domainerrors "estatehub/contexts/identity-access/account-service/domain/errors"
	policyentities "estatehub/contexts/identity-access/access-policy/domain/entities"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
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
	return []any{&userModel{}}
}

func (r *Repository) CreateUser(ctx context.Context, user entities.User) error {
	row := userModelFromEntity(user)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateUser(ctx context.Context, user entities.User) error {
	result := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("user_id = ?", strings.TrimSpace(user.UserID)).
		Updates(map[string]any{
			"full_name":     user.FullName,
			"email":         user.Email,
			"phone":         user.Phone,
			"password_hash": user.PasswordHash,
			"role":          user.Role.String(),
			"avatar":        user.Avatar,
			"updated_at":    user.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerrors.ErrEmailTaken
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *Repository) GetUser(ctx context.Context, userID string) (entities.User, error) {
	return r.first(ctx, "user_id = ?", strings.TrimSpace(userID))
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	return r.first(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *Repository) ListUsers(ctx context.Context, role policyentities.Role) ([]entities.User, error) {
	tx := r.db.WithContext(ctx).Model(&userModel{})
	if role != policyentities.RoleNone {
		tx = tx.Where("role = ?", role.String())
	}
	var rows []userModel
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	users := make([]entities.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toEntity())
	}
	return users, nil
}

func (r *Repository) DeleteUser(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", strings.TrimSpace(userID)).
		Delete(&userModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *Repository) first(ctx context.Context, query string, arg string) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

type userModel struct {
	UserID       string    `gorm:"column:user_id;primaryKey"`
	FullName     string    `gorm:"column:full_name"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	Phone        string    `gorm:"column:phone"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role;index"`
	Avatar       string    `gorm:"column:avatar"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string {
	return "users"
}

func userModelFromEntity(user entities.User) userModel {
	return userModel{
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

func (m userModel) toEntity() entities.User {
	role, _ := policyentities.ParseRole(m.Role)
	return entities.User{
		UserID:       m.UserID,
		FullName:     m.FullName,
		Email:        m.Email,
		Phone:        m.Phone,
		PasswordHash: m.PasswordHash,
		Role:         role,
		Avatar:       m.Avatar,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

// isUniqueViolation matches both the translated gorm sentinel and a raw
// postgres 23505, for handles opened without TranslateError.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
