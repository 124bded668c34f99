package postgresadapter

import (
	"context"
	"log/slog"
	"time"

	"estatehub/contexts/engagement/contact-service/domain/entities"

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
	return []any{&contactModel{}}
}

func (r *Repository) CreateContact(ctx context.Context, contact entities.Contact) error {
	row := contactModel{
		ContactID: contact.ContactID,
		Name:      contact.Name,
		Email:     contact.Email,
		Message:   contact.Message,
		CreatedAt: contact.CreatedAt.UTC(),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListContacts(ctx context.Context) ([]entities.Contact, error) {
	var rows []contactModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Contact, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.Contact{
			ContactID: row.ContactID,
			Name:      row.Name,
			Email:     row.Email,
			Message:   row.Message,
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

type contactModel struct {
	ContactID string    `gorm:"column:contact_id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email"`
	Message   string    `gorm:"column:message"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

func (contactModel) TableName() string {
	return "contacts"
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
