package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"estatehub/contexts/listings/property-service/domain/entities"
	domainerrors "estatehub/contexts/listings/property-service/domain/errors"
	"estatehub/contexts/listings/property-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
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
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Models lists the tables owned by this adapter for schema migration.
func Models() []any {
	return []any{&propertyModel{}, &imageModel{}}
}

func (r *Repository) CreateProperty(ctx context.Context, property entities.Property) error {
	row, err := propertyModelFromEntity(property)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: duplicate property id", domainerrors.ErrInvalidProperty)
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateProperty(ctx context.Context, property entities.Property) error {
	updates, err := propertyUpdatesFromEntity(property)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&propertyModel{}).
		Where("property_id = ?", strings.TrimSpace(property.PropertyID)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPropertyNotFound
	}
	return nil
}

func (r *Repository) GetProperty(ctx context.Context, propertyID string) (entities.Property, error) {
	var row propertyModel
	err := r.db.WithContext(ctx).
		Where("property_id = ?", strings.TrimSpace(propertyID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Property{}, domainerrors.ErrPropertyNotFound
		}
		return entities.Property{}, err
	}
	return row.toEntity()
}

func (r *Repository) ListProperties(ctx context.Context, filter ports.PropertyFilter) ([]entities.Property, error) {
	tx := r.db.WithContext(ctx).Model(&propertyModel{})
	if ownerID := strings.TrimSpace(filter.OwnerID); ownerID != "" {
		tx = tx.Where("owner_id = ?", ownerID)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, status := range filter.Statuses {
			statuses = append(statuses, string(status))
		}
		tx = tx.Where("status IN ?", statuses)
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	var rows []propertyModel
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows)
}

func (r *Repository) DeleteProperty(ctx context.Context, propertyID string) error {
	result := r.db.WithContext(ctx).
		Where("property_id = ?", strings.TrimSpace(propertyID)).
		Delete(&propertyModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPropertyNotFound
	}
	return nil
}

func (r *Repository) DeletePropertiesByOwner(ctx context.Context, ownerID string) ([]entities.Property, error) {
	var rows []propertyModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", strings.TrimSpace(ownerID)).Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Where("owner_id = ?", strings.TrimSpace(ownerID)).Delete(&propertyModel{}).Error
	})
	if err != nil {
		return nil, err
	}
	r.logger.Debug("owner properties removed",
		"event", "property_owner_rows_deleted",
		"module", "listings/property-service",
		"layer", "adapter",
		"owner_id", ownerID,
		"count", len(rows),
	)
	return toEntities(rows)
}

type propertyModel struct {
	PropertyID  string         `gorm:"column:property_id;primaryKey"`
	OwnerID     string         `gorm:"column:owner_id;index"`
	Title       string         `gorm:"column:title"`
	Description string         `gorm:"column:description"`
	Type        string         `gorm:"column:type"`
	Price       float64        `gorm:"column:price"`
	Location    string         `gorm:"column:location"`
	Size        float64        `gorm:"column:size"`
	SizeUnit    string         `gorm:"column:size_unit"`
	Bedrooms    *int           `gorm:"column:bedrooms"`
	Amenities   datatypes.JSON `gorm:"column:amenities"`
	Images      datatypes.JSON `gorm:"column:images"`
	Status      string         `gorm:"column:status;index"`
	CreatedAt   time.Time      `gorm:"column:created_at;index"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (propertyModel) TableName() string {
	return "properties"
}

func propertyModelFromEntity(item entities.Property) (propertyModel, error) {
	amenities, err := encodeList(item.Amenities)
	if err != nil {
		return propertyModel{}, err
	}
	images, err := encodeList(item.Images)
	if err != nil {
		return propertyModel{}, err
	}
	return propertyModel{
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
	}, nil
}

func propertyUpdatesFromEntity(item entities.Property) (map[string]any, error) {
	amenities, err := encodeList(item.Amenities)
	if err != nil {
		return nil, err
	}
	images, err := encodeList(item.Images)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"title":       item.Title,
		"description": item.Description,
		"type":        string(item.Type),
		"price":       item.Price,
		"location":    item.Location,
		"size":        item.Size,
		"size_unit":   string(item.SizeUnit),
		"bedrooms":    item.Bedrooms,
		"amenities":   amenities,
		"images":      images,
		"status":      string(item.Status),
		"updated_at":  item.UpdatedAt.UTC(),
	}, nil
}

func (m propertyModel) toEntity() (entities.Property, error) {
	amenities, err := decodeList(m.Amenities)
	if err != nil {
		return entities.Property{}, err
	}
	images, err := decodeList(m.Images)
	if err != nil {
		return entities.Property{}, err
	}
	return entities.Property{
		PropertyID:  m.PropertyID,
		OwnerID:     m.OwnerID,
		Title:       m.Title,
		Description: m.Description,
		Type:        entities.PropertyType(m.Type),
		Price:       m.Price,
		Location:    m.Location,
		Size:        m.Size,
		SizeUnit:    entities.SizeUnit(m.SizeUnit),
		Bedrooms:    m.Bedrooms,
		Amenities:   amenities,
		Images:      images,
		Status:      entities.PropertyStatus(m.Status),
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}, nil
}

func toEntities(rows []propertyModel) ([]entities.Property, error) {
	items := make([]entities.Property, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func encodeList(values []string) (datatypes.JSON, error) {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func decodeList(raw datatypes.JSON) ([]string, error) {
	values := []string{}
	if len(raw) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("decode property list column: %w", err)
	}
	return values, nil
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
