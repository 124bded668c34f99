package postgresadapter

import (
	"context"
	"errors"
	"strings"
	"time"

	"estatehub/contexts/listings/property-service/domain/entities"
	domainerrors "estatehub/contexts/listings/property-service/domain/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImageStore keeps uploads in a bytea table next to the listings.
type ImageStore struct {
	db *gorm.DB
}

func NewImageStore(db *gorm.DB) *ImageStore {
	return &ImageStore{db: db}
}

func (s *ImageStore) SaveImage(ctx context.Context, image entities.Image) (string, error) {
	row := imageModel{
		ImageRef:    uuid.NewString(),
		Filename:    image.Filename,
		ContentType: image.ContentType,
		Data:        image.Data,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", err
	}
	return row.ImageRef, nil
}

func (s *ImageStore) OpenImage(ctx context.Context, ref string) (entities.Image, error) {
	var row imageModel
	err := s.db.WithContext(ctx).Where("image_ref = ?", strings.TrimSpace(ref)).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Image{}, domainerrors.ErrImageNotFound
		}
		return entities.Image{}, err
	}
	return entities.Image{
		Ref:         row.ImageRef,
		Filename:    row.Filename,
		ContentType: row.ContentType,
		Data:        row.Data,
	}, nil
}

func (s *ImageStore) DeleteImage(ctx context.Context, ref string) error {
	result := s.db.WithContext(ctx).Where("image_ref = ?", strings.TrimSpace(ref)).Delete(&imageModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrImageNotFound
	}
	return nil
}

type imageModel struct {
	ImageRef    string    `gorm:"column:image_ref;primaryKey"`
	Filename    string    `gorm:"column:filename"`
	ContentType string    `gorm:"column:content_type"`
	Data        []byte    `gorm:"column:data"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (imageModel) TableName() string {
	return "property_images"
}
