package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"estatehub/contexts/listings/property-service/domain/entities"
	domainerrors "estatehub/contexts/listings/property-service/domain/errors"

	"github.com/google/uuid"
)

// ImageStore keeps uploads in process memory.
type ImageStore struct {
	mu     sync.RWMutex
	images map[string]entities.Image
}

func NewImageStore() *ImageStore {
	return &ImageStore{images: make(map[string]entities.Image)}
}

func (s *ImageStore) SaveImage(_ context.Context, image entities.Image) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	image.Ref = uuid.NewString()
	image.Data = slices.Clone(image.Data)
	s.images[image.Ref] = image
	return image.Ref, nil
}

func (s *ImageStore) OpenImage(_ context.Context, ref string) (entities.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	image, exists := s.images[strings.TrimSpace(ref)]
	if !exists {
		return entities.Image{}, domainerrors.ErrImageNotFound
	}
	image.Data = slices.Clone(image.Data)
	return image, nil
}

func (s *ImageStore) DeleteImage(_ context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref = strings.TrimSpace(ref)
	if _, exists := s.images[ref]; !exists {
		return domainerrors.ErrImageNotFound
	}
	delete(s.images, ref)
	return nil
}

func (s *ImageStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images)
}
