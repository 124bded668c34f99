package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"estatehub/contexts/listings/property-service/domain/entities"
	domainerrors "estatehub/contexts/listings/property-service/domain/errors"
	"estatehub/contexts/listings/property-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	properties map[string]entities.Property
}

func NewStore(seed []entities.Property) *Store {
	properties := make(map[string]entities.Property, len(seed))
	for _, item := range seed {
		properties[item.PropertyID] = clone(item)
	}
	return &Store{properties: properties}
}

func (s *Store) CreateProperty(_ context.Context, property entities.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.properties[property.PropertyID]; exists {
		return domainerrors.ErrInvalidProperty
	}
	s.properties[property.PropertyID] = clone(property)
	return nil
}

func (s *Store) UpdateProperty(_ context.Context, property entities.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.properties[property.PropertyID]; !exists {
		return domainerrors.ErrPropertyNotFound
	}
	s.properties[property.PropertyID] = clone(property)
	return nil
}

func (s *Store) GetProperty(_ context.Context, propertyID string) (entities.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.properties[strings.TrimSpace(propertyID)]
	if !exists {
		return entities.Property{}, domainerrors.ErrPropertyNotFound
	}
	return clone(item), nil
}

func (s *Store) ListProperties(_ context.Context, filter ports.PropertyFilter) ([]entities.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ownerID := strings.TrimSpace(filter.OwnerID)
	items := make([]entities.Property, 0, len(s.properties))
	for _, item := range s.properties {
		if ownerID != "" && item.OwnerID != ownerID {
			continue
		}
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, item.Status) {
			continue
		}
		items = append(items, clone(item))
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}

func (s *Store) DeleteProperty(_ context.Context, propertyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	propertyID = strings.TrimSpace(propertyID)
	if _, exists := s.properties[propertyID]; !exists {
		return domainerrors.ErrPropertyNotFound
	}
	delete(s.properties, propertyID)
	return nil
}

func (s *Store) DeletePropertiesByOwner(_ context.Context, ownerID string) ([]entities.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := make([]entities.Property, 0)
	for id, item := range s.properties {
		if item.OwnerID != ownerID {
			continue
		}
		removed = append(removed, item)
		delete(s.properties, id)
	}
	return removed, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func clone(item entities.Property) entities.Property {
	item.Amenities = slices.Clone(item.Amenities)
	item.Images = slices.Clone(item.Images)
	if item.Bedrooms != nil {
		bedrooms := *item.Bedrooms
		item.Bedrooms = &bedrooms
	}
	return item
}
