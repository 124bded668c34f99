package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"estatehub/contexts/engagement/notification-service/domain/entities"
	domainerrors "estatehub/contexts/engagement/notification-service/domain/errors"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	notifications map[string]entities.Notification
}

func NewStore() *Store {
	return &Store{notifications: make(map[string]entities.Notification)}
}

func (s *Store) CreateNotification(_ context.Context, notification entities.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications[notification.NotificationID] = notification
	return nil
}

func (s *Store) GetNotification(_ context.Context, notificationID string) (entities.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.notifications[strings.TrimSpace(notificationID)]
	if !exists {
		return entities.Notification{}, domainerrors.ErrNotificationNotFound
	}
	return item, nil
}

func (s *Store) ListByRecipient(_ context.Context, recipientID string) ([]entities.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Notification, 0)
	for _, item := range s.notifications {
		if item.RecipientID == recipientID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) MarkRead(_ context.Context, notificationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.notifications[notificationID]
	if !exists {
		return domainerrors.ErrNotificationNotFound
	}
	item.IsRead = true
	s.notifications[notificationID] = item
	return nil
}

// All returns every stored notification, for assertions and admin tooling.
func (s *Store) All() []entities.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Notification, 0, len(s.notifications))
	for _, item := range s.notifications {
		items = append(items, item)
	}
	return items
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
