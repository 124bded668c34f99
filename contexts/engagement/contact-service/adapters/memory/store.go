package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"estatehub/contexts/engagement/contact-service/domain/entities"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	contacts []entities.Contact
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) CreateContact(_ context.Context, contact entities.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contacts = append(s.contacts, contact)
	return nil
}

func (s *Store) ListContacts(_ context.Context) ([]entities.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Contact, len(s.contacts))
	copy(items, s.contacts)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
