package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"estatehub/contexts/identity-access/account-service/domain/entities"
	domainerrors "estatehub/contexts/identity-access/account-service/domain/errors"
	policyentities "estatehub/contexts/identity-access/access-policy/domain/entities"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	users map[string]entities.User
}

func NewStore(seed []entities.User) *Store {
	users := make(map[string]entities.User, len(seed))
	for _, user := range seed {
		users[user.UserID] = user
	}
	return &Store{users: users}
}

func (s *Store) CreateUser(_ context.Context, user entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return domainerrors.ErrEmailTaken
		}
	}
	s.users[user.UserID] = user
	return nil
}

func (s *Store) UpdateUser(_ context.Context, user entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.UserID]; !exists {
		return domainerrors.ErrUserNotFound
	}
	for id, existing := range s.users {
		if id != user.UserID && existing.Email == user.Email {
			return domainerrors.ErrEmailTaken
		}
	}
	s.users[user.UserID] = user
	return nil
}

func (s *Store) GetUser(_ context.Context, userID string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[strings.TrimSpace(userID)]
	if !exists {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return user, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return entities.User{}, domainerrors.ErrUserNotFound
}

func (s *Store) ListUsers(_ context.Context, role policyentities.Role) ([]entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]entities.User, 0, len(s.users))
	for _, user := range s.users {
		if role != policyentities.RoleNone && user.Role != role {
			continue
		}
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (s *Store) DeleteUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[userID]; !exists {
		return domainerrors.ErrUserNotFound
	}
	delete(s.users, userID)
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
