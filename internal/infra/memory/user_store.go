package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type UserStore struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewUserStore(seed ...model.User) *UserStore {
	s := &UserStore{users: map[string]model.User{}}
	for _, u := range seed {
		s.users[u.ID] = u
	}
	return s
}

func (s *UserStore) Create(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repo.ErrEmailTaken
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) FindByID(ctx context.Context, userID string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, repo.ErrUserNotFound
	}
	return &u, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, repo.ErrUserNotFound
}

func (s *UserStore) Update(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return repo.ErrUserNotFound
	}
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return repo.ErrUserNotFound
	}
	delete(s.users, userID)
	return nil
}

func (s *UserStore) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.User{}
	for _, u := range s.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	slices.SortFunc(out, func(a, b model.User) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (s *UserStore) IncrementTokenVersion(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return repo.ErrUserNotFound
	}
	u.TokenVersion++
	s.users[userID] = u
	return nil
}

var _ repo.UserRepository = (*UserStore)(nil)
