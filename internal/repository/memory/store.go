package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/showtrack/showtrack-go/internal/model"
	"github.com/showtrack/showtrack-go/internal/repository"
)

// Store keeps users in process memory. Name and email are indexed by a
// folded shadow key to match the collation-insensitive behaviour of the
// database-backed stores. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	users   map[string]*model.User
	byName  map[string]string
	byEmail map[string]string
	byToken map[string]string
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		users:   make(map[string]*model.User),
		byName:  make(map[string]string),
		byEmail: make(map[string]string),
		byToken: make(map[string]string),
	}
}

// Create inserts user, assigning its ID. Email uniqueness is checked before
// name uniqueness.
func (s *Store) Create(_ context.Context, user *model.User) error {
	nameKey, emailKey := foldKey(user.Name), foldKey(user.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[emailKey]; ok {
		return repository.ErrDuplicateEmail
	}
	if _, ok := s.byName[nameKey]; ok {
		return repository.ErrDuplicateName
	}
	if _, ok := s.byToken[user.AccessToken]; ok {
		return repository.ErrDuplicateToken
	}

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	user.Watchlist = []model.ShowEntry{}

	stored := *user
	s.users[user.ID] = &stored
	s.byName[nameKey] = user.ID
	s.byEmail[emailKey] = user.ID
	s.byToken[user.AccessToken] = user.ID

	return nil
}

// GetByID retrieves a user by ID.
func (s *Store) GetByID(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(id)
}

// GetByName retrieves a user by name, ignoring case and accents.
func (s *Store) GetByName(_ context.Context, name string) (*model.User, error) {
	key := foldKey(name)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(s.byName[key])
}

// GetByEmail retrieves a user by email, ignoring case and accents.
func (s *Store) GetByEmail(_ context.Context, email string) (*model.User, error) {
	key := foldKey(email)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(s.byEmail[key])
}

// GetByAccessToken retrieves the user owning token, compared exactly.
func (s *Store) GetByAccessToken(_ context.Context, token string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(s.byToken[token])
}

// DeleteAll removes every user and returns how many were removed.
func (s *Store) DeleteAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(len(s.users))
	s.users = make(map[string]*model.User)
	s.byName = make(map[string]string)
	s.byEmail = make(map[string]string)
	s.byToken = make(map[string]string)
	return n, nil
}

// List returns a copy of the user's watchlist in insertion order.
func (s *Store) List(_ context.Context, userID string) ([]model.ShowEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return slices.Clone(u.Watchlist), nil
}

// Append adds entry to the end of the watchlist unless its show is present.
func (s *Store) Append(_ context.Context, userID string, entry model.ShowEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	if containsShow(u.Watchlist, entry.ShowID) {
		return repository.ErrDuplicateShow
	}

	u.Watchlist = append(u.Watchlist, entry)
	return nil
}

// Remove drops every entry for showID and returns the resulting watchlist.
func (s *Store) Remove(_ context.Context, userID string, showID model.ShowID) ([]model.ShowEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	u.Watchlist = slices.DeleteFunc(u.Watchlist, func(e model.ShowEntry) bool {
		return e.ShowID == showID
	})
	return slices.Clone(u.Watchlist), nil
}

// lookup must be called with s.mu held.
func (s *Store) lookup(id string) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	out := *u
	out.Watchlist = slices.Clone(u.Watchlist)
	return &out, nil
}

func containsShow(entries []model.ShowEntry, showID model.ShowID) bool {
	return slices.ContainsFunc(entries, func(e model.ShowEntry) bool {
		return e.ShowID == showID
	})
}
