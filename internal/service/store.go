package service

import (
	"context"

	"github.com/showtrack/showtrack-go/internal/model"
)

// UserStore persists user accounts. GetByName and GetByEmail ignore case
// and diacritics; GetByAccessToken is exact. Lookups of unknown users
// return repository.ErrUserNotFound.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByName(ctx context.Context, name string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByAccessToken(ctx context.Context, token string) (*model.User, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// WatchlistStore persists per-user watchlists in insertion order.
// Append returns repository.ErrDuplicateShow when the show is present.
type WatchlistStore interface {
	List(ctx context.Context, userID string) ([]model.ShowEntry, error)
	Append(ctx context.Context, userID string, entry model.ShowEntry) error
	Remove(ctx context.Context, userID string, showID model.ShowID) ([]model.ShowEntry, error)
}
