package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/showtrack/showtrack-go/internal/model"
	"github.com/showtrack/showtrack-go/internal/repository"
)

// WatchlistService handles watchlist mutations for an authenticated user.
// Callers pass the user id resolved by the auth guard; every operation is
// scoped to that user's document.
type WatchlistService struct {
	store WatchlistStore
}

// NewWatchlistService creates a new WatchlistService.
func NewWatchlistService(store WatchlistStore) *WatchlistService {
	return &WatchlistService{store: store}
}

// AddShow appends a show to the end of the watchlist. A show whose id is
// already present is rejected with ErrDuplicateShow and nothing changes.
func (s *WatchlistService) AddShow(ctx context.Context, userID string, req model.AddShowRequest) error {
	if req.ShowID == "" {
		return ErrShowIDRequired
	}

	current, err := s.store.List(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "reading watchlist failed", "user_id", userID, "error", err)
		return fail(ErrUnexpected, err)
	}
	if slices.ContainsFunc(current, func(e model.ShowEntry) bool { return e.ShowID == req.ShowID }) {
		return ErrDuplicateShow
	}

	entry := model.ShowEntry{Title: req.Title, ShowID: req.ShowID, Poster: req.Poster}

	// The store re-checks atomically; a concurrent add of the same show lands here.
	if err := s.store.Append(ctx, userID, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicateShow) {
			return ErrDuplicateShow
		}
		slog.ErrorContext(ctx, "appending to watchlist failed", "user_id", userID, "error", err)
		return fail(ErrUnexpected, err)
	}

	return nil
}

// GetWatchlist returns the watchlist in insertion order.
func (s *WatchlistService) GetWatchlist(ctx context.Context, userID string) ([]model.ShowEntry, error) {
	entries, err := s.store.List(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "fetching watchlist failed", "user_id", userID, "error", err)
		return nil, fail(ErrFetchFailed, err)
	}
	return nonNil(entries), nil
}

// RemoveShow removes every entry for showID and returns what remains.
// Removing a show that is not in the list succeeds and returns it unchanged.
func (s *WatchlistService) RemoveShow(ctx context.Context, userID string, showID model.ShowID) ([]model.ShowEntry, error) {
	if showID == "" {
		return nil, ErrShowIDRequired
	}

	entries, err := s.store.Remove(ctx, userID, showID)
	if err != nil {
		slog.ErrorContext(ctx, "removing from watchlist failed", "user_id", userID, "error", err)
		return nil, fail(ErrRemoveFailed, err)
	}
	return nonNil(entries), nil
}

// nonNil keeps an empty watchlist encoding as [] rather than null.
func nonNil(entries []model.ShowEntry) []model.ShowEntry {
	if entries == nil {
		return []model.ShowEntry{}
	}
	return entries
}
