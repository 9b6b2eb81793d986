package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/showtrack/showtrack-go/internal/model"
)

var ErrDuplicateShow = errors.New("show already in watchlist")

// WatchlistRepository handles watchlist persistence. Entries live in their
// own table; the auto-increment id preserves insertion order and the
// (user_id, show_id) unique key enforces one entry per show.
type WatchlistRepository struct {
	db *sql.DB
}

// NewWatchlistRepository creates a new WatchlistRepository.
func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// List returns the user's watchlist in insertion order.
func (r *WatchlistRepository) List(ctx context.Context, userID string) ([]model.ShowEntry, error) {
	if err := userExists(ctx, r.db, userID); err != nil {
		return nil, err
	}
	return listEntries(ctx, r.db, userID)
}

// Append adds entry to the end of the user's watchlist. It returns
// ErrDuplicateShow if the show is already present and ErrUserNotFound if
// the user does not exist.
func (r *WatchlistRepository) Append(ctx context.Context, userID string, entry model.ShowEntry) error {
	query := `INSERT INTO watchlist_entries (user_id, show_id, title, poster) VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, userID, string(entry.ShowID), entry.Title, entry.Poster)
	switch {
	case err == nil:
		return nil
	case isMySQLError(err, mysqlErrDuplicateEntry):
		return ErrDuplicateShow
	case isMySQLError(err, mysqlErrNoReferencedRow):
		return ErrUserNotFound
	default:
		return err
	}
}

// Remove deletes every entry matching showID and returns the remaining
// watchlist. Removing an absent show is not an error.
func (r *WatchlistRepository) Remove(ctx context.Context, userID string, showID model.ShowID) ([]model.ShowEntry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := userExists(ctx, tx, userID); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM watchlist_entries WHERE user_id = ? AND show_id = ?`,
		userID, string(showID),
	); err != nil {
		return nil, err
	}

	entries, err := listEntries(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return entries, nil
}

func userExists(ctx context.Context, q queryer, userID string) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	return err
}

func listEntries(ctx context.Context, q queryer, userID string) ([]model.ShowEntry, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT title, show_id, poster FROM watchlist_entries WHERE user_id = ? ORDER BY id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.ShowEntry{}
	for rows.Next() {
		var e model.ShowEntry
		var showID string
		if err := rows.Scan(&e.Title, &showID, &e.Poster); err != nil {
			return nil, err
		}
		e.ShowID = model.ShowID(showID)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
