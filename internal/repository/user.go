package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/showtrack/showtrack-go/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateName  = errors.New("name already exists")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrDuplicateToken = errors.New("access token already exists")
)

const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrNoReferencedRow = 1452
)

// UserRepository handles user persistence operations.
// Name and email comparisons rely on the utf8mb4_0900_ai_ci column
// collation, so lookups and uniqueness ignore case and accents.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, access_token, created_at`

// Create inserts a new user and sets the generated ID on the user struct.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, name, email, password_hash, access_token) VALUES (?, ?, ?, ?, ?)`

	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, query, id, user.Name, user.Email, user.PasswordHash, user.AccessToken)
	if err != nil {
		return classifyUserInsertError(err)
	}

	user.ID = id
	user.CreatedAt = time.Now().UTC()
	user.Watchlist = []model.ShowEntry{}
	return nil
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// GetByName retrieves a user by name, ignoring case and accents.
func (r *UserRepository) GetByName(ctx context.Context, name string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE name = ?`, name)
}

// GetByEmail retrieves a user by email, ignoring case and accents.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

// GetByAccessToken retrieves the user owning token. The match is byte-exact.
func (r *UserRepository) GetByAccessToken(ctx context.Context, token string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE access_token = ?`, token)
}

// DeleteAll removes every user; watchlist rows cascade.
func (r *UserRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.AccessToken, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// classifyUserInsertError maps a MySQL duplicate entry error (code 1062) to
// the sentinel of the unique key it violated.
func classifyUserInsertError(err error) error {
	if !isMySQLError(err, mysqlErrDuplicateEntry) {
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "uq_users_email"):
		return ErrDuplicateEmail
	case strings.Contains(msg, "uq_users_name"):
		return ErrDuplicateName
	case strings.Contains(msg, "uq_users_access_token"):
		return ErrDuplicateToken
	default:
		return err
	}
}

func isMySQLError(err error, number uint16) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == number
}
