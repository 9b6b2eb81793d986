package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestNewUserRepository(t *testing.T) {
	repo := NewUserRepository(nil)
	if repo == nil {
		t.Fatal("expected non-nil UserRepository")
	}
	if repo.db != nil {
		t.Fatal("expected nil db when constructed with nil")
	}
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrUserNotFound, "user not found"},
		{ErrDuplicateName, "name already exists"},
		{ErrDuplicateEmail, "email already exists"},
		{ErrDuplicateShow, "show already in watchlist"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("unexpected error message: %q, want %q", tt.err.Error(), tt.want)
		}
	}
}

func TestClassifyUserInsertError(t *testing.T) {
	dup := func(key string) error {
		return &mysql.MySQLError{
			Number:  1062,
			Message: fmt.Sprintf("Duplicate entry 'x' for key 'users.%s'", key),
		}
	}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "email key", err: dup("uq_users_email"), want: ErrDuplicateEmail},
		{name: "name key", err: dup("uq_users_name"), want: ErrDuplicateName},
		{name: "token key", err: dup("uq_users_access_token"), want: ErrDuplicateToken},
		{name: "wrapped", err: fmt.Errorf("exec: %w", dup("uq_users_name")), want: ErrDuplicateName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyUserInsertError(tt.err); !errors.Is(got, tt.want) {
				t.Errorf("classifyUserInsertError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyUserInsertErrorPassthrough(t *testing.T) {
	other := &mysql.MySQLError{Number: 1045, Message: "Access denied"}
	if got := classifyUserInsertError(other); got != other {
		t.Errorf("non-duplicate error should pass through, got %v", got)
	}

	plain := errors.New("connection reset")
	if got := classifyUserInsertError(plain); got != plain {
		t.Errorf("plain error should pass through, got %v", got)
	}
}

func TestIsMySQLError(t *testing.T) {
	if isMySQLError(nil, mysqlErrDuplicateEntry) {
		t.Fatal("nil error should not be a MySQL error")
	}
	if isMySQLError(ErrUserNotFound, mysqlErrDuplicateEntry) {
		t.Fatal("ErrUserNotFound should not be a duplicate entry error")
	}
	if !isMySQLError(&mysql.MySQLError{Number: 1452}, mysqlErrNoReferencedRow) {
		t.Fatal("expected 1452 to match")
	}
}
