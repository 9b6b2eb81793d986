package service

import (
	"errors"
	"testing"
)

func TestFailureMatchesKindAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := fail(ErrFetchFailed, cause)

	if !errors.Is(err, ErrFetchFailed) {
		t.Error("failure should match its kind")
	}
	if !errors.Is(err, cause) {
		t.Error("failure should match its cause")
	}
	if errors.Is(err, ErrRemoveFailed) {
		t.Error("failure should not match another kind")
	}
	if got := Cause(err); got != cause {
		t.Errorf("Cause() = %v, want %v", got, cause)
	}
	if err.Error() != "could not fetch watchlist: connection refused" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestCauseOfBareOutcome(t *testing.T) {
	if got := Cause(ErrNameConflict); got != nil {
		t.Errorf("Cause(ErrNameConflict) = %v, want nil", got)
	}
	if got := Cause(nil); got != nil {
		t.Errorf("Cause(nil) = %v, want nil", got)
	}
}

func TestOutcome(t *testing.T) {
	wrapped := fail(ErrRemoveFailed, errors.New("timeout"))
	if got := Outcome(wrapped); got != ErrRemoveFailed {
		t.Errorf("Outcome(wrapped) = %v, want ErrRemoveFailed", got)
	}
	if got := Outcome(ErrDuplicateShow); got != ErrDuplicateShow {
		t.Errorf("Outcome(bare) = %v, want ErrDuplicateShow", got)
	}
}
