package testutil

import (
	"testing"

	apperrors "lifetrack/internal/errors"
)

// AssertAppError fails unless err resolves to an *AppError carrying code.
// The matched error is returned for further checks.
func AssertAppError(t *testing.T, err error, code string) *apperrors.AppError {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %s, got nil", code)
	}
	appErr, ok := apperrors.From(err)
	if !ok {
		t.Fatalf("expected %s, got %T: %v", code, err, err)
	}
	if appErr.Code != code {
		t.Errorf("expected %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
	return appErr
}

// AssertNoError stops the test on a non-nil err.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
