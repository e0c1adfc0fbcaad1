package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrapKeepsSentinelIdentity(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := Wrap(ErrPersistenceFailed, cause)

	if !stderrors.Is(err, ErrPersistenceFailed) {
		t.Error("wrapped error should match its sentinel")
	}
	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should expose the internal cause")
	}
	if stderrors.Is(err, ErrNotFound) {
		t.Error("wrapped error must not match an unrelated sentinel")
	}
	if err.StatusCode != http.StatusBadGateway {
		t.Errorf("expected status %d, got %d", http.StatusBadGateway, err.StatusCode)
	}
}

func TestWithMessage(t *testing.T) {
	err := WithMessage(ErrAdvisorService, "quota exceeded")
	if err.Message != "quota exceeded" {
		t.Errorf("expected custom message, got %q", err.Message)
	}
	if err.Code != "ADVISOR_SERVICE_ERROR" {
		t.Errorf("expected code to be preserved, got %q", err.Code)
	}

	wrapped := fmt.Errorf("advise: %w", err)
	var appErr *AppError
	if !stderrors.As(wrapped, &appErr) {
		t.Fatal("expected errors.As to find the AppError")
	}
	if appErr.Error() != "quota exceeded" {
		t.Errorf("unexpected Error(): %q", appErr.Error())
	}
}
