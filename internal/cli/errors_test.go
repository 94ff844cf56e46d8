package cli

import (
	"errors"
	"fmt"
	"testing"
)

func TestUsageError(t *testing.T) {
	t.Parallel()
	err := newUsageError("--config is required")
	if !errors.Is(err, ErrUsage) {
		t.Fatal("usage errors must match ErrUsage")
	}
	if err.Error() != "--config is required" {
		t.Errorf("message: %q", err.Error())
	}
	wrapped := fmt.Errorf("run: %w", err)
	if !errors.Is(wrapped, ErrUsage) {
		t.Error("wrapping must preserve the usage marker")
	}
	if errors.Is(errors.New("boom"), ErrUsage) {
		t.Error("unrelated errors must not match ErrUsage")
	}
	if ErrUsage.Error() != "tsclientgen: invalid usage" {
		t.Errorf("sentinel text: %q", ErrUsage.Error())
	}
}
