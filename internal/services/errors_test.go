package services_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"seekr/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrNotFound, "library", "open", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"library", "open", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestExitCodeMapping(t *testing.T) {
	configErr := services.Wrap(services.ErrConfiguration, "match", "threshold", "out of range", nil)
	if code := services.ExitCode(configErr); code != services.ExitConfiguration {
		t.Fatalf("expected configuration exit code, got %d", code)
	}
	if !services.IsConfiguration(fmt.Errorf("outer: %w", configErr)) {
		t.Fatal("expected wrapped configuration error to be detected")
	}

	ioErr := services.Wrap(services.ErrTransient, "scan", "walk", "read failed", errors.New("io"))
	if code := services.ExitCode(ioErr); code != services.ExitFailure {
		t.Fatalf("expected failure exit code, got %d", code)
	}

	if code := services.ExitCode(nil); code != 0 {
		t.Fatalf("expected zero exit code for nil error, got %d", code)
	}
}
