package logging

import "testing"

func TestNewValidLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		logger, err := New(level)
		if err != nil {
			t.Errorf("New(%q) returned error: %v", level, err)
		}
		if logger == nil {
			t.Errorf("New(%q) returned nil logger", level)
		}
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, err := New("shouting"); err == nil {
		t.Fatal("expected error for invalid level")
	}
}
