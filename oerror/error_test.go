package oerror

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewFormatsMessage(t *testing.T) {
	err := New("slot %d of %s", 1, "holder")
	if err.Error() != "slot 1 of holder" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestSentinelsWrap(t *testing.T) {
	wrapped := fmt.Errorf("attach failed: %w", ErrSlotOccupied)
	if !errors.Is(wrapped, ErrSlotOccupied) {
		t.Fatalf("wrapped sentinel should match")
	}
	if errors.Is(wrapped, ErrInvalidSlot) {
		t.Fatalf("wrapped sentinel should not match a different sentinel")
	}
}
