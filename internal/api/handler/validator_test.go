package handler

import (
	"strings"
	"testing"
)

func TestValidator_Messages(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&meetingRequest{Date: "06/15/2026"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "title is required") || !strings.Contains(msg, "date must be a date formatted as 2006-01-02") {
		t.Fatalf("unexpected message: %q", msg)
	}

	if err := v.Validate(&businessRequest{Name: "Kapu", Category: "food", Website: "kapu"}); err == nil || !strings.Contains(err.Error(), "website must be a valid URL") {
		t.Fatalf("unexpected url error: %v", err)
	}
	if err := v.Validate(&approveRequest{Level: 5}); err == nil || !strings.Contains(err.Error(), "level must be at most 3") {
		t.Fatalf("unexpected level error: %v", err)
	}
	if err := v.Validate(&businessRequest{Name: "Kapu", Category: "food"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
