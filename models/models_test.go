package models

import (
	"strings"
	"testing"
	"time"
)

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Errorf("%q.Valid() = false, want true", c)
		}
	}
	for _, c := range []IssueCategory{"", "Road", "POTHOLE", "noise"} {
		if c.Valid() {
			t.Errorf("%q.Valid() = true, want false", c)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range Statuses {
		if !s.Valid() {
			t.Errorf("%q.Valid() = false, want true", s)
		}
	}
	if IssueStatus("pending").Valid() {
		t.Error(`"pending".Valid() = true, want false`)
	}
}

func TestUnknownValuesFallBackToNeutral(t *testing.T) {
	if got := IssueStatus("archived").Variant(); got != BadgeNeutral {
		t.Errorf("unknown status variant = %q, want %q", got, BadgeNeutral)
	}
	if got := IssueCategory("noise").Variant(); got != BadgeNeutral {
		t.Errorf("unknown category variant = %q, want %q", got, BadgeNeutral)
	}
	if got := IssueCategory("noise").Label(); got != "Other" {
		t.Errorf("unknown category label = %q, want %q", got, "Other")
	}
	if got := IssueStatus("archived").Label(); got != "Unknown" {
		t.Errorf("unknown status label = %q, want %q", got, "Unknown")
	}
}

func TestStatusVariants(t *testing.T) {
	tests := []struct {
		status IssueStatus
		want   BadgeVariant
	}{
		{Open, BadgeError},
		{InProgress, BadgeWarning},
		{Resolved, BadgeSuccess},
	}
	for _, tt := range tests {
		if got := tt.status.Variant(); got != tt.want {
			t.Errorf("%q.Variant() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input  string
		want   time.Time
		wantOK bool
	}{
		{"2024-12-20T10:30:00Z", time.Date(2024, 12, 20, 10, 30, 0, 0, time.UTC), true},
		{"2024-12-20T10:30:00.5Z", time.Date(2024, 12, 20, 10, 30, 0, 500000000, time.UTC), true},
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"yesterday", time.Time{}, false},
		{"", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseTimestamp(tt.input)
		if ok != tt.wantOK {
			t.Errorf("ParseTimestamp(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestPasswordHashing(t *testing.T) {
	u := &User{Password: "secret123"}
	if err := u.HashPassword(); err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if u.Password == "secret123" {
		t.Fatal("password stored in plain text")
	}
	if !u.ComparePassword("secret123") {
		t.Error("ComparePassword(correct) = false")
	}
	if u.ComparePassword("wrong") {
		t.Error("ComparePassword(wrong) = true")
	}
}

func TestPasswordHashingPastBcryptLimit(t *testing.T) {
	long := strings.Repeat("x", 100)
	u := &User{Password: long}
	if err := u.HashPassword(); err != nil {
		t.Fatalf("HashPassword(100 bytes): %v", err)
	}
	if !u.ComparePassword(long) {
		t.Error("ComparePassword(correct) = false")
	}
	// Differs only after byte 72.
	if u.ComparePassword(strings.Repeat("x", 99) + "y") {
		t.Error("ComparePassword(different tail) = true")
	}
}
