// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package idgen

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("NewID returned non-uuid %q: %v", id, err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestNumber(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^ER-2024-[0-9a-zA-Z]{1,7}$`)

	for i := 0; i < 50; i++ {
		n, err := Number(PrefixEquipment, now)
		if err != nil {
			t.Fatal(err)
		}
		if !pattern.MatchString(n) {
			t.Errorf("number %q does not match %s", n, pattern)
		}
	}
}

func TestBase62Encode(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte{0}, "0"},
		{[]byte{61}, "Z"},
		{[]byte{62}, "10"},
		{[]byte{1, 0}, "48"},
	}

	for _, tt := range tests {
		if got := base62Encode(tt.in); got != tt.want {
			t.Errorf("base62Encode(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
