// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package idgen

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Human-readable number prefixes
const (
	PrefixRequest   = "REQ"
	PrefixEquipment = "ER"
	PrefixSample    = "SMP"
)

// NewID returns a random internal record identifier.
func NewID() string {
	return uuid.NewString()
}

// Number creates a human-readable reference such as REQ-2026-4fK9a.
// The suffix is random, so uniqueness is ultimately enforced by the store.
func Number(prefix string, now time.Time) (string, error) {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate %s number: %w", prefix, err)
	}
	return prefix + "-" + strconv.Itoa(now.Year()) + "-" + base62Encode(b), nil
}

// base62Encode converts bytes to base62 (0-9, a-z, A-Z)
func base62Encode(data []byte) string {
	const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	var num uint64
	for i := 0; i < len(data) && i < 8; i++ {
		num = num<<8 | uint64(data[i])
	}

	if num == 0 {
		return "0"
	}

	result := make([]byte, 0, 11) // max length for uint64
	for num > 0 {
		result = append(result, base62Chars[num%62])
		num /= 62
	}

	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return string(result)
}
