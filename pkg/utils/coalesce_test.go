// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package utils

import (
	"testing"
)

func TestCoalesceString(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected string
	}{
		{
			name:     "returns first non-empty string",
			values:   []string{"", "", "hello", "world"},
			expected: "hello",
		},
		{
			name:     "returns empty string when all empty",
			values:   []string{"", "", ""},
			expected: "",
		},
		{
			name:     "returns empty string when no arguments",
			values:   []string{},
			expected: "",
		},
		{
			name:     "returns first value when non-empty",
			values:   []string{"first", "second", "third"},
			expected: "first",
		},
		{
			name:     "handles spaces as non-empty",
			values:   []string{"", "  ", "hello"},
			expected: "  ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CoalesceString(tt.values...)
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestCoalesceInt(t *testing.T) {
	tests := []struct {
		name     string
		values   []int
		expected int
	}{
		{
			name:     "returns first non-zero int",
			values:   []int{0, 0, 45, 60},
			expected: 45,
		},
		{
			name:     "returns zero when all zero",
			values:   []int{0, 0},
			expected: 0,
		},
		{
			name:     "returns zero when no arguments",
			values:   []int{},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CoalesceInt(tt.values...)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}
