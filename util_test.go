package main

import (
	"testing"
	"time"
)

// TestGetEnvInt checks env parsing with fallbacks.
func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_ENV_INT", "42")
	if got := getEnvInt("TEST_ENV_INT", 7); got != 42 {
		t.Errorf("getEnvInt = %d, want 42", got)
	}

	t.Setenv("TEST_ENV_INT", "not-a-number")
	if got := getEnvInt("TEST_ENV_INT", 7); got != 7 {
		t.Errorf("getEnvInt with invalid value = %d, want fallback 7", got)
	}

	if got := getEnvInt("TEST_ENV_INT_UNSET", 7); got != 7 {
		t.Errorf("getEnvInt with unset key = %d, want fallback 7", got)
	}
}

// TestGetEnvBool checks bool parsing with fallbacks.
func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		val      string
		fallback bool
		want     bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"false", true, false},
		{"0", true, false},
		{"banana", false, false},
		{"", true, true},
	}
	for _, tt := range tests {
		t.Setenv("TEST_ENV_BOOL", tt.val)
		if got := getEnvBool("TEST_ENV_BOOL", tt.fallback); got != tt.want {
			t.Errorf("getEnvBool(%q, %v) = %v, want %v", tt.val, tt.fallback, got, tt.want)
		}
	}
}

// TestGetEnvStr checks string fallback behavior.
func TestGetEnvStr(t *testing.T) {
	t.Setenv("TEST_ENV_STR", "Australia/Perth")
	if got := getEnvStr("TEST_ENV_STR", "UTC"); got != "Australia/Perth" {
		t.Errorf("getEnvStr = %q, want Australia/Perth", got)
	}
	if got := getEnvStr("TEST_ENV_STR_UNSET", "UTC"); got != "UTC" {
		t.Errorf("getEnvStr with unset key = %q, want UTC", got)
	}
}

// TestFormatUptime checks human-readable duration output.
func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{5 * time.Second, "5 seconds"},
		{1 * time.Second, "1 second"},
		{90 * time.Second, "1 minute, 30 seconds"},
		{3*time.Hour + 61*time.Second, "3 hours, 1 minute, 1 second"},
	}
	for _, tt := range tests {
		if got := formatUptime(tt.d); got != tt.want {
			t.Errorf("formatUptime(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

// TestPlural checks the pluralization helper.
func TestPlural(t *testing.T) {
	if plural(1) != "" {
		t.Error("plural(1) should be empty")
	}
	if plural(0) != "s" || plural(2) != "s" {
		t.Error("plural(0) and plural(2) should be \"s\"")
	}
}
