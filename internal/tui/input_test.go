package tui

import (
	"strings"
	"testing"
)

func TestEditRune(t *testing.T) {
	tests := []struct {
		name string
		text string
		key  string
		want string
	}{
		{"append letter", "gp", "u", "gpu"},
		{"append space", "ryzen", " ", "ryzen "},
		{"backspace", "gpu", "backspace", "gp"},
		{"backspace empty", "", "backspace", ""},
		{"ignore enter", "gpu", "enter", "gpu"},
		{"ignore esc", "gpu", "esc", "gpu"},
		{"unicode", "caf", "é", "café"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := editRune(tc.text, tc.key); got != tc.want {
				t.Errorf("editRune(%q, %q) = %q, want %q", tc.text, tc.key, got, tc.want)
			}
		})
	}
}

func TestEditRuneClampsLength(t *testing.T) {
	text := strings.Repeat("a", maxInputLen)
	if got := editRune(text, "b"); got != text {
		t.Error("expected input clamped at maxInputLen")
	}
}

func TestTruncateToHeight(t *testing.T) {
	s := "one\ntwo\nthree\nfour\n"
	got := truncateToHeight(s, 2)
	if got != "one\ntwo\n" {
		t.Errorf("expected two lines, got %q", got)
	}
	if truncateToHeight(s, 0) != s {
		t.Error("expected maxLines<=0 to return input unchanged")
	}
	if truncateToHeight("short", 10) != "short" {
		t.Error("expected short input unchanged")
	}
}

func TestMoneyAndTrunc(t *testing.T) {
	if got := money(549.9); got != "$549.90" {
		t.Errorf("money: got %q", got)
	}
	if got := truncStr("abcdef", 4); got != "abc…" {
		t.Errorf("truncStr: got %q", got)
	}
	if got := shortID("64a1b2c3d4e5f6a7b8c9d0e1"); got != "64a1b2c3" {
		t.Errorf("shortID: got %q", got)
	}
}
