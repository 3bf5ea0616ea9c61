package actor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMatcherExactLogins(t *testing.T) {
	m, err := New(Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []struct {
		name  string
		login string
		want  bool
	}{
		{"default login", "codex", true},
		{"case varied", "CoDeX", true},
		{"bracket suffix", "codex[bot]", true},
		{"upper bracket suffix", "OPENAI-CODEX[BOT]", true},
		{"unknown login", "dependabot", false},
		{"empty login", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Match(tt.login); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.login, got, tt.want)
			}
		})
	}
}

func TestMatcherPatternSearchesUnanchored(t *testing.T) {
	m, err := New(Options{NoDefaults: true, Pattern: "codex"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []struct {
		login string
		want  bool
	}{
		{"my-codex-fork", true}, // substring, not anchored
		{"Codex-Reviewer", true},
		{"CODEX", true},
		{"copilot", false},
	}
	for _, tt := range tests {
		if got := m.Match(tt.login); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.login, got, tt.want)
		}
	}
}

func TestMatcherNoDefaults(t *testing.T) {
	m, err := New(Options{NoDefaults: true, Logins: []string{"My-Bot"}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if m.Match("codex") {
		t.Error("default login matched with NoDefaults set")
	}
	if !m.Match("my-bot") || !m.Match("MY-BOT") {
		t.Error("configured login should match regardless of case")
	}
}

func TestMatcherPatternUnionsWithDefaults(t *testing.T) {
	// The pattern complements the exact set rather than replacing it.
	m, err := New(Options{Pattern: "reviewdog"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if !m.Match("codex[bot]") {
		t.Error("exact default should still match when a pattern is set")
	}
	if !m.Match("reviewdog[bot]") {
		t.Error("pattern should match alongside the exact set")
	}
}

func TestMatcherNoMatchersError(t *testing.T) {
	_, err := New(Options{NoDefaults: true})
	if !errors.Is(err, ErrNoMatchers) {
		t.Fatalf("expected ErrNoMatchers, got %v", err)
	}
}

func TestMatcherInvalidPattern(t *testing.T) {
	_, err := New(Options{Pattern: "["})
	if err == nil {
		t.Fatal("expected error for invalid pattern")
	}
	if errors.Is(err, ErrNoMatchers) {
		t.Fatal("invalid pattern should not report ErrNoMatchers")
	}
}

func TestLoginsSortedAndLowercased(t *testing.T) {
	m, err := New(Options{Logins: []string{"Zed-Bot", "Alpha"}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	want := []string{
		"alpha",
		"codex",
		"codex[bot]",
		"openai-codex",
		"openai-codex[bot]",
		"zed-bot",
	}
	if diff := cmp.Diff(want, m.Logins()); diff != "" {
		t.Errorf("Logins() mismatch (-want +got):\n%s", diff)
	}
}

func TestPatternPreservesSource(t *testing.T) {
	m, err := New(Options{Pattern: "codex"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := m.Pattern(); got != "codex" {
		t.Errorf("Pattern() = %q, want %q", got, "codex")
	}

	m, err = New(Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := m.Pattern(); got != "" {
		t.Errorf("Pattern() = %q, want empty", got)
	}
}
