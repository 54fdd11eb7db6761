package config

import (
	"testing"

	"github.com/bmizerany/assert"
)

func envFrom(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

var noEnv = envFrom(nil)

// TestResolveFromURL checks the single-argument form extracts both values
// from a full leaderboard URL.
func TestResolveFromURL(t *testing.T) {
	cfg, err := Resolve(
		[]string{"https://adventofcode.com/2020/leaderboard/private/view/123456.json?session=s3cret"},
		noEnv,
	)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	assert.Equal(t, "123456", cfg.BoardID)
	assert.Equal(t, "s3cret", cfg.Session)
}

// TestResolveFromURLWithoutJSONSuffix accepts the browser-facing URL that
// lacks the .json extension.
func TestResolveFromURLWithoutJSONSuffix(t *testing.T) {
	cfg, err := Resolve(
		[]string{"https://adventofcode.com/2020/leaderboard/private/view/123456?session=tok"},
		noEnv,
	)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	assert.Equal(t, "123456", cfg.BoardID)
}

// TestResolveFromURLMissingSession checks a URL without the session query
// parameter is a usage error, not a half-resolved config.
func TestResolveFromURLMissingSession(t *testing.T) {
	_, err := Resolve([]string{"https://adventofcode.com/2020/leaderboard/private/view/123456.json"}, noEnv)
	if err == nil {
		t.Fatal("expected error for URL without session")
	}
}

// TestResolveFromIDAndToken checks the two-argument form.
func TestResolveFromIDAndToken(t *testing.T) {
	cfg, err := Resolve([]string{"99", "tok"}, noEnv)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	assert.Equal(t, "99", cfg.BoardID)
	assert.Equal(t, "tok", cfg.Session)
}

func TestResolveRejectsEmptyIDOrToken(t *testing.T) {
	if _, err := Resolve([]string{"", "tok"}, noEnv); err == nil {
		t.Error("expected error for empty board id")
	}
	if _, err := Resolve([]string{"99", ""}, noEnv); err == nil {
		t.Error("expected error for empty token")
	}
}

// TestResolveFromEnvironment checks the zero-argument form reads both
// environment variables.
func TestResolveFromEnvironment(t *testing.T) {
	cfg, err := Resolve(nil, envFrom(map[string]string{
		"AOC_BOARD_ID": "777",
		"AOC_SESSION":  "envtok",
	}))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	assert.Equal(t, "777", cfg.BoardID)
	assert.Equal(t, "envtok", cfg.Session)
}

func TestResolveFailsWithPartialEnvironment(t *testing.T) {
	_, err := Resolve(nil, envFrom(map[string]string{"AOC_BOARD_ID": "777"}))
	if err == nil {
		t.Fatal("expected error when AOC_SESSION is unset")
	}
}

func TestResolveRejectsExtraArguments(t *testing.T) {
	if _, err := Resolve([]string{"a", "b", "c"}, noEnv); err == nil {
		t.Fatal("expected error for three arguments")
	}
}
