package aoc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bmizerany/assert"
)

// fixture mimics the upstream payload, including its habit of mixing
// numbers and strings for ids and timestamps.
const fixture = `{
  "event": "2020",
  "owner_id": "123456",
  "members": {
    "123456": {
      "id": 123456,
      "name": "alice",
      "stars": 3,
      "local_score": 26,
      "last_star_ts": 1606867200,
      "completion_day_level": {
        "1": {
          "1": {"get_star_ts": 1606798865},
          "2": {"get_star_ts": 1606798930}
        },
        "2": {
          "1": {"get_star_ts": "1606885210"}
        }
      }
    },
    "789": {
      "id": "789",
      "name": null,
      "stars": 0,
      "local_score": 0,
      "last_star_ts": "0",
      "completion_day_level": {}
    }
  }
}`

func fixtureServer(t *testing.T, status int, body string) (*httptest.Server, *http.Request) {
	t.Helper()
	var captured http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = *r
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

// TestFetchLeaderboardMapsPayload checks the request shape and that the
// loose payload comes back as a validated snapshot.
func TestFetchLeaderboardMapsPayload(t *testing.T) {
	srv, req := fixtureServer(t, http.StatusOK, fixture)

	lb, err := NewClient(srv.URL).FetchLeaderboard(context.Background(), "123456", "tokentoken")
	if err != nil {
		t.Fatalf("FetchLeaderboard failed: %v", err)
	}

	assert.Equal(t, "/2020/leaderboard/private/view/123456.json", req.URL.Path)
	assert.Equal(t, "tokentoken", req.URL.Query().Get("session"))
	assert.Equal(t, userAgent, req.Header.Get("User-Agent"))

	assert.Equal(t, "2020", lb.Event)
	assert.Equal(t, 2, lb.NumDays) // derived from the highest completed day
	if len(lb.Members) != 2 {
		t.Fatalf("got %d members, want 2", len(lb.Members))
	}

	alice := lb.Members["123456"]
	assert.Equal(t, 123456, alice.ID)
	assert.Equal(t, "alice", alice.Name)
	assert.Equal(t, 3, alice.Stars)
	assert.Equal(t, 26, alice.LocalScore)
	assert.Equal(t, int64(1606867200), alice.LastStarTS)
	assert.Equal(t, int64(1606798865), *alice.Completions[1].Part1)
	assert.Equal(t, int64(1606798930), *alice.Completions[1].Part2)
	assert.Equal(t, int64(1606885210), *alice.Completions[2].Part1)
	if alice.Completions[2].Part2 != nil {
		t.Errorf("day 2 part 2 = %d, want absent", *alice.Completions[2].Part2)
	}

	anon := lb.Members["789"]
	assert.Equal(t, 789, anon.ID)
	assert.Equal(t, "Anonymous #789", anon.DisplayName())
	assert.Equal(t, 0, len(anon.Completions))
}

// TestFetchLeaderboardNonSuccessStatus checks a non-200 becomes a typed
// StatusError carrying the numeric code.
func TestFetchLeaderboardNonSuccessStatus(t *testing.T) {
	srv, _ := fixtureServer(t, http.StatusNotFound, "not found")

	_, err := NewClient(srv.URL).FetchLeaderboard(context.Background(), "1", "tok")
	se, ok := err.(*StatusError)
	if !ok {
		t.Fatalf("got %T (%v), want *StatusError", err, err)
	}
	assert.Equal(t, http.StatusNotFound, se.Code)
}

// TestFetchLeaderboardInvalidJSON checks undecodable bodies become a
// typed ParseError instead of an opaque failure.
func TestFetchLeaderboardInvalidJSON(t *testing.T) {
	srv, _ := fixtureServer(t, http.StatusOK, "<html>please log in</html>")

	_, err := NewClient(srv.URL).FetchLeaderboard(context.Background(), "1", "tok")
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("got %T (%v), want *ParseError", err, err)
	}
}

// TestFetchLeaderboardShapeValidation checks structurally wrong payloads
// fail with the offending field named.
func TestFetchLeaderboardShapeValidation(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"missing event", `{"members": {}}`, "event"},
		{"missing members", `{"event": "2020"}`, "members"},
		{
			"bad day key",
			`{"event": "2020", "members": {"1": {"id": 1, "completion_day_level": {"26": {"1": {"get_star_ts": 5}}}}}}`,
			"members.1.completion_day_level.26",
		},
		{
			"bad part key",
			`{"event": "2020", "members": {"1": {"id": 1, "completion_day_level": {"1": {"3": {"get_star_ts": 5}}}}}}`,
			"members.1.completion_day_level.1.3",
		},
		{
			"missing star timestamp",
			`{"event": "2020", "members": {"1": {"id": 1, "completion_day_level": {"1": {"1": {}}}}}}`,
			"members.1.completion_day_level.1.1",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := fixtureServer(t, http.StatusOK, tc.body)
			_, err := NewClient(srv.URL).FetchLeaderboard(context.Background(), "1", "tok")
			pe, ok := err.(*ParseError)
			if !ok {
				t.Fatalf("got %T (%v), want *ParseError", err, err)
			}
			assert.Equal(t, tc.field, pe.Field)
		})
	}
}

// TestFetchLeaderboardIDFromMapKey checks payloads that omit the member
// id field fall back to the map key.
func TestFetchLeaderboardIDFromMapKey(t *testing.T) {
	body := `{"event": "2020", "members": {"555": {"name": "bob", "stars": 1}}}`
	srv, _ := fixtureServer(t, http.StatusOK, body)

	lb, err := NewClient(srv.URL).FetchLeaderboard(context.Background(), "1", "tok")
	if err != nil {
		t.Fatalf("FetchLeaderboard failed: %v", err)
	}
	assert.Equal(t, 555, lb.Members["555"].ID)
}

func TestFlexIntUnmarshal(t *testing.T) {
	cases := []struct {
		raw  string
		want int64
	}{
		{`42`, 42},
		{`"42"`, 42},
		{`0`, 0},
		{`"0"`, 0},
		{`null`, 0},
		{`""`, 0},
		{`-7`, -7},
	}
	for _, tc := range cases {
		var f FlexInt
		if err := json.Unmarshal([]byte(tc.raw), &f); err != nil {
			t.Errorf("unmarshal %s: %v", tc.raw, err)
			continue
		}
		assert.Equal(t, FlexInt(tc.want), f)
	}

	var f FlexInt
	if err := json.Unmarshal([]byte(`{"nested": true}`), &f); err == nil {
		t.Error("expected error for object input")
	}
	if err := json.Unmarshal([]byte(`"12.5.3"`), &f); err == nil {
		t.Error("expected error for non-numeric string")
	}
}
