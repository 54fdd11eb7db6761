// Package aoc fetches an Advent of Code private leaderboard and maps the
// payload into the typed snapshot the rest of the program works with.
package aoc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/pefman/aoc-leaderboard/internal/models"
)

var httpClient = &http.Client{Timeout: 8 * time.Second}

const (
	// DefaultBaseURL is the production endpoint. Tests point BaseURL at a
	// local server instead.
	DefaultBaseURL = "https://adventofcode.com"
	// Event is the competition year this tool is pinned to.
	Event = "2020"
	// userAgent identifies this client to the upstream service, as the
	// leaderboard API asks automated callers to do.
	userAgent = "aoc-leaderboard (github.com/pefman/aoc-leaderboard)"

	// maxDays is the number of puzzle days in a full event.
	maxDays = 25
)

// Config holds client configuration
type Config struct {
	BaseURL string
}

type Client struct {
	config Config
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		config: Config{BaseURL: baseURL},
	}
}

// StatusError reports a non-success response from the leaderboard endpoint.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("leaderboard fetch failed: %s", e.Status)
}

// ParseError reports a payload that does not match the expected shape,
// naming the field that failed validation.
type ParseError struct {
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed leaderboard payload: %s: %s", e.Field, e.Reason)
}

// FlexInt is an integer that unmarshals from either a JSON number or a
// JSON string. The upstream API is inconsistent about which it sends for
// ids and timestamps, depending on the member and the event year.
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = 0
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("FlexInt: cannot unmarshal %s", string(data))
		}
		if s == "" {
			*f = 0
			return nil
		}
		n = json.Number(s)
	}
	v, err := n.Int64()
	if err != nil {
		return fmt.Errorf("FlexInt: cannot unmarshal %s", string(data))
	}
	*f = FlexInt(v)
	return nil
}

// ========================= API response types =========================
// Loose shapes matching the raw JSON. buildLeaderboard validates them
// into models.Leaderboard so nothing undefined leaks downstream.

type apiLeaderboard struct {
	Event   string               `json:"event"`
	OwnerID FlexInt              `json:"owner_id"`
	Members map[string]apiMember `json:"members"`
}

type apiMember struct {
	ID         FlexInt                       `json:"id"`
	Name       *string                       `json:"name"`
	Stars      FlexInt                       `json:"stars"`
	LocalScore FlexInt                       `json:"local_score"`
	LastStarTS FlexInt                       `json:"last_star_ts"`
	Completion map[string]map[string]apiStar `json:"completion_day_level"`
}

type apiStar struct {
	GetStarTS *FlexInt `json:"get_star_ts"`
}

// FetchLeaderboard performs the single upstream GET for one board and maps
// the response into a validated snapshot. No retry: one failed fetch is
// fatal to the run.
func (c *Client) FetchLeaderboard(ctx context.Context, boardID, session string) (*models.Leaderboard, error) {
	base := strings.TrimRight(c.config.BaseURL, "/")
	u := fmt.Sprintf("%s/%s/leaderboard/private/view/%s.json?session=%s",
		base, Event, url.PathEscape(boardID), url.QueryEscape(session))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build leaderboard request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch leaderboard")
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
	var raw apiLeaderboard
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &ParseError{Field: "(body)", Reason: err.Error()}
	}
	return buildLeaderboard(&raw)
}

// buildLeaderboard converts the loose payload into the domain snapshot.
// NumDays is not part of the payload; it is derived as the highest day
// number any member has touched, capped at the event length.
func buildLeaderboard(raw *apiLeaderboard) (*models.Leaderboard, error) {
	if raw.Event == "" {
		return nil, &ParseError{Field: "event", Reason: "missing or empty"}
	}
	if raw.Members == nil {
		return nil, &ParseError{Field: "members", Reason: "missing"}
	}
	lb := &models.Leaderboard{
		Event:   raw.Event,
		Members: make(map[string]models.Member, len(raw.Members)),
	}
	for key, m := range raw.Members {
		id := int(m.ID)
		if id == 0 {
			// Older payloads omit the id field; the map key carries it.
			n, err := strconv.Atoi(key)
			if err != nil {
				return nil, &ParseError{Field: "members." + key + ".id", Reason: "missing"}
			}
			id = n
		}
		name := ""
		if m.Name != nil {
			name = *m.Name
		}
		mem := models.Member{
			ID:          id,
			Name:        name,
			Stars:       int(m.Stars),
			LocalScore:  int(m.LocalScore),
			LastStarTS:  int64(m.LastStarTS),
			Completions: make(map[int]models.DayCompletion, len(m.Completion)),
		}
		for dayKey, parts := range m.Completion {
			field := "members." + key + ".completion_day_level." + dayKey
			day, err := strconv.Atoi(dayKey)
			if err != nil || day < 1 || day > maxDays {
				return nil, &ParseError{Field: field, Reason: "invalid day number"}
			}
			var dc models.DayCompletion
			for partKey, star := range parts {
				if star.GetStarTS == nil {
					return nil, &ParseError{Field: field + "." + partKey, Reason: "missing get_star_ts"}
				}
				ts := int64(*star.GetStarTS)
				switch partKey {
				case "1":
					dc.Part1 = &ts
				case "2":
					dc.Part2 = &ts
				default:
					return nil, &ParseError{Field: field + "." + partKey, Reason: "invalid part number"}
				}
			}
			mem.Completions[day] = dc
			if day > lb.NumDays {
				lb.NumDays = day
			}
		}
		lb.Members[key] = mem
	}
	return lb, nil
}
