package models

import "fmt"

// ========================= Domain Models =========================
// Validated shapes the stats and rendering layers work with. The raw
// leaderboard payload is mapped into these at the acquisition boundary
// and never mutated afterwards.

// DayCompletion holds the star timestamps for one puzzle day. A nil part
// means that part is unsolved, which is distinct from a zero timestamp.
type DayCompletion struct {
	Part1 *int64 `json:"part1,omitempty"`
	Part2 *int64 `json:"part2,omitempty"`
}

// Member is one participant on the leaderboard.
type Member struct {
	ID         int    `json:"id"`
	Name       string `json:"name,omitempty"` // empty when the member is anonymous
	Stars      int    `json:"stars"`
	LocalScore int    `json:"local_score"`
	LastStarTS int64  `json:"last_star_ts"`
	// Completions is indexed by day number (1..NumDays of the leaderboard).
	// Days the member never touched have no entry.
	Completions map[int]DayCompletion `json:"completions,omitempty"`
}

// DisplayName returns the member's name, or an anonymous placeholder
// derived from the id when no name is published.
func (m Member) DisplayName() string {
	if m.Name == "" {
		return fmt.Sprintf("Anonymous #%d", m.ID)
	}
	return m.Name
}

// Leaderboard is the full snapshot for one event year, keyed the way the
// upstream payload keys it (member id as a string).
type Leaderboard struct {
	Event   string            `json:"event"`
	NumDays int               `json:"num_days"`
	Members map[string]Member `json:"members"`
}
