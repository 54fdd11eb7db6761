// Package stats derives solve-time statistics from a leaderboard snapshot:
// per-member offsets from each day's unlock instant, the overall ranking,
// and per-day tables with rounded averages.
package stats

import (
	"sort"

	"github.com/pefman/aoc-leaderboard/internal/models"
)

const (
	// Unlock1 is the epoch second day 1 unlocked: midnight US/Eastern on
	// December 1st of the event year, i.e. 2020-12-01T05:00:00Z.
	Unlock1 int64 = 1606798800

	secondsPerDay int64 = 86400
)

// UnlockTime returns the epoch second a given day's puzzle became available.
func UnlockTime(day int) int64 {
	return Unlock1 + int64(day-1)*secondsPerDay
}

// DayOffsets holds one member's solve offsets for one day, in seconds since
// the day's unlock. A nil part is unsolved, which is distinct from a zero
// offset (solved at the unlock instant). Negative offsets can occur when
// the upstream data is inconsistent; they are kept as-is.
type DayOffsets struct {
	Part1 *int64
	Part2 *int64
}

// MemberStats is the derived view of one member used by rendering.
type MemberStats struct {
	ID         int
	Name       string
	Stars      int
	LocalScore int
	LastStarTS int64
	Offsets    map[int]DayOffsets
}

// Compute derives per-member offsets for every published day and returns
// the members in overall ranking order.
func Compute(lb *models.Leaderboard) []MemberStats {
	out := make([]MemberStats, 0, len(lb.Members))
	for _, m := range lb.Members {
		ms := MemberStats{
			ID:         m.ID,
			Name:       m.DisplayName(),
			Stars:      m.Stars,
			LocalScore: m.LocalScore,
			LastStarTS: m.LastStarTS,
			Offsets:    make(map[int]DayOffsets, len(m.Completions)),
		}
		for day := 1; day <= lb.NumDays; day++ {
			dc, ok := m.Completions[day]
			if !ok {
				continue
			}
			unlock := UnlockTime(day)
			var off DayOffsets
			if dc.Part1 != nil {
				v := *dc.Part1 - unlock
				off.Part1 = &v
			}
			if dc.Part2 != nil {
				v := *dc.Part2 - unlock
				off.Part2 = &v
			}
			ms.Offsets[day] = off
		}
		out = append(out, ms)
	}
	Rank(out)
	return out
}

// Rank orders members for the overall table: local score descending, then
// stars descending, then earliest last star first. Member id breaks any
// remaining tie so the order never depends on map iteration.
func Rank(members []MemberStats) {
	sort.SliceStable(members, func(i, j int) bool {
		a, b := members[i], members[j]
		if a.LocalScore != b.LocalScore {
			return a.LocalScore > b.LocalScore
		}
		if a.Stars != b.Stars {
			return a.Stars > b.Stars
		}
		if a.LastStarTS != b.LastStarTS {
			return a.LastStarTS < b.LastStarTS
		}
		return a.ID < b.ID
	})
}

// DayRow is one member's line in a per-day table.
type DayRow struct {
	ID    int
	Name  string
	Part1 int64
	Part2 *int64
}

// DayAverage carries the rounded mean offsets for one day. A nil part
// means nobody has solved that part yet.
type DayAverage struct {
	Part1 *int64
	Part2 *int64
}

// DayTable is one day's breakdown: members who solved part 1, ordered by
// how fast they got there, plus the day's averages.
type DayTable struct {
	Day     int
	Rows    []DayRow
	Average DayAverage
}

// BuildDayTables assembles one table per day with at least one part-1
// completion; days nobody solved produce no table at all. Members without
// a part-1 completion for a day are excluded from that day's rows, though
// a stray part-2 timestamp still counts toward the part-2 average.
func BuildDayTables(members []MemberStats, numDays int) []DayTable {
	var tables []DayTable
	for day := 1; day <= numDays; day++ {
		var rows []DayRow
		var part1, part2 []int64
		for _, m := range members {
			off, ok := m.Offsets[day]
			if !ok {
				continue
			}
			if off.Part2 != nil {
				part2 = append(part2, *off.Part2)
			}
			if off.Part1 == nil {
				continue
			}
			part1 = append(part1, *off.Part1)
			rows = append(rows, DayRow{ID: m.ID, Name: m.Name, Part1: *off.Part1, Part2: off.Part2})
		}
		if len(rows) == 0 {
			continue
		}
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].Part1 != rows[j].Part1 {
				return rows[i].Part1 < rows[j].Part1
			}
			return rows[i].ID < rows[j].ID
		})
		tables = append(tables, DayTable{
			Day:  day,
			Rows: rows,
			Average: DayAverage{
				Part1: roundedMean(part1),
				Part2: roundedMean(part2),
			},
		})
	}
	return tables
}

// roundedMean returns the mean rounded half-away-from-zero to whole
// seconds, or nil when there are no samples. Halves round away from zero,
// so {1, 2} averages to 2 and {-1, -2} to -2.
func roundedMean(vals []int64) *int64 {
	if len(vals) == 0 {
		return nil
	}
	var sum int64
	for _, v := range vals {
		sum += v
	}
	n := int64(len(vals))
	var r int64
	if sum >= 0 {
		r = (2*sum + n) / (2 * n)
	} else {
		r = -((-2*sum + n) / (2 * n))
	}
	return &r
}
