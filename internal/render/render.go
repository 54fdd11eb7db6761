// Package render turns computed leaderboard statistics into fixed-width
// text tables with box-drawing borders.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pefman/aoc-leaderboard/internal/stats"
)

// Column widths, in display characters. Names longer than nameWidth are
// truncated; the star progress string is capped at starsWidth.
const (
	rankWidth  = 4
	nameWidth  = 20
	scoreWidth = 6
	starsWidth = 50
	durWidth   = 12
)

// FormatDuration renders a signed second count as the coarsest non-zero
// unit plus the next two smaller units: "1d 1h 0m", "1h 1m 1s", "1m 5s",
// "0s". Negative input means nothing to a reader and renders as N/A.
func FormatDuration(secs int64) string {
	if secs < 0 {
		return "N/A"
	}
	d := secs / 86400
	h := secs % 86400 / 3600
	m := secs % 3600 / 60
	s := secs % 60
	switch {
	case d > 0:
		return fmt.Sprintf("%dd %dh %dm", d, h, m)
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

func border(left, mid, right string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w+2)
	}
	return left + strings.Join(parts, mid) + right
}

// pad truncates s to width display characters and pads the remainder with
// spaces. Widths are counted in runes so the star glyphs line up.
func pad(s string, width int, rightAlign bool) string {
	r := []rune(s)
	if len(r) > width {
		r = r[:width]
	}
	fill := strings.Repeat(" ", width-len(r))
	if rightAlign {
		return fill + string(r)
	}
	return string(r) + fill
}

func row(w io.Writer, widths []int, rightAlign []bool, cells ...string) {
	var b strings.Builder
	b.WriteString("│")
	for i, c := range cells {
		b.WriteString(" ")
		b.WriteString(pad(c, widths[i], rightAlign[i]))
		b.WriteString(" │")
	}
	fmt.Fprintln(w, b.String())
}

// Overall writes the ranked leaderboard table. The star column shows one
// filled star per earned star and hollow stars up to the two-per-day
// maximum for the event.
func Overall(w io.Writer, event string, members []stats.MemberStats, numDays int) {
	widths := []int{rankWidth, nameWidth, scoreWidth, starsWidth}
	right := []bool{true, false, true, false}
	fmt.Fprintf(w, "Advent of Code %s\n", event)
	fmt.Fprintln(w, border("┌", "┬", "┐", widths))
	row(w, widths, right, "Rank", "Name", "Score", "Stars")
	fmt.Fprintln(w, border("├", "┼", "┤", widths))
	for i, m := range members {
		hollow := 2*numDays - m.Stars
		if hollow < 0 {
			hollow = 0
		}
		progress := strings.Repeat("★", m.Stars) + strings.Repeat("☆", hollow)
		row(w, widths, right, strconv.Itoa(i+1), m.Name, strconv.Itoa(m.LocalScore), progress)
	}
	fmt.Fprintln(w, border("└", "┴", "┘", widths))
}

// Days writes one table per day that saw at least one completion. Ranks
// restart at 1 within each day; an unsolved part 2 and an average with no
// samples both render as a dash.
func Days(w io.Writer, tables []stats.DayTable) {
	widths := []int{rankWidth, nameWidth, durWidth, durWidth}
	right := []bool{true, false, true, true}
	for _, t := range tables {
		fmt.Fprintf(w, "\nDay %d\n", t.Day)
		fmt.Fprintln(w, border("┌", "┬", "┐", widths))
		row(w, widths, right, "Rank", "Name", "Part 1", "Part 2")
		fmt.Fprintln(w, border("├", "┼", "┤", widths))
		for i, r := range t.Rows {
			part2 := "-"
			if r.Part2 != nil {
				part2 = FormatDuration(*r.Part2)
			}
			row(w, widths, right, strconv.Itoa(i+1), r.Name, FormatDuration(r.Part1), part2)
		}
		fmt.Fprintln(w, border("├", "┼", "┤", widths))
		avg1, avg2 := "-", "-"
		if t.Average.Part1 != nil {
			avg1 = FormatDuration(*t.Average.Part1)
		}
		if t.Average.Part2 != nil {
			avg2 = FormatDuration(*t.Average.Part2)
		}
		row(w, widths, right, "", "Average", avg1, avg2)
		fmt.Fprintln(w, border("└", "┴", "┘", widths))
	}
}
