package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pefman/aoc-leaderboard/internal/aoc"
	"github.com/pefman/aoc-leaderboard/internal/models"
	"github.com/pefman/aoc-leaderboard/internal/render"
	"github.com/pefman/aoc-leaderboard/internal/stats"
)

// server bundles what the handlers need: the upstream client and the board
// credentials resolved at startup. Every request triggers one fresh fetch;
// nothing is cached between requests.
type server struct {
	client  *aoc.Client
	boardID string
	session string
}

func (s *server) routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/leaderboard", s.handleOverall).Methods(http.MethodGet)
	r.HandleFunc("/api/leaderboard/day/{day:[0-9]+}", s.handleDay).Methods(http.MethodGet)
	r.HandleFunc("/api/healthz", handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/", s.handleText).Methods(http.MethodGet)
	return r
}

func (s *server) snapshot(r *http.Request) (*models.Leaderboard, []stats.MemberStats, error) {
	lb, err := s.client.FetchLeaderboard(r.Context(), s.boardID, s.session)
	if err != nil {
		return nil, nil, err
	}
	return lb, stats.Compute(lb), nil
}

type overallEntry struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Score int    `json:"score"`
	Stars int    `json:"stars"`
}

type overallResponse struct {
	Event   string         `json:"event"`
	NumDays int            `json:"num_days"`
	Members []overallEntry `json:"members"`
}

// GET /api/leaderboard
func (s *server) handleOverall(w http.ResponseWriter, r *http.Request) {
	lb, members, err := s.snapshot(r)
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	out := overallResponse{Event: lb.Event, NumDays: lb.NumDays, Members: []overallEntry{}}
	for i, m := range members {
		out.Members = append(out.Members, overallEntry{
			Rank:  i + 1,
			Name:  m.Name,
			Score: m.LocalScore,
			Stars: m.Stars,
		})
	}
	writeJSON(w, out)
}

type dayEntry struct {
	Rank         int    `json:"rank"`
	Name         string `json:"name"`
	Part1Seconds int64  `json:"part1_seconds"`
	Part1        string `json:"part1"`
	Part2Seconds *int64 `json:"part2_seconds,omitempty"`
	Part2        string `json:"part2"`
}

type dayResponse struct {
	Day          int        `json:"day"`
	Rows         []dayEntry `json:"rows"`
	AveragePart1 string     `json:"average_part1"`
	AveragePart2 string     `json:"average_part2"`
}

// GET /api/leaderboard/day/{day}
func (s *server) handleDay(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(mux.Vars(r)["day"])
	if err != nil || day < 1 {
		writeError(w, http.StatusBadRequest, "invalid day")
		return
	}
	lb, members, err := s.snapshot(r)
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	for _, t := range stats.BuildDayTables(members, lb.NumDays) {
		if t.Day != day {
			continue
		}
		out := dayResponse{Day: day, Rows: []dayEntry{}, AveragePart1: "-", AveragePart2: "-"}
		for i, row := range t.Rows {
			e := dayEntry{
				Rank:         i + 1,
				Name:         row.Name,
				Part1Seconds: row.Part1,
				Part1:        render.FormatDuration(row.Part1),
				Part2:        "-",
			}
			if row.Part2 != nil {
				e.Part2Seconds = row.Part2
				e.Part2 = render.FormatDuration(*row.Part2)
			}
			out.Rows = append(out.Rows, e)
		}
		if t.Average.Part1 != nil {
			out.AveragePart1 = render.FormatDuration(*t.Average.Part1)
		}
		if t.Average.Part2 != nil {
			out.AveragePart2 = render.FormatDuration(*t.Average.Part2)
		}
		writeJSON(w, out)
		return
	}
	writeError(w, http.StatusNotFound, "no completions for that day")
}

// GET / serves the same text rendering the CLI prints.
func (s *server) handleText(w http.ResponseWriter, r *http.Request) {
	lb, members, err := s.snapshot(r)
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	render.Overall(w, lb.Event, members, lb.NumDays)
	render.Days(w, stats.BuildDayTables(members, lb.NumDays))
}

// GET /api/healthz
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// writeUpstreamError maps fetch/parse failures to 502 and anything else
// (context cancellation, transport errors) to 500.
func (s *server) writeUpstreamError(w http.ResponseWriter, err error) {
	log.Printf("fetch: board=%s: %v", s.boardID, err)
	var se *aoc.StatusError
	var pe *aoc.ParseError
	if errors.As(err, &se) || errors.As(err, &pe) {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":   http.StatusText(code),
		"message": msg,
		"status":  code,
	})
}
