package main

import (
	"log"
	"net/http"
	"os"

	"github.com/pefman/aoc-leaderboard/internal/aoc"
)

// ========================= Config (env-configurable) =========================
// Defaults can be overridden via environment variables:
//   PORT / SERVER_PORT   (default: 8080)
//   AOC_BOARD_ID         leaderboard to serve (required)
//   AOC_SESSION          session token for the upstream read (required)
//   AOC_BASE_URL         upstream override for dev/test

// Build metadata injected via -ldflags at build time
var (
	buildVersion = "dev"
	buildTime    = ""
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	boardID := os.Getenv("AOC_BOARD_ID")
	session := os.Getenv("AOC_SESSION")
	if boardID == "" || session == "" {
		log.Fatalf("AOC_BOARD_ID and AOC_SESSION must be set")
	}
	s := &server{
		client:  aoc.NewClient(os.Getenv("AOC_BASE_URL")),
		boardID: boardID,
		session: session,
	}

	// Prefer Cloud Run's PORT env var when present
	port := os.Getenv("PORT")
	if port == "" {
		port = getenv("SERVER_PORT", "8080")
	}
	addr := ":" + port
	log.Printf("server: aoc leaderboard %s listening on %s (board=%s)", buildVersion, addr, boardID)
	log.Fatal(http.ListenAndServe(addr, s.routes()))
}
