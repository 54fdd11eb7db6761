// Package config resolves the invocation surface once at process start, so
// the fetch/stats/render core never touches arguments or the environment.
package config

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// Config is the resolved invocation: which board to fetch and the session
// token that authorizes the read.
type Config struct {
	BoardID string
	Session string
}

// Usage is printed to stderr when the invocation cannot be resolved.
const Usage = `usage:
  aoc <leaderboard-url>
  aoc <board-id> <session-token>
  AOC_BOARD_ID=<id> AOC_SESSION=<token> aoc`

// Resolve determines board id and session token from, in order of the
// argument count: the environment, a full leaderboard URL, or an id+token
// pair. getenv is injected so tests run without process state.
func Resolve(args []string, getenv func(string) string) (Config, error) {
	switch len(args) {
	case 0:
		id, tok := getenv("AOC_BOARD_ID"), getenv("AOC_SESSION")
		if id == "" || tok == "" {
			return Config{}, errors.New("AOC_BOARD_ID and AOC_SESSION are not both set")
		}
		return Config{BoardID: id, Session: tok}, nil
	case 1:
		return fromURL(args[0])
	case 2:
		if args[0] == "" || args[1] == "" {
			return Config{}, errors.New("board id and session token must be non-empty")
		}
		return Config{BoardID: args[0], Session: args[1]}, nil
	default:
		return Config{}, errors.Errorf("expected at most 2 arguments, got %d", len(args))
	}
}

// fromURL extracts the board id and session token from a full leaderboard
// URL like https://host/2020/leaderboard/private/view/123456.json?session=x.
func fromURL(raw string) (Config, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Config{}, errors.Wrap(err, "parse leaderboard url")
	}
	tok := u.Query().Get("session")
	if tok == "" {
		return Config{}, errors.New("url has no session query parameter")
	}
	seg := u.Path[strings.LastIndex(u.Path, "/")+1:]
	id := strings.TrimSuffix(seg, ".json")
	if id == "" {
		return Config{}, errors.New("url path has no board id")
	}
	return Config{BoardID: id, Session: tok}, nil
}
