// Package scores keeps the persistent high-score table: a small
// tab-separated file holding the ten best results, one line per game.
package scores

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/julmajustus/tetris/game"
)

const maxEntries = 10

// Entry is one finished game on the table.
type Entry struct {
	Total  int64  `json:"total"`
	Points int64  `json:"points"`
	Level  int    `json:"level"`
	Name   string `json:"name"`
}

// Store reads and writes the high-score file. The zero value is unusable;
// construct one with NewStore or DefaultStore.
type Store struct {
	path string
}

// NewStore uses the given file path verbatim.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore places the table under $XDG_STATE_HOME/games, falling back
// to $HOME/.local/state/games.
func DefaultStore() (*Store, error) {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home := os.Getenv("HOME")
		if home == "" {
			return nil, fmt.Errorf("neither XDG_STATE_HOME nor HOME is set")
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return NewStore(filepath.Join(dir, "games", "tetris.scores")), nil
}

// PlayerName resolves the name recorded with a score, $LOGNAME or a
// placeholder.
func PlayerName() string {
	if name := os.Getenv("LOGNAME"); name != "" {
		return name
	}
	return "anonymous"
}

// Record appends the finished game to the table and compacts the file back
// down to the best ten entries. Games finishing at the same time serialize
// on a lock file, so no entry is lost to a concurrent read-modify-write.
func (s *Store) Record(final game.FinalScore, name string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	lock, err := os.OpenFile(s.path+".lock", os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open score lock: %w", err)
	}
	defer lock.Close()
	if err := unix.Flock(int(lock.Fd()), unix.LOCK_EX); err != nil {
		return fmt.Errorf("lock score file: %w", err)
	}
	defer unix.Flock(int(lock.Fd()), unix.LOCK_UN)

	entries, err := s.Load()
	if err != nil {
		return err
	}
	entries = append(entries, Entry{
		Total:  final.Total,
		Points: final.Points,
		Level:  final.Level,
		Name:   name,
	})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total > entries[j].Total
	})
	if len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}
	return s.save(entries)
}

// Load reads the table, best first. A missing file is an empty table.
func (s *Store) Load() ([]Entry, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open high-score file: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		// The name is everything after the third tab, so names holding
		// spaces survive the round trip. Lines a human edited into
		// something unparsable are skipped, the rest of the file stays
		// usable.
		fields := strings.SplitN(line, "\t", 4)
		if len(fields) != 4 {
			continue
		}
		var e Entry
		var err error
		if e.Total, err = strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64); err != nil {
			continue
		}
		if e.Points, err = strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64); err != nil {
			continue
		}
		if e.Level, err = strconv.Atoi(strings.TrimSpace(fields[2])); err != nil {
			continue
		}
		e.Name = fields[3]
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read high-score file: %w", err)
	}
	return entries, nil
}

func (s *Store) save(entries []Entry) error {
	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "%7d\t %5d\t  %3d\t%s\n", e.Total, e.Points, e.Level, e.Name)
	}
	if err := os.WriteFile(s.path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write high-score file: %w", err)
	}
	return nil
}

// Format renders the table the way it prints after a game.
func Format(entries []Entry) string {
	var sb strings.Builder
	sb.WriteString("  Score\tPoints\tLevel\tName\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "%7d\t %5d\t  %3d\t%s\n", e.Total, e.Points, e.Level, e.Name)
	}
	return sb.String()
}
