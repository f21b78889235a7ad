package game

import "math"

// Base points per rows cleared in a single lock-cycle, scaled by level.
var scoreTable = [5]int64{0, 40, 100, 300, 1200}

// linesPerLevel is how many cumulative cleared lines advance the level.
const linesPerLevel = 10

// Progress tracks points, level and the cleared-lines counter that drives
// level-ups. Points and level never decrease within one game.
type Progress struct {
	Points int64 `json:"points"`
	Level  int   `json:"level"`
	Lines  int   `json:"lines"` // cleared lines toward the next level, wraps at linesPerLevel
}

// NewProgress returns the state of a freshly started game.
func NewProgress() Progress {
	return Progress{Level: 1}
}

// AwardClears adds the points for one clear-cycle and advances the level
// for every full linesPerLevel of cumulative cleared lines. It returns false
// when the addition would overflow the score, which ends the game as a win
// instead of wrapping.
func (p *Progress) AwardClears(clears int) bool {
	if clears == 0 {
		return true
	}
	pts := scoreTable[clears] * int64(p.Level)
	if p.Points > math.MaxInt64-pts {
		return false
	}
	p.Points += pts
	p.Lines += clears
	for p.Lines >= linesPerLevel {
		p.Lines -= linesPerLevel
		p.Level++
	}
	return true
}

// AwardDrop adds the hard-drop bonus: one point per row dropped. The same
// overflow guard applies as for line clears.
func (p *Progress) AwardDrop(rows int) bool {
	if p.Points > math.MaxInt64-int64(rows) {
		return false
	}
	p.Points += int64(rows)
	return true
}

// FinalScore is the score feed exposed when a session ends, for display and
// for the high-score table.
type FinalScore struct {
	Points int64 `json:"points"`
	Level  int   `json:"level"`
	Total  int64 `json:"total"` // points * level
	Won    bool  `json:"won"`
}

// Final computes the score feed for the current progress.
func (p Progress) Final(won bool) FinalScore {
	return FinalScore{
		Points: p.Points,
		Level:  p.Level,
		Total:  p.Points * int64(p.Level),
		Won:    won,
	}
}
