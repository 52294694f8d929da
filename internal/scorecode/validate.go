// Package scorecode turns finished runs into short tamper-evident codes and
// decides whether a claimed score is plausible before it reaches the
// leaderboard.
package scorecode

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/skunk-squad/internal/config"
	"github.com/vovakirdan/skunk-squad/internal/level"
)

// Record is the result of one run.
type Record struct {
	Score        int64
	LevelReached int // 1-based
	Kills        int
	Timestamp    int64 // epoch seconds
	ChecksumSeed uint32
}

// Reason explains a validation outcome.
type Reason int

const (
	ReasonOK Reason = iota
	ReasonNegative
	ReasonNonIntegral
	ReasonLevelRange
	ReasonKills
	ReasonImplausible
	ReasonTimestamp
)

func (r Reason) String() string {
	switch r {
	case ReasonOK:
		return "ok"
	case ReasonNegative:
		return "negative score"
	case ReasonNonIntegral:
		return "score is not an integer"
	case ReasonLevelRange:
		return "level out of range"
	case ReasonKills:
		return "kill count out of range"
	case ReasonImplausible:
		return "score exceeds what the levels allow"
	case ReasonTimestamp:
		return "timestamp out of range"
	default:
		return "unknown"
	}
}

// Limits bounds what a legitimate run can produce.
type Limits struct {
	Budgets           []int // enemy budget per level, in play order
	MaxPointsPerKill  int
	LevelClearBonus   int
	EarliestTimestamp int64
	FutureSkew        int64
}

// LimitsFor derives limits from the game configuration and level set.
func LimitsFor(cfg config.GameConfig, levels []level.Level) Limits {
	budgets := make([]int, len(levels))
	for i, l := range levels {
		budgets[i] = l.Enemies.Budget
	}
	return Limits{
		Budgets:           budgets,
		MaxPointsPerKill:  cfg.MaxPointsPerKill(),
		LevelClearBonus:   cfg.Score.LevelClearBonus,
		EarliestTimestamp: cfg.Score.EarliestTimestamp,
		FutureSkew:        cfg.Score.FutureSkew,
	}
}

// MaxKills returns the most enemies that can be defeated up to level n.
func (l Limits) MaxKills(n int) int {
	total := 0
	for i := 0; i < n && i < len(l.Budgets); i++ {
		total += l.Budgets[i]
	}
	return total
}

// MaxScore returns the highest score reachable up to level n: every budgeted
// enemy at the best point value plus every clear bonus.
func (l Limits) MaxScore(n int) int64 {
	return int64(l.MaxKills(n))*int64(l.MaxPointsPerKill) + int64(n)*int64(l.LevelClearBonus)
}

// Validate checks a record against the limits at time now.
func Validate(r Record, lim Limits, now time.Time) (bool, Reason) {
	switch {
	case r.Score < 0:
		return false, ReasonNegative
	case r.LevelReached < 1 || r.LevelReached > len(lim.Budgets):
		return false, ReasonLevelRange
	case r.Kills < 0 || r.Kills > lim.MaxKills(r.LevelReached):
		return false, ReasonKills
	case r.Score > lim.MaxScore(r.LevelReached):
		return false, ReasonImplausible
	case r.Timestamp < lim.EarliestTimestamp || r.Timestamp > now.Unix()+lim.FutureSkew:
		return false, ReasonTimestamp
	}
	return true, ReasonOK
}

// ParseScore reads a score typed by a user. Fractional values are rejected
// with ReasonNonIntegral, negative ones with ReasonNegative.
func ParseScore(s string) (int64, Reason) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		if v < 0 {
			return 0, ReasonNegative
		}
		return v, ReasonOK
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, ReasonNonIntegral
	}
	if f < 0 {
		return 0, ReasonNegative
	}
	if f > math.MaxInt64 {
		return 0, ReasonImplausible
	}
	return int64(f), ReasonOK
}
