package speedtest

import (
	"strings"
	"time"
)

type Level string

const (
	LevelEasy   Level = "easy"
	LevelMedium Level = "medium"
	LevelHard   Level = "hard"
)

var AllLevels = []Level{
	LevelEasy,
	LevelMedium,
	LevelHard,
}

var perQuestion = map[Level]time.Duration{
	LevelEasy:   45 * time.Second,
	LevelMedium: 60 * time.Second,
	LevelHard:   90 * time.Second,
}

// ParseLevel accepts any casing.
func ParseLevel(s string) (Level, bool) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	return l, l.IsValid()
}

func (l Level) IsValid() bool {
	for _, v := range AllLevels {
		if l == v {
			return true
		}
	}
	return false
}

// TimeLimit is the advisory budget for n questions at this level.
func (l Level) TimeLimit(n int) time.Duration {
	return perQuestion[l] * time.Duration(n)
}
