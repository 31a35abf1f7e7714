package levels

import (
	"fmt"
	"time"
)

const (
	// TotalLevels is the number of playable levels.
	TotalLevels = 10

	// QuestionsPerLevel is the default question set size.
	QuestionsPerLevel = 20

	// DefaultTimePerQuestion is used when a level carries no timing of its own.
	DefaultTimePerQuestion = 15 * time.Second

	// MaxErrorsPerLevel is the error budget for the timed levels (6-10).
	MaxErrorsPerLevel = 10

	// SkipCheckCount is the number of consecutive answers inspected by the
	// fast-run (skip level) detection.
	SkipCheckCount = 10
)

// Mode describes how a level is timed.
type Mode string

const (
	// ModeTotalTime gives the whole level a single countdown.
	ModeTotalTime Mode = "total_time"

	// ModePerQuestion restarts the countdown for every question.
	ModePerQuestion Mode = "per_question"
)

// Config is the display and timing configuration of a level.
type Config struct {
	Level           int
	Mode            Mode
	TotalTime       time.Duration // ModeTotalTime only
	PerQuestionTime time.Duration // ModePerQuestion only
	MaxErrors       int           // 0 = unlimited
	Description     string
}

var configs = [...]Config{
	{Level: 1, Mode: ModeTotalTime, TotalTime: 300 * time.Second, Description: "5 minutes total (about 15s per question)"},
	{Level: 2, Mode: ModeTotalTime, TotalTime: 240 * time.Second, Description: "4 minutes total (about 12s per question)"},
	{Level: 3, Mode: ModeTotalTime, TotalTime: 180 * time.Second, Description: "3 minutes total (about 9s per question)"},
	{Level: 4, Mode: ModeTotalTime, TotalTime: 120 * time.Second, Description: "2 minutes total (about 6s per question)"},
	{Level: 5, Mode: ModeTotalTime, TotalTime: 90 * time.Second, Description: "90 seconds total (about 4.5s per question)"},
	{Level: 6, Mode: ModeTotalTime, TotalTime: 60 * time.Second, MaxErrors: MaxErrorsPerLevel, Description: "60 seconds total"},
	{Level: 7, Mode: ModePerQuestion, PerQuestionTime: 5 * time.Second, MaxErrors: MaxErrorsPerLevel, Description: "5 seconds per question"},
	{Level: 8, Mode: ModePerQuestion, PerQuestionTime: 4 * time.Second, MaxErrors: MaxErrorsPerLevel, Description: "4 seconds per question"},
	{Level: 9, Mode: ModePerQuestion, PerQuestionTime: 3 * time.Second, MaxErrors: MaxErrorsPerLevel, Description: "3 seconds per question"},
	{Level: 10, Mode: ModePerQuestion, PerQuestionTime: 2500 * time.Millisecond, MaxErrors: MaxErrorsPerLevel, Description: "2.5 seconds per question"},
}

// Get returns the configuration for level. Unknown levels fall back to
// level 1.
func Get(level int) Config {
	if !Valid(level) {
		return configs[0]
	}
	return configs[level-1]
}

// All returns every level configuration in order.
func All() []Config {
	out := make([]Config, len(configs))
	copy(out, configs[:])
	return out
}

// Valid reports whether level is one of the playable levels.
func Valid(level int) bool {
	return level >= 1 && level <= TotalLevels
}

// TimeLimit returns the countdown that starts the level: the whole-level
// budget in total-time mode, or the per-question budget otherwise.
func (c Config) TimeLimit() time.Duration {
	switch c.Mode {
	case ModePerQuestion:
		if c.PerQuestionTime > 0 {
			return c.PerQuestionTime
		}
		return DefaultTimePerQuestion
	default:
		if c.TotalTime > 0 {
			return c.TotalTime
		}
		return DefaultTimePerQuestion * QuestionsPerLevel
	}
}

// AveragePerQuestion returns the average budget per question for
// total-time levels, and false for per-question levels.
func (c Config) AveragePerQuestion() (time.Duration, bool) {
	if c.Mode != ModeTotalTime || c.TotalTime == 0 {
		return 0, false
	}
	return c.TotalTime / QuestionsPerLevel, true
}

// QuestionTimeLimit is the per-question limit in seconds carried on every
// generated question. Zero for total-time levels.
func (c Config) QuestionTimeLimit() float64 {
	if c.Mode != ModePerQuestion {
		return 0
	}
	return c.PerQuestionTime.Seconds()
}

func (c Config) String() string {
	return fmt.Sprintf("Level %d: %s", c.Level, c.Description)
}
