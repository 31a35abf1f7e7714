package questiongen

import (
	"errors"
	"fmt"
)

const (
	// MaxAddend is the largest addend; addends range over [0, MaxAddend].
	MaxAddend = 9

	// SpaceSize is the number of ordered addend pairs.
	SpaceSize = (MaxAddend + 1) * (MaxAddend + 1)

	// DefaultMaxAttempts bounds the randomized fill phase.
	DefaultMaxAttempts = 10000
)

var (
	// ErrInvalidCount is returned when the requested count is outside [1, SpaceSize].
	ErrInvalidCount = errors.New("invalid question count")

	// ErrUnsatisfiable is returned when a level's hard filters leave fewer
	// unique combinations than requested.
	ErrUnsatisfiable = errors.New("not enough combinations for level constraints")
)

// Question is one addition problem. Build it with NewQuestion so that
// CorrectAnswer always equals Addend1 + Addend2.
type Question struct {
	Addend1          int     `json:"addend1" yaml:"addend1"`
	Addend2          int     `json:"addend2" yaml:"addend2"`
	CorrectAnswer    int     `json:"correct_answer" yaml:"correct_answer"`
	TimeLimitSeconds float64 `json:"time_limit_seconds" yaml:"time_limit_seconds"`
}

// NewQuestion builds a question for a + b.
func NewQuestion(a, b int, timeLimitSeconds float64) Question {
	return Question{
		Addend1:          a,
		Addend2:          b,
		CorrectAnswer:    a + b,
		TimeLimitSeconds: timeLimitSeconds,
	}
}

// Text is the prompt shown to the player.
func (q Question) Text() string {
	return fmt.Sprintf("%d + %d = ?", q.Addend1, q.Addend2)
}

// Combination is the ordered uniqueness key, e.g. "3+5". "3+5" and "5+3"
// are different combinations.
func (q Question) Combination() string {
	return pair{q.Addend1, q.Addend2}.String()
}

// Class returns the compositional class of the question.
func (q Question) Class() Class {
	return pair{q.Addend1, q.Addend2}.class()
}

// Class partitions the combination space.
type Class int

const (
	ClassPlain Class = iota // no zero addend, sum < 10
	ClassZero               // at least one addend is 0
	ClassCarry              // sum >= 10
)

func (c Class) String() string {
	switch c {
	case ClassZero:
		return "zero"
	case ClassCarry:
		return "carry"
	default:
		return "plain"
	}
}

// Difficulty buckets a question by its sum.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"   // sum <= 5
	DifficultyMedium Difficulty = "medium" // 5 < sum <= 10
	DifficultyHard   Difficulty = "hard"   // sum > 10
)

// DifficultyOf returns the difficulty bucket of q.
func DifficultyOf(q Question) Difficulty {
	return pair{q.Addend1, q.Addend2}.difficulty()
}

// pair is an ordered combination (a, b).
type pair struct{ a, b int }

func (p pair) String() string { return fmt.Sprintf("%d+%d", p.a, p.b) }

func (p pair) sum() int { return p.a + p.b }

func (p pair) isZero() bool { return p.a == 0 || p.b == 0 }

func (p pair) isCarry() bool { return p.sum() >= 10 }

// class relies on zero and carry being disjoint: a zero pair sums to at
// most MaxAddend.
func (p pair) class() Class {
	switch {
	case p.isZero():
		return ClassZero
	case p.isCarry():
		return ClassCarry
	default:
		return ClassPlain
	}
}

func (p pair) difficulty() Difficulty {
	switch s := p.sum(); {
	case s <= 5:
		return DifficultyEasy
	case s <= 10:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

func (p pair) question(timeLimitSeconds float64) Question {
	return NewQuestion(p.a, p.b, timeLimitSeconds)
}

// Validate reports whether q is well formed: addends in range and a
// consistent answer.
func Validate(q Question) bool {
	if q.Addend1 < 0 || q.Addend1 > MaxAddend || q.Addend2 < 0 || q.Addend2 > MaxAddend {
		return false
	}
	return q.CorrectAnswer == q.Addend1+q.Addend2
}

// CheckAnswer reports whether answer solves q.
func CheckAnswer(q Question, answer int) bool {
	return answer == q.CorrectAnswer
}
