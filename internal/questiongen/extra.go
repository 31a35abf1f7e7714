package questiongen

import (
	"fmt"

	"github.com/abhisek/mathaxy/internal/levels"
)

// The generators below ignore level constraints. They pick unique
// combinations from a filtered space and carry no time limit.

// Random returns count unique questions drawn uniformly from the full space.
func (g *Generator) Random(count int) ([]Question, error) {
	return g.where(count, func(pair) bool { return true })
}

// AnswerRange returns count unique questions whose answer lies in
// [minAnswer, maxAnswer].
func (g *Generator) AnswerRange(minAnswer, maxAnswer, count int) ([]Question, error) {
	return g.where(count, func(p pair) bool {
		return p.sum() >= minAnswer && p.sum() <= maxAnswer
	})
}

// Carry returns count unique questions that need a carry (sum >= 10).
func (g *Generator) Carry(count int) ([]Question, error) {
	return g.where(count, pair.isCarry)
}

// ByDifficulty returns count unique questions of the given difficulty.
func (g *Generator) ByDifficulty(d Difficulty, count int) ([]Question, error) {
	return g.where(count, func(p pair) bool { return p.difficulty() == d })
}

// Mixed returns count unique questions of which at least
// int(count*carryRatio) need a carry, shuffled together.
func (g *Generator) Mixed(carryRatio float64, count int) ([]Question, error) {
	if carryRatio < 0 || carryRatio > 1 {
		return nil, fmt.Errorf("carry ratio %.2f not in [0, 1]", carryRatio)
	}
	if count < 1 || count > SpaceSize {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidCount, count, SpaceSize)
	}

	carryCount := int(float64(count) * carryRatio)
	r := g.newRand()
	p := newPools(r)
	if carryCount > len(p.carry) {
		return nil, fmt.Errorf("%w: %d carry questions requested, %d exist", ErrInvalidCount, carryCount, len(p.carry))
	}

	d := newDraft(levels.Unconstrained, count)
	for _, cand := range p.carry[:carryCount] {
		d.add(cand)
	}
	for _, cand := range p.all {
		if d.len() >= count {
			break
		}
		if d.eligible(cand) {
			d.add(cand)
		}
	}
	r.Shuffle(len(d.picked), func(i, j int) { d.picked[i], d.picked[j] = d.picked[j], d.picked[i] })
	return d.questions(0), nil
}

func (g *Generator) where(count int, keep func(pair) bool) ([]Question, error) {
	if count < 1 || count > SpaceSize {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidCount, count, SpaceSize)
	}

	p := newPools(g.newRand())
	d := newDraft(levels.Unconstrained, count)
	for _, cand := range p.all {
		if d.len() >= count {
			break
		}
		if keep(cand) {
			d.add(cand)
		}
	}
	if d.len() < count {
		return nil, fmt.Errorf("%w: only %d matching combinations, requested %d", ErrInvalidCount, d.len(), count)
	}
	return d.questions(0), nil
}
