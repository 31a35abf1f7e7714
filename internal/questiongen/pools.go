package questiongen

import (
	"math/rand/v2"

	"github.com/abhisek/mathaxy/internal/levels"
)

// pools holds the combination space split by class. Each slice is
// shuffled independently per generation call.
type pools struct {
	zero  []pair
	carry []pair
	plain []pair
	all   []pair
}

func newPools(r *rand.Rand) pools {
	var p pools
	p.all = make([]pair, 0, SpaceSize)
	for a := 0; a <= MaxAddend; a++ {
		for b := 0; b <= MaxAddend; b++ {
			c := pair{a, b}
			p.all = append(p.all, c)
			switch c.class() {
			case ClassZero:
				p.zero = append(p.zero, c)
			case ClassCarry:
				p.carry = append(p.carry, c)
			default:
				p.plain = append(p.plain, c)
			}
		}
	}

	for _, s := range [][]pair{p.zero, p.carry, p.plain, p.all} {
		r.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
	}
	return p
}

// draft is a question set under construction. The used set is local to one
// generation call.
type draft struct {
	constraint levels.Constraint
	used       map[pair]bool
	picked     []pair
	zeros      int
	carries    int
}

func newDraft(c levels.Constraint, count int) *draft {
	return &draft{
		constraint: c,
		used:       make(map[pair]bool, count),
		picked:     make([]pair, 0, count),
	}
}

// eligible applies uniqueness and the hard zero-addend filters.
func (d *draft) eligible(p pair) bool {
	if d.used[p] {
		return false
	}
	if p.isZero() && !d.constraint.AllowsZero(d.zeros) {
		return false
	}
	return true
}

func (d *draft) add(p pair) {
	d.used[p] = true
	d.picked = append(d.picked, p)
	if p.isZero() {
		d.zeros++
	}
	if p.isCarry() {
		d.carries++
	}
}

func (d *draft) len() int { return len(d.picked) }

// hasEligible reports whether pool still contains a candidate d can take.
func (d *draft) hasEligible(pool []pair) bool {
	for _, p := range pool {
		if d.eligible(p) {
			return true
		}
	}
	return false
}

func (d *draft) questions(timeLimitSeconds float64) []Question {
	out := make([]Question, len(d.picked))
	for i, p := range d.picked {
		out[i] = p.question(timeLimitSeconds)
	}
	return out
}

// Capacity returns the largest set Generate can build for level.
func Capacity(level int) int {
	return capacity(levels.ConstraintFor(level))
}

// MaxCount is the largest count every level can satisfy.
func MaxCount() int {
	n := SpaceSize
	for l := 1; l <= levels.TotalLevels; l++ {
		n = min(n, Capacity(l))
	}
	return n
}

// capacity returns how many unique combinations the hard filters of c
// admit.
func capacity(c levels.Constraint) int {
	nonZero := MaxAddend * MaxAddend
	zeroPairs := SpaceSize - nonZero
	limit := c.EffectiveMaxZero()
	if limit == levels.Unbounded || limit > zeroPairs {
		limit = zeroPairs
	}
	return nonZero + limit
}
