package questiongen

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/mathaxy/internal/levels"
)

// Observer receives one report per successful Generate call.
type Observer interface {
	ObserveGeneration(r Report)
}

// Report describes how a question set was produced.
type Report struct {
	Level    int
	Count    int
	Attempts int  // random probes spent in the fill phase
	Relaxed  bool // the relaxed sweep ran after the attempt budget
	Fallback bool // deterministic construction replaced the random draft
	Zeros    int
	Carries  int
}

// Generator produces constrained question sets. It holds no state shared
// between calls other than the seed counter, and is safe for concurrent use.
type Generator struct {
	maxAttempts int
	observer    Observer
	logger      *zap.Logger

	seeded  bool
	seed    uint64
	seedMu  sync.Mutex
	seedSeq uint64
}

// Option configures a Generator.
type Option func(*Generator)

// WithMaxAttempts overrides the randomized fill budget.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// WithSeed makes the sequence of generated sets reproducible. Each call
// still gets its own source, derived from seed and a call counter.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seeded = true
		g.seed = seed
	}
}

// WithObserver registers an observer for generation reports.
func WithObserver(o Observer) Option {
	return func(g *Generator) { g.observer = o }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		maxAttempts: DefaultMaxAttempts,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// newRand returns an independent source for one call.
func (g *Generator) newRand() *rand.Rand {
	if !g.seeded {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	g.seedMu.Lock()
	defer g.seedMu.Unlock()
	g.seedSeq++
	return rand.New(rand.NewPCG(g.seed, g.seedSeq))
}

// Generate returns count unique questions for level that satisfy the
// level's constraint tuple.
func (g *Generator) Generate(level, count int) ([]Question, error) {
	if count < 1 || count > SpaceSize {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidCount, count, SpaceSize)
	}

	c := levels.ConstraintFor(level)
	if limit := capacity(c); count > limit {
		return nil, fmt.Errorf("%w: level %d admits %d, requested %d", ErrUnsatisfiable, level, limit, count)
	}

	r := g.newRand()
	p := newPools(r)
	report := Report{Level: level, Count: count}

	d := g.sample(r, p, c, count, &report)

	// The minimum can only be met when count leaves room for it.
	target := min(c.MinTwoDigitSum, count)
	if d.carries < target || d.len() < count {
		g.logger.Debug("random draft missed constraints, constructing deterministically",
			zap.Int("level", level),
			zap.Int("count", count),
			zap.Int("carries", d.carries),
			zap.Int("min_two_digit", c.MinTwoDigitSum),
			zap.Int("attempts", report.Attempts),
		)
		d = construct(p, c, count)
		report.Fallback = true
	}

	// Neither phase overshoots, but the contract is exactly count.
	if len(d.picked) > count {
		d.picked = d.picked[:count]
	}

	report.Zeros = d.zeros
	report.Carries = d.carries
	if g.observer != nil {
		g.observer.ObserveGeneration(report)
	}

	return d.questions(levels.Get(level).QuestionTimeLimit()), nil
}

// sample is the randomized phase: seed the carry minimum, then fill by pool
// priority with random probes until count is reached or the attempt budget
// runs out.
func (g *Generator) sample(r *rand.Rand, p pools, c levels.Constraint, count int, report *Report) *draft {
	d := newDraft(c, count)

	if c.MinTwoDigitSum > 0 {
		for _, cand := range p.carry {
			if d.carries >= c.MinTwoDigitSum || d.len() >= count {
				break
			}
			if d.eligible(cand) {
				d.add(cand)
			}
		}
	}

	// Unconstrained levels sample the whole space uniformly; the priority
	// order only matters when zero and carry slots must be protected.
	priority := [][]pair{p.plain, p.carry, p.zero, p.all}
	if c.IsUnconstrained() {
		priority = [][]pair{p.all}
	}

	for d.len() < count && report.Attempts < g.maxAttempts {
		pool := firstWithEligible(d, priority)
		if pool == nil {
			break
		}
		report.Attempts++
		cand := pool[r.IntN(len(pool))]
		if d.eligible(cand) {
			d.add(cand)
		}
	}

	// Escape valve for an exhausted budget: sweep the shuffled full space
	// without pool priority.
	if d.len() < count {
		report.Relaxed = true
		for _, cand := range p.all {
			if d.len() >= count {
				break
			}
			if d.eligible(cand) {
				d.add(cand)
			}
		}
	}

	return d
}

func firstWithEligible(d *draft, priority [][]pair) []pair {
	for _, pool := range priority {
		if d.hasEligible(pool) {
			return pool
		}
	}
	return nil
}

// construct is the deterministic fallback. It discards any random progress,
// takes carry combinations in pool order until the minimum is met, then fills
// from the full space in order under the zero-addend filters.
func construct(p pools, c levels.Constraint, count int) *draft {
	d := newDraft(c, count)
	for _, cand := range p.carry {
		if d.carries >= c.MinTwoDigitSum || d.len() >= count {
			break
		}
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
	return d
}
