package levels

// Unbounded marks a constraint limit that does not apply.
const Unbounded = -1

// Constraint governs the composition of a generated question set.
type Constraint struct {
	// MaxZeroAddend caps how many questions may have a zero addend.
	// Unbounded disables the cap.
	MaxZeroAddend int

	// MinTwoDigitSum is the least number of questions whose sum is >= 10.
	MinTwoDigitSum int

	// ForbidZeroAddend bans zero addends entirely. Overrides MaxZeroAddend.
	ForbidZeroAddend bool
}

// Unconstrained is the tuple applied to levels without a table entry.
var Unconstrained = Constraint{MaxZeroAddend: Unbounded}

// The hard levels. Levels 1-5 and unknown levels are unconstrained. Levels
// 7-9 step between the level 6 and level 10 tuples.
var constraints = map[int]Constraint{
	6:  {MaxZeroAddend: 2, MinTwoDigitSum: 0},
	7:  {MaxZeroAddend: 2, MinTwoDigitSum: 3},
	8:  {MaxZeroAddend: 1, MinTwoDigitSum: 5},
	9:  {MaxZeroAddend: 1, MinTwoDigitSum: 6},
	10: {MaxZeroAddend: 0, MinTwoDigitSum: 7, ForbidZeroAddend: true},
}

// ConstraintFor returns the constraint tuple for level.
func ConstraintFor(level int) Constraint {
	if c, ok := constraints[level]; ok {
		return c
	}
	return Unconstrained
}

// EffectiveMaxZero returns the zero-addend cap after ForbidZeroAddend is
// applied. Unbounded when there is no cap.
func (c Constraint) EffectiveMaxZero() int {
	if c.ForbidZeroAddend {
		return 0
	}
	return c.MaxZeroAddend
}

// IsUnconstrained reports whether c imposes no compositional rule.
func (c Constraint) IsUnconstrained() bool {
	return c.EffectiveMaxZero() == Unbounded && c.MinTwoDigitSum <= 0
}

// AllowsZero reports whether another zero-addend question may be added to a
// set that already holds have of them.
func (c Constraint) AllowsZero(have int) bool {
	limit := c.EffectiveMaxZero()
	return limit == Unbounded || have < limit
}
