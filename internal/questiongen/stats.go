package questiongen

// SetStats summarizes the composition of a question set.
type SetStats struct {
	Count       int  `json:"count" yaml:"count"`
	ZeroAddend  int  `json:"zero_addend" yaml:"zero_addend"`
	TwoDigitSum int  `json:"two_digit_sum" yaml:"two_digit_sum"`
	Unique      bool `json:"unique" yaml:"unique"`
	Valid       bool `json:"valid" yaml:"valid"` // every question passes Validate
}

// Stats computes SetStats for qs.
func Stats(qs []Question) SetStats {
	s := SetStats{Count: len(qs), Unique: true, Valid: true}
	seen := make(map[string]bool, len(qs))
	for _, q := range qs {
		key := q.Combination()
		if seen[key] {
			s.Unique = false
		}
		seen[key] = true

		if !Validate(q) {
			s.Valid = false
		}
		switch q.Class() {
		case ClassZero:
			s.ZeroAddend++
		case ClassCarry:
			s.TwoDigitSum++
		}
	}
	return s
}

// Satisfies reports whether the stats meet every hard rule of the given
// limits: uniqueness, validity, the zero cap and the two-digit minimum.
// maxZero < 0 means no cap.
func (s SetStats) Satisfies(maxZero, minTwoDigit int) bool {
	if !s.Unique || !s.Valid {
		return false
	}
	if maxZero >= 0 && s.ZeroAddend > maxZero {
		return false
	}
	return s.TwoDigitSum >= min(minTwoDigit, s.Count)
}
