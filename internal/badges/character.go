package badges

// Character is a guide unlocked by collecting badges.
type Character string

const (
	Panda  Character = "panda"
	Rabbit Character = "rabbit"
)

// AllCharacters returns the characters in unlock order.
func AllCharacters() []Character {
	return []Character{Panda, Rabbit}
}

// Threshold is the badge total that unlocks c.
func (c Character) Threshold() int {
	switch c {
	case Panda:
		return 3
	case Rabbit:
		return 7
	default:
		return 0
	}
}

// DisplayName returns a human-readable name for c.
func (c Character) DisplayName() string {
	switch c {
	case Panda:
		return "Galaxy Panda"
	case Rabbit:
		return "Galaxy Rabbit"
	default:
		return string(c)
	}
}

// Cheers are the messages a character shows after a correct answer.
func (c Character) Cheers() []string {
	switch c {
	case Rabbit:
		return []string{"Hop hop, hooray!", "Lightning fast!", "Out of this world!", "Keep bouncing!"}
	default:
		return []string{"Great job!", "Excellent!", "Keep going!", "You're so smart!", "Well done!"}
	}
}

// UnlockedCharacters returns the characters a player with total badges owns.
func UnlockedCharacters(total int) []Character {
	var out []Character
	for _, c := range AllCharacters() {
		if total >= c.Threshold() {
			out = append(out, c)
		}
	}
	return out
}

// NextCharacter returns the next locked character and how many more badges
// it needs. ok is false once everything is unlocked.
func NextCharacter(total int) (c Character, needed int, ok bool) {
	for _, c := range AllCharacters() {
		if total < c.Threshold() {
			return c, c.Threshold() - total, true
		}
	}
	return "", 0, false
}
