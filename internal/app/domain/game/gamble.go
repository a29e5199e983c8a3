package game

import "math/rand/v2"

// Gamble rolls two independent uniform numbers in [0,100] and pays out on the
// distance between them. The payout rule is symmetric: only how far the rolls
// are apart matters, not which side rolled higher.
type Gamble struct {
	roll func() int
}

func NewGamble() *Gamble {
	return &Gamble{
		roll: func() int { return rand.IntN(101) },
	}
}

// NewGambleWithRoll injects a deterministic roll source for tests.
func NewGambleWithRoll(roll func() int) *Gamble {
	return &Gamble{roll: roll}
}

// Play wagers the given amount and returns the payout plus both rolls. The
// payout replaces the wager: 0 means total loss, wager*2 the best outcome.
func (g *Gamble) Play(wager int) (payout, house, player int) {
	house = g.roll()
	player = g.roll()
	return Payout(house, player, wager), house, player
}

// Payout applies the multiplier table to the wager. Equal rolls pay double;
// a gap of at most 25 pays x1.5, at most 50 pays x1.25, anything wider loses
// the whole wager.
func Payout(house, player, wager int) int {
	diff := house - player
	if diff < 0 {
		diff = -diff
	}

	switch {
	case diff == 0:
		return wager * 2
	case diff <= 25:
		return wager * 3 / 2
	case diff <= 50:
		return wager * 5 / 4
	default:
		return 0
	}
}
