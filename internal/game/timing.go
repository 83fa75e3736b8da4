package game

// DefaultTickRate is the tick rate used when the config does not set one.
const DefaultTickRate = 30 // ticks per second

// SecsToTicks converts a duration in seconds to game ticks at rate.
func SecsToTicks(s float64, rate int) int {
	if rate <= 0 {
		rate = DefaultTickRate
	}
	t := int(s * float64(rate))
	if t < 1 {
		t = 1
	}
	return t
}

// How long the HUD shows a level banner after a transition.
const bannerSecs = 2.0
