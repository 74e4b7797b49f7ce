package session

import "time"

const (
	DefaultVoteCooldown  = 60 * time.Second
	DefaultReaddCooldown = 5 * time.Minute
)

// Cooldowns holds the two time gates enforced by the engine.
type Cooldowns struct {
	Vote  time.Duration // between vote actions of one user
	Readd time.Duration // before a removed song id may be added again
}

func DefaultCooldowns() Cooldowns {
	return Cooldowns{Vote: DefaultVoteCooldown, Readd: DefaultReaddCooldown}
}

// Remaining reports how long an action last performed at last must still wait.
// It returns false once at least cooldown has elapsed. The duration is exact;
// rounding for display is left to callers.
func Remaining(last time.Time, cooldown time.Duration, now time.Time) (time.Duration, bool) {
	elapsed := now.Sub(last)
	if elapsed >= cooldown {
		return 0, false
	}
	return cooldown - elapsed, true
}
