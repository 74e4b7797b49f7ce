package session

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrCooldownActive  = errors.New("cooldown active")
)

// Action names the time-gated operation a CooldownError refers to.
type Action string

const (
	ActionVote  Action = "vote"
	ActionReadd Action = "readd"
)

// CooldownError is returned when a time-gated action is attempted too soon.
// errors.Is(err, ErrCooldownActive) holds for it.
type CooldownError struct {
	Action    Action
	Remaining time.Duration
	RetryAt   time.Time
}

func newCooldownError(action Action, remaining time.Duration, now time.Time) *CooldownError {
	return &CooldownError{Action: action, Remaining: remaining, RetryAt: now.Add(remaining)}
}

func (e *CooldownError) Error() string {
	switch e.Action {
	case ActionVote:
		return fmt.Sprintf("you can vote again in %s", ceil(e.Remaining, time.Second))
	case ActionReadd:
		return fmt.Sprintf("song was recently removed, it can be added again in %s",
			ceil(e.Remaining, time.Second))
	}
	return fmt.Sprintf("%s: retry in %s", ErrCooldownActive, e.Remaining)
}

func (e *CooldownError) Is(target error) bool {
	return target == ErrCooldownActive
}

// ceil rounds d up to a multiple of unit so a message never reads "0s" while
// the gate is still closed.
func ceil(d, unit time.Duration) time.Duration {
	if r := d % unit; r != 0 {
		d += unit - r
	}
	return d
}
