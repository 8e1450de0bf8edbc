package director

import (
	"context"

	"github.com/pkg/errors"
	"github.com/they4kman/probsweep/field"
)

var (
	ErrStuck     = errors.New("director has no move to make")
	ErrStepLimit = errors.New("director exceeded its step limit")
)

// Director plays a field on the player's behalf. Directors only look at what
// the player could see: tile views and the flags counter.
type Director interface {
	// Init prepares the director for a freshly generated field
	Init(*field.Field)

	// Next picks the next action, or returns false if no move is left
	Next() (field.Action, bool)
}

// Play lets director act on f until the round ends. It returns the signal which
// ended the round and the number of actions taken. maxSteps <= 0 means no limit.
func Play(ctx context.Context, f *field.Field, director Director, maxSteps int) (field.Signal, int, error) {
	director.Init(f)

	steps := 0
	for f.Status() == field.Playing {
		if err := ctx.Err(); err != nil {
			return field.None, steps, err
		}
		if maxSteps > 0 && steps >= maxSteps {
			return field.None, steps, errors.Wrapf(ErrStepLimit, "after %d steps", steps)
		}

		action, ok := director.Next()
		if !ok {
			return field.None, steps, ErrStuck
		}

		steps++
		if signal := f.Apply(action); signal != field.None {
			return signal, steps, nil
		}
	}

	return field.None, steps, nil
}
