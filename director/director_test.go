package director_test

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/they4kman/probsweep/director"
	"github.com/they4kman/probsweep/director/constraint"
	"github.com/they4kman/probsweep/director/random"
	"github.com/they4kman/probsweep/field"
)

func quietLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

func newLayoutField(t *testing.T, rows ...string) *field.Field {
	t.Helper()

	layout := &field.Layout{Board: strings.Join(rows, "\n")}
	f, err := field.NewFromLayout(layout, field.ProbabilityFor(field.Beginner), field.WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("Failed to create field: %v", err)
	}
	if err := f.Generate(); err != nil {
		t.Fatalf("Failed to generate field: %v", err)
	}
	return f
}

type scriptedDirector struct {
	actions []field.Action
}

func (d *scriptedDirector) Init(*field.Field) {}

func (d *scriptedDirector) Next() (field.Action, bool) {
	if len(d.actions) == 0 {
		return field.Action{}, false
	}
	action := d.actions[0]
	d.actions = d.actions[1:]
	return action, true
}

func TestPlayStopsOnSignal(t *testing.T) {
	f := newLayoutField(t, "#O#")
	d := &scriptedDirector{actions: []field.Action{
		field.RevealAt(0, 0),
		field.RevealAt(1, 0),
		field.RevealAt(2, 0),
	}}

	signal, steps, err := director.Play(context.Background(), f, d, 0)
	if err != nil {
		t.Fatalf("Failed to play: %v", err)
	}
	if signal != field.Loss || steps != 2 {
		t.Fatalf("Expected loss after 2 steps, got %v after %d", signal, steps)
	}
}

func TestPlayReportsStuckDirector(t *testing.T) {
	f := newLayoutField(t, "#O#")

	_, _, err := director.Play(context.Background(), f, &scriptedDirector{}, 0)
	if err != director.ErrStuck {
		t.Fatalf("Expected ErrStuck, got: %v", err)
	}
}

func TestPlayHonoursStepLimit(t *testing.T) {
	f := newLayoutField(t, "#O#")
	d := &scriptedDirector{actions: []field.Action{
		field.FlagAt(0, 0),
		field.FlagAt(0, 0),
		field.FlagAt(0, 0),
	}}

	_, steps, err := director.Play(context.Background(), f, d, 2)
	if errors.Cause(err) != director.ErrStepLimit || steps != 2 {
		t.Fatalf("Expected ErrStepLimit after 2 steps, got %v after %d", err, steps)
	}
}

func TestPlayHonoursCancellation(t *testing.T) {
	f := newLayoutField(t, "#O#")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, steps, err := director.Play(ctx, f, random.New(rand.New(rand.NewSource(1))), 0)
	if err != context.Canceled || steps != 0 {
		t.Fatalf("Expected cancellation before any step, got %v after %d", err, steps)
	}
}

func TestRandomDirectorOnlyRevealsHiddenTiles(t *testing.T) {
	f := newLayoutField(t,
		"####",
		"####",
		"###O",
	)
	f.ToggleFlag(0, 0)

	d := random.New(rand.New(rand.NewSource(5)))
	d.Init(f)

	seen := make(map[field.Coord]bool)
	for {
		action, ok := d.Next()
		if !ok {
			break
		}
		if action.Kind != field.RevealAction {
			t.Fatalf("Expected only reveals, got %v", action)
		}
		if action.At == (field.Coord{X: 0, Y: 0}) {
			t.Fatalf("Expected the flagged tile to be skipped")
		}
		if seen[action.At] {
			t.Fatalf("Tile %v chosen twice", action.At)
		}
		seen[action.At] = true
	}

	if len(seen) != 11 {
		t.Fatalf("Expected 11 hidden tiles to be offered, got %d", len(seen))
	}
}

func TestConstraintDirectorFlagsForcedMine(t *testing.T) {
	f := newLayoutField(t, "###O#")
	f.Reveal(0, 0)

	d := constraint.New(rand.New(rand.NewSource(1)), quietLogger())
	signal, steps, err := director.Play(context.Background(), f, d, 0)
	if err != nil {
		t.Fatalf("Failed to play: %v", err)
	}
	if signal != field.Win || steps != 1 {
		t.Fatalf("Expected a win after 1 step, got %v after %d", signal, steps)
	}
	if state := f.TileView(3, 0).State; state != field.Flagged {
		t.Fatalf("Expected the mine to be flagged, got %v", state)
	}
}

func TestConstraintDirectorRevealsSatisfiedNeighbours(t *testing.T) {
	f := newLayoutField(t,
		"O##",
		"###",
		"##O",
	)
	f.Reveal(1, 0)
	f.ToggleFlag(0, 0)

	d := constraint.New(rand.New(rand.NewSource(1)), quietLogger())
	d.Init(f)

	action, ok := d.Next()
	if !ok {
		t.Fatalf("Expected a move")
	}
	if action != field.RevealAt(2, 0) {
		t.Fatalf("Expected (2, 0) to be revealed, got %v", action)
	}
}

func TestConstraintDirectorSplitsObservations(t *testing.T) {
	// The 1 at (0, 0) sees (0, 1) and (1, 1); the 1 at (1, 0) sees those and
	// (2, 0), (2, 1). The difference must be safe.
	f := newLayoutField(t,
		"####",
		"O###",
	)
	f.Reveal(0, 0)
	f.Reveal(1, 0)

	d := constraint.New(rand.New(rand.NewSource(1)), quietLogger())
	d.Init(f)

	action, ok := d.Next()
	if !ok {
		t.Fatalf("Expected a move")
	}
	if action != field.RevealAt(2, 0) {
		t.Fatalf("Expected (2, 0) to be revealed, got %v", action)
	}

	action, ok = d.Next()
	if !ok || action != field.RevealAt(2, 1) {
		t.Fatalf("Expected (2, 1) to be revealed next, got %v (%v)", action, ok)
	}
}

func TestConstraintDirectorFinishesRounds(t *testing.T) {
	wins := 0
	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		f, err := field.New(field.Config{
			Width:           10,
			Height:          10,
			MineProbability: field.ProbabilityFor(field.Beginner),
		}, field.WithRand(rng), field.WithLogger(quietLogger()))
		if err != nil {
			t.Fatalf("Failed to create field: %v", err)
		}
		if err := f.Generate(); err != nil {
			t.Fatalf("Failed to generate field: %v", err)
		}

		d := constraint.New(rng, quietLogger())
		signal, steps, err := director.Play(context.Background(), f, d, int(2*f.NumTiles()))
		if err != nil {
			t.Fatalf("seed %d: failed to play: %v", seed, err)
		}
		if signal == field.None {
			t.Fatalf("seed %d: round did not end after %d steps", seed, steps)
		}
		if signal == field.Win {
			wins++
		}
	}

	if wins == 0 {
		t.Fatalf("Expected the constraint director to win at least once")
	}
}
