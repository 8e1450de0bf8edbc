package field

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Placer decides which tiles of a width*height field hold mines. mines is
// laid out row-major and is all false when Place is called.
type Placer interface {
	Place(mines []bool, width, height uint) error
}

// ProbabilityPlacer mines each tile independently with a fixed probability
type ProbabilityPlacer struct {
	Probability float64
	Rand        *rand.Rand
}

func (placer *ProbabilityPlacer) Place(mines []bool, width, height uint) error {
	for i := range mines {
		if placer.Rand.Float64() < placer.Probability {
			mines[i] = true
		}
	}
	return nil
}

// fixedPlacer places mines at a predetermined set of tiles
type fixedPlacer struct {
	width, height uint
	mines         []Coord
}

// FixedPlacer returns a Placer which always mines exactly the given tiles of a
// width*height field
func FixedPlacer(width, height uint, mines ...Coord) Placer {
	return &fixedPlacer{width: width, height: height, mines: mines}
}

func (placer *fixedPlacer) Place(mines []bool, width, height uint) error {
	if width != placer.width || height != placer.height {
		return errors.Wrapf(ErrMalformedLayout, "layout is %dx%d, field is %dx%d", placer.width, placer.height, width, height)
	}
	for _, coord := range placer.mines {
		if coord.X >= width || coord.Y >= height {
			return errors.Wrapf(ErrMalformedLayout, "mine %v outside of %dx%d field", coord, width, height)
		}
		mines[coord.Y*width+coord.X] = true
	}
	return nil
}
