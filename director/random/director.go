package random

import (
	"math/rand"

	"github.com/they4kman/probsweep/field"
)

// Director reveals hidden tiles in a random order
type Director struct {
	field *field.Field
	rand  *rand.Rand
	order []field.Coord
	next  int
}

func New(rng *rand.Rand) *Director {
	return &Director{rand: rng}
}

func (director *Director) Init(f *field.Field) {
	director.field = f
	director.next = 0

	director.order = make([]field.Coord, 0, f.NumTiles())
	for y := uint(0); y < f.Height(); y++ {
		for x := uint(0); x < f.Width(); x++ {
			director.order = append(director.order, field.Coord{X: x, Y: y})
		}
	}

	director.rand.Shuffle(len(director.order), func(i, j int) {
		director.order[i], director.order[j] = director.order[j], director.order[i]
	})
}

func (director *Director) Next() (field.Action, bool) {
	for director.next < len(director.order) {
		coord := director.order[director.next]
		director.next++

		if director.field.TileView(coord.X, coord.Y).State == field.Hidden {
			return field.RevealAt(coord.X, coord.Y), true
		}
	}
	return field.Action{}, false
}
