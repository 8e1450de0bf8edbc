package constraint

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/they4kman/probsweep/director/random"
	"github.com/they4kman/probsweep/field"
	"github.com/they4kman/probsweep/util/collections"
)

// Director deduces safe tiles and mines from revealed numbers, guessing only
// when nothing can be deduced.
type Director struct {
	field    *field.Field
	fallback *random.Director
	rand     *rand.Rand
	log      logrus.FieldLogger

	pending []field.Action
}

// Observation states that exactly numMines of cells hold mines
type Observation struct {
	origin    field.Coord
	hasOrigin bool
	numMines  int
	cells     collections.Set[field.Coord]
}

func (observation Observation) String() string {
	cells := sortedCoords(observation.cells)
	cellsRepr := make([]string, len(cells))
	for i, cell := range cells {
		cellsRepr[i] = cell.String()
	}

	originRepr := "?"
	if observation.hasOrigin {
		originRepr = observation.origin.String()
	}

	return fmt.Sprintf("Obs[%8s, %d ε %s]", originRepr, observation.numMines, strings.Join(cellsRepr, ", "))
}

func (observation Observation) MineProbability() float64 {
	return float64(observation.numMines) / float64(observation.cells.Len())
}

func New(rng *rand.Rand, log logrus.FieldLogger) *Director {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Director{
		fallback: random.New(rng),
		rand:     rng,
		log:      log,
	}
}

func (director *Director) Init(f *field.Field) {
	director.field = f
	director.pending = nil
	director.fallback.Init(f)
}

func (director *Director) Next() (field.Action, bool) {
	actors := []func([]*Observation) []field.Action{
		director.actDeliberate,
		director.actSubsets,
		director.actLowestProbability,
	}

	for {
		for len(director.pending) > 0 {
			action := director.pending[0]
			director.pending = director.pending[1:]

			if director.field.TileView(action.At.X, action.At.Y).State == field.Hidden {
				return action, true
			}
		}

		observations := director.observe()

		found := false
		for _, actor := range actors {
			if actions := actor(observations); len(actions) > 0 {
				director.pending = actions
				found = true
				break
			}
		}

		if !found {
			director.log.Debug("guessing at random")
			return director.fallback.Next()
		}
	}
}

// observe builds an observation for every revealed number which still borders
// hidden tiles
func (director *Director) observe() []*Observation {
	f := director.field
	var observations []*Observation

	for y := uint(0); y < f.Height(); y++ {
		for x := uint(0); x < f.Width(); x++ {
			view := f.TileView(x, y)
			if view.State != field.Revealed || view.AdjacentMines == 0 {
				continue
			}

			origin := field.Coord{X: x, Y: y}
			observation := &Observation{
				origin:    origin,
				hasOrigin: true,
				numMines:  int(view.AdjacentMines),
				cells:     collections.NewSet[field.Coord](),
			}

			for _, neighbor := range f.Neighbors(origin) {
				switch f.TileView(neighbor.X, neighbor.Y).State {
				case field.Flagged:
					observation.numMines--
				case field.Hidden:
					observation.cells.Add(neighbor)
				}
			}

			// Over-flagged numbers say nothing reliable
			if observation.cells.Len() > 0 && observation.numMines >= 0 {
				observations = append(observations, observation)
			}
		}
	}

	return observations
}

func (director *Director) actDeliberate(observations []*Observation) []field.Action {
	for _, observation := range observations {
		if actions := resolve(observation); len(actions) > 0 {
			director.log.WithField("observation", observation).Debug("deliberate move")
			return actions
		}
	}
	return nil
}

// actSubsets subtracts observations contained within others: the tiles left
// over must hold the difference in mines
func (director *Director) actSubsets(observations []*Observation) []field.Action {
	for _, observation := range observations {
		for _, other := range observations {
			if observation == other || other.cells.Len() <= observation.cells.Len() {
				continue
			}
			if !observation.cells.IsSubset(other.cells) {
				continue
			}

			split := &Observation{
				numMines: other.numMines - observation.numMines,
				cells:    other.cells.Difference(observation.cells),
			}
			if actions := resolve(split); len(actions) > 0 {
				director.log.WithFields(logrus.Fields{
					"observation": observation,
					"other":       other,
				}).Debug("split move")
				return actions
			}
		}
	}
	return nil
}

// actLowestProbability reveals the tile least likely to hide a mine, provided
// it beats the odds of a tile picked blindly
func (director *Director) actLowestProbability(observations []*Observation) []field.Action {
	lowestProbability := math.Inf(1)
	var lowestProbabilityCells []field.Coord

	for _, observation := range observations {
		probability := observation.MineProbability()
		if probability < lowestProbability {
			lowestProbability = probability
			lowestProbabilityCells = nil
		}
		if probability == lowestProbability {
			lowestProbabilityCells = append(lowestProbabilityCells, sortedCoords(observation.cells)...)
		}
	}

	if len(lowestProbabilityCells) == 0 || lowestProbability >= director.blindProbability() {
		return nil
	}

	cell := lowestProbabilityCells[director.rand.Intn(len(lowestProbabilityCells))]
	director.log.WithFields(logrus.Fields{
		"tile":        cell,
		"probability": lowestProbability,
	}).Debug("lowest probability move")

	return []field.Action{field.RevealAt(cell.X, cell.Y)}
}

// blindProbability estimates the mine probability of any hidden tile from the
// mine counter
func (director *Director) blindProbability() float64 {
	f := director.field
	flags, mines := f.RemainingFlags()

	numHidden := 0
	for y := uint(0); y < f.Height(); y++ {
		for x := uint(0); x < f.Width(); x++ {
			if f.TileView(x, y).State == field.Hidden {
				numHidden++
			}
		}
	}

	if numHidden == 0 || flags >= mines {
		return 0
	}
	return float64(mines-flags) / float64(numHidden)
}

// resolve returns the moves an observation forces: every cell is safe if it
// holds no mines, and every cell is a mine if there are as many mines as cells
func resolve(observation *Observation) []field.Action {
	var actions []field.Action
	switch {
	case observation.cells.Len() == 0:
	case observation.numMines == 0:
		for _, cell := range sortedCoords(observation.cells) {
			actions = append(actions, field.RevealAt(cell.X, cell.Y))
		}
	case observation.numMines == observation.cells.Len():
		for _, cell := range sortedCoords(observation.cells) {
			actions = append(actions, field.FlagAt(cell.X, cell.Y))
		}
	}
	return actions
}

func sortedCoords(cells collections.Set[field.Coord]) []field.Coord {
	coords := cells.Values()
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})
	return coords
}
