package field

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Width, Height   uint
	MineProbability float64
}

// TileView is everything a renderer may know about a single tile.
// AdjacentMines is only meaningful once the tile is revealed, and IsMine only
// once the round has ended.
type TileView struct {
	State         TileState
	AdjacentMines uint8
	IsMine        bool
	Triggered     bool
}

// Field is the playing grid. Tiles are stored row-major, indexed by y*width+x.
type Field struct {
	width, height uint // in number of tiles
	probability   float64

	mines    []bool
	adjacent []uint8
	states   []TileState

	numMines        uint
	numFlags        uint
	numFlaggedMines uint
	numRevealed     uint

	triggered    Coord
	hasTriggered bool

	status     Status
	generation uint

	placer Placer
	rand   *rand.Rand
	log    logrus.FieldLogger
}

type Option func(*Field)

// WithRand sets the random source used by the default placer
func WithRand(rng *rand.Rand) Option {
	return func(field *Field) {
		field.rand = rng
	}
}

// WithPlacer replaces probability based mine placement
func WithPlacer(placer Placer) Option {
	return func(field *Field) {
		field.placer = placer
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(field *Field) {
		field.log = log
	}
}

// New allocates a field. No mines are placed until Generate is called.
func New(config Config, opts ...Option) (*Field, error) {
	if config.Width == 0 || config.Height == 0 || config.Height > math.MaxUint/config.Width {
		return nil, errors.Wrapf(ErrInvalidDimensions, "got %dx%d", config.Width, config.Height)
	}
	p := config.MineProbability
	if math.IsNaN(p) || p <= 0 || p > 1 {
		return nil, errors.Wrapf(ErrInvalidProbability, "got %v", p)
	}

	numTiles := config.Width * config.Height
	field := &Field{
		width:       config.Width,
		height:      config.Height,
		probability: p,
		mines:       make([]bool, numTiles),
		adjacent:    make([]uint8, numTiles),
		states:      make([]TileState, numTiles),
		status:      Idle,
	}

	for _, opt := range opts {
		opt(field)
	}

	if field.log == nil {
		field.log = logrus.StandardLogger()
	}
	if field.placer == nil {
		if field.rand == nil {
			field.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		field.placer = &ProbabilityPlacer{Probability: p, Rand: field.rand}
	}

	return field, nil
}

func (field *Field) Width() uint {
	return field.width
}

func (field *Field) Height() uint {
	return field.height
}

func (field *Field) NumTiles() uint {
	return field.width * field.height
}

func (field *Field) MineProbability() float64 {
	return field.probability
}

func (field *Field) Status() Status {
	return field.status
}

func (field *Field) Generation() uint {
	return field.generation
}

// Triggered returns the mine which lost the round, if any
func (field *Field) Triggered() (Coord, bool) {
	return field.triggered, field.hasTriggered
}

func (field *Field) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && uint(x) < field.width && uint(y) < field.height
}

func (field *Field) index(x, y uint) uint {
	return y*field.width + x
}

func (field *Field) coord(idx uint) Coord {
	return Coord{X: idx % field.width, Y: idx / field.width}
}

func (field *Field) logger() logrus.FieldLogger {
	return field.log.WithField("generation", field.generation)
}

// Generate places a fresh set of mines and resets all play state. Placements
// without a single mine are discarded and retried, up to MaxGenerateAttempts.
func (field *Field) Generate() error {
	field.reset()

	attempt := 0
	for field.numMines == 0 {
		attempt++
		if attempt > MaxGenerateAttempts {
			return errors.Wrapf(ErrNoMines, "gave up after %d attempts", MaxGenerateAttempts)
		}

		for i := range field.mines {
			field.mines[i] = false
		}
		if err := field.placer.Place(field.mines, field.width, field.height); err != nil {
			return errors.Wrap(err, "placing mines")
		}

		for _, isMine := range field.mines {
			if isMine {
				field.numMines++
			}
		}
	}

	for idx, isMine := range field.mines {
		if isMine {
			coord := field.coord(uint(idx))
			field.eachNeighbor(coord.X, coord.Y, func(x, y uint) {
				field.adjacent[field.index(x, y)]++
			})
		}
	}

	field.generation++
	field.status = Playing

	field.logger().WithFields(logrus.Fields{
		"mines":    field.numMines,
		"attempts": attempt,
	}).Debug("generated field")

	return nil
}

func (field *Field) reset() {
	for i := range field.states {
		field.mines[i] = false
		field.adjacent[i] = 0
		field.states[i] = Hidden
	}

	field.numMines = 0
	field.numFlags = 0
	field.numFlaggedMines = 0
	field.numRevealed = 0

	field.triggered = Coord{}
	field.hasTriggered = false

	field.status = Idle
}

// Reveal uncovers a hidden tile. Uncovering a mine loses the round; uncovering
// a tile with no adjacent mines floods outward through its empty region.
func (field *Field) Reveal(x, y uint) Signal {
	if field.status != Playing {
		return None
	}

	idx := field.index(x, y)
	if field.states[idx] != Hidden {
		return None
	}

	if field.mines[idx] {
		field.triggered = Coord{x, y}
		field.hasTriggered = true
		field.status = Lost

		field.logger().WithField("tile", field.triggered).Info("mine triggered")
		return Loss
	}

	numRevealed := field.flood(x, y)
	field.logger().WithFields(logrus.Fields{
		"tile":     Coord{x, y},
		"revealed": numRevealed,
	}).Debug("revealed tiles")

	if field.numRevealed == field.NumTiles()-field.numMines {
		return field.win("all safe tiles revealed")
	}
	return None
}

// ToggleFlag flags a hidden tile, or unflags a flagged one. The round is won
// as soon as every mine carries a flag, regardless of flags on safe tiles.
func (field *Field) ToggleFlag(x, y uint) Signal {
	if field.status != Playing {
		return None
	}

	idx := field.index(x, y)
	switch field.states[idx] {
	case Hidden:
		field.states[idx] = Flagged
		field.numFlags++
		if field.mines[idx] {
			field.numFlaggedMines++
		}
	case Flagged:
		field.states[idx] = Hidden
		field.numFlags--
		if field.mines[idx] {
			field.numFlaggedMines--
		}
	default:
		return None
	}

	if field.numFlaggedMines == field.numMines {
		return field.win("all mines flagged")
	}
	return None
}

// Apply performs an action, returning the resulting signal
func (field *Field) Apply(action Action) Signal {
	switch action.Kind {
	case RevealAction:
		return field.Reveal(action.At.X, action.At.Y)
	case FlagAction:
		return field.ToggleFlag(action.At.X, action.At.Y)
	default:
		return None
	}
}

func (field *Field) win(reason string) Signal {
	field.status = Won
	field.logger().WithFields(logrus.Fields{
		"reason": reason,
		"flags":  field.numFlags,
		"mines":  field.numMines,
	}).Info("round won")
	return Win
}

// RemainingFlags returns the number of placed flags and the number of mines
func (field *Field) RemainingFlags() (flags, mines uint) {
	return field.numFlags, field.numMines
}

func (field *Field) FlagsText() string {
	return fmt.Sprintf("Flags: %d/%d", field.numFlags, field.numMines)
}

func (field *Field) TileView(x, y uint) TileView {
	idx := field.index(x, y)
	return TileView{
		State:         field.states[idx],
		AdjacentMines: field.adjacent[idx],
		IsMine:        field.mines[idx],
		Triggered:     field.hasTriggered && field.triggered == Coord{x, y},
	}
}

// Neighbors returns the in-bounds tiles surrounding coord
func (field *Field) Neighbors(coord Coord) []Coord {
	neighbors := make([]Coord, 0, 8)
	field.eachNeighbor(coord.X, coord.Y, func(x, y uint) {
		neighbors = append(neighbors, Coord{x, y})
	})
	return neighbors
}

func (field *Field) eachNeighbor(x, y uint, visit func(x, y uint)) {
	isAtTopBorder := y < 1
	isAtBottomBorder := y >= field.height-1

	if x >= 1 {
		visit(x-1, y)

		if !isAtTopBorder {
			visit(x-1, y-1)
		}
		if !isAtBottomBorder {
			visit(x-1, y+1)
		}
	}

	if x < field.width-1 {
		visit(x+1, y)

		if !isAtTopBorder {
			visit(x+1, y-1)
		}
		if !isAtBottomBorder {
			visit(x+1, y+1)
		}
	}

	if !isAtTopBorder {
		visit(x, y-1)
	}
	if !isAtBottomBorder {
		visit(x, y+1)
	}
}

func (field *Field) String() string {
	return LayoutOf(field).Board
}
