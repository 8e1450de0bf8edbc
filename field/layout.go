package field

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Layout is a textual picture of a field, one row of characters per line:
//
//	*  triggered mine
//	F  flagged mine
//	O  mine
//	f  flagged safe tile
//	.  revealed safe tile
//	#  hidden safe tile
//
// Only mine positions are read back from a layout; play state always starts
// fresh.
type Layout struct {
	Seed  int64  `yaml:"seed,omitempty"`
	Board string `yaml:"board"`
}

func LayoutOf(field *Field) Layout {
	var board strings.Builder
	for y := uint(0); y < field.height; y++ {
		for x := uint(0); x < field.width; x++ {
			board.WriteByte(field.tileChar(x, y))
		}
		board.WriteByte('\n')
	}
	return Layout{Board: board.String()}
}

func (field *Field) tileChar(x, y uint) byte {
	view := field.TileView(x, y)
	switch {
	case view.IsMine:
		switch {
		case view.Triggered:
			return '*'
		case view.State == Flagged:
			return 'F'
		default:
			return 'O'
		}
	case view.State == Flagged:
		return 'f'
	case view.State == Revealed:
		return '.'
	default:
		return '#'
	}
}

func ParseLayout(in []byte) (*Layout, error) {
	var layout Layout
	if err := yaml.Unmarshal(in, &layout); err != nil {
		return nil, errors.Wrap(err, "decoding layout")
	}
	if _, _, err := layout.Dimensions(); err != nil {
		return nil, err
	}
	return &layout, nil
}

func (layout *Layout) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(layout)
	if err != nil {
		return nil, errors.Wrap(err, "encoding layout")
	}
	return out, nil
}

func (layout *Layout) rows() []string {
	board := strings.TrimSpace(layout.Board)
	if board == "" {
		return nil
	}

	rows := strings.Split(board, "\n")
	for i, row := range rows {
		rows[i] = strings.TrimSpace(row)
	}
	return rows
}

// Dimensions validates the layout and returns its width and height
func (layout *Layout) Dimensions() (width, height uint, err error) {
	rows := layout.rows()
	if len(rows) == 0 {
		return 0, 0, errors.Wrap(ErrMalformedLayout, "empty board")
	}

	width = uint(len(rows[0]))
	for y, row := range rows {
		if uint(len(row)) != width {
			return 0, 0, errors.Wrapf(ErrMalformedLayout, "row %d has %d tiles, expected %d", y, len(row), width)
		}
		for x, c := range row {
			if !strings.ContainsRune("*FOf.#", c) {
				return 0, 0, errors.Wrapf(ErrMalformedLayout, "unknown tile %q at (%d, %d)", c, x, y)
			}
		}
	}

	return width, uint(len(rows)), nil
}

// Mines returns the positions of every mine in the layout
func (layout *Layout) Mines() []Coord {
	var mines []Coord
	for y, row := range layout.rows() {
		for x, c := range row {
			switch c {
			case '*', 'F', 'O':
				mines = append(mines, Coord{uint(x), uint(y)})
			}
		}
	}
	return mines
}

// Placer returns a Placer reproducing the layout's mines
func (layout *Layout) Placer() (Placer, error) {
	width, height, err := layout.Dimensions()
	if err != nil {
		return nil, err
	}
	mines := layout.Mines()
	if len(mines) == 0 {
		return nil, errors.Wrap(ErrNoMines, "layout has no mines")
	}
	return FixedPlacer(width, height, mines...), nil
}

// NewFromLayout creates a field sized to the layout which generates the
// layout's mines. probability is kept for display only.
func NewFromLayout(layout *Layout, probability float64, opts ...Option) (*Field, error) {
	width, height, err := layout.Dimensions()
	if err != nil {
		return nil, err
	}
	placer, err := layout.Placer()
	if err != nil {
		return nil, err
	}

	opts = append(opts, WithPlacer(placer))
	return New(Config{Width: width, Height: height, MineProbability: probability}, opts...)
}
