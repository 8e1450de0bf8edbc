package field

import "fmt"

type Coord struct {
	X, Y uint
}

func (coord Coord) String() string {
	return fmt.Sprintf("(%d, %d)", coord.X, coord.Y)
}

type ActionKind int

const (
	RevealAction ActionKind = iota
	FlagAction
)

// Action is a single player move against a tile
type Action struct {
	Kind ActionKind
	At   Coord
}

func (action Action) String() string {
	switch action.Kind {
	case RevealAction:
		return action.At.String() + " Reveal"
	case FlagAction:
		return action.At.String() + " Flag"
	default:
		return action.At.String() + " UNKNOWN"
	}
}

func RevealAt(x, y uint) Action {
	return Action{Kind: RevealAction, At: Coord{x, y}}
}

func FlagAt(x, y uint) Action {
	return Action{Kind: FlagAction, At: Coord{x, y}}
}
