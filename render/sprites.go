package render

import (
	"fmt"
	"strings"

	"github.com/they4kman/probsweep/field"
)

// SpriteFor picks the picture of a tile. While the round is in play only what
// the player has uncovered shows; once it ends, mines and misplaced flags are
// disclosed and the mine which lost the round stands out.
func SpriteFor(view field.TileView, status field.Status) CellState {
	ended := status == field.Lost || status == field.Won

	switch view.State {
	case field.Revealed:
		return CellState(view.AdjacentMines)
	case field.Flagged:
		if ended && !view.IsMine {
			return FlagWrong
		}
		return Flag
	}

	switch {
	case view.Triggered:
		return MineLosing
	case ended && view.IsMine && status == field.Lost:
		return MineUnrevealed
	case ended && view.IsMine:
		return Mine
	default:
		return Unrevealed
	}
}

// StatusLine is the header text shown above the board
func StatusLine(f *field.Field) string {
	switch f.Status() {
	case field.Won:
		return f.FlagsText() + "   WIN!"
	case field.Lost:
		return f.FlagsText() + "   LOSE :("
	default:
		return f.FlagsText()
	}
}

// Text draws the field as one character per tile, as the player sees it
func Text(f *field.Field) string {
	var out strings.Builder
	status := f.Status()

	for y := uint(0); y < f.Height(); y++ {
		for x := uint(0); x < f.Width(); x++ {
			out.WriteByte(SpriteFor(f.TileView(x, y), status).Char())
		}
		out.WriteByte('\n')
	}

	fmt.Fprintln(&out, StatusLine(f))
	return out.String()
}
