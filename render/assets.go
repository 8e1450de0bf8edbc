package render

import (
	"image"
	"image/color"
	"image/draw"
	"os"

	_ "image/png"

	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Assets is a spritesheet holding one square frame per CellState, stacked
// vertically in CellStates order. It is built once and handed to whatever
// draws the board.
type Assets struct {
	Sheet     image.Image
	CellWidth int
}

// Frame returns the bounds of a state's picture within Sheet
func (assets *Assets) Frame(state CellState) image.Rectangle {
	origin := assets.Sheet.Bounds().Min
	top := origin.Y + state.frameIndex()*assets.CellWidth
	return image.Rect(origin.X, top, origin.X+assets.CellWidth, top+assets.CellWidth)
}

// LoadAssets reads a PNG spritesheet from disk
func LoadAssets(path string, cellWidth int) (*Assets, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening spritesheet")
	}
	defer file.Close()

	sheet, _, err := image.Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding spritesheet %s", path)
	}

	size := sheet.Bounds().Size()
	if size.X < cellWidth || size.Y < cellWidth*len(CellStates) {
		return nil, errors.Errorf("spritesheet %s is %dx%d, need at least %dx%d",
			path, size.X, size.Y, cellWidth, cellWidth*len(CellStates))
	}

	return &Assets{Sheet: sheet, CellWidth: cellWidth}, nil
}

var numberColors = map[CellState]color.RGBA{
	Number1: colornames.Blue,
	Number2: colornames.Green,
	Number3: colornames.Red,
	Number4: colornames.Navy,
	Number5: colornames.Maroon,
	Number6: colornames.Teal,
	Number7: colornames.Black,
	Number8: colornames.Dimgray,
}

// NewAssets paints a plain spritesheet, for when no artwork is supplied
func NewAssets(cellWidth int) *Assets {
	sheet := image.NewRGBA(image.Rect(0, 0, cellWidth, cellWidth*len(CellStates)))
	assets := &Assets{Sheet: sheet, CellWidth: cellWidth}

	for _, state := range CellStates {
		paintCell(sheet, assets.Frame(state), state)
	}

	return assets
}

func paintCell(sheet *image.RGBA, frame image.Rectangle, state CellState) {
	switch state {
	case Unrevealed, Flag, FlagWrong, MineUnrevealed:
		fill(sheet, frame, colornames.Silver)
		fill(sheet, image.Rect(frame.Min.X, frame.Min.Y, frame.Max.X, frame.Min.Y+1), colornames.White)
		fill(sheet, image.Rect(frame.Min.X, frame.Min.Y, frame.Min.X+1, frame.Max.Y), colornames.White)
		fill(sheet, image.Rect(frame.Min.X, frame.Max.Y-1, frame.Max.X, frame.Max.Y), colornames.Gray)
		fill(sheet, image.Rect(frame.Max.X-1, frame.Min.Y, frame.Max.X, frame.Max.Y), colornames.Gray)
	case MineLosing:
		fill(sheet, frame, colornames.Red)
	default:
		fill(sheet, frame, colornames.Lightgray)
		fill(sheet, image.Rect(frame.Min.X, frame.Min.Y, frame.Max.X, frame.Min.Y+1), colornames.Gray)
		fill(sheet, image.Rect(frame.Min.X, frame.Min.Y, frame.Min.X+1, frame.Max.Y), colornames.Gray)
	}

	switch state {
	case Unrevealed, Empty:
	case Flag:
		drawGlyph(sheet, frame, "F", colornames.Red)
	case FlagWrong:
		drawGlyph(sheet, frame, "X", colornames.Darkred)
	case Mine, MineUnrevealed, MineLosing:
		drawGlyph(sheet, frame, "*", colornames.Black)
	default:
		drawGlyph(sheet, frame, string(state.Char()), numberColors[state])
	}
}

func fill(sheet *image.RGBA, rect image.Rectangle, c color.Color) {
	draw.Draw(sheet, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

func drawGlyph(sheet *image.RGBA, frame image.Rectangle, glyph string, c color.Color) {
	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst:  sheet.SubImage(frame).(draw.Image),
		Src:  image.NewUniform(c),
		Face: face,
	}

	width := drawer.MeasureString(glyph)
	baseline := frame.Min.Y + (frame.Dy()+face.Ascent-face.Descent)/2
	drawer.Dot = fixed.Point26_6{
		X: fixed.I(frame.Min.X) + (fixed.I(frame.Dx())-width)/2,
		Y: fixed.I(baseline),
	}
	drawer.DrawString(glyph)
}
