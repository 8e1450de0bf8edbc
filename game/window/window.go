package window

import (
	"fmt"
	"math"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
	"github.com/faiface/pixel/text"
	"github.com/sirupsen/logrus"
	"github.com/they4kman/probsweep/field"
	"github.com/they4kman/probsweep/game"
	"github.com/they4kman/probsweep/render"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	headerHeight   = 50
	minWindowWidth = 240
)

// sprites holds a pixel sprite per tile picture, cut from the asset bundle
type sprites struct {
	picture   pixel.Picture
	byState   map[render.CellState]*pixel.Sprite
	cellWidth float64
}

func newSprites(assets *render.Assets) *sprites {
	picture := pixel.PictureDataFromImage(assets.Sheet)
	sheetBounds := assets.Sheet.Bounds()

	s := &sprites{
		picture:   picture,
		byState:   make(map[render.CellState]*pixel.Sprite, len(render.CellStates)),
		cellWidth: float64(assets.CellWidth),
	}

	// Picture coordinates grow upwards, image coordinates downwards
	for _, state := range render.CellStates {
		frame := assets.Frame(state)
		s.byState[state] = pixel.NewSprite(picture, pixel.R(
			float64(frame.Min.X),
			float64(sheetBounds.Max.Y-frame.Max.Y+sheetBounds.Min.Y),
			float64(frame.Max.X),
			float64(sheetBounds.Max.Y-frame.Min.Y+sheetBounds.Min.Y),
		))
	}

	return s
}

// Run opens the game window and plays session until the window is closed.
// It must be called from within pixelgl.Run.
func Run(session *game.Session, assets *render.Assets, actInterval time.Duration, log logrus.FieldLogger) {
	f := session.Field()
	sprites := newSprites(assets)
	cellWidth := sprites.cellWidth

	boardWidth := float64(f.Width()) * cellWidth
	boardHeight := float64(f.Height()) * cellWidth

	cfg := pixelgl.WindowConfig{
		Title: "probsweep",
		Bounds: pixel.R(
			0, 0,
			math.Max(boardWidth, minWindowWidth),
			boardHeight+headerHeight,
		),
		VSync: true,
	}
	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		log.WithError(err).Error("could not open window")
		return
	}

	batch := pixel.NewBatch(&pixel.TrianglesData{}, sprites.picture)

	basicAtlas := text.NewAtlas(basicfont.Face7x13, text.ASCII)
	topLeft := win.Bounds().Vertices()[1]
	topRight := win.Bounds().Max

	scoreText := text.New(topLeft.Add(pixel.V(20, -20)), basicAtlas)
	promptText := text.New(topLeft.Add(pixel.V(20, -40)), basicAtlas)
	cellPosText := text.New(topRight.Add(pixel.V(-70, -20)), basicAtlas)
	cellPosText.Color = colornames.Darkcyan

	screenToGridCoords := func(pos pixel.Vec) (int, int) {
		return int(math.Floor(pos.X / cellWidth)), int(math.Floor((boardHeight - pos.Y) / cellWidth))
	}

	var (
		frames = 0
		second = time.Tick(time.Second)
		act    = time.Tick(actInterval)
	)

	bgColor := colornames.Gainsboro
	for !win.Closed() {
		win.Update()
		win.Clear(bgColor)

		frames++
		select {
		case <-second:
			win.SetTitle(fmt.Sprintf("%s | FPS: %d", cfg.Title, frames))
			frames = 0
		default:
		}

		status := f.Status()

		scoreText.Clear()
		switch status {
		case field.Won:
			scoreText.Color = colornames.Green
		case field.Lost:
			scoreText.Color = colornames.Red
		default:
			scoreText.Color = colornames.Black
		}
		fmt.Fprint(scoreText, render.StatusLine(f))
		scoreText.Draw(win, pixel.IM)

		promptText.Clear()
		promptText.Color = colornames.Black
		switch {
		case status == field.Won || status == field.Lost:
			fmt.Fprint(promptText, "Enter: restart  Esc: close")
		case session.HasDirector() && session.Paused():
			fmt.Fprint(promptText, "Paused  Space: resume  Right: step")
		}
		promptText.Draw(win, pixel.IM)

		hoveredX, hoveredY, isHovering := 0, 0, false
		if win.MouseInsideWindow() {
			hoveredX, hoveredY = screenToGridCoords(win.MousePosition())
			isHovering = f.InBounds(hoveredX, hoveredY)
		}

		cellPosText.Clear()
		if isHovering {
			fmt.Fprintf(cellPosText, "(%d, %d)", hoveredX, hoveredY)
			cellPosText.Draw(win, pixel.IM)
		}

		batch.Clear()
		for y := uint(0); y < f.Height(); y++ {
			rowCenter := boardHeight - cellWidth/2 - cellWidth*float64(y)
			for x := uint(0); x < f.Width(); x++ {
				cellPos := pixel.V(cellWidth/2+cellWidth*float64(x), rowCenter)
				state := render.SpriteFor(f.TileView(x, y), status)
				sprites.byState[state].Draw(batch, pixel.IM.Moved(cellPos))
			}
		}
		batch.Draw(win)

		if status != field.Playing {
			// Start a new round with Enter
			if win.JustPressed(pixelgl.KeyEnter) {
				if err := session.Restart(); err != nil {
					log.WithError(err).Error("could not restart")
					win.SetClosed(true)
				}
			}
			if win.JustPressed(pixelgl.KeyEscape) {
				win.SetClosed(true)
			}
			continue
		}

		if session.HasDirector() {
			// Pause with Space
			if win.JustPressed(pixelgl.KeySpace) {
				session.TogglePaused()
			}

			// Perform single step while paused with Right Arrow
			if session.Paused() && (win.JustPressed(pixelgl.KeyRight) || win.Repeated(pixelgl.KeyRight)) {
				session.TogglePaused()
				session.Act()
				session.TogglePaused()
			}

			select {
			case <-act:
				session.Act()
			default:
			}
		}

		if isHovering {
			if win.JustPressed(pixelgl.MouseButtonLeft) {
				session.Apply(field.RevealAt(uint(hoveredX), uint(hoveredY)))
			} else if win.JustPressed(pixelgl.MouseButtonRight) {
				session.Apply(field.FlagAt(uint(hoveredX), uint(hoveredY)))
			}
		}
	}
}
