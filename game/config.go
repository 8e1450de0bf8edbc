package game

import (
	"io/ioutil"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/they4kman/probsweep/director"
	"github.com/they4kman/probsweep/field"
	"github.com/they4kman/probsweep/render"
	"gopkg.in/yaml.v2"
)

type GameConfig struct {
	Width      uint   `yaml:"width"`
	Height     uint   `yaml:"height"`
	Difficulty string `yaml:"difficulty"`

	// Seed for mine placement; 0 picks one from the clock
	Seed int64 `yaml:"seed"`

	// Layout file to take mine positions from, instead of placing them randomly
	LayoutPath string `yaml:"layout"`
	// Path to directory where the layouts of finished rounds should be saved
	SavedLayoutsDir string `yaml:"saved_layouts_dir"`

	SpritesheetPath string `yaml:"spritesheet"`
	CellWidth       int    `yaml:"cell_width"`

	// Name of the director playing for the user, if any
	DirectorName string            `yaml:"director"`
	Director     director.Director `yaml:"-"`
	// Time between director moves
	ActInterval time.Duration `yaml:"act_interval"`
}

func NewGameConfig() GameConfig {
	return GameConfig{
		Width:       field.DefaultWidth,
		Height:      field.DefaultHeight,
		Difficulty:  field.Beginner,
		CellWidth:   render.DefaultCellWidth,
		ActInterval: 500 * time.Millisecond,
	}
}

// LoadConfig reads a YAML config file. Settings missing from the file keep
// their defaults.
func LoadConfig(path string) (GameConfig, error) {
	config := NewGameConfig()

	in, err := ioutil.ReadFile(path)
	if err != nil {
		return config, errors.Wrap(err, "reading config")
	}
	if err := yaml.UnmarshalStrict(in, &config); err != nil {
		return config, errors.Wrapf(err, "decoding config %s", path)
	}

	return config, nil
}

// NewField creates the field described by the config, and the seed its mines
// are drawn with
func (config GameConfig) NewField(log logrus.FieldLogger) (*field.Field, int64, error) {
	if !field.IsDifficulty(config.Difficulty) {
		log.WithField("difficulty", config.Difficulty).Warnf("unknown difficulty, playing %s", field.Beginner)
	}
	probability := field.ProbabilityFor(config.Difficulty)

	if config.LayoutPath != "" {
		in, err := ioutil.ReadFile(config.LayoutPath)
		if err != nil {
			return nil, 0, errors.Wrap(err, "reading layout")
		}
		layout, err := field.ParseLayout(in)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "loading layout %s", config.LayoutPath)
		}

		f, err := field.NewFromLayout(layout, probability, field.WithLogger(log))
		return f, layout.Seed, err
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	f, err := field.New(
		field.Config{
			Width:           config.Width,
			Height:          config.Height,
			MineProbability: probability,
		},
		field.WithRand(rand.New(rand.NewSource(seed))),
		field.WithLogger(log),
	)
	return f, seed, err
}

// Assets loads the configured spritesheet, or paints one if none is set
func (config GameConfig) Assets() (*render.Assets, error) {
	cellWidth := config.CellWidth
	if cellWidth <= 0 {
		cellWidth = render.DefaultCellWidth
	}

	if config.SpritesheetPath == "" {
		return render.NewAssets(cellWidth), nil
	}
	return render.LoadAssets(config.SpritesheetPath, cellWidth)
}
