package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/faiface/pixel/pixelgl"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/they4kman/probsweep/field"
	"github.com/they4kman/probsweep/game"
	"github.com/they4kman/probsweep/game/window"
)

var gameConfig = game.NewGameConfig()
var configPath = ""
var logLevel = "info"

var rootCmd = &cobra.Command{
	Use:   "probsweep",
	Short: "Play Minesweeper on a field where every tile may hide a mine",
	Long: `probsweep is a Minesweeper game in which each tile holds a mine with a
fixed probability, chosen by difficulty.

Run with no arguments to play manually
	probsweep

Use the director flag to make the computer play for you
	probsweep --director constraint

Play many rounds without a window
	probsweep autoplay --rounds 500
`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logrus.SetLevel(level)
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		log := logrus.StandardLogger()

		config.Director, err = newDirector(config.DirectorName, rand.New(rand.NewSource(time.Now().UnixNano())), log)
		if err != nil {
			return err
		}

		session, err := game.NewSession(config, log)
		if err != nil {
			return err
		}
		assets, err := config.Assets()
		if err != nil {
			return err
		}

		log.WithFields(logrus.Fields{
			"width":      session.Field().Width(),
			"height":     session.Field().Height(),
			"difficulty": config.Difficulty,
			"seed":       session.Seed(),
		}).Info("starting game")

		pixelgl.Run(func() {
			window.Run(session, assets, config.ActInterval, log)
		})
		return nil
	},
}

// resolveConfig starts from the config file, if any, and applies the flags
// given explicitly on the command line over it
func resolveConfig(cmd *cobra.Command) (game.GameConfig, error) {
	if configPath == "" {
		return gameConfig, nil
	}

	config, err := game.LoadConfig(configPath)
	if err != nil {
		return config, err
	}

	flags := cmd.Flags()
	overrides := map[string]func(){
		"width":        func() { config.Width = gameConfig.Width },
		"height":       func() { config.Height = gameConfig.Height },
		"difficulty":   func() { config.Difficulty = gameConfig.Difficulty },
		"seed":         func() { config.Seed = gameConfig.Seed },
		"layout":       func() { config.LayoutPath = gameConfig.LayoutPath },
		"save-layouts": func() { config.SavedLayoutsDir = gameConfig.SavedLayoutsDir },
		"spritesheet":  func() { config.SpritesheetPath = gameConfig.SpritesheetPath },
		"cell-width":   func() { config.CellWidth = gameConfig.CellWidth },
		"director":     func() { config.DirectorName = gameConfig.DirectorName },
		"act-interval": func() { config.ActInterval = gameConfig.ActInterval },
	}
	for name, override := range overrides {
		if flags.Changed(name) {
			override()
		}
	}

	return config, nil
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}

func init() {
	// Define our root -help without a shorthand, as we'll use -h for --height
	// Ref: https://github.com/spf13/cobra/issues/291
	rootCmd.PersistentFlags().Bool("help", false, "Help for this command")

	flags := rootCmd.PersistentFlags()
	flags.UintVarP(&gameConfig.Width, "width", "w", field.DefaultWidth, "Width of the field, in tiles")
	flags.UintVarP(&gameConfig.Height, "height", "h", field.DefaultHeight, "Height of the field, in tiles")
	flags.VarP(newDifficultyValue(field.Beginner, &gameConfig.Difficulty), "difficulty", "l",
		fmt.Sprintf("Chance of each tile holding a mine: %s", strings.Join(field.Difficulties(), ", ")))
	flags.Int64Var(&gameConfig.Seed, "seed", 0, "Seed for mine placement (0 picks one from the clock)")
	flags.StringVar(&gameConfig.LayoutPath, "layout", "", "Take mine positions from a saved layout file")
	flags.StringVar(&configPath, "config", "", "YAML file to read settings from; flags override it")
	flags.StringVar(&logLevel, "log-level", logLevel, "Logging level (debug, info, warn, error)")

	rootCmd.Flags().StringVar(&gameConfig.SavedLayoutsDir, "save-layouts", "", "Directory to save the layout of every finished round to")
	rootCmd.Flags().StringVar(&gameConfig.SpritesheetPath, "spritesheet", "", "PNG spritesheet to draw tiles with")
	rootCmd.Flags().IntVar(&gameConfig.CellWidth, "cell-width", gameConfig.CellWidth, "Size of a tile in the spritesheet and on screen, in pixels")
	rootCmd.Flags().StringVar(&gameConfig.DirectorName, "director", "", fmt.Sprintf("Make the computer play (%s)", strings.Join(directorNames, ", ")))
	rootCmd.Flags().DurationVar(&gameConfig.ActInterval, "act-interval", gameConfig.ActInterval, "Time between the director's moves")
}
