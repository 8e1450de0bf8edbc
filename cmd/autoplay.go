package cmd

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/they4kman/probsweep/director"
	"github.com/they4kman/probsweep/field"
	"github.com/they4kman/probsweep/render"
)

var autoplayRounds = 100
var autoplayDirector = "constraint"
var autoplayMaxSteps = 0

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Let a director play many rounds without a window, and report how it fared",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		log := logrus.StandardLogger()

		f, seed, err := config.NewField(log)
		if err != nil {
			return err
		}
		dir, err := newDirector(autoplayDirector, directorRand(seed), log)
		if err != nil {
			return err
		}
		if dir == nil {
			return errors.New("autoplay needs a director")
		}

		log.WithFields(logrus.Fields{
			"rounds":   autoplayRounds,
			"director": autoplayDirector,
			"seed":     seed,
		}).Info("starting autoplay")

		wins, losses := 0, 0
		started := time.Now()
		for round := 1; round <= autoplayRounds; round++ {
			if err := f.Generate(); err != nil {
				return errors.Wrapf(err, "round %d", round)
			}

			signal, steps, err := director.Play(cmd.Context(), f, dir, autoplayMaxSteps)
			if err != nil {
				if errors.Cause(err) == cmd.Context().Err() {
					log.WithField("round", round).Warn("autoplay interrupted")
					break
				}
				return errors.Wrapf(err, "round %d", round)
			}

			switch signal {
			case field.Win:
				wins++
			case field.Loss:
				losses++
			}

			_, mines := f.RemainingFlags()
			roundLog := log.WithFields(logrus.Fields{
				"round":  round,
				"signal": signal,
				"steps":  steps,
				"mines":  mines,
			})
			roundLog.Info("round over")
			roundLog.Debugf("final field\n%s", render.Text(f))
		}

		played := wins + losses
		winRate := 0.0
		if played > 0 {
			winRate = float64(wins) / float64(played)
		}
		log.WithFields(logrus.Fields{
			"wins":     wins,
			"losses":   losses,
			"win_rate": winRate,
			"elapsed":  time.Since(started),
		}).Info("autoplay finished")
		return nil
	},
}

func init() {
	autoplayCmd.Flags().IntVar(&autoplayRounds, "rounds", autoplayRounds, "Number of rounds to play")
	autoplayCmd.Flags().StringVar(&autoplayDirector, "director", autoplayDirector, "Director to play with (random, constraint)")
	autoplayCmd.Flags().IntVar(&autoplayMaxSteps, "max-steps", autoplayMaxSteps, "Give up on a round after this many moves (0 for no limit)")

	rootCmd.AddCommand(autoplayCmd)
}
