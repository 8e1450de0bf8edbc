package cmd

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/they4kman/probsweep/director"
	"github.com/they4kman/probsweep/director/constraint"
	"github.com/they4kman/probsweep/director/random"
	"github.com/they4kman/probsweep/field"
)

type difficultyValue string

var _ pflag.Value = (*difficultyValue)(nil)

func newDifficultyValue(val string, p *string) *difficultyValue {
	*p = val
	return (*difficultyValue)(p)
}

func (diffVal *difficultyValue) String() string {
	return string(*diffVal)
}

func (diffVal *difficultyValue) Set(value string) error {
	for _, name := range field.Difficulties() {
		if strings.EqualFold(name, value) {
			*diffVal = difficultyValue(name)
			return nil
		}
	}
	return fmt.Errorf("invalid difficulty, expected one of %s", strings.Join(field.Difficulties(), ", "))
}

func (diffVal *difficultyValue) Type() string {
	return "difficulty"
}

var directorNames = []string{"random", "constraint"}

func newDirector(name string, rng *rand.Rand, log logrus.FieldLogger) (director.Director, error) {
	switch name {
	case "":
		return nil, nil
	case "random":
		return random.New(rng), nil
	case "constraint":
		return constraint.New(rng, log), nil
	default:
		return nil, fmt.Errorf("unknown director %q, expected one of %s", name, strings.Join(directorNames, ", "))
	}
}

// directorRand seeds a director apart from the field's placer, which draws
// from seed itself
func directorRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed + 1))
}
