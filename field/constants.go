package field

type TileState int
type Status int
type Signal int

const (
	Hidden TileState = iota
	Flagged
	Revealed
)

func (state TileState) String() string {
	switch state {
	case Hidden:
		return "hidden"
	case Flagged:
		return "flagged"
	case Revealed:
		return "revealed"
	default:
		return "unknown"
	}
}

const (
	// Idle fields have no mines placed; every action is ignored until Generate succeeds
	Idle Status = iota
	Playing
	Lost
	Won
)

func (status Status) String() string {
	switch status {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Lost:
		return "lost"
	case Won:
		return "won"
	default:
		return "unknown"
	}
}

const (
	None Signal = iota
	Loss
	Win
)

func (signal Signal) String() string {
	switch signal {
	case None:
		return "none"
	case Loss:
		return "loss"
	case Win:
		return "win"
	default:
		return "unknown"
	}
}

const (
	DefaultWidth  = 20
	DefaultHeight = 20

	// MaxGenerateAttempts bounds the number of placements Generate will throw
	// away for containing no mines
	MaxGenerateAttempts = 10000
)

const (
	Beginner     = "Beginner"
	Intermediate = "Intermediate"
	Advanced     = "Advanced"
	Hardcore     = "Hardcore"
)

var difficulties = []struct {
	name        string
	probability float64
}{
	{Beginner, 1.0 / 12},
	{Intermediate, 1.0 / 10},
	{Advanced, 1.0 / 8},
	{Hardcore, 1.0 / 5},
}

// Difficulties returns the known difficulty names, easiest first
func Difficulties() []string {
	names := make([]string, len(difficulties))
	for i, difficulty := range difficulties {
		names[i] = difficulty.name
	}
	return names
}

// IsDifficulty reports whether name is one of the known difficulties
func IsDifficulty(name string) bool {
	for _, difficulty := range difficulties {
		if difficulty.name == name {
			return true
		}
	}
	return false
}

// ProbabilityFor returns the per-tile mine probability of a difficulty.
// Unrecognised names get Beginner's probability.
func ProbabilityFor(name string) float64 {
	for _, difficulty := range difficulties {
		if difficulty.name == name {
			return difficulty.probability
		}
	}
	return difficulties[0].probability
}
