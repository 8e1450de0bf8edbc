package game

import (
	"io/ioutil"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/they4kman/probsweep/director/constraint"
	"github.com/they4kman/probsweep/field"
)

func quietLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := ioutil.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func TestNewGameConfig(t *testing.T) {
	config := NewGameConfig()
	if config.Width != 20 || config.Height != 20 || config.Difficulty != field.Beginner {
		t.Fatalf("Unexpected defaults %+v", config)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `width: 12
difficulty: Hardcore
seed: 99
act_interval: 250ms
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.Width != 12 || config.Height != 20 {
		t.Fatalf("Expected 12x20, got %dx%d", config.Width, config.Height)
	}
	if config.Difficulty != field.Hardcore || config.Seed != 99 {
		t.Fatalf("Unexpected config %+v", config)
	}
	if config.ActInterval != 250*time.Millisecond {
		t.Fatalf("Expected 250ms act interval, got %v", config.ActInterval)
	}
}

func TestLoadConfigRejectsUnknownSettings(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "widht: 12\n")

	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("Expected a misspelt setting to be rejected")
	}
}

func TestNewFieldIsSeeded(t *testing.T) {
	config := NewGameConfig()
	config.Seed = 1234

	first, seed, err := config.NewField(quietLogger())
	if err != nil {
		t.Fatalf("Failed to create field: %v", err)
	}
	second, _, err := config.NewField(quietLogger())
	if err != nil {
		t.Fatalf("Failed to create field: %v", err)
	}
	if seed != 1234 {
		t.Fatalf("Expected seed 1234, got %d", seed)
	}

	first.Generate()
	second.Generate()
	if first.String() != second.String() {
		t.Fatalf("Expected equal seeds to place equal mines")
	}
}

func newLayoutSession(t *testing.T, layout string) (*Session, string) {
	t.Helper()

	dir := t.TempDir()
	config := NewGameConfig()
	config.LayoutPath = writeFile(t, dir, "layout.yaml", layout)
	config.SavedLayoutsDir = filepath.Join(dir, "saved")

	session, err := NewSession(config, quietLogger())
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	session.now = func() time.Time {
		return time.Date(2020, 6, 1, 12, 30, 0, 0, time.UTC)
	}
	return session, config.SavedLayoutsDir
}

func TestSessionSavesLayoutWhenRoundEnds(t *testing.T) {
	session, savedDir := newLayoutSession(t, "seed: 5\nboard: |\n  #O#\n  ###\n")

	if session.Seed() != 5 || session.Round() != 1 {
		t.Fatalf("Expected round 1 with seed 5, got round %d seed %d", session.Round(), session.Seed())
	}

	if signal := session.Apply(field.RevealAt(0, 0)); signal != field.None {
		t.Fatalf("Expected no signal, got %v", signal)
	}
	if _, err := os.Stat(savedDir); !os.IsNotExist(err) {
		t.Fatalf("Expected nothing to be saved mid-round")
	}

	if signal := session.Apply(field.RevealAt(1, 0)); signal != field.Loss {
		t.Fatalf("Expected loss, got %v", signal)
	}

	path := filepath.Join(savedDir, "20200601_123000_loss_1.yaml")
	in, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected layout to be saved: %v", err)
	}
	layout, err := field.ParseLayout(in)
	if err != nil {
		t.Fatalf("Failed to parse saved layout: %v", err)
	}
	if layout.Seed != 5 || layout.Board != ".*#\n###\n" {
		t.Fatalf("Unexpected saved layout %+v", layout)
	}
}

func TestSessionRestart(t *testing.T) {
	session, _ := newLayoutSession(t, "board: |\n  #O#\n")

	session.Apply(field.FlagAt(1, 0))
	if session.Field().Status() != field.Won {
		t.Fatalf("Expected won round, got %v", session.Field().Status())
	}

	if err := session.Restart(); err != nil {
		t.Fatalf("Failed to restart: %v", err)
	}
	if session.Round() != 2 || session.Field().Status() != field.Playing {
		t.Fatalf("Expected round 2 in play, got round %d %v", session.Round(), session.Field().Status())
	}
	if flags, _ := session.Field().RemainingFlags(); flags != 0 {
		t.Fatalf("Expected flags to be cleared, got %d", flags)
	}
}

func TestSessionAct(t *testing.T) {
	dir := t.TempDir()
	config := NewGameConfig()
	config.LayoutPath = writeFile(t, dir, "layout.yaml", "board: |\n  ###O#\n")
	config.Director = constraint.New(rand.New(rand.NewSource(1)), quietLogger())

	session, err := NewSession(config, quietLogger())
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	session.Apply(field.RevealAt(0, 0))

	session.TogglePaused()
	if signal := session.Act(); signal != field.None {
		t.Fatalf("Expected a paused director to do nothing, got %v", signal)
	}
	if state := session.Field().TileView(3, 0).State; state != field.Hidden {
		t.Fatalf("Expected the paused director not to move, got %v", state)
	}

	session.TogglePaused()
	if signal := session.Act(); signal != field.Win {
		t.Fatalf("Expected the director to flag the last mine, got %v", signal)
	}
}

func countWarnings(hook *test.Hook) int {
	count := 0
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			count++
		}
	}
	return count
}

func TestNewFieldWarnsOfUnknownDifficulty(t *testing.T) {
	logger, hook := test.NewNullLogger()

	config := NewGameConfig()
	config.Seed = 1
	config.Difficulty = "Nightmare"
	f, _, err := config.NewField(logger)
	if err != nil {
		t.Fatalf("Failed to create field: %v", err)
	}
	if f.MineProbability() != field.ProbabilityFor(field.Beginner) {
		t.Fatalf("Expected Beginner probability, got %v", f.MineProbability())
	}
	if countWarnings(hook) != 1 || hook.LastEntry().Data["difficulty"] != "Nightmare" {
		t.Fatalf("Expected a warning about the difficulty, got %v", hook.AllEntries())
	}

	hook.Reset()
	config.Difficulty = field.Advanced
	if _, _, err := config.NewField(logger); err != nil {
		t.Fatalf("Failed to create field: %v", err)
	}
	if countWarnings(hook) != 0 {
		t.Fatalf("Expected no warnings for a known difficulty, got %v", hook.AllEntries())
	}
}

type stuckDirector struct{}

func (stuckDirector) Init(*field.Field) {}

func (stuckDirector) Next() (field.Action, bool) {
	return field.Action{}, false
}

func TestSessionReportsStuckDirectorOncePerRound(t *testing.T) {
	logger, hook := test.NewNullLogger()

	dir := t.TempDir()
	config := NewGameConfig()
	config.LayoutPath = writeFile(t, dir, "layout.yaml", "board: |\n  ###O#\n")
	config.Director = stuckDirector{}

	session, err := NewSession(config, logger)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	for i := 0; i < 5; i++ {
		session.Act()
	}
	if warnings := countWarnings(hook); warnings != 1 {
		t.Fatalf("Expected a single warning, got %d", warnings)
	}

	if err := session.Restart(); err != nil {
		t.Fatalf("Failed to restart: %v", err)
	}
	session.Act()
	session.Act()
	if warnings := countWarnings(hook); warnings != 2 {
		t.Fatalf("Expected one more warning in the new round, got %d", warnings)
	}
}
