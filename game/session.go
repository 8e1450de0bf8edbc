package game

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/they4kman/probsweep/field"
)

// Session is one window's worth of play: a field which is restarted after each
// round, optionally driven by a director.
type Session struct {
	config GameConfig
	field  *field.Field
	seed   int64
	paused bool
	round  int
	// set once the director has been reported as stuck this round
	stuck bool

	log logrus.FieldLogger
	now func() time.Time
}

func NewSession(config GameConfig, log logrus.FieldLogger) (*Session, error) {
	f, seed, err := config.NewField(log)
	if err != nil {
		return nil, err
	}

	session := &Session{
		config: config,
		field:  f,
		seed:   seed,
		log:    log,
		now:    time.Now,
	}
	if err := session.Restart(); err != nil {
		return nil, err
	}
	return session, nil
}

func (session *Session) Field() *field.Field {
	return session.field
}

func (session *Session) Seed() int64 {
	return session.seed
}

func (session *Session) Round() int {
	return session.round
}

// Restart begins a new round on a freshly generated field
func (session *Session) Restart() error {
	if err := session.field.Generate(); err != nil {
		return errors.Wrap(err, "starting round")
	}
	session.round++
	session.stuck = false

	if session.config.Director != nil {
		session.config.Director.Init(session.field)
	}
	return nil
}

func (session *Session) HasDirector() bool {
	return session.config.Director != nil
}

func (session *Session) Paused() bool {
	return session.paused
}

func (session *Session) TogglePaused() {
	session.paused = !session.paused
}

// Apply performs a player action, finishing the round if it ended it
func (session *Session) Apply(action field.Action) field.Signal {
	signal := session.field.Apply(action)
	if signal != field.None {
		session.endRound(signal)
	}
	return signal
}

// Act lets the director make a single move, unless paused
func (session *Session) Act() field.Signal {
	if session.paused || !session.HasDirector() || session.field.Status() != field.Playing {
		return field.None
	}

	action, ok := session.config.Director.Next()
	if !ok {
		if !session.stuck {
			session.stuck = true
			session.log.WithField("round", session.round).Warn("director has no moves left")
		}
		return field.None
	}
	return session.Apply(action)
}

func (session *Session) endRound(signal field.Signal) {
	flags, mines := session.field.RemainingFlags()
	session.log.WithFields(logrus.Fields{
		"round":  session.round,
		"signal": signal,
		"flags":  flags,
		"mines":  mines,
	}).Info("round over")

	if err := session.saveLayout(); err != nil {
		session.log.WithError(err).Error("could not save layout")
	}
}

func (session *Session) saveLayout() error {
	dir := session.config.SavedLayoutsDir
	if dir == "" {
		return nil
	}

	stat, err := os.Stat(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		if err := os.MkdirAll(dir, 0777); err != nil {
			return err
		}
	} else if !stat.Mode().IsDir() {
		return errors.Errorf("%s is not a directory; cannot save layouts to it", dir)
	}

	layout := field.LayoutOf(session.field)
	layout.Seed = session.seed
	out, err := layout.Marshal()
	if err != nil {
		return err
	}

	path := filepath.Join(dir, session.layoutFilename(session.now()))
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
	if err != nil {
		return errors.Wrap(err, "creating layout file")
	}
	defer file.Close()

	if _, err := file.Write(out); err != nil {
		return errors.Wrap(err, "writing layout file")
	}

	session.log.WithField("path", path).Debug("saved layout")
	return nil
}

func (session *Session) layoutFilename(t time.Time) string {
	filenameBuilder := strings.Builder{}

	filenameBuilder.WriteString(t.Format("20060102_150405_"))

	var stateStr string
	switch session.field.Status() {
	case field.Won:
		stateStr = "win"
	case field.Lost:
		stateStr = "loss"
	default:
		stateStr = "other"
	}
	filenameBuilder.WriteString(stateStr)

	fmt.Fprintf(&filenameBuilder, "_%d.yaml", session.round)

	return filenameBuilder.String()
}
