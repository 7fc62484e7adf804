package stories

import (
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"storyhub-backend/models/story"
)

// StepFunc receives the transaction handle and the results of earlier steps,
// keyed by step name.
type StepFunc func(tx *gorm.DB, results map[string]any) (any, error)

// Multi accumulates named steps and runs them inside one database
// transaction. The first failing step rolls the whole transaction back and
// is reported as a TransactionError naming the step.
type Multi struct {
	steps []multiStep
}

type multiStep struct {
	name string
	fn   StepFunc
}

func NewMulti() *Multi {
	return &Multi{}
}

func (m *Multi) Step(name string, fn StepFunc) *Multi {
	m.steps = append(m.steps, multiStep{name: name, fn: fn})
	return m
}

// Run executes every step under db.Transaction and returns each step's
// result keyed by name.
func (m *Multi) Run(db *gorm.DB) (map[string]any, error) {
	results := make(map[string]any, len(m.steps))
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, s := range m.steps {
			out, err := s.fn(tx, results)
			if err != nil {
				return &story.TransactionError{Step: s.name, Err: err}
			}
			results[s.name] = out
		}
		return nil
	})
	if err != nil {
		var terr *story.TransactionError
		if !errors.As(err, &terr) {
			// commit itself failed after every step succeeded
			terr = &story.TransactionError{Step: "commit", Err: err}
			err = terr
		}
		logrus.WithError(terr.Err).WithField("step", terr.Step).
			Warn("transaction aborted")
		return nil, err
	}
	return results, nil
}
