// Package scenario replays a YAML-described sequence of ring operations,
// reproducing concrete join/leave/insert/lookup/delete traces (such as the
// ones used to validate the lookup and migration protocols) from a data
// file instead of hardcoding them in Go.
package scenario

import (
	"fmt"

	"ChordSim/internal/configloader"
	"ChordSim/internal/logger"
	"ChordSim/internal/ring"
)

// Step is one operation in a scenario: Action selects which ring method
// runs, and only the fields that action needs are read.
type Step struct {
	Action string `yaml:"action"` // join, leave, insert, lookup, delete
	Node   int    `yaml:"node,omitempty"`
	Key    string `yaml:"key,omitempty"`
	Value  string `yaml:"value,omitempty"`
}

// Scenario is a ring width plus the steps to replay against it.
type Scenario struct {
	Bits  int    `yaml:"bits"`
	Steps []Step `yaml:"steps"`
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	var s Scenario
	if err := configloader.LoadYAML(path, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Result records the outcome of one replayed step, for callers that want to
// print or assert on what happened (e.g. a lookup's returned value).
type Result struct {
	Step  Step
	Value string
	Found bool
	Err   error
}

// Run replays every step against r in order, stopping at the first step that
// fails: a Join or Leave the Ring rejects, an unknown action, or ErrEmptyRing
// from Insert/Lookup/Delete (their only Ring-level failure). Absent lookups
// are reported via Result.Found, not Result.Err.
func Run(r *ring.Ring, s *Scenario, lgr logger.Logger) ([]Result, error) {
	results := make([]Result, 0, len(s.Steps))
	for i, step := range s.Steps {
		res := Result{Step: step}
		var err error
		switch step.Action {
		case "join":
			_, err = r.Join(step.Node)
		case "leave":
			err = r.Leave(step.Node)
		case "insert":
			err = r.Insert(step.Key, step.Value)
		case "lookup":
			res.Value, res.Found, err = r.Lookup(step.Key)
		case "delete":
			err = r.Delete(step.Key)
		default:
			err = fmt.Errorf("scenario: unknown action %q at step %d", step.Action, i)
		}
		res.Err = err
		results = append(results, res)
		if err != nil {
			lgr.Error("scenario: step failed",
				logger.F("index", i), logger.F("action", step.Action), logger.F("error", err.Error()))
			return results, fmt.Errorf("scenario: step %d (%s): %w", i, step.Action, err)
		}
		lgr.Debug("scenario: step replayed", logger.F("index", i), logger.F("action", step.Action))
	}
	return results, nil
}
