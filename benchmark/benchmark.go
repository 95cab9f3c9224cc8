package benchmark

import (
	"time"

	"github.com/pkg/errors"

	"sqlitebench/rowgen"
	"sqlitebench/store"
)

// Group separates the report into the insert and update tables.
type Group string

const (
	GroupInsert Group = "insert"
	GroupUpdate Group = "update"
)

// Strategy runs one mutation procedure over rowCount rows against an open
// session. Any store error is unrecoverable and aborts the run.
type Strategy func(s *store.Session, rowCount int, gen *rowgen.Generator) error

// Scenario is one named, repeatable benchmark of a single mutation strategy.
// Scenarios are declared once and run in declared order, never mutated.
type Scenario struct {
	Name    string
	Group   Group
	Default bool // part of the default run set
	Fixture Strategy
	Run     Strategy
}

// Result of one scenario run. RowsPerSec is zero when the scenario was
// skipped or the elapsed time was below the measurable minimum; the report
// prints those as omitted and n/a respectively.
type Result struct {
	Scenario   string
	Group      Group
	Rows       int
	Elapsed    time.Duration
	RowsPerSec float64
	Skipped    bool
}

// Select returns the run set: the explicitly named scenarios, or every
// scenario marked Default when none are named.
func Select(scenarios []Scenario, names []string) (map[string]bool, error) {
	selected := map[string]bool{}

	if len(names) == 0 {
		for _, sc := range scenarios {
			if sc.Default {
				selected[sc.Name] = true
			}
		}
		return selected, nil
	}

	known := map[string]bool{}
	for _, sc := range scenarios {
		known[sc.Name] = true
	}
	for _, name := range names {
		if !known[name] {
			return nil, errors.Errorf("scenario '%s' not found", name)
		}
		selected[name] = true
	}

	return selected, nil
}
