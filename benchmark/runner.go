package benchmark

import (
	"time"

	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"

	"sqlitebench/rowgen"
	"sqlitebench/store"
)

// minElapsed guards the rows/sec division. Anything faster than this rounds
// into timer noise and is reported as n/a instead of an absurd rate.
const minElapsed = time.Millisecond

// Runner executes scenarios strictly sequentially, one session at a time.
// Each scenario gets a freshly opened store so no run inherits file growth
// or cached pages from an earlier one.
type Runner struct {
	Store store.Config
	Rows  int
	// Now is the timestamp source for the scenario timer.
	Now func() time.Time

	gen *rowgen.Generator
}

func NewRunner(cfg store.Config, rows int, gen *rowgen.Generator) *Runner {
	return &Runner{
		Store: cfg,
		Rows:  rows,
		Now:   time.Now,
		gen:   gen,
	}
}

// Run executes the selected scenarios in declared order and returns one
// result per scenario. Scenarios outside the run set yield a skipped result,
// so the report still lists them. The first store error aborts the whole
// run: a comparison table with missing strategies is not meaningful.
func (r *Runner) Run(scenarios []Scenario, selected map[string]bool) ([]Result, error) {
	results := make([]Result, 0, len(scenarios))

	for _, sc := range scenarios {
		if !selected[sc.Name] {
			results = append(results, Result{Scenario: sc.Name, Group: sc.Group, Skipped: true})
			continue
		}

		result, err := r.runScenario(sc)
		if err != nil {
			return nil, errors.Wrap(err, sc.Name)
		}
		results = append(results, *result)
	}

	return results, nil
}

func (r *Runner) runScenario(sc Scenario) (*Result, error) {
	session, err := store.Open(r.Store)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	if sc.Fixture != nil {
		if err := sc.Fixture(session, r.Rows, r.gen); err != nil {
			return nil, err
		}
	}

	// Applied after the fixture and before the timer, so journaling mode
	// affects only the measured strategy.
	if r.Store.JournalMemory {
		if err := session.Exec("PRAGMA journal_mode = MEMORY"); err != nil {
			return nil, err
		}
	}

	zlog.Info().Str("scenario", sc.Name).Int("rows", r.Rows).Msg("Running")

	start := r.Now()
	if err := sc.Run(session, r.Rows, r.gen); err != nil {
		return nil, err
	}
	elapsed := r.Now().Sub(start)

	if err := session.Close(); err != nil {
		return nil, err
	}

	result := &Result{
		Scenario: sc.Name,
		Group:    sc.Group,
		Rows:     r.Rows,
		Elapsed:  elapsed,
	}
	if elapsed >= minElapsed {
		result.RowsPerSec = float64(r.Rows) / elapsed.Seconds()
	}

	zlog.Info().Str("scenario", sc.Name).Dur("elapsed", elapsed).
		Float64("rowsPerSec", result.RowsPerSec).Msg("Done")

	return result, nil
}
