package cases

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/reflectdiff/internal/config"
	"github.com/AndreyAkinshin/reflectdiff/internal/document"
	"github.com/AndreyAkinshin/reflectdiff/pkg/reflectassert"
	"github.com/AndreyAkinshin/reflectdiff/pkg/reflectdiff"
)

// ParallelEnv names the environment variable that bounds how many cases run
// at once.
const ParallelEnv = "REFLECTDIFF_PARALLEL"

const (
	minParallelWorkers = 1
	maxParallelWorkers = 256
)

// Runner runs cases against the comparison settings of a project.
type Runner struct {
	cfg     *config.Config
	log     *zap.Logger
	workers int
}

// NewRunner returns a Runner for cfg. A nil logger disables logging.
func NewRunner(cfg *config.Config, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{cfg: cfg, log: log, workers: parallelWorkers(log)}
}

// WithWorkers returns a copy of r that runs at most n cases at once.
// Values below one select a single worker.
func (r *Runner) WithWorkers(n int) *Runner {
	cp := *r
	cp.workers = max(minParallelWorkers, n)
	return &cp
}

// Run compares the operands of c and checks the outcome against the
// expectation recorded in the case.
func (r *Runner) Run(c *Case) (res Result) {
	res.Case = c
	if c.Skip || r.cfg.SuiteSkipped(c.Suite) {
		res.Skipped = true
		return res
	}

	start := time.Now()
	defer func() {
		res.Duration = time.Since(start)
	}()

	opts, err := r.cfg.EngineOptions(c.Suite, r.log, c.Modes...)
	if err != nil {
		res.Error = err
		return res
	}
	comp, err := reflectdiff.New(opts)
	if err != nil {
		res.Error = err
		return res
	}

	left, right := c.Left, c.Right
	if formats := r.cfg.DateFormats(); len(formats) > 0 || opts.Modes.Has(reflectdiff.LenientDates) {
		left = document.ConvertDates(left, formats)
		right = document.ConvertDates(right, formats)
	}

	d, err := Compare(comp, left, right)
	if err != nil {
		res.Error = err
		return res
	}
	res.Diff = reflectassert.Options{Brief: true}.Format(d)
	res.Reason = checkOutcome(c, d)
	res.Passed = res.Reason == ""

	r.log.Debug("case finished",
		zap.String("suite", c.Suite),
		zap.String("case", c.Name),
		zap.Bool("passed", res.Passed),
		zap.Duration("duration", time.Since(start)))
	return res
}

// Compare runs c on left and right, turning an engine panic into an error.
func Compare(c *reflectdiff.Comparator, left, right any) (d reflectdiff.Difference, err error) {
	defer func() {
		if p := recover(); p != nil {
			if e, ok := p.(error); ok {
				err = fmt.Errorf("comparison failed: %w", e)
				return
			}
			err = fmt.Errorf("comparison failed: %v", p)
		}
	}()
	return c.Compare(left, right), nil
}

func checkOutcome(c *Case, d reflectdiff.Difference) string {
	equal := reflectdiff.IsNone(d)
	switch {
	case c.Equal && !equal:
		return "expected equal values, found a difference"
	case !c.Equal && equal:
		return "expected a difference, values are equal"
	case equal:
		return ""
	}

	inner := reflectdiff.Innermost(d)
	if c.WantPath != "" {
		if got := reflectdiff.RenderPath(inner); got != c.WantPath {
			return fmt.Sprintf("difference at %s, want %s", got, c.WantPath)
		}
	}
	if c.WantMessage != "" && inner.Message() != c.WantMessage {
		return fmt.Sprintf("difference message %q, want %q", inner.Message(), c.WantMessage)
	}
	return ""
}

// RunSuite runs cases concurrently using a bounded worker pool and returns
// the results in case order. A cancelled context leaves the remaining cases
// marked as errors.
func (r *Runner) RunSuite(ctx context.Context, suite string, cases []Case) SuiteResult {
	results := make([]Result, len(cases))

	var wg sync.WaitGroup
	sem := make(chan struct{}, r.workers)

	for i := range cases {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				results[i] = Result{Case: &cases[i], Error: err}
				return
			}
			select {
			case <-ctx.Done():
				results[i] = Result{Case: &cases[i], Error: ctx.Err()}
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			results[i] = r.Run(&cases[i])
		}(i)
	}

	wg.Wait()

	sr := SuiteResult{Suite: suite, Results: results}
	for _, res := range results {
		switch {
		case res.Skipped:
			sr.Skipped++
		case res.Passed:
			sr.Passed++
		default:
			sr.Failed++
		}
	}
	return sr
}

// parallelWorkers returns the worker count from REFLECTDIFF_PARALLEL,
// falling back to the CPU count on unset or invalid values.
func parallelWorkers(log *zap.Logger) int {
	def := max(minParallelWorkers, runtime.NumCPU())
	env := os.Getenv(ParallelEnv)
	if env == "" {
		return def
	}

	n, err := strconv.Atoi(env)
	if err != nil {
		log.Warn("invalid parallelism, using default",
			zap.String("env", ParallelEnv), zap.String("value", env), zap.Int("default", def))
		return def
	}
	if n < minParallelWorkers || n > maxParallelWorkers {
		log.Warn("parallelism out of range, using default",
			zap.String("env", ParallelEnv), zap.Int("value", n), zap.Int("default", def))
		return def
	}
	return n
}
