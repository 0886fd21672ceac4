package testhelper

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/AndreyAkinshin/reflectdiff/internal/cases"
	"github.com/AndreyAkinshin/reflectdiff/internal/project"
)

// RunAll runs every suite of the project at projectRoot, one subtest per
// suite and one per case.
func RunAll(t *testing.T, projectRoot string) {
	t.Helper()

	p, err := project.LoadProjectFrom(projectRoot)
	if err != nil {
		t.Fatal(err)
	}
	suites, err := p.DiscoverSuites()
	if err != nil {
		t.Fatal(err)
	}
	for _, suite := range suites {
		t.Run(suite, func(t *testing.T) {
			runSuite(t, p, suite)
		})
	}
}

// RunSuite runs the cases of one suite, one subtest per case.
func RunSuite(t *testing.T, projectRoot, suite string) {
	t.Helper()

	p, err := project.LoadProjectFrom(projectRoot)
	if err != nil {
		t.Fatal(err)
	}
	runSuite(t, p, suite)
}

func runSuite(t *testing.T, p *project.Project, suite string) {
	t.Helper()

	cs, err := loadSuite(p, suite)
	if err != nil {
		t.Fatal(err)
	}

	runner := cases.NewRunner(p.Config, zaptest.NewLogger(t))
	for i := range cs {
		c := &cs[i]
		t.Run(c.Name, func(t *testing.T) {
			res := runner.Run(c)
			switch {
			case res.Skipped:
				t.Skipf("skipped: %s", c.Path)
			case res.Error != nil:
				t.Fatalf("%s: %v", c.Path, res.Error)
			case !res.Passed:
				t.Errorf("%s: %s\n%s", c.Path, res.Reason, res.Diff)
			}
		})
	}
}
