package integration

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/AndreyAkinshin/reflectdiff/internal/cases"
	"github.com/AndreyAkinshin/reflectdiff/internal/project"
)

func TestCheckSampleProject(t *testing.T) {
	t.Parallel()

	proj, err := project.LoadProjectFrom(filepath.Join(fixturesDir(), "sample"))
	if err != nil {
		t.Fatalf("failed to load sample project: %v", err)
	}

	suites, err := cases.LoadAllSuites(proj.CasesDirectory(), proj.CasesPattern())
	if err != nil {
		t.Fatalf("LoadAllSuites() error = %v", err)
	}

	runner := cases.NewRunner(proj.Config, zaptest.NewLogger(t)).WithWorkers(2)

	want := map[string]struct{ passed, skipped int }{
		"legacy":   {0, 1},
		"orders":   {5, 0},
		"profiles": {2, 0},
	}
	for _, name := range cases.SuiteNames(suites) {
		sr := runner.RunSuite(context.Background(), name, suites[name])
		for _, res := range sr.Results {
			if !res.Passed && !res.Skipped {
				t.Errorf("%s/%s failed: %s %v\n%s", name, res.Case.Name, res.Reason, res.Error, res.Diff)
			}
		}
		w, ok := want[name]
		if !ok {
			t.Errorf("unexpected suite %q", name)
			continue
		}
		if sr.Passed != w.passed || sr.Skipped != w.skipped || sr.Failed != 0 {
			t.Errorf("%s: passed=%d skipped=%d failed=%d, want passed=%d skipped=%d failed=0",
				name, sr.Passed, sr.Skipped, sr.Failed, w.passed, w.skipped)
		}
	}
	if len(suites) != len(want) {
		t.Errorf("loaded %d suites, want %d", len(suites), len(want))
	}
}

func TestCheckSampleProject_FileReference(t *testing.T) {
	t.Parallel()

	c, err := cases.LoadCase(filepath.Join(fixturesDir(), "sample", "cases", "orders", "delivery-note.json"))
	if err != nil {
		t.Fatalf("LoadCase() error = %v", err)
	}
	left, ok := c.Left.(map[string]any)
	if !ok {
		t.Fatalf("left = %T, want map", c.Left)
	}
	if left["note"] != "Leave at the front door.\n" {
		t.Errorf("note = %q", left["note"])
	}
}

func TestCheckEscapingFileReference(t *testing.T) {
	t.Parallel()
	fixtureDir := filepath.Join(fixturesDir(), "invalid", "escaping-ref")

	proj, err := project.LoadProjectFrom(fixtureDir)
	if err != nil {
		t.Fatalf("failed to load project: %v", err)
	}

	_, err = cases.LoadSuite(proj.CasesDirectory(), "refs", proj.CasesPattern())
	if err == nil {
		t.Fatal("expected an error for a $file reference outside the case directory")
	}
	if !strings.Contains(err.Error(), "escapes case directory") {
		t.Errorf("error = %q, want it to mention the escape", err.Error())
	}
}

func TestCheckCancelled(t *testing.T) {
	t.Parallel()

	proj, err := project.LoadProjectFrom(filepath.Join(fixturesDir(), "sample"))
	if err != nil {
		t.Fatalf("failed to load sample project: %v", err)
	}
	cs, err := cases.LoadSuite(proj.CasesDirectory(), "orders", proj.CasesPattern())
	if err != nil {
		t.Fatalf("LoadSuite() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sr := cases.NewRunner(proj.Config, nil).RunSuite(ctx, "orders", cs)
	if sr.OK() {
		t.Error("a cancelled run should not report success")
	}
	for _, res := range sr.Results {
		if res.Error == nil && !res.Passed {
			t.Errorf("%s: failed without an error", res.Case.Name)
		}
	}
}
