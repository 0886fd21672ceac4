// Package testhelper runs reflectdiff case files from Go tests.
//
// A project keeps its comparison cases in suite directories below the cases
// directory named by .reflectdiff/config.json. RunAll turns every case into a
// subtest, so the cases run under go test as well as under reflectdiff check:
//
//	func TestCases(t *testing.T) {
//	    root, err := testhelper.FindProjectRoot()
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    testhelper.RunAll(t, root)
//	}
package testhelper

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AndreyAkinshin/reflectdiff/internal/cases"
	"github.com/AndreyAkinshin/reflectdiff/internal/project"
)

// FindProjectRoot walks up from the working directory to the directory
// holding .reflectdiff/config.json.
func FindProjectRoot() (string, error) {
	return project.FindRoot()
}

// FindProjectRootFrom finds the project root starting from a specific directory.
func FindProjectRootFrom(startDir string) (string, error) {
	return project.FindRootFrom(startDir)
}

// ListSuites returns the names of the case suites of the project at root.
func ListSuites(projectRoot string) ([]string, error) {
	p, err := project.LoadProjectFrom(projectRoot)
	if err != nil {
		return nil, err
	}
	return p.DiscoverSuites()
}

// SuiteExists checks if a case suite exists.
func SuiteExists(projectRoot, suite string) bool {
	p, err := project.LoadProjectFrom(projectRoot)
	if err != nil {
		return false
	}
	info, err := os.Stat(filepath.Join(p.CasesDirectory(), suite))
	return err == nil && info.IsDir()
}

func loadSuite(p *project.Project, suite string) ([]cases.Case, error) {
	cs, err := cases.LoadSuite(p.CasesDirectory(), suite, p.CasesPattern())
	if err != nil {
		return nil, fmt.Errorf("load suite %q: %w", suite, err)
	}
	return cs, nil
}
