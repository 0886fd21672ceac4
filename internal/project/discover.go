package project

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// DiscoverSuites returns the names of the suite directories below the cases
// directory, in sorted order. Hidden directories are skipped.
func (p *Project) DiscoverSuites() ([]string, error) {
	dir := p.CasesDirectory()
	if err := validateCasesDirectory(dir); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var suites []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		suites = append(suites, entry.Name())
	}
	sort.Strings(suites)
	return suites, nil
}

// MissingSuites returns the configured suites that have no directory, in
// sorted order.
func (p *Project) MissingSuites() ([]string, error) {
	found, err := p.DiscoverSuites()
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(found))
	for _, name := range found {
		present[name] = true
	}

	var missing []string
	for name := range p.Config.Suites {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing, nil
}

// ValidateCasesDirectory checks that the cases directory exists.
func (p *Project) ValidateCasesDirectory() error {
	return validateCasesDirectory(p.CasesDirectory())
}

func validateCasesDirectory(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("cases directory %q does not exist", dir)
	}
	if err != nil {
		return fmt.Errorf("cannot access cases directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cases path %q is not a directory", dir)
	}
	return nil
}
