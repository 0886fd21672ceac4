package cases

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AndreyAkinshin/reflectdiff/internal/document"
	"github.com/AndreyAkinshin/reflectdiff/internal/schema"
)

// fileRefKey marks an object that stands for the contents of another file.
const fileRefKey = "$file"

// LoadSuite loads all cases from a suite directory.
func LoadSuite(casesDir, suite, pattern string) ([]Case, error) {
	suiteDir := filepath.Join(casesDir, suite)

	if _, err := os.Stat(suiteDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("case suite directory not found: %s", suiteDir)
	}

	matches, err := findMatches(suiteDir, pattern)
	if err != nil {
		return nil, err
	}

	var cases []Case
	for _, path := range matches {
		c, err := LoadCase(path)
		if err != nil {
			return nil, fmt.Errorf("case suite %q: %w (file: %s)", suite, err, path)
		}
		c.Suite = suite
		cases = append(cases, *c)
	}

	sort.Slice(cases, func(i, j int) bool {
		return cases[i].Name < cases[j].Name
	})

	return cases, nil
}

// LoadAllSuites loads cases from every suite directory. Suites without
// matching files are omitted.
func LoadAllSuites(casesDir, pattern string) (map[string][]Case, error) {
	entries, err := os.ReadDir(casesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read cases directory: %w", err)
	}

	suites := make(map[string][]Case)
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		suite := entry.Name()
		cases, err := LoadSuite(casesDir, suite, pattern)
		if err != nil {
			return nil, err
		}

		if len(cases) > 0 {
			suites[suite] = cases
		}
	}

	return suites, nil
}

// SuiteNames returns the suite names of suites in sorted order.
func SuiteNames(suites map[string][]Case) []string {
	names := make([]string, 0, len(suites))
	for name := range suites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadCase loads a single case from a JSON or YAML file.
func LoadCase(path string) (*Case, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}

	raw, ok := doc.(map[string]any)
	if !ok {
		return nil, errors.New("case file must contain an object")
	}
	if err := schema.ValidateCase(raw); err != nil {
		return nil, err
	}

	c := &Case{
		Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path: path,
	}
	c.Description, _ = raw["description"].(string)
	c.Equal, _ = raw["equal"].(bool)
	c.WantPath, _ = raw["path"].(string)
	c.WantMessage, _ = raw["message"].(string)
	c.Skip, _ = raw["skip"].(bool)
	if modes, ok := raw["modes"].([]any); ok {
		for _, m := range modes {
			if s, ok := m.(string); ok {
				c.Modes = append(c.Modes, s)
			}
		}
	}

	if c.Equal && (c.WantPath != "" || c.WantMessage != "") {
		return nil, errors.New("\"path\" and \"message\" require \"equal\": false")
	}

	baseDir := filepath.Dir(path)
	if c.Left, err = resolveFileRefs(raw["left"], baseDir); err != nil {
		return nil, fmt.Errorf("left: %w", err)
	}
	if c.Right, err = resolveFileRefs(raw["right"], baseDir); err != nil {
		return nil, fmt.Errorf("right: %w", err)
	}

	return c, nil
}

// findMatches returns the JSON and YAML files below dir whose base name
// matches the filepath.Match pattern, in sorted order.
func findMatches(dir, pattern string) ([]string, error) {
	var matches []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, err := document.FormatOf(path); err != nil {
			return nil
		}

		matched, err := filepath.Match(pattern, d.Name())
		if err != nil {
			return err
		}
		if matched {
			matches = append(matches, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Strings(matches)
	return matches, nil
}

// resolveFileRefs replaces every {"$file": "name"} object in value with the
// contents of the named file.
func resolveFileRefs(value any, baseDir string) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		if ref, ok := v[fileRefKey].(string); ok && len(v) == 1 {
			return loadFileRef(ref, baseDir)
		}

		result := make(map[string]any, len(v))
		for key, val := range v {
			resolved, err := resolveFileRefs(val, baseDir)
			if err != nil {
				return nil, err
			}
			result[key] = resolved
		}
		return result, nil

	case []any:
		result := make([]any, len(v))
		for i, val := range v {
			resolved, err := resolveFileRefs(val, baseDir)
			if err != nil {
				return nil, err
			}
			result[i] = resolved
		}
		return result, nil

	default:
		return value, nil
	}
}

// loadFileRef loads a file referenced by $file. JSON and YAML files are
// decoded; any other file is returned as a string.
func loadFileRef(ref, baseDir string) (any, error) {
	if filepath.IsAbs(ref) {
		return nil, fmt.Errorf("$file path must be relative: %s", ref)
	}

	path := filepath.Join(baseDir, ref)
	rel, err := filepath.Rel(baseDir, path)
	if err != nil {
		return nil, err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("$file path escapes case directory: %s", ref)
	}

	if _, err := document.FormatOf(path); err == nil {
		v, err := document.Load(path)
		if err != nil {
			return nil, fmt.Errorf("$file %q: %w", ref, err)
		}
		return v, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("$file %q: %w", ref, err)
	}
	return string(data), nil
}
