package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, root, content string) {
	t.Helper()
	dir := filepath.Join(root, ConfigDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFindRootFrom_Found(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{"project":{"name":"test"}}`)

	found, err := FindRootFrom(root)
	if err != nil {
		t.Fatalf("FindRootFrom() error = %v", err)
	}
	if found != root {
		t.Errorf("FindRootFrom() = %q, want %q", found, root)
	}
}

func TestFindRootFrom_FoundFromSubdir(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{"project":{"name":"test"}}`)

	subdir := filepath.Join(root, "cases", "orders", "deep")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatal(err)
	}

	found, err := FindRootFrom(subdir)
	if err != nil {
		t.Fatalf("FindRootFrom() error = %v", err)
	}
	if found != root {
		t.Errorf("FindRootFrom() = %q, want %q", found, root)
	}
}

func TestFindRootFrom_NotFound(t *testing.T) {
	dir := t.TempDir()

	_, err := FindRootFrom(dir)
	if !errors.Is(err, ErrNoProjectRoot) {
		t.Errorf("FindRootFrom() error = %v, want ErrNoProjectRoot", err)
	}
}

func TestFindRoot_UsesWorkingDirectory(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{"project":{"name":"test"}}`)
	t.Chdir(root)

	found, err := FindRoot()
	if err != nil {
		t.Fatalf("FindRoot() error = %v", err)
	}
	// The temp dir may sit behind a symlink, so compare resolved paths.
	want, _ := filepath.EvalSymlinks(root)
	got, _ := filepath.EvalSymlinks(found)
	if got != want {
		t.Errorf("FindRoot() = %q, want %q", got, want)
	}
}

func TestLoadProjectFrom_Minimal(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{"project":{"name":"myproject"}}`)

	proj, err := LoadProjectFrom(root)
	if err != nil {
		t.Fatalf("LoadProjectFrom() error = %v", err)
	}

	if proj.Root != root {
		t.Errorf("Root = %q, want %q", proj.Root, root)
	}
	if proj.Config.Project.Name != "myproject" {
		t.Errorf("Project.Name = %q, want %q", proj.Config.Project.Name, "myproject")
	}
	if got, want := proj.ConfigPath(), filepath.Join(root, ".reflectdiff", "config.json"); got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}
	if got, want := proj.CasesDirectory(), filepath.Join(root, "cases"); got != want {
		t.Errorf("CasesDirectory() = %q, want %q", got, want)
	}
	if got := proj.CasesPattern(); got != "*" {
		t.Errorf("CasesPattern() = %q, want *", got)
	}
	if len(proj.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", proj.Warnings)
	}
}

func TestLoadProjectFrom_CustomCases(t *testing.T) {
	root := t.TempDir()
	abs := filepath.Join(t.TempDir(), "elsewhere")
	writeConfig(t, root, `{"project":{"name":"p"},"cases":{"directory":"testdata/diff","pattern":"*.yaml"}}`)

	proj, err := LoadProjectFrom(root)
	if err != nil {
		t.Fatalf("LoadProjectFrom() error = %v", err)
	}
	if got, want := proj.CasesDirectory(), filepath.Join(root, "testdata", "diff"); got != want {
		t.Errorf("CasesDirectory() = %q, want %q", got, want)
	}
	if got := proj.CasesPattern(); got != "*.yaml" {
		t.Errorf("CasesPattern() = %q, want *.yaml", got)
	}

	proj.Config.Cases.Directory = abs
	if got := proj.CasesDirectory(); got != abs {
		t.Errorf("CasesDirectory() with absolute directory = %q, want %q", got, abs)
	}
}

func TestLoadProjectFrom_WarnsAboutMissingSuites(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{"project":{"name":"p"},"suites":{"orders":{},"users":{"skip":true}}}`)
	if err := os.MkdirAll(filepath.Join(root, "cases", "orders"), 0755); err != nil {
		t.Fatal(err)
	}

	proj, err := LoadProjectFrom(root)
	if err != nil {
		t.Fatalf("LoadProjectFrom() error = %v", err)
	}
	if len(proj.Warnings) != 1 || !strings.Contains(proj.Warnings[0], "suites.users") {
		t.Errorf("Warnings = %v, want one about suites.users", proj.Warnings)
	}
}

func TestLoadProjectFrom_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{"malformed JSON", `{"project":`},
		{"missing project name", `{"project":{}}`},
		{"unknown mode", `{"project":{"name":"p"},"comparison":{"modes":["fuzzy"]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeConfig(t, root, tt.config)

			if _, err := LoadProjectFrom(root); err == nil {
				t.Error("LoadProjectFrom() expected error")
			}
		})
	}
}

func TestLoadProjectFrom_UnknownFieldsWarn(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{"project":{"name":"p"},"extra":1}`)

	proj, err := LoadProjectFrom(root)
	if err != nil {
		t.Fatalf("LoadProjectFrom() error = %v", err)
	}
	if len(proj.Warnings) == 0 {
		t.Error("Warnings is empty, want an unknown field warning")
	}
}
