package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AndreyAkinshin/reflectdiff/internal/config"
)

func testProject(t *testing.T) *Project {
	t.Helper()
	return &Project{Root: t.TempDir(), Config: config.Default()}
}

func TestDiscoverSuites(t *testing.T) {
	t.Parallel()
	p := testProject(t)

	for _, name := range []string{"users", "orders", ".cache"} {
		if err := os.MkdirAll(filepath.Join(p.CasesDirectory(), name), 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(p.CasesDirectory(), "loose.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	suites, err := p.DiscoverSuites()
	if err != nil {
		t.Fatalf("DiscoverSuites() error = %v", err)
	}
	if len(suites) != 2 || suites[0] != "orders" || suites[1] != "users" {
		t.Errorf("DiscoverSuites() = %v, want [orders users]", suites)
	}
}

func TestDiscoverSuites_MissingDirectory(t *testing.T) {
	t.Parallel()
	p := testProject(t)

	if _, err := p.DiscoverSuites(); err == nil {
		t.Error("DiscoverSuites() expected error for missing cases directory")
	}
	if err := p.ValidateCasesDirectory(); err == nil {
		t.Error("ValidateCasesDirectory() expected error for missing directory")
	}
}

func TestValidateCasesDirectory_File(t *testing.T) {
	t.Parallel()
	p := testProject(t)

	if err := os.WriteFile(p.CasesDirectory(), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := p.ValidateCasesDirectory(); err == nil {
		t.Error("ValidateCasesDirectory() expected error for a file")
	}
}

func TestMissingSuites(t *testing.T) {
	t.Parallel()
	p := testProject(t)
	p.Config.Suites = map[string]config.SuiteConfig{"b": {}, "a": {}, "present": {}}

	if err := os.MkdirAll(filepath.Join(p.CasesDirectory(), "present"), 0755); err != nil {
		t.Fatal(err)
	}

	missing, err := p.MissingSuites()
	if err != nil {
		t.Fatalf("MissingSuites() error = %v", err)
	}
	if len(missing) != 2 || missing[0] != "a" || missing[1] != "b" {
		t.Errorf("MissingSuites() = %v, want [a b]", missing)
	}
}
