package project

import (
	"fmt"
	"path/filepath"

	"github.com/AndreyAkinshin/reflectdiff/internal/config"
)

// Project represents a loaded reflectdiff project.
type Project struct {
	Root     string
	Config   *config.Config
	Warnings []string
}

// LoadProject finds and loads a project from the current directory.
func LoadProject() (*Project, error) {
	root, err := FindRoot()
	if err != nil {
		return nil, err
	}
	return LoadProjectFrom(root)
}

// LoadProjectFrom loads a project from a specified root directory.
func LoadProjectFrom(root string) (*Project, error) {
	configPath := filepath.Join(root, ConfigDirName, ConfigFileName)

	cfg, warnings, err := config.LoadAndValidate(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	p := &Project{
		Root:     root,
		Config:   cfg,
		Warnings: warnings,
	}

	// Configured suites are only checked against the disk when the cases
	// directory exists; a project may be created before its cases.
	if validateCasesDirectory(p.CasesDirectory()) == nil {
		missing, err := p.MissingSuites()
		if err != nil {
			return nil, err
		}
		for _, name := range missing {
			p.Warnings = append(p.Warnings, fmt.Sprintf("suites.%s: no directory %s", name, filepath.Join(cfg.Cases.Directory, name)))
		}
	}

	return p, nil
}

// ConfigPath returns the full path to the project configuration file.
func (p *Project) ConfigPath() string {
	return filepath.Join(p.Root, ConfigDirName, ConfigFileName)
}

// CasesDirectory returns the absolute path to the cases directory.
func (p *Project) CasesDirectory() string {
	dir := config.DefaultCasesDirectory
	if p.Config.Cases != nil && p.Config.Cases.Directory != "" {
		dir = p.Config.Cases.Directory
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(p.Root, dir)
}

// CasesPattern returns the file name pattern selecting case files.
func (p *Project) CasesPattern() string {
	if p.Config.Cases != nil && p.Config.Cases.Pattern != "" {
		return p.Config.Cases.Pattern
	}
	return config.DefaultCasesPattern
}
