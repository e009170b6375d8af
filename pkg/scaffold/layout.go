package scaffold

import (
	"path"
	"strings"
)

// DefaultProject is the package name used when a layout names none.
const DefaultProject = "cnnClassifier"

// ProjectPlaceholder is replaced by the project name in manifest paths.
const ProjectPlaceholder = "{project}"

// DefaultLayout returns the standard machine-learning project skeleton.
// An empty projectName selects DefaultProject.
func DefaultLayout(projectName string) []string {
	if projectName == "" {
		projectName = DefaultProject
	}
	pkg := path.Join("src", projectName)
	return []string{
		".github/workflows/.gitkeep",
		path.Join(pkg, "__init__.py"),
		path.Join(pkg, "components", "__init__.py"),
		path.Join(pkg, "utils", "__init__.py"),
		path.Join(pkg, "utils", "common.py"),
		path.Join(pkg, "config", "__init__.py"),
		path.Join(pkg, "pipeline", "__init__.py"),
		path.Join(pkg, "entity", "__init__.py"),
		path.Join(pkg, "constants", "__init__.py"),
		"config/config.yaml",
		"params.yaml",
		"requirements.txt",
		"setup.py",
		"research/trials.ipynb",
	}
}

// Manifest is a declarative layout, typically read from a YAML file:
//
//	project: churn
//	paths:
//	  - src/{project}/__init__.py
//	  - data/raw/
type Manifest struct {
	Project string   `mapstructure:"project" yaml:"project"`
	Paths   []string `mapstructure:"paths" yaml:"paths"`
}

// Resolve returns the manifest paths with ProjectPlaceholder expanded.
// A manifest without paths resolves to DefaultLayout; override, when non-empty,
// takes precedence over the manifest's project name.
func (m Manifest) Resolve(override string) []string {
	project := m.Project
	if override != "" {
		project = override
	}
	if len(m.Paths) == 0 {
		return DefaultLayout(project)
	}
	if project == "" {
		project = DefaultProject
	}
	out := make([]string, 0, len(m.Paths))
	for _, p := range m.Paths {
		out = append(out, strings.ReplaceAll(p, ProjectPlaceholder, project))
	}
	return out
}
