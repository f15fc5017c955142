package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"smalljs/interpreter-go/pkg/ast"
)

// ManifestFileName is the conventional manifest name looked up by the CLI.
const ManifestFileName = "program.yml"

// Manifest represents the parsed contents of program.yml: metadata for a
// smalljs program plus optional check suites run by `smalljs check`.
type Manifest struct {
	Path        string
	Name        string
	Description string
	Main        string
	Checks      []*CheckSpec
}

// CheckSpec is one expectation entry: run a program tree and compare its
// observable behaviour.
type CheckSpec struct {
	Name    string
	Program string   // program tree path; empty means the manifest's main
	Stdout  []string // expected output lines, in order
	Failure string   // expected failure substring; empty means success
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n  - ")
		b.WriteString(issue)
	}
	return b.String()
}

type rawManifest struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Main        string     `yaml:"main"`
	Checks      []rawCheck `yaml:"checks"`
}

type rawCheck struct {
	Name    string   `yaml:"name"`
	Program string   `yaml:"program"`
	Stdout  []string `yaml:"stdout"`
	Failure string   `yaml:"failure"`
}

// LoadManifest reads and validates a program.yml. Unknown fields are
// rejected so typos surface instead of silently dropping expectations.
func LoadManifest(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve manifest path %q: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var raw rawManifest
	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", abs, err)
	}

	manifest := &Manifest{
		Path:        abs,
		Name:        strings.TrimSpace(raw.Name),
		Description: strings.TrimSpace(raw.Description),
		Main:        strings.TrimSpace(raw.Main),
	}

	var issues []string
	if manifest.Name == "" {
		issues = append(issues, "name is required")
	}
	if manifest.Main == "" {
		issues = append(issues, "main is required")
	}
	seen := make(map[string]struct{}, len(raw.Checks))
	for idx, check := range raw.Checks {
		name := strings.TrimSpace(check.Name)
		if name == "" {
			issues = append(issues, fmt.Sprintf("checks[%d]: name is required", idx))
			continue
		}
		if _, dup := seen[name]; dup {
			issues = append(issues, fmt.Sprintf("checks[%d]: duplicate check name %q", idx, name))
			continue
		}
		seen[name] = struct{}{}
		if len(check.Stdout) > 0 && check.Failure != "" {
			issues = append(issues, fmt.Sprintf("check %q: stdout and failure are mutually exclusive", name))
			continue
		}
		manifest.Checks = append(manifest.Checks, &CheckSpec{
			Name:    name,
			Program: strings.TrimSpace(check.Program),
			Stdout:  check.Stdout,
			Failure: strings.TrimSpace(check.Failure),
		})
	}
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return manifest, nil
}

// MainPath resolves the manifest's main program tree relative to the
// manifest file.
func (m *Manifest) MainPath() string {
	return m.resolve(m.Main)
}

// ProgramPath resolves a check's program tree, defaulting to main.
func (m *Manifest) ProgramPath(check *CheckSpec) string {
	if check != nil && check.Program != "" {
		return m.resolve(check.Program)
	}
	return m.MainPath()
}

func (m *Manifest) resolve(rel string) string {
	if rel == "" || filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(filepath.Dir(m.Path), filepath.FromSlash(rel))
}

// LoadScript reads a JSON program tree from disk.
func LoadScript(path string) (*ast.Script, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	script, err := ast.DecodeScript(file)
	if err != nil {
		return nil, fmt.Errorf("load program %s: %w", path, err)
	}
	return script, nil
}
