package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"smalljs/interpreter-go/pkg/driver"
	"smalljs/interpreter-go/pkg/interpreter"
)

const cliToolVersion = "smalljs-cli 0.1.0-dev"

var errManifestNotFound = errors.New("program.yml not found")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 1
	}

	switch args[0] {
	case "--help", "-h":
		printUsage(stderr)
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(args[1:], stdout, stderr)
	case "check":
		return runCheck(args[1:], stdout, stderr)
	default:
		return runEntry(args, stdout, stderr)
	}
}

func runEntry(args []string, stdout, stderr io.Writer) int {
	entry, err := resolveEntry(args)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	return executeProgram(entry, stdout, stderr)
}

// resolveEntry accepts a program tree path, a manifest path, or nothing (in
// which case the nearest program.yml upwards from the working directory
// decides).
func resolveEntry(args []string) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("unexpected arguments: %s", strings.Join(args[1:], " "))
	}
	if len(args) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		manifestPath, err := findManifest(cwd)
		if err != nil {
			return "", fmt.Errorf("smalljs run requires a program tree or a manifest: %w", err)
		}
		return mainFromManifest(manifestPath)
	}

	candidate := args[0]
	info, err := os.Stat(candidate)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return mainFromManifest(filepath.Join(candidate, driver.ManifestFileName))
	}
	if isManifestPath(candidate) {
		return mainFromManifest(candidate)
	}
	return candidate, nil
}

func mainFromManifest(path string) (string, error) {
	manifest, err := driver.LoadManifest(path)
	if err != nil {
		return "", fmt.Errorf("failed to load manifest: %w", err)
	}
	return manifest.MainPath(), nil
}

func isManifestPath(path string) bool {
	base := filepath.Base(path)
	return base == driver.ManifestFileName || filepath.Ext(base) == ".yml" || filepath.Ext(base) == ".yaml"
}

func executeProgram(entry string, stdout, stderr io.Writer) int {
	script, err := driver.LoadScript(entry)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load program: %v\n", err)
		return 1
	}
	if err := interpreter.Interpret(script, stdout); err != nil {
		fmt.Fprintf(stderr, "runtime error: %v\n", err)
		return 1
	}
	return 0
}

func runCheck(args []string, stdout, stderr io.Writer) int {
	var manifestPath string
	switch len(args) {
	case 0:
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(stderr, "resolve working directory: %v\n", err)
			return 1
		}
		found, err := findManifest(cwd)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}
		manifestPath = found
	case 1:
		manifestPath = args[0]
	default:
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return 1
	}

	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load manifest: %v\n", err)
		return 1
	}
	if len(manifest.Checks) == 0 {
		fmt.Fprintf(stdout, "%s: no checks declared\n", manifest.Name)
		return 0
	}

	failed := 0
	for _, check := range manifest.Checks {
		if ok := runOneCheck(manifest, check, stdout); !ok {
			failed++
		}
	}
	fmt.Fprintf(stdout, "%d checks, %d failed\n", len(manifest.Checks), failed)
	if failed > 0 {
		return 1
	}
	return 0
}

func runOneCheck(manifest *driver.Manifest, check *driver.CheckSpec, stdout io.Writer) bool {
	script, err := driver.LoadScript(manifest.ProgramPath(check))
	if err != nil {
		fmt.Fprintf(stdout, "FAIL %s: %v\n", check.Name, err)
		return false
	}

	var captured bytes.Buffer
	runErr := interpreter.Interpret(script, &captured)

	if check.Failure != "" {
		if runErr == nil {
			fmt.Fprintf(stdout, "FAIL %s: expected failure containing %q, program succeeded\n", check.Name, check.Failure)
			return false
		}
		if !strings.Contains(runErr.Error(), check.Failure) {
			fmt.Fprintf(stdout, "FAIL %s: failure %q does not contain %q\n", check.Name, runErr.Error(), check.Failure)
			return false
		}
		fmt.Fprintf(stdout, "ok   %s\n", check.Name)
		return true
	}

	if runErr != nil {
		fmt.Fprintf(stdout, "FAIL %s: %v\n", check.Name, runErr)
		return false
	}
	got := splitOutputLines(captured.String())
	if diff := diffLines(check.Stdout, got); diff != "" {
		fmt.Fprintf(stdout, "FAIL %s: %s\n", check.Name, diff)
		return false
	}
	fmt.Fprintf(stdout, "ok   %s\n", check.Name)
	return true
}

func splitOutputLines(out string) []string {
	trimmed := strings.TrimSuffix(out, "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

func diffLines(want, got []string) string {
	if len(want) != len(got) {
		return fmt.Sprintf("expected %d output lines, got %d (%q)", len(want), len(got), got)
	}
	for idx := range want {
		if want[idx] != got[idx] {
			return fmt.Sprintf("line %d: expected %q, got %q", idx+1, want[idx], got[idx])
		}
	}
	return ""
}

func findManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, driver.ManifestFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", driver.ManifestFileName, origin, errManifestNotFound)
		}
		dir = parent
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  smalljs run [program.json | program.yml | dir]")
	fmt.Fprintln(w, "  smalljs <program.json>")
	fmt.Fprintln(w, "  smalljs check [program.yml]")
}
