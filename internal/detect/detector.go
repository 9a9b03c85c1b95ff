// Package detect recognizes project types from static marker files and
// proposes readiness checks. Detectors never spawn processes themselves;
// all external queries in their checks go through the guarded executor.
package detect

import (
	"context"
	"os"
	"path/filepath"

	"github.com/envdoctor/envdoctor/internal/execguard"
)

// Status of a single check.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
)

// CheckResult is the outcome of one readiness check. Fix is a suggested
// command or action, displayed and never executed.
type CheckResult struct {
	Status  Status
	Message string
	Fix     string
}

// Check is a named readiness check bound to a project directory.
type Check struct {
	Name string
	Run  func(ctx context.Context, exec *execguard.Executor, dir string) CheckResult
}

// Detector recognizes one ecosystem from static files and proposes checks.
type Detector interface {
	// Name is the human-readable project type, e.g. "Node.js".
	Name() string
	// Detect reports whether this project type is present in dir.
	Detect(dir string) bool
	// Analyze returns free-form facts read from the marker files.
	Analyze(dir string) map[string]string
	// Checks returns the readiness checks for this project type.
	Checks() []Check
}

// All assembles the fixed, ordered detector list. Explicit composition: no
// detector registers itself globally.
func All() []Detector {
	return []Detector{
		nodeDetector{},
		pythonDetector{},
		goDetector{},
		rustDetector{},
		javaDetector{},
		dotnetDetector{},
		phpDetector{},
		cppDetector{},
		flutterDetector{},
		dockerDetector{},
	}
}

// fileExists reports whether a regular file exists at dir/name.
func fileExists(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && !info.IsDir()
}

// dirExists reports whether a directory exists at dir/name.
func dirExists(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && info.IsDir()
}

// anyFileExists reports whether any of the named files exist in dir.
func anyFileExists(dir string, names ...string) bool {
	for _, name := range names {
		if fileExists(dir, name) {
			return true
		}
	}
	return false
}

// anyGlob reports whether any file in dir matches one of the glob patterns.
func anyGlob(dir string, globs ...string) bool {
	for _, g := range globs {
		matches, err := filepath.Glob(filepath.Join(dir, g))
		if err == nil && len(matches) > 0 {
			return true
		}
	}
	return false
}

// toolCheck builds the common "toolchain present" check: existence probe
// plus version query through the guarded executor. A blocked probe degrades
// to a failed check exactly like a missing binary.
func toolCheck(tool, versionFlag, fix string) Check {
	return Check{
		Name: tool + " toolchain",
		Run: func(ctx context.Context, exec *execguard.Executor, dir string) CheckResult {
			if !exec.ToolExists(ctx, tool) {
				return CheckResult{
					Status:  StatusFail,
					Message: tool + " not found on PATH",
					Fix:     fix,
				}
			}
			version, ok := exec.ToolVersion(ctx, tool, versionFlag)
			if !ok {
				return CheckResult{
					Status:  StatusWarn,
					Message: tool + " found but version query failed",
				}
			}
			return CheckResult{Status: StatusPass, Message: firstLine(version)}
		},
	}
}

// depsCheck builds the common "dependencies installed" check over a
// directory marker.
func depsCheck(name, marker, fix string) Check {
	return Check{
		Name: name,
		Run: func(ctx context.Context, exec *execguard.Executor, dir string) CheckResult {
			if dirExists(dir, marker) {
				return CheckResult{Status: StatusPass, Message: marker + " present"}
			}
			return CheckResult{
				Status:  StatusFail,
				Message: "dependencies not installed (" + marker + " missing)",
				Fix:     fix,
			}
		},
	}
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\r' {
			return s[:i]
		}
	}
	return s
}
