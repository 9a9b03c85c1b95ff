package execguard

import (
	"context"
	"regexp"
	"runtime"
)

// toolNameRe is the restrictive identifier pattern for tool names. The name
// is validated before it is ever interpolated into a command string, so the
// name itself cannot be an injection vector.
var toolNameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.+-]*$`)

// ValidToolName reports whether name is safe to interpolate into a probe or
// version-query command.
func ValidToolName(name string) bool {
	return toolNameRe.MatchString(name)
}

// probeCommand returns the platform-appropriate existence probe.
func probeCommand(name string) string {
	if runtime.GOOS == "windows" {
		return "where " + name
	}
	return "which " + name
}

// ToolExists checks whether a tool is on PATH using the guarded executor.
// Invalid names and blocked probes both report false.
func (e *Executor) ToolExists(ctx context.Context, name string) bool {
	if !ValidToolName(name) {
		return false
	}
	result := e.Run(ctx, Request{Command: probeCommand(name)})
	return result.Succeeded
}

// ToolVersion runs the tool's version query through the guarded executor
// and returns the raw output for downstream parsing. flag defaults to
// --version. Some tools print the version to stderr; stderr is returned
// when stdout is empty.
func (e *Executor) ToolVersion(ctx context.Context, name, flag string) (string, bool) {
	if !ValidToolName(name) {
		return "", false
	}
	if flag == "" {
		flag = "--version"
	}
	result := e.Run(ctx, Request{Command: name + " " + flag})
	if !result.Succeeded {
		return "", false
	}
	if result.Stdout != "" {
		return result.Stdout, true
	}
	return result.Stderr, true
}
