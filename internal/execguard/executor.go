// Package execguard implements the guarded executor, the sole gateway to
// external process invocation. Every run is classified first; denied
// commands produce a fabricated blocked result without the operating system
// ever being touched. Approved commands are spawned without a shell, with a
// bounded timeout and captured output.
package execguard

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/envdoctor/envdoctor/internal/audit"
	"github.com/envdoctor/envdoctor/internal/gate"
	"github.com/envdoctor/envdoctor/internal/logger"
)

// DefaultTimeout bounds a single external command.
const DefaultTimeout = 10 * time.Second

// Sentinel exit codes.
const (
	// BlockedExitCode marks a command the classifier refused to run,
	// distinguishing "refused" from "ran and failed".
	BlockedExitCode = -1
	// TimeoutExitCode marks a forcibly terminated command, matching the
	// convention of coreutils timeout(1).
	TimeoutExitCode = 124
	// SpawnErrorExitCode marks a spawn-level failure (binary not found,
	// permission error).
	SpawnErrorExitCode = 1
)

// Request describes a single command execution. Never mutated after
// construction.
type Request struct {
	Command string
	Dir     string        // working directory; empty means process default
	Timeout time.Duration // zero means DefaultTimeout
}

// Result is the outcome of a Run call. Blocked implies Succeeded is false
// and ExitCode is BlockedExitCode.
type Result struct {
	Succeeded bool
	Stdout    string
	Stderr    string
	ExitCode  int
	Blocked   bool
}

// Spawner is the process-spawn primitive. Substituted with a double in
// tests to prove blocked commands never reach the operating system.
type Spawner interface {
	Spawn(ctx context.Context, name string, args []string, dir string) (stdout, stderr string, exitCode int, err error)
}

// osSpawner spawns via os/exec with no shell interpretation layer.
type osSpawner struct{}

func (osSpawner) Spawn(ctx context.Context, name string, args []string, dir string) (string, string, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	// No inherited terminal: the child cannot prompt or hang on input.
	cmd.Stdin = nil
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
			err = nil
		}
	}
	return stdout.String(), stderr.String(), exitCode, err
}

// Executor mediates all external process invocation through a classifier.
type Executor struct {
	classifier *gate.Classifier
	spawn      Spawner
	timeout    time.Duration
}

// New returns an Executor using the real process-spawn primitive.
func New(classifier *gate.Classifier) *Executor {
	return NewWithSpawner(classifier, osSpawner{})
}

// NewWithSpawner returns an Executor with an injected spawn primitive.
func NewWithSpawner(classifier *gate.Classifier, spawn Spawner) *Executor {
	return &Executor{
		classifier: classifier,
		spawn:      spawn,
		timeout:    DefaultTimeout,
	}
}

// Run classifies the command and either executes it or fabricates a blocked
// result. Blocked commands are never retried and must be treated by callers
// identically to a missing tool: one degraded check, never a fatal error.
func (e *Executor) Run(ctx context.Context, req Request) Result {
	start := time.Now()

	verdict := e.classifier.Classify(req.Command)
	if !verdict.Safe {
		// Debug channel only; attempted strings stay out of normal output.
		logger.Debug("command blocked",
			"command", req.Command,
			"reason", verdict.Reason,
			"rule", verdict.Rule)
		audit.Record(audit.Entry{
			Command:    req.Command,
			Safe:       false,
			Blocked:    true,
			Reason:     verdict.Reason,
			Rule:       verdict.Rule,
			ExitCode:   BlockedExitCode,
			DurationMs: durationMs(start),
			Cwd:        req.Dir,
		})
		return Result{
			Succeeded: false,
			Blocked:   true,
			ExitCode:  BlockedExitCode,
			Stderr:    "blocked: " + verdict.Reason,
		}
	}

	argv, err := gate.Argv(req.Command)
	if err != nil || len(argv) == 0 {
		// The classifier approved it, so this only happens if the two parses
		// disagree. Treat as a spawn failure.
		return Result{
			Succeeded: false,
			ExitCode:  SpawnErrorExitCode,
			Stderr:    "cannot split command into arguments",
		}
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = e.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stdout, stderr, exitCode, err := e.spawn.Spawn(ctx, argv[0], argv[1:], req.Dir)

	result := Result{
		Stdout:   strings.TrimSpace(stdout),
		Stderr:   strings.TrimSpace(stderr),
		ExitCode: exitCode,
	}
	switch {
	case ctx.Err() == context.DeadlineExceeded:
		// Timeouts are ordinary failures, not distinguished beyond the code.
		result.ExitCode = TimeoutExitCode
		logger.Debug("command timed out", "command", req.Command, "timeout", timeout)
	case err != nil:
		result.ExitCode = SpawnErrorExitCode
		result.Stderr = err.Error()
		logger.Debug("spawn failed", "command", req.Command, "error", err)
	default:
		result.Succeeded = exitCode == 0
	}

	audit.Record(audit.Entry{
		Command:    req.Command,
		Safe:       true,
		Reason:     verdict.Reason,
		Rule:       verdict.Rule,
		ExitCode:   result.ExitCode,
		DurationMs: durationMs(start),
		Cwd:        req.Dir,
	})
	return result
}

func durationMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
