// Package scan orchestrates the setup flow: environment tool checks,
// project-type detection, and per-project readiness checks. Checks run
// sequentially, one blocking external command at a time, each bounded by
// the executor's timeout. A failing or blocked check degrades to a finding;
// nothing here has a fatal error path.
package scan

import (
	"context"

	"github.com/envdoctor/envdoctor/internal/detect"
	"github.com/envdoctor/envdoctor/internal/execguard"
	"github.com/envdoctor/envdoctor/internal/logger"
)

// environmentTools are probed on every scan regardless of project type.
var environmentTools = []struct {
	name string
	flag string
}{
	{"git", "--version"},
	{"node", "--version"},
	{"python3", "--version"},
	{"go", "version"},
	{"java", "-version"},
	{"docker", "--version"},
}

// ToolStatus is the outcome of one environment tool probe.
type ToolStatus struct {
	Name    string
	Present bool
	Version string
}

// NamedResult pairs a check name with its result.
type NamedResult struct {
	Name   string
	Result detect.CheckResult
}

// ProjectReport holds one detected project type with its facts and check
// results.
type ProjectReport struct {
	Type    string
	Facts   map[string]string
	Results []NamedResult
}

// Report is the full outcome of a scan.
type Report struct {
	Dir      string
	Tools    []ToolStatus
	Projects []ProjectReport
}

// Findings counts failed and warned checks across the report.
func (r *Report) Findings() int {
	n := 0
	for _, p := range r.Projects {
		for _, res := range p.Results {
			if res.Result.Status == detect.StatusFail || res.Result.Status == detect.StatusWarn {
				n++
			}
		}
	}
	return n
}

// Options configures a scan.
type Options struct {
	Dir       string
	Exec      *execguard.Executor
	Detectors []detect.Detector // nil means detect.All()
}

// Run performs the full diagnostic scan. It always returns a report; every
// per-check failure mode (blocked, missing tool, timeout, detector panic)
// is converted into a per-check result or a skipped detector.
func Run(ctx context.Context, opts Options) Report {
	detectors := opts.Detectors
	if detectors == nil {
		detectors = detect.All()
	}

	report := Report{Dir: opts.Dir}

	for _, tool := range environmentTools {
		status := ToolStatus{Name: tool.name}
		if opts.Exec.ToolExists(ctx, tool.name) {
			status.Present = true
			if version, ok := opts.Exec.ToolVersion(ctx, tool.name, tool.flag); ok {
				status.Version = firstLine(version)
			}
		}
		report.Tools = append(report.Tools, status)
	}

	for _, d := range detectors {
		project, ok := runDetector(ctx, d, opts)
		if ok {
			report.Projects = append(report.Projects, project)
		}
	}

	return report
}

// runDetector runs a single detector with panic recovery; a throwing
// detector is skipped and must never abort the overall scan.
func runDetector(ctx context.Context, d detect.Detector, opts Options) (project ProjectReport, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("detector panicked, skipping", "detector", d.Name(), "panic", r)
			ok = false
		}
	}()

	if !d.Detect(opts.Dir) {
		return ProjectReport{}, false
	}

	project = ProjectReport{
		Type:  d.Name(),
		Facts: d.Analyze(opts.Dir),
	}
	for _, check := range d.Checks() {
		project.Results = append(project.Results, NamedResult{
			Name:   check.Name,
			Result: runCheck(ctx, check, opts),
		})
	}
	return project, true
}

// runCheck runs one check with panic recovery.
func runCheck(ctx context.Context, check detect.Check, opts Options) (result detect.CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("check panicked", "check", check.Name, "panic", r)
			result = detect.CheckResult{Status: detect.StatusSkip, Message: "check could not run"}
		}
	}()
	return check.Run(ctx, opts.Exec, opts.Dir)
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\r' {
			return s[:i]
		}
	}
	return s
}
