package report

import (
	"strings"
	"testing"

	"github.com/envdoctor/envdoctor/internal/detect"
	"github.com/envdoctor/envdoctor/internal/gitexplain"
	"github.com/envdoctor/envdoctor/internal/scan"
)

func TestRenderScan(t *testing.T) {
	rep := scan.Report{
		Dir: "/work/app",
		Tools: []scan.ToolStatus{
			{Name: "git", Present: true, Version: "git version 2.43.0"},
			{Name: "docker", Present: false},
		},
		Projects: []scan.ProjectReport{
			{
				Type:  "Node.js",
				Facts: map[string]string{"name": "app", "version": "0.1.0"},
				Results: []scan.NamedResult{
					{Name: "node toolchain", Result: detect.CheckResult{Status: detect.StatusPass, Message: "v20.11.0"}},
					{Name: "dependencies installed", Result: detect.CheckResult{
						Status:  detect.StatusFail,
						Message: "dependencies not installed (node_modules missing)",
						Fix:     "npm install",
					}},
				},
			},
		},
	}

	var buf strings.Builder
	RenderScan(&buf, rep)
	out := buf.String()

	for _, want := range []string{
		"Environment",
		"git version 2.43.0",
		"not found",
		"Node.js project",
		"name: app",
		"v20.11.0",
		"dependencies not installed",
		"fix: npm install",
		"never executed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderScanNoProjects(t *testing.T) {
	var buf strings.Builder
	RenderScan(&buf, scan.Report{Dir: "/empty"})

	if !strings.Contains(buf.String(), "No known project type detected") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestRenderScanAllHealthy(t *testing.T) {
	rep := scan.Report{
		Projects: []scan.ProjectReport{{
			Type: "Go",
			Results: []scan.NamedResult{
				{Name: "go toolchain", Result: detect.CheckResult{Status: detect.StatusPass, Message: "go1.22.1"}},
			},
		}},
	}

	var buf strings.Builder
	RenderScan(&buf, rep)

	if !strings.Contains(buf.String(), "Everything looks ready.") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestRenderExplanation(t *testing.T) {
	ex := &gitexplain.Explanation{
		Condition: gitexplain.Condition{
			ID:          "behind-upstream",
			Title:       "Branch is behind its upstream",
			Explanation: "The remote branch has commits your local branch does not.",
			Reason:      "Someone pushed to the remote since you last pulled.",
			Fixes:       []string{"git pull"},
			Warning:     "Pulling with local changes may conflict.",
		},
		Details: "main...origin/main [behind 3]",
	}

	var buf strings.Builder
	RenderExplanation(&buf, ex)
	out := buf.String()

	for _, want := range []string{
		"Branch is behind its upstream",
		"Why: Someone pushed",
		"behind 3",
		"Suggested fixes (not executed):",
		"  $ git pull",
		"Warning:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderHealthy(t *testing.T) {
	var buf strings.Builder
	RenderHealthy(&buf)

	if !strings.Contains(buf.String(), "No known error condition detected.") {
		t.Errorf("output = %q", buf.String())
	}
}
