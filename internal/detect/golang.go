package detect

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/envdoctor/envdoctor/internal/execguard"
)

type goDetector struct{}

func (goDetector) Name() string { return "Go" }

func (goDetector) Detect(dir string) bool {
	return fileExists(dir, "go.mod")
}

func (goDetector) Analyze(dir string) map[string]string {
	facts := map[string]string{}
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return facts
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if after, ok := strings.CutPrefix(line, "module "); ok {
			facts["module"] = strings.TrimSpace(after)
		}
		if after, ok := strings.CutPrefix(line, "go "); ok && facts["goVersion"] == "" {
			facts["goVersion"] = strings.TrimSpace(after)
		}
	}
	if fileExists(dir, "go.sum") {
		facts["checksums"] = "go.sum"
	}
	return facts
}

func (goDetector) Checks() []Check {
	return []Check{
		toolCheck("go", "version", "install Go from https://go.dev/dl"),
		goSumCheck(),
	}
}

func goSumCheck() Check {
	return Check{
		Name: "module checksums",
		Run: func(ctx context.Context, exec *execguard.Executor, dir string) CheckResult {
			data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
			if err != nil {
				return CheckResult{Status: StatusSkip, Message: "go.mod unreadable"}
			}
			if !strings.Contains(string(data), "require") {
				return CheckResult{Status: StatusPass, Message: "no dependencies declared"}
			}
			if fileExists(dir, "go.sum") {
				return CheckResult{Status: StatusPass, Message: "go.sum present"}
			}
			return CheckResult{
				Status:  StatusWarn,
				Message: "dependencies declared but go.sum missing",
				Fix:     "go mod tidy",
			}
		},
	}
}
