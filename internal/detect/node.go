package detect

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/envdoctor/envdoctor/internal/execguard"
)

type nodeDetector struct{}

func (nodeDetector) Name() string { return "Node.js" }

func (nodeDetector) Detect(dir string) bool {
	return fileExists(dir, "package.json")
}

func (nodeDetector) Analyze(dir string) map[string]string {
	facts := map[string]string{}

	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return facts
	}
	var pkg struct {
		Name           string            `json:"name"`
		Version        string            `json:"version"`
		PackageManager string            `json:"packageManager"`
		Scripts        map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return facts
	}
	if pkg.Name != "" {
		facts["name"] = pkg.Name
	}
	if pkg.Version != "" {
		facts["version"] = pkg.Version
	}
	if pkg.PackageManager != "" {
		facts["packageManager"] = pkg.PackageManager
	}
	switch {
	case fileExists(dir, "package-lock.json"):
		facts["lockfile"] = "package-lock.json"
	case fileExists(dir, "yarn.lock"):
		facts["lockfile"] = "yarn.lock"
	case fileExists(dir, "pnpm-lock.yaml"):
		facts["lockfile"] = "pnpm-lock.yaml"
	}
	return facts
}

func (nodeDetector) Checks() []Check {
	return []Check{
		toolCheck("node", "--version", "install Node.js from https://nodejs.org"),
		toolCheck("npm", "--version", "install Node.js from https://nodejs.org (npm ships with it)"),
		depsCheck("dependencies installed", "node_modules", "npm install"),
		lockfileCheck(),
	}
}

func lockfileCheck() Check {
	return Check{
		Name: "lockfile present",
		Run: func(ctx context.Context, exec *execguard.Executor, dir string) CheckResult {
			if anyFileExists(dir, "package-lock.json", "yarn.lock", "pnpm-lock.yaml") {
				return CheckResult{Status: StatusPass, Message: "lockfile found"}
			}
			return CheckResult{
				Status:  StatusWarn,
				Message: "no lockfile; installs will not be reproducible",
				Fix:     "npm install --package-lock-only",
			}
		},
	}
}
