package detect

import (
	"context"

	"github.com/envdoctor/envdoctor/internal/execguard"
)

type rustDetector struct{}

func (rustDetector) Name() string { return "Rust" }

func (rustDetector) Detect(dir string) bool {
	return fileExists(dir, "Cargo.toml")
}

func (rustDetector) Analyze(dir string) map[string]string {
	facts := map[string]string{"config": "Cargo.toml"}
	if fileExists(dir, "Cargo.lock") {
		facts["lockfile"] = "Cargo.lock"
	}
	if dirExists(dir, "target") {
		facts["buildDir"] = "target"
	}
	return facts
}

func (rustDetector) Checks() []Check {
	return []Check{
		toolCheck("cargo", "--version", "install Rust via https://rustup.rs"),
		toolCheck("rustc", "--version", "install Rust via https://rustup.rs"),
		cargoLockCheck(),
	}
}

func cargoLockCheck() Check {
	return Check{
		Name: "lockfile present",
		Run: func(ctx context.Context, exec *execguard.Executor, dir string) CheckResult {
			if fileExists(dir, "Cargo.lock") {
				return CheckResult{Status: StatusPass, Message: "Cargo.lock present"}
			}
			return CheckResult{
				Status:  StatusWarn,
				Message: "Cargo.lock missing; builds will not be reproducible",
				Fix:     "cargo generate-lockfile",
			}
		},
	}
}
