package detect

import (
	"context"

	"github.com/envdoctor/envdoctor/internal/execguard"
)

type pythonDetector struct{}

func (pythonDetector) Name() string { return "Python" }

func (pythonDetector) Detect(dir string) bool {
	return anyFileExists(dir, "requirements.txt", "pyproject.toml", "setup.py", "Pipfile")
}

func (pythonDetector) Analyze(dir string) map[string]string {
	facts := map[string]string{}
	switch {
	case fileExists(dir, "pyproject.toml"):
		facts["config"] = "pyproject.toml"
	case fileExists(dir, "setup.py"):
		facts["config"] = "setup.py"
	case fileExists(dir, "Pipfile"):
		facts["config"] = "Pipfile"
	case fileExists(dir, "requirements.txt"):
		facts["config"] = "requirements.txt"
	}
	if dirExists(dir, ".venv") {
		facts["virtualenv"] = ".venv"
	} else if dirExists(dir, "venv") {
		facts["virtualenv"] = "venv"
	}
	return facts
}

func (pythonDetector) Checks() []Check {
	return []Check{
		toolCheck("python3", "--version", "install Python 3 from https://python.org"),
		toolCheck("pip3", "--version", "install pip (python3 -m ensurepip --upgrade)"),
		venvCheck(),
	}
}

func venvCheck() Check {
	return Check{
		Name: "virtual environment",
		Run: func(ctx context.Context, exec *execguard.Executor, dir string) CheckResult {
			if dirExists(dir, ".venv") || dirExists(dir, "venv") {
				return CheckResult{Status: StatusPass, Message: "virtual environment present"}
			}
			return CheckResult{
				Status:  StatusWarn,
				Message: "no virtual environment found",
				Fix:     "python3 -m venv .venv",
			}
		},
	}
}
