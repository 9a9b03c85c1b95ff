package detect

import (
	"context"

	"github.com/envdoctor/envdoctor/internal/execguard"
)

type cppDetector struct{}

func (cppDetector) Name() string { return "C/C++" }

func (cppDetector) Detect(dir string) bool {
	return anyFileExists(dir, "CMakeLists.txt", "Makefile", "configure", "meson.build")
}

func (cppDetector) Analyze(dir string) map[string]string {
	facts := map[string]string{}
	switch {
	case fileExists(dir, "CMakeLists.txt"):
		facts["buildSystem"] = "cmake"
	case fileExists(dir, "meson.build"):
		facts["buildSystem"] = "meson"
	case fileExists(dir, "configure"):
		facts["buildSystem"] = "autotools"
	case fileExists(dir, "Makefile"):
		facts["buildSystem"] = "make"
	}
	return facts
}

func (cppDetector) Checks() []Check {
	return []Check{
		compilerCheck(),
		toolCheck("make", "--version", "install build tools (e.g. build-essential or Xcode CLT)"),
		cmakeCheck(),
	}
}

func compilerCheck() Check {
	return Check{
		Name: "C/C++ compiler",
		Run: func(ctx context.Context, exec *execguard.Executor, dir string) CheckResult {
			for _, cc := range []string{"gcc", "clang", "g++"} {
				if exec.ToolExists(ctx, cc) {
					if version, ok := exec.ToolVersion(ctx, cc, "--version"); ok {
						return CheckResult{Status: StatusPass, Message: firstLine(version)}
					}
					return CheckResult{Status: StatusPass, Message: cc + " found"}
				}
			}
			return CheckResult{
				Status:  StatusFail,
				Message: "no C/C++ compiler found",
				Fix:     "install build tools (e.g. build-essential or Xcode CLT)",
			}
		},
	}
}

func cmakeCheck() Check {
	return Check{
		Name: "cmake",
		Run: func(ctx context.Context, exec *execguard.Executor, dir string) CheckResult {
			if !fileExists(dir, "CMakeLists.txt") {
				return CheckResult{Status: StatusSkip, Message: "not a cmake project"}
			}
			if exec.ToolExists(ctx, "cmake") {
				return CheckResult{Status: StatusPass, Message: "cmake available"}
			}
			return CheckResult{
				Status:  StatusFail,
				Message: "CMakeLists.txt present but cmake not found",
				Fix:     "install CMake from https://cmake.org",
			}
		},
	}
}
