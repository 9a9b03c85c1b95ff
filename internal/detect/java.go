package detect

import (
	"context"

	"github.com/envdoctor/envdoctor/internal/execguard"
)

type javaDetector struct{}

func (javaDetector) Name() string { return "Java" }

func (javaDetector) Detect(dir string) bool {
	return anyFileExists(dir, "pom.xml", "build.gradle", "build.gradle.kts")
}

func (javaDetector) Analyze(dir string) map[string]string {
	facts := map[string]string{}
	switch {
	case fileExists(dir, "pom.xml"):
		facts["buildTool"] = "maven"
	case fileExists(dir, "build.gradle"), fileExists(dir, "build.gradle.kts"):
		facts["buildTool"] = "gradle"
	}
	if fileExists(dir, "gradlew") {
		facts["wrapper"] = "gradlew"
	}
	if fileExists(dir, "mvnw") {
		facts["wrapper"] = "mvnw"
	}
	return facts
}

func (javaDetector) Checks() []Check {
	return []Check{
		toolCheck("java", "-version", "install a JDK (e.g. https://adoptium.net)"),
		buildToolCheck(),
	}
}

// buildToolCheck verifies whichever build tool the marker files call for.
func buildToolCheck() Check {
	return Check{
		Name: "build tool",
		Run: func(ctx context.Context, exec *execguard.Executor, dir string) CheckResult {
			switch {
			case fileExists(dir, "pom.xml"):
				if fileExists(dir, "mvnw") || exec.ToolExists(ctx, "mvn") {
					return CheckResult{Status: StatusPass, Message: "maven available"}
				}
				return CheckResult{
					Status:  StatusFail,
					Message: "pom.xml present but mvn not found",
					Fix:     "install Maven from https://maven.apache.org",
				}
			case fileExists(dir, "build.gradle"), fileExists(dir, "build.gradle.kts"):
				if fileExists(dir, "gradlew") || exec.ToolExists(ctx, "gradle") {
					return CheckResult{Status: StatusPass, Message: "gradle available"}
				}
				return CheckResult{
					Status:  StatusFail,
					Message: "gradle build file present but gradle not found",
					Fix:     "install Gradle from https://gradle.org",
				}
			}
			return CheckResult{Status: StatusSkip, Message: "no recognized build file"}
		},
	}
}
