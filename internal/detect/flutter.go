package detect

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type flutterDetector struct{}

func (flutterDetector) Name() string { return "Flutter" }

func (flutterDetector) Detect(dir string) bool {
	return fileExists(dir, "pubspec.yaml")
}

func (flutterDetector) Analyze(dir string) map[string]string {
	facts := map[string]string{}
	data, err := os.ReadFile(filepath.Join(dir, "pubspec.yaml"))
	if err != nil {
		return facts
	}
	var pubspec struct {
		Name        string `yaml:"name"`
		Version     string `yaml:"version"`
		Environment struct {
			SDK     string `yaml:"sdk"`
			Flutter string `yaml:"flutter"`
		} `yaml:"environment"`
	}
	if err := yaml.Unmarshal(data, &pubspec); err != nil {
		return facts
	}
	if pubspec.Name != "" {
		facts["name"] = pubspec.Name
	}
	if pubspec.Version != "" {
		facts["version"] = pubspec.Version
	}
	if pubspec.Environment.SDK != "" {
		facts["sdk"] = pubspec.Environment.SDK
	}
	if fileExists(dir, "pubspec.lock") {
		facts["lockfile"] = "pubspec.lock"
	}
	return facts
}

func (flutterDetector) Checks() []Check {
	return []Check{
		toolCheck("flutter", "--version", "install Flutter from https://flutter.dev"),
		depsCheck("packages fetched", ".dart_tool", "flutter pub get"),
	}
}
