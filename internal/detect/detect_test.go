package detect

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/envdoctor/envdoctor/internal/execguard"
	"github.com/envdoctor/envdoctor/internal/gate"
	"github.com/envdoctor/envdoctor/internal/rules"
)

// stubSpawner answers known commands and reports everything else as a
// missing binary.
type stubSpawner struct {
	responses map[string]stubResponse
	calls     []string
}

type stubResponse struct {
	stdout string
	code   int
}

func (s *stubSpawner) Spawn(ctx context.Context, name string, args []string, dir string) (string, string, int, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	s.calls = append(s.calls, key)
	if r, ok := s.responses[key]; ok {
		return r.stdout, "", r.code, nil
	}
	return "", "", 0, errors.New(`exec: "` + name + `": executable file not found in $PATH`)
}

func stubExecutor(t *testing.T, responses map[string]stubResponse) (*execguard.Executor, *stubSpawner) {
	t.Helper()
	rs, err := rules.Load(rules.DefaultTOML())
	if err != nil {
		t.Fatal(err)
	}
	spawn := &stubSpawner{responses: responses}
	return execguard.NewWithSpawner(gate.New(rs), spawn), spawn
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDetection(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		detected []string
	}{
		{
			name:     "node project",
			files:    map[string]string{"package.json": `{"name":"app"}`},
			detected: []string{"Node.js"},
		},
		{
			name:     "python project",
			files:    map[string]string{"requirements.txt": "requests\n"},
			detected: []string{"Python"},
		},
		{
			name:     "go project",
			files:    map[string]string{"go.mod": "module example.com/app\n\ngo 1.22\n"},
			detected: []string{"Go"},
		},
		{
			name:     "rust project",
			files:    map[string]string{"Cargo.toml": "[package]\nname = \"app\"\n"},
			detected: []string{"Rust"},
		},
		{
			name:     "maven project",
			files:    map[string]string{"pom.xml": "<project/>"},
			detected: []string{"Java"},
		},
		{
			name:     "dotnet project",
			files:    map[string]string{"app.csproj": "<Project/>"},
			detected: []string{".NET"},
		},
		{
			name:     "php project",
			files:    map[string]string{"composer.json": "{}"},
			detected: []string{"PHP"},
		},
		{
			name:     "cmake project",
			files:    map[string]string{"CMakeLists.txt": "project(app)\n"},
			detected: []string{"C/C++"},
		},
		{
			name:     "flutter project",
			files:    map[string]string{"pubspec.yaml": "name: app\n"},
			detected: []string{"Flutter"},
		},
		{
			name:     "docker project",
			files:    map[string]string{"Dockerfile": "FROM scratch\n"},
			detected: []string{"Docker"},
		},
		{
			name: "mixed node and docker",
			files: map[string]string{
				"package.json": `{"name":"app"}`,
				"Dockerfile":   "FROM node:20\n",
			},
			detected: []string{"Node.js", "Docker"},
		},
		{
			name:     "empty directory",
			files:    map[string]string{},
			detected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, dir, name, content)
			}

			var got []string
			for _, d := range All() {
				if d.Detect(dir) {
					got = append(got, d.Name())
				}
			}

			if len(got) != len(tt.detected) {
				t.Fatalf("detected %v, want %v", got, tt.detected)
			}
			for i := range got {
				if got[i] != tt.detected[i] {
					t.Errorf("detected %v, want %v", got, tt.detected)
				}
			}
		})
	}
}

func TestNodeAnalyze(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"name":"myapp","version":"1.2.3"}`)
	writeFile(t, dir, "package-lock.json", "{}")

	facts := nodeDetector{}.Analyze(dir)

	if facts["name"] != "myapp" {
		t.Errorf("name = %q", facts["name"])
	}
	if facts["version"] != "1.2.3" {
		t.Errorf("version = %q", facts["version"])
	}
	if facts["lockfile"] != "package-lock.json" {
		t.Errorf("lockfile = %q", facts["lockfile"])
	}
}

func TestNodeDepsCheckMissing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"name":"app"}`)

	exec, _ := stubExecutor(t, nil)

	var deps *Check
	for _, c := range (nodeDetector{}).Checks() {
		if c.Name == "dependencies installed" {
			check := c
			deps = &check
		}
	}
	if deps == nil {
		t.Fatal("node detector has no dependencies check")
	}

	result := deps.Run(context.Background(), exec, dir)
	if result.Status != StatusFail {
		t.Errorf("status = %s, want fail", result.Status)
	}
	if result.Fix != "npm install" {
		t.Errorf("fix = %q, want npm install", result.Fix)
	}
}

func TestGoAnalyze(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/app\n\ngo 1.22.1\n")

	facts := goDetector{}.Analyze(dir)

	if facts["module"] != "example.com/app" {
		t.Errorf("module = %q", facts["module"])
	}
	if facts["goVersion"] != "1.22.1" {
		t.Errorf("goVersion = %q", facts["goVersion"])
	}
}

func TestFlutterAnalyze(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pubspec.yaml", "name: myflutter\nversion: 0.1.0\nenvironment:\n  sdk: '>=3.0.0 <4.0.0'\n")

	facts := flutterDetector{}.Analyze(dir)

	if facts["name"] != "myflutter" {
		t.Errorf("name = %q", facts["name"])
	}
	if facts["sdk"] != ">=3.0.0 <4.0.0" {
		t.Errorf("sdk = %q", facts["sdk"])
	}
}

func TestFindDependencyGap(t *testing.T) {
	t.Run("node without node_modules", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "package.json", `{"name":"app"}`)

		gap, found := FindDependencyGap(dir)
		if !found {
			t.Fatal("no gap reported")
		}
		if gap.Ecosystem != "Node.js" || gap.Marker != "node_modules" || gap.Fix != "npm install" {
			t.Errorf("gap = %+v", gap)
		}
	})

	t.Run("node with node_modules", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "package.json", `{"name":"app"}`)
		if err := os.Mkdir(filepath.Join(dir, "node_modules"), 0755); err != nil {
			t.Fatal(err)
		}

		if gap, found := FindDependencyGap(dir); found {
			t.Errorf("unexpected gap %+v with dependencies installed", gap)
		}
	})

	t.Run("php without vendor", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "composer.json", "{}")

		gap, found := FindDependencyGap(dir)
		if !found || gap.Fix != "composer install" {
			t.Errorf("gap = %+v, found = %v", gap, found)
		}
	})

	t.Run("no project", func(t *testing.T) {
		if gap, found := FindDependencyGap(t.TempDir()); found {
			t.Errorf("unexpected gap %+v in empty dir", gap)
		}
	})
}

func TestToolCheckMissingTool(t *testing.T) {
	exec, _ := stubExecutor(t, nil)

	check := toolCheck("node", "--version", "install Node.js from https://nodejs.org")
	result := check.Run(context.Background(), exec, t.TempDir())

	if result.Status != StatusFail {
		t.Errorf("status = %s, want fail", result.Status)
	}
	if !strings.Contains(result.Fix, "nodejs.org") {
		t.Errorf("fix = %q", result.Fix)
	}
}

func TestToolCheckPresent(t *testing.T) {
	exec, _ := stubExecutor(t, map[string]stubResponse{
		"which node":     {stdout: "/usr/bin/node\n"},
		"node --version": {stdout: "v20.11.0\n"},
	})

	check := toolCheck("node", "--version", "install Node.js")
	result := check.Run(context.Background(), exec, t.TempDir())

	if result.Status != StatusPass {
		t.Errorf("status = %s, want pass (%s)", result.Status, result.Message)
	}
	if result.Message != "v20.11.0" {
		t.Errorf("message = %q", result.Message)
	}
}
