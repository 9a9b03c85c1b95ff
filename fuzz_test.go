package main

import (
	"strings"
	"testing"

	"github.com/envdoctor/envdoctor/internal/gate"
	"github.com/envdoctor/envdoctor/internal/rules"
)

func testClassifier(tb testing.TB) *gate.Classifier {
	rs, err := rules.Load(rules.DefaultTOML())
	if err != nil {
		tb.Fatal(err)
	}
	return gate.New(rs)
}

// FuzzClassify tests the command classifier for crashes
func FuzzClassify(f *testing.F) {
	// Add seed corpus
	f.Add("git status")
	f.Add("git --version 2>&1")
	f.Add("which node")
	f.Add("rm -rf /")
	f.Add("sudo anything")
	f.Add("git status && rm -rf /")
	f.Add("echo $(whoami)")
	f.Add("echo `whoami`")
	f.Add("VAR=value cmd")
	f.Add("")
	f.Add("   ")
	f.Add(`git "unterminated`)
	f.Add("git log --format=%H -1")
	f.Add("for i in 1 2 3; do echo $i; done")

	classifier := testClassifier(f)

	f.Fuzz(func(t *testing.T, cmd string) {
		verdict := classifier.Classify(cmd)
		if !verdict.Safe {
			return
		}
		// No allow rule admits substitution syntax, quoted or not.
		for _, needle := range []string{"$(", "`", "${"} {
			if strings.Contains(cmd, needle) {
				t.Errorf("Classify(%q) = safe, contains %q", cmd, needle)
			}
		}
		// The executor splits every approved command into argv; a safe
		// verdict on an unsplittable command would strand it.
		argv, err := gate.Argv(cmd)
		if err != nil || len(argv) == 0 {
			t.Errorf("Classify(%q) = safe but Argv failed: %v", cmd, err)
		}
	})
}

// FuzzArgv tests command splitting for crashes
func FuzzArgv(f *testing.F) {
	// Add seed corpus
	f.Add("git status")
	f.Add(`git log --format="%h %s"`)
	f.Add("java -version 2>&1")
	f.Add("a | b")
	f.Add("a && b")
	f.Add("echo ${PATH}")
	f.Add("")
	f.Add("\\")

	f.Fuzz(func(t *testing.T, cmd string) {
		argv, err := gate.Argv(cmd)
		if err == nil && len(argv) == 0 {
			t.Errorf("Argv(%q) returned no error and no argv", cmd)
		}
		for _, arg := range argv {
			if arg == "2>&1" {
				t.Errorf("Argv(%q) leaked redirect token", cmd)
			}
		}
	})
}

// FuzzLoadRules tests ruleset parsing for crashes on arbitrary TOML
func FuzzLoadRules(f *testing.F) {
	// Add seed corpus
	f.Add(string(rules.DefaultTOML()))
	f.Add("")
	f.Add("[allow]\nversion = []\n")
	f.Add("[deny]\nsimple = [\"rm\"]\n")
	f.Add("not toml at all {{{")
	f.Add("[deny]\nregex = [\"[invalid\"]\n")

	f.Fuzz(func(t *testing.T, data string) {
		// Errors are fine; panics are not.
		_, _ = rules.Load([]byte(data))
	})
}
