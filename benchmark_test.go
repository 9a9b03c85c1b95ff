package main

import (
	"testing"

	"github.com/envdoctor/envdoctor/internal/gate"
	"github.com/envdoctor/envdoctor/internal/rules"
)

// BenchmarkClassify benchmarks command classification
func BenchmarkClassify(b *testing.B) {
	rs, err := rules.Load(rules.DefaultTOML())
	if err != nil {
		b.Fatal(err)
	}
	classifier := gate.New(rs)

	benchmarks := []struct {
		name string
		cmd  string
	}{
		{"allowed_version", "git --version"},
		{"allowed_probe", "which node"},
		{"allowed_regex", "git status --porcelain=v1 --branch"},
		{"denied_simple", "rm -rf /"},
		{"denied_regex", "npm install leftpad"},
		{"denied_chain", "git status && rm -rf /"},
		{"default_deny", "unknown-command --flag"},
		{"stderr_merge", "java -version 2>&1"},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = classifier.Classify(bm.cmd)
			}
		})
	}
}

// BenchmarkArgv benchmarks argv splitting
func BenchmarkArgv(b *testing.B) {
	benchmarks := []struct {
		name string
		cmd  string
	}{
		{"simple", "git status"},
		{"quoted", `git log --format="%h %s"`},
		{"stderr_merge", "java -version 2>&1"},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = gate.Argv(bm.cmd)
			}
		})
	}
}

// BenchmarkLoadRules benchmarks ruleset parsing and compilation
func BenchmarkLoadRules(b *testing.B) {
	data := rules.DefaultTOML()
	for i := 0; i < b.N; i++ {
		if _, err := rules.Load(data); err != nil {
			b.Fatal(err)
		}
	}
}
