// Package rules provides the static allow/deny rule tables that back the
// command classifier, along with builders for constructing the anchored
// regular expressions the tables are made of.
package rules

import (
	"regexp"
	"strings"
)

// NameClass matches a single bare tool or ref name. Allowlist patterns never
// contain a more permissive capture than this.
const NameClass = `[A-Za-z0-9][A-Za-z0-9_.+-]*`

// Pattern holds a compiled regex and its description.
type Pattern struct {
	Regex   *regexp.Regexp
	Name    string
	Type    string // simple, version, probe, regex
	Pattern string // original pattern string
}

// BuildSimplePattern creates a prefix regex for a command word.
// "rm" becomes "^rm\b". Used for deny entries, which match on the leading
// command regardless of arguments.
func BuildSimplePattern(cmd string) string {
	return `^` + regexp.QuoteMeta(cmd) + `\b`
}

// BuildExactPattern creates a regex matching a command string exactly,
// with no room for extra arguments.
func BuildExactPattern(cmd string) string {
	return `^` + regexp.QuoteMeta(cmd) + `$`
}

// BuildVersionPattern creates a regex for version queries of the given tools.
// tools=["git","go"], flags=["--version","version"] becomes
// "^(git|go) (--version|version)$"
func BuildVersionPattern(tools, flags []string) string {
	return `^(` + joinQuoted(tools) + `) (` + joinQuoted(flags) + `)$`
}

// BuildProbePattern creates a regex for a tool-existence probe.
// "which" becomes "^which <name>$" where <name> is NameClass.
func BuildProbePattern(probe string) string {
	parts := strings.Fields(probe)
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return `^` + strings.Join(parts, ` `) + ` ` + NameClass + `$`
}

func joinQuoted(items []string) string {
	escaped := make([]string, len(items))
	for i, s := range items {
		escaped[i] = regexp.QuoteMeta(s)
	}
	return strings.Join(escaped, "|")
}

// Compile compiles a pattern string into a Pattern with the given name.
// Returns an error if the pattern is invalid.
func Compile(pattern, name string) (Pattern, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{Regex: re, Name: name, Pattern: pattern}, nil
}

// MustCompile is like Compile but panics if the pattern is invalid.
func MustCompile(pattern, name string) Pattern {
	p, err := Compile(pattern, name)
	if err != nil {
		panic(err)
	}
	return p
}
