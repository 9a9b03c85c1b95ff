// envdoctor - read-only developer environment diagnostics
//
// envdoctor detects the project type in a directory, checks that the
// required toolchain is present, and explains common git error states with
// suggested (never executed) fix commands. Every external command it runs
// is vetted by an allowlist-based safety gate first.
//
// Usage:
//
//	envdoctor setup            # tool checks + project readiness
//	envdoctor explain          # plain-language git state explanation
//	envdoctor rules            # show the compiled allow/deny tables
package main

import (
	"os"

	"github.com/envdoctor/envdoctor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
