// Package cmd implements the CLI commands for envdoctor.
package cmd

import (
	"os"

	"github.com/envdoctor/envdoctor/internal/audit"
	"github.com/envdoctor/envdoctor/internal/constants"
	"github.com/envdoctor/envdoctor/internal/execguard"
	"github.com/envdoctor/envdoctor/internal/gate"
	"github.com/envdoctor/envdoctor/internal/logger"
	"github.com/envdoctor/envdoctor/internal/rules"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose  bool
	debugLog bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "envdoctor",
	Short: "Read-only developer environment diagnostics",
	Long: `envdoctor detects what kind of project is in a directory, checks that the
required toolchain is present, and explains common git error states in plain
language with suggested fix commands that are never executed.

Every external command envdoctor runs passes through a safety gate: only an
allowlist of read-only queries (version checks, existence probes, git
introspection) is ever executed, and everything else is refused by default.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Initialize before running any command
	cobra.OnInitialize(initApp)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (debug logging)")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug-log", false, "Write gate decisions to the audit log")
}

// initApp initializes the application (logger, rules, audit)
func initApp() {
	logger.Init(logger.Options{Verbose: verbose})

	rules.Init()

	// The audit log stays off unless explicitly requested, so attempted
	// command strings never show up in normal use.
	enableAudit := debugLog || os.Getenv(constants.EnvDebug) != ""
	audit.Init("", enableAudit)
}

// newExecutor builds the guarded executor over the loaded ruleset. This is
// the only place an executor is constructed outside of tests.
func newExecutor() *execguard.Executor {
	return execguard.New(gate.New(rules.Get()))
}

// IsVerbose returns whether verbose mode is enabled
func IsVerbose() bool {
	return verbose
}
