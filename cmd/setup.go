package cmd

import (
	"os"

	"github.com/envdoctor/envdoctor/internal/report"
	"github.com/envdoctor/envdoctor/internal/scan"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup [dir]",
	Short: "Check tools, detect the project type, and report readiness",
	Long: `Setup runs the environment tool checks, detects which project types are
present in the directory, and runs per-project readiness checks.

The command is diagnostic, not enforcing: it always exits 0 so it is safe
to run in any pipeline. Suggested fixes are displayed, never executed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	rep := scan.Run(cmd.Context(), scan.Options{
		Dir:  dir,
		Exec: newExecutor(),
	})
	report.RenderScan(os.Stdout, rep)

	// Findings never produce a nonzero exit.
	return nil
}
