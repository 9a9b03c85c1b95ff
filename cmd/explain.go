package cmd

import (
	"os"

	"github.com/envdoctor/envdoctor/internal/gitexplain"
	"github.com/envdoctor/envdoctor/internal/report"
	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain [dir]",
	Short: "Explain the current git error state in plain language",
	Long: `Explain inspects the directory's version-control and build state with
read-only queries and prints a plain-language explanation of the first
matching known condition, plus suggested fix commands.

The fixes are only displayed; envdoctor never runs them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	explanation, found := gitexplain.Explain(cmd.Context(), newExecutor(), dir)
	if !found {
		report.RenderHealthy(os.Stdout)
		return nil
	}
	report.RenderExplanation(os.Stdout, explanation)
	return nil
}
