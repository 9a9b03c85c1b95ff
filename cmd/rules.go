package cmd

import (
	"fmt"

	"github.com/envdoctor/envdoctor/internal/rules"
	"github.com/spf13/cobra"
)

var writeDefault bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Validate the rule tables and show compiled patterns",
	Long: `Rules validates the loaded allow/deny tables and displays all compiled
patterns.

This is useful for:
- Checking that a user rules.toml is syntactically correct
- Seeing which patterns will actually gate command execution
- Debugging why a command was blocked`,
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().BoolVar(&writeDefault, "write-default", false, "Write the default rules file into the config directory")
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	if writeDefault {
		path, err := rules.WriteDefault()
		if err != nil {
			return err
		}
		fmt.Printf("Default rules written to %s\n", path)
		return nil
	}

	rs := rules.Get()
	if rs == nil {
		return fmt.Errorf("failed to load rules")
	}
	if err := rules.InitError(); err != nil {
		fmt.Printf("Warning: %v (using embedded defaults)\n\n", err)
	} else if path := rules.Path(); path != "" {
		fmt.Printf("Rules loaded from %s\n\n", path)
	} else {
		fmt.Println("Using embedded default rules")
		fmt.Println()
	}

	fmt.Printf("Deny patterns: %d\n", len(rs.Deny))
	for _, p := range rs.Deny {
		fmt.Printf("  - %s: %s\n", p.Name, p.Regex.String())
	}
	fmt.Println()

	fmt.Printf("Allow patterns: %d\n", len(rs.Allow))
	for _, p := range rs.Allow {
		fmt.Printf("  - %s: %s\n", p.Name, p.Regex.String())
	}

	return nil
}
