package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/toyz/axonbind/internal/scanner"
	"github.com/toyz/axonbind/pkg/axon/logging"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var (
		dir   string
		tests bool
	)

	cmd := &cobra.Command{
		Use:   "check [patterns...]",
		Short: "Validate declaration strings without running the program",
		Long: `Load the packages matching the patterns (./... by default) and check every
string literal passed to Declare or MustDeclare on an axon annotator.

Patterns:
  ./...              Check the current module recursively
  ./internal/...     Check the internal directory recursively
  ./pkg/controllers  Check one package`,
		RunE: func(cmd *cobra.Command, patterns []string) error {
			diag := opts.diagnostics(cmd, logging.LevelInfo)

			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				dir = wd
			}

			report, err := scanner.New(dir, scanner.WithTests(tests)).Scan(cmd.Context(), patterns...)
			if err != nil {
				diag.Error("Check failed: %v", err)
				return err
			}

			diag.Header("checking declarations")
			if report.Module != "" {
				diag.Verbose("Module: %s", report.Module)
			}
			for _, p := range report.Problems {
				diag.Error("%s", p)
			}
			diag.Summary("Check Complete", map[string]interface{}{
				"Packages":     report.Packages,
				"Declarations": report.Checked,
				"Skipped":      report.Skipped,
				"Problems":     len(report.Problems),
			})

			if !report.OK() {
				return fmt.Errorf("%d invalid declarations", len(report.Problems))
			}
			diag.Success("All declarations are valid")
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory patterns are resolved from (defaults to the working directory)")
	cmd.Flags().BoolVar(&tests, "tests", false, "Also check test files")
	return cmd
}
