package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// exitError carries a process exit code through cobra without printing
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// NewRootCommand builds the comparefile command tree
func NewRootCommand(version string) *cobra.Command {
	var global GlobalFlags
	var flags CompareFlags

	rootCmd := &cobra.Command{
		Use:   "comparefile FILE1 FILE2",
		Short: "Compare two files by format",
		Long: `comparefile compares two files and reports their differences.
Text, CSV, JSON and XML files are compared structurally, anything else
byte by byte. The format is detected from the first file's extension
unless --file-type is given.

Exit status is 0 when the files are identical and 1 otherwise.`,
		Version:       version,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, &global, &flags, args[0], args[1])
		},
	}

	AddGlobalFlags(rootCmd, &global)
	AddCompareFlags(rootCmd, &flags)

	rootCmd.AddCommand(NewTypesCommand())
	rootCmd.AddCommand(NewConfigCommand(&global))
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// Execute runs the command line and returns the process exit code
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate))
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			return exit.code
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
