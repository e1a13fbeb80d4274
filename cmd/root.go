package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/barisgit/ngx-electron/internal/pipeline"
)

// RootCmd builds the ngx-electron command tree.
func RootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ngx-electron",
		Short:         "ngx-electron - Angular projects as Electron desktop apps",
		Long:          `ngx-electron scaffolds Angular projects that build and serve as Electron applications.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "⚡ ngx-electron v"+version)
			fmt.Fprintln(cmd.OutOrStdout(), "Run 'ngx-electron --help' for available commands")
		},
	}

	rootCmd.AddCommand(InitCmd())
	rootCmd.AddCommand(VersionCmd(version))

	return rootCmd
}

func VersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the ngx-electron version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "ngx-electron v"+version)
		},
	}
}

// Execute runs rootCmd and reports a failure on w. It returns the process
// exit code.
func Execute(rootCmd *cobra.Command, w io.Writer) int {
	executed, err := rootCmd.ExecuteC()
	if err == nil {
		return 0
	}
	debug := false
	if executed != nil {
		if f := executed.Flags().Lookup("debug"); f != nil {
			debug = f.Value.String() == "true"
		}
	}
	PrintError(w, err, debug)
	return 1
}

// PrintError writes err in red. A pipeline step failure has already been
// reported by the pipeline and is not repeated. With debug set, every wrapped
// cause is printed on its own line.
func PrintError(w io.Writer, err error, debug bool) {
	var stepErr *pipeline.StepError
	if !errors.As(err, &stepErr) {
		color.New(color.Bold, color.FgRed).Fprintf(w, "Error: %v\n", err)
	}
	if !debug {
		return
	}
	for i, cause := range ErrorChain(err) {
		if i == 0 {
			continue
		}
		fmt.Fprintf(w, "  %s└─ %s\n", strings.Repeat("  ", i-1), cause)
	}
}

// ErrorChain returns err followed by each error it wraps.
func ErrorChain(err error) []string {
	var chain []string
	for err != nil {
		chain = append(chain, err.Error())
		err = errors.Unwrap(err)
	}
	return chain
}
