// Package app builds the snpscan command tree.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"snpscan/internal/appcore"
	"snpscan/internal/cmdutil"
	"snpscan/internal/version"
)

// globals are the persistent flags shared by every subcommand.
type globals struct {
	quiet   bool
	verbose bool
	stderr  io.Writer
	log     *slog.Logger
}

// NewRootCmd returns the root command writing to stdout/stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globals{stderr: stderr}
	root := &cobra.Command{
		Use:   "snpscan",
		Short: "Find stable, unique SNP hotspots in aligned DNA sequences",
		Long: `snpscan compares a batch of aligned sequences column by column, drops
variants inside unstable or conserved regions, keeps those with unique
flanking contexts and reports dense hotspot windows.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.String(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			g.log = cmdutil.NewLogger(g.stderr, g.quiet, g.verbose)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return appcore.Exit(appcore.ExitUsage, err)
	})
	pf := root.PersistentFlags()
	pf.BoolVarP(&g.quiet, "quiet", "q", false, "only log warnings and errors")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "log debug detail")

	root.AddCommand(
		newRunCmd(g),
		newVariantsCmd(g),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// Run executes argv and maps the outcome to an exit code. Errors are
// printed to stderr, usage errors with a hint.
func Run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	root := NewRootCmd(stdout, stderr)
	root.SetArgs(argv)
	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return appcore.ExitOK
	}
	code := appcore.Code(err)
	if _, ok := err.(*appcore.ExitError); !ok && code == appcore.ExitRuntime {
		// cobra's own errors: unknown command, bad arg count
		code = appcore.ExitUsage
	}
	if msg := errorText(err); msg != "" {
		fmt.Fprintf(stderr, "snpscan: %s\n", msg)
		if code == appcore.ExitUsage && cmd != nil {
			fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
		}
	}
	return code
}

func errorText(err error) string {
	if ee, ok := err.(*appcore.ExitError); ok && ee.Err == nil {
		return ""
	}
	return err.Error()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "snpscan version %s\n", version.String()); err != nil {
				return appcore.Exit(appcore.ExitRuntime, err)
			}
			return nil
		},
	}
}
