package commands

import (
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/wheelwright/internal/app"
	"go.trai.ch/wheelwright/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build PROJECT [flags] [-- ARGS...]",
		Short: "Build a project into an executable package",
		Long: `Build a Python project with its PEP 517 build backend, or with setup.py
for legacy projects, and optionally assemble the result into an executable
zipapp. Arguments after -- are passed to the built package, which is run
right after the build.`,
		Args: func(cmd *cobra.Command, args []string) error {
			n := len(args)
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				n = dash
			}
			return cobra.ExactArgs(1)(cmd, args[:n])
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var runArgs []string
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				runArgs = args[dash:]
			}

			opts := app.BuildOptions{
				ProjectPath: args[0],
				RunArgs:     runArgs,
			}
			opts.Interpreters, _ = cmd.Flags().GetStringArray("python")
			opts.NoBuildIsolation, _ = cmd.Flags().GetBool("no-build-isolation")
			opts.UsePEP517, _ = cmd.Flags().GetBool("use-pep517")
			opts.NoUsePEP517, _ = cmd.Flags().GetBool("no-use-pep517")
			opts.ForcePEP517, _ = cmd.Flags().GetBool("force-pep517")
			opts.OutputPath, _ = cmd.Flags().GetString("output")
			opts.Verbose, _ = cmd.Flags().GetBool("verbose")
			opts.Parallelism, _ = cmd.Flags().GetInt("jobs")
			if cmd.Flags().Changed("reuse-environments") {
				reuse, _ := cmd.Flags().GetBool("reuse-environments")
				opts.ReuseEnvironments = &reuse
			}

			res, err := c.app.Build(cmd.Context(), opts)
			if err != nil {
				return err
			}

			_, _ = io.WriteString(cmd.OutOrStdout(), res.Stdout)
			_, _ = io.WriteString(cmd.ErrOrStderr(), res.Stderr)
			if !res.Success {
				return domain.ErrBuildExecutionFailed
			}
			return nil
		},
	}

	cmd.Flags().Bool("no-build-isolation", false, "Build with the interpreter's own packages instead of an isolated environment")
	cmd.Flags().Bool("use-pep517", false, "Use PEP 517 processing (default for projects with a pyproject.toml)")
	cmd.Flags().Bool("no-use-pep517", false, "Build with setup.py instead of the PEP 517 backend")
	cmd.Flags().Bool("force-pep517", false, "Require PEP 517 processing")
	cmd.Flags().StringP("output", "o", "", "Write the executable package to this path")
	cmd.Flags().StringArray("python", nil, "Python interpreter to build for (repeatable)")
	cmd.Flags().Bool("reuse-environments", false, "Reuse cached isolated build environments")
	cmd.Flags().BoolP("verbose", "v", false, "Show build progress and backend output")
	cmd.Flags().IntP("jobs", "j", 0, "Number of interpreters to build for in parallel (default: number of CPUs)")
	return cmd
}
