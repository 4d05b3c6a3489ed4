package cli

import (
	"github.com/cucumber/godog"
	"github.com/spf13/cobra"

	"github.com/testinium/steps"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	Format string
	Tags   string
	Strict bool
}

func newRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Run feature files",
		Long: `Run the feature files or directories given as arguments, "features" by
default. One browser session is opened before the first feature and quit
after the last.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeatures(rootOpts, opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "pretty", "godog output format (pretty|progress|cucumber|junit)")
	cmd.Flags().StringVarP(&opts.Tags, "tags", "t", "", "run only scenarios matching the tag expression")
	cmd.Flags().BoolVar(&opts.Strict, "strict", true, "fail on undefined or pending steps")

	return cmd
}

func runFeatures(rootOpts *RootOptions, opts *RunOptions, paths []string, cmd *cobra.Command) error {
	cfg, err := rootOpts.load()
	if err != nil {
		return err
	}
	suite, err := steps.NewSuite(cfg, rootOpts.SuiteOptions...)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		paths = []string{"features"}
	}

	status := suite.Run(godog.Options{
		Format: opts.Format,
		Tags:   opts.Tags,
		Strict: opts.Strict,
		Paths:  paths,
		Output: cmd.OutOrStdout(),
	})
	if status != 0 {
		return &ExitError{Code: status}
	}
	return nil
}
