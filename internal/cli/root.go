// Package cli implements the webui command.
package cli

import (
	"flag"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/testinium/steps"
	"github.com/testinium/steps/config"
)

// RootOptions holds global flags and test hooks shared by all commands.
type RootOptions struct {
	// ConfigPath is the optional YAML configuration file.
	ConfigPath string

	// Lookup reads environment variables; nil means the process environment.
	Lookup config.LookupFunc
	// SuiteOptions are passed to every suite the run command builds.
	SuiteOptions []steps.SuiteOption
}

// ExitError carries a non-zero exit status that has already been reported.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewRootCommand creates the webui command.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webui",
		Short: "Run browser UI features against a Selenium grid",
		Long: `Run Gherkin features whose steps drive a remote browser.

Elements are referenced by key and resolved through the JSON files of the
element directory. The grid address and the Testinium key come from
SELENIUM_REMOTE_URL and TESTINIUM_KEY.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// glog reads its flags from the standard flag set.
			return flag.CommandLine.Parse(nil)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML configuration file")
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	cmd.AddCommand(newRunCommand(opts))
	cmd.AddCommand(newElementsCommand(opts))
	cmd.AddCommand(newConfigCommand(opts))
	cmd.AddCommand(newStepsCommand())

	return cmd
}

func (o *RootOptions) load() (config.Config, error) {
	return config.Load(o.ConfigPath, o.Lookup)
}
