package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/testinium/steps"
	"github.com/testinium/steps/elements"
)

func newElementsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "elements",
		Short: "Load the element repository and list its keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.load()
			if err != nil {
				return err
			}
			repo := elements.New(elements.OsFs(cfg.ResourceRoot), cfg.ElementDir)
			repo.Init()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tTYPE\tVALUE")
			for _, key := range repo.Keys() {
				e, _ := repo.Entry(key)
				if loc, ok := e.Locator(); ok {
					fmt.Fprintf(w, "%s\t%s\t%s\n", key, loc.Type, loc.Value)
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", key, e.Kind(), e)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d keys loaded from %s\n", repo.Len(), repo.Dir())
			return nil
		},
	}
}

func newConfigCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration as YAML, with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.load()
			if err != nil {
				return err
			}
			buf, err := cfg.Redacted().YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(buf)
			return err
		},
	}
}

func newStepsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "List the step phrasings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, d := range steps.New(nil, nil).Definitions() {
				fmt.Fprintf(out, "%s:\n", d.Name)
				for _, p := range d.Phrasings {
					fmt.Fprintf(out, "  %s\n", p)
				}
			}
			return nil
		},
	}
}
