package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kundli/pkg/payload"
)

type inspectOpts struct {
	chartFlags
	plain bool
}

// inspectCommand creates the inspect command, an interactive house browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect <file|url|->",
		Short: "Browse the houses and planets of a chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd, args[0], &opts)
		},
	}

	opts.register(cmd, false)
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print the house table once instead of starting the interactive view")

	return cmd
}

func (c *CLI) runInspect(cmd *cobra.Command, input string, opts *inspectOpts) error {
	ctx := cmd.Context()

	popts, err := opts.options(cmd, c.cfg.PipelineOptions())
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	data, hint, err := c.fetchInput(cmd, input, runner, opts.refresh)
	if err != nil {
		return err
	}
	if popts.PayloadFormat == payload.FormatAuto {
		popts.PayloadFormat = hint
	}

	res, err := runner.Resolve(ctx, data, popts)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("%s lagna · %s", res.Chart.Ascendant.Sign, res.Shape)
	if res.Synthesized {
		title += " · placeholder"
	}
	model := NewHouseListModel(res.Chart, runner.Place(ctx, res, popts), title)

	if opts.plain {
		fmt.Fprint(cmd.OutOrStdout(), model.View())
		return nil
	}
	_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
	return err
}
