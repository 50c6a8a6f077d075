package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kundli/pkg/payload"
	"github.com/matzehuels/kundli/pkg/placement"
	"github.com/matzehuels/kundli/pkg/resolve"
)

type resolveOpts struct {
	chartFlags
	output string
	model  bool
}

// resolveOutput is the document printed by the resolve command.
type resolveOutput struct {
	*resolve.Resolution
	Model *placement.Model `json:"model,omitempty"`
}

// resolveCommand creates the resolve command, which prints the normalized
// chart as JSON.
func (c *CLI) resolveCommand() *cobra.Command {
	var opts resolveOpts

	cmd := &cobra.Command{
		Use:   "resolve <file|url|->",
		Short: "Print the normalized chart of a payload as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runResolve(cmd, args[0], &opts)
		},
	}

	opts.register(cmd, false)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.model, "model", false, "include the placement model")

	return cmd
}

func (c *CLI) runResolve(cmd *cobra.Command, input string, opts *resolveOpts) error {
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
	out := resolveOutput{Resolution: res}
	if opts.model {
		out.Model = runner.Place(ctx, res, popts)
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	encoded = append(encoded, '\n')

	if opts.output == "" || opts.output == "-" {
		_, err = cmd.OutOrStdout().Write(encoded)
		return err
	}
	if err := writeFile(opts.output, encoded); err != nil {
		return err
	}
	st := statusFor(cmd, false)
	st.success("Resolved %s", StyleHighlight.Render(string(res.Shape)))
	st.file(opts.output)
	return nil
}
