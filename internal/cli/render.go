package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kundli/pkg/payload"
	"github.com/matzehuels/kundli/pkg/pipeline"
	"github.com/matzehuels/kundli/pkg/render/sink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	chartFlags
	output  string // output file (single format) or base path (multiple)
	failSVG bool   // write the error-state SVG when the chart cannot be drawn
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file|url|->",
		Short: "Render a chart payload as SVG, PNG, PDF, JSON, MessagePack or XLSX",
		Long: `Render a chart payload.

The payload may be any of the supported shapes (data.rasiChart, rasiChart,
data.chart, chart, or a bare {planets, ascendant} object) in JSON or YAML.
Payloads without chart data are drawn as a placeholder chart unless --strict
is given.`,
		Example: `  kundli render chart.json
  kundli render chart.yaml -f svg,xlsx -o out/chart
  curl -s https://example.com/chart | kundli render - -f png --scale 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts)
		},
	}

	opts.register(cmd, true)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	cmd.Flags().BoolVar(&opts.failSVG, "fail-svg", false, "write an error-state SVG when the chart cannot be drawn")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()

	popts, err := opts.options(cmd, c.cfg.PipelineOptions())
	if err != nil {
		return err
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if opts.output == "-" && len(popts.Formats) > 1 {
		return fmt.Errorf("--output - needs exactly one format, got %s", strings.Join(popts.Formats, ","))
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

	out := statusFor(cmd, opts.output == "-")
	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, data, popts)
	if err != nil {
		if opts.failSVG && opts.output != "-" {
			path := outputPath(input, opts.output, sink.FormatSVG, len(popts.Formats) > 1)
			if werr := writeFile(path, pipeline.FailureSVG(err, popts)); werr == nil {
				out.warning("Chart could not be drawn, wrote error state")
				out.file(path)
			}
		}
		return err
	}
	prog.done("Rendered chart", "formats", popts.Formats)

	if opts.output == "-" {
		_, err := cmd.OutOrStdout().Write(result.Artifacts[popts.Formats[0]])
		return err
	}

	out.success("Chart %s", StyleHighlight.Render(chartSummary(result)))
	out.stats(result.Stats.Planets, result.Stats.Dropped, result.CacheInfo.RenderHit)
	if result.Resolution.Synthesized {
		out.warning("Payload had no chart data, drew a placeholder chart")
	}
	for _, format := range popts.Formats {
		path := outputPath(input, opts.output, format, len(popts.Formats) > 1)
		if err := writeFile(path, result.Artifacts[format]); err != nil {
			return err
		}
		out.file(path)
	}
	return nil
}

// fetchInput reads the payload, showing a spinner while downloading.
func (c *CLI) fetchInput(cmd *cobra.Command, input string, runner *pipeline.Runner, refresh bool) ([]byte, payload.Format, error) {
	if !isURL(input) {
		return readInput(cmd.Context(), input, nil, refresh)
	}
	spinner := newSpinner(cmd.Context(), cmd.ErrOrStderr(), "Fetching "+input)
	spinner.Start()
	data, hint, err := readInput(cmd.Context(), input, c.newFetcher(runner.Cache), refresh)
	spinner.Stop()
	return data, hint, err
}

// chartSummary describes a rendered chart in one line, e.g. "Libra lagna (rasiChart)".
func chartSummary(r *pipeline.Result) string {
	return fmt.Sprintf("%s lagna (%s)", r.Resolution.Chart.Ascendant.Sign, r.Resolution.Shape)
}

// outputPath derives the file name of one artifact. Without an explicit
// output the input's base name is used; with several formats the output is
// a base path and every format gets its own extension.
func outputPath(input, output, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	base := output
	if base == "" {
		base = "chart"
		if input != "-" && !isURL(input) {
			base = filepath.Base(input)
		}
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + "." + format
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
