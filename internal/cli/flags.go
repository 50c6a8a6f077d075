package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kundli/pkg/payload"
	"github.com/matzehuels/kundli/pkg/pipeline"
	"github.com/matzehuels/kundli/pkg/render/sink"
	"github.com/matzehuels/kundli/pkg/render/styles"
)

// chartFlags are the pipeline flags shared by render, resolve and inspect.
// Only flags set on the command line override the config file.
type chartFlags struct {
	payloadFormat  string
	strict         bool
	deriveDignity  bool
	noCache        bool
	refresh        bool
	formats        string
	palette        string
	title          string
	scale          float64
	markRetrograde bool
}

func (f *chartFlags) register(cmd *cobra.Command, render bool) {
	fs := cmd.Flags()
	fs.StringVar(&f.payloadFormat, "input-format", "", "payload syntax: json, yaml (default: detect)")
	fs.BoolVar(&f.strict, "strict", false, "fail instead of drawing a placeholder when the payload has no chart")
	fs.BoolVar(&f.deriveDignity, "derive-dignity", false, "mark exalted/debilitated planets from the classical tables")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.refresh, "refresh", false, "ignore cached charts, artifacts and downloads")
	if render {
		fs.StringVarP(&f.formats, "format", "f", "", "output format(s): "+strings.Join(sink.Formats, ", ")+" (comma-separated)")
		fs.StringVar(&f.palette, "palette", "", "color palette: "+strings.Join(styles.PaletteNames(), ", "))
		fs.StringVar(&f.title, "title", "", "chart title")
		fs.Float64Var(&f.scale, "scale", 0, "PNG scale factor")
		fs.BoolVar(&f.markRetrograde, "mark-retrograde", false, "append R to retrograde planet labels")
	}
	registerChartCompletions(cmd, render)
}

// options merges the flags over the config file's pipeline options.
func (f *chartFlags) options(cmd *cobra.Command, base pipeline.Options) (pipeline.Options, error) {
	opts := base
	changed := cmd.Flags().Changed

	pf, err := payload.ParseFormat(f.payloadFormat)
	if err != nil {
		return opts, err
	}
	opts.PayloadFormat = pf

	if changed("strict") {
		opts.Strict = f.strict
	}
	if changed("derive-dignity") {
		opts.DeriveDignity = f.deriveDignity
	}
	opts.Refresh = f.refresh
	if changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if changed("palette") {
		opts.Palette = f.palette
	}
	if changed("title") {
		opts.Title = f.title
	}
	if changed("scale") {
		opts.Scale = f.scale
	}
	if changed("mark-retrograde") {
		opts.MarkRetrograde = f.markRetrograde
	}
	return opts, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return []string{pipeline.DefaultFormat}
	}
	return out
}
