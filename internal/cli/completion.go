package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kundli/pkg/render/sink"
	"github.com/matzehuels/kundli/pkg/render/styles"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand prints a shell completion script. Besides subcommand
// names the scripts complete the values of --format, --palette and
// --input-format.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <" + strings.Join(completionShells, "|") + ">",
		Short: "Print a shell completion script",
		Long: `Print a completion script for kundli to stdout.

Once loaded, the shell completes subcommands (render, resolve, inspect,
serve, cache), output formats for --format (including comma-separated
lists such as svg,json), palette names for --palette and payload syntaxes
for --input-format. Chart arguments complete as file names.

Try it in the current shell:
  bash         source <(kundli completion bash)
  zsh          source <(kundli completion zsh)
  fish         kundli completion fish | source
  powershell   kundli completion powershell | Out-String | Invoke-Expression

Install it for new shells:
  kundli completion bash > ~/.local/share/bash-completion/completions/kundli
  kundli completion zsh  > "${fpath[1]}/_kundli"
  kundli completion fish > ~/.config/fish/completions/kundli.fish

zsh needs compinit enabled; fish picks the file up on the next start.`,
		Example: `  kundli completion zsh > "${fpath[1]}/_kundli"
  kundli render chart.json --format <TAB>`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// registerChartCompletions adds value completion for the chart flags.
func registerChartCompletions(cmd *cobra.Command, render bool) {
	_ = cmd.RegisterFlagCompletionFunc("input-format",
		cobra.FixedCompletions([]string{"json", "yaml"}, cobra.ShellCompDirectiveNoFileComp))
	if !render {
		return
	}
	_ = cmd.RegisterFlagCompletionFunc("palette",
		cobra.FixedCompletions(styles.PaletteNames(), cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("format",
		func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
			return completeFormatList(toComplete), cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
		})
}

// completeFormatList completes the last entry of a comma-separated format
// list, skipping formats already listed.
func completeFormatList(toComplete string) []cobra.Completion {
	done, partial := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		done, partial = toComplete[:i+1], toComplete[i+1:]
	}
	seen := make(map[string]bool)
	for _, f := range strings.Split(done, ",") {
		seen[strings.TrimSpace(f)] = true
	}

	var out []cobra.Completion
	for _, f := range sink.Formats {
		if !seen[f] && strings.HasPrefix(f, partial) {
			out = append(out, done+f)
		}
	}
	return out
}
