package completion

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wifiscan/msgproc/pkg/app"
)

// NewCommand returns the "msgproc completion" command for the tree under root.
func NewCommand(root *cobra.Command, a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "completion [SHELL]",
		Short: "Generate completion script for bash, zsh, fish or powershell",
		Long: `To load completions:

Bash:

$ source <(msgproc completion bash)

Zsh:

$ msgproc completion zsh > "${fpath[1]}/_msgproc"

Fish:

$ msgproc completion fish > ~/.config/fish/completions/msgproc.fish
`,
		DisableFlagsInUseLine: true,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			switch args[0] {
			case "bash":
				err = root.GenBashCompletionV2(a.OutWriter, true)
			case "zsh":
				err = root.GenZshCompletion(a.OutWriter)
			case "fish":
				err = root.GenFishCompletion(a.OutWriter, true)
			case "powershell":
				err = root.GenPowerShellCompletionWithDesc(a.OutWriter)
			}
			if err != nil {
				return fmt.Errorf("failed to generate %s completion: %w", args[0], err)
			}
			return nil
		},
	}
}
