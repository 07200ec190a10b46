package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ofs/ofss-config/log"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Prints a shell completion script for ofss-config",
	Long: `Prints a script completing ofss-config commands and flags, e.g. the --ofss files
of deploy and show or the .ip files of ipinfo.

Bash, for the current shell:

  $ source <(ofss-config completion bash)

Bash, for every new shell:

  $ ofss-config completion bash > ~/.local/share/bash-completion/completions/ofss-config

Zsh (compinit must be enabled in ~/.zshrc):

  $ ofss-config completion zsh > "${fpath[1]}/_ofss-config"

Fish:

  $ ofss-config completion fish > ~/.config/fish/completions/ofss-config.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.ExactValidArgs(1),
	Run:                   runCompletion,
	Hidden:                true,
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

func runCompletion(cmd *cobra.Command, args []string) {
	var err error
	switch args[0] {
	case "bash":
		err = cmd.Root().GenBashCompletion(os.Stdout)
	case "zsh":
		err = cmd.Root().GenZshCompletion(os.Stdout)
	case "fish":
		err = cmd.Root().GenFishCompletion(os.Stdout, true)
	}
	if err != nil {
		log.Fatal("Failed to generate the %s completion: %s\n", args[0], err)
	}
}
