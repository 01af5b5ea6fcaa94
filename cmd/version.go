package cmd

import (
	"fmt"

	"github.com/Jaggernaut555/chaoticbot/bot"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of the bot",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "version=%s\n", bot.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
