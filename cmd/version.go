package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/templpad/templpad/config"
	"github.com/templpad/templpad/constants/lipgloss"
)

// VersionCmd: templpad version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the templpad version.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(lipgloss.Info.Render(fmt.Sprintf("templpad %s", config.DefaultConfig.Version)))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
