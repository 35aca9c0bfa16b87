package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/templpad/templpad/backend"
	"github.com/templpad/templpad/compiler"
	"github.com/templpad/templpad/compiler/models"
	"github.com/templpad/templpad/config"
	"github.com/templpad/templpad/constants/lipgloss"
	"github.com/templpad/templpad/engine"
)

// RootDependencies holds the wired collaborators every subcommand needs.
type RootDependencies struct {
	Config    *config.Config
	Workspace *compiler.Workspace
	Cwd       string
}

var rootCmd = &cobra.Command{
	Use:   "templpad",
	Short: "Compile playground template projects into an in-memory assembly image.",
	Long: `templpad compiles a directory of component-template files (.tpl) and plain
source files (.js) into a single in-memory assembly image, reporting
diagnostics the way the in-browser playground does. Unchanged input is served
from a single-slot compilation cache.`,
	Run: func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Println(config.DefaultConfig.Version)
			return
		}
		_ = cmd.Help()
	},
}

func handleRootCommand(cmd *cobra.Command) *RootDependencies {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error getting current directory: %v", err)))
		os.Exit(1)
	}

	cfg := config.LoadConfigs(rootCmd, cwd)

	workspace := compiler.NewWorkspace(
		engine.NewTemplateEngine(),
		backend.NewJsBackend(),
		models.LinkOptions{MaxDiagnostics: cfg.MaxDiagnostics},
	)
	workspace.SetCacheEnabled(cfg.EnableCache)

	return &RootDependencies{
		Config:    cfg,
		Workspace: workspace,
		Cwd:       cwd,
	}
}

// Execute runs the root command.
func Execute() {
	config.InitFlags(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}
}

// printDiagnostics renders a diagnostic list with severity coloring.
func printDiagnostics(diags []models.Diagnostic) {
	for _, d := range diags {
		line := d.String()
		switch d.Severity {
		case models.Error:
			fmt.Println(lipgloss.Red.Render(line))
		case models.Warning:
			fmt.Println(lipgloss.Yellow.Render(line))
		default:
			fmt.Println(lipgloss.Info.Render(line))
		}
	}
}
