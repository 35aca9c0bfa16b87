package cmd

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/templpad/templpad/constants/lipgloss"
	"github.com/templpad/templpad/utils"
)

// BuildCmd: templpad build
var buildCmd = &cobra.Command{
	Use:   "build [dir]",
	Short: "Compile a playground project directory into an assembly image.",
	Long: `The 'build' subcommand loads every template (.tpl) and plain source (.js)
file under the given directory (default: current directory), compiles them
through the two-pass pipeline and prints the resulting diagnostics. When the
compilation succeeds the emitted image can be written out with --output_path.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		handleBuildCommand(rootDependencies, args)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func handleBuildCommand(rootDependencies *RootDependencies, args []string) {
	dir := rootDependencies.Cwd
	if len(args) > 0 {
		dir = args[0]
	}

	files, err := utils.LoadProjectFiles(dir)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Println(lipgloss.Yellow.Render("No .tpl or .js files found."))
	}

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").WithDelay(100).WithRemoveWhenDone(true)
	spinnerCompile, _ := spinner.Start("Compiling...")

	result, err := rootDependencies.Workspace.CompileToAssembly(files, func(label string) {
		spinnerCompile.UpdateText(label)
	})

	spinnerCompile.Stop()
	fmt.Print("\r")

	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}

	printDiagnostics(result.Diagnostics)

	if !result.Success() {
		fmt.Println(lipgloss.Red.Render("✗ Compilation failed."))
		os.Exit(1)
	}

	fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✓ Compiled %d file(s) into a %d byte assembly image.", len(files), len(result.BinaryImage))))

	if out := rootDependencies.Config.OutputPath; out != "" {
		if err := os.WriteFile(out, result.BinaryImage, 0644); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error writing image: %v", err)))
			os.Exit(1)
		}
		fmt.Println(lipgloss.Info.Render(fmt.Sprintf("Image written to %s", out)))
	}
}
