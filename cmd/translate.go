package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/templpad/templpad/backend"
	"github.com/templpad/templpad/compiler"
	"github.com/templpad/templpad/compiler/models"
	"github.com/templpad/templpad/constants/lipgloss"
	"github.com/templpad/templpad/engine"
	"github.com/templpad/templpad/utils"
)

// TranslateCmd: templpad translate
var translateCmd = &cobra.Command{
	Use:   "translate [dir]",
	Short: "Show the intermediate code generated for each template file.",
	Long: `The 'translate' subcommand runs only the two-pass translation stage and
prints the generated JavaScript fragment per input file, syntax highlighted
with the configured theme. Useful for inspecting what the linker sees.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		handleTranslateCommand(rootDependencies, args)
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)
}

func handleTranslateCommand(rootDependencies *RootDependencies, args []string) {
	dir := rootDependencies.Cwd
	if len(args) > 0 {
		dir = args[0]
	}

	files, err := utils.LoadProjectFiles(dir)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}

	env, err := compiler.InitBaseEnvironment()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}

	project := compiler.NewProjectCompiler(
		engine.NewTemplateEngine(),
		backend.NewJsBackend(),
		env,
		models.LinkOptions{MaxDiagnostics: rootDependencies.Config.MaxDiagnostics},
	)

	results := project.Translate(files)
	for _, r := range results {
		if r.FilePath != "" {
			fmt.Println(lipgloss.BoxStyle.Render(r.FilePath))
			if err := utils.HighlightCode(os.Stdout, r.GeneratedCode, "javascript", rootDependencies.Config.Theme); err != nil {
				fmt.Print(r.GeneratedCode)
			}
			fmt.Println()
		}
		printDiagnostics(r.Diagnostics)
	}
}
