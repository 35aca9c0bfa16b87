package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/templpad/templpad/constants/lipgloss"
)

// Config represents the structure of the configuration file
type Config struct {
	Version        string `mapstructure:"version"`
	Theme          string `mapstructure:"theme"`
	EnableCache    bool   `mapstructure:"enable_cache"`
	MaxDiagnostics int    `mapstructure:"max_diagnostics"`
	OutputPath     string `mapstructure:"output_path"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:        "0.3.0",
	Theme:          "dracula",
	EnableCache:    true,
	MaxDiagnostics: 200,
	OutputPath:     "",
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs initializes the configuration from file, flags, and environment variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) *Config {
	var config *Config

	// Set default values using Viper
	setDefaults()

	// Automatically read environment variables
	viper.AutomaticEnv()

	// Explicitly bind environment variables to config keys
	bindEnv()

	// Check if the user provided a config file
	if cfgFile != "" {
		// Use the config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Look for configuration files in the current directory
		viper.SetConfigName("templpad-config") // Name of config file (without extension)
		viper.AddConfigPath(cwd)               // Look in the current working directory

		// Support both JSON and YAML formats
		viper.SetConfigType("yaml") // Set default type
		if err := viper.ReadInConfig(); err != nil {
			// If YAML fails, try JSON
			viper.SetConfigType("json")
			if err := viper.ReadInConfig(); err != nil {
				// If both fail, we'll continue with defaults
				fmt.Println(lipgloss.Yellow.Render("No configuration file found, using defaults"))
			}
		}
	}

	// Read the explicitly specified config file (if any)
	if cfgFile != "" {
		if err := viper.ReadInConfig(); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading config file: %v", err)))
			os.Exit(1)
		}
	}

	// Bind CLI flags to override config values
	bindFlags(rootCmd)

	// Unmarshal the configuration into the Config struct
	if err := viper.Unmarshal(&config); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Unable to decode into struct: %v", err)))
		os.Exit(1)
	}

	return config
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("version", DefaultConfig.Version)
	viper.SetDefault("theme", DefaultConfig.Theme)
	viper.SetDefault("enable_cache", DefaultConfig.EnableCache)
	viper.SetDefault("max_diagnostics", DefaultConfig.MaxDiagnostics)
	viper.SetDefault("output_path", DefaultConfig.OutputPath)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv() {
	_ = viper.BindEnv("theme", "THEME")
	_ = viper.BindEnv("enable_cache", "ENABLE_CACHE")
	_ = viper.BindEnv("max_diagnostics", "MAX_DIAGNOSTICS")
	_ = viper.BindEnv("output_path", "OUTPUT_PATH")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	_ = viper.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))
	_ = viper.BindPFlag("enable_cache", rootCmd.PersistentFlags().Lookup("enable_cache"))
	_ = viper.BindPFlag("max_diagnostics", rootCmd.PersistentFlags().Lookup("max_diagnostics"))
	_ = viper.BindPFlag("output_path", rootCmd.PersistentFlags().Lookup("output_path"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	// Theme configuration
	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Set the highlight theme for generated code output. (e.g., 'dracula', 'monokai', 'github')")

	// Cache configuration
	rootCmd.PersistentFlags().Bool("enable_cache", DefaultConfig.EnableCache, "Enable or disable the single-slot compilation cache")

	// Diagnostics limit
	rootCmd.PersistentFlags().Int("max_diagnostics", DefaultConfig.MaxDiagnostics, "Upper bound on reported link diagnostics (0 means unbounded)")

	// Output path for the emitted assembly image
	rootCmd.PersistentFlags().StringP("output_path", "o", DefaultConfig.OutputPath, "Write the emitted assembly image to this path")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}

// GetConfigFileType returns the type of the configuration file based on its extension
func GetConfigFileType(filename string) string {
	if strings.HasSuffix(filename, ".json") {
		return "json"
	} else if strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml") {
		return "yaml"
	}
	return ""
}
