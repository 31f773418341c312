// Package cmd provides the CLI commands for cloud-adapter.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cloud-adapter/core/output"
	"cloud-adapter/internal/app"
	"cloud-adapter/internal/config"
	"cloud-adapter/internal/logging"
)

// Version is set at build time
var Version = "0.1.0"

var (
	cfgFile      string
	verbose      bool
	outputFormat string

	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cloud-adapter",
	Short: "Resolve resource requests against the Hyperstack GPU cloud",
	Long: `cloud-adapter translates provider-agnostic resource requests
(CPUs, memory, accelerators, region) into launchable Hyperstack
instance types, and answers pricing, region and credential questions.

Examples:
  cloud-adapter resolve --gpus A100:1
  cloud-adapter resolve --cpus 8+ --memory 32+ --format json
  cloud-adapter regions n3-A100x1
  cloud-adapter cost n3-H100x8 --nodes 2 --hours 24
  cloud-adapter plan train --gpus A100:1 --nodes 2
  cloud-adapter check`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cloud-adapter.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json); default from config")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	loaded, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// newApp builds the adapters from the loaded configuration
func newApp() (*app.App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	return app.New(cfg)
}

// render writes report in the selected output format
func render(w io.Writer, report *output.Report) error {
	name := outputFormat
	if name == "" && cfg != nil {
		name = cfg.Output.DefaultFormat
	}
	if name == "" {
		name = string(output.FormatCLI)
	}
	format, err := output.ParseFormat(name)
	if err != nil {
		return err
	}
	f, err := output.New(format)
	if err != nil {
		return err
	}
	return f.Render(w, report)
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cloud-adapter version %s\n", Version)
	},
}

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// configShowCmd prints the effective configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			cfg = config.Default()
		}
		f := &output.JSONFormatter{Indent: "  "}
		return f.Render(cmd.OutOrStdout(), &output.Report{Data: cfg})
	},
}
