package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dayekim/devprep/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "devprep",
	Short: "Mock interviews and tech blogs in your terminal",
	Long:  "devprep is a terminal client for the devprep platform: browse the tech blog feed and run AI mock interview sessions.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("api", "", "API base URL (overrides config file and DEVPREP_API)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ~/.config/devprep/config.yaml)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the config path and applies the --api override.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if api, _ := cmd.Flags().GetString("api"); api != "" {
		cfg.API.BaseURL = api
	}
	return cfg, nil
}
