package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dayekim/devprep/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("devprep", version.Version)

		check, _ := cmd.Flags().GetBool("check")
		if !check {
			return nil
		}

		result, err := version.NewChecker().Check(cmd.Context(), version.Version)
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if result.UpdateAvailable {
			fmt.Printf("Update available: %s\n", result.LatestVersion)
		} else if result.LatestVersion != "" {
			fmt.Println("Up to date.")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check GitHub releases for a newer version")
}
