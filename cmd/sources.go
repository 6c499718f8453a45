package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the tech blog sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		_, client, err := buildSession(cfg)
		if err != nil {
			return err
		}

		sources, err := client.ListTechSources(cmd.Context())
		if err != nil {
			return fmt.Errorf("list sources: %w", err)
		}

		for _, s := range sources {
			fmt.Println(s.Name)
		}
		return nil
	},
}
