package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in member",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		session, client, err := buildSession(cfg)
		if err != nil {
			return err
		}

		if session.Token() == "" {
			fmt.Println("Not signed in. Run: devprep login")
			return nil
		}

		if err := session.Validate(cmd.Context(), client); err != nil {
			return fmt.Errorf("session invalid, please sign in again: %w", err)
		}

		p := session.Profile()
		fmt.Printf("%s <%s>\n", p.Nickname, p.Email)
		return nil
	},
}
