package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove the stored token",
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
			fmt.Println("Not signed in.")
			return nil
		}

		if err := session.Logout(cmd.Context(), client); err != nil {
			// The local token is gone either way.
			fmt.Fprintln(os.Stderr, "Backend logout failed:", err)
		}
		fmt.Println("Signed out.")
		return nil
	},
}
