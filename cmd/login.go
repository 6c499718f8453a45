package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login [token]",
	Short: "Sign in with an access token",
	Long:  "Stores a bearer token and validates it against the backend. Pass the token as an argument or on stdin.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		session, client, err := buildSession(cfg)
		if err != nil {
			return err
		}

		var token string
		if len(args) == 1 {
			token = args[0]
		} else {
			fmt.Fprint(os.Stderr, "Token: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return fmt.Errorf("read token: %w", err)
			}
			token = strings.TrimSpace(line)
		}

		if err := session.Login(cmd.Context(), client, token); err != nil {
			return fmt.Errorf("sign in: %w", err)
		}

		fmt.Printf("Signed in as %s\n", session.Profile().Nickname)
		return nil
	},
}
