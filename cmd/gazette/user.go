// ABOUTME: whoami command: current user profile and session expiry
// ABOUTME: Profile comes from the server, expiry from the local token

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rhajizada/gazette-cli/internal/render"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireClient(); err != nil {
			return err
		}

		user, err := client.CurrentUser(cmd.Context())
		if err != nil {
			return apiFailure(err)
		}

		render.Header(user.Name)
		if user.Email != "" {
			fmt.Println(user.Email)
		}
		if user.CreatedAt != nil {
			fmt.Printf("member since %s\n", user.CreatedAt.Format("02 Jan 06"))
		}
		if exp := sess.ExpiresAt(); !exp.IsZero() {
			fmt.Printf("session expires %s\n", exp.Format("02 Jan 06 15:04"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
