// ABOUTME: Logout command clearing the persisted session token
// ABOUTME: Safe to run while already anonymous

package main

import (
	"github.com/spf13/cobra"

	"github.com/rhajizada/gazette-cli/internal/render"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sess.Logout(); err != nil {
			return err
		}
		render.Success("logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
