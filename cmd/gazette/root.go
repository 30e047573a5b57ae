// ABOUTME: Root Cobra command and shared client state
// ABOUTME: Loads config and session, builds the API client, handles invalid sessions

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rhajizada/gazette-cli/internal/api"
	"github.com/rhajizada/gazette-cli/internal/config"
	"github.com/rhajizada/gazette-cli/internal/session"
)

var (
	configPath string
	serverURL  string

	cfg    *config.Config
	sess   *session.Session
	client *api.Client
)

var rootCmd = &cobra.Command{
	Use:   "gazette",
	Short: "Terminal client for the Gazette feed aggregation service",
	Long: `
 ██████╗  █████╗ ███████╗███████╗████████╗████████╗███████╗
██╔════╝ ██╔══██╗╚══███╔╝██╔════╝╚══██╔══╝╚══██╔══╝██╔════╝
██║  ███╗███████║  ███╔╝ █████╗     ██║      ██║   █████╗
██║   ██║██╔══██║ ███╔╝  ██╔══╝     ██║      ██║   ██╔══╝
╚██████╔╝██║  ██║███████╗███████╗   ██║      ██║   ███████╗
 ╚═════╝ ╚═╝  ╚═╝╚══════╝╚══════╝   ╚═╝      ╚═╝   ╚══════╝

Browse feeds, items, collections, and suggestions from a Gazette
server. Lists are prefetched in chunks and searched, sorted, and
paginated locally.`,
	// main prints the returned error; cobra must not print it too.
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if serverURL != "" {
			cfg.BaseURL = serverURL
		}

		tokenPath := cfg.GetTokenPath()
		if tokenPath == "" {
			tokenPath = session.DefaultTokenPath()
		}
		sess, err = session.Load(tokenPath)
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}

		if cfg.BaseURL != "" {
			client = api.New(cfg.BaseURL, sess)
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: ~/.config/gazette/config.json)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Gazette server base URL (overrides config)")
}

// requireClient ensures the server is configured and a session exists
// before any secured request is attempted.
func requireClient() error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !sess.Authenticated() {
		return fmt.Errorf("not logged in: run 'gazette login'")
	}
	return nil
}

// apiFailure translates API errors into user-facing ones. A 401 means
// the session is no longer valid: the stored credential is cleared so
// the next command starts anonymous, mirroring the global logout the
// web client performs.
func apiFailure(err error) error {
	if err == nil {
		return nil
	}
	if api.IsUnauthorized(err) {
		_ = sess.Logout()
		return fmt.Errorf("session is no longer valid, run 'gazette login'")
	}
	return err
}
