// ABOUTME: Login command running the OAuth redirect flow over a loopback listener
// ABOUTME: The server delivers the bearer token as a callback query parameter

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/rhajizada/gazette-cli/internal/render"
)

const loginTimeout = 5 * time.Minute

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the Gazette server",
	Long: `Authenticate against the Gazette server.

Opens the server's login page in your browser. After the OAuth provider
redirects back, the issued token is delivered to a local listener and
persisted for subsequent commands. Use --token to paste a token
directly instead (e.g. on a headless machine).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		pasted, _ := cmd.Flags().GetString("token")
		if pasted != "" {
			if err := sess.Login(pasted); err != nil {
				return err
			}
			render.Success("logged in")
			return nil
		}

		token, err := tokenFromCallback(cmd.Context())
		if err != nil {
			return err
		}
		if err := sess.Login(token); err != nil {
			return err
		}

		if name, _, err := sess.Claims(); err == nil && name != "" {
			render.Success("logged in as %s", name)
		} else {
			render.Success("logged in")
		}
		if exp := sess.ExpiresAt(); !exp.IsZero() {
			fmt.Printf("session valid until %s\n", exp.Local().Format("02 Jan 06 15:04"))
		}
		return nil
	},
}

// tokenFromCallback listens on a loopback port, sends the user through
// the server's login redirect, and waits for the callback carrying the
// token query parameter.
func tokenFromCallback(ctx context.Context) (string, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("failed to open callback listener: %w", err)
	}

	callback := fmt.Sprintf("http://%s/callback", listener.Addr())
	loginURL := client.LoginURL(callback)

	tokens := make(chan string, 1)
	server := &http.Server{Handler: callbackHandler(tokens)}
	go server.Serve(listener)
	defer server.Close()

	if err := openBrowser(loginURL); err != nil {
		fmt.Printf("Open this URL to sign in:\n\n  %s\n\n", render.Link(loginURL))
	} else {
		fmt.Printf("Waiting for sign-in in your browser...\n(or open %s manually)\n", render.Link(loginURL))
	}

	select {
	case token := <-tokens:
		return token, nil
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(loginTimeout):
		return "", errors.New("timed out waiting for login callback")
	}
}

// callbackHandler accepts the first token delivered to /callback and
// ignores any later ones; a callback without a token is a 400.
func callbackHandler(tokens chan<- string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/callback" {
			http.NotFound(w, r)
			return
		}
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing token parameter", http.StatusBadRequest)
			return
		}
		select {
		case tokens <- token:
			fmt.Fprintln(w, "Signed in. You can close this window.")
		default:
			fmt.Fprintln(w, "Already signed in.")
		}
	})
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().String("token", "", "use this token instead of the browser flow")
}
