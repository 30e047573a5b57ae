// ABOUTME: Open command launching an item's link in the default browser
// ABOUTME: Also hosts the platform-specific browser helper used by login

package main

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/rhajizada/gazette-cli/internal/render"
)

var openCmd = &cobra.Command{
	Use:   "open <item-id>",
	Short: "Open an item's link in the browser",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireClient(); err != nil {
			return err
		}

		itemID, err := entityID(args[0])
		if err != nil {
			return err
		}

		item, err := client.GetItem(cmd.Context(), itemID)
		if err != nil {
			return apiFailure(err)
		}
		if item.Link == "" {
			return fmt.Errorf("item has no link")
		}

		parsedURL, err := url.Parse(item.Link)
		if err != nil {
			return fmt.Errorf("item has malformed link: %w", err)
		}
		if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			return fmt.Errorf("item link must be http or https, got: %s", parsedURL.Scheme)
		}

		if err := openBrowser(parsedURL.String()); err != nil {
			return fmt.Errorf("failed to open browser: %w", err)
		}

		title := item.Title
		if title == "" {
			title = "Untitled"
		}
		render.Success("opened %s", title)
		return nil
	},
}

// openBrowser opens a URL in the default browser for the current platform
func openBrowser(urlStr string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", urlStr)
	case "linux":
		cmd = exec.Command("xdg-open", urlStr)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", urlStr)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}

	// Reap the process asynchronously to prevent zombie processes
	go cmd.Wait()

	return nil
}

func init() {
	rootCmd.AddCommand(openCmd)
}
