// ABOUTME: Cobra command for interactive gazette configuration.
// ABOUTME: Launches a bubbletea TUI wizard to set server URL and page size.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rhajizada/gazette-cli/internal/config"
	"github.com/rhajizada/gazette-cli/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure the gazette client",
	Long:  "Interactive wizard to configure the server URL and page size.",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	model := tui.NewSetupModel(cfg.BaseURL, cfg.PageSize)

	p := tea.NewProgram(model)
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.SetupModel)
	if !final.ShouldSave() {
		fmt.Println("Setup canceled.")
		return nil
	}

	serverURL, pageSize := final.Result()
	cfg.BaseURL = serverURL
	cfg.PageSize = pageSize

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Config saved to %s\n", config.GetConfigPath())
	return nil
}
