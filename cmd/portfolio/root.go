package main

import (
	"fmt"
	"os"

	"portfolio-generator/internal/config"
	"portfolio-generator/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cli/browser"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Build a professional PDF portfolio",
	Long: `portfolio collects your profile, education, experience and skills,
lets you pick the theme colors and renders everything into a PDF.

Run without arguments to start the terminal wizard.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		// the wizard owns the terminal, so logs go to a file
		logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer logFile.Close()

		c := newContainer(cmd.Context(), cfg, logFile)
		defer c.Close()

		app := tui.New(tui.Deps{
			Session:   c.session,
			Runner:    c.runner,
			Generator: c.processor,
			Cards:     c.cards,
			Open:      browser.OpenFile,
		})
		_, err = tea.NewProgram(app, tea.WithAltScreen()).Run()
		return err
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
