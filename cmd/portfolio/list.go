package main

import (
	"fmt"
	"os"
	"strings"

	"portfolio-generator/internal/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	nameStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered portfolios",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		c := newContainer(cmd.Context(), cfg, os.Stderr)
		defer c.Close()

		out := cmd.OutOrStdout()
		cards := c.cards.Build(c.session.Portfolios())
		if len(cards) == 0 {
			fmt.Fprintln(out, "Nenhum portfólio registrado ainda.")
			return nil
		}
		for _, card := range cards {
			fmt.Fprintf(out, "%s · %s\n", nameStyle.Render(orDefault(card.Name, "Sem nome")), orDefault(card.Profile.Title, "Sem título"))
			fmt.Fprintf(out, "  📧 %s\n", orDefault(card.Email, "Sem email"))
			if card.Education != "" {
				fmt.Fprintf(out, "  🎓 %s\n", card.Education)
			}
			if len(card.Badges) > 0 {
				fmt.Fprintf(out, "  %s\n", strings.Join(card.Badges, ", "))
			}
			fmt.Fprintf(out, "  📅 %s\n", orDefault(card.CreatedAt, "Data desconhecida"))
			if card.ChartPath != "" {
				fmt.Fprintln(out, mutedStyle.Render("  "+card.ChartPath))
			}
		}
		return nil
	},
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func init() {
	rootCmd.AddCommand(listCmd)
}
