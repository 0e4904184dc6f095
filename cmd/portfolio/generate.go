package main

import (
	"fmt"
	"os"

	"portfolio-generator/internal/config"

	"github.com/cli/browser"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render the PDF from the current draft or a registered portfolio",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		c := newContainer(cmd.Context(), cfg, os.Stderr)
		defer c.Close()

		if email, _ := cmd.Flags().GetString("email"); email != "" {
			if _, err := c.session.LoadPortfolio(email); err != nil {
				return fmt.Errorf("load %s: %w", email, err)
			}
		}

		res, err := c.processor.Process(cmd.Context(), c.session.Snapshot())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "PDF: %s\n", res.PDFPath)
		fmt.Fprintf(out, "HTML: %s\n", res.HTMLPath)
		if res.PreviewPath != "" {
			fmt.Fprintf(out, "Preview: %s\n", res.PreviewPath)
		}
		for _, w := range res.Warnings {
			fmt.Fprintf(out, "warning: %s\n", w)
		}

		if open, _ := cmd.Flags().GetBool("open"); open {
			return browser.OpenFile(res.PDFPath)
		}
		return nil
	},
}

var htmlCmd = &cobra.Command{
	Use:   "html",
	Short: "Render only the HTML of the current draft, without Chrome",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		c := newContainer(cmd.Context(), cfg, os.Stderr)
		defer c.Close()

		html, err := c.processor.RenderHTML(c.session.Snapshot())
		if err != nil {
			return err
		}
		outFile, _ := cmd.Flags().GetString("out")
		if outFile == "" || outFile == "-" {
			_, err = fmt.Fprint(cmd.OutOrStdout(), html)
			return err
		}
		if err := os.WriteFile(outFile, []byte(html), 0o644); err != nil {
			return fmt.Errorf("write html: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outFile)
		return nil
	},
}

func init() {
	generateCmd.Flags().String("email", "", "load the registered portfolio with this email before rendering")
	generateCmd.Flags().Bool("open", false, "open the PDF when done")
	htmlCmd.Flags().StringP("out", "o", "-", "output file, - for stdout")
	rootCmd.AddCommand(generateCmd, htmlCmd)
}
