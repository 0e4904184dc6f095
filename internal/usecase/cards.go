package usecase

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path/filepath"

	"portfolio-generator/internal/domain"
	"portfolio-generator/pkg/infrastructure"
)

// Card is the summary of one registry entry shown in portfolio lists.
type Card struct {
	domain.Portfolio
	Education string   `json:"education"`
	Badges    []string `json:"badges"`
	ChartPath string   `json:"chart_path,omitempty"`
}

// CardBuilder turns registry entries into cards with donut chart thumbnails.
type CardBuilder struct {
	charts   ChartPainter
	chartDir string
	log      *slog.Logger
}

func NewCardBuilder(charts ChartPainter, chartDir string, logger *slog.Logger) *CardBuilder {
	if logger == nil {
		logger = slog.Default()
	}
	return &CardBuilder{charts: charts, chartDir: chartDir, log: logger}
}

func (b *CardBuilder) Build(entries []domain.Portfolio) []Card {
	out := make([]Card, 0, len(entries))
	for _, p := range entries {
		out = append(out, b.card(p))
	}
	return out
}

func (b *CardBuilder) card(p domain.Portfolio) Card {
	c := Card{Portfolio: p, Badges: p.Badges()}
	if edu := p.EducationRecords(); len(edu) > 0 {
		c.Education = edu[0]["curso"]
		if inst := edu[0]["instituicao"]; inst != "" {
			if c.Education != "" {
				c.Education += " - "
			}
			c.Education += inst
		}
	}

	counts := p.SkillCounts()
	if len(counts) == 0 || b.charts == nil {
		return c
	}
	path := filepath.Join(b.chartDir, MiniChartName(p.Email))
	palette, err := Palette(p.Design.WithDefaults().Primary)
	if err != nil {
		b.log.Warn("invalid card color, using default", "email", p.Email, "error", err)
		palette, _ = Palette(domain.DefaultDesign().Primary)
	}
	if err := b.charts.Donut(countPoints(counts), palette, path); err != nil {
		b.log.Warn("card chart skipped", "email", p.Email, "error", err)
		return c
	}
	c.ChartPath = path
	return c
}

// MiniChartName is the thumbnail file name for an entry, derived from the
// email ("default" when empty).
func MiniChartName(email string) string {
	if email == "" {
		email = "default"
	}
	sum := md5.Sum([]byte(email))
	return fmt.Sprintf("mini_chart_%s.png", hex.EncodeToString(sum[:])[:8])
}

// Palette returns the color at full, 70% and 50% brightness.
func Palette(primary string) ([]string, error) {
	out := make([]string, 0, 3)
	for _, f := range []float64{1, 0.7, 0.5} {
		c, err := infrastructure.Shade(primary, f)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
