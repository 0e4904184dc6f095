package infrastructure

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Point is one labelled value of a chart.
type Point struct {
	Label string
	Value float64
}

var ErrTooFewPoints = errors.New("not enough points for chart")

// ChartPainter draws the PNG charts embedded in portfolios.
type ChartPainter struct{}

func NewChartPainter() *ChartPainter { return &ChartPainter{} }

// Radar draws a radar chart of values on a 0..100 scale. It needs at least
// three points.
func (ChartPainter) Radar(points []Point, color, path string) error {
	if len(points) < 3 {
		return fmt.Errorf("radar: %d points: %w", len(points), ErrTooFewPoints)
	}
	c, err := colorful.Hex(color)
	if err != nil {
		return err
	}

	const size = 400
	const radius = 140.0
	dc := gg.NewContext(size, size)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	cx, cy := size/2.0, size/2.0
	n := len(points)
	angle := func(i int) float64 {
		return -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
	}

	dc.SetRGB(0.8, 0.8, 0.8)
	dc.SetLineWidth(1)
	for _, ring := range []float64{25, 50, 75, 100} {
		r := radius * ring / 100
		for i := 0; i < n; i++ {
			dc.LineTo(cx+r*math.Cos(angle(i)), cy+r*math.Sin(angle(i)))
		}
		dc.ClosePath()
		dc.Stroke()
	}
	for i := 0; i < n; i++ {
		dc.DrawLine(cx, cy, cx+radius*math.Cos(angle(i)), cy+radius*math.Sin(angle(i)))
		dc.Stroke()
	}

	for i, p := range points {
		v := math.Max(0, math.Min(100, p.Value))
		r := radius * v / 100
		dc.LineTo(cx+r*math.Cos(angle(i)), cy+r*math.Sin(angle(i)))
	}
	dc.ClosePath()
	dc.SetRGBA(c.R, c.G, c.B, 0.3)
	dc.FillPreserve()
	dc.SetRGB(c.R, c.G, c.B)
	dc.SetLineWidth(5)
	dc.Stroke()

	dc.SetRGB(0.2, 0.2, 0.2)
	for i, p := range points {
		lx := cx + (radius+28)*math.Cos(angle(i))
		ly := cy + (radius+28)*math.Sin(angle(i))
		dc.DrawStringAnchored(p.Label, lx, ly, 0.5, 0.5)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return dc.SavePNG(path)
}

// Bar draws a bar chart of skill counts.
func (ChartPainter) Bar(points []Point, color, path string) error {
	if len(points) == 0 {
		return fmt.Errorf("bar: %w", ErrTooFewPoints)
	}
	c, err := colorful.Hex(color)
	if err != nil {
		return err
	}

	fill := toDrawing(c)
	maxV := 0.0
	bars := make([]chart.Value, 0, len(points))
	for _, p := range points {
		maxV = math.Max(maxV, p.Value)
		bars = append(bars, chart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		})
	}

	graph := chart.BarChart{
		Title:    "Habilidades",
		Width:    600,
		Height:   300,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxV + 1},
		},
		Bars: bars,
	}
	return writeChart(path, graph.Render)
}

// Donut draws the small ring chart used on registry cards: each slice shows
// its count and carries its label outside the ring, the hole shows the total.
// Slices cycle through the palette.
func (ChartPainter) Donut(points []Point, palette []string, path string) error {
	total := 0.0
	for _, p := range points {
		total += math.Max(0, p.Value)
	}
	if total == 0 {
		return fmt.Errorf("donut: %w", ErrTooFewPoints)
	}
	colors := make([]colorful.Color, 0, len(palette))
	for _, h := range palette {
		c, err := colorful.Hex(h)
		if err != nil {
			return err
		}
		colors = append(colors, c)
	}
	if len(colors) == 0 {
		colors = append(colors, colorful.Color{R: 0.2, G: 0.6, B: 0.86})
	}

	const width, height = 240, 180
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	cx, cy, r := width/2.0, height/2.0, 60.0
	hole := r * 0.6

	type slice struct {
		mid   float64
		point Point
	}
	var slices []slice
	start := -math.Pi / 2
	for i, p := range points {
		if p.Value <= 0 {
			continue
		}
		end := start + 2*math.Pi*p.Value/total
		c := colors[i%len(colors)]
		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, r, start, end)
		dc.ClosePath()
		dc.SetRGB(c.R, c.G, c.B)
		dc.Fill()
		slices = append(slices, slice{mid: (start + end) / 2, point: p})
		start = end
	}
	dc.SetRGB(1, 1, 1)
	dc.DrawCircle(cx, cy, hole)
	dc.Fill()

	for _, s := range slices {
		cos, sin := math.Cos(s.mid), math.Sin(s.mid)
		mr := (r + hole) / 2
		dc.SetRGB(1, 1, 1)
		dc.DrawStringAnchored(fmt.Sprintf("%.0f", s.point.Value), cx+mr*cos, cy+mr*sin, 0.5, 0.5)
		dc.SetHexColor("#2c3e50")
		dc.DrawStringAnchored(s.point.Label, cx+(r+12)*cos, cy+(r+12)*sin, 0.5-0.5*cos, 0.5)
	}

	dc.SetHexColor("#2c3e50")
	dc.DrawStringAnchored(fmt.Sprintf("%.0f", total), cx, cy-7, 0.5, 0.5)
	dc.DrawStringAnchored("Skills", cx, cy+7, 0.5, 0.5)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return dc.SavePNG(path)
}

// Shade scales the brightness of a hex color by f and returns it as hex.
func Shade(hex string, f float64) (string, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "", err
	}
	return colorful.Color{R: c.R * f, G: c.G * f, B: c.B * f}.Clamped().Hex(), nil
}

func toDrawing(c colorful.Color) drawing.Color {
	r, g, b := c.RGB255()
	return drawing.Color{R: r, G: g, B: b, A: 255}
}

func writeChart(path string, render func(chart.RendererProvider, io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(chart.PNG, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
