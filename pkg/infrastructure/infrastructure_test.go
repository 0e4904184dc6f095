package infrastructure

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T, dir string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, "foto.png")
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	require.NoError(t, imaging.Save(img, path))
	return path
}

func TestThumbnailFitsBounds(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir, 600, 300)
	dst := filepath.Join(dir, "uploads", "processed_profile_pic.png")

	require.NoError(t, NewPhotoProcessor().Thumbnail(src, dst))

	img, err := imaging.Open(dst)
	require.NoError(t, err)
	assert.Equal(t, 150, img.Bounds().Dx())
	assert.Equal(t, 75, img.Bounds().Dy())
}

func TestThumbnailRejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "notes.png")
	require.NoError(t, os.WriteFile(src, []byte("plain text"), 0o644))

	err := NewPhotoProcessor().Thumbnail(src, filepath.Join(dir, "out.png"))
	require.Error(t, err)
}

func TestImportCopiesIntoDir(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir, 20, 20)
	uploads := filepath.Join(dir, "uploads")

	got, err := NewPhotoProcessor().Import(src, uploads)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(uploads, "foto.png"), got)
	assert.FileExists(t, got)

	again, err := NewPhotoProcessor().Import(got, uploads)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestImportRejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "cv.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0o644))

	_, err := NewPhotoProcessor().Import(src, filepath.Join(dir, "uploads"))
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "uploads", "cv.txt"))
}

func TestRadarNeedsThreePoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radar.png")
	err := NewChartPainter().Radar([]Point{{"Frontend", 100}, {"Backend", 50}}, "#3498db", path)
	require.ErrorIs(t, err, ErrTooFewPoints)
	assert.NoFileExists(t, path)
}

func TestChartsWritePNG(t *testing.T) {
	dir := t.TempDir()
	points := []Point{{"Frontend", 100}, {"Backend", 50}, {"Soft", 25}}
	painter := NewChartPainter()

	radar := filepath.Join(dir, "charts", "radar_chart.png")
	require.NoError(t, painter.Radar(points, "#3498db", radar))

	bar := filepath.Join(dir, "charts", "bar_chart.png")
	require.NoError(t, painter.Bar([]Point{{"Frontend", 3}}, "#3498db", bar))

	donut := filepath.Join(dir, "charts", "mini_chart_abc.png")
	require.NoError(t, painter.Donut(points, []string{"#3498db", "#246a99", "#1a4c6d"}, donut))

	for _, p := range []string{radar, bar, donut} {
		b, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(b), "\x89PNG"), p)
	}
}

func TestDonutLabelsTotal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mini.png")
	require.NoError(t, NewChartPainter().Donut([]Point{{"Frontend", 4}, {"Soft", 2}}, []string{"#3498db"}, path))

	img, err := imaging.Open(path)
	require.NoError(t, err)
	b := img.Bounds()
	require.Equal(t, 240, b.Dx())
	require.Equal(t, 180, b.Dy())

	// the hole is white apart from the "6 Skills" text
	dark := 0
	for y := b.Dy()/2 - 15; y <= b.Dy()/2+15; y++ {
		for x := b.Dx()/2 - 20; x <= b.Dx()/2+20; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r < 0x8000 {
				dark++
			}
		}
	}
	assert.Positive(t, dark)

	r, g, bl, _ := img.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff}, []uint32{r, g, bl})
}

func TestDonutWithoutValues(t *testing.T) {
	err := NewChartPainter().Donut([]Point{{"Frontend", 0}}, nil, filepath.Join(t.TempDir(), "d.png"))
	require.ErrorIs(t, err, ErrTooFewPoints)
}

func TestShade(t *testing.T) {
	got, err := Shade("#ffffff", 0.5)
	require.NoError(t, err)
	assert.Equal(t, "#808080", got)

	got, err = Shade("#3498db", 1)
	require.NoError(t, err)
	assert.Equal(t, "#3498db", got)

	_, err = Shade("azul", 1)
	require.Error(t, err)
}

func TestWithBaseInjectsIntoHead(t *testing.T) {
	dir := t.TempDir()
	got, err := withBase("<html><head><title>x</title></head></html>", dir)
	require.NoError(t, err)
	assert.Contains(t, got, `<head><base href="file://`)
	assert.Contains(t, got, filepath.ToSlash(dir)+`/">`)

	got, err = withBase("<p>sem head</p>", dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "<base "))
}
