package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"portfolio-generator/internal/adapter/repository"
	"portfolio-generator/internal/domain"
	"portfolio-generator/internal/model"
	"portfolio-generator/internal/store"
	"portfolio-generator/pkg/infrastructure"

	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	mu      sync.Mutex
	outputs [][]byte
	errs    []error
	calls   int
	baseDir string
	html    string
}

func (f *fakeRenderer) RenderHTMLToPDF(_ context.Context, html, baseDir string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	f.baseDir, f.html = baseDir, html
	var out []byte
	var err error
	if i < len(f.outputs) {
		out = f.outputs[i]
	} else if len(f.outputs) > 0 {
		out = f.outputs[len(f.outputs)-1]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return out, err
}

type fakePreviewer struct {
	err error
}

func (f fakePreviewer) RenderFirstPage(_, outPath string) error {
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outPath, []byte("png"), 0o644)
}

type chartCall struct {
	Kind    string
	Points  []infrastructure.Point
	Color   string
	Palette []string
	Path    string
}

type fakeCharts struct {
	calls []chartCall
	err   error
}

func (f *fakeCharts) Radar(points []infrastructure.Point, color, path string) error {
	f.calls = append(f.calls, chartCall{Kind: "radar", Points: points, Color: color, Path: path})
	return f.err
}

func (f *fakeCharts) Bar(points []infrastructure.Point, color, path string) error {
	f.calls = append(f.calls, chartCall{Kind: "bar", Points: points, Color: color, Path: path})
	return f.err
}

func (f *fakeCharts) Donut(points []infrastructure.Point, palette []string, path string) error {
	f.calls = append(f.calls, chartCall{Kind: "donut", Points: points, Palette: palette, Path: path})
	return f.err
}

func (f *fakeCharts) kinds() []string {
	out := []string{}
	for _, c := range f.calls {
		out = append(out, c.Kind)
	}
	return out
}

type fakePhotos struct {
	imported []string
	thumbErr error
}

var errNotImage = errors.New("not an image")

// Import accepts files ending in .png.
func (f *fakePhotos) Import(src, dir string) (string, error) {
	if filepath.Ext(src) != ".png" {
		return "", errNotImage
	}
	f.imported = append(f.imported, src)
	return filepath.Join(dir, filepath.Base(src)), nil
}

func (f *fakePhotos) Thumbnail(src, dst string) error {
	if f.thumbErr != nil {
		return f.thumbErr
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, []byte("thumb"), 0o644)
}

type fakeJobs struct {
	saved []domain.GenerationJob
}

func (f *fakeJobs) Save(_ context.Context, j *domain.GenerationJob) error {
	f.saved = append(f.saved, *j)
	return nil
}

type sessionEnv struct {
	dir      string
	drafts   *repository.DraftRepo
	registry *repository.Registry
	photos   *fakePhotos
}

func newSessionEnv(t *testing.T) sessionEnv {
	t.Helper()
	dir := t.TempDir()
	return sessionEnv{
		dir:      dir,
		drafts:   repository.NewDraftRepo(store.New(filepath.Join(dir, "portfolio_data.json"), model.ShapeObject, nil), nil),
		registry: repository.NewRegistry(store.New(filepath.Join(dir, "portfolios_registrados.json"), model.ShapeList, nil), nil),
		photos:   &fakePhotos{},
	}
}

func (e sessionEnv) session() *Session {
	return NewSession(e.drafts, e.registry, e.photos, filepath.Join(e.dir, "uploads"), nil)
}

const testTemplate = `<!DOCTYPE html>
<html><head><title>{{.Dados.Name}}</title></head>
<body style="--primary: {{.Design.Primary}}">
<h1>{{.Dados.Name}}</h1><h2>{{.Dados.Title}}</h2>
{{if .Dados.Photo}}<img class="foto" src="{{.Dados.Photo}}">{{end}}
{{if .Dados.LinkedIn}}<a href="{{.Dados.LinkedInURL}}">{{.Dados.LinkedInLabel}}</a>{{end}}
{{range .Dados.EducationList}}<p class="edu">{{.curso}}</p>{{end}}
{{range .Dados.ExperienceList}}<p class="exp">{{.cargo}}</p>{{end}}
{{if .Dados.RadarChart}}<img class="radar" src="{{.Dados.RadarChart}}">{{end}}
</body></html>`

func writeTemplates(t *testing.T, dir string, css string) string {
	t.Helper()
	tplDir := filepath.Join(dir, "templates")
	require.NoError(t, os.MkdirAll(tplDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tplDir, TemplateFile), []byte(testTemplate), 0o644))
	if css != "" {
		require.NoError(t, os.WriteFile(filepath.Join(tplDir, StylesheetFile), []byte(css), 0o644))
	}
	return tplDir
}
