package usecase

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"portfolio-generator/internal/domain"
	"portfolio-generator/internal/section"
	"portfolio-generator/pkg/infrastructure"

	"golang.org/x/net/publicsuffix"
)

const (
	TemplateFile     = "portfolio_template.html"
	StylesheetFile   = "style.css"
	HTMLOutputFile   = "output_portfolio.html"
	PDFOutputFile    = "portfolio_profissional.pdf"
	PreviewFile      = "preview.png"
	ProcessedPhoto   = "processed_profile_pic.png"
	RadarChartFile   = "radar_chart.png"
	BarChartFile     = "bar_chart.png"
	renderAttempts   = 3
	minRadarCategory = 3
)

type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html, baseDir string) ([]byte, error)
}

type Previewer interface {
	RenderFirstPage(pdfPath, outPath string) error
}

type ChartPainter interface {
	Radar(points []infrastructure.Point, color, path string) error
	Bar(points []infrastructure.Point, color, path string) error
	Donut(points []infrastructure.Point, palette []string, path string) error
}

type PhotoThumbnailer interface {
	Thumbnail(src, dst string) error
}

type JobsRepo interface {
	Save(ctx context.Context, j *domain.GenerationJob) error
}

// Paths locates the template, output and upload directories.
type Paths struct {
	TemplateDir string
	OutputDir   string
	UploadDir   string
}

func (p Paths) ChartDir() string { return filepath.Join(p.UploadDir, "charts") }

func (p Paths) PDF() string { return filepath.Join(p.OutputDir, PDFOutputFile) }

func (p Paths) HTML() string { return filepath.Join(p.OutputDir, HTMLOutputFile) }

func (p Paths) Preview() string { return filepath.Join(p.OutputDir, PreviewFile) }

// Result lists the artifacts of one generation.
type Result struct {
	HTMLPath    string   `json:"html_path"`
	PDFPath     string   `json:"pdf_path"`
	PreviewPath string   `json:"preview_path,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}

type Processor struct {
	renderer  Renderer
	previewer Previewer
	charts    ChartPainter
	photos    PhotoThumbnailer
	repo      JobsRepo
	paths     Paths
	log       *slog.Logger
	backoff   func(attempt int) time.Duration
}

func NewProcessor(r Renderer, pv Previewer, ch ChartPainter, ph PhotoThumbnailer, repo JobsRepo, paths Paths, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		renderer:  r,
		previewer: pv,
		charts:    ch,
		photos:    ph,
		repo:      repo,
		paths:     paths,
		log:       logger,
		backoff: func(attempt int) time.Duration {
			return time.Duration(1<<attempt) * time.Second
		},
	}
}

// portfolioView is what the template sees as .Dados.
type portfolioView struct {
	domain.Profile

	Photo          template.URL
	LinkedInURL    template.URL
	LinkedInLabel  string
	InstagramURL   template.URL
	InstagramLabel string
	EducationList  []section.Record
	ExperienceList []section.Record
	RadarChart     template.URL
	BarChart       template.URL
}

type designView struct {
	Primary   template.CSS
	Secondary template.CSS
}

// Process renders the snapshot to HTML and PDF. Photo, chart, preview and
// run log failures only add warnings; template and PDF failures fail the run.
func (p *Processor) Process(ctx context.Context, snap Snapshot) (Result, error) {
	job := domain.NewGenerationJob(snap.Profile, time.Now())
	res, err := p.process(ctx, snap)

	job.Status = domain.JobCompleted
	job.Metadata["generated_html"] = res.HTMLPath
	job.Metadata["generated_pdf"] = res.PDFPath
	job.Metadata["warnings"] = res.Warnings
	if err != nil {
		job.Status = domain.JobFailed
		job.Metadata["error"] = err.Error()
	}
	job.UpdatedAt = time.Now()
	if p.repo != nil {
		if serr := p.repo.Save(ctx, job); serr != nil {
			p.log.Warn("failed to record generation", "job_id", job.ID, "error", serr)
		}
	}
	return res, err
}

func (p *Processor) process(ctx context.Context, snap Snapshot) (Result, error) {
	var res Result
	warn := func(msg string, err error) {
		p.log.Warn(msg, "error", err)
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %v", msg, err))
	}

	profile := snap.Profile
	design := snap.Design.WithDefaults()
	view := portfolioView{
		Profile:        profile,
		EducationList:  profile.EducationRecords(),
		ExperienceList: profile.ExperienceRecords(),
	}

	if src := profile.Photo(); src != "" {
		dst := filepath.Join(p.paths.UploadDir, ProcessedPhoto)
		if err := p.photos.Thumbnail(src, dst); err != nil {
			// an unusable photo is dropped from the document
			p.log.Info("photo skipped", "path", src, "error", err)
		} else if u, err := fileURL(dst); err == nil {
			view.Photo = u
		}
	}

	view.LinkedIn = withScheme(profile.LinkedIn)
	view.LinkedInURL, view.LinkedInLabel = linkView(view.LinkedIn)
	view.Instagram = withScheme(profile.Instagram)
	view.InstagramURL, view.InstagramLabel = linkView(view.Instagram)

	counts := profile.SkillCounts()
	if len(counts) >= minRadarCategory {
		path := filepath.Join(p.paths.ChartDir(), RadarChartFile)
		if err := p.charts.Radar(radarPoints(counts), design.Primary, path); err != nil {
			warn("radar chart skipped", err)
		} else if u, err := fileURL(path); err == nil {
			view.RadarChart = u
		}
	}
	if len(counts) > 0 {
		path := filepath.Join(p.paths.ChartDir(), BarChartFile)
		if err := p.charts.Bar(countPoints(counts), design.Primary, path); err != nil {
			warn("bar chart skipped", err)
		} else if u, err := fileURL(path); err == nil {
			view.BarChart = u
		}
	}

	html, err := p.renderHTML(view, design)
	if err != nil {
		return res, err
	}

	// save HTML artifact before rendering so it's preserved even if rendering fails
	if err := os.MkdirAll(p.paths.OutputDir, 0o755); err != nil {
		return res, err
	}
	if err := os.WriteFile(p.paths.HTML(), []byte(html), 0o644); err != nil {
		return res, fmt.Errorf("save html: %w", err)
	}
	res.HTMLPath = p.paths.HTML()

	pdfBytes, err := p.renderPDF(ctx, html)
	if err != nil {
		return res, err
	}
	if err := os.WriteFile(p.paths.PDF(), pdfBytes, 0o644); err != nil {
		return res, fmt.Errorf("save pdf: %w", err)
	}
	res.PDFPath = p.paths.PDF()
	p.log.Info("portfolio generated", "pdf", res.PDFPath, "bytes", len(pdfBytes))

	if p.previewer != nil {
		if err := p.previewer.RenderFirstPage(res.PDFPath, p.paths.Preview()); err != nil {
			warn("preview skipped", err)
		} else {
			res.PreviewPath = p.paths.Preview()
		}
	}
	return res, nil
}

// RenderHTML produces the final HTML for snap without generating charts,
// photos or a PDF.
func (p *Processor) RenderHTML(snap Snapshot) (string, error) {
	view := portfolioView{
		Profile:        snap.Profile,
		EducationList:  snap.Profile.EducationRecords(),
		ExperienceList: snap.Profile.ExperienceRecords(),
	}
	view.LinkedIn = withScheme(view.LinkedIn)
	view.LinkedInURL, view.LinkedInLabel = linkView(view.LinkedIn)
	view.Instagram = withScheme(view.Instagram)
	view.InstagramURL, view.InstagramLabel = linkView(view.Instagram)
	return p.renderHTML(view, snap.Design.WithDefaults())
}

func (p *Processor) renderHTML(view portfolioView, design domain.Design) (string, error) {
	tplPath := filepath.Join(p.paths.TemplateDir, TemplateFile)
	tpl, err := template.ParseFiles(tplPath)
	if err != nil {
		return "", fmt.Errorf("load template: %w", err)
	}

	var buf bytes.Buffer
	data := map[string]interface{}{
		"Dados":  view,
		"Design": designView{Primary: template.CSS(design.Primary), Secondary: template.CSS(design.Secondary)},
	}
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	html := buf.String()

	// Inline local stylesheet so the saved HTML shows styling
	css, err := os.ReadFile(filepath.Join(p.paths.TemplateDir, StylesheetFile))
	if err != nil {
		p.log.Debug("no stylesheet to inline", "error", err)
		return html, nil
	}
	cssBlock := "<style>" + string(css) + "</style>"
	if i := strings.Index(strings.ToLower(html), "<head>"); i >= 0 {
		i += len("<head>")
		html = html[:i] + cssBlock + html[i:]
	} else {
		html = cssBlock + html
	}
	return html, nil
}

// renderPDF tries the renderer up to renderAttempts times with exponential
// backoff. Output must carry the PDF signature.
func (p *Processor) renderPDF(ctx context.Context, html string) ([]byte, error) {
	var renderErr error
	for i := 0; i < renderAttempts; i++ {
		pdfBytes, err := p.renderer.RenderHTMLToPDF(ctx, html, p.paths.TemplateDir)
		if err == nil {
			if bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
				return pdfBytes, nil
			}
			err = fmt.Errorf("invalid PDF output (len=%d)", len(pdfBytes))
		}
		renderErr = err
		p.log.Warn("render attempt failed", "attempt", i+1, "error", err)

		if i < renderAttempts-1 {
			select {
			case <-time.After(p.backoff(i)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("render pdf after %d attempts: %w", renderAttempts, renderErr)
}

// withScheme prefixes https:// to links typed without a scheme.
func withScheme(link string) string {
	link = strings.TrimSpace(link)
	if link == "" || strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	return "https://" + link
}

// linkView returns the link as a template URL and a short label: the
// registrable domain followed by the path, e.g. "linkedin.com/in/ana".
func linkView(link string) (template.URL, string) {
	if link == "" {
		return "", ""
	}
	parsed, err := url.Parse(link)
	if err != nil || parsed.Hostname() == "" {
		return template.URL(link), link
	}
	host := parsed.Hostname()
	label := strings.TrimPrefix(host, "www.")
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		label = etld
	}
	label += strings.TrimSuffix(parsed.EscapedPath(), "/")
	return template.URL(parsed.String()), label
}

func fileURL(path string) (template.URL, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return template.URL(u.String()), nil
}

// radarPoints scales counts to 0..100 against the largest category.
func radarPoints(counts []domain.SkillCount) []infrastructure.Point {
	maxC := 0
	for _, c := range counts {
		if c.Count > maxC {
			maxC = c.Count
		}
	}
	out := make([]infrastructure.Point, 0, len(counts))
	for _, c := range counts {
		v := 0.0
		if maxC > 0 {
			v = float64(c.Count) * 100 / float64(maxC)
		}
		out = append(out, infrastructure.Point{Label: c.Category, Value: v})
	}
	return out
}

func countPoints(counts []domain.SkillCount) []infrastructure.Point {
	out := make([]infrastructure.Point, 0, len(counts))
	for _, c := range counts {
		out = append(out, infrastructure.Point{Label: c.Category, Value: float64(c.Count)})
	}
	return out
}
