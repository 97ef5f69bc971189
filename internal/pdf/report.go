package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"freetrack/internal/pipeline"
)

// Generator renders pipeline reports to disk (interface kept small so tests
// can stub it out).
type Generator interface {
	GeneratePipelineReport(data ReportData) (string, error)
}

type ReportData struct {
	Role       string
	ClientName string
	DailyRate  int
	WorkMode   string
	TechStack  string
	Progress   int
	Steps      []ReportStep
	Filename   string // without path; generated when empty
}

type ReportStep struct {
	Stage       pipeline.Stage
	Status      pipeline.Status
	ScheduledAt *time.Time
	Notes       string
}

type DocumentGenerator struct {
	RootDir  string
	FontPath string // TTF with full latin coverage, e.g. assets/fonts/DejaVuSans.ttf
	fontName string
}

func NewDocumentGenerator(rootDir, fontPath string) *DocumentGenerator {
	return &DocumentGenerator{
		RootDir:  filepath.Clean(rootDir),
		FontPath: fontPath,
		fontName: "DejaVu",
	}
}

func (g *DocumentGenerator) setupFont(p *gofpdf.Fpdf) string {
	if g.FontPath != "" {
		if _, err := os.Stat(g.FontPath); err == nil {
			p.AddUTF8Font(g.fontName, "", g.FontPath)
			return g.fontName
		}
	}
	return "Helvetica"
}

// GeneratePipelineReport writes a one-page summary of a mission's pipeline
// and returns the file path.
func (g *DocumentGenerator) GeneratePipelineReport(data ReportData) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("report dir: %w", err)
	}
	name := data.Filename
	if name == "" {
		name = fmt.Sprintf("pipeline_%s_%d.pdf", time.Now().Format("20060102"), time.Now().UnixNano())
	}
	path := filepath.Join(g.RootDir, filepath.Base(name))

	p := gofpdf.New("P", "mm", "A4", "")
	font := g.setupFont(p)
	p.AddPage()

	p.SetFont(font, "", 18)
	p.CellFormat(0, 10, fmt.Sprintf("%s @ %s", data.Role, data.ClientName), "", 1, "L", false, 0, "")

	p.SetFont(font, "", 11)
	p.CellFormat(0, 7, fmt.Sprintf("Daily rate: %d    Work mode: %s", data.DailyRate, data.WorkMode), "", 1, "L", false, 0, "")
	p.CellFormat(0, 7, fmt.Sprintf("Stack: %s", data.TechStack), "", 1, "L", false, 0, "")
	p.CellFormat(0, 7, fmt.Sprintf("Progress: %d%%", data.Progress), "", 1, "L", false, 0, "")
	p.Ln(4)

	p.SetFont(font, "", 12)
	p.CellFormat(70, 8, "Stage", "B", 0, "L", false, 0, "")
	p.CellFormat(45, 8, "Status", "B", 0, "L", false, 0, "")
	p.CellFormat(0, 8, "Date", "B", 1, "L", false, 0, "")

	p.SetFont(font, "", 11)
	for _, step := range data.Steps {
		date := "-"
		if step.ScheduledAt != nil {
			date = step.ScheduledAt.Format("2006-01-02 15:04")
		}
		p.CellFormat(70, 8, string(step.Stage), "", 0, "L", false, 0, "")
		p.CellFormat(45, 8, step.Status.Label(), "", 0, "L", false, 0, "")
		p.CellFormat(0, 8, date, "", 1, "L", false, 0, "")
		if step.Notes != "" {
			p.SetFont(font, "", 9)
			p.MultiCell(0, 5, step.Notes, "", "L", false)
			p.SetFont(font, "", 11)
		}
	}

	p.Ln(6)
	p.SetFont(font, "", 9)
	p.CellFormat(0, 6, "Generated "+time.Now().Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")

	if err := p.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write report pdf: %w", err)
	}
	return path, nil
}
