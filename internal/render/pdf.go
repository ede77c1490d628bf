package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Spok95/sales-training-backend/internal/models"
	"github.com/go-pdf/fpdf"
)

type Document struct {
	Material *models.TrainingMaterial
	Content  Content
	HTML     string
}

type Converter interface {
	Name() string
	Convert(ctx context.Context, doc Document) ([]byte, error)
}

const wkhtmltopdfBin = "wkhtmltopdf"

// NewConverter: auto берёт wkhtmltopdf из PATH, если он есть, иначе встроенную вёрстку.
func NewConverter(kind string) (Converter, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "auto":
		if path, err := exec.LookPath(wkhtmltopdfBin); err == nil {
			return &WKHTMLConverter{Path: path}, nil
		}
		return &BuiltinConverter{}, nil
	case "wkhtmltopdf":
		path, err := exec.LookPath(wkhtmltopdfBin)
		if err != nil {
			return nil, fmt.Errorf("missing required binary %q in PATH: %w", wkhtmltopdfBin, err)
		}
		return &WKHTMLConverter{Path: path}, nil
	case "builtin":
		return &BuiltinConverter{}, nil
	default:
		return nil, fmt.Errorf("unknown pdf converter %q", kind)
	}
}

// WKHTMLConverter печатает готовый HTML через внешний wkhtmltopdf (stdin -> stdout).
type WKHTMLConverter struct {
	Path string
}

func (w *WKHTMLConverter) Name() string { return "wkhtmltopdf" }

func (w *WKHTMLConverter) Convert(ctx context.Context, doc Document) ([]byte, error) {
	cmd := exec.CommandContext(ctx, w.Path,
		"--quiet",
		"--encoding", "utf-8",
		"--print-media-type",
		"--page-size", "A4",
		"-", "-",
	)
	cmd.Stdin = strings.NewReader(doc.HTML)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("wkhtmltopdf failed: %w; out=%s", err, stderr.String())
	}
	return out.Bytes(), nil
}

// BuiltinConverter раскладывает Content по страницам A4 средствами fpdf, без HTML.
type BuiltinConverter struct{}

func (BuiltinConverter) Name() string { return "builtin" }

var (
	green = [3]int{26, 95, 63}
	light = [3]int{45, 134, 89}
	gray  = [3]int{68, 68, 68}
)

type layout struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (BuiltinConverter) Convert(_ context.Context, doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AliasNbPages("")
	pdf.SetTitle(doc.Material.Title, true)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(gray[0], gray[1], gray[2])
		pdf.CellFormat(0, 6, fmt.Sprintf("Module %d  |  page %d/{nb}", doc.Material.ModuleNumber, pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	l := &layout{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	l.header(doc.Material)
	l.content(doc.Content)

	if err := pdf.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (l *layout) header(m *models.TrainingMaterial) {
	p := l.pdf
	p.SetFillColor(light[0], light[1], light[2])
	p.SetTextColor(255, 255, 255)
	p.SetFont("Helvetica", "B", 10)
	p.CellFormat(0, 8, fmt.Sprintf("MODULE %d", m.ModuleNumber), "", 1, "C", true, 0, "")
	p.SetFont("Helvetica", "B", 20)
	p.MultiCell(0, 10, l.tr(m.Title), "", "C", true)
	if m.Subtitle != "" {
		p.SetFont("Helvetica", "", 12)
		p.MultiCell(0, 7, l.tr(m.Subtitle), "", "C", true)
	}
	p.Ln(6)
}

func (l *layout) content(c Content) {
	if c.CoreConcept != "" {
		l.heading("Core Concept")
		l.para(c.CoreConcept)
	}
	if len(c.Pillars) > 0 {
		l.heading("The Four Pillars")
		for _, p := range c.Pillars {
			l.sub(p.Title)
			l.para(p.Description)
		}
	}
	if len(c.Insights) > 0 {
		l.heading("Key Insights from Top Sales Leaders")
		for _, in := range c.Insights {
			l.sub(in.Leader)
			l.para(in.Quote)
		}
	}
	if len(c.Reframes) > 0 {
		l.heading("Reframing Negative Self-Talk")
		rows := make([][2]string, 0, len(c.Reframes))
		for _, r := range c.Reframes {
			rows = append(rows, [2]string{r.Negative, r.Positive})
		}
		l.table([2]string{"Negative Thought", "Powerful Reframe"}, rows)
	}
	if len(c.Routine) > 0 {
		l.heading("Your Daily Mindset Routine")
		for _, b := range c.Routine {
			l.sub(b.Time)
			l.bullets(b.Activities)
		}
	}
	if c.Commitment != nil {
		l.heading("This Week's Commitment")
		l.para(c.Commitment.Text)
		l.bullets([]string{
			"Prospecting calls/contacts: _____",
			"Conversations: _____",
			"Meetings scheduled: _____",
		})
	}
	if len(c.Remember) > 0 {
		l.heading("Remember")
		l.bullets(c.Remember)
	}
	for _, s := range c.Sections {
		l.heading(s.Title)
		if s.Instructions != "" {
			l.pdf.SetFont("Helvetica", "I", 11)
			l.pdf.MultiCell(0, 6, l.tr(s.Instructions), "", "L", false)
			l.pdf.Ln(2)
		}
		for i, q := range s.Questions {
			l.para(fmt.Sprintf("%d. %s", i+1, q))
			l.pdf.Ln(8)
		}
		if len(s.Activities) > 0 {
			rows := make([][2]string, 0, len(s.Activities))
			for _, a := range s.Activities {
				rows = append(rows, [2]string{a, "_____  x10 = _____"})
			}
			l.table([2]string{"Activity", "What I think / 10X target"}, rows)
		}
		l.bullets(s.Examples)
		l.bullets(s.Template)
		l.bullets(s.DailyTargets)
	}
}

func (l *layout) heading(s string) {
	p := l.pdf
	p.Ln(2)
	p.SetFont("Helvetica", "B", 15)
	p.SetTextColor(green[0], green[1], green[2])
	p.MultiCell(0, 8, l.tr(s), "B", "L", false)
	p.Ln(3)
}

func (l *layout) sub(s string) {
	if s == "" {
		return
	}
	l.pdf.SetFont("Helvetica", "B", 12)
	l.pdf.SetTextColor(green[0], green[1], green[2])
	l.pdf.MultiCell(0, 6, l.tr(s), "", "L", false)
}

func (l *layout) para(s string) {
	if s == "" {
		return
	}
	l.pdf.SetFont("Helvetica", "", 11)
	l.pdf.SetTextColor(gray[0], gray[1], gray[2])
	l.pdf.MultiCell(0, 6, l.tr(s), "", "L", false)
	l.pdf.Ln(2)
}

func (l *layout) bullets(items []string) {
	if len(items) == 0 {
		return
	}
	l.pdf.SetFont("Helvetica", "", 11)
	l.pdf.SetTextColor(gray[0], gray[1], gray[2])
	for _, it := range items {
		l.pdf.MultiCell(0, 6, l.tr("- "+it), "", "L", false)
	}
	l.pdf.Ln(2)
}

// table: две колонки одинаковой ширины, высота строки по самой длинной ячейке.
func (l *layout) table(head [2]string, rows [][2]string) {
	p := l.pdf
	pageW, _ := p.GetPageSize()
	left, _, right, _ := p.GetMargins()
	colW := (pageW - left - right) / 2
	const lineH = 6.0

	p.SetFont("Helvetica", "B", 11)
	p.SetFillColor(green[0], green[1], green[2])
	p.SetTextColor(255, 255, 255)
	p.CellFormat(colW, 8, l.tr(head[0]), "1", 0, "L", true, 0, "")
	p.CellFormat(colW, 8, l.tr(head[1]), "1", 1, "L", true, 0, "")

	p.SetFont("Helvetica", "", 10)
	p.SetTextColor(gray[0], gray[1], gray[2])
	for _, r := range rows {
		a := p.SplitLines([]byte(l.tr(r[0])), colW-2)
		b := p.SplitLines([]byte(l.tr(r[1])), colW-2)
		n := len(a)
		if len(b) > n {
			n = len(b)
		}
		h := float64(n) * lineH
		_, pageH := p.GetPageSize()
		_, _, _, bottom := p.GetMargins()
		if p.GetY()+h > pageH-bottom {
			p.AddPage()
		}
		x, y := p.GetXY()
		p.Rect(x, y, colW, h, "D")
		p.Rect(x+colW, y, colW, h, "D")
		p.MultiCell(colW, lineH, l.tr(r[0]), "", "L", false)
		p.SetXY(x+colW, y)
		p.MultiCell(colW, lineH, l.tr(r[1]), "", "L", false)
		p.SetXY(x, y+h)
	}
	p.Ln(4)
}
