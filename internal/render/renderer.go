package render

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Spok95/sales-training-backend/internal/logging"
	"github.com/Spok95/sales-training-backend/internal/metrics"
	"github.com/Spok95/sales-training-backend/internal/models"
	"go.uber.org/zap"
)

//go:embed template.html
var pageTemplate string

type page struct {
	ID           int64
	ModuleNumber int
	Title        string
	Subtitle     string
	Content      Content
	DownloadURL  string
}

type Options struct {
	// ExportsDir: каталог заранее сделанных PDF (pdf_filename).
	ExportsDir string
	// Converter: auto | wkhtmltopdf | builtin.
	Converter string
}

type Renderer struct {
	tmpl       *template.Template
	exportsDir string
	conv       Converter
	log        *logging.Log
}

func New(opts Options, log *logging.Log) (*Renderer, error) {
	if log == nil {
		log = logging.Nop()
	}
	tmpl, err := template.New("material").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	conv, err := NewConverter(opts.Converter)
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl, exportsDir: opts.ExportsDir, conv: conv, log: log}, nil
}

// Render: HTML-страница материала; значения из content экранируются шаблоном.
func (r *Renderer) Render(m *models.TrainingMaterial) (string, error) {
	return r.render(m, ParseContent(m.Content))
}

func (r *Renderer) render(m *models.TrainingMaterial, c Content) (string, error) {
	var buf bytes.Buffer
	err := r.tmpl.Execute(&buf, page{
		ID:           m.ID,
		ModuleNumber: m.ModuleNumber,
		Title:        m.Title,
		Subtitle:     m.Subtitle,
		Content:      c,
		DownloadURL:  fmt.Sprintf("/materials/%d/download-pdf", m.ID),
	})
	if err != nil {
		return "", fmt.Errorf("render material %d: %w", m.ID, err)
	}
	return buf.String(), nil
}

type PDF struct {
	Data     []byte
	Filename string
	// Source: static | wkhtmltopdf | builtin
	Source string
}

// ExportPDF отдаёт заранее сделанный файл, если он зарегистрирован и лежит на диске,
// иначе рендерит HTML и конвертирует его.
func (r *Renderer) ExportPDF(ctx context.Context, m *models.TrainingMaterial) (*PDF, error) {
	if data, name, ok := r.static(m); ok {
		metrics.PDFExports.WithLabelValues("static").Inc()
		return &PDF{Data: data, Filename: name, Source: "static"}, nil
	}

	c := ParseContent(m.Content)
	html, err := r.render(m, c)
	if err != nil {
		return nil, err
	}
	data, err := r.conv.Convert(ctx, Document{Material: m, Content: c, HTML: html})
	if err != nil {
		return nil, fmt.Errorf("convert material %d with %s: %w", m.ID, r.conv.Name(), err)
	}
	metrics.PDFExports.WithLabelValues(r.conv.Name()).Inc()
	return &PDF{Data: data, Filename: GeneratedFilename(m), Source: r.conv.Name()}, nil
}

func (r *Renderer) static(m *models.TrainingMaterial) ([]byte, string, bool) {
	if m.PDFFilename == nil || *m.PDFFilename == "" || r.exportsDir == "" {
		return nil, "", false
	}
	// только имя файла: pdf_filename не может выйти за пределы каталога
	name := filepath.Base(*m.PDFFilename)
	data, err := os.ReadFile(filepath.Join(r.exportsDir, name))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.log.Base.Warn("static pdf unreadable", zap.String("file", name), zap.Error(err))
		}
		return nil, "", false
	}
	return data, name, true
}

// GeneratedFilename: Module_01_summary.pdf.
func GeneratedFilename(m *models.TrainingMaterial) string {
	return fmt.Sprintf("Module_%02d_%s.pdf", m.ModuleNumber, m.Type)
}
