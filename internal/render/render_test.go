package render

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Spok95/sales-training-backend/internal/models"
)

const summaryJSON = `{
  "core_concept": "Mindset first.",
  "pillars": [{"title": "1. Abundance", "description": "Unlimited chances."}, 42],
  "insights": [{"leader": "Zig Ziglar", "quote": "Sales is a transfer of feeling."}],
  "reframes": [{"negative": "I'm bothering people", "positive": "I'm offering solutions"}],
  "routine": [{"time": "Morning", "activities": ["Visualize", "Plan"]}],
  "commitment": {"text": "I commit."},
  "remember": ["Rejection is normal", ""]
}`

func newTestRenderer(t *testing.T, dir string) *Renderer {
	t.Helper()
	r, err := New(Options{ExportsDir: dir, Converter: "builtin"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestParseContent_Lenient(t *testing.T) {
	if c := ParseContent("not json"); !c.Empty() {
		t.Fatalf("malformed json must yield empty content: %+v", c)
	}
	c := ParseContent(summaryJSON)
	if len(c.Pillars) != 1 {
		t.Fatalf("bad pillar must be skipped, got %d", len(c.Pillars))
	}
	if len(c.Remember) != 1 {
		t.Fatalf("empty remember item must be skipped, got %v", c.Remember)
	}
	c = ParseContent(`{"core_concept": 7, "commitment": "text", "sections": [{"title": "Part 1", "questions": ["Q1"]}, {"questions": ["orphan"]}]}`)
	if c.CoreConcept != "" || c.Commitment != nil {
		t.Fatalf("wrong-typed fields must be omitted: %+v", c)
	}
	if len(c.Sections) != 1 || c.Sections[0].Questions[0] != "Q1" {
		t.Fatalf("sections = %+v", c.Sections)
	}
}

func TestRender_Summary(t *testing.T) {
	r := newTestRenderer(t, "")
	html, err := r.Render(&models.TrainingMaterial{ID: 3, ModuleNumber: 1, Type: models.Summary, Title: "Sales Mindset", Subtitle: "Quick Reference", Content: summaryJSON})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"MODULE 1", "Sales Mindset", "Quick Reference",
		"Core Concept", "The Four Pillars", "Key Insights from Top Sales Leaders",
		"Reframing Negative Self-Talk", "Negative Thought", "Powerful Reframe",
		"Your Daily Mindset Routine", "This Week's Commitment", "Remember",
		"/materials/3/download-pdf",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("html misses %q", want)
		}
	}
}

func TestRender_OmitsMissingAndEscapes(t *testing.T) {
	r := newTestRenderer(t, "")
	html, err := r.Render(&models.TrainingMaterial{ID: 1, ModuleNumber: 2, Title: "<script>alert(1)</script>", Content: `{"remember": ["a & b"]}`})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "<script>alert") {
		t.Fatal("title must be escaped")
	}
	if !strings.Contains(html, "a &amp; b") {
		t.Fatal("content must be escaped")
	}
	for _, absent := range []string{"Core Concept", "The Four Pillars", "class=\"subtitle\""} {
		if strings.Contains(html, absent) {
			t.Errorf("html must not contain %q", absent)
		}
	}
}

func TestRender_Worksheet(t *testing.T) {
	r := newTestRenderer(t, "")
	html, err := r.Render(&models.TrainingMaterial{ID: 2, ModuleNumber: 1, Type: models.Worksheet, Title: "W",
		Content: `{"sections": [{"title": "Part 2: The 10X Action Plan", "instructions": "Multiply by 10", "activities": ["Calls per day"]}]}`})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Part 2: The 10X Action Plan", "Multiply by 10", "Calls per day"} {
		if !strings.Contains(html, want) {
			t.Errorf("html misses %q", want)
		}
	}
}

func TestExportPDF_PrefersStaticFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Module_01_One_Page_Summary.pdf"), []byte("%PDF-static"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := newTestRenderer(t, dir)
	name := "../../Module_01_One_Page_Summary.pdf"
	pdf, err := r.ExportPDF(context.Background(), &models.TrainingMaterial{ModuleNumber: 1, Type: models.Summary, PDFFilename: &name})
	if err != nil {
		t.Fatal(err)
	}
	if pdf.Source != "static" || string(pdf.Data) != "%PDF-static" || pdf.Filename != "Module_01_One_Page_Summary.pdf" {
		t.Fatalf("unexpected export: source=%s name=%s", pdf.Source, pdf.Filename)
	}
}

func TestExportPDF_GeneratesWhenFileMissing(t *testing.T) {
	r := newTestRenderer(t, t.TempDir())
	missing := "nope.pdf"
	pdf, err := r.ExportPDF(context.Background(), &models.TrainingMaterial{ID: 9, ModuleNumber: 1, Type: models.Summary, Title: "Sales Mindset & The 10X Rule",
		Content: summaryJSON, PDFFilename: &missing})
	if err != nil {
		t.Fatal(err)
	}
	if pdf.Source != "builtin" || pdf.Filename != "Module_01_summary.pdf" {
		t.Fatalf("source=%s name=%s", pdf.Source, pdf.Filename)
	}
	if !bytes.HasPrefix(pdf.Data, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
}

func TestNewConverter(t *testing.T) {
	if _, err := NewConverter("pandoc"); err == nil {
		t.Fatal("expected error for unknown converter")
	}
	c, err := NewConverter("builtin")
	if err != nil || c.Name() != "builtin" {
		t.Fatalf("builtin: %v %v", c, err)
	}
	c, err = NewConverter("auto")
	if err != nil || c == nil {
		t.Fatalf("auto: %v", err)
	}
}
