package materials

import (
	"testing"

	"github.com/Spok95/sales-training-backend/internal/models"
	"github.com/Spok95/sales-training-backend/internal/render"
)

func TestCatalog(t *testing.T) {
	mats, err := Catalog()
	if err != nil {
		t.Fatal(err)
	}
	if len(mats) != 2 {
		t.Fatalf("materials = %d, want 2", len(mats))
	}
	for _, m := range mats {
		if m.PDFFilename == nil {
			t.Fatalf("%d/%s: pdf filename missing", m.ModuleNumber, m.Type)
		}
		c := render.ParseContent(m.Content)
		if c.Empty() {
			t.Fatalf("%d/%s: content did not parse", m.ModuleNumber, m.Type)
		}
		switch m.Type {
		case models.Summary:
			if len(c.Pillars) != 4 || len(c.Reframes) != 4 || len(c.Routine) != 3 || len(c.Remember) != 5 || c.Commitment == nil {
				t.Fatalf("summary content incomplete: %+v", c)
			}
		case models.Worksheet:
			if len(c.Sections) != 5 {
				t.Fatalf("worksheet sections = %d", len(c.Sections))
			}
		}
	}
}
