package materials

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/Spok95/sales-training-backend/internal/models"
)

//go:embed catalog.json
var catalogJSON []byte

type catalogEntry struct {
	ModuleNumber int                 `json:"module_number"`
	Type         models.MaterialType `json:"material_type"`
	Title        string              `json:"title"`
	Subtitle     string              `json:"subtitle"`
	PDFFilename  string              `json:"pdf_filename"`
	Content      json.RawMessage     `json:"content"`
}

// Catalog: встроенный набор материалов; content хранится компактным JSON.
func Catalog() ([]models.TrainingMaterial, error) {
	var entries []catalogEntry
	if err := json.Unmarshal(catalogJSON, &entries); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	out := make([]models.TrainingMaterial, 0, len(entries))
	for _, e := range entries {
		if !models.ValidModule(e.ModuleNumber) || !e.Type.Valid() {
			return nil, fmt.Errorf("catalog entry %d/%s is invalid", e.ModuleNumber, e.Type)
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, e.Content); err != nil {
			return nil, fmt.Errorf("catalog entry %d/%s: %w", e.ModuleNumber, e.Type, err)
		}
		m := models.TrainingMaterial{
			ModuleNumber: e.ModuleNumber,
			Type:         e.Type,
			Title:        e.Title,
			Subtitle:     e.Subtitle,
			Content:      buf.String(),
		}
		if e.PDFFilename != "" {
			name := e.PDFFilename
			m.PDFFilename = &name
		}
		out = append(out, m)
	}
	return out, nil
}
