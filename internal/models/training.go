package models

import "time"

// TrainingSession: запись журнала занятий, только добавление.
type TrainingSession struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"user_email" json:"user_email"`
	Title        string    `db:"title" json:"title"`
	Date         time.Time `db:"date" json:"date"`
	Notes        string    `db:"notes" json:"notes"`
	ModuleNumber *int      `db:"module_number" json:"module_number"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type MaterialType string

const (
	Summary   MaterialType = "summary"
	Worksheet MaterialType = "worksheet"
	Guide     MaterialType = "guide"
)

func (t MaterialType) Valid() bool {
	switch t {
	case Summary, Worksheet, Guide:
		return true
	}
	return false
}

// TrainingMaterial: документ каталога; Content хранит JSON со структурой разделов.
type TrainingMaterial struct {
	ID           int64        `db:"id" json:"id"`
	ModuleNumber int          `db:"module_number" json:"module_number"`
	Type         MaterialType `db:"material_type" json:"material_type"`
	Title        string       `db:"title" json:"title"`
	Subtitle     string       `db:"subtitle" json:"subtitle"`
	Content      string       `db:"content" json:"content"`
	PDFFilename  *string      `db:"pdf_filename" json:"pdf_filename"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

type MaterialFilter struct {
	Module *int
	Type   *MaterialType
}
