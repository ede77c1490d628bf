package roster

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/Spok95/sales-training-backend/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Member: декларативная запись о пользователе.
// Modules хранит закреплённые модули (пусто = все 12), Completed уже пройденные.
type Member struct {
	Email         string      `yaml:"email" json:"email"`
	Name          string      `yaml:"name" json:"name"`
	Role          models.Role `yaml:"role" json:"role"`
	Modules       []int       `yaml:"modules" json:"modules"`
	Completed     []int       `yaml:"completed" json:"completed,omitempty"`
	CurrentModule int         `yaml:"current_module" json:"current_module"`
	Password      string      `yaml:"password" json:"-"`
	CEO           bool        `yaml:"ceo" json:"-"`
}

type Roster struct {
	Members []Member `yaml:"members"`
}

// Default: встроенный ростер команды.
func Default() (*Roster, error) {
	return Parse(defaultYAML)
}

// Load читает ростер из файла; пустой путь означает встроенный.
func Load(path string) (*Roster, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("roster %s: %w", path, err)
	}
	return r, nil
}

func Parse(data []byte) (*Roster, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var r Roster
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	if err := r.normalize(); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *Roster) normalize() error {
	seen := make(map[string]bool, len(r.Members))
	for i := range r.Members {
		m := &r.Members[i]
		email, err := models.NormalizeEmail(m.Email)
		if err != nil {
			return fmt.Errorf("member %d: %w", i+1, err)
		}
		if seen[email] {
			return models.Invalid("email", "duplicate roster entry "+email)
		}
		seen[email] = true
		m.Email = email

		if m.Name == "" {
			m.Name = models.DisplayNameFromEmail(email)
		}
		if m.Role == "" {
			m.Role = models.Salesperson
		}
		if !m.Role.Valid() {
			return fmt.Errorf("%s: %w", email, models.Invalid("role", "must be salesperson or trainer"))
		}
		if m.CurrentModule == 0 {
			m.CurrentModule = 1
		}
		if !models.ValidModule(m.CurrentModule) {
			return fmt.Errorf("%s: %w", email, models.Invalid("current_module", "must be between 1 and 12"))
		}
		if m.Modules, err = cleanModules(m.Modules); err != nil {
			return fmt.Errorf("%s: %w", email, err)
		}
		if m.Completed, err = cleanModules(m.Completed); err != nil {
			return fmt.Errorf("%s: %w", email, err)
		}
	}
	return nil
}

// cleanModules сортирует и убирает повторы.
func cleanModules(in []int) ([]int, error) {
	if len(in) == 0 {
		return nil, nil
	}
	set := make(map[int]bool, len(in))
	out := make([]int, 0, len(in))
	for _, n := range in {
		if !models.ValidModule(n) {
			return nil, models.Invalid("modules", fmt.Sprintf("module %d is out of range 1..12", n))
		}
		if !set[n] {
			set[n] = true
			out = append(out, n)
		}
	}
	sort.Ints(out)
	return out, nil
}

// CEO: подмножество ростера для /init-ceo.
func (r *Roster) CEO() *Roster {
	out := &Roster{}
	for _, m := range r.Members {
		if m.CEO {
			out.Members = append(out.Members, m)
		}
	}
	return out
}

// Only: одна запись по email.
func (r *Roster) Only(email string) (*Roster, error) {
	norm, err := models.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	for _, m := range r.Members {
		if m.Email == norm {
			return &Roster{Members: []Member{m}}, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", norm, models.ErrNotFound)
}

// AssignedLabel: "All 12" для полного набора модулей, как показывает панель тренера.
func (m Member) AssignedLabel() any {
	if len(m.Modules) == 0 || len(m.Modules) == models.ModuleCount {
		return "All 12"
	}
	return m.Modules
}
