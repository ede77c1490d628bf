package roster

import (
	"testing"

	"github.com/Spok95/sales-training-backend/internal/models"
)

func TestDefault(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Members) != 4 {
		t.Fatalf("members = %d, want 4", len(r.Members))
	}
	ceo := r.CEO()
	if len(ceo.Members) != 1 || ceo.Members[0].Email != "sean.bristol@icloud.com" {
		t.Fatalf("ceo subset: %+v", ceo.Members)
	}
	if got := ceo.Members[0].AssignedLabel(); got != "All 12" {
		t.Fatalf("ceo label = %v", got)
	}
	for _, m := range r.Members {
		if m.Password != "" {
			t.Fatalf("%s: default roster must not carry passwords", m.Email)
		}
		if m.CurrentModule != 1 {
			t.Fatalf("%s: current module = %d", m.Email, m.CurrentModule)
		}
	}
	tamara, err := r.Only("Tamara@VertexFunding.com")
	if err != nil {
		t.Fatal(err)
	}
	mods := tamara.Members[0].Modules
	if len(mods) != 3 || mods[0] != 3 || mods[2] != 12 {
		t.Fatalf("tamara modules = %v", mods)
	}
}

func TestParse_Normalizes(t *testing.T) {
	r, err := Parse([]byte(`
members:
  - email: " A@X.com "
    completed: [2, 1, 2]
    password: pw
`))
	if err != nil {
		t.Fatal(err)
	}
	m := r.Members[0]
	if m.Email != "a@x.com" || m.Name != "A" || m.Role != models.Salesperson || m.CurrentModule != 1 {
		t.Fatalf("defaults not applied: %+v", m)
	}
	if len(m.Completed) != 2 || m.Completed[0] != 1 || m.Completed[1] != 2 {
		t.Fatalf("completed = %v", m.Completed)
	}
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"duplicate":    "members:\n  - email: a@x.com\n  - email: A@x.com\n",
		"module_range": "members:\n  - email: a@x.com\n    modules: [0]\n",
		"current":      "members:\n  - email: a@x.com\n    current_module: 13\n",
		"role":         "members:\n  - email: a@x.com\n    role: admin\n",
		"bad_email":    "members:\n  - email: nobody\n",
		"unknown_key":  "members:\n  - email: a@x.com\n    team: east\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestOnly_Unknown(t *testing.T) {
	r, _ := Default()
	if _, err := r.Only("ghost@x.com"); err == nil {
		t.Fatal("expected not found")
	}
}
