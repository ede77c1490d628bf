package render

import (
	"encoding/json"
	"strings"
)

type Pillar struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Insight struct {
	Leader string `json:"leader"`
	Quote  string `json:"quote"`
}

type Reframe struct {
	Negative string `json:"negative"`
	Positive string `json:"positive"`
}

type RoutineBlock struct {
	Time       string   `json:"time"`
	Activities []string `json:"activities"`
}

type Commitment struct {
	Text string `json:"text"`
}

// Section: часть рабочего листа.
type Section struct {
	Title        string   `json:"title"`
	Instructions string   `json:"instructions"`
	Questions    []string `json:"questions"`
	Activities   []string `json:"activities"`
	Examples     []string `json:"examples"`
	Template     []string `json:"template"`
	DailyTargets []string `json:"daily_targets"`
}

// Content: разобранное содержимое материала. Каждый раздел необязателен.
type Content struct {
	CoreConcept string         `json:"core_concept,omitempty"`
	Pillars     []Pillar       `json:"pillars,omitempty"`
	Insights    []Insight      `json:"insights,omitempty"`
	Reframes    []Reframe      `json:"reframes,omitempty"`
	Routine     []RoutineBlock `json:"routine,omitempty"`
	Commitment  *Commitment    `json:"commitment,omitempty"`
	Remember    []string       `json:"remember,omitempty"`
	Sections    []Section      `json:"sections,omitempty"`
}

func (c Content) Empty() bool {
	return c.CoreConcept == "" && len(c.Pillars) == 0 && len(c.Insights) == 0 &&
		len(c.Reframes) == 0 && len(c.Routine) == 0 && c.Commitment == nil &&
		len(c.Remember) == 0 && len(c.Sections) == 0
}

// ParseContent разбирает JSON без ошибок: битые поля и элементы просто пропускаются.
func ParseContent(raw string) Content {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return Content{}
	}
	var c Content
	if s, ok := decodeString(fields["core_concept"]); ok {
		c.CoreConcept = s
	}
	c.Pillars = decodeList(fields["pillars"], func(p Pillar) bool { return p.Title != "" || p.Description != "" })
	c.Insights = decodeList(fields["insights"], func(i Insight) bool { return i.Leader != "" || i.Quote != "" })
	c.Reframes = decodeList(fields["reframes"], func(r Reframe) bool { return r.Negative != "" || r.Positive != "" })
	c.Routine = decodeList(fields["routine"], func(b RoutineBlock) bool { return b.Time != "" || len(b.Activities) > 0 })
	c.Remember = decodeList(fields["remember"], func(s string) bool { return strings.TrimSpace(s) != "" })
	c.Sections = decodeList(fields["sections"], func(s Section) bool { return s.Title != "" })

	var cm Commitment
	if raw, ok := fields["commitment"]; ok && json.Unmarshal(raw, &cm) == nil && cm.Text != "" {
		c.Commitment = &cm
	}
	return c
}

func decodeString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

func decodeList[T any](raw json.RawMessage, keep func(T) bool) []T {
	if len(raw) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		var v T
		if err := json.Unmarshal(it, &v); err != nil || !keep(v) {
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
