package models

import (
	"testing"
	"time"
)

func TestAdvance(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)
	t2 := t1.Add(time.Hour)

	t.Run("in_progress_sets_started_once", func(t *testing.T) {
		p := &ModuleProgress{Status: NotStarted}
		p.Advance(InProgress, t0)
		p.Advance(InProgress, t1)
		if p.Status != InProgress {
			t.Fatalf("status = %s", p.Status)
		}
		if p.StartedAt == nil || !p.StartedAt.Equal(t0) {
			t.Fatalf("started_at = %v, want %v", p.StartedAt, t0)
		}
		if p.CompletedAt != nil {
			t.Fatalf("completed_at must stay nil, got %v", p.CompletedAt)
		}
	})

	t.Run("completed_keeps_started", func(t *testing.T) {
		p := &ModuleProgress{Status: NotStarted}
		p.Advance(InProgress, t0)
		p.Advance(Completed, t1)
		p.Advance(Completed, t2)
		if !p.StartedAt.Equal(t0) || !p.CompletedAt.Equal(t1) {
			t.Fatalf("timestamps changed: started=%v completed=%v", p.StartedAt, p.CompletedAt)
		}
	})

	t.Run("completed_without_start_backfills", func(t *testing.T) {
		p := &ModuleProgress{Status: NotStarted}
		p.Advance(Completed, t1)
		if p.StartedAt == nil || p.StartedAt.After(*p.CompletedAt) {
			t.Fatalf("started_at must not be after completed_at: %v %v", p.StartedAt, p.CompletedAt)
		}
	})

	t.Run("never_demotes", func(t *testing.T) {
		p := &ModuleProgress{Status: NotStarted}
		p.Advance(Completed, t0)
		p.Advance(NotStarted, t1)
		p.Advance(InProgress, t2)
		if p.Status != Completed {
			t.Fatalf("status demoted to %s", p.Status)
		}
		if p.StartedAt == nil || p.CompletedAt == nil {
			t.Fatal("timestamps cleared")
		}
	})
}

func TestMerge_OnlyPresentFields(t *testing.T) {
	p := &ModuleProgress{TotalCalls: 3, TotalMeetings: 2, ClosedDeals: 1, TotalRevenue: 10}
	calls := 7
	p.Merge(&ModuleStatsPatch{TotalCalls: &calls})
	if p.TotalCalls != 7 || p.TotalMeetings != 2 || p.ClosedDeals != 1 || p.TotalRevenue != 10 {
		t.Fatalf("unexpected merge result: %+v", p)
	}
	p.Merge(nil)
	if p.TotalCalls != 7 {
		t.Fatal("nil patch must be a no-op")
	}
}

func TestModuleStatsPatch_Validate(t *testing.T) {
	var nilPatch *ModuleStatsPatch
	if err := nilPatch.Validate(); err != nil {
		t.Fatalf("nil patch: %v", err)
	}
	calls, meetings := 4, -1
	if err := (&ModuleStatsPatch{TotalCalls: &calls}).Validate(); err != nil {
		t.Fatalf("valid patch: %v", err)
	}
	err := (&ModuleStatsPatch{TotalCalls: &calls, TotalMeetings: &meetings}).Validate()
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{" A@X.com ", "a@x.com", true},
		{"nobody", "", false},
		{"@x.com", "", false},
		{"a@", "", false},
	}
	for _, c := range cases {
		got, err := NormalizeEmail(c.in)
		if c.ok && (err != nil || got != c.want) {
			t.Fatalf("NormalizeEmail(%q) = %q, %v", c.in, got, err)
		}
		if !c.ok && !IsValidation(err) {
			t.Fatalf("NormalizeEmail(%q): expected validation error, got %v", c.in, err)
		}
	}
}

func TestDisplayNameFromEmail(t *testing.T) {
	if got := DisplayNameFromEmail("jOHN.doe@x.com"); got != "John.doe" {
		t.Fatalf("got %q", got)
	}
}

func TestStatsPatch_Validate(t *testing.T) {
	bad := 13
	if err := (StatsPatch{CurrentModule: &bad}).Validate(); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	neg := -1
	if err := (StatsPatch{TotalCalls: &neg}).Validate(); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	ok := 5
	if err := (StatsPatch{CurrentModule: &ok, TotalCalls: &ok}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
