package statlog

import (
	"path/filepath"
	"testing"
	"time"
)

func TestRecordAccumulatesWithinSameMonth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

	if err := Record(path, CallClassify, 100, 50, now); err != nil {
		t.Fatal(err)
	}
	if err := Record(path, CallClassify, 200, 75, now.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}

	s := Load(path)
	e := s.Buckets[CallClassify]["2026-03"]
	if e.Calls != 2 {
		t.Errorf("Calls = %d, want 2", e.Calls)
	}
	if e.InputTokens != 300 || e.OutputTokens != 125 {
		t.Errorf("tokens = %d/%d, want 300/125", e.InputTokens, e.OutputTokens)
	}
	if e.EstimatedCostUSD <= 0 {
		t.Error("expected a positive estimated cost")
	}
}

func TestRecordSeparatesByMonthAndCallType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	march := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	if err := Record(path, CallClassify, 10, 10, march); err != nil {
		t.Fatal(err)
	}
	if err := Record(path, CallClassify, 10, 10, april); err != nil {
		t.Fatal(err)
	}
	if err := Record(path, CallProfile, 10, 10, march); err != nil {
		t.Fatal(err)
	}

	s := Load(path)
	if len(s.Buckets[CallClassify]) != 2 {
		t.Errorf("len(buckets[classify]) = %d, want 2 months", len(s.Buckets[CallClassify]))
	}
	if s.Buckets[CallProfile]["2026-03"].Calls != 1 {
		t.Error("expected profile bucket separate from classify bucket")
	}
}

func TestLoadMissingFileReturnsEmptyStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")
	s := Load(path)
	if len(s.Buckets) != 0 {
		t.Errorf("expected empty buckets for missing file, got %d", len(s.Buckets))
	}
}

func TestTotalsSumsAcrossBucketsAndMonths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	march := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	if err := Record(path, CallClassify, 100, 50, march); err != nil {
		t.Fatal(err)
	}
	if err := Record(path, CallProfile, 200, 100, april); err != nil {
		t.Fatal(err)
	}

	total := Totals(Load(path))
	if total.Calls != 2 {
		t.Errorf("Calls = %d, want 2", total.Calls)
	}
	if total.InputTokens != 300 || total.OutputTokens != 150 {
		t.Errorf("tokens = %d/%d, want 300/150", total.InputTokens, total.OutputTokens)
	}
}
