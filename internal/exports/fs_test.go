package exports

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedSink(t *testing.T, retention int, now time.Time) *FSSink {
	t.Helper()
	s := NewFSSink(t.TempDir(), retention)
	s.now = func() time.Time { return now }
	return s
}

func TestFSSinkWritesReportAndManifest(t *testing.T) {
	now := time.Date(2025, 9, 1, 15, 0, 0, 0, time.UTC)
	s := fixedSink(t, 10, now)

	loc, err := s.Save(context.Background(), "AFHS-Equipment-Report-2025-09-01.csv", []byte("a,b\n"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	want := filepath.Join(s.BasePath(), "reports", "AFHS-Equipment-Report-2025-09-01.csv")
	if loc != want {
		t.Fatalf("expected location %s, got %s", want, loc)
	}
	data, err := os.ReadFile(loc)
	if err != nil || string(data) != "a,b\n" {
		t.Fatalf("unexpected report contents %q (%v)", data, err)
	}

	m, err := ReadManifest(s.BasePath())
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if len(m.Reports.Files) != 1 || m.Retention.Days != 10 || !m.Reports.LastExported.Equal(now) {
		t.Fatalf("unexpected manifest %+v", m)
	}
	if _, err := os.Stat(loc + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be renamed away")
	}
}

func TestFSSinkOverwritesChangedReport(t *testing.T) {
	s := fixedSink(t, 10, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()
	name := "AFHS-Equipment-Report-2025-09-01.csv"

	if _, err := s.Save(ctx, name, []byte("first")); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if _, err := s.Save(ctx, name, []byte("first")); err != nil {
		t.Fatalf("identical save: %v", err)
	}
	loc, err := s.Save(ctx, name, []byte("second"))
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	data, _ := os.ReadFile(loc)
	if string(data) != "second" {
		t.Fatalf("expected overwrite, got %q", data)
	}
}

func TestFSSinkPrunesOldReports(t *testing.T) {
	now := time.Date(2025, 9, 10, 8, 0, 0, 0, time.UTC)
	s := fixedSink(t, 3, now)
	ctx := context.Background()

	old := "AFHS-Equipment-Report-2025-09-01.csv"
	edge := "AFHS-Equipment-Report-2025-09-07.csv"
	undated := "notes.csv"
	for _, name := range []string{old, edge, undated} {
		if _, err := s.Save(ctx, name, []byte(name)); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}

	if _, err := os.Stat(filepath.Join(s.BasePath(), "reports", old)); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be pruned", old)
	}
	m, _ := ReadManifest(s.BasePath())
	if len(m.Reports.Files) != 2 || m.Reports.Files[0] != edge || m.Reports.Files[1] != undated {
		t.Fatalf("unexpected manifest files %v", m.Reports.Files)
	}
}

func TestFSSinkRejectsBadNames(t *testing.T) {
	s := NewFSSink(t.TempDir(), 0)
	if s.retentionDays != defaultRetentionDays {
		t.Fatalf("expected default retention")
	}
	for _, name := range []string{"", "../escape.csv", "nested/report.csv", ".hidden"} {
		if _, err := s.Save(context.Background(), name, []byte("x")); err == nil {
			t.Fatalf("expected error for name %q", name)
		}
	}

	var nilSink *FSSink
	if _, err := nilSink.Save(context.Background(), "r.csv", nil); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestReadManifestFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, manifestFile), []byte("{bad json"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	m, err := readManifest(filepath.Join(dir, manifestFile), 5)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if m.Retention.Days != 5 || m.Reports.Files == nil {
		t.Fatalf("expected default manifest, got %+v", m)
	}
}

func TestReportDate(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"AFHS-Equipment-Report-2025-09-01.csv", true},
		{"2025-09-01.json", true},
		{"short.csv", false},
		{"report-final-copy.csv", false},
	}
	for _, tt := range tests {
		if _, ok := reportDate(tt.name); ok != tt.ok {
			t.Fatalf("reportDate(%q) = %v, want %v", tt.name, ok, tt.ok)
		}
	}
}
