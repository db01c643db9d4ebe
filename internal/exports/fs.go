package exports

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/preston-bernstein/equipment-tracker/internal/timeutil"
)

const (
	defaultRetentionDays = 30
	reportsDir           = "reports"
)

// FSSink writes reports under {basePath}/reports and keeps a manifest of what
// is on disk. Reports whose name ends in a date older than the retention
// window are pruned on every save.
type FSSink struct {
	basePath      string
	retentionDays int
	now           func() time.Time
}

// NewFSSink constructs a filesystem sink rooted at basePath.
func NewFSSink(basePath string, retentionDays int) *FSSink {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	return &FSSink{
		basePath:      basePath,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// Name identifies the sink.
func (s *FSSink) Name() string {
	return "fs"
}

// BasePath exposes the sink root.
func (s *FSSink) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

// Save writes data atomically and returns the file path.
func (s *FSSink) Save(ctx context.Context, name string, data []byte) (string, error) {
	if s == nil || s.basePath == "" {
		return "", ErrNotConfigured
	}
	if err := validateName(name); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	target := filepath.Join(s.basePath, reportsDir, name)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	if existing, err := os.ReadFile(target); err != nil || !bytes.Equal(existing, data) {
		tmp := target + ".tmp"
		if err := os.WriteFile(tmp, data, 0o644); err != nil {
			return "", fmt.Errorf("write report: %w", err)
		}
		if err := os.Rename(tmp, target); err != nil {
			return "", fmt.Errorf("publish report: %w", err)
		}
	}

	if err := s.updateManifest(); err != nil {
		return "", fmt.Errorf("update manifest: %w", err)
	}
	return target, nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("report name required")
	}
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("invalid report name %q", name)
	}
	return nil
}

func (s *FSSink) updateManifest() error {
	now := s.now().UTC()
	m, _ := readManifest(filepath.Join(s.basePath, manifestFile), s.retentionDays)

	files, err := s.listReports()
	if err != nil {
		return err
	}
	m.Reports.Files = s.prune(files, now)
	m.Reports.LastExported = now
	m.Retention.Days = s.retentionDays
	return writeManifest(s.basePath, m, now)
}

func (s *FSSink) listReports() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.basePath, reportsDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) == ".tmp" {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}

// prune removes dated reports older than the retention window. Files without
// a trailing date are kept.
func (s *FSSink) prune(files []string, now time.Time) []string {
	cutoff := timeutil.DaysAgo(now, s.retentionDays)
	keep := make([]string, 0, len(files))
	for _, name := range files {
		date, ok := reportDate(name)
		if ok && date.Before(cutoff) {
			_ = os.Remove(filepath.Join(s.basePath, reportsDir, name))
			continue
		}
		keep = append(keep, name)
	}
	return keep
}

// reportDate reads the YYYY-MM-DD suffix of a report name.
func reportDate(name string) (time.Time, bool) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if len(base) < len(timeutil.DateLayout) {
		return time.Time{}, false
	}
	t, err := timeutil.ParseDate(base[len(base)-len(timeutil.DateLayout):])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
