package roster

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleRules = `
version: 4
jerseyOnly:
  - name: "Afu, Dalin"
    numbers: [61]
    items: ["Jersey - Red", "Jersey - White"]
keepSeparate:
  - name: Kale Hansen
  - name: Dalin Afu
    numbers: [0, 61]
`

func TestParseRules(t *testing.T) {
	rules, err := ParseRules([]byte(sampleRules))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rules.Version() != 4 {
		t.Fatalf("expected version 4, got %d", rules.Version())
	}

	r := NewResolver(rules)
	got := r.RequiredItems(Player{Name: "dalin afu", Number: IntPtr(61)})
	if len(got) != 2 || got[0] != ItemJerseyRed || got[1] != ItemJerseyWhite {
		t.Fatalf("unexpected override items %v", got)
	}

	if !rules.KeepSeparate(Player{Name: "Kale Hansen"}) {
		t.Fatalf("expected name-only rule to match without a number")
	}
	if !rules.KeepSeparate(Player{Name: "Dalin Afu", Number: IntPtr(0)}) {
		t.Fatalf("expected numbered rule to match #0")
	}
	if rules.KeepSeparate(Player{Name: "Dalin Afu", Number: IntPtr(5)}) {
		t.Fatalf("expected numbered rule to skip #5")
	}
	if rules.KeepSeparate(Player{Name: "Dalin Afu"}) {
		t.Fatalf("expected numbered rule to skip unnumbered entries")
	}
}

func TestLoadRulesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(sampleRules), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rules.Version() != 4 {
		t.Fatalf("expected version 4, got %d", rules.Version())
	}

	if _, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestCompileRulesValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  RulesConfig
		want string
	}{
		{
			name: "empty name",
			cfg:  RulesConfig{JerseyOnly: []JerseyOnlyConfig{{Name: "A.", Numbers: []int{1}, Items: []string{"Helmet"}}}},
			want: "name required",
		},
		{
			name: "no numbers",
			cfg:  RulesConfig{JerseyOnly: []JerseyOnlyConfig{{Name: "Pat Doe", Items: []string{"Helmet"}}}},
			want: "number required",
		},
		{
			name: "no items",
			cfg:  RulesConfig{JerseyOnly: []JerseyOnlyConfig{{Name: "Pat Doe", Numbers: []int{1}}}},
			want: "item required",
		},
		{
			name: "unknown item",
			cfg:  RulesConfig{JerseyOnly: []JerseyOnlyConfig{{Name: "Pat Doe", Numbers: []int{1}, Items: []string{"Cleats"}}}},
			want: "unknown item",
		},
		{
			name: "bad number",
			cfg:  RulesConfig{KeepSeparate: []KeepSepConfig{{Name: "Pat Doe", Numbers: []int{100}}}},
			want: "out of range",
		},
	}

	for _, tc := range tests {
		_, err := CompileRules(tc.cfg)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected error containing %q, got %v", tc.name, tc.want, err)
		}
	}

	_, err := CompileRules(RulesConfig{KeepSeparate: []KeepSepConfig{{Name: "Pat Doe", Numbers: []int{-1}}}})
	if !errors.Is(err, errInvalidNumber) {
		t.Fatalf("expected wrapped errInvalidNumber, got %v", err)
	}
}

func TestParseRulesRejectsBadYAML(t *testing.T) {
	if _, err := ParseRules([]byte("jerseyOnly: [")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestZeroRulesHaveNoOverrides(t *testing.T) {
	var rules Rules
	r := NewResolver(rules)
	p := Player{Name: "Dalin Afu", Number: IntPtr(61)}
	if r.IsJerseyOnly(p) || rules.KeepSeparate(p) {
		t.Fatalf("expected zero rules to match nothing")
	}
}
