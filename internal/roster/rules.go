package roster

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RulesConfig is the on-disk shape of the roster override file.
type RulesConfig struct {
	Version      int                `yaml:"version"`
	JerseyOnly   []JerseyOnlyConfig `yaml:"jerseyOnly"`
	KeepSeparate []KeepSepConfig    `yaml:"keepSeparate"`
}

// JerseyOnlyConfig reduces a player's checklist to the listed items.
type JerseyOnlyConfig struct {
	Name    string   `yaml:"name"`
	Numbers []int    `yaml:"numbers"`
	Items   []string `yaml:"items"`
}

// KeepSepConfig stops entries for one name from being merged.
// An empty number list applies to every entry with that name.
type KeepSepConfig struct {
	Name    string `yaml:"name"`
	Numbers []int  `yaml:"numbers"`
}

type jerseyOnlyRule struct {
	name    string
	numbers map[int]struct{}
	items   []Item
}

type keepSeparateRule struct {
	name    string
	numbers map[int]struct{}
}

// Rules holds the compiled per-player overrides. The zero value has no overrides.
type Rules struct {
	version      int
	jerseyOnly   []jerseyOnlyRule
	keepSeparate []keepSeparateRule
}

var defaultRulesConfig = RulesConfig{
	Version: 1,
	JerseyOnly: []JerseyOnlyConfig{
		{
			Name:    "Dalin Afu",
			Numbers: []int{61},
			Items:   []string{string(ItemJerseyRed), string(ItemJerseyBlack), string(ItemJerseyWhite)},
		},
	},
	KeepSeparate: []KeepSepConfig{
		{Name: "Dalin Afu", Numbers: []int{0, 61}},
	},
}

// DefaultRules returns the overrides known for the current roster.
func DefaultRules() Rules {
	rules, err := CompileRules(defaultRulesConfig)
	if err != nil {
		panic(fmt.Sprintf("roster: invalid default rules: %v", err))
	}
	return rules
}

// LoadRules reads and compiles a YAML rules file.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}
	return ParseRules(data)
}

// ParseRules compiles YAML rules content.
func ParseRules(data []byte) (Rules, error) {
	var cfg RulesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Rules{}, fmt.Errorf("decode rules: %w", err)
	}
	return CompileRules(cfg)
}

// CompileRules validates cfg and normalizes names for matching.
func CompileRules(cfg RulesConfig) (Rules, error) {
	rules := Rules{version: cfg.Version}

	for i, o := range cfg.JerseyOnly {
		name := NormalizeName(o.Name)
		if name == "" {
			return Rules{}, fmt.Errorf("jerseyOnly[%d]: name required", i)
		}
		if len(o.Numbers) == 0 {
			return Rules{}, fmt.Errorf("jerseyOnly[%d]: at least one number required", i)
		}
		if len(o.Items) == 0 {
			return Rules{}, fmt.Errorf("jerseyOnly[%d]: at least one item required", i)
		}
		numbers, err := numberSet(o.Numbers)
		if err != nil {
			return Rules{}, fmt.Errorf("jerseyOnly[%d]: %w", i, err)
		}
		items := make([]Item, 0, len(o.Items))
		for _, label := range o.Items {
			if !IsChecklistItem(label) {
				return Rules{}, fmt.Errorf("jerseyOnly[%d]: unknown item %q", i, label)
			}
			items = append(items, Item(label))
		}
		rules.jerseyOnly = append(rules.jerseyOnly, jerseyOnlyRule{name: name, numbers: numbers, items: items})
	}

	for i, k := range cfg.KeepSeparate {
		name := NormalizeName(k.Name)
		if name == "" {
			return Rules{}, fmt.Errorf("keepSeparate[%d]: name required", i)
		}
		numbers, err := numberSet(k.Numbers)
		if err != nil {
			return Rules{}, fmt.Errorf("keepSeparate[%d]: %w", i, err)
		}
		rules.keepSeparate = append(rules.keepSeparate, keepSeparateRule{name: name, numbers: numbers})
	}

	return rules, nil
}

var errInvalidNumber = errors.New("jersey number out of range")

func numberSet(nums []int) (map[int]struct{}, error) {
	set := make(map[int]struct{}, len(nums))
	for _, n := range nums {
		if !ValidNumber(n) {
			return nil, fmt.Errorf("%w: %d", errInvalidNumber, n)
		}
		set[n] = struct{}{}
	}
	return set, nil
}

// Version returns the rules file version, 0 when unversioned.
func (r Rules) Version() int {
	return r.version
}

// jerseyOnlyFor matches a player by normalized name and number; an unassigned
// number is compared as -1 and so never matches.
func (r Rules) jerseyOnlyFor(p Player) (jerseyOnlyRule, bool) {
	name := NormalizeName(p.Name)
	number := p.NumberOr(-1)
	for _, o := range r.jerseyOnly {
		if o.name != name {
			continue
		}
		if _, ok := o.numbers[number]; ok {
			return o, true
		}
	}
	return jerseyOnlyRule{}, false
}

// KeepSeparate reports whether p must stay in its own dedup bucket.
func (r Rules) KeepSeparate(p Player) bool {
	name := NormalizeName(p.Name)
	if name == "" {
		return false
	}
	for _, k := range r.keepSeparate {
		if k.name != name {
			continue
		}
		if len(k.numbers) == 0 {
			return true
		}
		if p.Number == nil {
			continue
		}
		if _, ok := k.numbers[*p.Number]; ok {
			return true
		}
	}
	return false
}
