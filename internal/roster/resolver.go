package roster

import (
	"math"
	"strings"
)

// Progress counts returned items against what a player owes.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Complete reports whether every counted item is back.
func (p Progress) Complete() bool {
	return p.Completed == p.Total
}

// Percent rounds completion to a whole percentage; an empty total is 0%.
func (p Progress) Percent() int {
	if p.Total <= 0 {
		return 0
	}
	return int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
}

// Resolver answers checklist questions for individual players.
// It is safe for concurrent use.
type Resolver struct {
	rules Rules
}

// NewResolver binds a resolver to a compiled rule set.
func NewResolver(rules Rules) *Resolver {
	return &Resolver{rules: rules}
}

// Rules returns the rule set the resolver was built with.
func (r *Resolver) Rules() Rules {
	return r.rules
}

// RequiredItems returns the checklist a player must return.
func (r *Resolver) RequiredItems(p Player) []Item {
	if o, ok := r.rules.jerseyOnlyFor(p); ok {
		return append([]Item{}, o.items...)
	}
	if IsSophomore(p.Grade) {
		return SophomoreChecklist()
	}
	return DefaultChecklist()
}

// IsJerseyOnly reports whether an override limits the player to jerseys.
func (r *Resolver) IsJerseyOnly(p Player) bool {
	_, ok := r.rules.jerseyOnlyFor(p)
	return ok
}

// IsSophomore matches the grade loosely ("So.", "soph", "Sophomore").
func IsSophomore(grade string) bool {
	return strings.Contains(strings.ToLower(grade), "so")
}

// MissingItems lists required items that are neither returned nor excluded
// as never received, in checklist order.
func (r *Resolver) MissingItems(p Player) []Item {
	required := itemSet(r.RequiredItems(p))
	never := p.Equipment.NeverReceivedSet()

	missing := make([]Item, 0, len(required))
	for _, item := range Checklist {
		if _, ok := required[item]; !ok {
			continue
		}
		if _, ok := never[item]; ok {
			continue
		}
		if !p.Equipment.Has(item) {
			missing = append(missing, item)
		}
	}
	return missing
}

// Progress counts returned items. Custom items are only recorded on return,
// so they add to both sides unless the player is jersey-only.
func (r *Resolver) Progress(p Player) Progress {
	required := itemSet(r.RequiredItems(p))
	never := p.Equipment.NeverReceivedSet()

	var prog Progress
	for _, item := range Checklist {
		if _, ok := required[item]; !ok {
			continue
		}
		if _, ok := never[item]; ok {
			continue
		}
		prog.Total++
		if p.Equipment.Has(item) {
			prog.Completed++
		}
	}

	if !r.IsJerseyOnly(p) {
		custom := len(p.Equipment.CustomItems)
		prog.Total += custom
		prog.Completed += custom
	}
	return prog
}

func itemSet(items []Item) map[Item]struct{} {
	set := make(map[Item]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
