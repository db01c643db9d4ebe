package roster

import (
	"strconv"
	"strings"
)

// Score weights for picking the authoritative record among duplicates.
const (
	scoreNumber   = 10
	scorePeriod   = 2
	scoreGrade    = 1
	scorePosition = 1
)

// EquipmentScore counts returned fixed items plus recorded custom items.
// Never-received entries do not change the score.
func EquipmentScore(e Equipment) int {
	flags := []bool{
		e.Jersey.Red, e.Jersey.Black, e.Jersey.White, e.Jersey.SophomoreRed,
		e.Pants.Red, e.Pants.Black, e.Pants.White,
		e.Helmet, e.Guardian, e.Shoulder, e.Girdle, e.Knee, e.PracticePants, e.Belt, e.WinInTheDark,
	}
	score := 0
	for _, f := range flags {
		if f {
			score++
		}
	}
	return score + len(e.CustomItems)
}

// QualityScore rates how complete a record is.
func QualityScore(p Player) int {
	score := EquipmentScore(p.Equipment)
	if p.HasNumber() {
		score += scoreNumber
	}
	if p.Period != "" {
		score += scorePeriod
	}
	if p.HasGrade() {
		score += scoreGrade
	}
	if p.Position != "" {
		score += scorePosition
	}
	return score
}

// GroupKey returns the dedup bucket for a player: student ID, then normalized
// name, then store ID. Keep-separate players are bucketed per jersey number.
func GroupKey(p Player, rules Rules) string {
	name := NormalizeName(p.Name)
	key := strings.TrimSpace(p.StudentID)
	if key == "" {
		key = name
	}
	if key == "" {
		key = p.ID
	}

	if rules.KeepSeparate(p) {
		suffix := p.ID
		if p.Number != nil {
			suffix = strconv.Itoa(*p.Number)
		}
		return name + "#" + suffix
	}
	return key
}

// Dedupe collapses duplicate records into one canonical entry per person.
// The highest QualityScore wins; equal scores go to the greater store ID so the
// result does not depend on input order. Buckets keep first-seen order.
func Dedupe(records []Player, rules Rules) []Player {
	order := make([]string, 0, len(records))
	best := make(map[string]Player, len(records))
	bestScore := make(map[string]int, len(records))

	for _, p := range records {
		key := GroupKey(p, rules)
		score := QualityScore(p)
		current, ok := best[key]
		if !ok {
			order = append(order, key)
			best[key] = p
			bestScore[key] = score
			continue
		}
		if score > bestScore[key] || (score == bestScore[key] && p.ID > current.ID) {
			best[key] = p
			bestScore[key] = score
		}
	}

	out := make([]Player, 0, len(order))
	for _, key := range order {
		out = append(out, best[key])
	}
	return out
}

// Dedupe applies the resolver's rules to Dedupe.
func (r *Resolver) Dedupe(records []Player) []Player {
	return Dedupe(records, r.rules)
}
