// Package report turns the canonical roster into completion summaries,
// reminder messages, and the spreadsheet export.
package report

import (
	"math"
	"sort"
	"strings"

	"github.com/preston-bernstein/equipment-tracker/internal/roster"
)

// Entry pairs a player with what they still owe.
type Entry struct {
	Player   roster.Player   `json:"player"`
	Missing  []roster.Item   `json:"missing"`
	Progress roster.Progress `json:"progress"`
}

// MissingCount is the number of outstanding checklist items.
func (e Entry) MissingCount() int {
	return len(e.Missing)
}

// Report is the roster split by completion.
type Report struct {
	// Players keeps the input order and backs the detailed checklist.
	Players    []Entry
	Complete   []Entry
	Incomplete []Entry
	// TotalMissing sums missing items across every incomplete player.
	TotalMissing int
}

// Build evaluates every player once. Incomplete players are ordered by
// missing count, most first; ties keep roster order.
func Build(players []roster.Player, resolver *roster.Resolver) Report {
	r := Report{
		Players:    make([]Entry, 0, len(players)),
		Complete:   []Entry{},
		Incomplete: []Entry{},
	}
	for _, p := range players {
		e := Entry{
			Player:   p,
			Missing:  resolver.MissingItems(p),
			Progress: resolver.Progress(p),
		}
		r.Players = append(r.Players, e)
		if len(e.Missing) == 0 {
			r.Complete = append(r.Complete, e)
			continue
		}
		r.Incomplete = append(r.Incomplete, e)
		r.TotalMissing += len(e.Missing)
	}

	sort.SliceStable(r.Incomplete, func(i, j int) bool {
		return len(r.Incomplete[i].Missing) > len(r.Incomplete[j].Missing)
	})
	return r
}

// Total is the number of players in the report.
func (r Report) Total() int {
	return len(r.Players)
}

// Rate is the whole-number percentage of complete players, 0 for an empty roster.
func (r Report) Rate() int {
	if len(r.Players) == 0 {
		return 0
	}
	return int(math.Round(float64(len(r.Complete)) / float64(len(r.Players)) * 100))
}

const (
	messageIntro   = "You are missing the following equipment:"
	messageClosing = "Please return these items as soon as possible."
	messageSignoff = "Thank you!"
)

// Message formats the reminder a coach sends to a player.
func Message(name string, missing []roster.Item) string {
	var b strings.Builder
	b.WriteString("Hi ")
	b.WriteString(name)
	b.WriteString(",\n\n")
	b.WriteString(messageIntro)
	b.WriteString("\n\n")
	for i, item := range missing {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("• ")
		b.WriteString(string(item))
	}
	b.WriteString("\n\n")
	b.WriteString(messageClosing)
	b.WriteString("\n\n")
	b.WriteString(messageSignoff)
	return b.String()
}
