package report

import (
	"math"

	"github.com/preston-bernstein/equipment-tracker/internal/roster"
)

// Grades tracked by the statistics panel.
var Grades = []string{"Fr.", "So.", "Jr.", "Sr."}

// Stats is the team overview.
type Stats struct {
	Total             int            `json:"total"`
	Complete          int            `json:"complete"`
	Incomplete        int            `json:"incomplete"`
	AverageProgress   int            `json:"averageProgress"`
	ByGrade           map[string]int `json:"byGrade"`
	WithJerseyNumbers int            `json:"withJerseyNumbers"`
}

// ComputeStats summarizes progress across the roster. Grades outside
// Grades are counted in the totals only.
func ComputeStats(players []roster.Player, resolver *roster.Resolver) Stats {
	s := Stats{
		Total:   len(players),
		ByGrade: make(map[string]int, len(Grades)),
	}
	for _, g := range Grades {
		s.ByGrade[g] = 0
	}

	percentSum := 0
	for _, p := range players {
		prog := resolver.Progress(p)
		if prog.Complete() {
			s.Complete++
		} else {
			s.Incomplete++
		}
		percentSum += prog.Percent()

		if _, ok := s.ByGrade[p.Grade]; ok {
			s.ByGrade[p.Grade]++
		}
		if p.HasNumber() {
			s.WithJerseyNumbers++
		}
	}

	if len(players) > 0 {
		s.AverageProgress = int(math.Round(float64(percentSum) / float64(len(players))))
	}
	return s
}
