package testutil

import (
	"github.com/preston-bernstein/equipment-tracker/internal/roster"
)

// SamplePlayer returns a minimal player fixture with the provided id and name.
func SamplePlayer(id, name string) roster.Player {
	return roster.Player{
		ID:        id,
		Name:      name,
		StudentID: "S-" + id,
		Grade:     "Jr.",
		Position:  "WR",
		Period:    "Period 1",
		Equipment: roster.NewEquipment(),
	}
}

// SampleRoster returns three players: one fully equipped, one with a jersey
// number and nothing returned, and one sophomore without a number.
func SampleRoster() []roster.Player {
	complete := SamplePlayer("p1", "Avery Stone")
	complete.Number = roster.IntPtr(10)
	for _, item := range roster.DefaultChecklist() {
		complete.Equipment.Set(item, true)
	}

	partial := SamplePlayer("p2", "Blake Rivera")
	partial.Number = roster.IntPtr(22)
	partial.Equipment.Helmet = true

	soph := SamplePlayer("p3", "Casey Lin")
	soph.Grade = "So."
	soph.Period = "Period 2"

	return []roster.Player{complete, partial, soph}
}
