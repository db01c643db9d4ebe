package store

import (
	"context"
	"errors"

	"github.com/preston-bernstein/equipment-tracker/internal/roster"
)

// ErrNotFound is returned when an update targets an unknown player ID.
var ErrNotFound = errors.New("player not found")

// PlayerStore is the document-store contract the roster service depends on.
// Writes carry no cross-document transaction guarantee.
type PlayerStore interface {
	List(ctx context.Context) ([]roster.Player, error)
	Create(ctx context.Context, p roster.Player) (string, error)
	Update(ctx context.Context, id string, f Fields) error
	Batch(ctx context.Context, writes []Write) error
	// Subscribe delivers the full roster on subscribe and after every change
	// until ctx is done. Slow readers only see the latest snapshot.
	Subscribe(ctx context.Context) (<-chan []roster.Player, error)
}

// Fields is a partial update. Unset fields are left untouched.
type Fields struct {
	// SetNumber applies Number, where a nil Number clears the jersey number.
	SetNumber bool
	Number    *int
	Period    *string
	Equipment *roster.Equipment
}

// NumberFields updates only the jersey number.
func NumberFields(n *int) Fields {
	return Fields{SetNumber: true, Number: n}
}

// PeriodFields updates only the class period.
func PeriodFields(period string) Fields {
	return Fields{Period: &period}
}

// Empty reports whether the update would change nothing.
func (f Fields) Empty() bool {
	return !f.SetNumber && f.Period == nil && f.Equipment == nil
}

// Apply copies the set fields onto p.
func (f Fields) Apply(p *roster.Player) {
	if f.SetNumber {
		if f.Number == nil {
			p.Number = nil
		} else {
			p.Number = roster.IntPtr(*f.Number)
		}
	}
	if f.Period != nil {
		p.Period = *f.Period
	}
	if f.Equipment != nil {
		p.Equipment = f.Equipment.Clone()
	}
}

// Write is one element of a batch: a create when ID is empty, otherwise a
// partial update of the player with that ID.
type Write struct {
	ID     string
	Player roster.Player
	Fields Fields
}

// CreateWrite builds a batch create.
func CreateWrite(p roster.Player) Write {
	return Write{Player: p}
}

// UpdateWrite builds a batch partial update.
func UpdateWrite(id string, f Fields) Write {
	return Write{ID: id, Fields: f}
}

// IsCreate reports whether the write creates a new player.
func (w Write) IsCreate() bool {
	return w.ID == ""
}
