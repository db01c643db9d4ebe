// Package roster reconciles player records and works out who still owes equipment.
package roster

import (
	"strconv"
	"strings"
)

const (
	// MaxJerseyNumber is the highest number that can be printed on a jersey.
	MaxJerseyNumber = 99

	defaultPlayerName = "Unnamed Player"
	unknownValue      = "-"
)

// Player is one roster entry as stored in the player document store.
type Player struct {
	ID        string    `json:"id"`
	Number    *int      `json:"number,omitempty"`
	Name      string    `json:"name"`
	StudentID string    `json:"studentId"`
	Period    string    `json:"period,omitempty"`
	Grade     string    `json:"grade"`
	Position  string    `json:"position"`
	Height    string    `json:"height"`
	Weight    string    `json:"weight"`
	Equipment Equipment `json:"equipment"`
}

// JerseySet tracks returned game jerseys by color.
type JerseySet struct {
	Red          bool `json:"red"`
	Black        bool `json:"black"`
	White        bool `json:"white"`
	SophomoreRed bool `json:"sophomoreRed"`
}

// PantsSet tracks returned game pants by color.
type PantsSet struct {
	Red   bool `json:"red"`
	Black bool `json:"black"`
	White bool `json:"white"`
}

// Equipment records what a player has returned.
type Equipment struct {
	Jersey        JerseySet `json:"jersey"`
	Pants         PantsSet  `json:"pants"`
	Helmet        bool      `json:"helmet"`
	Guardian      bool      `json:"guardian"`
	Shoulder      bool      `json:"shoulder"`
	Girdle        bool      `json:"girdle"`
	Knee          bool      `json:"knee"`
	PracticePants bool      `json:"practicePants"`
	Belt          bool      `json:"belt"`
	WinInTheDark  bool      `json:"winInTheDark"`
	CustomItems   []string  `json:"customItems"`
	NeverReceived []string  `json:"neverReceived"`
}

// NewEquipment returns an empty equipment record with non-nil item lists.
func NewEquipment() Equipment {
	return Equipment{
		CustomItems:   []string{},
		NeverReceived: []string{},
	}
}

// NewPlayer applies the add-player defaults to a manually entered record.
func NewPlayer(p Player) Player {
	p.ID = ""
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		p.Name = defaultPlayerName
	}
	p.StudentID = strings.TrimSpace(p.StudentID)
	p.Grade = orUnknown(p.Grade)
	p.Height = orUnknown(p.Height)
	p.Weight = orUnknown(p.Weight)
	p.Position = strings.TrimSpace(p.Position)
	if p.Number != nil && !ValidNumber(*p.Number) {
		p.Number = nil
	}
	p.Equipment = NewEquipment()
	return p
}

func orUnknown(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return unknownValue
	}
	return v
}

// HasNumber reports whether a jersey number has been assigned.
func (p Player) HasNumber() bool {
	return p.Number != nil
}

// NumberOr returns the jersey number or fallback when unassigned.
func (p Player) NumberOr(fallback int) int {
	if p.Number == nil {
		return fallback
	}
	return *p.Number
}

// HasGrade reports whether the grade is known.
func (p Player) HasGrade() bool {
	g := strings.TrimSpace(p.Grade)
	return g != "" && g != unknownValue
}

// Clone returns a deep copy so callers can mutate without touching shared snapshots.
func (p Player) Clone() Player {
	out := p
	if p.Number != nil {
		n := *p.Number
		out.Number = &n
	}
	out.Equipment = p.Equipment.Clone()
	return out
}

// Clone returns a deep copy of the equipment record.
func (e Equipment) Clone() Equipment {
	out := e
	out.CustomItems = append([]string{}, e.CustomItems...)
	out.NeverReceived = append([]string{}, e.NeverReceived...)
	return out
}

// IntPtr is a small helper for optional jersey numbers.
func IntPtr(n int) *int {
	return &n
}

// ValidNumber reports whether n can be worn on a jersey.
func ValidNumber(n int) bool {
	return n >= 0 && n <= MaxJerseyNumber
}

// ParseNumber converts a form value into an optional jersey number.
// Blank, non-numeric, and out-of-range values leave the number unset.
func ParseNumber(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || !ValidNumber(n) {
		return nil
	}
	return &n
}

// AddCustomItem records a returned item that is not on the fixed checklist.
// Blank and duplicate entries are ignored; it reports whether the list changed.
func (e *Equipment) AddCustomItem(item string) bool {
	item = strings.TrimSpace(item)
	if item == "" || containsString(e.CustomItems, item) {
		return false
	}
	e.CustomItems = append(e.CustomItems, item)
	return true
}

// RemoveCustomItem drops a custom item if present.
func (e *Equipment) RemoveCustomItem(item string) {
	e.CustomItems = removeString(e.CustomItems, item)
}

// ToggleNeverReceived flips whether a checklist item was never issued.
func (e *Equipment) ToggleNeverReceived(item Item) {
	label := string(item)
	if containsString(e.NeverReceived, label) {
		e.NeverReceived = removeString(e.NeverReceived, label)
		return
	}
	e.NeverReceived = append(e.NeverReceived, label)
}

// Normalize removes blank and duplicate entries from both item lists.
func (e *Equipment) Normalize() {
	e.CustomItems = uniqueStrings(e.CustomItems)
	e.NeverReceived = uniqueStrings(e.NeverReceived)
}

// NeverReceivedSet returns the never-received labels as a lookup set.
func (e Equipment) NeverReceivedSet() map[Item]struct{} {
	set := make(map[Item]struct{}, len(e.NeverReceived))
	for _, label := range e.NeverReceived {
		set[Item(label)] = struct{}{}
	}
	return set
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func removeString(list []string, v string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}

func uniqueStrings(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
