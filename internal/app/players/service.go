package players

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/preston-bernstein/equipment-tracker/internal/roster"
	"github.com/preston-bernstein/equipment-tracker/internal/store"
)

// Roster is the canonical, deduplicated roster the service reads from.
type Roster interface {
	Players() []roster.Player
	Player(id string) (roster.Player, bool)
	Resolver() *roster.Resolver
}

// Writer persists manual edits.
type Writer interface {
	Create(ctx context.Context, p roster.Player) (string, error)
	Update(ctx context.Context, id string, f store.Fields) error
}

// Service coordinates player reads over the canonical roster and writes to the store.
type Service struct {
	roster Roster
	writer Writer
}

// NewService constructs a Service.
func NewService(r Roster, w Writer) *Service {
	return &Service{roster: r, writer: w}
}

// Filter narrows the roster listing. Empty fields match everything.
type Filter struct {
	Query    string
	Grade    string
	Position string
	Period   string
}

// Listing is a filtered roster. UnknownGrade is only populated when a grade
// filter is set and holds players without a grade that match the other filters.
type Listing struct {
	Players      []roster.Player
	UnknownGrade []roster.Player
}

// List applies f to the canonical roster.
func (s *Service) List(f Filter) Listing {
	all := s.roster.Players()
	query := strings.ToLower(strings.TrimSpace(f.Query))
	position := strings.ToLower(f.Position)

	base := make([]roster.Player, 0, len(all))
	for _, p := range all {
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if position != "" && !strings.Contains(strings.ToLower(p.Position), position) {
			continue
		}
		base = append(base, p)
	}

	out := Listing{Players: make([]roster.Player, 0, len(base))}
	for _, p := range base {
		if f.Period != "" && p.Period != f.Period {
			continue
		}
		if f.Grade != "" && p.Grade != f.Grade {
			continue
		}
		out.Players = append(out.Players, p)
	}
	sortPlayers(out.Players, f.Period != "")

	if f.Grade != "" {
		out.UnknownGrade = make([]roster.Player, 0)
		for _, p := range base {
			if !p.HasGrade() {
				out.UnknownGrade = append(out.UnknownGrade, p)
			}
		}
		sort.SliceStable(out.UnknownGrade, func(i, j int) bool {
			return lessName(out.UnknownGrade[i].Name, out.UnknownGrade[j].Name)
		})
	}
	return out
}

func matchesQuery(p roster.Player, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	if p.HasNumber() && strings.Contains(strconv.Itoa(*p.Number), query) {
		return true
	}
	return strings.Contains(strings.ToLower(p.StudentID), query)
}

// sortPlayers orders by period then name when a period filter is active or
// both players have a period, otherwise by name.
func sortPlayers(players []roster.Player, byPeriod bool) {
	sort.SliceStable(players, func(i, j int) bool {
		a, b := players[i], players[j]
		if (byPeriod || (a.Period != "" && b.Period != "")) && a.Period != b.Period {
			return a.Period < b.Period
		}
		return lessName(a.Name, b.Name)
	})
}

func lessName(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

// Detail is a player with checklist answers resolved.
type Detail struct {
	Player     roster.Player   `json:"player"`
	Required   []roster.Item   `json:"requiredItems"`
	Missing    []roster.Item   `json:"missingItems"`
	Progress   roster.Progress `json:"progress"`
	Percent    int             `json:"percent"`
	JerseyOnly bool            `json:"jerseyOnly"`
}

// Describe resolves the checklist for p.
func (s *Service) Describe(p roster.Player) Detail {
	r := s.roster.Resolver()
	progress := r.Progress(p)
	return Detail{
		Player:     p,
		Required:   r.RequiredItems(p),
		Missing:    r.MissingItems(p),
		Progress:   progress,
		Percent:    progress.Percent(),
		JerseyOnly: r.IsJerseyOnly(p),
	}
}

// PlayerByID returns the canonical player with its checklist resolved.
func (s *Service) PlayerByID(id string) (Detail, error) {
	p, ok := s.roster.Player(id)
	if !ok {
		return Detail{}, fmt.Errorf("player %s: %w", id, store.ErrNotFound)
	}
	return s.Describe(p), nil
}

// AddPlayer stores a manually entered player with the add-player defaults applied.
func (s *Service) AddPlayer(ctx context.Context, p roster.Player) (string, error) {
	id, err := s.writer.Create(ctx, roster.NewPlayer(p))
	if err != nil {
		return "", fmt.Errorf("add player: %w", err)
	}
	return id, nil
}

// EquipmentUpdate is an edit from the equipment form. Number is nil when the
// jersey number is left alone; otherwise it is parsed and an empty or invalid
// value clears the number.
type EquipmentUpdate struct {
	Equipment roster.Equipment
	Number    *string
}

// UpdateEquipment writes the equipment record, and the jersey number when
// provided, as one partial update.
func (s *Service) UpdateEquipment(ctx context.Context, id string, u EquipmentUpdate) error {
	eq := u.Equipment.Clone()
	eq.Normalize()

	fields := store.Fields{Equipment: &eq}
	if u.Number != nil {
		fields.SetNumber = true
		fields.Number = roster.ParseNumber(*u.Number)
	}
	if err := s.writer.Update(ctx, id, fields); err != nil {
		return fmt.Errorf("update equipment: %w", err)
	}
	return nil
}
