package roster

// Item is a checklist label as shown to coaches and stored in never-received lists.
type Item string

const (
	ItemJerseyRed          Item = "Jersey - Red"
	ItemJerseySophomoreRed Item = "Jersey - Sophomore Red"
	ItemJerseyBlack        Item = "Jersey - Black"
	ItemJerseyWhite        Item = "Jersey - White"
	ItemPantsRed           Item = "Pants - Red"
	ItemPantsBlack         Item = "Pants - Black"
	ItemPantsWhite         Item = "Pants - White"
	ItemHelmet             Item = "Helmet"
	ItemGuardian           Item = "Guardian"
	ItemShoulder           Item = "Shoulder"
	ItemGirdle             Item = "Girdle"
	ItemKnee               Item = "Knee"
	ItemPracticePants      Item = "Practice Pants"
	ItemBelt               Item = "Belt"
	ItemBook               Item = "Win in the Dark (Book)"
)

// Checklist is every tracked item in canonical display order.
var Checklist = []Item{
	ItemJerseyRed,
	ItemJerseySophomoreRed,
	ItemJerseyBlack,
	ItemJerseyWhite,
	ItemPantsRed,
	ItemPantsBlack,
	ItemPantsWhite,
	ItemHelmet,
	ItemGuardian,
	ItemShoulder,
	ItemGirdle,
	ItemKnee,
	ItemPracticePants,
	ItemBelt,
	ItemBook,
}

var defaultRequired = []Item{
	ItemJerseyRed,
	ItemJerseyBlack,
	ItemJerseyWhite,
	ItemPantsRed,
	ItemPantsBlack,
	ItemPantsWhite,
	ItemHelmet,
	ItemGuardian,
	ItemShoulder,
	ItemGirdle,
	ItemKnee,
	ItemPracticePants,
	ItemBelt,
	ItemBook,
}

var sophomoreRequired = []Item{
	ItemJerseySophomoreRed,
	ItemJerseyWhite,
	ItemPantsRed,
	ItemHelmet,
	ItemGuardian,
	ItemShoulder,
	ItemGirdle,
	ItemKnee,
	ItemPracticePants,
	ItemBelt,
	ItemBook,
}

// DefaultChecklist returns a copy of the varsity checklist.
func DefaultChecklist() []Item {
	return append([]Item{}, defaultRequired...)
}

// SophomoreChecklist returns a copy of the sophomore checklist.
func SophomoreChecklist() []Item {
	return append([]Item{}, sophomoreRequired...)
}

// IsChecklistItem reports whether label names a fixed checklist item.
func IsChecklistItem(label string) bool {
	for _, item := range Checklist {
		if string(item) == label {
			return true
		}
	}
	return false
}

// Has reports whether the flag backing item is set.
func (e Equipment) Has(item Item) bool {
	switch item {
	case ItemJerseyRed:
		return e.Jersey.Red
	case ItemJerseySophomoreRed:
		return e.Jersey.SophomoreRed
	case ItemJerseyBlack:
		return e.Jersey.Black
	case ItemJerseyWhite:
		return e.Jersey.White
	case ItemPantsRed:
		return e.Pants.Red
	case ItemPantsBlack:
		return e.Pants.Black
	case ItemPantsWhite:
		return e.Pants.White
	case ItemHelmet:
		return e.Helmet
	case ItemGuardian:
		return e.Guardian
	case ItemShoulder:
		return e.Shoulder
	case ItemGirdle:
		return e.Girdle
	case ItemKnee:
		return e.Knee
	case ItemPracticePants:
		return e.PracticePants
	case ItemBelt:
		return e.Belt
	case ItemBook:
		return e.WinInTheDark
	default:
		return false
	}
}

// Set updates the flag backing item; unknown items are ignored.
func (e *Equipment) Set(item Item, returned bool) {
	switch item {
	case ItemJerseyRed:
		e.Jersey.Red = returned
	case ItemJerseySophomoreRed:
		e.Jersey.SophomoreRed = returned
	case ItemJerseyBlack:
		e.Jersey.Black = returned
	case ItemJerseyWhite:
		e.Jersey.White = returned
	case ItemPantsRed:
		e.Pants.Red = returned
	case ItemPantsBlack:
		e.Pants.Black = returned
	case ItemPantsWhite:
		e.Pants.White = returned
	case ItemHelmet:
		e.Helmet = returned
	case ItemGuardian:
		e.Guardian = returned
	case ItemShoulder:
		e.Shoulder = returned
	case ItemGirdle:
		e.Girdle = returned
	case ItemKnee:
		e.Knee = returned
	case ItemPracticePants:
		e.PracticePants = returned
	case ItemBelt:
		e.Belt = returned
	case ItemBook:
		e.WinInTheDark = returned
	}
}
