package entity

// Slot is one of the fixed one-hour candidate appointment intervals offered
// per day. The catalog is identical for every doctor and every date; it is a
// configuration constant, never persisted.
type Slot struct {
	ID        string
	StartTime string // "HH:MM"
	EndTime   string // "HH:MM"
}

// Label renders the slot as shown to patients: "HH:MM - HH:MM"
func (s Slot) Label() string {
	return s.StartTime + " - " + s.EndTime
}

// slotTemplate is the fixed daily catalog: four morning and four afternoon
// slots with a midday gap.
var slotTemplate = []Slot{
	{ID: "1", StartTime: "08:00", EndTime: "09:00"},
	{ID: "2", StartTime: "09:00", EndTime: "10:00"},
	{ID: "3", StartTime: "10:00", EndTime: "11:00"},
	{ID: "4", StartTime: "11:00", EndTime: "12:00"},
	{ID: "5", StartTime: "14:00", EndTime: "15:00"},
	{ID: "6", StartTime: "15:00", EndTime: "16:00"},
	{ID: "7", StartTime: "16:00", EndTime: "17:00"},
	{ID: "8", StartTime: "17:00", EndTime: "18:00"},
}

// SlotTemplate returns the ordered daily slot catalog. Callers receive a copy
// so the template cannot be mutated.
func SlotTemplate() []Slot {
	slots := make([]Slot, len(slotTemplate))
	copy(slots, slotTemplate)
	return slots
}

// SlotByID looks up a template slot by its id. Returns nil when the id is not
// part of the catalog.
func SlotByID(id string) *Slot {
	for _, s := range slotTemplate {
		if s.ID == id {
			slot := s
			return &slot
		}
	}
	return nil
}
