package model

import "time"

// PantryEntry is one ingredient held in a user's pantry.
type PantryEntry struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// Pantry is a user's alacena: the ingredients on hand, in insertion order.
// Entry names are unique within a pantry.
type Pantry struct {
	UserID    string        `json:"user_id"`
	Entries   []PantryEntry `json:"entries"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Entry returns the entry with the given name (exact, case-sensitive match).
func (p *Pantry) Entry(name string) (PantryEntry, bool) {
	for _, e := range p.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return PantryEntry{}, false
}

// Add merges quantity into the named entry, appending it when absent.
// It reports whether a new entry was created.
func (p *Pantry) Add(name string, quantity float64) bool {
	for i := range p.Entries {
		if p.Entries[i].Name == name {
			p.Entries[i].Quantity += quantity
			return false
		}
	}
	p.Entries = append(p.Entries, PantryEntry{Name: name, Quantity: quantity})
	return true
}

// Remove drops every entry with the given name. Removing a missing name is a no-op.
func (p *Pantry) Remove(name string) {
	kept := p.Entries[:0]
	for _, e := range p.Entries {
		if e.Name != name {
			kept = append(kept, e)
		}
	}
	p.Entries = kept
}
