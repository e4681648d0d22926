package builder

import (
	"fmt"

	"armatupc/internal/domain"
)

// Selection is the in-progress configuration: component slugs keyed by
// slot category.
type Selection map[domain.Category][]string

// Select places a component slug into its slot. Single-component slots
// are overwritten; multi-component slots (RAM, storage) append.
func (s Selection) Select(cat domain.Category, slug string) {
	info, ok := SlotFor(cat)
	if !ok {
		return
	}
	if info.AllowMultiple {
		s[cat] = append(s[cat], slug)
		return
	}
	s[cat] = []string{slug}
}

// Remove drops the component at the given index within a slot. Out of
// range indexes are a no-op.
func (s Selection) Remove(cat domain.Category, index int) {
	current := s[cat]
	if index < 0 || index >= len(current) {
		return
	}
	s[cat] = append(current[:index:index], current[index+1:]...)
	if len(s[cat]) == 0 {
		delete(s, cat)
	}
}

// Slugs returns every selected slug in slot display order.
func (s Selection) Slugs() []string {
	var out []string
	for _, slot := range slots {
		out = append(out, s[slot.Category]...)
	}
	return out
}

// Count returns the total number of selected components.
func (s Selection) Count() int {
	n := 0
	for _, slugs := range s {
		n += len(slugs)
	}
	return n
}

// SlotLabel renders the storefront summary for one slot: "No
// seleccionado" when empty, otherwise "Nx seleccionado(s)".
func (s Selection) SlotLabel(cat domain.Category) string {
	n := len(s[cat])
	switch n {
	case 0:
		return "No seleccionado"
	case 1:
		return "1x seleccionado"
	}
	return fmt.Sprintf("%dx seleccionados", n)
}
