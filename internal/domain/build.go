package domain

import (
	"time"

	"github.com/google/uuid"
)

// Build is a named, user-owned snapshot of a component selection.
//
// Components maps each build slot to the slugs chosen for it. The
// total price is computed once at save time from the then-current best
// prices; it is never recomputed. Builds are immutable: re-saving a
// selection creates a new build.
type Build struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Name       string
	Components map[Category][]string
	TotalPrice int64
	CreatedAt  time.Time
}

// ComponentCount returns the number of selected components across all
// slots.
func (b *Build) ComponentCount() int {
	n := 0
	for _, slugs := range b.Components {
		n += len(slugs)
	}
	return n
}
