package domain

import (
	"time"

	"github.com/google/uuid"
)

// Component is a purchasable PC part in the catalog.
type Component struct {
	ID           uuid.UUID
	Name         string
	SKU          string
	Brand        string
	Category     Category
	Slug         string
	Description  string
	ImageURL     string
	Price        int64 // reference price in CLP, used when no store price exists yet
	Stock        int
	Specs        map[string]string
	Prices       []PriceEntry
	PriceHistory []PriceHistoryPoint
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BestPrice returns the minimum advertised price across all store
// entries, or 0 when no price has been recorded.
func (c *Component) BestPrice() int64 {
	if len(c.Prices) == 0 {
		return 0
	}
	best := c.Prices[0].Price
	for _, p := range c.Prices[1:] {
		if p.Price < best {
			best = p.Price
		}
	}
	return best
}

// BestPriceEntry returns the entry carrying the minimum price, or nil
// when the price list is empty. Ties resolve to the first entry seen.
func (c *Component) BestPriceEntry() *PriceEntry {
	if len(c.Prices) == 0 {
		return nil
	}
	best := &c.Prices[0]
	for i := range c.Prices[1:] {
		if c.Prices[i+1].Price < best.Price {
			best = &c.Prices[i+1]
		}
	}
	return best
}

// PriceEntry is one store's advertised price for a component.
type PriceEntry struct {
	StoreID string
	Price   int64
	URL     string
}

// PriceHistoryPoint records one day's price for trend display.
// It is never used in any computation.
type PriceHistoryPoint struct {
	Date        time.Time
	NormalPrice int64
	OfferPrice  int64
}

// Store is a retailer whose prices the catalog tracks.
type Store struct {
	ID      string
	Name    string
	LogoURL string
}

// KnownStores is the fixed set of tracked retailers. The AI price
// discovery flow may only return store IDs from this list.
var KnownStores = []Store{
	{ID: "store-1", Name: "PC Factory", LogoURL: "/logos/pc-factory.png"},
	{ID: "store-2", Name: "SP Digital", LogoURL: "/logos/sp-digital.png"},
	{ID: "store-3", Name: "Infor-Ingen", LogoURL: "/logos/infor-ingen.png"},
}

// StoreByID looks up a known store.
func StoreByID(id string) (Store, bool) {
	for _, s := range KnownStores {
		if s.ID == id {
			return s, true
		}
	}
	return Store{}, false
}
