package builder

import (
	"context"
	"fmt"
	"log/slog"

	"armatupc/internal/domain"
)

// SelectedComponent is one resolved slot entry with its cheapest offer.
type SelectedComponent struct {
	Component *domain.Component
	Price     int64              // best price across stores, 0 when no offers
	Offer     *domain.PriceEntry // the entry behind Price, nil when no offers
}

// SlotSummary is the storefront view of one configurator slot.
type SlotSummary struct {
	Slot       SlotInfo
	Label      string
	Components []SelectedComponent
	Subtotal   int64
}

// Summary is the full configurator state: every slot in display order
// plus the running total.
type Summary struct {
	Slots      []SlotSummary
	Count      int
	TotalPrice int64
}

// Summarize resolves the selection against the catalog and computes the
// per-slot and total prices. Slugs no longer in the catalog are skipped
// with a warning and contribute nothing to the total.
func (s *Service) Summarize(ctx context.Context, sel Selection) (*Summary, error) {
	resolved, err := s.products.GetBySlugs(ctx, sel.Slugs())
	if err != nil {
		return nil, fmt.Errorf("builder.Summarize: %w", err)
	}

	out := &Summary{}
	for _, slot := range slots {
		ss := SlotSummary{
			Slot:  slot,
			Label: sel.SlotLabel(slot.Category),
		}
		for _, slug := range sel[slot.Category] {
			c, ok := resolved[slug]
			if !ok {
				s.log.WarnContext(ctx, "selected component missing from catalog",
					slog.String("slug", slug))
				continue
			}
			sc := SelectedComponent{
				Component: c,
				Price:     c.BestPrice(),
				Offer:     c.BestPriceEntry(),
			}
			ss.Components = append(ss.Components, sc)
			ss.Subtotal += sc.Price
			out.Count++
		}
		out.TotalPrice += ss.Subtotal
		out.Slots = append(out.Slots, ss)
	}
	return out, nil
}

// TotalPrice computes just the running total for a selection.
func (s *Service) TotalPrice(ctx context.Context, sel Selection) (int64, error) {
	summary, err := s.Summarize(ctx, sel)
	if err != nil {
		return 0, err
	}
	return summary.TotalPrice, nil
}
