// Package builder implements the PC build configurator: slot selection,
// price aggregation, saved builds and spreadsheet export.
package builder

import "armatupc/internal/domain"

// SlotInfo describes one configurator slot as shown to the storefront.
type SlotInfo struct {
	Category      domain.Category
	Label         string
	Icon          string
	AllowMultiple bool
}

// slots is the fixed configurator layout. Only RAM and storage accept
// more than one component.
var slots = []SlotInfo{
	{Category: domain.CategoryCPU, Label: "Procesador", Icon: "cpu"},
	{Category: domain.CategoryMotherboard, Label: "Placa Madre", Icon: "circuit-board"},
	{Category: domain.CategoryRAM, Label: "Memoria RAM", Icon: "memory-stick", AllowMultiple: true},
	{Category: domain.CategoryGPU, Label: "Tarjeta de Video", Icon: "gpu"},
	{Category: domain.CategoryStorage, Label: "Almacenamiento", Icon: "hard-drive", AllowMultiple: true},
	{Category: domain.CategoryPowerSupply, Label: "Fuente de Poder", Icon: "plug-zap"},
	{Category: domain.CategoryCase, Label: "Gabinete", Icon: "pc-case"},
}

// Slots returns the configurator slots in display order.
func Slots() []SlotInfo {
	out := make([]SlotInfo, len(slots))
	copy(out, slots)
	return out
}

// SlotFor returns the slot info for a category, if it is a build slot.
func SlotFor(cat domain.Category) (SlotInfo, bool) {
	for _, s := range slots {
		if s.Category == cat {
			return s, true
		}
	}
	return SlotInfo{}, false
}
