package builder

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Mi Configuración"

var exportHeader = []any{"Categoría", "Componente", "Marca", "Precio", "Link"}

var exportColWidths = []struct {
	col   string
	width float64
}{
	{"A", 18}, {"B", 42}, {"C", 18}, {"D", 14}, {"E", 50},
}

// Export renders the selection as an xlsx workbook: one row per selected
// component and a trailing total row.
func (s *Service) Export(ctx context.Context, sel Selection) ([]byte, error) {
	summary, err := s.Summarize(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("builder.Export: %w", err)
	}
	return renderWorkbook(summary)
}

// ExportBuild renders one of the user's saved builds as an xlsx workbook.
// Prices reflect the catalog at export time, not the saved total.
func (s *Service) ExportBuild(ctx context.Context, userID, buildID uuid.UUID) ([]byte, error) {
	b, err := s.GetBuild(ctx, userID, buildID)
	if err != nil {
		return nil, err
	}

	sel := make(Selection, len(b.Components))
	for cat, slugs := range b.Components {
		sel[cat] = append([]string(nil), slugs...)
	}
	return s.Export(ctx, sel)
}

func renderWorkbook(summary *Summary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for _, cw := range exportColWidths {
		if err := f.SetColWidth(exportSheet, cw.col, cw.col, cw.width); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	row := 2
	for _, slot := range summary.Slots {
		for _, sc := range slot.Components {
			link := ""
			if sc.Offer != nil {
				link = sc.Offer.URL
			}
			cells := []any{
				slot.Slot.Label,
				sc.Component.Name,
				sc.Component.Brand,
				sc.Price,
				link,
			}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return nil, fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetSheetRow(exportSheet, cell, &cells); err != nil {
				return nil, fmt.Errorf("write row: %w", err)
			}
			row++
		}
	}

	totalCells := []any{"", "", "Total", summary.TotalPrice, ""}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return nil, fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, cell, &totalCells); err != nil {
		return nil, fmt.Errorf("write total row: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
