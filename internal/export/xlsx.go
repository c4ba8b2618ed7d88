package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/drapebook/drapebook/internal/booking"
)

// OrdersSheet is the worksheet name used by the XLSX export.
const OrdersSheet = "Orders"

// WriteOrdersXLSX writes the order table to a single-sheet workbook. Numeric columns are
// stored as numbers.
func WriteOrdersXLSX(w io.Writer, orders []booking.Order) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", OrdersSheet); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}
	header := make([]any, len(OrderColumns))
	for i, c := range OrderColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(OrdersSheet, "A1", &header); err != nil {
		return fmt.Errorf("export: header: %w", err)
	}
	for i, o := range orders {
		row := []any{
			o.CustomerName,
			o.Phone,
			string(o.ServiceType),
			string(o.Location),
			o.SareeCount,
			o.EventDate,
			o.TotalAmount,
			o.AmountPaid,
			o.Balance(),
			string(o.Status),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(OrdersSheet, cell, &row); err != nil {
			return fmt.Errorf("export: row %d: %w", i+2, err)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}
