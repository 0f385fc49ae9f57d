// =============================================================================
// Shift Reconciliation - XLSX Export Boundary
// =============================================================================
//
// This module renders the reconciliation statement into a single-sheet
// XLSX workbook: Shift Info, Fuel Sales, Fuel Summary, Indent Sales,
// Lubricants, Cash Summary, Expenses, and the Grand Total Summary, each
// as a header row, data rows and a trailing total row.
//
// ROUNDING:
//   Line amounts are written at two decimal places; the grand summary
//   is written in whole rupees. The statement itself stays at full
//   precision - rounding happens here, at the presentation boundary,
//   and never feeds back into the sums.
//
// FILE NAMING:
//   {DD-MM-YY}_{shiftTime}_Report.xlsx, e.g. 29-08-26_morning_Report.xlsx.
//   A name collision gets a short unique suffix via the file manager.
//
// =============================================================================

package export

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/trinityfuels/shift-recon/internal/domain"
	"github.com/trinityfuels/shift-recon/internal/recon"
	"github.com/trinityfuels/shift-recon/pkg/utils"
)

// SheetName is the single worksheet every report is written to.
const SheetName = "Shift Report"

// Writer renders reconciliation statements to XLSX files.
type Writer struct {
	station string
	files   *utils.FileManager
}

// NewWriter creates a Writer. The station name becomes the report's
// title row.
func NewWriter(station string, files *utils.FileManager) *Writer {
	return &Writer{station: station, files: files}
}

// =============================================================================
// WRITE
// =============================================================================

// Write renders the statement into the output directory and returns
// the written file's path. On failure the session data is untouched;
// the caller reports a single retryable error to the attendant.
func (w *Writer) Write(report *domain.ReportData, st *recon.Statement) (string, error) {
	if err := w.files.EnsureDirectories(); err != nil {
		return "", fmt.Errorf("failed to prepare output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return "", fmt.Errorf("failed to name report sheet: %w", err)
	}

	for i, row := range w.buildRows(report, st) {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return "", fmt.Errorf("failed to write report row %d: %w", i+1, err)
		}
	}

	path := w.files.UniqueOutputPath(FileName(&report.Shift))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	return path, nil
}

// FileName builds the report file name from the shift's date and time:
// {DD-MM-YY}_{shiftTime}_Report.xlsx.
func FileName(shift *domain.ShiftData) string {
	return fmt.Sprintf("%s_%s_Report.xlsx", shift.Date.Format("02-01-06"), shift.ShiftTime)
}

// =============================================================================
// ROW LAYOUT
// =============================================================================

// buildRows assembles the whole worksheet as ordered rows.
func (w *Writer) buildRows(report *domain.ReportData, st *recon.Statement) [][]any {
	shift := report.Shift
	receipt := report.Receipt

	rows := [][]any{
		{w.station},
		{"Date", shift.Date.Format("02-01-2006")},
		{"Shift Time", string(shift.ShiftTime)},
		{"Dispenser", shift.Dispenser},
		{"Attendants", strings.Join(shift.Attendants, ", ")},
		{"Fuel Prices", fmt.Sprintf("HSD ₹%s, MS ₹%s",
			shift.FuelPrices.HSD.StringFixed(2), shift.FuelPrices.MS.StringFixed(2))},
	}

	// Fuel Sales: one row per nozzle. Untouched nozzles show "-" so an
	// incomplete shift is distinguishable from a zero-sale nozzle.
	rows = append(rows,
		[]any{},
		[]any{"Fuel Sales"},
		[]any{"Nozzle", "FuelType", "Opening", "Closing", "TestQty", "SaleQty", "Price", "Amount"},
	)
	for _, r := range st.NozzleRows {
		if !r.Touched {
			rows = append(rows, []any{
				fmt.Sprintf("N%d", r.Nozzle), string(r.FuelType),
				"-", "-", "-", "-", money(r.Price), "-",
			})
			continue
		}
		rows = append(rows, []any{
			fmt.Sprintf("N%d", r.Nozzle), string(r.FuelType),
			money(r.Opening), money(r.Closing), money(r.TestQty),
			money(r.SaleQty), money(r.Price), money(r.Amount),
		})
	}
	rows = append(rows, []any{"Total", "", "", "", "", "", "", money(st.TotalFuelSales)})

	// Fuel Summary: per fuel type, fixed HSD/MS order.
	rows = append(rows,
		[]any{},
		[]any{"Fuel Summary"},
		[]any{"FuelType", "TotalQty", "Rate", "TotalAmount"},
	)
	for _, r := range st.FuelSummary {
		rows = append(rows, []any{string(r.FuelType), money(r.Qty), money(r.Rate), money(r.Amount)})
	}
	rows = append(rows, []any{"Total", "", "", money(st.TotalFuelSales)})

	// Indent Sales.
	rows = append(rows,
		[]any{},
		[]any{"Indent Sales"},
		[]any{"Customer", "Vehicle", "FuelType", "Qty", "Price", "Amount", "IndentSlip", "Time"},
	)
	for _, r := range st.IndentRows {
		rows = append(rows, []any{
			r.Customer, r.Vehicle, string(r.FuelType),
			money(r.Qty), money(r.Price), money(r.Amount), r.Slip, r.Time,
		})
	}
	rows = append(rows, []any{"Total", "", "", "", "", money(st.TotalIndent), "", ""})

	// Lubricants: zero-quantity catalog lines are hidden, but the total
	// still covers the whole catalog (hidden lines contribute 0).
	rows = append(rows,
		[]any{},
		[]any{"Lubricants"},
		[]any{"Name", "Qty", "Price", "Amount"},
	)
	for _, r := range st.VisibleLubricantRows() {
		rows = append(rows, []any{r.Name, money(r.Qty), money(r.Price), money(r.Amount)})
	}
	rows = append(rows, []any{"Total", "", "", money(st.TotalLubricants)})

	// Cash Summary: notes in fixed descending order, then coins and the
	// digital channels.
	rows = append(rows,
		[]any{},
		[]any{"Cash Summary"},
		[]any{"Denomination", "Count", "Amount"},
	)
	for _, r := range st.DenominationRows {
		rows = append(rows, []any{fmt.Sprintf("₹%d", r.Denomination), r.Count, money(r.Amount)})
	}
	rows = append(rows,
		[]any{"Coins", "", money(receipt.Coins)},
		[]any{"Cash Total", "", money(st.CashTotal)},
		[]any{"Paytm", "", money(receipt.Paytm)},
		[]any{"Swipe", "", money(receipt.Swipe)},
		[]any{"Scheme", "", money(receipt.Scheme)},
		[]any{"Total", "", money(st.TotalReceipt)},
	)

	// Expenses.
	rows = append(rows,
		[]any{},
		[]any{"Expenses"},
		[]any{"Category", "Amount", "Note"},
	)
	for _, r := range st.ExpenseRows {
		rows = append(rows, []any{r.Category, money(r.Amount), r.Note})
	}
	rows = append(rows, []any{"Total", money(st.TotalExpenses), ""})

	// Grand summary, in whole rupees.
	rows = append(rows,
		[]any{},
		[]any{"Grand Total Summary"},
		[]any{"Total Fuel Sales", rupees(st.TotalFuelSales)},
		[]any{"Total Indent Sales", rupees(st.TotalIndent)},
		[]any{"Total Lubricants", rupees(st.TotalLubricants)},
		[]any{"Total Expenses", rupees(st.TotalExpenses)},
		[]any{"Total Cash Collected", rupees(st.TotalReceipt)},
		[]any{"Excess/Shortage", rupees(st.ExcessOrShort)},
	)

	return rows
}

// money renders a full-precision decimal as a two-decimal-place cell
// value.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// rupees renders a full-precision decimal as a whole-rupee cell value.
func rupees(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
