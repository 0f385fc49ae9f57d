// =============================================================================
// Shift Reconciliation - Calculator
// =============================================================================
//
// This package derives the review-screen tables and the final
// excess/shortage figure from a completed report composite. Every
// function is pure and deterministic given its inputs.
//
// RECONCILIATION FORMULA:
//   excessOrShort = totalFuelSales + totalLubricants
//                 - totalReceipt - totalIndent - totalExpenses
//
//   Indent and lubricant sales are value dispensed but not collected as
//   cash or digital payment at the pump, so they are netted out of the
//   collected side. A non-zero result is an over/under collection by
//   the attendant.
//
// PRECISION:
//   All sums are carried at full decimal precision. Rounding (two
//   decimal places for line items, whole rupees for the grand summary)
//   is a display concern and happens at the export boundary only.
//
// =============================================================================

package recon

import (
	"github.com/shopspring/decimal"

	"github.com/trinityfuels/shift-recon/internal/domain"
)

// =============================================================================
// ROW TYPES
// =============================================================================

// NozzleRow is one nozzle's line in the Fuel Sales table.
type NozzleRow struct {
	Nozzle   int
	FuelType domain.FuelType
	Opening  decimal.Decimal
	Closing  decimal.Decimal
	TestQty  decimal.Decimal
	GrossQty decimal.Decimal
	SaleQty  decimal.Decimal
	Price    decimal.Decimal
	Amount   decimal.Decimal

	// Touched is false while the nozzle's meters have not been entered.
	// Untouched rows display as "not yet available" but still
	// contribute zero to the totals, so totals stay well-defined
	// mid-entry.
	Touched bool
}

// FuelSummaryRow aggregates sale quantity and amount for one fuel type.
type FuelSummaryRow struct {
	FuelType domain.FuelType
	Qty      decimal.Decimal
	Rate     decimal.Decimal
	Amount   decimal.Decimal
}

// IndentRow is one credit sale line with its derived amount.
type IndentRow struct {
	Customer string
	Vehicle  string
	FuelType domain.FuelType
	Qty      decimal.Decimal
	Price    decimal.Decimal
	Amount   decimal.Decimal
	Slip     int
	Time     string
}

// LubricantRow is one lubricant line with its derived amount.
type LubricantRow struct {
	Name   string
	Qty    decimal.Decimal
	Price  decimal.Decimal
	Amount decimal.Decimal
}

// ExpenseRow is one reportable expense line.
type ExpenseRow struct {
	Category string
	Amount   decimal.Decimal
	Note     string
}

// DenominationRow is one counted note line in the Cash Summary table.
type DenominationRow struct {
	Denomination int
	Count        int64
	Amount       decimal.Decimal
}

// =============================================================================
// STATEMENT
// =============================================================================

// Statement is the full reconciliation derived from a report composite:
// every table the review screen and the export render, plus the section
// totals and the excess/shortage residual.
type Statement struct {
	NozzleRows       []NozzleRow
	FuelSummary      []FuelSummaryRow
	IndentRows       []IndentRow
	LubricantRows    []LubricantRow
	ExpenseRows      []ExpenseRow
	DenominationRows []DenominationRow

	TotalFuelSales  decimal.Decimal
	TotalIndent     decimal.Decimal
	TotalLubricants decimal.Decimal
	TotalExpenses   decimal.Decimal
	CashTotal       decimal.Decimal
	DigitalTotal    decimal.Decimal
	TotalReceipt    decimal.Decimal
	ExcessOrShort   decimal.Decimal
}

// VisibleLubricantRows returns the lubricant lines with a non-zero
// quantity. Zero-quantity catalog lines are hidden from the rendered
// table but still included in TotalLubricants (they contribute 0).
func (s *Statement) VisibleLubricantRows() []LubricantRow {
	var rows []LubricantRow
	for _, r := range s.LubricantRows {
		if r.Qty.IsPositive() {
			rows = append(rows, r)
		}
	}
	return rows
}

// =============================================================================
// PER-READING DERIVATIONS
// =============================================================================

// SaleQty is the sellable volume for one nozzle: closing minus opening
// minus the calibration test quantity.
func SaleQty(r domain.Reading) decimal.Decimal {
	return r.Closing.Sub(r.Opening).Sub(r.TestQty)
}

// SaleAmount is the sale value for one nozzle at the shift's prices.
func SaleAmount(r domain.Reading, prices domain.FuelPrices) decimal.Decimal {
	return SaleQty(r).Mul(prices.For(r.FuelType))
}

// IndentAmount is the billed value of one credit sale at the shift's
// prices.
func IndentAmount(e domain.IndentSaleEntry, prices domain.FuelPrices) decimal.Decimal {
	return e.Quantity.Mul(prices.For(e.FuelType))
}

// =============================================================================
// FUEL SUMMARY
// =============================================================================

// FuelSummary groups the readings by fuel type and sums sale quantity
// and amount per group. Rows appear in the fixed HSD, MS order, one row
// per fuel type present among the readings.
func FuelSummary(readings []domain.Reading, prices domain.FuelPrices) []FuelSummaryRow {
	qty := make(map[domain.FuelType]decimal.Decimal)
	amount := make(map[domain.FuelType]decimal.Decimal)
	present := make(map[domain.FuelType]bool)

	for _, r := range readings {
		present[r.FuelType] = true
		if r.Untouched() {
			// Contributes zero, same as in TotalFuelSales, so grouped
			// and ungrouped sums stay equal mid-entry.
			continue
		}
		qty[r.FuelType] = qty[r.FuelType].Add(SaleQty(r))
		amount[r.FuelType] = amount[r.FuelType].Add(SaleAmount(r, prices))
	}

	var rows []FuelSummaryRow
	for _, fuel := range domain.FuelTypeOrder {
		if !present[fuel] {
			continue
		}
		rows = append(rows, FuelSummaryRow{
			FuelType: fuel,
			Qty:      qty[fuel],
			Rate:     prices.For(fuel),
			Amount:   amount[fuel],
		})
	}
	return rows
}

// =============================================================================
// STATEMENT BUILDER
// =============================================================================

// BuildStatement derives the complete reconciliation from the report
// composite.
func BuildStatement(report *domain.ReportData) *Statement {
	st := &Statement{}
	shift := report.Shift

	// Fuel sales, one row per nozzle.
	for _, r := range shift.Readings {
		st.NozzleRows = append(st.NozzleRows, NozzleRow{
			Nozzle:   r.Nozzle,
			FuelType: r.FuelType,
			Opening:  r.Opening,
			Closing:  r.Closing,
			TestQty:  r.TestQty,
			GrossQty: r.GrossQty(),
			SaleQty:  SaleQty(r),
			Price:    shift.FuelPrices.For(r.FuelType),
			Amount:   SaleAmount(r, shift.FuelPrices),
			Touched:  !r.Untouched(),
		})
		if !r.Untouched() {
			st.TotalFuelSales = st.TotalFuelSales.Add(SaleAmount(r, shift.FuelPrices))
		}
	}

	st.FuelSummary = FuelSummary(shift.Readings, shift.FuelPrices)

	// Indent sales. Blank placeholder rows never appear as line items.
	for _, e := range report.Indent {
		if e.IsBlank() {
			continue
		}
		amount := IndentAmount(e, shift.FuelPrices)
		st.IndentRows = append(st.IndentRows, IndentRow{
			Customer: e.CustomerName,
			Vehicle:  e.VehicleNumber,
			FuelType: e.FuelType,
			Qty:      e.Quantity,
			Price:    shift.FuelPrices.For(e.FuelType),
			Amount:   amount,
			Slip:     e.SlipNumber,
			Time:     e.Time,
		})
		st.TotalIndent = st.TotalIndent.Add(amount)
	}

	// Lubricants. Every catalog line is kept here; zero-quantity lines
	// are filtered at display time only (see VisibleLubricantRows).
	for _, l := range report.Lubricants {
		st.LubricantRows = append(st.LubricantRows, LubricantRow{
			Name:   l.Name,
			Qty:    l.Quantity,
			Price:  l.Price,
			Amount: l.Amount(),
		})
		st.TotalLubricants = st.TotalLubricants.Add(l.Amount())
	}

	// Expenses. Rows with a blank name or non-positive amount must not
	// appear as report line items and contribute nothing.
	for _, e := range report.Expenses {
		if e.ExpenseName == "" || !e.Amount.IsPositive() {
			continue
		}
		st.ExpenseRows = append(st.ExpenseRows, ExpenseRow{
			Category: e.ExpenseName,
			Amount:   e.Amount,
			Note:     e.Note,
		})
		st.TotalExpenses = st.TotalExpenses.Add(e.Amount)
	}

	// Cash: counted notes in fixed descending order, then coins.
	for _, d := range domain.DenominationOrder {
		count := report.Receipt.Count(d)
		amount := decimal.NewFromInt(int64(d)).Mul(decimal.NewFromInt(count))
		st.DenominationRows = append(st.DenominationRows, DenominationRow{
			Denomination: d,
			Count:        count,
			Amount:       amount,
		})
		st.CashTotal = st.CashTotal.Add(amount)
	}
	st.CashTotal = st.CashTotal.Add(report.Receipt.Coins)

	st.DigitalTotal = report.Receipt.Paytm.
		Add(report.Receipt.Swipe).
		Add(report.Receipt.Scheme)
	st.TotalReceipt = st.CashTotal.Add(st.DigitalTotal)

	st.ExcessOrShort = st.TotalFuelSales.
		Add(st.TotalLubricants).
		Sub(st.TotalReceipt).
		Sub(st.TotalIndent).
		Sub(st.TotalExpenses)

	return st
}
