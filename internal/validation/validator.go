// =============================================================================
// Shift Reconciliation - Validation Engine
// =============================================================================
//
// This package validates the data captured by each wizard section and
// gates progression to the export step. Validation is section-scoped:
// shift, lubricant, indent, expense and receipt each have an independent
// rule set; there is no combined schema object.
//
// VALIDATION STRATEGY:
//   1. Field-level: required fields, numeric bounds.
//   2. Cross-field: closing > opening, test quantity within the gross
//      delivered quantity, reading count implied by the dispenser.
//   3. Row-level exemption: an Indent or Expense row still in its
//      untouched initial state (IsBlank) is skipped entirely - an empty
//      optional row is "no entry yet", not an invalid entry.
//
// ERROR HANDLING:
//   - Errors are collected, not thrown: every validator walks its whole
//     section and returns all messages in one pass so the review screen
//     can show a complete list.
//   - Validators are total functions. They never panic and never return
//     a Go error; an empty slice means the section is valid.
//   - Messages inside repeated rows carry a 1-based row index, e.g.
//     "Indent Entry 2: Quantity must be greater than 0".
//
// =============================================================================

package validation

import (
	"fmt"
	"sort"

	"github.com/trinityfuels/shift-recon/internal/domain"
)

// =============================================================================
// SECTIONS
// =============================================================================

// Section names a data-entry section of the wizard.
type Section string

const (
	SectionShift     Section = "shift"
	SectionLubricant Section = "lubricant"
	SectionIndent    Section = "indent"
	SectionExpense   Section = "expense"
	SectionReceipt   Section = "receipt"
)

// Sections lists the data-entry sections in wizard order.
var Sections = []Section{
	SectionShift,
	SectionLubricant,
	SectionIndent,
	SectionExpense,
	SectionReceipt,
}

// Validate runs the named section's rule set against the report
// composite and returns the collected messages. Unknown sections are
// vacuously valid rather than an error, keeping the contract total.
func Validate(section Section, report *domain.ReportData) []string {
	switch section {
	case SectionShift:
		return Shift(&report.Shift)
	case SectionLubricant:
		return Lubricants(report.Lubricants)
	case SectionIndent:
		return Indent(report.Indent)
	case SectionExpense:
		return Expenses(report.Expenses)
	case SectionReceipt:
		return Receipt(&report.Receipt)
	default:
		return nil
	}
}

// =============================================================================
// SHIFT SECTION
// =============================================================================

// Shift validates the shift-entry aggregate: attendants, shift time,
// date, dispenser, fuel prices and every nozzle reading.
func Shift(s *domain.ShiftData) []string {
	var errs []string

	// Attendant cardinality: 1-3 names from the roster.
	switch {
	case len(s.Attendants) == 0:
		errs = append(errs, "At least one attendant is required")
	case len(s.Attendants) > 3:
		errs = append(errs, "No more than three attendants can be selected")
	}
	for _, name := range s.Attendants {
		if name == "" {
			errs = append(errs, "Attendant name cannot be blank")
		}
	}

	if !s.ShiftTime.Valid() {
		errs = append(errs, "Shift time must be morning or evening")
	}
	if s.Date.IsZero() {
		errs = append(errs, "Shift date is required")
	}

	if domain.NozzleCount(s.Dispenser) == 0 {
		errs = append(errs, "Dispenser must be 1 or 2")
	} else if want := domain.NozzleCount(s.Dispenser); len(s.Readings) != want {
		errs = append(errs, fmt.Sprintf("Dispenser %d requires %d nozzle readings", s.Dispenser, want))
	}

	if !s.FuelPrices.HSD.IsPositive() {
		errs = append(errs, "HSD price must be greater than 0")
	}
	if !s.FuelPrices.MS.IsPositive() {
		errs = append(errs, "MS price must be greater than 0")
	}

	seen := make(map[int]bool, len(s.Readings))
	for _, r := range s.Readings {
		errs = append(errs, reading(r)...)
		if r.Nozzle > 0 {
			if seen[r.Nozzle] {
				errs = append(errs, fmt.Sprintf("N%d: Nozzle number is duplicated", r.Nozzle))
			}
			seen[r.Nozzle] = true
		}
	}

	return errs
}

// reading validates one nozzle's meter state. Messages are prefixed
// with the nozzle label so the review screen can point at the row.
func reading(r domain.Reading) []string {
	var errs []string

	if r.Nozzle <= 0 {
		errs = append(errs, "Nozzle number must be greater than 0")
	}
	if !r.FuelType.Valid() {
		errs = append(errs, fmt.Sprintf("N%d: Fuel type must be HSD or MS", r.Nozzle))
	}
	if r.Opening.IsNegative() {
		errs = append(errs, fmt.Sprintf("N%d: Opening reading must be 0 or greater", r.Nozzle))
	}
	if r.Closing.Cmp(r.Opening) <= 0 {
		errs = append(errs, fmt.Sprintf("N%d: Closing reading must be greater than opening reading", r.Nozzle))
	}
	if r.TestQty.IsNegative() {
		errs = append(errs, fmt.Sprintf("N%d: Test quantity must be 0 or greater", r.Nozzle))
	} else if r.Closing.GreaterThan(r.Opening) && r.TestQty.GreaterThan(r.GrossQty()) {
		errs = append(errs, fmt.Sprintf("N%d: Test quantity must be less than total quantity", r.Nozzle))
	}

	return errs
}

// =============================================================================
// LUBRICANT SECTION
// =============================================================================

// Lubricants validates the catalog lines. Quantity zero is a valid
// value (nothing sold); prices must be positive because every line
// originates from the catalog.
func Lubricants(lines []domain.LubricantLine) []string {
	var errs []string

	for i, l := range lines {
		row := i + 1
		if l.Name == "" {
			errs = append(errs, fmt.Sprintf("Lubricant Entry %d: Name is required", row))
		}
		if !l.Price.IsPositive() {
			errs = append(errs, fmt.Sprintf("Lubricant Entry %d: Price must be greater than 0", row))
		}
		if l.Quantity.IsNegative() {
			errs = append(errs, fmt.Sprintf("Lubricant Entry %d: Quantity must be 0 or greater", row))
		}
	}

	return errs
}

// =============================================================================
// INDENT SECTION
// =============================================================================

// Indent validates the credit-sale rows. A row in its untouched initial
// state is exempt from every field rule; the exemption is decided once
// per row from the row's own values, before any field rule runs.
func Indent(entries []domain.IndentSaleEntry) []string {
	var errs []string

	for i, e := range entries {
		if e.IsBlank() {
			continue
		}
		row := i + 1

		if e.CustomerName == "" {
			errs = append(errs, fmt.Sprintf("Indent Entry %d: Customer name is required", row))
		}
		if e.VehicleNumber == "" {
			errs = append(errs, fmt.Sprintf("Indent Entry %d: Vehicle number is required", row))
		}
		if !e.FuelType.Valid() {
			errs = append(errs, fmt.Sprintf("Indent Entry %d: Fuel type must be HSD or MS", row))
		}
		if !e.Quantity.IsPositive() {
			errs = append(errs, fmt.Sprintf("Indent Entry %d: Quantity must be greater than 0", row))
		}
		if e.SlipNumber < 100 || e.SlipNumber > 999 {
			errs = append(errs, fmt.Sprintf("Indent Entry %d: Slip number must be between 100 and 999", row))
		}
		if e.Time == "" {
			errs = append(errs, fmt.Sprintf("Indent Entry %d: Time is required", row))
		} else if hour, ok := e.Hour(); !ok || hour < 6 || hour > 23 {
			errs = append(errs, fmt.Sprintf("Indent Entry %d: Fuelling time must be between 6 AM and 11 PM", row))
		}
	}

	return errs
}

// =============================================================================
// EXPENSE SECTION
// =============================================================================

// Expenses validates the expense rows, with the same blank-row
// exemption as the indent section.
func Expenses(entries []domain.ExpenseEntry) []string {
	var errs []string

	for i, e := range entries {
		if e.IsBlank() {
			continue
		}
		row := i + 1

		if e.ExpenseName == "" {
			errs = append(errs, fmt.Sprintf("Expense Entry %d: Expense name is required", row))
		}
		if !e.Amount.IsPositive() {
			errs = append(errs, fmt.Sprintf("Expense Entry %d: Amount must be greater than 0", row))
		}
	}

	return errs
}

// =============================================================================
// RECEIPT SECTION
// =============================================================================

// Receipt validates the end-of-shift settlement. Every count and
// amount may legitimately be zero, so the rules are non-negativity
// plus membership of the fixed denomination set.
func Receipt(r *domain.ReceiptData) []string {
	var errs []string

	known := make(map[int]bool, len(domain.DenominationOrder))
	for _, d := range domain.DenominationOrder {
		known[d] = true
		if r.Count(d) < 0 {
			errs = append(errs, fmt.Sprintf("₹%d note count cannot be negative", d))
		}
	}
	var unknown []int
	for d := range r.Denominations {
		if !known[d] {
			unknown = append(unknown, d)
		}
	}
	sort.Ints(unknown)
	for _, d := range unknown {
		errs = append(errs, fmt.Sprintf("₹%d is not a recognised denomination", d))
	}

	if r.Coins.IsNegative() {
		errs = append(errs, "Coins cannot be negative")
	}
	if r.Paytm.IsNegative() {
		errs = append(errs, "Paytm amount cannot be negative")
	}
	if r.Swipe.IsNegative() {
		errs = append(errs, "Swipe amount cannot be negative")
	}
	if r.Scheme.IsNegative() {
		errs = append(errs, "Scheme amount cannot be negative")
	}

	return errs
}
