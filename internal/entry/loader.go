// =============================================================================
// Shift Reconciliation - Shift Entry Loader
// =============================================================================
//
// This module loads a filled-in shift entry file - the CLI's stand-in
// for the six interactive forms. The file carries one YAML section per
// wizard step; omitted sections keep the session's defaults, so a
// partially filled file can still be validated to see what is missing.
//
// EXAMPLE:
//   shift:
//     attendants: [Yathish, Sujan]
//     shift_time: morning
//     date: 2026-08-29
//     dispenser: 1
//     fuel_prices: {hsd: 88.20, ms: 102.34}
//     readings:
//       - {nozzle: 1, fuel_type: HSD, opening: 2000, closing: 2050, test_qty: 0}
//       - {nozzle: 2, fuel_type: MS, opening: 1000, closing: 1100, test_qty: 5}
//   lubricants:
//     - {name: Engine Oil 1L, quantity: 2}
//   indent:
//     - {customer_name: TATA Sales, vehicle_number: KA19AB1234,
//        fuel_type: HSD, quantity: 20, slip_number: 101, time: "09:30"}
//   expenses:
//     - {expense_name: Cleaning, amount: 150, note: weekly}
//   receipt:
//     denominations: {500: 10, 200: 5, 100: 2, 50: 0, 20: 0, 10: 0}
//     coins: 50
//     paytm: 1000
//     swipe: 500
//
// =============================================================================

package entry

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/trinityfuels/shift-recon/internal/domain"
)

// =============================================================================
// ENTRY FILE STRUCTURE
// =============================================================================

// File is the parsed shift entry document. Nil / empty sections were
// omitted from the file and leave the session defaults in place.
type File struct {
	Shift      *domain.ShiftData        `yaml:"shift"`
	Lubricants []LubricantEntry         `yaml:"lubricants"`
	Indent     []domain.IndentSaleEntry `yaml:"indent"`
	Expenses   []domain.ExpenseEntry    `yaml:"expenses"`
	Receipt    *domain.ReceiptData      `yaml:"receipt"`
}

// LubricantEntry is one lubricant line of the entry file. Price is
// optional: a zero price means "resolve from the session's catalog by
// name"; a non-catalog name with an explicit price is a free-form line.
type LubricantEntry struct {
	Name     string          `yaml:"name"`
	Price    decimal.Decimal `yaml:"price,omitempty"`
	Quantity decimal.Decimal `yaml:"quantity"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads and parses a shift entry file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read entry file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse entry file: %w", err)
	}

	return &file, nil
}

// =============================================================================
// SESSION MERGE HELPERS
// =============================================================================

// MergeLubricants applies the entry file's lubricant sales onto the
// session catalog. Catalog lines are matched by name and take the
// entered quantity; unknown names with an explicit price are appended
// as free-form lines. Unknown names without a price are appended with
// a zero price so validation flags them instead of silently dropping
// the sale.
func MergeLubricants(catalog []domain.LubricantLine, sales []LubricantEntry) []domain.LubricantLine {
	merged := make([]domain.LubricantLine, len(catalog))
	copy(merged, catalog)

	for _, sale := range sales {
		matched := false
		for i := range merged {
			if merged[i].Name == sale.Name {
				merged[i].Quantity = sale.Quantity
				if sale.Price.IsPositive() {
					merged[i].Price = sale.Price
				}
				matched = true
				break
			}
		}
		if !matched {
			merged = append(merged, domain.LubricantLine{
				Name:     sale.Name,
				Price:    sale.Price,
				Quantity: sale.Quantity,
			})
		}
	}

	return merged
}
