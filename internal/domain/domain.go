// =============================================================================
// Shift Reconciliation - Domain Model
// =============================================================================
//
// This package contains the shared domain types used across the wizard,
// the validation engine, the reconciliation calculator and the export
// boundary. Keeping them in a leaf package avoids import cycles.
//
// All monetary amounts and metered quantities are decimal.Decimal, never
// float64: meter readings carry two decimal places and fuel prices carry
// paise, so binary floats would leak rounding noise into the
// excess/shortage figure.
//
// =============================================================================

package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// FUEL TYPES
// =============================================================================

// FuelType identifies one of the two fuels sold at the station.
type FuelType string

const (
	// FuelHSD is high-speed diesel.
	FuelHSD FuelType = "HSD"

	// FuelMS is motor spirit (petrol).
	FuelMS FuelType = "MS"
)

// FuelTypeOrder is the fixed display order for per-fuel-type rows.
// Summary tables iterate this slice instead of map keys so output is
// deterministic.
var FuelTypeOrder = []FuelType{FuelHSD, FuelMS}

// Valid reports whether the fuel type is one of the known values.
func (f FuelType) Valid() bool {
	return f == FuelHSD || f == FuelMS
}

// =============================================================================
// SHIFT TIMES
// =============================================================================

// ShiftTime identifies the half-day a shift covers.
type ShiftTime string

const (
	// ShiftMorning covers 6am to 5pm.
	ShiftMorning ShiftTime = "morning"

	// ShiftEvening covers 5pm to 11pm.
	ShiftEvening ShiftTime = "evening"
)

// Valid reports whether the shift time is one of the known values.
func (s ShiftTime) Valid() bool {
	return s == ShiftMorning || s == ShiftEvening
}

// =============================================================================
// NOZZLE READINGS
// =============================================================================

// Reading is one nozzle's meter state for the shift.
type Reading struct {
	// Nozzle is the 1-based nozzle number, unique within a shift.
	Nozzle int `yaml:"nozzle"`

	// FuelType is the fuel dispensed by this nozzle.
	FuelType FuelType `yaml:"fuel_type"`

	// Opening is the meter value at the start of the shift.
	Opening decimal.Decimal `yaml:"opening"`

	// Closing is the meter value at the end of the shift.
	// Must exceed Opening once both have been entered.
	Closing decimal.Decimal `yaml:"closing"`

	// TestQty is the calibration volume dispensed but not sold.
	TestQty decimal.Decimal `yaml:"test_qty"`
}

// Untouched reports whether the attendant has not yet entered meter
// values for this nozzle. An untouched reading is displayed as "not yet
// available" rather than as a zero sale.
func (r Reading) Untouched() bool {
	return r.Opening.IsZero() && r.Closing.IsZero()
}

// GrossQty is the total volume delivered: closing minus opening.
func (r Reading) GrossQty() decimal.Decimal {
	return r.Closing.Sub(r.Opening)
}

// NozzleCount returns the number of nozzles implied by the dispenser
// selection: 2 for dispenser 1, 4 for dispenser 2. Returns 0 for an
// unknown dispenser.
func NozzleCount(dispenser int) int {
	switch dispenser {
	case 1:
		return 2
	case 2:
		return 4
	default:
		return 0
	}
}

// DefaultReadings builds the zeroed reading set for a dispenser.
// Nozzles alternate HSD/MS starting with HSD at nozzle 1.
func DefaultReadings(dispenser int) []Reading {
	count := NozzleCount(dispenser)
	readings := make([]Reading, 0, count)
	for i := 1; i <= count; i++ {
		fuel := FuelMS
		if i%2 == 1 {
			fuel = FuelHSD
		}
		readings = append(readings, Reading{Nozzle: i, FuelType: fuel})
	}
	return readings
}

// =============================================================================
// SHIFT DATA
// =============================================================================

// FuelPrices holds the per-litre price for each fuel type.
type FuelPrices struct {
	HSD decimal.Decimal `yaml:"hsd"`
	MS  decimal.Decimal `yaml:"ms"`
}

// For returns the price for the given fuel type, or zero for an
// unknown type.
func (p FuelPrices) For(fuel FuelType) decimal.Decimal {
	switch fuel {
	case FuelHSD:
		return p.HSD
	case FuelMS:
		return p.MS
	default:
		return decimal.Zero
	}
}

// ShiftData is the shift-entry aggregate: who worked, when, on which
// dispenser, at what prices, and the nozzle readings.
type ShiftData struct {
	// Attendants are the names on duty, 1-3 entries.
	Attendants []string `yaml:"attendants"`

	// ShiftTime is morning or evening.
	ShiftTime ShiftTime `yaml:"shift_time"`

	// Date is the calendar date of the shift.
	Date time.Time `yaml:"date"`

	// Dispenser selects the pump island: 1 (2 nozzles) or 2 (4 nozzles).
	Dispenser int `yaml:"dispenser"`

	// FuelPrices are the prices in force for this shift.
	FuelPrices FuelPrices `yaml:"fuel_prices"`

	// Readings holds one entry per nozzle; length is implied by Dispenser.
	Readings []Reading `yaml:"readings"`
}

// =============================================================================
// LUBRICANT SALES
// =============================================================================

// LubricantLine is one catalog item with the quantity sold this shift.
// Name and price come from the catalog; the attendant edits quantity only.
type LubricantLine struct {
	Name     string          `yaml:"name"`
	Price    decimal.Decimal `yaml:"price"`
	Quantity decimal.Decimal `yaml:"quantity"`
}

// Amount is the line value: quantity times unit price.
func (l LubricantLine) Amount() decimal.Decimal {
	return l.Quantity.Mul(l.Price)
}

// =============================================================================
// INDENT (CREDIT) SALES
// =============================================================================

// IndentSaleEntry is a fuel sale billed to a known customer account
// rather than paid at the pump.
type IndentSaleEntry struct {
	CustomerName  string          `yaml:"customer_name"`
	VehicleNumber string          `yaml:"vehicle_number"`
	FuelType      FuelType        `yaml:"fuel_type"`
	Quantity      decimal.Decimal `yaml:"quantity"`

	// SlipNumber is the indent slip, 100-999 when the row is active.
	SlipNumber int `yaml:"slip_number"`

	// Time is the fuelling time as "HH:MM"; the hour must fall in 6-23.
	Time string `yaml:"time"`
}

// NewIndentSaleEntry returns a row in its untouched initial state.
func NewIndentSaleEntry() IndentSaleEntry {
	return IndentSaleEntry{FuelType: FuelMS}
}

// IsBlank reports whether the row still equals its initial state.
// A blank row means "no entry yet" and is exempt from validation.
func (e IndentSaleEntry) IsBlank() bool {
	return e.CustomerName == "" &&
		e.VehicleNumber == "" &&
		e.FuelType == FuelMS &&
		e.Quantity.IsZero() &&
		e.SlipNumber == 0 &&
		e.Time == ""
}

// Hour parses the fuelling hour out of the "HH:MM" time string.
// The second return value is false when the string is not a time.
func (e IndentSaleEntry) Hour() (int, bool) {
	hh, _, found := strings.Cut(e.Time, ":")
	if !found {
		return 0, false
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, false
	}
	return hour, true
}

// =============================================================================
// EXPENSES
// =============================================================================

// ExpenseEntry is a miscellaneous cash expense paid out of the till.
type ExpenseEntry struct {
	ExpenseName string          `yaml:"expense_name"`
	Amount      decimal.Decimal `yaml:"amount"`
	Note        string          `yaml:"note,omitempty"`
}

// NewExpenseEntry returns a row in its untouched initial state.
func NewExpenseEntry() ExpenseEntry {
	return ExpenseEntry{}
}

// IsBlank reports whether the row still equals its initial state.
// The note is free text and does not make a row active on its own.
func (e ExpenseEntry) IsBlank() bool {
	return e.ExpenseName == "" && e.Amount.IsZero()
}

// =============================================================================
// RECEIPTS
// =============================================================================

// DenominationOrder is the fixed descending order in which note
// denominations are entered, validated and reported.
var DenominationOrder = []int{500, 200, 100, 50, 20, 10}

// ReceiptData is the end-of-shift settlement: counted notes, coins and
// digital payment channel totals. Zero is a legitimate value for every
// field, so there is no blank-row exemption here.
type ReceiptData struct {
	// Denominations maps note value to the number of notes counted.
	Denominations map[int]int64 `yaml:"denominations"`

	// Coins is the aggregate value of coins, not a count.
	Coins decimal.Decimal `yaml:"coins"`

	Paytm  decimal.Decimal `yaml:"paytm"`
	Swipe  decimal.Decimal `yaml:"swipe"`
	Scheme decimal.Decimal `yaml:"scheme"`
}

// NewReceiptData returns a settlement with every denomination counted
// at zero.
func NewReceiptData() ReceiptData {
	denoms := make(map[int]int64, len(DenominationOrder))
	for _, d := range DenominationOrder {
		denoms[d] = 0
	}
	return ReceiptData{Denominations: denoms}
}

// Count returns the counted notes for a denomination, treating a
// missing key as zero.
func (r ReceiptData) Count(denomination int) int64 {
	return r.Denominations[denomination]
}

// =============================================================================
// REPORT COMPOSITE
// =============================================================================

// ReportData is the read-only composite handed to the reconciliation
// calculator and the export boundary at review time. It is assembled
// from the wizard session and never persisted.
type ReportData struct {
	Shift      ShiftData
	Lubricants []LubricantLine
	Indent     []IndentSaleEntry
	Expenses   []ExpenseEntry
	Receipt    ReceiptData
}
