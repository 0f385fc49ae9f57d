package wizard

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trinityfuels/shift-recon/internal/domain"
	"github.com/trinityfuels/shift-recon/internal/seed"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// fillValid fills every section of the session with data that passes
// validation.
func fillValid(s *Session) {
	s.Shift.Attendants = []string{"Yathish"}
	s.Shift.Date = time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	s.Shift.Readings = []domain.Reading{
		{Nozzle: 1, FuelType: domain.FuelHSD, Opening: dec("5000"), Closing: dec("5100")},
		{Nozzle: 2, FuelType: domain.FuelMS, Opening: dec("1000"), Closing: dec("1100")},
	}
}

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession()

	assert.Equal(t, StepShift, s.Current())
	assert.Equal(t, domain.ShiftMorning, s.Shift.ShiftTime)
	assert.Equal(t, 1, s.Shift.Dispenser)
	assert.False(t, s.Shift.Date.IsZero())
	require.Len(t, s.Shift.Readings, 2)
	assert.True(t, s.Shift.FuelPrices.HSD.Equal(dec("88.20")))
	assert.True(t, s.Shift.FuelPrices.MS.Equal(dec("102.34")))

	// One placeholder row each, blank and exempt from validation.
	require.Len(t, s.Indent, 1)
	assert.True(t, s.Indent[0].IsBlank())
	require.Len(t, s.Expenses, 1)
	assert.True(t, s.Expenses[0].IsBlank())
}

func TestAdvanceWalksStepOrder(t *testing.T) {
	s := NewSession()
	fillValid(s)

	for _, want := range StepOrder {
		assert.Equal(t, want, s.Current())
		s.Advance()
	}

	// The report step is terminal: Advance is a no-op there.
	assert.Equal(t, StepReport, s.Current())
	assert.True(t, s.CanExport())
}

func TestAdvanceDoesNotBlockOnInvalidData(t *testing.T) {
	s := NewSession()
	// Shift left empty: no attendants, untouched readings.

	s.Advance()

	assert.Equal(t, StepLubricant, s.Current())
	assert.NotEmpty(t, s.SectionErrors(StepShift))
}

func TestRetreat(t *testing.T) {
	s := NewSession()
	s.Advance()
	s.Retreat()
	assert.Equal(t, StepShift, s.Current())

	// Retreating off the first step stays put.
	s.Retreat()
	assert.Equal(t, StepShift, s.Current())
}

func TestJumpToReportValidatesAllSections(t *testing.T) {
	s := NewSession()

	require.NoError(t, s.JumpTo(StepReport))

	assert.Equal(t, StepReport, s.Current())
	assert.NotEmpty(t, s.SectionErrors(StepShift))
	assert.True(t, s.HasErrors())
	assert.False(t, s.CanExport())
}

func TestJumpToUnknownStep(t *testing.T) {
	s := NewSession()
	assert.ErrorIs(t, s.JumpTo(Step("summary")), ErrUnknownStep)
}

func TestNavigateToForm(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.JumpTo(StepReport))

	require.NoError(t, s.NavigateToForm(StepIndent))
	assert.Equal(t, StepIndent, s.Current())

	// The report is not a data-entry form.
	assert.ErrorIs(t, s.NavigateToForm(StepReport), ErrUnknownStep)
}

func TestCanExportRequiresReportStep(t *testing.T) {
	s := NewSession()
	fillValid(s)

	// Valid data but not at the report step yet.
	assert.False(t, s.CanExport())

	require.NoError(t, s.JumpTo(StepReport))
	assert.True(t, s.CanExport())
}

func TestErrorsReturnsACopy(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.JumpTo(StepReport))

	snapshot := s.Errors()
	snapshot[StepShift] = nil
	assert.NotEmpty(t, s.SectionErrors(StepShift))
}

func TestSetDispenser(t *testing.T) {
	s := NewSession()
	s.Shift.Readings[0].Opening = dec("5000")

	require.NoError(t, s.SetDispenser(2))
	assert.Equal(t, 2, s.Shift.Dispenser)
	require.Len(t, s.Shift.Readings, 4)

	// Switching resets the readings to the new layout's defaults.
	wantFuel := []domain.FuelType{domain.FuelHSD, domain.FuelMS, domain.FuelHSD, domain.FuelMS}
	for i, r := range s.Shift.Readings {
		assert.Equal(t, i+1, r.Nozzle)
		assert.Equal(t, wantFuel[i], r.FuelType)
		assert.True(t, r.Untouched())
	}

	assert.ErrorIs(t, s.SetDispenser(3), ErrBadDispenser)
}

func TestToggleAttendant(t *testing.T) {
	s := NewSession()

	require.NoError(t, s.ToggleAttendant("Yathish"))
	require.NoError(t, s.ToggleAttendant("Sujan"))
	require.NoError(t, s.ToggleAttendant("James"))
	assert.ErrorIs(t, s.ToggleAttendant("John"), ErrAttendantLimit)

	// Toggling an existing name removes it, making room again.
	require.NoError(t, s.ToggleAttendant("Sujan"))
	assert.Equal(t, []string{"Yathish", "James"}, s.Shift.Attendants)
	require.NoError(t, s.ToggleAttendant("John"))
}

func TestAddIndentEntryGuard(t *testing.T) {
	s := NewSession()

	// Blank last row: append rejected, length unchanged.
	assert.ErrorIs(t, s.AddIndentEntry(), ErrLastRowIncomplete)
	assert.Len(t, s.Indent, 1)

	// Partially filled last row: still rejected.
	s.Indent[0].CustomerName = "TATA Sales"
	assert.ErrorIs(t, s.AddIndentEntry(), ErrLastRowIncomplete)
	assert.Len(t, s.Indent, 1)

	// Complete last row: append allowed, new row is blank.
	s.Indent[0] = domain.IndentSaleEntry{
		CustomerName: "TATA Sales", VehicleNumber: "KA19AB1234",
		FuelType: domain.FuelMS, Quantity: dec("20"),
		SlipNumber: 101, Time: "09:30",
	}
	require.NoError(t, s.AddIndentEntry())
	require.Len(t, s.Indent, 2)
	assert.True(t, s.Indent[1].IsBlank())
}

func TestRemoveIndentEntry(t *testing.T) {
	s := NewSession()

	assert.ErrorIs(t, s.RemoveIndentEntry(0), ErrLastRowRemaining)

	s.Indent[0] = domain.IndentSaleEntry{
		CustomerName: "TATA Sales", VehicleNumber: "KA19AB1234",
		FuelType: domain.FuelMS, Quantity: dec("20"),
		SlipNumber: 101, Time: "09:30",
	}
	require.NoError(t, s.AddIndentEntry())

	assert.ErrorIs(t, s.RemoveIndentEntry(5), ErrRowOutOfRange)
	assert.ErrorIs(t, s.RemoveIndentEntry(-1), ErrRowOutOfRange)

	require.NoError(t, s.RemoveIndentEntry(0))
	require.Len(t, s.Indent, 1)
	assert.True(t, s.Indent[0].IsBlank())
}

func TestAddExpenseEntryGuard(t *testing.T) {
	s := NewSession()

	assert.ErrorIs(t, s.AddExpenseEntry(), ErrLastRowIncomplete)

	// Name without amount fails the single-row validation.
	s.Expenses[0].ExpenseName = "Cleaning"
	assert.ErrorIs(t, s.AddExpenseEntry(), ErrLastRowIncomplete)

	s.Expenses[0].Amount = dec("150")
	require.NoError(t, s.AddExpenseEntry())
	require.Len(t, s.Expenses, 2)

	assert.ErrorIs(t, s.RemoveExpenseEntry(3), ErrRowOutOfRange)
	require.NoError(t, s.RemoveExpenseEntry(1))
	assert.ErrorIs(t, s.RemoveExpenseEntry(0), ErrLastRowRemaining)
}

func TestApplySeed(t *testing.T) {
	s := NewSession()

	s.ApplySeed(&seed.Data{
		FuelPrices: &domain.FuelPrices{HSD: dec("89.50"), MS: dec("103.10")},
		PriorClosings: map[int]decimal.Decimal{
			1: dec("5100.55"),
			2: dec("1100"),
			9: dec("777"), // no such nozzle, ignored
		},
		Lubricants: []domain.LubricantLine{
			{Name: "Engine Oil 1L", Price: dec("320"), Quantity: dec("3")},
		},
		Customers: []string{"TATA Sales", "BMW"},
	})

	assert.True(t, s.Shift.FuelPrices.HSD.Equal(dec("89.50")))
	assert.True(t, s.Shift.Readings[0].Opening.Equal(dec("5100.55")))
	assert.True(t, s.Shift.Readings[1].Opening.Equal(dec("1100")))

	// Catalog arrives with quantities reset to zero.
	require.Len(t, s.Lubricants, 1)
	assert.True(t, s.Lubricants[0].Quantity.IsZero())

	assert.Equal(t, []string{"TATA Sales", "BMW"}, s.Customers)
}

func TestApplySeedEmptyLeavesDefaults(t *testing.T) {
	s := NewSession()
	before := s.Shift.FuelPrices

	s.ApplySeed(nil)
	s.ApplySeed(&seed.Data{})

	assert.True(t, s.Shift.FuelPrices.HSD.Equal(before.HSD))
	assert.True(t, s.Shift.Readings[0].Opening.IsZero())
	assert.Nil(t, s.Customers)
}

func TestCorrectionRoundTrip(t *testing.T) {
	// Walk to the report with a broken shift, fix it via the error
	// link-back, and return: the report is exportable and no data from
	// other sections was lost.
	s := NewSession()
	fillValid(s)
	s.Shift.Attendants = nil
	s.Expenses[0] = domain.ExpenseEntry{ExpenseName: "Cleaning", Amount: dec("150")}

	require.NoError(t, s.JumpTo(StepReport))
	require.False(t, s.CanExport())

	require.NoError(t, s.NavigateToForm(StepShift))
	require.NoError(t, s.ToggleAttendant("Yathish"))
	require.NoError(t, s.JumpTo(StepReport))

	assert.True(t, s.CanExport())
	assert.Equal(t, "Cleaning", s.Expenses[0].ExpenseName)
}
