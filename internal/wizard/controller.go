// =============================================================================
// Shift Reconciliation - Wizard Controller
// =============================================================================
//
// This package owns the single-session wizard state: the domain
// aggregates for every data-entry section, the current step, and the
// per-section validation errors. There is no process-wide singleton;
// each Session is exclusively owned by its caller for its lifetime.
//
// STEP MODEL:
//   [shift, lubricant, indent, expense, receipt, report]
//   report is a terminal review state, not a data-entry state.
//
// NAVIGATION POLICY:
//   Advancing never blocks on invalid data - the section's errors are
//   recorded and navigation proceeds. Blocking happens only at the
//   review step: CanExport is false while any section has outstanding
//   errors. Retreat is unconditional. Jumping to the report validates
//   every data-entry section so the review screen shows the complete
//   picture.
//
// No transition ever discards entered data; all mutation is in place
// on the session's aggregates.
//
// =============================================================================

package wizard

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trinityfuels/shift-recon/internal/domain"
	"github.com/trinityfuels/shift-recon/internal/seed"
	"github.com/trinityfuels/shift-recon/internal/validation"
)

// =============================================================================
// STEPS
// =============================================================================

// Step names one state of the wizard.
type Step string

const (
	StepShift     Step = "shift"
	StepLubricant Step = "lubricant"
	StepIndent    Step = "indent"
	StepExpense   Step = "expense"
	StepReceipt   Step = "receipt"
	StepReport    Step = "report"
)

// StepOrder is the fixed step sequence.
var StepOrder = []Step{
	StepShift,
	StepLubricant,
	StepIndent,
	StepExpense,
	StepReceipt,
	StepReport,
}

// stepSection maps a data-entry step to its validation section. The
// report step has no section of its own.
var stepSection = map[Step]validation.Section{
	StepShift:     validation.SectionShift,
	StepLubricant: validation.SectionLubricant,
	StepIndent:    validation.SectionIndent,
	StepExpense:   validation.SectionExpense,
	StepReceipt:   validation.SectionReceipt,
}

// =============================================================================
// GUARD ERRORS
// =============================================================================

var (
	// ErrLastRowIncomplete rejects appending a new row while the
	// current last row is blank or fails its field rules.
	ErrLastRowIncomplete = errors.New("fill out the last entry correctly before adding a new one")

	// ErrLastRowRemaining rejects removing the only remaining row of a
	// collection.
	ErrLastRowRemaining = errors.New("at least one entry must remain")

	// ErrRowOutOfRange rejects a removal index outside the collection.
	ErrRowOutOfRange = errors.New("no entry at that position")

	// ErrUnknownStep rejects navigation to a step that is not part of
	// the wizard.
	ErrUnknownStep = errors.New("unknown wizard step")

	// ErrAttendantLimit rejects selecting a fourth attendant.
	ErrAttendantLimit = errors.New("no more than three attendants can be selected")

	// ErrBadDispenser rejects a dispenser outside {1, 2}.
	ErrBadDispenser = errors.New("dispenser must be 1 or 2")
)

// Built-in fuel prices used until config or seed data overrides them.
var (
	defaultHSDPrice = decimal.RequireFromString("88.20")
	defaultMSPrice  = decimal.RequireFromString("102.34")
)

// =============================================================================
// SESSION
// =============================================================================

// Session is the wizard's single-owner state for one shift entry.
type Session struct {
	Shift      domain.ShiftData
	Lubricants []domain.LubricantLine
	Indent     []domain.IndentSaleEntry
	Expenses   []domain.ExpenseEntry
	Receipt    domain.ReceiptData

	// Customers feeds the indent step's autocomplete; it is seed data,
	// not validated input.
	Customers []string

	current int
	errors  map[Step][]string
}

// NewSession creates a session at the shift step with the default
// domain state: today's date, morning shift, dispenser 1 with two
// zeroed readings, built-in fuel prices, and one placeholder row each
// for indent and expenses. The lubricant catalog is seeded by the
// caller (config or seed fetch).
func NewSession() *Session {
	return &Session{
		Shift: domain.ShiftData{
			ShiftTime: domain.ShiftMorning,
			Date:      time.Now(),
			Dispenser: 1,
			FuelPrices: domain.FuelPrices{
				HSD: defaultHSDPrice,
				MS:  defaultMSPrice,
			},
			Readings: domain.DefaultReadings(1),
		},
		Indent:   []domain.IndentSaleEntry{domain.NewIndentSaleEntry()},
		Expenses: []domain.ExpenseEntry{domain.NewExpenseEntry()},
		Receipt:  domain.NewReceiptData(),
		errors:   make(map[Step][]string),
	}
}

// =============================================================================
// NAVIGATION
// =============================================================================

// Current returns the active step.
func (s *Session) Current() Step {
	return StepOrder[s.current]
}

// Advance validates the current section, records its errors, and moves
// to the next step. Invalid data does not block the move. Landing on
// the report re-validates every section so the review list is
// complete. At the report step Advance is a no-op: the report is
// terminal.
func (s *Session) Advance() {
	if s.Current() == StepReport {
		return
	}
	s.validateStep(s.Current())
	s.current++
	if s.Current() == StepReport {
		s.validateAll()
	}
}

// Retreat moves to the previous step unconditionally, without
// validating.
func (s *Session) Retreat() {
	if s.current > 0 {
		s.current--
	}
}

// JumpTo navigates directly to a step. Jumping to the report validates
// all data-entry sections first.
func (s *Session) JumpTo(step Step) error {
	for i, candidate := range StepOrder {
		if candidate != step {
			continue
		}
		if step == StepReport {
			s.validateAll()
		}
		s.current = i
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownStep, step)
}

// NavigateToForm re-enters the named data-entry step so the attendant
// can correct the errors the review screen linked to.
func (s *Session) NavigateToForm(step Step) error {
	if step == StepReport {
		return fmt.Errorf("%w: %q is not a data-entry form", ErrUnknownStep, step)
	}
	return s.JumpTo(step)
}

// =============================================================================
// VALIDATION STATE
// =============================================================================

// validateStep runs one section's rules and records the result.
func (s *Session) validateStep(step Step) {
	section, ok := stepSection[step]
	if !ok {
		return
	}
	report := s.Report()
	s.errors[step] = validation.Validate(section, report)
}

// validateAll re-validates every data-entry section.
func (s *Session) validateAll() {
	for _, step := range StepOrder {
		if step == StepReport {
			continue
		}
		s.validateStep(step)
	}
}

// SectionErrors returns the recorded errors for one step.
func (s *Session) SectionErrors(step Step) []string {
	return s.errors[step]
}

// Errors returns a copy of the per-section error map.
func (s *Session) Errors() map[Step][]string {
	out := make(map[Step][]string, len(s.errors))
	for step, errs := range s.errors {
		out[step] = append([]string(nil), errs...)
	}
	return out
}

// HasErrors reports whether any section has outstanding errors.
func (s *Session) HasErrors() bool {
	for _, errs := range s.errors {
		if len(errs) > 0 {
			return true
		}
	}
	return false
}

// CanExport reports whether the blocking review actions (export, save)
// are allowed: the session must be at the report step with no section
// errors outstanding.
func (s *Session) CanExport() bool {
	return s.Current() == StepReport && !s.HasErrors()
}

// Report assembles the read-only composite over the session's
// aggregates for the calculator and the export boundary.
func (s *Session) Report() *domain.ReportData {
	return &domain.ReportData{
		Shift:      s.Shift,
		Lubricants: s.Lubricants,
		Indent:     s.Indent,
		Expenses:   s.Expenses,
		Receipt:    s.Receipt,
	}
}

// =============================================================================
// SHIFT STEP MUTATIONS
// =============================================================================

// SetDispenser switches the pump island and replaces the whole reading
// set with the dispenser's default nozzles (2 for dispenser 1, 4 for
// dispenser 2, alternating HSD/MS starting with HSD at nozzle 1).
// Previously entered readings are discarded by design: the nozzle
// layout they describe no longer exists.
func (s *Session) SetDispenser(dispenser int) error {
	if domain.NozzleCount(dispenser) == 0 {
		return fmt.Errorf("%w: got %d", ErrBadDispenser, dispenser)
	}
	s.Shift.Dispenser = dispenser
	s.Shift.Readings = domain.DefaultReadings(dispenser)
	return nil
}

// ToggleAttendant adds the name to the shift's attendants, or removes
// it if already selected. At most three attendants may be selected.
func (s *Session) ToggleAttendant(name string) error {
	for i, existing := range s.Shift.Attendants {
		if existing == name {
			s.Shift.Attendants = append(s.Shift.Attendants[:i], s.Shift.Attendants[i+1:]...)
			return nil
		}
	}
	if len(s.Shift.Attendants) >= 3 {
		return ErrAttendantLimit
	}
	s.Shift.Attendants = append(s.Shift.Attendants, name)
	return nil
}

// =============================================================================
// ROW COLLECTION MUTATIONS
// =============================================================================

// AddIndentEntry appends a fresh blank indent row. The append is
// rejected while the current last row is blank or invalid, so the
// collection never accumulates half-filled rows.
func (s *Session) AddIndentEntry() error {
	last := s.Indent[len(s.Indent)-1]
	if last.IsBlank() || len(validation.Indent([]domain.IndentSaleEntry{last})) > 0 {
		return ErrLastRowIncomplete
	}
	s.Indent = append(s.Indent, domain.NewIndentSaleEntry())
	return nil
}

// RemoveIndentEntry deletes the row at index; at least one row must
// remain.
func (s *Session) RemoveIndentEntry(index int) error {
	if len(s.Indent) <= 1 {
		return ErrLastRowRemaining
	}
	if index < 0 || index >= len(s.Indent) {
		return ErrRowOutOfRange
	}
	s.Indent = append(s.Indent[:index], s.Indent[index+1:]...)
	return nil
}

// AddExpenseEntry appends a fresh blank expense row under the same
// last-row guard as the indent collection.
func (s *Session) AddExpenseEntry() error {
	last := s.Expenses[len(s.Expenses)-1]
	if last.IsBlank() || len(validation.Expenses([]domain.ExpenseEntry{last})) > 0 {
		return ErrLastRowIncomplete
	}
	s.Expenses = append(s.Expenses, domain.NewExpenseEntry())
	return nil
}

// RemoveExpenseEntry deletes the row at index; at least one row must
// remain.
func (s *Session) RemoveExpenseEntry(index int) error {
	if len(s.Expenses) <= 1 {
		return ErrLastRowRemaining
	}
	if index < 0 || index >= len(s.Expenses) {
		return ErrRowOutOfRange
	}
	s.Expenses = append(s.Expenses[:index], s.Expenses[index+1:]...)
	return nil
}

// =============================================================================
// SEED MERGE
// =============================================================================

// ApplySeed merges fetched seed data into the session: prior closing
// readings become opening readings (matched by nozzle number), prior
// prices carry forward, the lubricant catalog replaces the default one
// with quantities at zero, and the customer list feeds autocomplete.
// Empty fields leave the session untouched.
func (s *Session) ApplySeed(data *seed.Data) {
	if data == nil {
		return
	}
	if data.FuelPrices != nil {
		s.Shift.FuelPrices = *data.FuelPrices
	}
	for i := range s.Shift.Readings {
		if closing, ok := data.PriorClosings[s.Shift.Readings[i].Nozzle]; ok {
			s.Shift.Readings[i].Opening = closing
		}
	}
	if len(data.Lubricants) > 0 {
		catalog := make([]domain.LubricantLine, len(data.Lubricants))
		copy(catalog, data.Lubricants)
		for i := range catalog {
			catalog[i].Quantity = decimal.Zero
		}
		s.Lubricants = catalog
	}
	if len(data.Customers) > 0 {
		s.Customers = append([]string(nil), data.Customers...)
	}
}
