package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/trinityfuels/shift-recon/internal/domain"
	"github.com/trinityfuels/shift-recon/internal/recon"
	"github.com/trinityfuels/shift-recon/pkg/utils"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleReport() *domain.ReportData {
	return &domain.ReportData{
		Shift: domain.ShiftData{
			Attendants: []string{"Yathish", "Sujan"},
			ShiftTime:  domain.ShiftMorning,
			Date:       time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
			Dispenser:  1,
			FuelPrices: domain.FuelPrices{HSD: dec("88.20"), MS: dec("102.34")},
			Readings: []domain.Reading{
				{Nozzle: 1, FuelType: domain.FuelHSD, Opening: dec("5000"), Closing: dec("5100"), TestQty: dec("5")},
				{Nozzle: 2, FuelType: domain.FuelMS, Opening: dec("1000"), Closing: dec("1100")},
			},
		},
		Lubricants: []domain.LubricantLine{
			{Name: "Engine Oil 1L", Price: dec("320"), Quantity: dec("2")},
			{Name: "Gear Oil 500ml", Price: dec("180")},
		},
		Indent: []domain.IndentSaleEntry{{
			CustomerName: "TATA Sales", VehicleNumber: "KA19AB1234",
			FuelType: domain.FuelHSD, Quantity: dec("20"),
			SlipNumber: 101, Time: "09:30",
		}},
		Expenses: []domain.ExpenseEntry{{ExpenseName: "Cleaning", Amount: dec("150"), Note: "weekly"}},
		Receipt: domain.ReceiptData{
			Denominations: map[int]int64{500: 10, 200: 5, 100: 2},
			Coins:         dec("50"),
			Paytm:         dec("1000"),
			Swipe:         dec("500"),
		},
	}
}

func TestFileName(t *testing.T) {
	shift := &domain.ShiftData{
		Date:      time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		ShiftTime: domain.ShiftEvening,
	}
	assert.Equal(t, "29-08-26_evening_Report.xlsx", FileName(shift))
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	files := utils.NewFileManager(dir, "")
	writer := NewWriter("TRINITY FUELS KANNUR", files)

	report := sampleReport()
	st := recon.BuildStatement(report)

	path, err := writer.Write(report, st)
	require.NoError(t, err)
	assert.Equal(t, "29-08-26_morning_Report.xlsx", filepath.Base(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue(SheetName, ref)
		require.NoError(t, err)
		return v
	}

	// Shift info block.
	assert.Equal(t, "TRINITY FUELS KANNUR", cell("A1"))
	assert.Equal(t, "29-08-2026", cell("B2"))
	assert.Equal(t, "morning", cell("B3"))
	assert.Equal(t, "Yathish, Sujan", cell("B5"))

	// Fuel Sales: header at row 9, nozzles at 10-11, total at 12.
	assert.Equal(t, "Fuel Sales", cell("A8"))
	assert.Equal(t, "N1", cell("A10"))
	assert.Equal(t, "HSD", cell("B10"))
	assert.Equal(t, "8379", cell("H10"))
	assert.Equal(t, "N2", cell("A11"))
	assert.Equal(t, "10234", cell("H11"))
	assert.Equal(t, "Total", cell("A12"))
	assert.Equal(t, "18613", cell("H12"))

	// Fuel Summary rows in fixed HSD, MS order.
	assert.Equal(t, "Fuel Summary", cell("A14"))
	assert.Equal(t, "HSD", cell("A16"))
	assert.Equal(t, "MS", cell("A17"))

	// Indent Sales.
	assert.Equal(t, "Indent Sales", cell("A20"))
	assert.Equal(t, "TATA Sales", cell("A22"))
	assert.Equal(t, "1764", cell("F22"))

	// Lubricants: only the sold line is visible.
	assert.Equal(t, "Lubricants", cell("A25"))
	assert.Equal(t, "Engine Oil 1L", cell("A27"))
	assert.Equal(t, "Total", cell("A28"))
	assert.Equal(t, "640", cell("D28"))

	// Cash Summary: notes in descending order, then coins and channels.
	assert.Equal(t, "Cash Summary", cell("A30"))
	assert.Equal(t, "₹500", cell("A32"))
	assert.Equal(t, "5000", cell("C32"))
	assert.Equal(t, "Coins", cell("A38"))
	assert.Equal(t, "Cash Total", cell("A39"))
	assert.Equal(t, "6250", cell("C39"))
	assert.Equal(t, "7750", cell("C43"))

	// Expenses.
	assert.Equal(t, "Expenses", cell("A45"))
	assert.Equal(t, "Cleaning", cell("A47"))

	// Grand summary in whole rupees.
	assert.Equal(t, "Grand Total Summary", cell("A50"))
	assert.Equal(t, "Total Fuel Sales", cell("A51"))
	assert.Equal(t, "18613", cell("B51"))
	assert.Equal(t, "Excess/Shortage", cell("A56"))
	assert.Equal(t, "9589", cell("B56"))
}

func TestWriteUntouchedNozzleRendersDashes(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter("TRINITY FUELS KANNUR", utils.NewFileManager(dir, ""))

	report := sampleReport()
	report.Shift.Readings[1] = domain.Reading{Nozzle: 2, FuelType: domain.FuelMS}
	st := recon.BuildStatement(report)

	path, err := writer.Write(report, st)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	saleQty, err := f.GetCellValue(SheetName, "F11")
	require.NoError(t, err)
	assert.Equal(t, "-", saleQty)

	amount, err := f.GetCellValue(SheetName, "H11")
	require.NoError(t, err)
	assert.Equal(t, "-", amount)
}

func TestWriteDoesNotOverwriteEarlierReport(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter("TRINITY FUELS KANNUR", utils.NewFileManager(dir, ""))

	report := sampleReport()
	st := recon.BuildStatement(report)

	first, err := writer.Write(report, st)
	require.NoError(t, err)
	second, err := writer.Write(report, st)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.FileExists(t, first)
	assert.FileExists(t, second)
}
