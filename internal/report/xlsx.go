package report

import (
	"fmt"
	"io"

	"github.com/awaistahir/sunquote/internal/engine"
	"github.com/xuri/excelize/v2"
)

const (
	BreakdownSheet = "Breakdown"
	PaybackSheet   = "Payback"
)

// WriteXLSX writes the breakdown and payback schedule as a two-sheet workbook
func WriteXLSX(w io.Writer, in engine.EstimateInput, b engine.CostBreakdown, schedule []engine.PaybackYear) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", BreakdownSheet); err != nil {
		return err
	}

	breakdown := [][]interface{}{
		{"Item", "Value"},
		{"System size (kW)", in.SystemSizeKw},
		{"Region", string(in.Region)},
		{"Roof type", string(in.RoofType)},
		{"Shading", string(in.ShadingLevel)},
		{"Monthly bill (USD)", in.MonthlyBillUsd},
		{"Equipment", b.Equipment},
		{"Labor", b.Labor},
		{"Permitting", b.Permitting},
		{"Design", b.Design},
		{"Additional", b.Additional},
		{"Gross cost", b.GrossCost},
		{"Federal ITC", b.FederalItc},
		{"State incentives", b.StateIncentives},
		{"SREC income", b.SrecIncome},
		{"Net cost", b.NetCost},
		{"Annual savings", b.AnnualSavings},
	}
	if b.PaybackApplicable() {
		breakdown = append(breakdown, []interface{}{"Payback (years)", b.PaybackPeriodYears})
	} else {
		breakdown = append(breakdown, []interface{}{"Payback (years)", FormatPayback(b.PaybackPeriodYears)})
	}
	if err := writeRows(f, BreakdownSheet, breakdown); err != nil {
		return err
	}

	if _, err := f.NewSheet(PaybackSheet); err != nil {
		return err
	}
	rows := [][]interface{}{{"Year", "Annual savings", "Cumulative savings", "Net position", "Paid back"}}
	for _, y := range schedule {
		rows = append(rows, []interface{}{y.Year, y.AnnualSavings, y.CumulativeSavings, y.NetPosition, y.PaidBack})
	}
	if err := writeRows(f, PaybackSheet, rows); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for r, row := range rows {
		for c, value := range row {
			cellRef, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cellRef, value); err != nil {
				return fmt.Errorf("writing %s!%s: %w", sheet, cellRef, err)
			}
		}
	}
	return nil
}
