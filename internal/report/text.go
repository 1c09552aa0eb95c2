package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/awaistahir/sunquote/internal/engine"
)

// WriteText writes a plain-text quote for the terminal
func WriteText(w io.Writer, in engine.EstimateInput, b engine.CostBreakdown) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(w, "Solar estimate: %s kW, %s region, %s roof, %s shading\n",
		formatKw(in.SystemSizeKw), in.Region, in.RoofType, in.ShadingLevel)

	rows := []struct {
		label  string
		amount float64
	}{
		{"Equipment", b.Equipment},
		{"Labor", b.Labor},
		{"Permitting", b.Permitting},
		{"Design", b.Design},
		{"Additional", b.Additional},
		{"Gross cost", b.GrossCost},
		{"Federal tax credit", -b.FederalItc},
		{"State incentives", -b.StateIncentives},
		{"SREC income", -b.SrecIncome},
		{"Net cost", b.NetCost},
		{"Annual savings", b.AnnualSavings},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t\n", row.label, FormatUSD(row.amount))
	}
	fmt.Fprintf(tw, "Payback period\t%s\t\n", FormatPayback(b.PaybackPeriodYears))

	return tw.Flush()
}

func formatKw(kw float64) string {
	return fmt.Sprintf("%g", kw)
}
