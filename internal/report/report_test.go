package report

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/awaistahir/sunquote/internal/engine"
	"github.com/awaistahir/sunquote/internal/rates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "$0.00"},
		{28500, "$28,500.00"},
		{1152, "$1,152.00"},
		{3270.456, "$3,270.46"},
		{0.005, "$0.01"},
		{-8550, "-$8,550.00"},
		{-0.001, "$0.00"},
		{1234567.891, "$1,234,567.89"},
		{math.NaN(), "n/a"},
		{math.Inf(1), "n/a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatUSD(tt.amount), "amount=%v", tt.amount)
	}
}

func TestFormatPayback(t *testing.T) {
	assert.Equal(t, "2.8 years", FormatPayback(2.8385))
	assert.Equal(t, "-4.2 years", FormatPayback(-4.2))
	assert.Equal(t, "not applicable", FormatPayback(math.Inf(1)))
	assert.Equal(t, "not applicable", FormatPayback(math.NaN()))
}

func TestWriteText(t *testing.T) {
	in := engine.DefaultInput()
	b := engine.Estimate(in, rates.Default())

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, in, b))

	out := buf.String()
	assert.Contains(t, out, "8 kW, maryland region")
	assert.Contains(t, out, "$28,500.00")
	assert.Contains(t, out, "-$8,550.00")
	assert.Contains(t, out, "2.8 years")
}

func TestWriteText_NotApplicable(t *testing.T) {
	in := engine.DefaultInput()
	in.SystemSizeKw = 0
	b := engine.Estimate(in, rates.Default())

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, in, b))
	assert.Contains(t, buf.String(), "not applicable")
}

func TestWriteXLSX(t *testing.T) {
	in := engine.DefaultInput()
	b := engine.Estimate(in, rates.Default())
	schedule := engine.PaybackSchedule(b, engine.WithHorizon(10))

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, in, b, schedule))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{BreakdownSheet, PaybackSheet}, f.GetSheetList())

	rows, err := f.GetRows(BreakdownSheet)
	require.NoError(t, err)
	values := map[string]string{}
	for _, row := range rows {
		require.Len(t, row, 2)
		values[row[0]] = row[1]
	}
	assert.Equal(t, "maryland", values["Region"])
	gross, err := strconv.ParseFloat(values["Gross cost"], 64)
	require.NoError(t, err)
	assert.InDelta(t, 28500, gross, 1e-6)

	payback, err := f.GetRows(PaybackSheet)
	require.NoError(t, err)
	require.Len(t, payback, 11)
	assert.Equal(t, "Year", payback[0][0])
	assert.Equal(t, "10", payback[10][0])
	assert.Equal(t, "TRUE", strings.ToUpper(payback[3][4]))
}

func TestWriteXLSX_NotApplicablePayback(t *testing.T) {
	in := engine.DefaultInput()
	in.SystemSizeKw = 0
	b := engine.Estimate(in, rates.Default())

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, in, b, engine.PaybackSchedule(b)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(BreakdownSheet, "B18")
	require.NoError(t, err)
	assert.Equal(t, "not applicable", v)
}
