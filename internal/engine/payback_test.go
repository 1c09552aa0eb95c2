package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaybackSchedule_Default(t *testing.T) {
	b := Estimate(baseInput(), testRates())
	schedule := PaybackSchedule(b)

	require.Len(t, schedule, DefaultScheduleYears)
	assert.Equal(t, 1, schedule[0].Year)
	assert.InDelta(t, 1152, schedule[0].AnnualSavings, delta)
	assert.InDelta(t, 1152-3270, schedule[0].NetPosition, 1e-6)
	assert.False(t, schedule[1].PaidBack)
	assert.True(t, schedule[2].PaidBack)
	assert.InDelta(t, 1152*25, schedule[24].CumulativeSavings, 1e-6)
	assert.Equal(t, 3, BreakEvenYear(schedule))
}

func TestPaybackSchedule_Options(t *testing.T) {
	b := CostBreakdown{NetCost: 10000, AnnualSavings: 1000}

	tests := []struct {
		name      string
		opts      []ScheduleOption
		wantLen   int
		wantYear2 float64
		wantBreak int
	}{
		{name: "defaults", wantLen: 25, wantYear2: 1000, wantBreak: 10},
		{name: "short horizon", opts: []ScheduleOption{WithHorizon(5)}, wantLen: 5, wantYear2: 1000, wantBreak: 0},
		{name: "ignored horizon", opts: []ScheduleOption{WithHorizon(0)}, wantLen: 25, wantYear2: 1000, wantBreak: 10},
		{name: "escalation", opts: []ScheduleOption{WithEscalation(0.10)}, wantLen: 25, wantYear2: 1100, wantBreak: 8},
		{name: "ignored escalation", opts: []ScheduleOption{WithEscalation(-0.5)}, wantLen: 25, wantYear2: 1000, wantBreak: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := PaybackSchedule(b, tt.opts...)
			require.Len(t, schedule, tt.wantLen)
			assert.InDelta(t, tt.wantYear2, schedule[1].AnnualSavings, 1e-6)
			assert.Equal(t, tt.wantBreak, BreakEvenYear(schedule))
		})
	}
}

func TestPaybackSchedule_NegativeNetCost(t *testing.T) {
	schedule := PaybackSchedule(CostBreakdown{NetCost: -500, AnnualSavings: 100})
	assert.Equal(t, 1, BreakEvenYear(schedule))
}

func TestPaybackSchedule_NoSavings(t *testing.T) {
	schedule := PaybackSchedule(CostBreakdown{NetCost: 930})
	assert.Equal(t, 0, BreakEvenYear(schedule))
	for _, y := range schedule {
		assert.InDelta(t, -930, y.NetPosition, delta)
	}
}
