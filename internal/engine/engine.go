package engine

import (
	"encoding/json"
	"errors"
	"math"
)

var (
	ErrInvalidInput = errors.New("invalid input parameters")
)

// Market-rate assumptions behind every estimate
const (
	CostPerKw             = 3500.0 // installed USD per kW
	EquipmentShare        = 0.70
	LaborShare            = 0.20
	DesignShare           = 0.05
	PermittingBase        = 1500.0
	PermittingPerKw       = 50.0
	BatterySurcharge      = 15000.0
	EvChargerSurcharge    = 2500.0
	RoofSurcharge         = 1000.0 // tile and metal roofs
	HeavyShadingPerKw     = 200.0
	FederalItcRate        = 0.30
	SrecMwhPerKwYear      = 1.2
	SrecYears             = 25.0
	GenerationKwhPerKw    = 1200.0
	AvoidedCostPerKwh     = 0.12
	MaxBillOffsetFraction = 0.90
)

// Estimate converts calculator inputs into a cost breakdown. It does no validation:
// degenerate inputs produce degenerate but well-defined IEEE-754 results.
func Estimate(in EstimateInput, rates RateTable) CostBreakdown {
	base := in.SystemSizeKw * CostPerKw

	var b CostBreakdown
	b.Equipment = EquipmentShare * base
	b.Labor = LaborShare * base
	b.Design = DesignShare * base
	// Interconnection fee, not a share of base cost
	b.Permitting = PermittingBase + PermittingPerKw*in.SystemSizeKw
	b.Additional = additionalCost(in)

	b.GrossCost = b.Equipment + b.Labor + b.Permitting + b.Design + b.Additional

	r := rates.Resolve(in.Region)
	b.FederalItc = FederalItcRate * b.GrossCost
	b.StateIncentives = b.GrossCost * r.StateIncentiveRate
	// Lifetime SREC value taken as a single upfront credit. This overstates the
	// incentive but matches the published calculator; keep until product says otherwise.
	b.SrecIncome = in.SystemSizeKw * SrecMwhPerKwYear * SrecYears * r.SrecPricePerMwh
	b.NetCost = b.GrossCost - b.FederalItc - b.StateIncentives - b.SrecIncome

	annualGeneration := in.SystemSizeKw * GenerationKwhPerKw
	b.AnnualSavings = math.Min(annualGeneration*AvoidedCostPerKwh, in.MonthlyBillUsd*12*MaxBillOffsetFraction)
	b.PaybackPeriodYears = b.NetCost / b.AnnualSavings

	return b
}

// Quote validates the input and then estimates it
func Quote(in EstimateInput, rates RateTable) (CostBreakdown, error) {
	if err := Validate(in); err != nil {
		return CostBreakdown{}, err
	}
	return Estimate(in, rates), nil
}

// additionalCost sums the add-on and site surcharges
func additionalCost(in EstimateInput) float64 {
	additional := 0.0
	if in.BatteryBackup {
		additional += BatterySurcharge
	}
	if in.EvCharger {
		additional += EvChargerSurcharge
	}
	if in.RoofType == RoofTile || in.RoofType == RoofMetal {
		additional += RoofSurcharge
	}
	if in.ShadingLevel == ShadingHeavy {
		additional += HeavyShadingPerKw * in.SystemSizeKw
	}
	return additional
}

// PaybackApplicable reports whether the payback period is a finite number of years
func (b CostBreakdown) PaybackApplicable() bool {
	return !math.IsNaN(b.PaybackPeriodYears) && !math.IsInf(b.PaybackPeriodYears, 0)
}

// Degenerate reports a breakdown whose savings cannot pay the system back
func (b CostBreakdown) Degenerate() bool {
	return b.AnnualSavings <= 0 || !b.PaybackApplicable()
}

// MarshalJSON encodes a non-finite payback period as null
func (b CostBreakdown) MarshalJSON() ([]byte, error) {
	type plain CostBreakdown
	out := struct {
		plain
		PaybackPeriodYears *float64 `json:"paybackPeriodYears"`
	}{plain: plain(b)}
	if b.PaybackApplicable() {
		payback := b.PaybackPeriodYears
		out.PaybackPeriodYears = &payback
	}
	return json.Marshal(out)
}

// Shares splits the gross cost into its components with their percentage of the total
func Shares(b CostBreakdown) []CostShare {
	if b.GrossCost == 0 {
		return nil
	}
	components := []struct {
		name   string
		amount float64
	}{
		{"equipment", b.Equipment},
		{"labor", b.Labor},
		{"permitting", b.Permitting},
		{"design", b.Design},
		{"additional", b.Additional},
	}
	shares := make([]CostShare, 0, len(components))
	for _, c := range components {
		shares = append(shares, CostShare{
			Component: c.name,
			Amount:    c.amount,
			Percent:   c.amount / b.GrossCost * 100,
		})
	}
	return shares
}
