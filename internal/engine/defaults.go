package engine

// Initial calculator form values
const (
	DefaultMonthlyBillUsd = 150.0
	DefaultSystemSizeKw   = 8.0
	DefaultRoofType       = RoofAsphalt
	DefaultShadingLevel   = ShadingMinimal
	DefaultRegion         = RegionMaryland
)

// DefaultInput returns the calculator's initial form state. Decoding a request
// into it leaves omitted fields at their defaults while explicit values still
// go through Validate.
func DefaultInput() EstimateInput {
	return EstimateInput{
		MonthlyBillUsd: DefaultMonthlyBillUsd,
		RoofType:       DefaultRoofType,
		ShadingLevel:   DefaultShadingLevel,
		SystemSizeKw:   DefaultSystemSizeKw,
		Region:         DefaultRegion,
	}
}

// Warnings lists non-fatal remarks about an input that passed Validate
func Warnings(in EstimateInput, rates RateTable) []string {
	warnings := []string{}
	if !InSizeRange(in.SystemSizeKw) {
		warnings = append(warnings, "systemSizeKw is outside the 3-20 kW calculator range")
	}
	if _, ok := rates.Lookup(in.Region); !ok {
		warnings = append(warnings, "region "+string(in.Region)+" is not in the rate table; default incentive rates applied")
	}
	return warnings
}
