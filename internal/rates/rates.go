package rates

import "github.com/awaistahir/sunquote/internal/engine"

// Published incentive figures per service territory. InstallCostPerKw is kept for the
// rates page; estimates use engine.CostPerKw.
var defaults = map[engine.Region]engine.RegionRates{
	engine.RegionMaryland:     {StateIncentiveRate: 0.08, SrecPricePerMwh: 60, InstallCostPerKw: 3200},
	engine.RegionNewJersey:    {StateIncentiveRate: 0.10, SrecPricePerMwh: 90, InstallCostPerKw: 3400},
	engine.RegionPennsylvania: {StateIncentiveRate: 0.06, SrecPricePerMwh: 40, InstallCostPerKw: 3000},
	engine.RegionDC:           {StateIncentiveRate: 0.12, SrecPricePerMwh: 400, InstallCostPerKw: 3600},
	engine.RegionDelaware:     {StateIncentiveRate: 0.07, SrecPricePerMwh: 50, InstallCostPerKw: 3100},
	engine.RegionVirginia:     {StateIncentiveRate: 0.05, SrecPricePerMwh: 45, InstallCostPerKw: 2900},
}

// Default returns the built-in rate table
func Default() engine.RateTable {
	return engine.NewRateTable(defaults)
}
