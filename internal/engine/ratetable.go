package engine

import "sort"

// Fallback rates used for regions missing from a RateTable
const (
	DefaultStateIncentiveRate = 0.05
	DefaultSrecPricePerMwh    = 40.0
)

// RateTable maps regions to their incentive rates. It is read-only after construction.
type RateTable struct {
	byRegion map[Region]RegionRates
}

// NewRateTable copies rates into a new table
func NewRateTable(rates map[Region]RegionRates) RateTable {
	m := make(map[Region]RegionRates, len(rates))
	for region, r := range rates {
		m[region] = r
	}
	return RateTable{byRegion: m}
}

// Lookup returns the rates for a region and whether the region is known
func (t RateTable) Lookup(region Region) (RegionRates, bool) {
	r, ok := t.byRegion[region]
	return r, ok
}

// Resolve returns the rates for a region, substituting the fallback rates for unknown regions
func (t RateTable) Resolve(region Region) RegionRates {
	if r, ok := t.byRegion[region]; ok {
		return r
	}
	return RegionRates{
		StateIncentiveRate: DefaultStateIncentiveRate,
		SrecPricePerMwh:    DefaultSrecPricePerMwh,
	}
}

// Len returns the number of regions in the table
func (t RateTable) Len() int { return len(t.byRegion) }

// Regions returns the table's regions sorted by name
func (t RateTable) Regions() []Region {
	regions := make([]Region, 0, len(t.byRegion))
	for region := range t.byRegion {
		regions = append(regions, region)
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i] < regions[j] })
	return regions
}

// Snapshot returns a copy of the table contents
func (t RateTable) Snapshot() map[Region]RegionRates {
	m := make(map[Region]RegionRates, len(t.byRegion))
	for region, r := range t.byRegion {
		m[region] = r
	}
	return m
}
