package engine

// RoofType is the roof material of the installation site
type RoofType string

const (
	RoofAsphalt RoofType = "asphalt"
	RoofTile    RoofType = "tile"
	RoofMetal   RoofType = "metal"
	RoofFlat    RoofType = "flat"
)

// ShadingLevel describes how much of the day the array is shaded
type ShadingLevel string

const (
	ShadingMinimal  ShadingLevel = "minimal"
	ShadingModerate ShadingLevel = "moderate"
	ShadingHeavy    ShadingLevel = "heavy"
)

// Region identifies a service territory in the rate tables
type Region string

const (
	RegionMaryland     Region = "maryland"
	RegionNewJersey    Region = "newjersey"
	RegionPennsylvania Region = "pennsylvania"
	RegionDC           Region = "dc"
	RegionDelaware     Region = "delaware"
	RegionVirginia     Region = "virginia"
)

// Regions lists the supported service territories in display order
var Regions = []Region{
	RegionMaryland,
	RegionNewJersey,
	RegionPennsylvania,
	RegionDC,
	RegionDelaware,
	RegionVirginia,
}

// EstimateInput is one set of calculator form values
type EstimateInput struct {
	MonthlyBillUsd float64      `json:"monthlyBillUsd" validate:"finite,gt=0"`
	RoofType       RoofType     `json:"roofType" validate:"oneof=asphalt tile metal flat"`
	ShadingLevel   ShadingLevel `json:"shadingLevel" validate:"oneof=minimal moderate heavy"`
	SystemSizeKw   float64      `json:"systemSizeKw" validate:"finite,gt=0"`
	BatteryBackup  bool         `json:"batteryBackup"`
	EvCharger      bool         `json:"evCharger"`
	Region         Region       `json:"region"`
}

// RegionRates holds the incentive figures for one region
type RegionRates struct {
	StateIncentiveRate float64 `json:"stateIncentiveRate" validate:"finite,gte=0,lt=1"` // fraction of gross cost
	SrecPricePerMwh    float64 `json:"srecPricePerMwh" validate:"finite,gte=0"`         // dollars
	// InstallCostPerKw is published reference data only; Estimate does not read it.
	InstallCostPerKw float64 `json:"installCostPerKw" validate:"finite,gte=0"`
}

// CostBreakdown is the result of one estimate
type CostBreakdown struct {
	Equipment          float64 `json:"equipment"`
	Labor              float64 `json:"labor"`
	Permitting         float64 `json:"permitting"`
	Design             float64 `json:"design"`
	Additional         float64 `json:"additional"`
	GrossCost          float64 `json:"grossCost"`
	FederalItc         float64 `json:"federalItc"`
	StateIncentives    float64 `json:"stateIncentives"`
	SrecIncome         float64 `json:"srecIncome"`
	NetCost            float64 `json:"netCost"`
	AnnualSavings      float64 `json:"annualSavings"`
	PaybackPeriodYears float64 `json:"paybackPeriodYears"`
}

// CostShare is one slice of the gross cost, used for the investment breakdown chart
type CostShare struct {
	Component string  `json:"component"`
	Amount    float64 `json:"amount"`
	Percent   float64 `json:"percent"`
}

// PaybackYear is one point on the payback chart
type PaybackYear struct {
	Year              int     `json:"year"`
	AnnualSavings     float64 `json:"annualSavings"`
	CumulativeSavings float64 `json:"cumulativeSavings"`
	NetPosition       float64 `json:"netPosition"` // cumulative savings minus net cost
	PaidBack          bool    `json:"paidBack"`
}
