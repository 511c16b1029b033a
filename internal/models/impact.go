package models

// Impact bundles platform-wide totals, derived metrics and breakdowns
type Impact struct {
	TotalPickups         int                 `json:"totalPickups"`
	TotalFoodSaved       float64             `json:"totalFoodSaved"`
	TotalRestaurants     int64               `json:"totalRestaurants"`
	TotalUsers           int64               `json:"totalUsers"`
	Environmental        EnvironmentalImpact `json:"environmental"`
	Social               SocialImpact        `json:"social"`
	MonthlyStats         []MonthlyStat       `json:"monthlyStats"`
	FoodTypeDistribution []FoodTypeStat      `json:"foodTypeDistribution"`
	RegionalImpact       []RegionalStat      `json:"regionalImpact"`
}

type EnvironmentalImpact struct {
	CO2Saved   float64 `json:"co2Saved"`   // kg
	WaterSaved float64 `json:"waterSaved"` // liters
	LandSaved  float64 `json:"landSaved"`  // hectares
}

type SocialImpact struct {
	MealsProvided float64 `json:"mealsProvided"`
}

type MonthlyStat struct {
	Month     string  `json:"month"`
	Pickups   int     `json:"pickups"`
	FoodSaved float64 `json:"foodSaved"`
	CO2Saved  float64 `json:"co2Saved"`
}

type FoodTypeStat struct {
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

type RegionalStat struct {
	City      string  `json:"city"`
	Pickups   int     `json:"pickups"`
	FoodSaved float64 `json:"foodSaved"`
}

// ImpactResponse is the tagged result returned by the impact endpoint
type ImpactResponse struct {
	Success bool    `json:"success"`
	Impact  *Impact `json:"impact,omitempty"`
	Error   string  `json:"error,omitempty"`
}
