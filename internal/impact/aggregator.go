// Package impact turns completed pickups into platform-wide impact statistics.
//
// Everything here is a pure function over already-fetched records so callers
// can feed fixture rows directly.
package impact

import (
	"time"

	"github.com/mealshare/backend/internal/models"
)

// Conversion factors applied to food weight
const (
	KgPerItem  = 0.5   // assumed average weight of one food item
	CO2PerKg   = 2.5   // kg CO2 per kg of food waste avoided
	WaterPerKg = 1000  // liters of water per kg
	LandPerKg  = 0.001 // hectares of land per kg
	MealsPerKg = 2
)

// UnknownCity labels restaurants without a city in the regional breakdown
const UnknownCity = "Unknown"

// Input is the raw data an aggregation run consumes
type Input struct {
	// CompletedPickups must carry their FoodItem; a nil item counts as quantity 0.
	CompletedPickups []models.Pickup
	// FoodItems feeds the food type distribution (all items, not only picked up ones).
	FoodItems []models.FoodItem
	// Restaurants carry their completed pickups (with food items) in Pickups.
	Restaurants      []models.Restaurant
	TotalRestaurants int64
	TotalUsers       int64
	// MonthlySince drops older pickups from the monthly breakdown. Zero keeps all.
	MonthlySince time.Time
}

// FoodWeight converts an item count to kilograms
func FoodWeight(quantity int) float64 {
	return float64(quantity) * KgPerItem
}

// Aggregate computes totals, derived environmental and social metrics, and the
// monthly, food type and regional breakdowns.
func Aggregate(in Input) models.Impact {
	var totalFoodSaved float64
	for _, p := range in.CompletedPickups {
		totalFoodSaved += FoodWeight(pickupQuantity(p))
	}

	monthly := in.CompletedPickups
	if !in.MonthlySince.IsZero() {
		monthly = make([]models.Pickup, 0, len(in.CompletedPickups))
		for _, p := range in.CompletedPickups {
			if !p.CreatedAt.Before(in.MonthlySince) {
				monthly = append(monthly, p)
			}
		}
	}

	return models.Impact{
		TotalPickups:     len(in.CompletedPickups),
		TotalFoodSaved:   totalFoodSaved,
		TotalRestaurants: in.TotalRestaurants,
		TotalUsers:       in.TotalUsers,
		Environmental: models.EnvironmentalImpact{
			CO2Saved:   totalFoodSaved * CO2PerKg,
			WaterSaved: totalFoodSaved * WaterPerKg,
			LandSaved:  totalFoodSaved * LandPerKg,
		},
		Social: models.SocialImpact{
			MealsProvided: totalFoodSaved * MealsPerKg,
		},
		MonthlyStats:         MonthlyStats(monthly),
		FoodTypeDistribution: FoodTypeDistribution(in.FoodItems),
		RegionalImpact:       RegionalImpact(in.Restaurants),
	}
}

// MonthlyStats buckets pickups by the UTC year-month of their creation time.
// Buckets are emitted in order of first appearance, so chronological input
// yields chronological output.
func MonthlyStats(pickups []models.Pickup) []models.MonthlyStat {
	stats := make([]models.MonthlyStat, 0)
	index := make(map[string]int)

	for _, p := range pickups {
		month := p.CreatedAt.UTC().Format("2006-01")
		i, ok := index[month]
		if !ok {
			i = len(stats)
			index[month] = i
			stats = append(stats, models.MonthlyStat{Month: month})
		}

		weight := FoodWeight(pickupQuantity(p))
		stats[i].Pickups++
		stats[i].FoodSaved += weight
		stats[i].CO2Saved += weight * CO2PerKg
	}

	return stats
}

// FoodTypeDistribution sums item quantities per food type in order of first appearance
func FoodTypeDistribution(items []models.FoodItem) []models.FoodTypeStat {
	stats := make([]models.FoodTypeStat, 0)
	index := make(map[string]int)

	for _, item := range items {
		i, ok := index[item.FoodType]
		if !ok {
			i = len(stats)
			index[item.FoodType] = i
			stats = append(stats, models.FoodTypeStat{Type: item.FoodType})
		}
		stats[i].Quantity += item.Quantity
	}

	return stats
}

// RegionalImpact groups restaurants by city and totals their nested pickups.
// Every restaurant passed in gets a city bucket even if it has no pickups.
func RegionalImpact(restaurants []models.Restaurant) []models.RegionalStat {
	stats := make([]models.RegionalStat, 0)
	index := make(map[string]int)

	for _, r := range restaurants {
		city := r.City
		if city == "" {
			city = UnknownCity
		}

		i, ok := index[city]
		if !ok {
			i = len(stats)
			index[city] = i
			stats = append(stats, models.RegionalStat{City: city})
		}

		for _, p := range r.Pickups {
			stats[i].Pickups++
			stats[i].FoodSaved += FoodWeight(pickupQuantity(p))
		}
	}

	return stats
}

func pickupQuantity(p models.Pickup) int {
	if p.FoodItem == nil {
		return 0
	}
	return p.FoodItem.Quantity
}
