// Package geo computes great-circle distances between restaurants and users.
package geo

import (
	"math"
	"math/big"
	"strconv"
)

// EarthRadiusMiles is the radius used by the Haversine formula
const EarthRadiusMiles = 3956.0

// CalculateDistance returns the great-circle distance in miles between two
// points given in degrees. Coordinates are not range checked.
func CalculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	radLat1 := lat1 * math.Pi / 180
	radLon1 := lon1 * math.Pi / 180
	radLat2 := lat2 * math.Pi / 180
	radLon2 := lon2 * math.Pi / 180

	dlon := radLon2 - radLon1
	dlat := radLat2 - radLat1
	a := math.Pow(math.Sin(dlat/2), 2) + math.Cos(radLat1)*math.Cos(radLat2)*math.Pow(math.Sin(dlon/2), 2)
	// rounding can push a slightly past 1 for antipodal points
	c := 2 * math.Asin(math.Sqrt(math.Min(a, 1)))

	return c * EarthRadiusMiles
}

// FormatDistance renders a distance in miles for display:
//
//	< 0.1      "< 0.1 miles"
//	[0.1, 1)   tenths, shortest form ("0.3 miles", "1 miles")
//	>= 1       one decimal place ("4.2 miles")
//
// Rounding works on the exact binary value; only exact ties such as 4.25
// round up, so 4.35 (stored as 4.34999...) renders as "4.3 miles".
func FormatDistance(distance float64) string {
	switch {
	case distance < 0.1:
		return "< 0.1 miles"
	case distance < 1:
		tenths, _ := strconv.ParseFloat(toFixed(distance*10, 0), 64)
		return strconv.FormatFloat(tenths/10, 'f', -1, 64) + " miles"
	default:
		return toFixed(distance, 1) + " miles"
	}
}

// toFixed formats a non-negative v with the given number of decimals,
// rounding exact ties up instead of to even.
func toFixed(v float64, decimals int) string {
	if isTie(v, decimals) {
		v = math.Nextafter(v, math.Inf(1))
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// isTie reports whether v sits exactly halfway between two values with the
// given number of decimals.
func isTie(v float64, decimals int) bool {
	scaled := new(big.Float).SetPrec(256).SetFloat64(v)
	scaled.Mul(scaled, new(big.Float).SetPrec(256).SetFloat64(math.Pow10(decimals)))

	whole, _ := scaled.Int(nil)
	frac := scaled.Sub(scaled, new(big.Float).SetPrec(256).SetInt(whole))
	return frac.Cmp(big.NewFloat(0.5)) == 0
}
