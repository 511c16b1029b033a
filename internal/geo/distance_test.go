package geo

import (
	"math"
	"testing"
)

func TestCalculateDistance_SamePoint(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{40.7128, -74.0060},
		{-33.8688, 151.2093},
		{89.9, 179.9},
	}

	for _, p := range points {
		if d := CalculateDistance(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("CalculateDistance(%v, %v) to itself = %f, want 0", p[0], p[1], d)
		}
	}
}

func TestCalculateDistance_Symmetric(t *testing.T) {
	pairs := []struct {
		lat1, lon1, lat2, lon2 float64
	}{
		{40.7128, -74.0060, 34.0522, -118.2437},
		{51.5074, -0.1278, 48.8566, 2.3522},
		{-33.8688, 151.2093, 35.6762, 139.6503},
	}

	for _, p := range pairs {
		ab := CalculateDistance(p.lat1, p.lon1, p.lat2, p.lon2)
		ba := CalculateDistance(p.lat2, p.lon2, p.lat1, p.lon1)
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("distance not symmetric: %f vs %f", ab, ba)
		}
	}
}

func TestCalculateDistance_KnownValues(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tolerance              float64
	}{
		// one degree of arc on a 3956 mile sphere
		{"one degree of longitude at the equator", 0, 0, 0, 1, 69.045, 0.01},
		{"one degree of latitude", 0, 0, 1, 0, 69.045, 0.01},
		{"new york to los angeles", 40.7128, -74.0060, 34.0522, -118.2437, 2443, 5},
		{"antipodal points", 0, 0, 0, 180, math.Pi * EarthRadiusMiles, 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("CalculateDistance() = %f, want %f ± %f", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		distance float64
		want     string
	}{
		{0, "< 0.1 miles"},
		{0.05, "< 0.1 miles"},
		{0.0999, "< 0.1 miles"},
		{0.1, "0.1 miles"},
		{0.3, "0.3 miles"},
		{0.34, "0.3 miles"},
		{0.5, "0.5 miles"},
		{0.96, "1 miles"},
		{1, "1.0 miles"},
		{4.2, "4.2 miles"},
		{4.25, "4.3 miles"},
		{1.15, "1.1 miles"},
		{1.45, "1.4 miles"},
		{3.15, "3.1 miles"},
		{4.35, "4.3 miles"},
		{10.45, "10.4 miles"},
		{2.5, "2.5 miles"},
		{0.25, "0.3 miles"},
		{0.75, "0.8 miles"},
		{12.349, "12.3 miles"},
		{250, "250.0 miles"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatDistance(tt.distance); got != tt.want {
				t.Errorf("FormatDistance(%v) = %q, want %q", tt.distance, got, tt.want)
			}
		})
	}
}
