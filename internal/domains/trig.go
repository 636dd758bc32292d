package domains

import "math"

func cosDeg(deg float64) float64 {
	return math.Cos(deg * math.Pi / 180.0)
}

func sinDeg(deg float64) float64 {
	return math.Sin(deg * math.Pi / 180.0)
}
