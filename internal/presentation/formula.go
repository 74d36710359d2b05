package presentation

import "math"

// Tuning for visual parity with the stock scenes. Do not round.

// SunAltitude is a cosine with a 12h period: 100 at midnight and noon, 0 at 06:00 and 18:00.
func SunAltitude(timeOfDay float64) float64 {
	return 50*math.Cos(math.Pi*timeOfDay/6) + 50
}

// SunIntensity dims the sun as rain gets heavier.
func SunIntensity(rainDensity float64) float64 {
	return (1 - rainDensity) / 1000
}

// FogFalloff is a 48h sine over the time of day.
func FogFalloff(timeOfDay float64) float64 {
	return 0.5 * math.Sin(math.Pi*timeOfDay/24)
}

// SkyBrightness ramps exponentially towards midday and back down.
func SkyBrightness(timeOfDay float64) float64 {
	if timeOfDay < 12 {
		return (math.Pow(2, timeOfDay) - 1) / 10
	}
	return (math.Pow(2, 24-timeOfDay) - 1) / 10
}

// EmissionRate is the particle emission multiplier for a rain element.
func EmissionRate(density float64) float64 {
	return 20*(density-0.7) + 1
}

// DistantRainCopies is how many extra copies of the distant rain mesh to add:
// the count of integers i >= 1 with i < 40*(density-0.85)+1.
func DistantRainCopies(density float64) int {
	bound := 40*(density-0.85) + 1
	if bound <= 1 {
		return 0
	}
	return int(math.Ceil(bound)) - 1
}
