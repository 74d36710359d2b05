// pkg/core/record.go
package core

import "time"

// WeatherRecord is the history entry written when a mission ends.
type WeatherRecord struct {
	ID           uint
	MissionName  string
	Mode         string
	Season       string
	TimeOfDay    float64
	Requested    WeatherState
	DustRendered bool
	Realized     float64 // realized rain density read on the first tick
	Tier         string
	Sounds       []string
	StartedAt    time.Time
	EndedAt      time.Time
}
