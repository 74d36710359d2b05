package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&WeatherInfo{},
	&WeatherRecord{},
}

// WeatherInfo holds schema metadata
type WeatherInfo struct {
	gorm.Model
	SchemaVersion    string `json:"schemaVersion" gorm:"size:64"`
	ExtensionVersion string `json:"extensionVersion" gorm:"size:64"`
}

func (*WeatherInfo) TableName() string {
	return "weather_info"
}

// WeatherRecord is the weather applied to one mission.
type WeatherRecord struct {
	gorm.Model
	MissionName string    `json:"missionName" gorm:"size:200;index:idx_weather_mission"`
	Mode        string    `json:"mode" gorm:"size:32"`
	Season      string    `json:"season" gorm:"size:32"`
	TimeOfDay   float64   `json:"timeOfDay"`
	StartedAt   time.Time `json:"startedAt" gorm:"index:idx_weather_started"`
	EndedAt     time.Time `json:"endedAt"`

	RequestedRain float64 `json:"requestedRain" gorm:"default:-1"`
	RequestedFog  float64 `json:"requestedFog"`
	RequestedDust bool    `json:"requestedDust"`
	DustRendered  bool    `json:"dustRendered"`

	RealizedRain float64        `json:"realizedRain"`
	Tier         string         `json:"tier" gorm:"size:16"`
	Sounds       datatypes.JSON `json:"sounds"`
}

func (*WeatherRecord) TableName() string {
	return "weather_records"
}
