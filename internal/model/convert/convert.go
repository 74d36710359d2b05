// Package convert maps between core values and GORM models
package convert

import (
	"encoding/json"

	"github.com/OCAP2/weather/internal/model"
	"github.com/OCAP2/weather/pkg/core"
	"gorm.io/datatypes"
)

// CoreToWeatherRecord converts a core.WeatherRecord to its GORM row.
// The row ID is left to the database.
func CoreToWeatherRecord(r core.WeatherRecord) model.WeatherRecord {
	sounds := r.Sounds
	if sounds == nil {
		sounds = []string{}
	}
	raw, _ := json.Marshal(sounds)

	return model.WeatherRecord{
		MissionName:   r.MissionName,
		Mode:          r.Mode,
		Season:        r.Season,
		TimeOfDay:     r.TimeOfDay,
		StartedAt:     r.StartedAt,
		EndedAt:       r.EndedAt,
		RequestedRain: r.Requested.RainDensity,
		RequestedFog:  r.Requested.FogDensity,
		RequestedDust: r.Requested.HasDust,
		DustRendered:  r.DustRendered,
		RealizedRain:  r.Realized,
		Tier:          r.Tier,
		Sounds:        datatypes.JSON(raw),
	}
}

// WeatherRecordToCore converts a GORM row to a core.WeatherRecord.
// Malformed sound JSON yields an empty list.
func WeatherRecordToCore(m model.WeatherRecord) core.WeatherRecord {
	var sounds []string
	if len(m.Sounds) > 0 {
		_ = json.Unmarshal(m.Sounds, &sounds)
	}

	return core.WeatherRecord{
		ID:          m.ID,
		MissionName: m.MissionName,
		Mode:        m.Mode,
		Season:      m.Season,
		TimeOfDay:   m.TimeOfDay,
		Requested: core.WeatherState{
			RainDensity: m.RequestedRain,
			FogDensity:  m.RequestedFog,
			HasDust:     m.RequestedDust,
		},
		DustRendered: m.DustRendered,
		Realized:     m.RealizedRain,
		Tier:         m.Tier,
		Sounds:       sounds,
		StartedAt:    m.StartedAt,
		EndedAt:      m.EndedAt,
	}
}
