package openweather

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

// errorResponse is sent with non-200 statuses
type errorResponse struct {
	Cod     json.RawMessage `json:"cod"`
	Message string          `json:"message"`
}

type conditionJSON struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type mainJSON struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  float64 `json:"pressure"`
	Humidity  float64 `json:"humidity"`
}

type windJSON struct {
	Speed float64  `json:"speed"`
	Deg   float64  `json:"deg"`
	Gust  *float64 `json:"gust"`
}

// volumeJSON maps a window such as "1h" or "3h" to millimeters
type volumeJSON map[string]float64

type cloudsJSON struct {
	All float64 `json:"all"`
}

type readingsJSON struct {
	Dt         int64           `json:"dt"`
	Weather    []conditionJSON `json:"weather"`
	Main       mainJSON        `json:"main"`
	Visibility float64         `json:"visibility"`
	Wind       windJSON        `json:"wind"`
	Clouds     cloudsJSON      `json:"clouds"`
	Rain       volumeJSON      `json:"rain"`
	Snow       volumeJSON      `json:"snow"`
}

// weatherResponse is the data/2.5/weather payload
type weatherResponse struct {
	readingsJSON
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Timezone int    `json:"timezone"`
	Name     string `json:"name"`
}

// forecastResponse is the data/2.5/forecast payload
type forecastResponse struct {
	List []struct {
		readingsJSON
		Pop float64 `json:"pop"`
		Sys struct {
			Pod string `json:"pod"`
		} `json:"sys"`
	} `json:"list"`
	City struct {
		Name  string `json:"name"`
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
		Country  string `json:"country"`
		Timezone int    `json:"timezone"`
		Sunrise  int64  `json:"sunrise"`
		Sunset   int64  `json:"sunset"`
	} `json:"city"`
}

func (r weatherResponse) toObservation(now time.Time) *models.Observation {
	return &models.Observation{
		Readings:       r.readingsJSON.toReadings(),
		TimezoneOffset: r.Timezone,
		Sunrise:        time.Unix(r.Sys.Sunrise, 0),
		Sunset:         time.Unix(r.Sys.Sunset, 0),
		UpdatedAt:      now,
	}
}

func (r forecastResponse) toForecast(now time.Time) *models.Forecast {
	fc := &models.Forecast{
		City:    r.City.Name,
		Country: r.City.Country,
		Coordinates: models.Coordinates{
			Latitude:  r.City.Coord.Lat,
			Longitude: r.City.Coord.Lon,
		},
		TimezoneOffset: r.City.Timezone,
		Sunrise:        time.Unix(r.City.Sunrise, 0),
		Sunset:         time.Unix(r.City.Sunset, 0),
		Slots:          make([]models.ForecastSlot, 0, len(r.List)),
		UpdatedAt:      now,
	}

	for _, item := range r.List {
		pod := models.Day
		if item.Sys.Pod == string(models.Night) {
			pod = models.Night
		}
		fc.Slots = append(fc.Slots, models.ForecastSlot{
			Readings:          item.readingsJSON.toReadings(),
			PrecipProbability: item.Pop,
			PartOfDay:         pod,
		})
	}
	return fc
}

func (r readingsJSON) toReadings() models.Readings {
	readings := models.Readings{
		Time:             time.Unix(r.Dt, 0),
		Conditions:       make([]models.Condition, 0, len(r.Weather)),
		Temperature:      r.Main.Temp,
		FeelsLike:        r.Main.FeelsLike,
		TempMin:          r.Main.TempMin,
		TempMax:          r.Main.TempMax,
		PressureHPa:      r.Main.Pressure,
		Humidity:         r.Main.Humidity,
		VisibilityMeters: r.Visibility,
		Wind: models.WindData{
			SpeedMPH: r.Wind.Speed,
			Degrees:  r.Wind.Deg,
		},
		CloudCover: r.Clouds.All,
	}

	if r.Wind.Gust != nil {
		readings.Wind.GustMPH = *r.Wind.Gust
		readings.Wind.HasGust = true
	}

	for _, w := range r.Weather {
		readings.Conditions = append(readings.Conditions, models.Condition{
			ID:          w.ID,
			Main:        w.Main,
			Description: w.Description,
			Icon:        w.Icon,
		})
	}

	readings.Precipitation = append(r.Rain.accumulations(models.Rain), r.Snow.accumulations(models.Snow)...)
	return readings
}

// accumulations lists the volumes shortest window first.
// Keys that are not durations are skipped.
func (v volumeJSON) accumulations(kind models.PrecipKind) []models.Accumulation {
	if len(v) == 0 {
		return nil
	}
	out := make([]models.Accumulation, 0, len(v))
	for key, mm := range v {
		window, err := time.ParseDuration(key)
		if err != nil {
			continue
		}
		out = append(out, models.Accumulation{Kind: kind, Window: window, Millimeters: mm})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Window < out[j].Window })
	return out
}
