package journey

type WeatherType string

const (
	WeatherClear     WeatherType = "clear"
	WeatherOvercast  WeatherType = "overcast"
	WeatherRain      WeatherType = "rain"
	WeatherHeavyRain WeatherType = "heavy_rain"
	WeatherSnow      WeatherType = "snow"
	WeatherBlizzard  WeatherType = "blizzard"
)

type WeatherState struct {
	Type         WeatherType `json:"type"`
	TemperatureC int         `json:"temperature_c"`
}

// rollWeather draws the day's weather. Alpine legs skew colder and
// snowier; muskeg legs skew wetter.
func rollWeather(terrain TerrainType, src Source) WeatherState {
	roll := src.Float64()

	var weather WeatherType
	switch terrain {
	case TerrainAlpine:
		switch {
		case roll < 0.30:
			weather = WeatherClear
		case roll < 0.50:
			weather = WeatherOvercast
		case roll < 0.65:
			weather = WeatherRain
		case roll < 0.85:
			weather = WeatherSnow
		default:
			weather = WeatherBlizzard
		}
	case TerrainMuskeg:
		switch {
		case roll < 0.25:
			weather = WeatherClear
		case roll < 0.45:
			weather = WeatherOvercast
		case roll < 0.80:
			weather = WeatherRain
		default:
			weather = WeatherHeavyRain
		}
	default:
		switch {
		case roll < 0.40:
			weather = WeatherClear
		case roll < 0.65:
			weather = WeatherOvercast
		case roll < 0.85:
			weather = WeatherRain
		case roll < 0.95:
			weather = WeatherHeavyRain
		default:
			weather = WeatherSnow
		}
	}

	temp := 4 + src.IntN(18) // 4..21
	switch weather {
	case WeatherSnow:
		temp = -2 - src.IntN(8)
	case WeatherBlizzard:
		temp = -10 - src.IntN(12)
	case WeatherHeavyRain:
		temp = 2 + src.IntN(8)
	}
	if terrain == TerrainAlpine {
		temp -= 6
	}

	return WeatherState{Type: weather, TemperatureC: temp}
}

// weatherTravelModifier scales achievable distance; harsher weather
// always slows travel.
func weatherTravelModifier(weather WeatherType) float64 {
	switch weather {
	case WeatherClear:
		return 1.0
	case WeatherOvercast:
		return 0.95
	case WeatherRain:
		return 0.85
	case WeatherHeavyRain:
		return 0.7
	case WeatherSnow:
		return 0.6
	case WeatherBlizzard:
		return 0.35
	default:
		return 1.0
	}
}

// terrainSpeedFactor scales achievable distance by the ground the
// current leg crosses.
func terrainSpeedFactor(terrain TerrainType) float64 {
	switch terrain {
	case TerrainMainline:
		return 1.2
	case TerrainGravel:
		return 1.0
	case TerrainSkid:
		return 0.75
	case TerrainMuskeg:
		return 0.55
	case TerrainAlpine:
		return 0.5
	default:
		return 1.0
	}
}
