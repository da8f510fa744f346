package weather

// Location represents a geocoded place
type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country,omitempty"`
	Admin1    string  `json:"admin1,omitempty"`
	Timezone  string  `json:"timezone,omitempty"`
}

// Conditions represents current weather conditions at a location
type Conditions struct {
	Time            string  `json:"time,omitempty"`
	Temperature     float64 `json:"temperature"`
	ApparentTemp    float64 `json:"apparentTemperature"`
	Humidity        float64 `json:"humidity"`
	WindSpeed       float64 `json:"windSpeed"`
	WeatherCode     int     `json:"weatherCode"`
	Description     string  `json:"description,omitempty"`
	TemperatureUnit string  `json:"temperatureUnit,omitempty"`
	WindSpeedUnit   string  `json:"windSpeedUnit,omitempty"`
}

// CurrentInput defines parameters for the current weather method
type CurrentInput struct {
	Location string `json:"location" required:"true" description:"city name or 'lat,lon' coordinates"`
}

// CurrentOutput contains current weather conditions
type CurrentOutput struct {
	Location   *Location   `json:"location,omitempty" description:"resolved location"`
	Conditions *Conditions `json:"conditions,omitempty" description:"current weather conditions"`
}

// LocateInput defines parameters for the locate method
type LocateInput struct {
	Name  string `json:"name" required:"true" description:"city name to geocode"`
	Count int    `json:"count,omitempty" description:"max matches to return (default 5)"`
}

// LocateOutput contains geocoding matches
type LocateOutput struct {
	Matches []*Location `json:"matches,omitempty" description:"geocoding matches"`
}

// LocalTimeInput defines parameters for the localtime method
type LocalTimeInput struct {
	Location string `json:"location" required:"true" description:"city name or 'lat,lon' coordinates"`
}

// LocalTimeOutput contains the local time at the resolved location
type LocalTimeOutput struct {
	Location  *Location `json:"location,omitempty" description:"resolved location"`
	Timezone  string    `json:"timezone" description:"IANA timezone identifier"`
	LocalTime string    `json:"localTime" description:"current local time in RFC3339 format"`
}

func (i *LocateInput) Init() {
	if i.Count == 0 {
		i.Count = 5
	}
}
