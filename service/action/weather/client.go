package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/viant/scy"
)

const (
	defaultBaseURL          = "https://api.open-meteo.com"
	defaultGeocodingBaseURL = "https://geocoding-api.open-meteo.com"
)

// currentFields lists the variables requested from the forecast endpoint
const currentFields = "temperature_2m,relative_humidity_2m,apparent_temperature,weather_code,wind_speed_10m"

// Config holds weather client settings
type Config struct {
	BaseURL          string `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`
	GeocodingBaseURL string `json:"geocodingBaseURL,omitempty" yaml:"geocodingBaseURL,omitempty"`
	APIKeySecret     string `json:"apiKeySecret,omitempty" yaml:"apiKeySecret,omitempty"`
	TimeoutMs        int    `json:"timeoutMs,omitempty" yaml:"timeoutMs,omitempty"`
}

// Init fills in default endpoints
func (c *Config) Init() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.GeocodingBaseURL == "" {
		c.GeocodingBaseURL = defaultGeocodingBaseURL
	}
	if c.TimeoutMs == 0 {
		c.TimeoutMs = 15000
	}
}

// Client calls Open-Meteo style geocoding and forecast endpoints
type Client struct {
	config     *Config
	httpClient *http.Client
	secrets    *scy.Service

	apiKeyOnce sync.Once
	apiKey     string
	apiKeyErr  error
}

// NewClient creates a weather client
func NewClient(config *Config) *Client {
	if config == nil {
		config = &Config{}
	}
	config.Init()
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: time.Duration(config.TimeoutMs) * time.Millisecond},
		secrets:    scy.New(),
	}
}

// Geocode resolves a city name to matching locations
func (c *Client) Geocode(ctx context.Context, name string, count int) ([]*Location, error) {
	if name == "" {
		return nil, fmt.Errorf("location name was empty")
	}
	if count <= 0 {
		count = 5
	}
	query := url.Values{}
	query.Set("name", name)
	query.Set("count", strconv.Itoa(count))
	var response struct {
		Results []*Location `json:"results"`
	}
	if err := c.get(ctx, c.config.GeocodingBaseURL+"/v1/search", query, &response); err != nil {
		return nil, err
	}
	if len(response.Results) == 0 {
		return nil, fmt.Errorf("failed to locate %q", name)
	}
	return response.Results, nil
}

// Forecast fetches current conditions for the supplied coordinates
func (c *Client) Forecast(ctx context.Context, latitude, longitude float64) (*Conditions, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	query.Set("current", currentFields)
	var response struct {
		Timezone string `json:"timezone"`
		Current  struct {
			Time         string  `json:"time"`
			Temperature  float64 `json:"temperature_2m"`
			Humidity     float64 `json:"relative_humidity_2m"`
			ApparentTemp float64 `json:"apparent_temperature"`
			WeatherCode  int     `json:"weather_code"`
			WindSpeed    float64 `json:"wind_speed_10m"`
		} `json:"current"`
		CurrentUnits struct {
			Temperature string `json:"temperature_2m"`
			WindSpeed   string `json:"wind_speed_10m"`
		} `json:"current_units"`
	}
	if err := c.get(ctx, c.config.BaseURL+"/v1/forecast", query, &response); err != nil {
		return nil, err
	}
	current := response.Current
	return &Conditions{
		Time:            current.Time,
		Temperature:     current.Temperature,
		ApparentTemp:    current.ApparentTemp,
		Humidity:        current.Humidity,
		WindSpeed:       current.WindSpeed,
		WeatherCode:     current.WeatherCode,
		Description:     DescribeWeatherCode(current.WeatherCode),
		TemperatureUnit: response.CurrentUnits.Temperature,
		WindSpeedUnit:   response.CurrentUnits.WindSpeed,
	}, nil
}

// Timezone resolves the IANA timezone for the supplied coordinates
func (c *Client) Timezone(ctx context.Context, latitude, longitude float64) (string, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	query.Set("timezone", "auto")
	var response struct {
		Timezone string `json:"timezone"`
	}
	if err := c.get(ctx, c.config.BaseURL+"/v1/forecast", query, &response); err != nil {
		return "", err
	}
	if response.Timezone == "" {
		return "", fmt.Errorf("no timezone for coordinates %v,%v", latitude, longitude)
	}
	return response.Timezone, nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, result interface{}) error {
	apiKey, err := c.loadAPIKey(ctx)
	if err != nil {
		return err
	}
	if apiKey != "" {
		query.Set("apikey", apiKey)
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", endpoint, err)
	}
	defer response.Body.Close()
	data, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}
	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d: %s", endpoint, response.StatusCode, data)
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}

func (c *Client) loadAPIKey(ctx context.Context) (string, error) {
	if c.config.APIKeySecret == "" {
		return "", nil
	}
	c.apiKeyOnce.Do(func() {
		resource := scy.NewResource(nil, c.config.APIKeySecret, "blowfish://default")
		loaded, err := c.secrets.Load(ctx, resource)
		if err != nil {
			c.apiKeyErr = fmt.Errorf("failed to load API key secret: %w", err)
			return
		}
		c.apiKey = loaded.String()
	})
	return c.apiKey, c.apiKeyErr
}
