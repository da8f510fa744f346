package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/toolgate/internal/clock"
)

// Service exposes weather and geocoding operations
type Service struct {
	client *Client
}

// New creates a weather service
func New(config *Config) *Service {
	return &Service{client: NewClient(config)}
}

// Current reports current weather conditions for a city name or coordinates
func (s *Service) Current(ctx context.Context, input *CurrentInput, output *CurrentOutput) error {
	location, err := s.resolve(ctx, input.Location)
	if err != nil {
		return err
	}
	conditions, err := s.client.Forecast(ctx, location.Latitude, location.Longitude)
	if err != nil {
		return err
	}
	output.Location = location
	output.Conditions = conditions
	return nil
}

// Locate geocodes a city name
func (s *Service) Locate(ctx context.Context, input *LocateInput, output *LocateOutput) error {
	input.Init()
	matches, err := s.client.Geocode(ctx, input.Name, input.Count)
	if err != nil {
		return err
	}
	output.Matches = matches
	return nil
}

// LocalTime reports the current local time at a city or coordinates
func (s *Service) LocalTime(ctx context.Context, input *LocalTimeInput, output *LocalTimeOutput) error {
	location, err := s.resolve(ctx, input.Location)
	if err != nil {
		return err
	}
	timezone := location.Timezone
	if timezone == "" {
		timezone, err = s.client.Timezone(ctx, location.Latitude, location.Longitude)
		if err != nil {
			return err
		}
	}
	zone, err := time.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}
	output.Location = location
	output.Timezone = timezone
	output.LocalTime = clock.Now().In(zone).Format(time.RFC3339)
	return nil
}

// resolve turns a "lat,lon" pair or a city name into a location
func (s *Service) resolve(ctx context.Context, input string) (*Location, error) {
	if latitude, longitude, ok := ParseCoordinates(input); ok {
		return &Location{
			Name:      input,
			Latitude:  latitude,
			Longitude: longitude,
		}, nil
	}
	matches, err := s.client.Geocode(ctx, input, 1)
	if err != nil {
		return nil, err
	}
	return matches[0], nil
}
