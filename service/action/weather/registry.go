package weather

import (
	"context"
	"reflect"
	"strings"

	"github.com/viant/toolgate/model/types"
)

const Name = "weather"

func (s *Service) Name() string {
	return Name
}

func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "current",
			Description: "Reports current weather conditions (temperature, humidity, wind, WMO code) for a city name or 'lat,lon' coordinates.",
			Input:       reflect.TypeOf(&CurrentInput{}),
			Output:      reflect.TypeOf(&CurrentOutput{}),
		},
		{
			Name:        "locate",
			Description: "Geocodes a city name to matching locations with latitude, longitude, country and timezone.",
			Input:       reflect.TypeOf(&LocateInput{}),
			Output:      reflect.TypeOf(&LocateOutput{}),
		},
		{
			Name:        "localtime",
			Description: "Reports the current local time at a city or 'lat,lon' coordinates, resolving the IANA timezone.",
			Input:       reflect.TypeOf(&LocalTimeInput{}),
			Output:      reflect.TypeOf(&LocalTimeOutput{}),
		},
	}
}

func (s *Service) current(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*CurrentInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*CurrentOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Current(ctx, input, output)
}

func (s *Service) locate(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*LocateInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*LocateOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Locate(ctx, input, output)
}

func (s *Service) localTime(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*LocalTimeInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*LocalTimeOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.LocalTime(ctx, input, output)
}

// Method returns method by Name
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "current":
		return s.current, nil
	case "locate":
		return s.locate, nil
	case "localtime":
		return s.localTime, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}
