package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/toolgate/internal/clock"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/search", func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		w.Header().Set("Content-Type", "application/json")
		switch name {
		case "Berlin":
			fmt.Fprint(w, `{"results":[{"name":"Berlin","latitude":52.52,"longitude":13.405,"country":"Germany","timezone":"Europe/Berlin"}]}`)
		default:
			fmt.Fprint(w, `{}`)
		}
	})
	mux.HandleFunc("/v1/forecast", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"timezone":"Europe/Berlin",
			"current":{"time":"2026-08-30T12:15","temperature_2m":21.4,"relative_humidity_2m":58,"apparent_temperature":20.9,"weather_code":3,"wind_speed_10m":11.2},
			"current_units":{"temperature_2m":"°C","wind_speed_10m":"km/h"}
		}`)
	})
	return httptest.NewServer(mux)
}

func newTestService(server *httptest.Server) *Service {
	return New(&Config{BaseURL: server.URL, GeocodingBaseURL: server.URL})
}

func TestService_Current(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()
	service := newTestService(server)

	output := &CurrentOutput{}
	err := service.Current(context.Background(), &CurrentInput{Location: "Berlin"}, output)
	assert.Nil(t, err)
	assert.Equal(t, "Berlin", output.Location.Name)
	assert.Equal(t, 21.4, output.Conditions.Temperature)
	assert.Equal(t, 58.0, output.Conditions.Humidity)
	assert.Equal(t, "Overcast", output.Conditions.Description)
	assert.Equal(t, "°C", output.Conditions.TemperatureUnit)
}

func TestService_Current_Coordinates(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()
	service := newTestService(server)

	output := &CurrentOutput{}
	err := service.Current(context.Background(), &CurrentInput{Location: "52.52,13.405"}, output)
	assert.Nil(t, err)
	assert.Equal(t, 52.52, output.Location.Latitude)
	assert.Equal(t, 11.2, output.Conditions.WindSpeed)
}

func TestService_Current_UnknownCity(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()
	service := newTestService(server)

	err := service.Current(context.Background(), &CurrentInput{Location: "Atlantis"}, &CurrentOutput{})
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "failed to locate")
}

func TestService_Locate(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()
	service := newTestService(server)

	output := &LocateOutput{}
	err := service.Locate(context.Background(), &LocateInput{Name: "Berlin"}, output)
	assert.Nil(t, err)
	if assert.Equal(t, 1, len(output.Matches)) {
		assert.Equal(t, "Germany", output.Matches[0].Country)
		assert.Equal(t, "Europe/Berlin", output.Matches[0].Timezone)
	}
}

func TestService_LocalTime(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()
	service := newTestService(server)

	previous := clock.NowFunc
	clock.NowFunc = func() time.Time {
		return time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	}
	defer func() { clock.NowFunc = previous }()

	output := &LocalTimeOutput{}
	err := service.LocalTime(context.Background(), &LocalTimeInput{Location: "Berlin"}, output)
	assert.Nil(t, err)
	assert.Equal(t, "Europe/Berlin", output.Timezone)
	assert.Equal(t, "2026-08-30T12:00:00+02:00", output.LocalTime)
}

func TestService_Method(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()
	service := newTestService(server)

	for _, name := range []string{"current", "locate", "localtime"} {
		executable, err := service.Method(name)
		assert.Nil(t, err, name)
		assert.NotNil(t, executable, name)
	}
	_, err := service.Method("unknown")
	assert.NotNil(t, err)
}
