package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forecastServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "-11.52", q.Get("latitude"))
		assert.Equal(t, "-37.51", q.Get("longitude"))
		assert.Equal(t, "America/Maceio", q.Get("timezone"))
		assert.Equal(t, q.Get("start_date"), q.Get("end_date"))

		hourly := map[string]any{
			"time":                []string{},
			"temperature_2m":      []float64{},
			"relativehumidity_2m": []float64{},
			"rain":                []float64{},
			"windspeed_10m":       []float64{},
			"winddirection_10m":   []float64{},
		}
		for h := 0; h < 24; h++ {
			hourly["time"] = append(hourly["time"].([]string), q.Get("start_date"))
			hourly["temperature_2m"] = append(hourly["temperature_2m"].([]float64), 28.34)
			hourly["relativehumidity_2m"] = append(hourly["relativehumidity_2m"].([]float64), 78.6)
			hourly["rain"] = append(hourly["rain"].([]float64), 0.25)
			hourly["windspeed_10m"] = append(hourly["windspeed_10m"].([]float64), 14.47)
			hourly["winddirection_10m"] = append(hourly["winddirection_10m"].([]float64), 135)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"hourly": hourly})
	}))
}

func TestClient_GetForecast(t *testing.T) {
	srv := forecastServer(t)
	defer srv.Close()

	c := NewClientWithBaseURL(srv.URL)
	forecast, err := c.GetForecast(context.Background(), "2024-06-15T14:30")

	require.NoError(t, err)
	assert.Equal(t, 14.5, forecast.WindSpeed)
	assert.Equal(t, "SE", forecast.WindDirection)
	assert.Equal(t, 28.3, forecast.Temperature)
	assert.Equal(t, 0.3, forecast.Rain)
	assert.Equal(t, 79, forecast.Humidity)
}

func TestClient_GetForecastRejectsBadDateTime(t *testing.T) {
	c := NewClient()
	for _, input := range []string{"", "2024-06-15", "15/06/2024 14:30", "2024-06-15T14:30:00"} {
		_, err := c.GetForecast(context.Background(), input)
		assert.Error(t, err, input)
	}
}

func TestClient_GetForecastErrorMeansAbsence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(srv.URL)
	forecast, err := c.GetForecast(context.Background(), "2024-06-15T14:30")
	assert.Error(t, err)
	assert.Nil(t, forecast)
}

func TestClient_GetForecastIncompleteHourlyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"hourly": map[string]any{
			"time": []string{"2024-06-15"},
		}})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(srv.URL)
	_, err := c.GetForecast(context.Background(), "2024-06-15T14:30")
	assert.Error(t, err)
}

func TestDegreeToCardinal(t *testing.T) {
	tests := []struct {
		degree float64
		want   string
	}{
		{0, "N"},
		{22, "N"},
		{23, "NE"},
		{45, "NE"},
		{90, "E"},
		{135, "SE"},
		{180, "S"},
		{225, "SW"},
		{270, "W"},
		{315, "NW"},
		{338, "N"},
		{360, "N"},
		{405, "NE"},
		{-45, "NW"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, DegreeToCardinal(tc.degree), "%v degrees", tc.degree)
	}
}
