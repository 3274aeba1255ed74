// Package weather fetches the hourly Open-Meteo forecast used to
// pre-populate a race's weather snapshot. The venue is fixed: the regatta
// runs in Indiaroba/SE, Brasil.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	indiarobaLat = -11.52
	indiarobaLon = -37.51
	indiarobaTZ  = "America/Maceio"

	hourlyParams = "temperature_2m,relativehumidity_2m,rain,windspeed_10m,winddirection_10m"

	defaultBaseURL = "https://api.open-meteo.com"
)

var localDateTimeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}$`)

// Forecast is the weather snapshot attached to a race.
type Forecast struct {
	WindSpeed     float64 `json:"windSpeed"`
	WindDirection string  `json:"windDirection"`
	Temperature   float64 `json:"temperature"`
	Rain          float64 `json:"rain"`
	Humidity      int     `json:"humidity"`
}

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewClientWithBaseURL points the client at a different endpoint, for tests.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

type openMeteoResponse struct {
	Hourly struct {
		Time             []string  `json:"time"`
		Temperature      []float64 `json:"temperature_2m"`
		RelativeHumidity []float64 `json:"relativehumidity_2m"`
		Rain             []float64 `json:"rain"`
		WindSpeed        []float64 `json:"windspeed_10m"`
		WindDirection    []float64 `json:"winddirection_10m"`
	} `json:"hourly"`
}

// GetForecast returns the forecast for a local date and time in
// "YYYY-MM-DDTHH:MM" form. A nil forecast with a non-nil error means no
// forecast is available; callers treat that as absence, not failure.
func (c *Client) GetForecast(ctx context.Context, localDateTime string) (*Forecast, error) {
	if !localDateTimeRe.MatchString(localDateTime) {
		return nil, fmt.Errorf("invalid local date/time format: %q", localDateTime)
	}

	parts := strings.SplitN(localDateTime, "T", 2)
	date := parts[0]
	hour, err := strconv.Atoi(parts[1][:2])
	if err != nil {
		return nil, errors.Wrap(err, "parsing hour")
	}

	url := fmt.Sprintf("%s/v1/forecast?latitude=%v&longitude=%v&hourly=%s&start_date=%s&end_date=%s&timezone=%s",
		c.baseURL, indiarobaLat, indiarobaLon, hourlyParams, date, date, indiarobaTZ)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building forecast request")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetching forecast")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast API returned status %d", resp.StatusCode)
	}

	var data openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, errors.Wrap(err, "decoding forecast")
	}

	h := data.Hourly
	if len(h.Time) <= hour || len(h.WindSpeed) <= hour || len(h.WindDirection) <= hour ||
		len(h.Temperature) <= hour || len(h.Rain) <= hour || len(h.RelativeHumidity) <= hour {
		return nil, fmt.Errorf("forecast data incomplete for hour %d", hour)
	}

	return &Forecast{
		WindSpeed:     round1(h.WindSpeed[hour]),
		WindDirection: DegreeToCardinal(h.WindDirection[hour]),
		Temperature:   round1(h.Temperature[hour]),
		Rain:          round1(h.Rain[hour]),
		Humidity:      int(math.Round(h.RelativeHumidity[hour])),
	}, nil
}

// DegreeToCardinal maps a wind direction in degrees to one of the eight
// cardinal points.
func DegreeToCardinal(degree float64) string {
	directions := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	degree = math.Mod(degree, 360)
	if degree < 0 {
		degree += 360
	}
	index := int(math.Round(degree/45)) % 8
	return directions[index]
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
