// Package weather fetches current conditions from a wttr.in-compatible
// service and normalizes them for the home page. Failures never
// propagate: callers always get a usable Report, falling back to a
// fixed demo reading when the service is unreachable or returns
// something unexpected.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTimeout = 10 * time.Second

	// wttr.in reports wind in km/h; the UI wants m/s.
	kmhToMS = 0.278
)

type Report struct {
	Location    string  `json:"location"`
	TempC       float64 `json:"temp"`
	FeelsLikeC  float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	WindSpeedMS float64 `json:"wind_speed"`
	Note        string  `json:"note,omitempty"`
}

type wttrValue struct {
	Value string `json:"value"`
}

type wttrCondition struct {
	TempC         string      `json:"temp_C"`
	FeelsLikeC    string      `json:"FeelsLikeC"`
	Humidity      string      `json:"humidity"`
	WeatherDesc   []wttrValue `json:"weatherDesc"`
	WindSpeedKmph string      `json:"windspeedKmph"`
}

type wttrArea struct {
	AreaName []wttrValue `json:"areaName"`
	Country  []wttrValue `json:"country"`
}

type wttrResponse struct {
	CurrentCondition []wttrCondition `json:"current_condition"`
	NearestArea      []wttrArea      `json:"nearest_area"`
}

type Client struct {
	log        *log.Logger
	baseURL    string
	httpClient *http.Client
}

func NewClient(logger *log.Logger, baseURL string) *Client {
	return &Client{
		log:     logger,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// Current returns the conditions for city, or the fallback reading if
// the upstream call fails in any way.
func (c *Client) Current(ctx context.Context, city string) Report {
	report, err := c.fetch(ctx, city)
	if err != nil {
		c.log.Println("weather fetch:", err)
		return FallbackReport(err)
	}

	return report
}

func (c *Client) fetch(ctx context.Context, city string) (Report, error) {
	reqURL := fmt.Sprintf("%s/%s?format=j1", c.baseURL, url.PathEscape(city))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Report{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Report{}, fmt.Errorf("request weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Report{}, fmt.Errorf("weather service returned status %d", resp.StatusCode)
	}

	var body wttrResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Report{}, fmt.Errorf("decode weather response: %w", err)
	}

	if len(body.CurrentCondition) == 0 || len(body.NearestArea) == 0 {
		return Report{}, fmt.Errorf("incomplete weather response")
	}

	return normalize(body.CurrentCondition[0], body.NearestArea[0])
}

func normalize(cond wttrCondition, area wttrArea) (Report, error) {
	temp, err := strconv.ParseFloat(cond.TempC, 64)
	if err != nil {
		return Report{}, fmt.Errorf("parse temperature: %w", err)
	}

	feelsLike, err := strconv.ParseFloat(cond.FeelsLikeC, 64)
	if err != nil {
		return Report{}, fmt.Errorf("parse feels-like temperature: %w", err)
	}

	humidity, err := strconv.Atoi(cond.Humidity)
	if err != nil {
		return Report{}, fmt.Errorf("parse humidity: %w", err)
	}

	windKmh, err := strconv.ParseFloat(cond.WindSpeedKmph, 64)
	if err != nil {
		return Report{}, fmt.Errorf("parse wind speed: %w", err)
	}

	if len(cond.WeatherDesc) == 0 || len(area.AreaName) == 0 || len(area.Country) == 0 {
		return Report{}, fmt.Errorf("incomplete weather response")
	}

	desc := cond.WeatherDesc[0].Value

	return Report{
		Location:    fmt.Sprintf("%s, %s", area.AreaName[0].Value, area.Country[0].Value),
		TempC:       temp,
		FeelsLikeC:  feelsLike,
		Humidity:    humidity,
		Condition:   desc,
		Description: strings.ToLower(desc),
		WindSpeedMS: windKmh * kmhToMS,
	}, nil
}

// FallbackReport is the fixed demo reading shown when live weather is
// unavailable. The note records why.
func FallbackReport(cause error) Report {
	return Report{
		Location:    "Osaka, Japan",
		TempC:       28.5,
		FeelsLikeC:  32.1,
		Humidity:    78,
		Condition:   "Partly Cloudy",
		Description: "partly cloudy",
		WindSpeedMS: 2.8,
		Note:        fmt.Sprintf("Using demo data for Osaka - Live weather unavailable: %v", cause),
	}
}
