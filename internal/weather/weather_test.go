package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nisha-chat/nisha/internal/testutil"
	"github.com/stretchr/testify/assert"
)

const wttrBody = `{
	"current_condition": [
		{
			"temp_C": "21",
			"FeelsLikeC": "23",
			"humidity": "60",
			"weatherDesc": [{"value": "Sunny"}],
			"windspeedKmph": "10"
		}
	],
	"nearest_area": [
		{
			"areaName": [{"value": "Osaka"}],
			"country": [{"value": "Japan"}]
		}
	]
}`

func TestCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Osaka,Japan", r.URL.Path, "expected city in request path")
		assert.Equal(t, "j1", r.URL.Query().Get("format"), "expected j1 format parameter")
		w.Write([]byte(wttrBody))
	}))
	defer srv.Close()

	c := NewClient(testutil.TestLogger(t), srv.URL)
	report := c.Current(context.Background(), "Osaka,Japan")

	assert.Equal(t, "Osaka, Japan", report.Location, "expected location to be normalized")
	assert.Equal(t, 21.0, report.TempC, "expected temperature to match")
	assert.Equal(t, 23.0, report.FeelsLikeC, "expected feels-like temperature to match")
	assert.Equal(t, 60, report.Humidity, "expected humidity to match")
	assert.Equal(t, "Sunny", report.Condition, "expected condition to match")
	assert.Equal(t, "sunny", report.Description, "expected lowercase description")
	assert.InDelta(t, 10*0.278, report.WindSpeedMS, 1e-9, "expected wind speed converted from km/h to m/s")
	assert.Empty(t, report.Note, "expected no note on a live reading")
}

func TestCurrentFallback(t *testing.T) {
	tcases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
		{
			name: "empty response sections",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"current_condition": [], "nearest_area": []}`))
			},
		},
		{
			name: "unparseable values",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{
					"current_condition": [{"temp_C": "warm", "FeelsLikeC": "23", "humidity": "60", "weatherDesc": [{"value": "Sunny"}], "windspeedKmph": "10"}],
					"nearest_area": [{"areaName": [{"value": "Osaka"}], "country": [{"value": "Japan"}]}]
				}`))
			},
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			c := NewClient(testutil.TestLogger(t), srv.URL)
			report := c.Current(context.Background(), "Osaka,Japan")

			assert.Equal(t, "Osaka, Japan", report.Location, "expected fallback location")
			assert.Equal(t, 28.5, report.TempC, "expected fallback temperature")
			assert.NotEmpty(t, report.Note, "expected fallback note explaining the failure")
		})
	}
}

func TestCurrentUnreachableService(t *testing.T) {
	// Point at a server that has already been shut down.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(testutil.TestLogger(t), srv.URL)
	report := c.Current(context.Background(), "Osaka,Japan")

	assert.Equal(t, "Osaka, Japan", report.Location, "expected fallback location")
	assert.NotEmpty(t, report.Note, "expected fallback note explaining the failure")
}
