package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/krestn/HomeAI/internal/config"
)

// weatherTimeout is deliberately short; a slow weather provider should not
// stall a conversation turn.
const weatherTimeout = 5 * time.Second

// weatherCodeDescriptions maps provider weather codes to prose.
var weatherCodeDescriptions = map[int64]string{
	0:  "clear skies",
	1:  "mostly clear skies",
	2:  "partly cloudy skies",
	3:  "overcast conditions",
	45: "fog",
	48: "dense fog",
	51: "light drizzle",
	53: "moderate drizzle",
	55: "heavy drizzle",
	56: "freezing drizzle",
	57: "heavy freezing drizzle",
	61: "light rain",
	63: "moderate rain",
	65: "heavy rain",
	66: "freezing rain",
	67: "heavy freezing rain",
	71: "light snow",
	73: "moderate snow",
	75: "heavy snow",
	77: "snow grains",
	80: "light rain showers",
	81: "moderate rain showers",
	82: "violent rain showers",
	85: "light snow showers",
	86: "heavy snow showers",
	95: "thunderstorms",
	96: "thunderstorms with hail",
	99: "severe thunderstorms with hail",
}

// WeatherClient reports current conditions for the agent's fixed metro.
type WeatherClient struct {
	cfg    config.WeatherConfig
	client *http.Client
}

// NewWeatherClient creates a weather client from config.
func NewWeatherClient(cfg config.WeatherConfig) *WeatherClient {
	return &WeatherClient{
		cfg:    cfg,
		client: &http.Client{Timeout: weatherTimeout},
	}
}

// Summary returns a one-paragraph weather summary. Lookup failures degrade
// to fixed sentences; this never returns an error.
func (c *WeatherClient) Summary(ctx context.Context) string {
	query := url.Values{
		"latitude":           {strconv.FormatFloat(c.cfg.Latitude, 'f', 4, 64)},
		"longitude":          {strconv.FormatFloat(c.cfg.Longitude, 'f', 4, 64)},
		"current_weather":    {"true"},
		"temperature_unit":   {"fahrenheit"},
		"windspeed_unit":     {"mph"},
		"precipitation_unit": {"inch"},
		"timezone":           {c.cfg.Timezone},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return c.troubleSentence()
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return c.troubleSentence()
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		return c.troubleSentence()
	}

	current := gjson.GetBytes(body, "current_weather")
	if !current.Exists() {
		return fmt.Sprintf("Weather data for %s is temporarily unavailable.", c.cfg.Location)
	}

	return c.render(current)
}

func (c *WeatherClient) render(current gjson.Result) string {
	var sb strings.Builder

	sb.WriteString("Here's the latest weather for ")
	sb.WriteString(c.cfg.Location)
	if obs := formatObservationTime(current.Get("time").String()); obs != "" {
		sb.WriteString(" (updated around ")
		sb.WriteString(obs)
		sb.WriteString(")")
	}
	sb.WriteString(": ")

	if temp := current.Get("temperature"); temp.Exists() {
		sb.WriteString(fmt.Sprintf("%.0f°F ", temp.Float()))
	}

	sb.WriteString("with ")
	sb.WriteString(describeWeatherCode(current.Get("weathercode")))
	sb.WriteString(".")

	if wind := current.Get("windspeed"); wind.Exists() {
		sb.WriteString(fmt.Sprintf(" Winds around %.0f mph.", wind.Float()))
	}

	return sb.String()
}

func (c *WeatherClient) troubleSentence() string {
	return fmt.Sprintf("I'm having trouble checking %s's weather right now. Please try again in a moment.", c.cfg.Location)
}

func describeWeatherCode(code gjson.Result) string {
	if code.Type == gjson.Number {
		if desc, ok := weatherCodeDescriptions[code.Int()]; ok {
			return desc
		}
	}
	return "current conditions"
}

// formatObservationTime renders the provider's local timestamp as a
// lowercase clock time, e.g. "3:05 pm".
func formatObservationTime(stamp string) string {
	if stamp == "" {
		return ""
	}
	parsed, err := time.Parse("2006-01-02T15:04", stamp)
	if err != nil {
		if parsed, err = time.Parse(time.RFC3339, stamp); err != nil {
			return ""
		}
	}
	out := parsed.Format("3:04 PM")
	return strings.ToLower(out)
}
