package bot

import (
	"fmt"
	"strconv"
	"strings"
)

// Action identifies a follow-up fetch bound to an inline button.
type Action string

// Supported callback actions. The _loc variants carry a "lat,lon" target
// instead of a city name.
const (
	ActionAqi         Action = "aqi"
	ActionForecast    Action = "forecast"
	ActionAqiLoc      Action = "aqi_loc"
	ActionForecastLoc Action = "forecast_loc"
)

// EncodeToken builds the "<action>:<target>" callback payload.
func EncodeToken(action Action, target string) string {
	return string(action) + ":" + target
}

// DecodeToken splits a callback payload into action and target. ok is false
// for unknown actions, missing separators, or empty targets; callers swallow
// those silently.
func DecodeToken(data string) (Action, string, bool) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", "", false
	}
	action := Action(parts[0])
	switch action {
	case ActionAqi, ActionForecast, ActionAqiLoc, ActionForecastLoc:
		return action, parts[1], true
	}
	return "", "", false
}

// EncodeCoords renders a coordinate pair as a "lat,lon" token target.
func EncodeCoords(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64)
}

// ParseCoords parses a "lat,lon" token target back into a coordinate pair.
func ParseCoords(target string) (lat, lon float64, err error) {
	parts := strings.SplitN(target, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed coordinate target %q", target)
	}
	lat, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad latitude in %q: %w", target, err)
	}
	lon, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad longitude in %q: %w", target, err)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("coordinates out of range in %q", target)
	}
	return lat, lon, nil
}
