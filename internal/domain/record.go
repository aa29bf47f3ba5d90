package domain

import (
	"strconv"
	"strings"
	"time"
)

// UnknownLabel is shown for season and weather codes outside the lookup tables.
const UnknownLabel = "Unknown"

// DateLayout is the canonical date format used in the CSV and in query strings.
const DateLayout = "2006-01-02"

// Column names of the prepared CSV. All of them are required.
const (
	ColDate           = "dteday"
	ColHour           = "hr"
	ColSeason         = "season"
	ColWeather        = "weathersit"
	ColTemp           = "temp"
	ColHumidity       = "hum"
	ColWindSpeed      = "windspeed"
	ColCasual         = "casual"
	ColRegistered     = "registered"
	ColCount          = "cnt"
	ColWeekday        = "weekday"
	ColTempCategory   = "temp_category"
	ColCasualUser     = "casual_user"
	ColRegisteredUser = "registered_user"
)

// RequiredColumns lists every column a dataset file must provide.
var RequiredColumns = []string{
	ColDate, ColHour, ColSeason, ColWeather, ColTemp, ColHumidity, ColWindSpeed,
	ColCasual, ColRegistered, ColCount, ColWeekday,
	ColTempCategory, ColCasualUser, ColRegisteredUser,
}

// Season is the dataset's 1-4 season code.
type Season int

const (
	SeasonUnknown Season = 0
	SeasonSpring  Season = 1
	SeasonSummer  Season = 2
	SeasonFall    Season = 3
	SeasonWinter  Season = 4
)

// Seasons lists the known seasons in code order.
var Seasons = []Season{SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter}

var seasonLabels = map[Season]string{
	SeasonSpring: "Springer",
	SeasonSummer: "Summer",
	SeasonFall:   "Fall",
	SeasonWinter: "Winter",
}

// Label returns the display name, or UnknownLabel.
func (s Season) Label() string {
	if l, ok := seasonLabels[s]; ok {
		return l
	}
	return UnknownLabel
}

// ParseSeason accepts either the numeric code or a season name. Unrecognised
// values map to SeasonUnknown.
func ParseSeason(raw string) Season {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		s := Season(n)
		if _, ok := seasonLabels[s]; ok {
			return s
		}
		return SeasonUnknown
	}
	switch strings.ToLower(raw) {
	case "spring", "springer":
		return SeasonSpring
	case "summer":
		return SeasonSummer
	case "fall", "autumn":
		return SeasonFall
	case "winter":
		return SeasonWinter
	}
	return SeasonUnknown
}

// Record is one hour of bike-sharing activity. Records are never mutated
// after load; filtered views share the same values.
type Record struct {
	Date       time.Time `json:"date"`
	Hour       int       `json:"hour"`
	Season     Season    `json:"season"`
	Weather    int       `json:"weather"`
	Temp       float64   `json:"temp"`
	Humidity   float64   `json:"humidity"`
	WindSpeed  float64   `json:"windspeed"`
	Casual     int       `json:"casual"`
	Registered int       `json:"registered"`
	Total      int       `json:"total"`
	Weekday    int       `json:"weekday"`

	// Derived upstream; carried through as labels.
	TempCategory   string `json:"temp_category"`
	CasualUser     string `json:"casual_user"`
	RegisteredUser string `json:"registered_user"`
}

// WeatherLabel is the recoded weather situation of the record.
func (r Record) WeatherLabel() string {
	return WeatherLabel(r.Weather)
}

var weatherLabels = map[int]string{
	1: "Clear, Few clouds, Partly cloudy",
	2: "Mist + Cloudy, Mist + Broken clouds",
	3: "Light Snow, Light Rain + Thunderstorm",
	4: "Heavy Rain + Ice Pellets + Thunderstorm",
}

// WeatherLabel maps a weathersit code to its description. Codes outside 1-4
// return UnknownLabel.
func WeatherLabel(code int) string {
	if l, ok := weatherLabels[code]; ok {
		return l
	}
	return UnknownLabel
}

// dateLayouts are tried in order when parsing the dteday column.
var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// ParseDate parses a dteday value to UTC midnight.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var firstErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return Day(t), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
