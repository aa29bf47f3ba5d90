package render

import "github.com/couchcryptid/bike-sharing-dashboard/internal/domain"

// Hourly bar colours.
const (
	colorPeak    = "#72BCD4"
	colorTrough  = "#FF6347"
	colorNeutral = "#D3D3D3"
	colorUnknown = "#9E9E9E"
)

// weatherColor is shared by every weather bar.
const weatherColor = colorPeak

// scatterOpacity matches the translucent points of the season scatters.
const scatterOpacity = 0.6

var seasonColors = map[string]string{
	domain.SeasonSpring.Label(): "#A4D65E",
	domain.SeasonSummer.Label(): "#FBBE43",
	domain.SeasonFall.Label():   "#E65100",
	domain.SeasonWinter.Label(): "#8BC6E6",
}

// weekdayColors is indexed by weekday number.
var weekdayColors = []string{
	"#A4D65E",
	"#FBBE43",
	"#FFA07A",
	"#8BC6E6",
	"#4C8CDB",
	"#D67898",
	"#D54A29",
}

// flagColors colour the user-flag groups of the temperature count plots.
var flagColors = []string{"#4C72B0", "#DD8452", "#55A868", "#C44E52"}

func seasonColor(label string) string {
	if c, ok := seasonColors[label]; ok {
		return c
	}
	return colorUnknown
}

func weekdayColor(weekday int) string {
	if weekday >= 0 && weekday < len(weekdayColors) {
		return weekdayColors[weekday]
	}
	return colorUnknown
}

func flagColor(i int) string {
	return flagColors[i%len(flagColors)]
}

// hourColor picks the highlight colour of one hourly bar. When the same hour
// is both maximum and minimum, the maximum colour wins.
func hourColor(ext domain.Extremes, hour int) string {
	switch {
	case ext.IsMax(hour):
		return colorPeak
	case ext.IsMin(hour):
		return colorTrough
	default:
		return colorNeutral
	}
}

// seasonOrder lists the season labels present in points, known seasons first.
func seasonOrder(points map[string][]domain.Point) []string {
	var out []string
	for _, s := range domain.Seasons {
		if _, ok := points[s.Label()]; ok {
			out = append(out, s.Label())
		}
	}
	if _, ok := points[domain.UnknownLabel]; ok {
		out = append(out, domain.UnknownLabel)
	}
	return out
}
