// Package render turns dashboard views into charts: interactive ECharts
// options for the page, static SVG images and spreadsheet exports.
package render

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/couchcryptid/bike-sharing-dashboard/internal/dashboard"
	"github.com/couchcryptid/bike-sharing-dashboard/internal/domain"
)

// ChartName identifies one chart of the dashboard.
type ChartName string

const (
	ChartHourly                ChartName = "hourly"
	ChartHumidity              ChartName = "humidity"
	ChartTemperature           ChartName = "temperature"
	ChartWindSpeed             ChartName = "windspeed"
	ChartWeather               ChartName = "weather"
	ChartCasualWeekly          ChartName = "casual-weekly"
	ChartRegisteredWeekly      ChartName = "registered-weekly"
	ChartCasualTemperature     ChartName = "casual-temperature"
	ChartRegisteredTemperature ChartName = "registered-temperature"
)

// ChartSpec holds the labels shared by the interactive and static renderings.
type ChartSpec struct {
	Name   ChartName
	Title  string
	XLabel string
	YLabel string
}

// Charts lists every chart in page order.
var Charts = []ChartSpec{
	{ChartHourly, "Bike Sharing Activity by Hour", "Hour", "Count"},
	{ChartHumidity, "Bike-Sharing Activity vs. Humidity", "Humidity", "Count"},
	{ChartTemperature, "Bike-Sharing Activity vs. Temperature", "Temperature", "Count"},
	{ChartWindSpeed, "Bike-Sharing Activity vs. Wind Speed", "Wind Speed", "Count"},
	{ChartWeather, "Bike-Sharing Activity Based on Weather Situation", "", "Count"},
	{ChartCasualWeekly, "Bike-Sharing Activity of Casual User", "Hour", "User"},
	{ChartRegisteredWeekly, "Bike-Sharing Activity of Registered User", "Hour", "User"},
	{ChartCasualTemperature, "Casual User Activity by Temperature Category", "Temperature Category", "Count of Casual Users"},
	{ChartRegisteredTemperature, "Registered User Activity by Temperature Category", "Temperature Category", "Count of Registered Users"},
}

// LookupChart returns the spec registered under name.
func LookupChart(name string) (ChartSpec, bool) {
	for _, c := range Charts {
		if string(c.Name) == name {
			return c, true
		}
	}
	return ChartSpec{}, false
}

// Options is the part of a go-echarts chart the page needs.
type Options interface {
	Validate()
	JSON() map[string]interface{}
}

// Build returns the ECharts options for spec over v.
func Build(spec ChartSpec, v dashboard.View) (Options, error) {
	switch spec.Name {
	case ChartHourly:
		return hourlyBar(spec, v), nil
	case ChartHumidity:
		return seasonScatter(spec, v, domain.MeasureHumidity), nil
	case ChartTemperature:
		return seasonScatter(spec, v, domain.MeasureTemperature), nil
	case ChartWindSpeed:
		return seasonScatter(spec, v, domain.MeasureWindSpeed), nil
	case ChartWeather:
		return weatherBar(spec, v), nil
	case ChartCasualWeekly:
		return weeklyLine(spec, v, domain.CasualUsers), nil
	case ChartRegisteredWeekly:
		return weeklyLine(spec, v, domain.RegisteredUsers), nil
	case ChartCasualTemperature:
		return tempCountBar(spec, v, domain.CasualUsers), nil
	case ChartRegisteredTemperature:
		return tempCountBar(spec, v, domain.RegisteredUsers), nil
	}
	return nil, fmt.Errorf("unknown chart %q", spec.Name)
}

// ChartID is the DOM id of the chart container on the page.
func ChartID(name ChartName) string {
	return "chart-" + string(name)
}

// globalOpts sets the options common to every chart. Sizing comes from the
// page layout, so the initialization only fixes the DOM id.
func globalOpts(spec ChartSpec, xType string, legend bool) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{ChartID: ChartID(spec.Name)}),
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(legend), Top: "30"}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      spec.XLabel,
			Type:      xType,
			AxisLabel: &opts.AxisLabel{Interval: "0"},
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: spec.YLabel, Type: "value"}),
		charts.WithGridOpts(opts.Grid{Left: "8%", Right: "6%", Top: "80", Bottom: "15%"}),
	}
}

// hourlyBar draws hours ordered by count, highest first, with the busiest
// and quietest hours highlighted.
func hourlyBar(spec ChartSpec, v dashboard.View) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOpts(spec, "category", false)...)

	sorted := domain.SortByCountDesc(v.Hourly)
	labels := make([]string, len(sorted))
	data := make([]opts.BarData, len(sorted))
	for i, row := range sorted {
		labels[i] = strconv.Itoa(row.Hour)
		data[i] = opts.BarData{
			Value:     row.Count,
			ItemStyle: &opts.ItemStyle{Color: hourColor(v.Extremes, row.Hour)},
		}
	}
	bar.SetXAxis(labels).AddSeries("count", data)
	return bar
}

func seasonScatter(spec ChartSpec, v dashboard.View, m domain.Measure) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(globalOpts(spec, "value", true)...)

	points := v.Points(m)
	for _, season := range seasonOrder(points) {
		data := make([]opts.ScatterData, len(points[season]))
		for i, p := range points[season] {
			data[i] = opts.ScatterData{Value: []float64{p.X, p.Y}, SymbolSize: 6}
		}
		scatter.AddSeries(season, data,
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color:   seasonColor(season),
				Opacity: scatterOpacity,
			}),
		)
	}
	return scatter
}

func weatherBar(spec ChartSpec, v dashboard.View) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOpts(spec, "category", false)...)

	labels := make([]string, len(v.Weather))
	data := make([]opts.BarData, len(v.Weather))
	for i, w := range v.Weather {
		labels[i] = w.Label
		data[i] = opts.BarData{Value: round2(w.Value)}
	}
	bar.SetXAxis(labels).AddSeries("mean count", data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: weatherColor}),
	)
	return bar
}

// weeklyLine draws one connected point series per weekday over the 24 hours.
func weeklyLine(spec ChartSpec, v dashboard.View, kind domain.UserKind) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(globalOpts(spec, "category", true)...)

	hours := make([]string, 24)
	for h := range hours {
		hours[h] = strconv.Itoa(h)
	}
	line.SetXAxis(hours)

	for _, series := range v.Weekly(kind) {
		data := make([]opts.LineData, len(series.Means))
		for h, mean := range series.Means {
			if mean == nil {
				// ECharts renders "-" as a gap.
				data[h] = opts.LineData{Value: "-"}
				continue
			}
			data[h] = opts.LineData{Value: round2(*mean)}
		}
		color := weekdayColor(series.Weekday)
		line.AddSeries(WeekdayName(series.Weekday), data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: color}),
		)
	}
	return line
}

func tempCountBar(spec ChartSpec, v dashboard.View, kind domain.UserKind) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOpts(spec, "category", true)...)

	counts := v.ByTemp(kind)
	bar.SetXAxis(counts.Categories)
	for i, flag := range counts.Flags {
		row := counts.Counts[flag]
		data := make([]opts.BarData, len(row))
		for j, n := range row {
			data[j] = opts.BarData{Value: n}
		}
		bar.AddSeries(flag, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: flagColor(i)}))
	}
	return bar
}

// WeekdayName renders the dataset's 0-6 weekday (0 is Sunday).
func WeekdayName(weekday int) string {
	if weekday < 0 || weekday > 6 {
		return strconv.Itoa(weekday)
	}
	return time.Weekday(weekday).String()
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
