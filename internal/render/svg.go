package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/couchcryptid/bike-sharing-dashboard/internal/dashboard"
	"github.com/couchcryptid/bike-sharing-dashboard/internal/domain"
)

const (
	svgWidth  = 1400
	svgHeight = 640
)

var svgBackground = chart.Style{Padding: chart.Box{Top: 60, Left: 20, Right: 20, Bottom: 20}}

// WriteSVG renders one chart as a static SVG image. Empty selections return
// domain.ErrEmptySelection since there is nothing to scale the axes on.
func WriteSVG(w io.Writer, spec ChartSpec, v dashboard.View) error {
	if v.Empty {
		return domain.ErrEmptySelection
	}

	var r interface {
		Render(chart.RendererProvider, io.Writer) error
	}
	switch spec.Name {
	case ChartHourly:
		r = hourlySVG(spec, v)
	case ChartHumidity:
		r = scatterSVG(spec, v, domain.MeasureHumidity)
	case ChartTemperature:
		r = scatterSVG(spec, v, domain.MeasureTemperature)
	case ChartWindSpeed:
		r = scatterSVG(spec, v, domain.MeasureWindSpeed)
	case ChartWeather:
		r = weatherSVG(spec, v)
	case ChartCasualWeekly:
		r = weeklySVG(spec, v, domain.CasualUsers)
	case ChartRegisteredWeekly:
		r = weeklySVG(spec, v, domain.RegisteredUsers)
	case ChartCasualTemperature:
		r = tempCountSVG(spec, v, domain.CasualUsers)
	case ChartRegisteredTemperature:
		r = tempCountSVG(spec, v, domain.RegisteredUsers)
	default:
		return fmt.Errorf("unknown chart %q", spec.Name)
	}

	if err := r.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render %s svg: %w", spec.Name, err)
	}
	return nil
}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// yRange starts at zero and never collapses to a zero-height range.
func yRange(maxValue float64) *chart.ContinuousRange {
	return &chart.ContinuousRange{Min: 0, Max: math.Max(maxValue, 1)}
}

func hourlySVG(spec ChartSpec, v dashboard.View) *chart.BarChart {
	sorted := domain.SortByCountDesc(v.Hourly)
	bars := make([]chart.Value, len(sorted))
	var top float64
	for i, row := range sorted {
		c := color(hourColor(v.Extremes, row.Hour))
		bars[i] = chart.Value{
			Label: strconv.Itoa(row.Hour),
			Value: float64(row.Count),
			Style: chart.Style{FillColor: c, StrokeColor: c},
		}
		top = math.Max(top, float64(row.Count))
	}
	return &chart.BarChart{
		Title:      spec.Title,
		Width:      svgWidth,
		Height:     svgHeight,
		BarWidth:   40,
		BarSpacing: 12,
		Background: svgBackground,
		YAxis:      chart.YAxis{Name: spec.YLabel, Range: yRange(top)},
		Bars:       bars,
	}
}

func weatherSVG(spec ChartSpec, v dashboard.View) *chart.BarChart {
	c := color(weatherColor)
	bars := make([]chart.Value, len(v.Weather))
	var top float64
	for i, w := range v.Weather {
		bars[i] = chart.Value{
			Label: w.Label,
			Value: w.Value,
			Style: chart.Style{FillColor: c, StrokeColor: c},
		}
		top = math.Max(top, w.Value)
	}
	return &chart.BarChart{
		Title:      spec.Title,
		Width:      svgWidth,
		Height:     svgHeight,
		BarWidth:   240,
		BarSpacing: 60,
		Background: svgBackground,
		YAxis:      chart.YAxis{Name: spec.YLabel, Range: yRange(top)},
		Bars:       bars,
	}
}

func scatterSVG(spec ChartSpec, v dashboard.View, m domain.Measure) *chart.Chart {
	points := v.Points(m)
	var top float64
	series := make([]chart.Series, 0, len(points))
	for _, season := range seasonOrder(points) {
		xs := make([]float64, len(points[season]))
		ys := make([]float64, len(points[season]))
		for i, p := range points[season] {
			xs[i], ys[i] = p.X, p.Y
			top = math.Max(top, p.Y)
		}
		c := color(seasonColor(season)).WithAlpha(uint8(scatterOpacity * 255))
		series = append(series, chart.ContinuousSeries{
			Name:    season,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    3,
				DotColor:    c,
			},
		})
	}

	graph := &chart.Chart{
		Title:      spec.Title,
		Width:      svgWidth,
		Height:     svgHeight,
		Background: svgBackground,
		XAxis:      chart.XAxis{Name: spec.XLabel, Range: &chart.ContinuousRange{Min: 0, Max: 1}},
		YAxis:      chart.YAxis{Name: spec.YLabel, Range: yRange(top)},
		Series:     series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(graph)}
	return graph
}

func weeklySVG(spec ChartSpec, v dashboard.View, kind domain.UserKind) *chart.Chart {
	var top float64
	profile := v.Weekly(kind)
	series := make([]chart.Series, 0, len(profile))
	for _, wd := range profile {
		var xs, ys []float64
		for h, mean := range wd.Means {
			if mean == nil {
				continue
			}
			xs = append(xs, float64(h))
			ys = append(ys, *mean)
			top = math.Max(top, *mean)
		}
		c := color(weekdayColor(wd.Weekday))
		series = append(series, chart.ContinuousSeries{
			Name:    WeekdayName(wd.Weekday),
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: c,
				StrokeWidth: 2,
				DotColor:    c,
				DotWidth:    4,
			},
		})
	}

	graph := &chart.Chart{
		Title:      spec.Title,
		Width:      svgWidth,
		Height:     svgHeight,
		Background: svgBackground,
		XAxis:      chart.XAxis{Name: spec.XLabel, Range: &chart.ContinuousRange{Min: 0, Max: 23}},
		YAxis:      chart.YAxis{Name: spec.YLabel, Range: yRange(top)},
		Series:     series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(graph)}
	return graph
}

// tempCountSVG stacks the user-flag counts inside each temperature category.
func tempCountSVG(spec ChartSpec, v dashboard.View, kind domain.UserKind) *chart.StackedBarChart {
	counts := v.ByTemp(kind)
	bars := make([]chart.StackedBar, len(counts.Categories))
	for i, category := range counts.Categories {
		values := make([]chart.Value, len(counts.Flags))
		for j, flag := range counts.Flags {
			c := color(flagColor(j))
			values[j] = chart.Value{
				Label: flag,
				Value: float64(counts.Counts[flag][i]),
				Style: chart.Style{FillColor: c, StrokeColor: c},
			}
		}
		bars[i] = chart.StackedBar{Name: category, Width: 120, Values: values}
	}
	return &chart.StackedBarChart{
		Title:      spec.Title,
		Width:      svgWidth,
		Height:     svgHeight,
		BarSpacing: 80,
		Background: svgBackground,
		Bars:       bars,
	}
}
