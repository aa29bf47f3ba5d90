package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/goccy/go-json"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/couchcryptid/bike-sharing-dashboard/internal/dashboard"
	"github.com/couchcryptid/bike-sharing-dashboard/internal/domain"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

// DefaultAssetsHost serves echarts.min.js, the same host go-echarts uses.
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// PageOptions configures the page chrome around the charts.
type PageOptions struct {
	Title      string
	Credit     string // footer line above the load caption
	LogoURL    string
	AssetsHost string
	Locale     language.Tag
}

type metricTile struct {
	Label string
	Value string
}

type chartCell struct {
	ID     string
	Wide   bool
	Option template.JS
}

type section struct {
	Heading string
	Metrics []metricTile
	Rows    [][]chartCell
}

type pageData struct {
	Title      string
	LogoURL    string
	AssetsHost string
	Start, End string
	Min, Max   string
	Empty      bool
	Sections   []section
	Charts     []chartCell
	Credit     string
	Caption    string
}

// layout groups the charts into page sections. A row with two charts is
// rendered side by side.
var layout = []struct {
	heading string
	metrics bool
	rows    [][]ChartName
}{
	{heading: "Daily Bike Sharing Activity", rows: [][]ChartName{{ChartHourly}}},
	{heading: "Bike Sharing Activity Based on Season and Weather", rows: [][]ChartName{
		{ChartHumidity}, {ChartTemperature}, {ChartWindSpeed}, {ChartWeather},
	}},
	{heading: "Bike Sharing User Activity", metrics: true, rows: [][]ChartName{
		{ChartCasualWeekly, ChartRegisteredWeekly},
	}},
	{heading: "Clustering Analysis of Bike Sharing User Activity", rows: [][]ChartName{
		{ChartCasualTemperature, ChartRegisteredTemperature},
	}},
}

// WritePage renders the full dashboard page for v.
func WritePage(w io.Writer, v dashboard.View, po PageOptions) error {
	if po.AssetsHost == "" {
		po.AssetsHost = DefaultAssetsHost
	}
	printer := message.NewPrinter(po.Locale)

	data := pageData{
		Title:      po.Title,
		LogoURL:    po.LogoURL,
		AssetsHost: po.AssetsHost,
		Start:      v.Range.Start.Format(domain.DateLayout),
		End:        v.Range.End.Format(domain.DateLayout),
		Min:        v.Bounds.Start.Format(domain.DateLayout),
		Max:        v.Bounds.End.Format(domain.DateLayout),
		Empty:      v.Empty,
		Credit:     po.Credit,
		Caption: printer.Sprintf("%d records selected. Data loaded %s.",
			v.RecordCount, v.LoadedAt.UTC().Format("2006-01-02 15:04 MST")),
	}

	for _, l := range layout {
		sec := section{Heading: l.heading}
		if l.metrics {
			sec.Metrics = metricTiles(v, printer)
		}
		for _, names := range l.rows {
			row := make([]chartCell, 0, len(names))
			for _, name := range names {
				cell, err := buildCell(name, v, len(names) == 1)
				if err != nil {
					return err
				}
				row = append(row, cell)
				data.Charts = append(data.Charts, cell)
			}
			sec.Rows = append(sec.Rows, row)
		}
		data.Sections = append(data.Sections, sec)
	}

	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

func metricTiles(v dashboard.View, printer *message.Printer) []metricTile {
	casual, registered := "-", "-"
	if v.Summary != nil {
		casual = printer.Sprintf("%d", v.Summary.AvgCasual)
		registered = printer.Sprintf("%d", v.Summary.AvgRegistered)
	}
	return []metricTile{
		{Label: "Casual User per Hour (Average)", Value: casual},
		{Label: "Registered User per Hour (Average)", Value: registered},
	}
}

func buildCell(name ChartName, v dashboard.View, wide bool) (chartCell, error) {
	spec, ok := LookupChart(string(name))
	if !ok {
		return chartCell{}, fmt.Errorf("unknown chart %q", name)
	}
	option, err := OptionJSON(spec, v)
	if err != nil {
		return chartCell{}, err
	}
	return chartCell{ID: ChartID(name), Wide: wide, Option: template.JS(string(option))}, nil
}

// OptionJSON returns the ECharts option object for spec as JSON.
func OptionJSON(spec ChartSpec, v dashboard.View) ([]byte, error) {
	chart, err := Build(spec, v)
	if err != nil {
		return nil, err
	}
	chart.Validate()
	b, err := json.Marshal(chart.JSON())
	if err != nil {
		return nil, fmt.Errorf("encode %s options: %w", spec.Name, err)
	}
	return b, nil
}
