package dashboard

import (
	"time"

	"github.com/couchcryptid/bike-sharing-dashboard/internal/domain"
)

// View is everything the page shows for one date range. It is derived from
// the dataset and never mutated after Compute returns.
type View struct {
	Range       domain.DateRange `json:"range"`
	Bounds      domain.DateRange `json:"bounds"`
	RecordCount int              `json:"record_count"`
	Empty       bool             `json:"empty"`
	LoadedAt    time.Time        `json:"loaded_at"`

	Hourly   []domain.HourlyCount `json:"hourly"`
	Extremes domain.Extremes      `json:"extremes"`

	// Summary is nil when the selection is empty.
	Summary *domain.Summary `json:"summary,omitempty"`

	HumidityPoints    map[string][]domain.Point `json:"humidity_points"`
	TemperaturePoints map[string][]domain.Point `json:"temperature_points"`
	WindSpeedPoints   map[string][]domain.Point `json:"windspeed_points"`

	Weather []domain.CategoryValue `json:"weather"`

	CasualWeekly     []domain.WeekdaySeries `json:"casual_weekly"`
	RegisteredWeekly []domain.WeekdaySeries `json:"registered_weekly"`

	CasualByTemp     domain.CategoryCounts `json:"casual_by_temp"`
	RegisteredByTemp domain.CategoryCounts `json:"registered_by_temp"`

	// Records is the filtered set, kept for exports.
	Records []domain.Record `json:"-"`
}

// Points returns the scatter data for m.
func (v View) Points(m domain.Measure) map[string][]domain.Point {
	switch m {
	case domain.MeasureTemperature:
		return v.TemperaturePoints
	case domain.MeasureWindSpeed:
		return v.WindSpeedPoints
	default:
		return v.HumidityPoints
	}
}

// Weekly returns the weekday profile for kind.
func (v View) Weekly(kind domain.UserKind) []domain.WeekdaySeries {
	if kind == domain.RegisteredUsers {
		return v.RegisteredWeekly
	}
	return v.CasualWeekly
}

// ByTemp returns the temperature category counts for kind.
func (v View) ByTemp(kind domain.UserKind) domain.CategoryCounts {
	if kind == domain.RegisteredUsers {
		return v.RegisteredByTemp
	}
	return v.CasualByTemp
}

// Compute filters ds to r and derives every view. An empty selection yields
// a View with Empty set, nil Summary and empty aggregations; it is not an
// error.
func Compute(ds *domain.Dataset, r domain.DateRange) View {
	records := ds.Filter(r)
	hourly := domain.HourlyCounts(records)

	v := View{
		Range:       r,
		Bounds:      ds.Bounds(),
		RecordCount: len(records),
		Empty:       len(records) == 0,
		LoadedAt:    ds.LoadedAt,

		Hourly:   hourly,
		Extremes: domain.FindExtremes(hourly),

		HumidityPoints:    domain.SeasonPoints(records, domain.MeasureHumidity),
		TemperaturePoints: domain.SeasonPoints(records, domain.MeasureTemperature),
		WindSpeedPoints:   domain.SeasonPoints(records, domain.MeasureWindSpeed),

		Weather: domain.WeatherMeans(records),

		CasualWeekly:     domain.WeeklyProfile(records, domain.CasualUsers),
		RegisteredWeekly: domain.WeeklyProfile(records, domain.RegisteredUsers),

		CasualByTemp:     domain.TempCategoryCounts(records, domain.CasualUsers),
		RegisteredByTemp: domain.TempCategoryCounts(records, domain.RegisteredUsers),

		Records: records,
	}

	if s, err := domain.Summarize(records); err == nil {
		v.Summary = &s
	}
	return v
}
