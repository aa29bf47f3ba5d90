package domain

import (
	"math"
	"sort"
)

// HourlyCount is one row of the hourly aggregation.
type HourlyCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// HourlyCounts groups records by hour and counts the distinct Total values
// seen in each hour. Only hours present in records are returned, ordered by
// hour.
func HourlyCounts(records []Record) []HourlyCount {
	distinct := make(map[int]map[int]struct{})
	for _, rec := range records {
		seen, ok := distinct[rec.Hour]
		if !ok {
			seen = make(map[int]struct{})
			distinct[rec.Hour] = seen
		}
		seen[rec.Total] = struct{}{}
	}

	out := make([]HourlyCount, 0, len(distinct))
	for hour, seen := range distinct {
		out = append(out, HourlyCount{Hour: hour, Count: len(seen)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}

// Extremes identifies the hours with the highest and lowest counts.
type Extremes struct {
	MaxHour int  `json:"max_hour"`
	MinHour int  `json:"min_hour"`
	OK      bool `json:"ok"`
}

// FindExtremes scans rows in order; the first row wins ties. OK is false for
// an empty input.
func FindExtremes(rows []HourlyCount) Extremes {
	if len(rows) == 0 {
		return Extremes{}
	}
	maxIdx, minIdx := 0, 0
	for i, row := range rows {
		if row.Count > rows[maxIdx].Count {
			maxIdx = i
		}
		if row.Count < rows[minIdx].Count {
			minIdx = i
		}
	}
	return Extremes{MaxHour: rows[maxIdx].Hour, MinHour: rows[minIdx].Hour, OK: true}
}

// IsMax reports whether hour is the flagged maximum.
func (e Extremes) IsMax(hour int) bool { return e.OK && hour == e.MaxHour }

// IsMin reports whether hour is the flagged minimum. A single-row input is
// both max and min; the max flag takes precedence when rendering.
func (e Extremes) IsMin(hour int) bool { return e.OK && hour == e.MinHour }

// SortByCountDesc returns a copy of rows ordered by count, highest first.
// Equal counts keep hour order.
func SortByCountDesc(rows []HourlyCount) []HourlyCount {
	out := append([]HourlyCount(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// Summary holds the per-hour user averages shown as metric tiles.
type Summary struct {
	AvgCasual     int `json:"avg_casual"`
	AvgRegistered int `json:"avg_registered"`
}

// Summarize averages Casual and Registered over records and rounds half to
// even. Returns ErrEmptySelection when records is empty.
func Summarize(records []Record) (Summary, error) {
	if len(records) == 0 {
		return Summary{}, ErrEmptySelection
	}
	var casual, registered float64
	for _, rec := range records {
		casual += float64(rec.Casual)
		registered += float64(rec.Registered)
	}
	n := float64(len(records))
	return Summary{
		AvgCasual:     int(math.RoundToEven(casual / n)),
		AvgRegistered: int(math.RoundToEven(registered / n)),
	}, nil
}

// CategoryValue is a labelled scalar, used for bar charts over categories.
type CategoryValue struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// WeatherMeans averages Total per weather label, highest mean first. Ties
// are ordered by label.
func WeatherMeans(records []Record) []CategoryValue {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, rec := range records {
		label := rec.WeatherLabel()
		sums[label] += float64(rec.Total)
		counts[label]++
	}

	out := make([]CategoryValue, 0, len(sums))
	for label, sum := range sums {
		out = append(out, CategoryValue{Label: label, Value: sum / float64(counts[label])})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// UserKind selects the casual or registered user columns.
type UserKind int

const (
	CasualUsers UserKind = iota
	RegisteredUsers
)

func (k UserKind) String() string {
	if k == RegisteredUsers {
		return "registered"
	}
	return "casual"
}

func (k UserKind) count(rec Record) int {
	if k == RegisteredUsers {
		return rec.Registered
	}
	return rec.Casual
}

func (k UserKind) flag(rec Record) string {
	if k == RegisteredUsers {
		return rec.RegisteredUser
	}
	return rec.CasualUser
}

// WeekdaySeries is the mean hourly user count for one weekday. Means has 24
// entries; hours without records are nil.
type WeekdaySeries struct {
	Weekday int        `json:"weekday"`
	Means   []*float64 `json:"means"`
}

// WeeklyProfile averages the selected user count per (weekday, hour). Only
// weekdays present in records are returned, ordered by weekday.
func WeeklyProfile(records []Record, kind UserKind) []WeekdaySeries {
	type cell struct {
		sum float64
		n   int
	}
	grid := make(map[int]*[24]cell)
	for _, rec := range records {
		if rec.Hour < 0 || rec.Hour > 23 {
			continue
		}
		row, ok := grid[rec.Weekday]
		if !ok {
			row = &[24]cell{}
			grid[rec.Weekday] = row
		}
		row[rec.Hour].sum += float64(kind.count(rec))
		row[rec.Hour].n++
	}

	out := make([]WeekdaySeries, 0, len(grid))
	for weekday, row := range grid {
		series := WeekdaySeries{Weekday: weekday, Means: make([]*float64, 24)}
		for h, c := range row {
			if c.n == 0 {
				continue
			}
			mean := c.sum / float64(c.n)
			series.Means[h] = &mean
		}
		out = append(out, series)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weekday < out[j].Weekday })
	return out
}

// CategoryCounts is a two-level count table: rows per temperature category,
// one column per user flag value.
type CategoryCounts struct {
	Categories []string         `json:"categories"`
	Flags      []string         `json:"flags"`
	Counts     map[string][]int `json:"counts"` // flag -> count per category, aligned with Categories
}

// TempCategories is the display order of the known temperature categories.
var TempCategories = []string{"Cold", "Mild", "Hot"}

// TempCategoryCounts counts records per (temperature category, user flag).
// Categories follow TempCategories, with unknown labels after them in lexical
// order. Flags are sorted lexically.
func TempCategoryCounts(records []Record, kind UserKind) CategoryCounts {
	tally := make(map[string]map[string]int)
	catSet := make(map[string]struct{})
	for _, rec := range records {
		flag := kind.flag(rec)
		if tally[flag] == nil {
			tally[flag] = make(map[string]int)
		}
		tally[flag][rec.TempCategory]++
		catSet[rec.TempCategory] = struct{}{}
	}

	out := CategoryCounts{
		Categories: orderCategories(catSet),
		Flags:      make([]string, 0, len(tally)),
		Counts:     make(map[string][]int, len(tally)),
	}
	for flag := range tally {
		out.Flags = append(out.Flags, flag)
	}
	sort.Strings(out.Flags)
	for _, flag := range out.Flags {
		row := make([]int, len(out.Categories))
		for i, cat := range out.Categories {
			row[i] = tally[flag][cat]
		}
		out.Counts[flag] = row
	}
	return out
}

// Measure selects the x-axis variable of a scatter view.
type Measure string

const (
	MeasureHumidity    Measure = "humidity"
	MeasureTemperature Measure = "temperature"
	MeasureWindSpeed   Measure = "windspeed"
)

func (m Measure) value(rec Record) float64 {
	switch m {
	case MeasureTemperature:
		return rec.Temp
	case MeasureWindSpeed:
		return rec.WindSpeed
	default:
		return rec.Humidity
	}
}

// Point is one scatter point.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SeasonPoints groups (measure, Total) points by season label. Seasons with
// no records are omitted.
func SeasonPoints(records []Record, m Measure) map[string][]Point {
	out := make(map[string][]Point)
	for _, rec := range records {
		label := rec.Season.Label()
		out[label] = append(out[label], Point{X: m.value(rec), Y: float64(rec.Total)})
	}
	return out
}

func orderCategories(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	rest := make(map[string]struct{}, len(set))
	for k := range set {
		rest[k] = struct{}{}
	}
	for _, cat := range TempCategories {
		if _, ok := rest[cat]; ok {
			out = append(out, cat)
			delete(rest, cat)
		}
	}
	return append(out, sortedKeys(rest)...)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
