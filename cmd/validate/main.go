// Command validate performs data integrity checks on a prepared bike sharing
// CSV before it is served by the dashboard. It verifies the schema, value
// ranges, count consistency, weekday and date agreement, and that every
// weather and season code maps to a known label.
//
// Usage:
//
//	go run ./cmd/validate -data dashboard/main_data.csv
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/go-gota/gota/dataframe"

	"github.com/couchcryptid/bike-sharing-dashboard/internal/adapter/csvsource"
	"github.com/couchcryptid/bike-sharing-dashboard/internal/domain"
)

// maxReported caps the detail lines printed per phase.
const maxReported = 20

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	path := flag.String("data", "dashboard/main_data.csv", "path to the prepared CSV")
	flag.Parse()

	if code := run(*path, os.Stdout); code != 0 {
		os.Exit(code)
	}
}

func run(path string, out io.Writer) int {
	fmt.Fprintln(out, "=== Bike Sharing Data Integrity Validation ===")
	fmt.Fprintln(out)

	df, err := readRaw(path)
	if err != nil {
		fmt.Fprintf(out, "FATAL: read %s: %v\n", path, err)
		return 1
	}

	schema := validateSchema(df)
	phases := []*phase{schema}
	if schema.passed() {
		rows := columns(df)
		phases = append(phases,
			validateRanges(rows),
			validateCounts(rows),
			validateDates(rows),
			validateCodes(rows),
			validateLoad(path),
		)
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-32s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Records: %d\n", df.Nrow())

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if i == maxReported {
				fmt.Fprintf(out, "  ... %d more\n", len(p.errors)-maxReported)
				break
			}
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

func readRaw(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.NaNValues(nil),
	)
	return df, df.Err
}

// columns returns the raw cell strings of every required column.
func columns(df dataframe.DataFrame) map[string][]string {
	out := make(map[string][]string, len(domain.RequiredColumns))
	for _, name := range domain.RequiredColumns {
		out[name] = df.Col(name).Records()
	}
	return out
}

// ── Phase 1: Schema ──

func validateSchema(df dataframe.DataFrame) *phase {
	p := &phase{name: "Schema"}
	names := df.Names()
	for _, col := range domain.RequiredColumns {
		if !slices.Contains(names, col) {
			p.errorf("missing column %q", col)
		}
	}
	if df.Nrow() == 0 {
		p.errorf("no data rows")
	}
	return p
}

// ── Phase 2: Value ranges ──

func validateRanges(rows map[string][]string) *phase {
	p := &phase{name: "Value ranges"}
	checkInts := func(col string, lo, hi int) {
		for i, raw := range rows[col] {
			n, err := csvsource.ParseInt(raw)
			if err != nil || n < lo || n > hi {
				p.errorf("line %d: %s=%q outside %d-%d", i+2, col, raw, lo, hi)
			}
		}
	}
	checkUnit := func(col string) {
		for i, raw := range rows[col] {
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil || f < 0 || f > 1 {
				p.errorf("line %d: %s=%q is not a normalized value in [0,1]", i+2, col, raw)
			}
		}
	}

	checkInts(domain.ColHour, 0, 23)
	checkInts(domain.ColWeekday, 0, 6)
	checkUnit(domain.ColTemp)
	checkUnit(domain.ColHumidity)
	checkUnit(domain.ColWindSpeed)
	return p
}

// ── Phase 3: Count consistency ──

func validateCounts(rows map[string][]string) *phase {
	p := &phase{name: "Count consistency"}
	for i := range rows[domain.ColCount] {
		casual, err1 := csvsource.ParseInt(rows[domain.ColCasual][i])
		registered, err2 := csvsource.ParseInt(rows[domain.ColRegistered][i])
		total, err3 := csvsource.ParseInt(rows[domain.ColCount][i])
		if err1 != nil || err2 != nil || err3 != nil {
			p.errorf("line %d: non-integer count", i+2)
			continue
		}
		if casual < 0 || registered < 0 {
			p.errorf("line %d: negative user count", i+2)
		}
		if casual+registered != total {
			p.errorf("line %d: casual (%d) + registered (%d) != cnt (%d)", i+2, casual, registered, total)
		}
	}
	return p
}

// ── Phase 4: Dates ──

func validateDates(rows map[string][]string) *phase {
	p := &phase{name: "Dates and weekdays"}
	for i, raw := range rows[domain.ColDate] {
		d, err := domain.ParseDate(raw)
		if err != nil {
			p.errorf("line %d: %v", i+2, err)
			continue
		}
		weekday, err := csvsource.ParseInt(rows[domain.ColWeekday][i])
		if err != nil {
			continue // reported by the range phase
		}
		if int(d.Weekday()) != weekday {
			p.errorf("line %d: %s is a %s but weekday=%d", i+2, raw, d.Weekday(), weekday)
		}
	}
	return p
}

// ── Phase 5: Code mapping ──

func validateCodes(rows map[string][]string) *phase {
	p := &phase{name: "Weather and season codes"}
	for i, raw := range rows[domain.ColWeather] {
		code, err := csvsource.ParseInt(raw)
		if err != nil || domain.WeatherLabel(code) == domain.UnknownLabel {
			p.errorf("line %d: unmapped weathersit %q", i+2, raw)
		}
	}
	for i, raw := range rows[domain.ColSeason] {
		if domain.ParseSeason(raw).Label() == domain.UnknownLabel {
			p.errorf("line %d: unmapped season %q", i+2, raw)
		}
	}
	return p
}

// ── Phase 6: Dashboard load ──

func validateLoad(path string) *phase {
	p := &phase{name: "Dashboard load"}
	ds, err := csvsource.Load(path)
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	if _, err := domain.Summarize(ds.Records); err != nil {
		p.errorf("summary: %v", err)
	}
	return p
}
