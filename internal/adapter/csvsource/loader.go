// Package csvsource loads the prepared bike-sharing CSV into a typed dataset.
package csvsource

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"

	"github.com/couchcryptid/bike-sharing-dashboard/internal/domain"
)

// Load reads path and returns the parsed dataset. Every failure is reported
// as a *domain.DataLoadError.
func Load(path string) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.DataLoadError{Path: path, Err: err}
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, &domain.DataLoadError{Path: path, Err: err}
	}
	return domain.NewDataset(path, records), nil
}

// Read parses CSV content into records. The header must contain every
// column in domain.RequiredColumns; extra columns are ignored.
func Read(r io.Reader) ([]domain.Record, error) {
	// Keep every column as text so parse errors can name the offending cell.
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read csv: %w", df.Err)
	}

	if missing := missingColumns(df.Names()); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingColumns, strings.Join(missing, ", "))
	}
	if df.Nrow() == 0 {
		return nil, errors.New("no data rows")
	}

	cols := make(map[string][]string, len(domain.RequiredColumns))
	for _, name := range domain.RequiredColumns {
		cols[name] = df.Col(name).Records()
	}

	records := make([]domain.Record, df.Nrow())
	for i := range records {
		rec, err := parseRow(cols, i)
		if err != nil {
			// +2: one for the header line, one for 1-based numbering.
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		records[i] = rec
	}
	return records, nil
}

func missingColumns(names []string) []string {
	have := make(map[string]bool, len(names))
	for _, n := range names {
		have[n] = true
	}
	var missing []string
	for _, want := range domain.RequiredColumns {
		if !have[want] {
			missing = append(missing, want)
		}
	}
	return missing
}

// ParseInt parses an integer cell. Some exports write integer columns as
// "3.0", so integral floats are accepted too.
func ParseInt(raw string) (int, error) {
	if v, err := strconv.Atoi(raw); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("invalid integer %q", raw)
	}
	return int(f), nil
}

// rowParser accumulates the first parse error so parseRow reads linearly.
type rowParser struct {
	cols map[string][]string
	row  int
	err  error
}

func (p *rowParser) str(col string) string {
	return strings.TrimSpace(p.cols[col][p.row])
}

func (p *rowParser) integer(col string, lo, hi int) int {
	if p.err != nil {
		return 0
	}
	raw := p.str(col)
	v, err := ParseInt(raw)
	if err != nil {
		p.err = fmt.Errorf("column %s: %w", col, err)
		return 0
	}
	if v < lo || v > hi {
		p.err = fmt.Errorf("column %s: %d out of range [%d, %d]", col, v, lo, hi)
		return 0
	}
	return v
}

func (p *rowParser) number(col string) float64 {
	if p.err != nil {
		return 0
	}
	raw := p.str(col)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.err = fmt.Errorf("column %s: invalid number %q", col, raw)
		return 0
	}
	return v
}

func parseRow(cols map[string][]string, row int) (domain.Record, error) {
	p := &rowParser{cols: cols, row: row}

	date, err := domain.ParseDate(p.str(domain.ColDate))
	if err != nil {
		return domain.Record{}, fmt.Errorf("column %s: invalid date %q", domain.ColDate, p.str(domain.ColDate))
	}

	rec := domain.Record{
		Date:           date,
		Hour:           p.integer(domain.ColHour, 0, 23),
		Season:         domain.ParseSeason(p.str(domain.ColSeason)),
		Weather:        p.integer(domain.ColWeather, 0, math.MaxInt32),
		Temp:           p.number(domain.ColTemp),
		Humidity:       p.number(domain.ColHumidity),
		WindSpeed:      p.number(domain.ColWindSpeed),
		Casual:         p.integer(domain.ColCasual, 0, math.MaxInt32),
		Registered:     p.integer(domain.ColRegistered, 0, math.MaxInt32),
		Total:          p.integer(domain.ColCount, 0, math.MaxInt32),
		Weekday:        p.integer(domain.ColWeekday, 0, 6),
		TempCategory:   p.str(domain.ColTempCategory),
		CasualUser:     p.str(domain.ColCasualUser),
		RegisteredUser: p.str(domain.ColRegisteredUser),
	}
	if p.err != nil {
		return domain.Record{}, p.err
	}
	return rec, nil
}
