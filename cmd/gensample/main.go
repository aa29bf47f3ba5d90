// Command gensample writes a deterministic synthetic bike sharing CSV in the
// prepared dashboard format. The output exercises every chart: all seasons
// and weather codes, every hour and weekday, and both user flags.
//
// Usage:
//
//	go run ./cmd/gensample -out dashboard/main_data.csv -days 60 -seed 7
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/couchcryptid/bike-sharing-dashboard/internal/domain"
)

var baseDate = time.Date(2011, time.January, 1, 0, 0, 0, 0, time.UTC)

// row is one output line. Tags name the CSV columns.
type row struct {
	Instant        int     `dataframe:"instant"`
	Date           string  `dataframe:"dteday"`
	Season         int     `dataframe:"season"`
	Year           int     `dataframe:"yr"`
	Month          int     `dataframe:"mnth"`
	Hour           int     `dataframe:"hr"`
	Holiday        int     `dataframe:"holiday"`
	Weekday        int     `dataframe:"weekday"`
	WorkingDay     int     `dataframe:"workingday"`
	Weather        int     `dataframe:"weathersit"`
	Temp           float64 `dataframe:"temp"`
	ATemp          float64 `dataframe:"atemp"`
	Humidity       float64 `dataframe:"hum"`
	WindSpeed      float64 `dataframe:"windspeed"`
	Casual         int     `dataframe:"casual"`
	Registered     int     `dataframe:"registered"`
	Total          int     `dataframe:"cnt"`
	TempCategory   string  `dataframe:"temp_category"`
	CasualUser     string  `dataframe:"casual_user"`
	RegisteredUser string  `dataframe:"registered_user"`
}

// Flag thresholds for the user columns.
const (
	casualHigh     = 40
	registeredHigh = 150
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output CSV path")
	days := flag.Int("days", 60, "number of consecutive days to generate")
	seed := flag.Uint64("seed", 1, "random seed")
	flag.Parse()

	if *out == "" || *days <= 0 {
		flag.Usage()
		return fmt.Errorf("missing required flags: -out, -days > 0")
	}

	rows := generate(*days, *seed)

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create %s: %w", *out, err)
	}
	defer f.Close()

	df := dataframe.LoadStructs(rows)
	if df.Err != nil {
		return fmt.Errorf("build frame: %w", df.Err)
	}
	if err := df.WriteCSV(f); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}

	log.Printf("wrote %d rows covering %s to %s", len(rows),
		domain.NewDateRange(baseDate, baseDate.AddDate(0, 0, *days-1)), *out)
	return nil
}

// generate produces days*24 hourly rows starting at baseDate. The same seed
// always yields the same rows.
func generate(days int, seed uint64) []row {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	rows := make([]row, 0, days*24)

	for d := range days {
		date := baseDate.AddDate(0, 0, d)
		weekday := int(date.Weekday())
		working := 1
		if weekday == 0 || weekday == 6 {
			working = 0
		}
		// Warmer mid-year, with day to day noise.
		seasonal := 0.5 - 0.3*math.Cos(2*math.Pi*float64(date.YearDay())/365)

		for h := range 24 {
			temp := clamp(seasonal+0.1*math.Sin(math.Pi*float64(h-6)/12)+rng.NormFloat64()*0.04, 0.02, 1)
			hum := clamp(0.6+rng.NormFloat64()*0.15, 0, 1)
			wind := clamp(math.Abs(rng.NormFloat64()*0.15), 0, 1)
			weather := weatherCode(rng.Float64())

			base := demand(h, working == 1) * (0.4 + temp) * (1.1 - 0.2*float64(weather))
			casual := poisson(rng, base*0.2)
			registered := poisson(rng, base*0.8)

			rows = append(rows, row{
				Instant:        len(rows) + 1,
				Date:           date.Format(domain.DateLayout),
				Season:         seasonOf(date),
				Year:           date.Year() - baseDate.Year(),
				Month:          int(date.Month()),
				Hour:           h,
				Weekday:        weekday,
				WorkingDay:     working,
				Weather:        weather,
				Temp:           round4(temp),
				ATemp:          round4(clamp(temp*0.95, 0, 1)),
				Humidity:       round4(hum),
				WindSpeed:      round4(wind),
				Casual:         casual,
				Registered:     registered,
				Total:          casual + registered,
				TempCategory:   tempCategory(temp),
				CasualUser:     userFlag(casual, casualHigh),
				RegisteredUser: userFlag(registered, registeredHigh),
			})
		}
	}
	return rows
}

// demand is the expected hourly rentals before weather effects, with commute
// peaks on working days and a midday hump otherwise.
func demand(hour int, working bool) float64 {
	if working {
		return 20 + 260*bump(hour, 8, 1.2) + 320*bump(hour, 17.5, 1.5) + 60*bump(hour, 12.5, 2)
	}
	return 15 + 220*bump(hour, 14, 3.5)
}

func bump(hour int, center, width float64) float64 {
	x := (float64(hour) - center) / width
	return math.Exp(-x * x / 2)
}

func weatherCode(u float64) int {
	switch {
	case u < 0.65:
		return 1
	case u < 0.90:
		return 2
	case u < 0.99:
		return 3
	default:
		return 4
	}
}

// seasonOf codes each calendar quarter 1-4, the way the source dataset
// labels January rows Springer and June rows Summer.
func seasonOf(t time.Time) int {
	switch t.Month() {
	case time.January, time.February, time.March:
		return int(domain.SeasonSpring)
	case time.April, time.May, time.June:
		return int(domain.SeasonSummer)
	case time.July, time.August, time.September:
		return int(domain.SeasonFall)
	default:
		return int(domain.SeasonWinter)
	}
}

func tempCategory(temp float64) string {
	switch {
	case temp < 0.35:
		return "Cold"
	case temp < 0.65:
		return "Mild"
	default:
		return "Hot"
	}
}

func userFlag(n, high int) string {
	if n >= high {
		return "High"
	}
	return "Low"
}

// poisson draws by inversion for small means and a rounded normal otherwise.
func poisson(rng *rand.Rand, mean float64) int {
	if mean <= 0 {
		return 0
	}
	if mean > 30 {
		return max(0, int(math.Round(mean+rng.NormFloat64()*math.Sqrt(mean))))
	}
	l, k, p := math.Exp(-mean), 0, 1.0
	for {
		p *= rng.Float64()
		if p <= l {
			return k
		}
		k++
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round4(f float64) float64 {
	return math.Round(f*1e4) / 1e4
}
