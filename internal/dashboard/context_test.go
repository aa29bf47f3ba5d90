package dashboard_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/bike-sharing-dashboard/internal/adapter/csvsource"
	"github.com/couchcryptid/bike-sharing-dashboard/internal/dashboard"
	"github.com/couchcryptid/bike-sharing-dashboard/internal/domain"
	"github.com/couchcryptid/bike-sharing-dashboard/internal/observability"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixturePath = filepath.Join("..", "adapter", "csvsource", "testdata", "main_data.csv")

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func loadFixture(t *testing.T) *domain.Dataset {
	t.Helper()
	ds, err := csvsource.Load(fixturePath)
	require.NoError(t, err)
	return ds
}

func newContext(t *testing.T) (*dashboard.Context, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetricsForTesting()
	return dashboard.New(loadFixture(t), slog.Default(), metrics), metrics
}

func TestNew_SelectsFullRange(t *testing.T) {
	c, metrics := newContext(t)

	v := c.Current()

	assert.Equal(t, c.Bounds(), v.Range)
	assert.Equal(t, 8, v.RecordCount)
	assert.False(t, v.Empty)
	assert.InDelta(t, 8, testutil.ToFloat64(metrics.RecordsLoaded), 0)
	require.NoError(t, c.CheckReadiness(context.Background()))
}

func TestOnRangeChanged_RecomputesViews(t *testing.T) {
	c, metrics := newContext(t)
	before := testutil.ToFloat64(metrics.ViewComputations)

	v := c.OnRangeChanged(domain.NewDateRange(date(2011, time.January, 1), date(2011, time.January, 2)))

	assert.Equal(t, 5, v.RecordCount)
	assert.Equal(t, []domain.HourlyCount{
		{Hour: 0, Count: 2}, // totals 16 and 17
		{Hour: 1, Count: 2}, // totals 40 and 17
		{Hour: 2, Count: 1},
	}, v.Hourly)
	assert.Equal(t, 0, v.Extremes.MaxHour)
	assert.Equal(t, 2, v.Extremes.MinHour)
	require.NotNil(t, v.Summary)
	assert.Equal(t, 4, v.Summary.AvgCasual)      // (3+8+5+4+1)/5 = 4.2
	assert.Equal(t, 20, v.Summary.AvgRegistered) // (13+32+27+13+16)/5 = 20.2
	assert.Equal(t, v, c.Current())
	assert.InDelta(t, before+1, testutil.ToFloat64(metrics.ViewComputations), 0)
}

func TestOnRangeChanged_Idempotent(t *testing.T) {
	c, _ := newContext(t)
	r := domain.NewDateRange(date(2011, time.January, 1), date(2011, time.June, 15))

	first := c.OnRangeChanged(r)
	second := c.OnRangeChanged(r)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("views differ across identical runs (-first +second):\n%s", diff)
	}
}

func TestOnRangeChanged_FullBoundsRoundTrip(t *testing.T) {
	c, _ := newContext(t)
	ds := loadFixture(t)

	v := c.OnRangeChanged(ds.Bounds())

	assert.Equal(t, ds.Len(), v.RecordCount)
	assert.Len(t, v.Records, ds.Len())
}

func TestOnRangeChanged_EmptySelection(t *testing.T) {
	c, metrics := newContext(t)

	v := c.OnRangeChanged(domain.NewDateRange(date(2011, time.February, 1), date(2011, time.February, 28)))

	assert.True(t, v.Empty)
	assert.Zero(t, v.RecordCount)
	assert.Nil(t, v.Summary)
	assert.Empty(t, v.Hourly)
	assert.False(t, v.Extremes.OK)
	assert.Empty(t, v.Weather)
	assert.Empty(t, v.CasualWeekly)
	assert.Empty(t, v.CasualByTemp.Categories)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.EmptySelections), 0)
}

func TestOnRangeChanged_InvertedRangeIsEmpty(t *testing.T) {
	c, _ := newContext(t)

	v := c.OnRangeChanged(domain.DateRange{Start: date(2011, time.June, 15), End: date(2011, time.January, 1)})

	assert.True(t, v.Empty)
}

func TestReplace_ResetsSelection(t *testing.T) {
	c, metrics := newContext(t)
	c.OnRangeChanged(domain.NewDateRange(date(2011, time.January, 3), date(2011, time.January, 3)))

	smaller := domain.NewDataset("small.csv", []domain.Record{
		{Date: date(2012, time.May, 1), Hour: 7, Total: 10, Casual: 2, Registered: 8},
	})
	c.Replace(smaller)

	v := c.Current()
	assert.Equal(t, smaller.Bounds(), v.Range)
	assert.Equal(t, 1, v.RecordCount)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.RecordsLoaded), 0)
}

func TestCheckReadiness_EmptyDataset(t *testing.T) {
	c := dashboard.New(domain.NewDataset("empty.csv", nil), slog.Default(), observability.NewMetricsForTesting())
	assert.Error(t, c.CheckReadiness(context.Background()))
}

func TestView_Accessors(t *testing.T) {
	c, _ := newContext(t)
	v := c.Current()

	assert.Equal(t, v.TemperaturePoints, v.Points(domain.MeasureTemperature))
	assert.Equal(t, v.WindSpeedPoints, v.Points(domain.MeasureWindSpeed))
	assert.Equal(t, v.HumidityPoints, v.Points(domain.MeasureHumidity))
	assert.Equal(t, v.RegisteredWeekly, v.Weekly(domain.RegisteredUsers))
	assert.Equal(t, v.CasualByTemp, v.ByTemp(domain.CasualUsers))
}
