package csvsource_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/bike-sharing-dashboard/internal/adapter/csvsource"
	"github.com/couchcryptid/bike-sharing-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "dteday,hr,season,weathersit,temp,hum,windspeed,casual,registered,cnt,weekday,temp_category,casual_user,registered_user\n"

func TestLoad_Fixture(t *testing.T) {
	ds, err := csvsource.Load(filepath.Join("testdata", "main_data.csv"))
	require.NoError(t, err)

	require.Equal(t, 8, ds.Len())
	assert.Equal(t, time.Date(2011, time.January, 1, 0, 0, 0, 0, time.UTC), ds.MinDate)
	assert.Equal(t, time.Date(2011, time.June, 15, 0, 0, 0, 0, time.UTC), ds.MaxDate)

	first := ds.Records[0]
	assert.Equal(t, 0, first.Hour)
	assert.Equal(t, domain.SeasonSpring, first.Season)
	assert.Equal(t, 1, first.Weather)
	assert.InDelta(t, 0.24, first.Temp, 1e-9)
	assert.InDelta(t, 0.81, first.Humidity, 1e-9)
	assert.Equal(t, 3, first.Casual)
	assert.Equal(t, 13, first.Registered)
	assert.Equal(t, 16, first.Total)
	assert.Equal(t, 6, first.Weekday)
	assert.Equal(t, "Cold", first.TempCategory)
	assert.Equal(t, "Low", first.CasualUser)
	assert.Equal(t, "Low", first.RegisteredUser)

	last := ds.Records[7]
	assert.Equal(t, 4, last.Weather)
	assert.Equal(t, "High", last.RegisteredUser)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := csvsource.Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)

	var loadErr *domain.DataLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRead_MissingColumns(t *testing.T) {
	_, err := csvsource.Read(strings.NewReader("dteday,hr,cnt\n2011-01-01,0,16\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingColumns)
	assert.Contains(t, err.Error(), "season")
	assert.Contains(t, err.Error(), "registered_user")
	assert.NotContains(t, err.Error(), "dteday")
}

func TestRead_HeaderOnly(t *testing.T) {
	_, err := csvsource.Read(strings.NewReader(header))
	assert.Error(t, err)
}

func TestRead_EmptyInput(t *testing.T) {
	_, err := csvsource.Read(strings.NewReader(""))
	assert.Error(t, err)
}

func TestRead_RejectsMalformedCells(t *testing.T) {
	cases := []struct {
		name   string
		row    string
		column string
	}{
		{name: "bad date", row: "someday,0,1,1,0.2,0.8,0,3,13,16,6,Cold,Low,Low", column: "dteday"},
		{name: "hour out of range", row: "2011-01-01,24,1,1,0.2,0.8,0,3,13,16,6,Cold,Low,Low", column: "hr"},
		{name: "weekday out of range", row: "2011-01-01,0,1,1,0.2,0.8,0,3,13,16,7,Cold,Low,Low", column: "weekday"},
		{name: "negative count", row: "2011-01-01,0,1,1,0.2,0.8,0,-3,13,16,6,Cold,Low,Low", column: "casual"},
		{name: "non-numeric temp", row: "2011-01-01,0,1,1,warm,0.8,0,3,13,16,6,Cold,Low,Low", column: "temp"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := csvsource.Read(strings.NewReader(header + tc.row + "\n"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line 2")
			assert.Contains(t, err.Error(), tc.column)
		})
	}
}

func TestRead_AcceptsSeasonLabelsAndFloatIntegers(t *testing.T) {
	row := "2011-07-01 00:00:00,13.0,Summer,9,0.8,0.4,0.1,40,200,240,5,Hot,High,High\n"

	records, err := csvsource.Read(strings.NewReader(header + row))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, 13, records[0].Hour)
	assert.Equal(t, domain.SeasonSummer, records[0].Season)
	assert.Equal(t, domain.UnknownLabel, records[0].WeatherLabel())
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "3", want: 3},
		{raw: "-4", want: -4},
		{raw: "3.0", want: 3},
		{raw: "3.5", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "three", wantErr: true},
		{raw: "1e20", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := csvsource.ParseInt(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
