package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "dteday,season,hr,weekday,weathersit,temp,hum,windspeed,casual,registered,cnt,temp_category,casual_user,registered_user\n"

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRun_Fixture(t *testing.T) {
	var out bytes.Buffer

	code := run(filepath.Join("..", "..", "internal", "adapter", "csvsource", "testdata", "main_data.csv"), &out)

	assert.Equal(t, 0, code, out.String())
	assert.Contains(t, out.String(), "Records: 8")
	assert.Contains(t, out.String(), "All validations passed.")
}

func TestRun_ReportsEveryPhase(t *testing.T) {
	path := writeCSV(t, header+
		// weekday should be 6, cnt should be 16, weathersit 7 is unmapped
		"2011-01-01,1,0,5,7,0.24,0.81,0,3,13,20,Cold,Low,Low\n"+
		// hour out of range, season unmapped
		"2011-01-02,9,24,0,1,0.46,0.88,0.3,4,13,17,Mild,Low,Low\n")
	var out bytes.Buffer

	code := run(path, &out)

	assert.Equal(t, 1, code)
	report := out.String()
	assert.Contains(t, report, "line 2: casual (3) + registered (13) != cnt (20)")
	assert.Contains(t, report, "line 2: 2011-01-01 is a Saturday but weekday=5")
	assert.Contains(t, report, `line 2: unmapped weathersit "7"`)
	assert.Contains(t, report, `line 3: unmapped season "9"`)
	assert.Contains(t, report, `line 3: hr="24" outside 0-23`)
	assert.Contains(t, report, "Validation FAILED.")
}

func TestRun_FloatWrittenIntegers(t *testing.T) {
	path := writeCSV(t, header+
		"2011-01-01,1,0.0,6.0,1.0,0.24,0.81,0,3.0,13.0,16.0,Cold,Low,Low\n"+
		"2011-01-01,1,1.5,6,1,0.22,0.80,0,8,32,40,Cold,Low,Low\n")
	var out bytes.Buffer

	code := run(path, &out)

	assert.Equal(t, 1, code)
	report := out.String()
	assert.NotContains(t, report, "line 2:")
	assert.Contains(t, report, `line 3: hr="1.5" outside 0-23`)
}

func TestRun_MissingColumns(t *testing.T) {
	path := writeCSV(t, "dteday,hr\n2011-01-01,0\n")
	var out bytes.Buffer

	code := run(path, &out)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), `missing column "cnt"`)
	assert.False(t, strings.Contains(out.String(), "Count consistency"), "later phases need the schema")
}

func TestRun_MissingFile(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 1, run(filepath.Join(t.TempDir(), "absent.csv"), &out))
	assert.Contains(t, out.String(), "FATAL")
}
