package render

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/bike-sharing-dashboard/internal/dashboard"
	"github.com/couchcryptid/bike-sharing-dashboard/internal/domain"
)

// Sheet names of the workbook export.
const (
	SheetRecords = "Records"
	SheetHourly  = "Hourly"
	SheetWeather = "Weather"
)

var recordHeader = []interface{}{
	domain.ColDate, domain.ColHour, domain.ColSeason, domain.ColWeekday,
	domain.ColWeather, domain.ColTemp, domain.ColHumidity, domain.ColWindSpeed,
	domain.ColCasual, domain.ColRegistered, domain.ColCount,
	domain.ColTempCategory, domain.ColCasualUser, domain.ColRegisteredUser,
}

// WriteWorkbook exports the selected records and the hourly and weather
// aggregates of v as an xlsx workbook.
func WriteWorkbook(w io.Writer, v dashboard.View) error {
	if v.Empty {
		return domain.ErrEmptySelection
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetRecords); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetHourly, SheetWeather} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	rows := make([][]interface{}, 0, len(v.Records))
	for _, rec := range v.Records {
		rows = append(rows, []interface{}{
			rec.Date.Format(domain.DateLayout), rec.Hour, rec.Season.Label(), WeekdayName(rec.Weekday),
			rec.WeatherLabel(), rec.Temp, rec.Humidity, rec.WindSpeed,
			rec.Casual, rec.Registered, rec.Total,
			rec.TempCategory, rec.CasualUser, rec.RegisteredUser,
		})
	}
	if err := writeSheet(f, SheetRecords, recordHeader, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, h := range v.Hourly {
		rows = append(rows, []interface{}{h.Hour, h.Count, v.Extremes.IsMax(h.Hour), v.Extremes.IsMin(h.Hour)})
	}
	if err := writeSheet(f, SheetHourly, []interface{}{"hour", "distinct_counts", "max", "min"}, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, c := range v.Weather {
		rows = append(rows, []interface{}{c.Label, c.Value})
	}
	if err := writeSheet(f, SheetWeather, []interface{}{"weather", "mean_count"}, rows); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
