package domain

import (
	"time"
)

// DateRange is a closed interval of calendar dates.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange normalizes both bounds to UTC midnight.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: Day(start), End: Day(end)}
}

// Inverted reports whether Start falls after End. Inverted ranges select nothing.
func (r DateRange) Inverted() bool {
	return r.Start.After(r.End)
}

// Contains reports whether d lies within [Start, End].
func (r DateRange) Contains(d time.Time) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

// Dataset is the full, immutable record set loaded from one source file.
type Dataset struct {
	Source   string
	Records  []Record
	MinDate  time.Time
	MaxDate  time.Time
	LoadedAt time.Time
}

// NewDataset wraps records and computes their date bounds. The slice is
// owned by the dataset afterwards.
func NewDataset(source string, records []Record) *Dataset {
	ds := &Dataset{
		Source:   source,
		Records:  records,
		LoadedAt: clock.Now(),
	}
	for i, rec := range records {
		if i == 0 || rec.Date.Before(ds.MinDate) {
			ds.MinDate = rec.Date
		}
		if i == 0 || rec.Date.After(ds.MaxDate) {
			ds.MaxDate = rec.Date
		}
	}
	return ds
}

// Bounds returns the range spanning every record.
func (d *Dataset) Bounds() DateRange {
	return DateRange{Start: d.MinDate, End: d.MaxDate}
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.Records) }

// Filter returns the records dated within r, in load order. Inverted ranges
// return an empty slice.
func (d *Dataset) Filter(r DateRange) []Record {
	if r.Inverted() {
		return []Record{}
	}
	out := make([]Record, 0, len(d.Records))
	for _, rec := range d.Records {
		if r.Contains(rec.Date) {
			out = append(out, rec)
		}
	}
	return out
}
