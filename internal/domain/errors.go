package domain

import (
	"errors"
	"fmt"
)

// ErrEmptySelection is returned by aggregations that have no meaning over an
// empty filtered set, such as averages.
var ErrEmptySelection = errors.New("no records in selected date range")

// ErrMissingColumns is wrapped by DataLoadError when the file lacks required columns.
var ErrMissingColumns = errors.New("missing required columns")

// DataLoadError reports a dataset that could not be read or parsed. The
// dashboard cannot render without data, so callers treat it as fatal.
type DataLoadError struct {
	Path string
	Err  error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("load dataset %s: %v", e.Path, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }
