// Package dashboard holds the dataset and the current date range, and
// recomputes derived views when the range changes.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/bike-sharing-dashboard/internal/domain"
	"github.com/couchcryptid/bike-sharing-dashboard/internal/observability"
)

// Context owns the loaded dataset and the active selection. It is safe for
// concurrent use by HTTP handlers.
type Context struct {
	mu      sync.RWMutex
	dataset *domain.Dataset
	current View

	logger  *slog.Logger
	metrics *observability.Metrics
}

// New builds a Context over ds with the full dataset range selected.
func New(ds *domain.Dataset, logger *slog.Logger, metrics *observability.Metrics) *Context {
	c := &Context{logger: logger, metrics: metrics}
	c.Replace(ds)
	return c
}

// CheckReadiness returns nil once a non-empty dataset is loaded.
func (c *Context) CheckReadiness(_ context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.dataset == nil || c.dataset.Len() == 0 {
		return errors.New("dataset not loaded")
	}
	return nil
}

// Bounds returns the date span of the loaded dataset.
func (c *Context) Bounds() domain.DateRange {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dataset.Bounds()
}

// Current returns the view for the last selected range.
func (c *Context) Current() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// OnRangeChanged selects r and recomputes the derived views.
func (c *Context) OnRangeChanged(r domain.DateRange) View {
	c.mu.RLock()
	ds := c.dataset
	c.mu.RUnlock()

	v := c.compute(ds, r)

	c.mu.Lock()
	// A reload may have landed meanwhile; only publish views of the live dataset.
	if c.dataset == ds {
		c.current = v
	}
	c.mu.Unlock()
	return v
}

// Replace swaps in a freshly loaded dataset. The selection resets to the
// new dataset's full range.
func (c *Context) Replace(ds *domain.Dataset) {
	v := c.compute(ds, ds.Bounds())

	c.mu.Lock()
	c.dataset = ds
	c.current = v
	c.mu.Unlock()

	c.metrics.RecordsLoaded.Set(float64(ds.Len()))
	c.logger.Info("dataset active",
		"source", ds.Source,
		"records", ds.Len(),
		"min_date", ds.MinDate.Format(domain.DateLayout),
		"max_date", ds.MaxDate.Format(domain.DateLayout),
	)
}

func (c *Context) compute(ds *domain.Dataset, r domain.DateRange) View {
	start := time.Now()
	v := Compute(ds, r)
	c.metrics.ViewComputeDuration.Observe(time.Since(start).Seconds())
	c.metrics.ViewComputations.Inc()

	if v.Empty {
		c.metrics.EmptySelections.Inc()
		c.logger.Debug("empty selection", "range", r.String(), "inverted", r.Inverted())
	}
	return v
}
