package analytics

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"salesdash/internal/models"
)

// Frame selects the time-series bucket width.
type Frame string

const (
	FrameMonthly Frame = "monthly"
	FrameWeekly  Frame = "weekly"
)

// ParseFrame maps a query-string value onto a Frame, defaulting to monthly.
func ParseFrame(s string) Frame {
	if s == string(FrameWeekly) {
		return FrameWeekly
	}
	return FrameMonthly
}

// TimeSeries buckets the filtered set by calendar month ("2016-04") or by
// Sunday-based week of year ("2016-W13"), summing sales and profit per
// bucket. Records without an order date have no bucket and are excluded:
// the series aggregator is strict where the date filter is lenient.
// Points come back ascending by period start.
func TimeSeries(records []models.TransactionRecord, frame Frame) []models.TimeSeriesPoint {
	buckets := make(map[string]*models.TimeSeriesPoint)
	for _, r := range records {
		if r.OrderDate == nil {
			continue
		}
		key, start := bucketFor(*r.OrderDate, frame)
		p := buckets[key]
		if p == nil {
			p = &models.TimeSeriesPoint{PeriodKey: key, PeriodStart: start}
			buckets[key] = p
		}
		p.Sales += r.TotalAmount
		p.Profit += r.Profit
	}

	out := make([]models.TimeSeriesPoint, 0, len(buckets))
	for _, p := range buckets {
		out = append(out, *p)
	}
	slices.SortFunc(out, func(a, b models.TimeSeriesPoint) int {
		// Weeks keyed into different years can share a Sunday across a year
		// boundary, so ties break on the key to keep output order stable.
		if c := a.PeriodStart.Compare(b.PeriodStart); c != 0 {
			return c
		}
		return strings.Compare(a.PeriodKey, b.PeriodKey)
	})
	return out
}

func bucketFor(t time.Time, frame Frame) (string, time.Time) {
	if frame == FrameWeekly {
		week := weekOfYear(t)
		return fmt.Sprintf("%d-W%02d", t.Year(), week), weekStart(t)
	}
	return t.Format("2006-01"), time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// weekOfYear counts Sunday boundaries between January 1st and t, so the
// days before the year's first Sunday are week 0.
func weekOfYear(t time.Time) int {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	yday := t.YearDay() - 1
	return (yday + int(jan1.Weekday())) / 7
}

// weekStart floors t to its week's Sunday at midnight.
func weekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}
