package enum

import (
	"fmt"
	"time"
)

// StockFilter narrows product listings by stock level.
type StockFilter string

const (
	StockAll        StockFilter = "all"
	StockInStock    StockFilter = "in_stock"
	StockOutOfStock StockFilter = "out_of_stock"
)

// ParseStockFilter validates a stock filter string. The empty string means
// no filtering.
func ParseStockFilter(s string) (StockFilter, error) {
	switch StockFilter(s) {
	case "":
		return StockAll, nil
	case StockAll, StockInStock, StockOutOfStock:
		return StockFilter(s), nil
	default:
		return "", fmt.Errorf("unknown stock filter %q", s)
	}
}

// DateFilter narrows sale listings to a rolling period.
type DateFilter string

const (
	DateAll   DateFilter = "all"
	DateToday DateFilter = "today"
	DateWeek  DateFilter = "week"
	DateMonth DateFilter = "month"
)

// ParseDateFilter validates a date filter string. The empty string means no
// filtering.
func ParseDateFilter(s string) (DateFilter, error) {
	switch DateFilter(s) {
	case "":
		return DateAll, nil
	case DateAll, DateToday, DateWeek, DateMonth:
		return DateFilter(s), nil
	default:
		return "", fmt.Errorf("unknown date filter %q", s)
	}
}

// Bounds returns the [start, end) interval for the filter relative to now.
// ok is false for DateAll, which imposes no bounds.
func (f DateFilter) Bounds(now time.Time) (start, end time.Time, ok bool) {
	switch f {
	case DateToday:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return start, start.Add(24 * time.Hour), true
	case DateWeek:
		return now.AddDate(0, 0, -7), now, true
	case DateMonth:
		return now.AddDate(0, 0, -30), now, true
	default:
		return time.Time{}, time.Time{}, false
	}
}
