package report

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for date boundaries everywhere in the
// service: query parameters, SQL bind values, and export filenames.
const DateLayout = "2006-01-02"

// DateRange selects which orders an aggregation considers, by the date
// part of their creation timestamp. The zero value means no filter
// (all-time). A range with only Start set covers that single day. A
// range with both bounds set is inclusive on both ends.
//
// The range is deliberately not validated: an End before Start is kept
// as-is and simply matches nothing.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Day returns a range covering a single calendar day.
func Day(day time.Time) DateRange {
	return DateRange{Start: day}
}

// Between returns an inclusive start/end range.
func Between(start, end time.Time) DateRange {
	return DateRange{Start: start, End: end}
}

// ParseRange builds a DateRange from raw start/end query inputs.
// Both empty means all-time; start alone means single-day; end alone
// is rejected because there is nothing to anchor the range to.
func ParseRange(start, end string) (DateRange, error) {
	if start == "" && end == "" {
		return DateRange{}, nil
	}
	if start == "" {
		return DateRange{}, fmt.Errorf("end date given without a start date")
	}

	from, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	if end == "" {
		return Day(from), nil
	}

	to, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	return Between(from, to), nil
}

// AllTime reports whether the range applies no date filter.
func (r DateRange) AllTime() bool {
	return r.Start.IsZero()
}

// SingleDay reports whether the range covers exactly one day.
func (r DateRange) SingleDay() bool {
	return !r.Start.IsZero() && r.End.IsZero()
}

// StartDate returns the start bound formatted for binding.
func (r DateRange) StartDate() string {
	return r.Start.Format(DateLayout)
}

// EndDate returns the end bound formatted for binding.
func (r DateRange) EndDate() string {
	return r.End.Format(DateLayout)
}

// Slug renders the range for use in download filenames.
func (r DateRange) Slug() string {
	switch {
	case r.AllTime():
		return "all-time"
	case r.SingleDay():
		return r.StartDate()
	default:
		return r.StartDate() + "_to_" + r.EndDate()
	}
}

// Label renders the range for user-facing messages, mirroring the
// dashboard's "no data found ..." wording.
func (r DateRange) Label() string {
	switch {
	case r.AllTime():
		return "for all time"
	case r.SingleDay():
		return "for " + r.StartDate()
	default:
		return "from " + r.StartDate() + " to " + r.EndDate()
	}
}
