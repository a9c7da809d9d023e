package engine

import (
	"errors"

	"github.com/jaego-dev/jaegoboard/internal/domain"
)

// ErrNoAnchorDate is returned when no sales facts exist: there is no data to
// anchor the trailing windows on. Callers must treat this as "no data yet",
// never fall back to the system clock.
var ErrNoAnchorDate = errors.New("no sales facts: anchor date unavailable")

// DateRange is an inclusive calendar-day range.
type DateRange struct {
	From domain.Date `json:"from"`
	To   domain.Date `json:"to"`
}

// Contains reports whether d falls inside the range, boundaries included.
func (r DateRange) Contains(d domain.Date) bool {
	return !d.Before(r.From) && !d.After(r.To)
}

// Windows holds every trailing window the engine derives from the anchor
// date. The anchor is the most recent date observed in the sales facts, not
// wall-clock today, so historical back-fills compute correctly.
type Windows struct {
	Anchor    domain.Date `json:"anchor"`
	Yesterday DateRange   `json:"yesterday"`
	Last7     DateRange   `json:"last_7"`
	Last14    DateRange   `json:"last_14"`
	Last30    DateRange   `json:"last_30"`
	Prev30    DateRange   `json:"prev_30"`

	// CoverDays is the lead-time-plus-buffer day count used to size reorder
	// recommendations. It is a multiplier, not a date range.
	CoverDays int `json:"cover_days"`
}

// trailing returns the inclusive range of n calendar days ending at anchor.
func trailing(anchor domain.Date, n int) DateRange {
	return DateRange{From: anchor.AddDays(-(n - 1)), To: anchor}
}

// AnchorDate returns the maximum date present in facts.
func AnchorDate(facts []domain.SalesFact) (domain.Date, error) {
	if len(facts) == 0 {
		return domain.Date{}, ErrNoAnchorDate
	}
	anchor := facts[0].Date
	for _, f := range facts[1:] {
		if f.Date.After(anchor) {
			anchor = f.Date
		}
	}
	return anchor, nil
}

// ComputeWindows derives all window boundaries from the sales facts' own
// latest day. leadTimeDays and safetyBufferDays size the reorder cover window.
func ComputeWindows(facts []domain.SalesFact, leadTimeDays, safetyBufferDays int) (Windows, error) {
	anchor, err := AnchorDate(facts)
	if err != nil {
		return Windows{}, err
	}
	return WindowsAt(anchor, leadTimeDays, safetyBufferDays), nil
}

// WindowsAt builds the windows for a known anchor date.
func WindowsAt(anchor domain.Date, leadTimeDays, safetyBufferDays int) Windows {
	last30 := trailing(anchor, 30)
	return Windows{
		Anchor:    anchor,
		Yesterday: trailing(anchor, 1),
		Last7:     trailing(anchor, 7),
		Last14:    trailing(anchor, 14),
		Last30:    last30,
		Prev30: DateRange{
			From: last30.From.AddDays(-30),
			To:   last30.From.AddDays(-1),
		},
		CoverDays: leadTimeDays + safetyBufferDays,
	}
}
