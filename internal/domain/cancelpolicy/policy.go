package cancelpolicy

import (
	"fmt"
	"time"

	"studiobook/internal/pkg/clock"
)

// GracePeriod is how long after booking a reservation can be cancelled
// free of charge regardless of how close the use date is.
const GracePeriod = 10 * time.Minute

// Quote is the derived refund/fee split. It is recomputed on every read
// and never persisted.
type Quote struct {
	Fee        int64
	Refund     int64
	FeePercent int
	PolicyText string
	CanCancel  bool
}

// feeTiers maps days-until-use to the fee percentage. Five or more days
// out is free; same day or past is non-cancellable.
var feeTiers = map[int]int{
	4: 30,
	3: 50,
	2: 70,
	1: 90,
}

// Compute derives the cancellation quote from the three timestamps.
// Pure function: identical inputs always yield the identical quote.
//
//   - Within GracePeriod of createdAt: full refund.
//   - Otherwise a step function of whole days between today and the use
//     date, both taken in loc.
//
// Fee is floor(total × rate); refund is the exact remainder, so
// Fee + Refund == total always holds.
func Compute(totalPrice int64, createdAt, useDate, now time.Time, loc *time.Location) Quote {
	if now.Sub(createdAt) < GracePeriod {
		return Quote{
			Fee:        0,
			Refund:     totalPrice,
			FeePercent: 0,
			PolicyText: "Within 10 minutes of booking: full refund",
			CanCancel:  true,
		}
	}

	days := DaysUntilUse(useDate, now, loc)
	switch {
	case days >= 5:
		return Quote{
			Fee:        0,
			Refund:     totalPrice,
			FeePercent: 0,
			PolicyText: "5 or more days before use: full refund",
			CanCancel:  true,
		}
	case days <= 0:
		return Quote{
			Fee:        totalPrice,
			Refund:     0,
			FeePercent: 100,
			PolicyText: "On the day of use: no refund",
			CanCancel:  false,
		}
	default:
		percent := feeTiers[days]
		fee := totalPrice * int64(percent) / 100 // integer division == floor for non-negative totals
		return Quote{
			Fee:        fee,
			Refund:     totalPrice - fee,
			FeePercent: percent,
			PolicyText: fmt.Sprintf("%d day(s) before use: %d%% cancellation fee", days, percent),
			CanCancel:  true,
		}
	}
}

// DaysUntilUse counts whole days from today to the use date in loc.
// Negative when the use date has passed.
func DaysUntilUse(useDate, now time.Time, loc *time.Location) int {
	use := clock.DayFloor(useDate, loc)
	today := clock.DayFloor(now, loc)
	return int(use.Sub(today) / (24 * time.Hour))
}
