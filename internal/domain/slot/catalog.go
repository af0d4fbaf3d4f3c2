package slot

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// StatusAvailable is the only upstream status that means a slot is open.
// A missing status is treated the same way; anything else blocks the slot.
const StatusAvailable = "AVAILABLE"

// RawSlot is one entry of the upstream availability read for a room/date.
type RawSlot struct {
	Time   string  // HH:mm:ss (occasionally HH:mm)
	Status *string // AVAILABLE | other | nil
}

// RangePrice prices every slot whose display time falls in [From, To).
type RangePrice struct {
	From  string // HH:mm inclusive
	To    string // HH:mm exclusive
	Price int64
}

// PriceTable is the pricing policy for one room/date. Lookup order:
// exact display-time entry, then time range, then the default.
type PriceTable struct {
	ByTime  map[string]int64
	Ranges  []RangePrice
	Default int64
}

func (p PriceTable) PriceFor(displayTime string) int64 {
	if price, ok := p.ByTime[displayTime]; ok {
		return price
	}
	m, ok := minuteOfDay(displayTime)
	if !ok {
		return p.Default
	}
	for _, r := range p.Ranges {
		from, okFrom := minuteOfDay(r.From)
		to, okTo := minuteOfDay(r.To)
		if okFrom && okTo && m >= from && m < to {
			return r.Price
		}
	}
	return p.Default
}

// Item is one selectable cell of the booking sheet. Everything except
// Selected is fixed at build time; Selected is recomputed per click.
type Item struct {
	DisplayTime  string `json:"display_time"`  // HH:mm
	OriginalTime string `json:"original_time"` // raw upstream value
	Available    bool   `json:"available"`
	Price        int64  `json:"price"`
	Selected     bool   `json:"selected"`
}

// Catalog is the ordered slot sheet for one room/date.
type Catalog []Item

// Build turns raw upstream slots and a price table into the slot sheet.
// Order is preserved from the input; the transform has no side effects.
//
//   - minUnit == 60 keeps only on-the-hour slots; other units keep all.
//   - On a same-day sheet (date == now's day in loc), slots whose
//     time-of-day is at or before now are forced unavailable regardless
//     of the upstream status.
//   - Malformed times are swallowed: dropped by the 60-minute filter,
//     otherwise kept with minute 0 and whatever the table prices them at.
func Build(raw []RawSlot, prices PriceTable, minUnit int, date time.Time, now time.Time, loc *time.Location) Catalog {
	nowLocal := now.In(loc)
	dateLocal := date.In(loc)
	sameDay := nowLocal.Year() == dateLocal.Year() && nowLocal.YearDay() == dateLocal.YearDay()
	nowMinutes := nowLocal.Hour()*60 + nowLocal.Minute()

	catalog := make(Catalog, 0, len(raw))
	for _, rs := range raw {
		m, ok := minuteOfDay(rs.Time)
		if minUnit == 60 && (!ok || m%60 != 0) {
			continue
		}
		if !ok {
			m = 0
		}

		display := displayTime(rs.Time, m)
		forcedPast := sameDay && m <= nowMinutes
		available := (rs.Status == nil || *rs.Status == StatusAvailable) && !forcedPast

		catalog = append(catalog, Item{
			DisplayTime:  display,
			OriginalTime: rs.Time,
			Available:    available,
			Price:        prices.PriceFor(display),
		})
	}
	return catalog
}

func (c Catalog) InRange(i int) bool {
	return i >= 0 && i < len(c)
}

func (c Catalog) Available(i int) bool {
	return c.InRange(i) && c[i].Available
}

func (c Catalog) PriceSum(indices []int) int64 {
	var sum int64
	for _, i := range indices {
		if c.InRange(i) {
			sum += c[i].Price
		}
	}
	return sum
}

// Times returns the display times for the given indices, input order.
func (c Catalog) Times(indices []int) []string {
	times := make([]string, 0, len(indices))
	for _, i := range indices {
		if c.InRange(i) {
			times = append(times, c[i].DisplayTime)
		}
	}
	return times
}

// WithSelection returns a copy with Selected set for exactly the given
// indices. The receiver is never mutated.
func (c Catalog) WithSelection(indices []int) Catalog {
	out := make(Catalog, len(c))
	copy(out, c)
	for i := range out {
		out[i].Selected = false
	}
	for _, i := range indices {
		if c.InRange(i) {
			out[i].Selected = true
		}
	}
	return out
}

// Hash fingerprints the sheet (times, availability, prices). A selection
// session opened against one sheet must not apply to a reloaded one.
func (c Catalog) Hash() string {
	h := sha256.New()
	for _, item := range c {
		fmt.Fprintf(h, "%s|%t|%d;", item.DisplayTime, item.Available, item.Price)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// minuteOfDay parses HH:mm or HH:mm:ss without allocating a time.Time.
// Returns false for anything it cannot read as a valid wall time.
func minuteOfDay(s string) (int, bool) {
	if len(s) != 5 && len(s) != 8 {
		return 0, false
	}
	if s[2] != ':' || (len(s) == 8 && s[5] != ':') {
		return 0, false
	}
	hh, ok1 := twoDigits(s[0], s[1])
	mm, ok2 := twoDigits(s[3], s[4])
	if !ok1 || !ok2 || hh > 23 || mm > 59 {
		return 0, false
	}
	if len(s) == 8 {
		if ss, ok := twoDigits(s[6], s[7]); !ok || ss > 59 {
			return 0, false
		}
	}
	return hh*60 + mm, true
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

func displayTime(raw string, fallbackMinute int) string {
	if len(raw) >= 5 {
		if _, ok := minuteOfDay(raw[:5]); ok {
			return raw[:5]
		}
	}
	return fmt.Sprintf("%02d:%02d", fallbackMinute/60, fallbackMinute%60)
}
