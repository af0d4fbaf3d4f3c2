package selection

import (
	"errors"
	"fmt"
	"sort"

	"studiobook/internal/domain/slot"
)

var (
	// ErrRangeUnavailable reports a second click whose span covers an
	// unavailable slot. The selection is left exactly as it was.
	ErrRangeUnavailable = errors.New("range contains unavailable slot")
)

// Phase is the click-to-select interaction state. Modeling it as an enum
// keeps the illegal combinations of the three booleans it replaces
// unrepresentable.
type Phase string

const (
	PhaseEmpty       Phase = "empty"
	PhaseFirstPicked Phase = "first_picked"
	PhaseConfirmed   Phase = "confirmed"
)

// Selection is the immutable interaction state over one slot sheet.
// Click returns a new value; callers replace state wholesale.
type Selection struct {
	phase      Phase
	firstIndex int
	indices    []int
}

func Empty() Selection {
	return Selection{phase: PhaseEmpty, firstIndex: -1}
}

// Reconstruct rebuilds a selection persisted by a session store. Invalid
// combinations collapse to Empty rather than round-tripping bad state.
func Reconstruct(phase Phase, firstIndex int, indices []int) Selection {
	switch phase {
	case PhaseFirstPicked:
		if firstIndex < 0 {
			return Empty()
		}
		return Selection{phase: phase, firstIndex: firstIndex, indices: []int{firstIndex}}
	case PhaseConfirmed:
		if len(indices) == 0 {
			return Empty()
		}
		sorted := append([]int(nil), indices...)
		sort.Ints(sorted)
		return Selection{phase: phase, firstIndex: firstIndex, indices: sorted}
	default:
		return Empty()
	}
}

func (s Selection) Phase() Phase { return s.phase }

func (s Selection) FirstIndex() int { return s.firstIndex }

// Indices returns the selected indices in ascending order.
func (s Selection) Indices() []int {
	return append([]int(nil), s.indices...)
}

func (s Selection) IsEmpty() bool { return len(s.indices) == 0 }

// CanConfirm reports whether the selection can be handed to the
// reservation flow. Any non-empty selection qualifies; a single
// first-picked slot is a valid one-slot range once re-clicked.
func (s Selection) CanConfirm() bool { return len(s.indices) > 0 }

// Click applies one tap on slot i against the sheet the selection was
// opened on.
//
//   - Unavailable or out-of-range taps are ignored outright.
//   - First tap marks i and waits for the closing tap.
//   - Second tap proposes the inclusive span between the first pick and i
//     (same index twice is a well-defined one-slot range). The span is
//     all-or-nothing: one unavailable slot inside rejects the whole tap
//     with ErrRangeUnavailable and no state change.
//   - A tap after a confirmed range discards it and starts over at i.
func (s Selection) Click(catalog slot.Catalog, i int) (Selection, error) {
	if !catalog.Available(i) {
		return s, nil
	}

	switch s.phase {
	case PhaseFirstPicked:
		lo, hi := s.firstIndex, i
		if lo > hi {
			lo, hi = hi, lo
		}
		for j := lo; j <= hi; j++ {
			if !catalog.Available(j) {
				return s, ErrRangeUnavailable
			}
		}
		indices := make([]int, 0, hi-lo+1)
		for j := lo; j <= hi; j++ {
			indices = append(indices, j)
		}
		return Selection{phase: PhaseConfirmed, firstIndex: s.firstIndex, indices: indices}, nil

	default: // PhaseEmpty and PhaseConfirmed both start a new pick
		return Selection{phase: PhaseFirstPicked, firstIndex: i, indices: []int{i}}, nil
	}
}

// Summary is the recomputed presentation state after a mutation.
type Summary struct {
	Indices    []int
	Label      string // "start ~ end (duration)", empty when nothing is selected
	TotalPrice int64
	CanConfirm bool
}

// Summarize derives the display summary from the selection and its sheet.
// TotalPrice is the local per-slot sum; the upstream total stays
// authoritative once a reservation exists.
func (s Selection) Summarize(catalog slot.Catalog, minUnit int) Summary {
	sum := Summary{
		Indices:    s.Indices(),
		TotalPrice: catalog.PriceSum(s.indices),
		CanConfirm: s.CanConfirm(),
	}
	if len(s.indices) == 0 {
		return sum
	}

	first := s.indices[0]
	last := s.indices[len(s.indices)-1]
	start, ok1 := startMinute(catalog, first)
	end, ok2 := startMinute(catalog, last)
	if !ok1 || !ok2 {
		return sum
	}
	end += minUnit

	totalMinutes := len(s.indices) * minUnit
	sum.Label = fmt.Sprintf("%s ~ %s (%s)",
		formatMinute(start), formatMinute(end%(24*60)), formatDuration(totalMinutes))
	return sum
}

func startMinute(catalog slot.Catalog, i int) (int, bool) {
	if !catalog.InRange(i) {
		return 0, false
	}
	t := catalog[i].DisplayTime
	if len(t) != 5 || t[2] != ':' {
		return 0, false
	}
	hh := int(t[0]-'0')*10 + int(t[1]-'0')
	mm := int(t[3]-'0')*10 + int(t[4]-'0')
	return hh*60 + mm, true
}

func formatMinute(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// formatDuration renders whole hours as "2h" and half steps as "1.5h".
func formatDuration(minutes int) string {
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%.1fh", float64(minutes)/60)
}
