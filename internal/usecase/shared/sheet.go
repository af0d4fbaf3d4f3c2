package shared

import (
	"context"
	"time"

	"studiobook/internal/domain/slot"
	"studiobook/internal/infra/upstream"
	"studiobook/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

var ErrSheetFetchFailed = errs.New("failed to fetch slot sheet")

// SheetSource is the read surface of the platform API needed to build
// one day's slot sheet.
type SheetSource interface {
	GetRoomSlots(ctx context.Context, roomID int64, date time.Time) ([]upstream.SlotDTO, error)
	GetPricingPolicy(ctx context.Context, roomID int64, date time.Time) (*upstream.PricingPolicyDTO, error)
}

// Sheet is an assembled slot catalog plus the pricing facts that shaped it.
type Sheet struct {
	Catalog slot.Catalog
	MinUnit int
	Hash    string
}

// AssembleSheet fetches slots and pricing concurrently and builds the
// catalog. minUnitFallback applies when the pricing policy does not
// carry a unit of its own.
func AssembleSheet(
	ctx context.Context,
	source SheetSource,
	roomID int64,
	date time.Time,
	minUnitFallback int,
	now time.Time,
	loc *time.Location,
) (*Sheet, error) {
	var (
		slots   []upstream.SlotDTO
		pricing *upstream.PricingPolicyDTO
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		slots, err = source.GetRoomSlots(gctx, roomID, date)
		return err
	})
	g.Go(func() error {
		var err error
		pricing, err = source.GetPricingPolicy(gctx, roomID, date)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errs.Mark(err, ErrSheetFetchFailed)
	}

	minUnit := minUnitFallback
	prices := slot.PriceTable{ByTime: map[string]int64{}}
	if pricing != nil {
		if pricing.MinUnitMinutes != nil && *pricing.MinUnitMinutes > 0 {
			minUnit = *pricing.MinUnitMinutes
		}
		if pricing.DefaultPrice != nil {
			prices.Default = *pricing.DefaultPrice
		}
		for _, tp := range pricing.TimeSlotPrices {
			prices.ByTime[tp.Time] = tp.Price
		}
		for _, rp := range pricing.RangePrices {
			prices.Ranges = append(prices.Ranges, slot.RangePrice{
				From:  rp.From,
				To:    rp.To,
				Price: rp.Price,
			})
		}
	}

	raw := make([]slot.RawSlot, len(slots))
	for i, s := range slots {
		raw[i] = slot.RawSlot{Time: s.SlotTime, Status: s.Status}
	}

	catalog := slot.Build(raw, prices, minUnit, date, now, loc)
	return &Sheet{
		Catalog: catalog,
		MinUnit: minUnit,
		Hash:    catalog.Hash(),
	}, nil
}
