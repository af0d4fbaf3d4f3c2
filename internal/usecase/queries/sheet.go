package queries

import (
	"context"
	"time"

	"studiobook/internal/infra"
	"studiobook/internal/pkg/clock"
	"studiobook/internal/pkg/errs"
	"studiobook/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrSheetUnavailable = errs.New("slot sheet unavailable")

type SheetQueries interface {
	DaySheet(ctx context.Context, userID uuid.UUID, roomID int64, date time.Time) (*SheetView, error)
}

// SessionReader is the read side of the selection session store.
type SessionReader interface {
	Find(ctx context.Context, userID uuid.UUID, roomID int64, date time.Time) (*shared.SelectionSession, error)
}

type sheetQueriesImpl struct {
	source         shared.SheetSource
	sessions       SessionReader
	clock          clock.Clock
	loc            *time.Location
	minUnitDefault int
}

func NewSheetQueries(
	source shared.SheetSource,
	sessions SessionReader,
	clk clock.Clock,
	loc *time.Location,
	minUnitDefault int,
) SheetQueries {
	return &sheetQueriesImpl{
		source:         source,
		sessions:       sessions,
		clock:          clk,
		loc:            loc,
		minUnitDefault: minUnitDefault,
	}
}

// DaySheet builds the sheet fresh from the platform on every call. A
// stored selection is folded in only while its snapshot hash still
// matches the live sheet; once the sheet drifts the selection is shown
// as gone and the next click starts over.
func (q *sheetQueriesImpl) DaySheet(ctx context.Context, userID uuid.UUID, roomID int64, date time.Time) (*SheetView, error) {
	sheet, err := shared.AssembleSheet(ctx, q.source, roomID, date, q.minUnitDefault, q.clock.Now(), q.loc)
	if err != nil {
		return nil, errs.Mark(err, ErrSheetUnavailable)
	}

	view := &SheetView{
		RoomID:    roomID,
		Date:      date.In(q.loc).Format("2006-01-02"),
		MinUnit:   sheet.MinUnit,
		SheetHash: sheet.Hash,
		Slots:     make([]SlotView, len(sheet.Catalog)),
	}

	catalog := sheet.Catalog
	session, err := q.sessions.Find(ctx, userID, roomID, date)
	switch {
	case err == nil && session.SheetHash == sheet.Hash && !session.State.IsEmpty():
		catalog = catalog.WithSelection(session.State.Indices())
		summary := session.State.Summarize(catalog, sheet.MinUnit)
		view.Selection = &SelectionView{
			Phase:      string(session.State.Phase()),
			Indices:    summary.Indices,
			Label:      summary.Label,
			TotalPrice: summary.TotalPrice,
			CanConfirm: summary.CanConfirm,
		}
	case err != nil && !infra.IsKind(err, infra.KindNotFound):
		return nil, err
	}

	for i, item := range catalog {
		view.Slots[i] = SlotView{
			Time:      item.DisplayTime,
			Available: item.Available,
			Price:     item.Price,
			Selected:  item.Selected,
		}
	}
	return view, nil
}
