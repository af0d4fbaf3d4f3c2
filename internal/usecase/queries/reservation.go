package queries

import (
	"context"
	"time"

	"studiobook/internal/domain/cancelpolicy"
	"studiobook/internal/domain/reservation"
	"studiobook/internal/infra"
	"studiobook/internal/infra/upstream"
	"studiobook/internal/pkg/clock"
	"studiobook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrDraftNotFound = errs.New("reservation draft not found")

type DraftQueries interface {
	GetByID(ctx context.Context, userID, id uuid.UUID) (*DraftView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*DraftListItem, error)
	CancelQuote(ctx context.Context, userID, id uuid.UUID) (*CancelQuoteView, error)
}

// DraftReader is the read side of the draft store.
type DraftReader interface {
	FindByID(ctx context.Context, id, userID uuid.UUID) (*reservation.Draft, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int32) ([]*reservation.Draft, error)
}

// ReservationSource reads reservation detail from the platform.
type ReservationSource interface {
	GetReservation(ctx context.Context, reservationID int64) (*upstream.ReservationDetailDTO, error)
}

type draftQueriesImpl struct {
	drafts DraftReader
	source ReservationSource
	clock  clock.Clock
	loc    *time.Location
}

func NewDraftQueries(drafts DraftReader, source ReservationSource, clk clock.Clock, loc *time.Location) DraftQueries {
	return &draftQueriesImpl{drafts: drafts, source: source, clock: clk, loc: loc}
}

// GetByID merges the local draft with the platform's current view of
// the reservation. The platform status is best effort: a platform
// outage degrades the detail screen, it does not break it.
func (q *draftQueriesImpl) GetByID(ctx context.Context, userID, id uuid.UUID) (*DraftView, error) {
	draft, err := q.drafts.FindByID(ctx, id, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}

	view := draftToView(draft)
	if detail, detailErr := q.source.GetReservation(ctx, draft.ReservationID()); detailErr == nil {
		view.PlatformStatus = detail.Status
		if detail.TotalPrice != nil && *detail.TotalPrice != view.TotalPrice {
			view.TotalPrice = *detail.TotalPrice
		}
	}
	return view, nil
}

func (q *draftQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*DraftListItem, error) {
	if limit <= 0 {
		limit = 50
	}
	drafts, err := q.drafts.ListByUser(ctx, userID, int32(limit))
	if err != nil {
		return nil, err
	}

	items := make([]*DraftListItem, len(drafts))
	for i, d := range drafts {
		items[i] = &DraftListItem{
			ID:            d.ID(),
			ReservationID: d.ReservationID(),
			RoomID:        d.RoomID(),
			Date:          d.Date().Format("2006-01-02"),
			Times:         d.Times(),
			TotalPrice:    d.ServerPrice(),
			Step:          string(d.Step()),
			CreatedAt:     d.CreatedAt(),
		}
	}
	return items, nil
}

// CancelQuote prices a cancellation at this moment without performing
// it. The same computation runs again inside the cancel command, so the
// quoted figure can only improve or match what the user ends up paying
// within the same fee tier.
func (q *draftQueriesImpl) CancelQuote(ctx context.Context, userID, id uuid.UUID) (*CancelQuoteView, error) {
	draft, err := q.drafts.FindByID(ctx, id, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}

	quote := cancelpolicy.Compute(draft.ServerPrice(), draft.CreatedAt(), draft.Date(), q.clock.Now(), q.loc)
	return &CancelQuoteView{
		ReservationID: draft.ReservationID(),
		TotalPrice:    draft.ServerPrice(),
		Fee:           quote.Fee,
		Refund:        quote.Refund,
		FeePercent:    quote.FeePercent,
		PolicyText:    quote.PolicyText,
		CanCancel:     quote.CanCancel,
	}, nil
}

func draftToView(d *reservation.Draft) *DraftView {
	return &DraftView{
		ID:             d.ID(),
		ReservationID:  d.ReservationID(),
		RoomID:         d.RoomID(),
		PlaceID:        d.PlaceID(),
		Date:           d.Date().Format("2006-01-02"),
		Times:          d.Times(),
		MinUnit:        d.MinUnit(),
		TotalPrice:     d.ServerPrice(),
		EstimatedPrice: d.EstimatedPrice(),
		Step:           string(d.Step()),
		CreatedAt:      d.CreatedAt(),
		UpdatedAt:      d.UpdatedAt(),
	}
}
