//go:build unit || e2e

package builder

import (
	"time"

	domreservation "studiobook/internal/domain/reservation"
	reqdto "studiobook/internal/handler/dto/request"
	"studiobook/internal/usecase/queries"

	"github.com/google/uuid"
)

type DraftBuilder struct {
	ID             uuid.UUID
	ReservationID  int64
	UserID         uuid.UUID
	RoomID         int64
	PlaceID        int64
	Date           time.Time
	Times          []string
	MinUnit        int
	ServerPrice    int64
	EstimatedPrice int64
	Step           domreservation.Step
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewDraftBuilder() *DraftBuilder {
	now := time.Now()
	return &DraftBuilder{
		ID:             uuid.New(),
		ReservationID:  70001,
		UserID:         uuid.New(),
		RoomID:         12,
		PlaceID:        3,
		Date:           now.AddDate(0, 0, 14).Truncate(24 * time.Hour),
		Times:          []string{"10:00", "10:30", "11:00"},
		MinUnit:        30,
		ServerPrice:    45000,
		EstimatedPrice: 45000,
		Step:           domreservation.StepCreated,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (b *DraftBuilder) With(mutate func(*DraftBuilder)) *DraftBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *DraftBuilder) BuildDomain() *domreservation.Draft {
	return domreservation.ReconstructDraft(
		b.ID, b.ReservationID, b.UserID, b.RoomID, b.PlaceID,
		b.Date, b.Times, b.MinUnit, b.ServerPrice, b.EstimatedPrice,
		b.Step, b.CreatedAt, b.UpdatedAt,
	)
}

func (b *DraftBuilder) BuildCreateRequestDTO() reqdto.CreateDraftRequest {
	return reqdto.CreateDraftRequest{
		RoomID: b.RoomID,
		Date:   b.Date.Format("2006-01-02"),
	}
}

func (b *DraftBuilder) BuildAttachProductsRequestDTO() reqdto.AttachProductsRequest {
	return reqdto.AttachProductsRequest{
		Products: []reqdto.ProductItem{
			{ProductID: 501, Quantity: 2},
		},
	}
}

func (b *DraftBuilder) BuildAttachReserverRequestDTO() reqdto.AttachReserverRequest {
	return reqdto.AttachReserverRequest{
		Name:  "Kim Jiwoo",
		Phone: "01012345678",
	}
}

func (b *DraftBuilder) BuildViewQuery() *queries.DraftView {
	return &queries.DraftView{
		ID:             b.ID,
		ReservationID:  b.ReservationID,
		RoomID:         b.RoomID,
		PlaceID:        b.PlaceID,
		Date:           b.Date.Format("2006-01-02"),
		Times:          b.Times,
		MinUnit:        b.MinUnit,
		TotalPrice:     b.ServerPrice,
		EstimatedPrice: b.EstimatedPrice,
		Step:           string(b.Step),
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func (b *DraftBuilder) BuildListItemQuery() *queries.DraftListItem {
	return &queries.DraftListItem{
		ID:            b.ID,
		ReservationID: b.ReservationID,
		RoomID:        b.RoomID,
		Date:          b.Date.Format("2006-01-02"),
		Times:         b.Times,
		TotalPrice:    b.ServerPrice,
		Step:          string(b.Step),
		CreatedAt:     b.CreatedAt,
	}
}

func (b *DraftBuilder) BuildCancelQuoteQuery(feePercent int) *queries.CancelQuoteView {
	fee := b.ServerPrice * int64(feePercent) / 100
	return &queries.CancelQuoteView{
		ReservationID: b.ReservationID,
		TotalPrice:    b.ServerPrice,
		Fee:           fee,
		Refund:        b.ServerPrice - fee,
		FeePercent:    feePercent,
		PolicyText:    "Cancellation fee applies per policy tier",
		CanCancel:     true,
	}
}
