package response

import (
	"time"

	"studiobook/internal/usecase/commands"
	"studiobook/internal/usecase/queries"

	"github.com/google/uuid"
)

type DraftResponse struct {
	ID             uuid.UUID `json:"id"`
	ReservationID  int64     `json:"reservationId"`
	RoomID         int64     `json:"roomId"`
	PlaceID        int64     `json:"placeId"`
	Date           string    `json:"date"`
	Times          []string  `json:"times"`
	MinUnit        int       `json:"minUnit"`
	TotalPrice     int64     `json:"totalPrice"`
	EstimatedPrice int64     `json:"estimatedPrice"`
	Step           string    `json:"step"`
	PlatformStatus *string   `json:"platformStatus,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type DraftListItemResponse struct {
	ID            uuid.UUID `json:"id"`
	ReservationID int64     `json:"reservationId"`
	RoomID        int64     `json:"roomId"`
	Date          string    `json:"date"`
	Times         []string  `json:"times"`
	TotalPrice    int64     `json:"totalPrice"`
	Step          string    `json:"step"`
	CreatedAt     time.Time `json:"createdAt"`
}

type CancelQuoteResponse struct {
	ReservationID int64  `json:"reservationId"`
	TotalPrice    int64  `json:"totalPrice"`
	Fee           int64  `json:"fee"`
	Refund        int64  `json:"refund"`
	FeePercent    int    `json:"feePercent"`
	PolicyText    string `json:"policyText"`
	CanCancel     bool   `json:"canCancel"`
}

type CancelResponse struct {
	Draft      *DraftResponse `json:"draft"`
	Fee        int64          `json:"fee"`
	Refund     int64          `json:"refund"`
	FeePercent int            `json:"feePercent"`
	Message    string         `json:"message"`
}

func FromDraftView(v *queries.DraftView) *DraftResponse {
	return &DraftResponse{
		ID:             v.ID,
		ReservationID:  v.ReservationID,
		RoomID:         v.RoomID,
		PlaceID:        v.PlaceID,
		Date:           v.Date,
		Times:          v.Times,
		MinUnit:        v.MinUnit,
		TotalPrice:     v.TotalPrice,
		EstimatedPrice: v.EstimatedPrice,
		Step:           v.Step,
		PlatformStatus: v.PlatformStatus,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

func FromDraftListItem(v *queries.DraftListItem) *DraftListItemResponse {
	return &DraftListItemResponse{
		ID:            v.ID,
		ReservationID: v.ReservationID,
		RoomID:        v.RoomID,
		Date:          v.Date,
		Times:         v.Times,
		TotalPrice:    v.TotalPrice,
		Step:          v.Step,
		CreatedAt:     v.CreatedAt,
	}
}

func FromCancelQuoteView(v *queries.CancelQuoteView) *CancelQuoteResponse {
	return &CancelQuoteResponse{
		ReservationID: v.ReservationID,
		TotalPrice:    v.TotalPrice,
		Fee:           v.Fee,
		Refund:        v.Refund,
		FeePercent:    v.FeePercent,
		PolicyText:    v.PolicyText,
		CanCancel:     v.CanCancel,
	}
}

func FromCancelResult(r *commands.CancelResult) *CancelResponse {
	return &CancelResponse{
		Draft:      FromDraftView(r.Draft),
		Fee:        r.Fee,
		Refund:     r.Refund,
		FeePercent: r.FeePercent,
		Message:    r.Message,
	}
}
