package commands

import (
	"context"
	"time"

	"studiobook/internal/infra/upstream"
)

// PlatformGateway is the write-side surface of the studio platform API.
type PlatformGateway interface {
	GetRoomSlots(ctx context.Context, roomID int64, date time.Time) ([]upstream.SlotDTO, error)
	GetPricingPolicy(ctx context.Context, roomID int64, date time.Time) (*upstream.PricingPolicyDTO, error)
	CreateReservation(ctx context.Context, roomID int64, date time.Time, times []string) (*upstream.CreatedReservationDTO, error)
	AttachProducts(ctx context.Context, reservationID int64, products []upstream.ProductQuantityDTO) error
	AttachUserInfo(ctx context.Context, reservationID int64, name, phone string, extra map[string]string) error
	ConfirmReservation(ctx context.Context, reservationID int64) (*upstream.ConfirmedReservationDTO, error)
	CancelReservation(ctx context.Context, reservationID int64) (*upstream.CancelResultDTO, error)
}
