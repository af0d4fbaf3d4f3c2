package queries

import (
	"time"

	"github.com/google/uuid"
)

// SlotView is one cell of the booking sheet as the client renders it.
type SlotView struct {
	Time      string `json:"time"` // HH:mm
	Available bool   `json:"available"`
	Price     int64  `json:"price"`
	Selected  bool   `json:"selected"`
}

// SheetView is one room's slot sheet for one day, with the user's
// current selection folded in when one exists.
type SheetView struct {
	RoomID    int64          `json:"room_id"`
	Date      string         `json:"date"` // YYYY-MM-DD
	MinUnit   int            `json:"min_unit"`
	SheetHash string         `json:"sheet_hash"`
	Slots     []SlotView     `json:"slots"`
	Selection *SelectionView `json:"selection,omitempty"`
}

// SelectionView is the click-twice selection state of a sheet.
type SelectionView struct {
	Phase      string `json:"phase"`
	Indices    []int  `json:"indices"`
	Label      string `json:"label,omitempty"` // "09:00 ~ 10:30 (1.5h)"
	TotalPrice int64  `json:"total_price"`
	CanConfirm bool   `json:"can_confirm"`
}

// DraftView is the gateway's record of an in-flight reservation merged
// with what the platform currently reports for it.
type DraftView struct {
	ID             uuid.UUID `json:"id"`
	ReservationID  int64     `json:"reservation_id"`
	RoomID         int64     `json:"room_id"`
	PlaceID        int64     `json:"place_id"`
	Date           string    `json:"date"` // YYYY-MM-DD
	Times          []string  `json:"times"`
	MinUnit        int       `json:"min_unit"`
	TotalPrice     int64     `json:"total_price"`
	EstimatedPrice int64     `json:"estimated_price"`
	Step           string    `json:"step"`
	PlatformStatus *string   `json:"platform_status,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DraftListItem is the trimmed draft row for list screens.
type DraftListItem struct {
	ID            uuid.UUID `json:"id"`
	ReservationID int64     `json:"reservation_id"`
	RoomID        int64     `json:"room_id"`
	Date          string    `json:"date"`
	Times         []string  `json:"times"`
	TotalPrice    int64     `json:"total_price"`
	Step          string    `json:"step"`
	CreatedAt     time.Time `json:"created_at"`
}

// CancelQuoteView is the tiered cancellation fee for a reservation at
// the moment of the query.
type CancelQuoteView struct {
	ReservationID int64  `json:"reservation_id"`
	TotalPrice    int64  `json:"total_price"`
	Fee           int64  `json:"fee"`
	Refund        int64  `json:"refund"`
	FeePercent    int    `json:"fee_percent"`
	PolicyText    string `json:"policy_text"`
	CanCancel     bool   `json:"can_cancel"`
}
