package upstream

// Platform API payloads. The platform serializes with plenty of nullable
// fields; every optional field is an explicit pointer rather than a
// catch-all map.

type slotSheetResponse struct {
	Slots []SlotDTO `json:"slots"`
}

type SlotDTO struct {
	SlotTime string  `json:"slotTime"` // HH:mm:ss
	Status   *string `json:"status"`   // AVAILABLE | other | null
}

type PricingPolicyDTO struct {
	MinUnitMinutes *int            `json:"minUnitMinutes"`
	DefaultPrice   *int64          `json:"defaultPrice"`
	TimeSlotPrices []TimePriceDTO  `json:"timeSlotPrices"`
	RangePrices    []RangePriceDTO `json:"rangePrices"`
}

type TimePriceDTO struct {
	Time  string `json:"time"` // HH:mm
	Price int64  `json:"price"`
}

type RangePriceDTO struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Price int64  `json:"price"`
}

type createReservationRequest struct {
	RoomID        int64    `json:"roomId"`
	Date          string   `json:"date"` // YYYY-MM-DD
	SelectedTimes []string `json:"selectedTimes"`
}

type CreatedReservationDTO struct {
	ReservationID int64  `json:"reservationId"`
	PlaceID       *int64 `json:"placeId"`
	TotalPrice    *int64 `json:"totalPrice"`
}

type attachProductsRequest struct {
	Products []ProductQuantityDTO `json:"products"`
}

type ProductQuantityDTO struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type attachUserInfoRequest struct {
	Name        string            `json:"name"`
	Phone       string            `json:"phone"`
	ExtraFields map[string]string `json:"extraFields,omitempty"`
}

type ConfirmedReservationDTO struct {
	TotalPrice int64 `json:"totalPrice"`
}

type ReservationDetailDTO struct {
	ReservationID   int64    `json:"reservationId"`
	RoomID          *int64   `json:"roomId"`
	PlaceID         *int64   `json:"placeId"`
	Status          *string  `json:"status"`
	TotalPrice      *int64   `json:"totalPrice"`
	ReservationDate *string  `json:"reservationDate"` // YYYY-MM-DD
	CreatedAt       *string  `json:"createdAt"`       // RFC3339
	SelectedTimes   []string `json:"selectedTimes"`
}

type CancelResultDTO struct {
	Message string `json:"message"`
}

type apiErrorResponse struct {
	Message *string `json:"message"`
	Code    *string `json:"code"`
}
