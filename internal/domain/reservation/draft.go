package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrStepOrder     = errors.New("reservation step out of order")
	ErrAlreadyClosed = errors.New("reservation already confirmed or cancelled")
	ErrNoTimes       = errors.New("reservation needs at least one time slot")
)

// Step tracks how far a draft has progressed through the commit flow.
// The flow is strictly sequential; a failed step leaves the draft where
// it was so the user can retry that step.
type Step string

const (
	StepCreated          Step = "created"
	StepProductsAttached Step = "products_attached"
	StepReserverAttached Step = "reserver_attached"
	StepConfirmed        Step = "confirmed"
	StepCancelled        Step = "cancelled"
)

func (s Step) IsValid() bool {
	switch s {
	case StepCreated, StepProductsAttached, StepReserverAttached, StepConfirmed, StepCancelled:
		return true
	default:
		return false
	}
}

// Draft mirrors the in-flight reservation the mobile client carries
// between booking screens. The platform reservation is the system of
// record; the draft pins the slot range, the step reached, and both
// price figures (the locally summed estimate and the server total).
type Draft struct {
	id             uuid.UUID
	reservationID  int64 // platform-side id
	userID         uuid.UUID
	roomID         int64
	placeID        int64
	date           time.Time
	times          []string // HH:mm, ascending
	minUnit        int
	serverPrice    int64
	estimatedPrice int64
	step           Step
	createdAt      time.Time
	updatedAt      time.Time
}

// NewDraft records a reservation freshly created upstream.
// serverPrice is the platform's figure and stays authoritative;
// estimatedPrice is the local per-slot sum kept for reconciliation.
func NewDraft(
	reservationID int64,
	userID uuid.UUID,
	roomID, placeID int64,
	date time.Time,
	times []string,
	minUnit int,
	serverPrice, estimatedPrice int64,
	now time.Time,
) (*Draft, error) {
	if len(times) == 0 {
		return nil, ErrNoTimes
	}
	return &Draft{
		id:             uuid.New(),
		reservationID:  reservationID,
		userID:         userID,
		roomID:         roomID,
		placeID:        placeID,
		date:           date,
		times:          append([]string(nil), times...),
		minUnit:        minUnit,
		serverPrice:    serverPrice,
		estimatedPrice: estimatedPrice,
		step:           StepCreated,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructDraft(
	id uuid.UUID,
	reservationID int64,
	userID uuid.UUID,
	roomID, placeID int64,
	date time.Time,
	times []string,
	minUnit int,
	serverPrice, estimatedPrice int64,
	step Step,
	createdAt, updatedAt time.Time,
) *Draft {
	return &Draft{
		id:             id,
		reservationID:  reservationID,
		userID:         userID,
		roomID:         roomID,
		placeID:        placeID,
		date:           date,
		times:          append([]string(nil), times...),
		minUnit:        minUnit,
		serverPrice:    serverPrice,
		estimatedPrice: estimatedPrice,
		step:           step,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// AttachProducts is only legal straight after creation: the client's
// product screen comes before the reserver screen.
func (d *Draft) AttachProducts(now time.Time) error {
	if d.step != StepCreated {
		return ErrStepOrder
	}
	d.step = StepProductsAttached
	d.updatedAt = now
	return nil
}

// AttachReserver accepts drafts with or without attached products, since
// the product step is optional.
func (d *Draft) AttachReserver(now time.Time) error {
	if d.step != StepCreated && d.step != StepProductsAttached {
		return ErrStepOrder
	}
	d.step = StepReserverAttached
	d.updatedAt = now
	return nil
}

// Confirm finalizes the draft with the platform's authoritative total.
func (d *Draft) Confirm(serverPrice int64, now time.Time) error {
	if d.step != StepReserverAttached {
		return ErrStepOrder
	}
	d.serverPrice = serverPrice
	d.step = StepConfirmed
	d.updatedAt = now
	return nil
}

func (d *Draft) Cancel(now time.Time) error {
	if d.step == StepCancelled {
		return ErrAlreadyClosed
	}
	d.step = StepCancelled
	d.updatedAt = now
	return nil
}

func (d *Draft) IsClosed() bool {
	return d.step == StepConfirmed || d.step == StepCancelled
}

// PriceMismatch reports whether the local estimate disagrees with the
// server total. Logged as a reconciliation signal, never treated as an
// error; the server figure wins.
func (d *Draft) PriceMismatch() bool {
	return d.estimatedPrice != d.serverPrice
}

func (d *Draft) ID() uuid.UUID         { return d.id }
func (d *Draft) ReservationID() int64  { return d.reservationID }
func (d *Draft) UserID() uuid.UUID     { return d.userID }
func (d *Draft) RoomID() int64         { return d.roomID }
func (d *Draft) PlaceID() int64        { return d.placeID }
func (d *Draft) Date() time.Time       { return d.date }
func (d *Draft) MinUnit() int          { return d.minUnit }
func (d *Draft) ServerPrice() int64    { return d.serverPrice }
func (d *Draft) EstimatedPrice() int64 { return d.estimatedPrice }
func (d *Draft) Step() Step            { return d.step }
func (d *Draft) CreatedAt() time.Time  { return d.createdAt }
func (d *Draft) UpdatedAt() time.Time  { return d.updatedAt }

func (d *Draft) Times() []string {
	return append([]string(nil), d.times...)
}
