package shared

import (
	"time"

	"studiobook/internal/domain/selection"
	"studiobook/internal/domain/slot"

	"github.com/google/uuid"
)

// SelectionSession is the persisted booking-screen state for one user,
// room and date. It pins the catalog snapshot the user is clicking
// against; SheetHash detects when the platform sheet drifted away from
// that snapshot.
type SelectionSession struct {
	UserID    uuid.UUID
	RoomID    int64
	Date      time.Time
	State     selection.Selection
	Catalog   slot.Catalog
	SheetHash string
	MinUnit   int
	UpdatedAt time.Time
}

type IdempotencyRecord struct {
	Key           uuid.UUID
	UserID        uuid.UUID
	Status        string
	RequestHash   string
	ResultDraftID *uuid.UUID
	ExpiresAt     time.Time
}
