package commands

import (
	"context"
	"time"

	"studiobook/internal/domain/selection"
	"studiobook/internal/infra"
	"studiobook/internal/pkg/clock"
	"studiobook/internal/pkg/errs"
	"studiobook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrSheetChanged     = errs.New("slot sheet changed since last fetch")
	ErrRangeUnavailable = errs.New("selected range contains unavailable slot")
	ErrSessionFailed    = errs.New("selection session operation failed")
)

// ClickResult is the new selection state after one tap, paired with the
// catalog rows the client should repaint.
type ClickResult struct {
	Phase      string
	Indices    []int
	Label      string
	TotalPrice int64
	CanConfirm bool
	SheetHash  string
}

type SessionRepository interface {
	Upsert(ctx context.Context, s *shared.SelectionSession) error
	Find(ctx context.Context, userID uuid.UUID, roomID int64, date time.Time) (*shared.SelectionSession, error)
	Delete(ctx context.Context, userID uuid.UUID, roomID int64, date time.Time) error
}

type SelectionCommands interface {
	Click(ctx context.Context, userID uuid.UUID, roomID int64, date time.Time, index int, sheetHash string) (*ClickResult, error)
	Reset(ctx context.Context, userID uuid.UUID, roomID int64, date time.Time) error
}

type selectionUseCaseImpl struct {
	sessions       SessionRepository
	gateway        PlatformGateway
	clock          clock.Clock
	loc            *time.Location
	minUnitDefault int
}

func NewSelectionUseCase(
	sessions SessionRepository,
	gateway PlatformGateway,
	clk clock.Clock,
	loc *time.Location,
	minUnitDefault int,
) SelectionCommands {
	return &selectionUseCaseImpl{
		sessions:       sessions,
		gateway:        gateway,
		clock:          clk,
		loc:            loc,
		minUnitDefault: minUnitDefault,
	}
}

// Click resolves one tap against the catalog snapshot pinned by the
// session. sheetHash is the hash the client rendered; a click against a
// sheet the session no longer holds starts a fresh session, and a click
// against a sheet the platform no longer serves fails with
// ErrSheetChanged so the client refetches.
func (s *selectionUseCaseImpl) Click(
	ctx context.Context,
	userID uuid.UUID,
	roomID int64,
	date time.Time,
	index int,
	sheetHash string,
) (*ClickResult, error) {
	session, err := s.sessions.Find(ctx, userID, roomID, date)
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return nil, errs.Mark(err, ErrSessionFailed)
	}

	if err != nil || session.SheetHash != sheetHash {
		session, err = s.startSession(ctx, userID, roomID, date, sheetHash)
		if err != nil {
			return nil, err
		}
	}

	next, clickErr := session.State.Click(session.Catalog, index)
	if clickErr != nil {
		if errs.Is(clickErr, selection.ErrRangeUnavailable) {
			return nil, ErrRangeUnavailable
		}
		return nil, clickErr
	}

	session.State = next
	session.UpdatedAt = s.clock.Now()
	if err := s.sessions.Upsert(ctx, session); err != nil {
		return nil, errs.Mark(err, ErrSessionFailed)
	}

	summary := next.Summarize(session.Catalog, session.MinUnit)
	return &ClickResult{
		Phase:      string(next.Phase()),
		Indices:    summary.Indices,
		Label:      summary.Label,
		TotalPrice: summary.TotalPrice,
		CanConfirm: summary.CanConfirm,
		SheetHash:  session.SheetHash,
	}, nil
}

func (s *selectionUseCaseImpl) Reset(ctx context.Context, userID uuid.UUID, roomID int64, date time.Time) error {
	if err := s.sessions.Delete(ctx, userID, roomID, date); err != nil {
		return errs.Mark(err, ErrSessionFailed)
	}
	return nil
}

// startSession refetches the live sheet and opens a session on it. The
// client's hash must match the live sheet: if the sheet moved since the
// client drew it, clicking blind against a sheet the user is not seeing
// would select the wrong slots.
func (s *selectionUseCaseImpl) startSession(
	ctx context.Context,
	userID uuid.UUID,
	roomID int64,
	date time.Time,
	sheetHash string,
) (*shared.SelectionSession, error) {
	sheet, err := shared.AssembleSheet(ctx, s.gateway, roomID, date, s.minUnitDefault, s.clock.Now(), s.loc)
	if err != nil {
		return nil, err
	}
	if sheet.Hash != sheetHash {
		return nil, ErrSheetChanged
	}

	return &shared.SelectionSession{
		UserID:    userID,
		RoomID:    roomID,
		Date:      date,
		State:     selection.Empty(),
		Catalog:   sheet.Catalog,
		SheetHash: sheet.Hash,
		MinUnit:   sheet.MinUnit,
		UpdatedAt: s.clock.Now(),
	}, nil
}
