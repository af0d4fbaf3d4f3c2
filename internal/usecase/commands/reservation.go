package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"studiobook/internal/domain/reservation"
	reqdto "studiobook/internal/handler/dto/request"
	"studiobook/internal/infra"
	"studiobook/internal/infra/db"
	"studiobook/internal/infra/upstream"
	"studiobook/internal/pkg/clock"
	"studiobook/internal/pkg/errs"
	"studiobook/internal/usecase/queries"
	"studiobook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNothingSelected         = errs.New("no confirmed slot selection")
	ErrDraftNotFound           = errs.New("reservation draft not found")
	ErrStepOrder               = errs.New("reservation step out of order")
	ErrDraftClosed             = errs.New("reservation already confirmed or cancelled")
	ErrInvalidReserver         = errs.New("invalid reserver info")
	ErrInvalidProducts         = errs.New("invalid product selection")
	ErrPlatformRejected        = errs.New("platform rejected the request")
	ErrPlatformUnavailable     = errs.New("platform unavailable")
	ErrDuplicateRequest        = errs.New("request differs from original for idempotency key")
	ErrIdempotencyInProgress   = errs.New("idempotency in progress")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateDraftResult struct {
	Draft      *queries.DraftView
	IsReplayed bool
}

// CancelResult carries the fee actually charged plus the platform's
// cancellation message.
type CancelResult struct {
	Draft      *queries.DraftView
	Fee        int64
	Refund     int64
	FeePercent int
	Message    string
}

type DraftRepository interface {
	Create(ctx context.Context, tx db.DBTX, d *reservation.Draft) error
	Update(ctx context.Context, tx db.DBTX, d *reservation.Draft) error
	FindByID(ctx context.Context, id, userID uuid.UUID) (*reservation.Draft, error)
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error)
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, responseBodyHash string, resultDraftID uuid.UUID) error
	Delete(ctx context.Context, key, userID uuid.UUID) error
}

type ReservationCommands interface {
	CreateDraft(ctx context.Context, req reqdto.CreateDraftRequest, userID, idempotencyKey uuid.UUID) (*CreateDraftResult, error)
	AttachProducts(ctx context.Context, draftID, userID uuid.UUID, req reqdto.AttachProductsRequest) (*queries.DraftView, error)
	AttachReserver(ctx context.Context, draftID, userID uuid.UUID, req reqdto.AttachReserverRequest) (*queries.DraftView, error)
	Confirm(ctx context.Context, draftID, userID uuid.UUID) (*queries.DraftView, error)
	Cancel(ctx context.Context, draftID, userID uuid.UUID) (*CancelResult, error)
}

type reservationUseCaseImpl struct {
	drafts         DraftRepository
	sessions       SessionRepository
	idempotency    IdempotencyRepository
	gateway        PlatformGateway
	draftQueries   queries.DraftQueries
	db             *pgxpool.Pool
	clock          clock.Clock
	loc            *time.Location
	idempotencyTTL time.Duration
}

func NewReservationUseCase(
	drafts DraftRepository,
	sessions SessionRepository,
	idempotency IdempotencyRepository,
	gateway PlatformGateway,
	draftQueries queries.DraftQueries,
	pool *pgxpool.Pool,
	clk clock.Clock,
	loc *time.Location,
	idempotencyTTL time.Duration,
) ReservationCommands {
	return &reservationUseCaseImpl{
		drafts:         drafts,
		sessions:       sessions,
		idempotency:    idempotency,
		gateway:        gateway,
		draftQueries:   draftQueries,
		db:             pool,
		clock:          clk,
		loc:            loc,
		idempotencyTTL: idempotencyTTL,
	}
}

// CreateDraft turns the user's confirmed selection into a platform
// reservation and a local draft. The Idempotency-Key makes retries safe:
// a replayed key returns the original draft instead of booking twice.
func (r *reservationUseCaseImpl) CreateDraft(
	ctx context.Context,
	req reqdto.CreateDraftRequest,
	userID, idempotencyKey uuid.UUID,
) (*CreateDraftResult, error) {
	requestHash := calculateRequestHash(req)
	expiresAt := r.clock.Now().Add(r.idempotencyTTL)

	replayed, err := r.handleIdempotency(ctx, idempotencyKey, userID, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return &CreateDraftResult{Draft: replayed, IsReplayed: true}, nil
	}

	view, err := r.createNewDraft(ctx, req, userID, idempotencyKey)
	if err != nil {
		return nil, err
	}
	return &CreateDraftResult{Draft: view, IsReplayed: false}, nil
}

func (r *reservationUseCaseImpl) handleIdempotency(
	ctx context.Context,
	idempotencyKey, userID uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (*queries.DraftView, error) {
	inserted, err := r.idempotency.TryInsert(ctx, idempotencyKey, userID, "POST /reservations", requestHash, expiresAt)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if inserted {
		// fresh key, proceed with creation
		return nil, nil
	}

	existing, err := r.idempotency.Get(ctx, idempotencyKey, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	switch existing.Status {
	case "completed":
		if existing.ResultDraftID != nil {
			return r.draftQueries.GetByID(ctx, userID, *existing.ResultDraftID)
		}
		return nil, errs.New("completed request missing result draft ID")

	case "processing":
		if existing.RequestHash != requestHash {
			return nil, ErrDuplicateRequest
		}
		return nil, ErrIdempotencyInProgress

	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (r *reservationUseCaseImpl) createNewDraft(
	ctx context.Context,
	req reqdto.CreateDraftRequest,
	userID, idempotencyKey uuid.UUID,
) (view *queries.DraftView, err error) {
	// The caller claimed the key just before this call. Until the claim
	// is marked completed, any failure releases it so a retry with the
	// same key is not stuck behind a dead processing row until TTL.
	keyCompleted := false
	defer func() {
		if err == nil || keyCompleted {
			return
		}
		if delErr := r.idempotency.Delete(ctx, idempotencyKey, userID); delErr != nil {
			slog.Warn("failed to release idempotency key after create failure",
				"idempotency_key", idempotencyKey, "error", delErr)
		}
	}()

	date, err := req.ParseDate(r.loc)
	if err != nil {
		return nil, errs.Mark(err, ErrNothingSelected)
	}

	session, err := r.sessions.Find(ctx, userID, req.RoomID, date)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrNothingSelected
		}
		return nil, errs.Mark(err, ErrSessionFailed)
	}
	if !session.State.CanConfirm() {
		return nil, ErrNothingSelected
	}

	indices := session.State.Indices()
	times := session.Catalog.Times(indices)
	estimated := session.Catalog.PriceSum(indices)

	created, err := r.gateway.CreateReservation(ctx, req.RoomID, date, times)
	if err != nil {
		return nil, mapGatewayErr(err)
	}

	serverPrice := estimated
	if created.TotalPrice != nil {
		serverPrice = *created.TotalPrice
	}
	var placeID int64
	if created.PlaceID != nil {
		placeID = *created.PlaceID
	}

	now := r.clock.Now()
	draft, err := reservation.NewDraft(
		created.ReservationID, userID, req.RoomID, placeID,
		date, times, session.MinUnit, serverPrice, estimated, now,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrNothingSelected)
	}

	if draft.PriceMismatch() {
		slog.Warn("estimated price differs from platform total",
			"reservation_id", draft.ReservationID(),
			"estimated", estimated,
			"server", serverPrice)
	}

	if err := r.persistNewDraft(ctx, draft, idempotencyKey, userID); err != nil {
		return nil, err
	}
	keyCompleted = true

	// The selection is consumed by the reservation; failure to clear it
	// only leaves a stale session behind.
	if err := r.sessions.Delete(ctx, userID, req.RoomID, date); err != nil {
		slog.Warn("failed to clear selection session after create", "error", err)
	}

	return r.draftQueries.GetByID(ctx, userID, draft.ID())
}

func (r *reservationUseCaseImpl) persistNewDraft(
	ctx context.Context,
	draft *reservation.Draft,
	idempotencyKey, userID uuid.UUID,
) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	if err := r.drafts.Create(ctx, tx, draft); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	bodyHash := calculateIDHash(draft.ID())
	if err := r.idempotency.UpdateStatusCompleted(ctx, tx, idempotencyKey, userID, bodyHash, draft.ID()); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

// AttachProducts forwards the add-on products to the platform and
// advances the draft. The platform call comes after the step check so
// an out-of-order request never reaches the platform.
func (r *reservationUseCaseImpl) AttachProducts(
	ctx context.Context,
	draftID, userID uuid.UUID,
	req reqdto.AttachProductsRequest,
) (*queries.DraftView, error) {
	products, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidProducts)
	}

	draft, err := r.findDraft(ctx, draftID, userID)
	if err != nil {
		return nil, err
	}
	if err := draft.AttachProducts(r.clock.Now()); err != nil {
		return nil, mapStepErr(err)
	}

	dtos := make([]upstream.ProductQuantityDTO, len(products))
	for i, p := range products {
		dtos[i] = upstream.ProductQuantityDTO{ProductID: p.ProductID, Quantity: p.Quantity}
	}
	if err := r.gateway.AttachProducts(ctx, draft.ReservationID(), dtos); err != nil {
		return nil, mapGatewayErr(err)
	}

	return r.saveAndView(ctx, draft, userID)
}

func (r *reservationUseCaseImpl) AttachReserver(
	ctx context.Context,
	draftID, userID uuid.UUID,
	req reqdto.AttachReserverRequest,
) (*queries.DraftView, error) {
	reserver, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidReserver)
	}

	draft, err := r.findDraft(ctx, draftID, userID)
	if err != nil {
		return nil, err
	}
	if err := draft.AttachReserver(r.clock.Now()); err != nil {
		return nil, mapStepErr(err)
	}

	if err := r.gateway.AttachUserInfo(ctx, draft.ReservationID(),
		reserver.Name(), reserver.Phone().String(), reserver.Extra()); err != nil {
		return nil, mapGatewayErr(err)
	}

	return r.saveAndView(ctx, draft, userID)
}

// Confirm finalizes the reservation on the platform and records its
// authoritative total on the draft.
func (r *reservationUseCaseImpl) Confirm(ctx context.Context, draftID, userID uuid.UUID) (*queries.DraftView, error) {
	draft, err := r.findDraft(ctx, draftID, userID)
	if err != nil {
		return nil, err
	}
	if draft.Step() != reservation.StepReserverAttached {
		return nil, mapStepErr(reservation.ErrStepOrder)
	}

	confirmed, err := r.gateway.ConfirmReservation(ctx, draft.ReservationID())
	if err != nil {
		return nil, mapGatewayErr(err)
	}

	if err := draft.Confirm(confirmed.TotalPrice, r.clock.Now()); err != nil {
		return nil, mapStepErr(err)
	}
	if draft.PriceMismatch() {
		slog.Warn("estimated price differs from confirmed total",
			"reservation_id", draft.ReservationID(),
			"estimated", draft.EstimatedPrice(),
			"server", draft.ServerPrice())
	}

	return r.saveAndView(ctx, draft, userID)
}

// Cancel cancels on the platform and closes the draft. The fee in the
// result is computed at cancellation time with the same policy the
// quote endpoint uses.
func (r *reservationUseCaseImpl) Cancel(ctx context.Context, draftID, userID uuid.UUID) (*CancelResult, error) {
	draft, err := r.findDraft(ctx, draftID, userID)
	if err != nil {
		return nil, err
	}
	// An already-cancelled draft is rejected here; the platform never
	// sees a second cancel for it. Confirmed drafts stay cancellable.
	if draft.Step() == reservation.StepCancelled {
		return nil, ErrDraftClosed
	}

	quote, err := r.draftQueries.CancelQuote(ctx, userID, draftID)
	if err != nil {
		if errs.Is(err, queries.ErrDraftNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}
	if !quote.CanCancel {
		return nil, ErrPlatformRejected
	}

	result, err := r.gateway.CancelReservation(ctx, draft.ReservationID())
	if err != nil {
		return nil, mapGatewayErr(err)
	}

	if err := draft.Cancel(r.clock.Now()); err != nil {
		return nil, mapStepErr(err)
	}

	view, err := r.saveAndView(ctx, draft, userID)
	if err != nil {
		return nil, err
	}
	return &CancelResult{
		Draft:      view,
		Fee:        quote.Fee,
		Refund:     quote.Refund,
		FeePercent: quote.FeePercent,
		Message:    result.Message,
	}, nil
}

func (r *reservationUseCaseImpl) findDraft(ctx context.Context, draftID, userID uuid.UUID) (*reservation.Draft, error) {
	draft, err := r.drafts.FindByID(ctx, draftID, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return draft, nil
}

func (r *reservationUseCaseImpl) saveAndView(ctx context.Context, draft *reservation.Draft, userID uuid.UUID) (*queries.DraftView, error) {
	if err := r.drafts.Update(ctx, r.db, draft); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return r.draftQueries.GetByID(ctx, userID, draft.ID())
}

func mapStepErr(err error) error {
	switch {
	case errs.Is(err, reservation.ErrAlreadyClosed):
		return ErrDraftClosed
	case errs.Is(err, reservation.ErrStepOrder):
		return ErrStepOrder
	default:
		return err
	}
}

// mapGatewayErr translates upstream sentinels into command errors. The
// upstream client attaches its sentinels with errs.Mark, so the checks
// here (and at every handler that receives the result) must use errs.Is;
// the stdlib errors.Is cannot see those marks.
func mapGatewayErr(err error) error {
	switch {
	case errs.Is(err, upstream.ErrNotFound):
		return ErrDraftNotFound
	case errs.Is(err, upstream.ErrRejected):
		return errs.Mark(err, ErrPlatformRejected)
	case errs.Is(err, upstream.ErrUnavailable):
		return errs.Mark(err, ErrPlatformUnavailable)
	default:
		return err
	}
}

func calculateRequestHash(req reqdto.CreateDraftRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
