//go:build unit

package commands_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"
	"time"

	"studiobook/internal/domain/reservation"
	"studiobook/internal/infra"
	"studiobook/internal/infra/upstream"
	"studiobook/internal/pkg/clock"
	"studiobook/internal/pkg/errs"
	"studiobook/internal/usecase/commands"
	"studiobook/internal/usecase/queries"
	"studiobook/internal/usecase/shared"
	"studiobook/tests/common/builder"
	commandsmock "studiobook/tests/mock/commands"
	queriesmock "studiobook/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type reservationMocks struct {
	drafts       *commandsmock.MockDraftRepository
	sessions     *commandsmock.MockSessionRepository
	idempotency  *commandsmock.MockIdempotencyRepository
	gateway      *commandsmock.MockPlatformGateway
	draftQueries *queriesmock.MockDraftQueries
	clock        *clock.MockClock
}

func newReservationUseCase(ctrl *gomock.Controller) (commands.ReservationCommands, *reservationMocks) {
	m := &reservationMocks{
		drafts:       commandsmock.NewMockDraftRepository(ctrl),
		sessions:     commandsmock.NewMockSessionRepository(ctrl),
		idempotency:  commandsmock.NewMockIdempotencyRepository(ctrl),
		gateway:      commandsmock.NewMockPlatformGateway(ctrl),
		draftQueries: queriesmock.NewMockDraftQueries(ctrl),
		clock:        clock.NewMockClock(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)),
	}
	// no pool: flows that open transactions are covered end to end
	uc := commands.NewReservationUseCase(
		m.drafts, m.sessions, m.idempotency, m.gateway, m.draftQueries,
		nil, m.clock, time.UTC, 24*time.Hour,
	)
	return uc, m
}

func requestHashOf(t *testing.T, req any) string {
	t.Helper()
	data, err := json.Marshal(req)
	require.NoError(t, err)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func draftNotFoundErr() error {
	return infra.WrapRepoErr("draft not found", pgx.ErrNoRows, infra.KindNotFound)
}

// =============================================================================
// CreateDraft Tests
// =============================================================================

func TestReservationCommands_CreateDraft_ReplaysCompletedKey(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newReservationUseCase(ctrl)
	b := builder.NewDraftBuilder()
	req := b.BuildCreateRequestDTO()
	key := uuid.New()
	view := b.BuildViewQuery()
	hash := requestHashOf(t, req)

	m.idempotency.EXPECT().TryInsert(ctx, key, b.UserID, "POST /reservations", hash, gomock.Any()).
		Return(false, nil)
	m.idempotency.EXPECT().Get(ctx, key, b.UserID).
		Return(&shared.IdempotencyRecord{
			Status:        "completed",
			RequestHash:   hash,
			ResultDraftID: &b.ID,
		}, nil)
	m.draftQueries.EXPECT().GetByID(ctx, b.UserID, b.ID).Return(view, nil)

	result, err := uc.CreateDraft(ctx, req, b.UserID, key)
	require.NoError(t, err)
	assert.True(t, result.IsReplayed)
	assert.Equal(t, b.ID, result.Draft.ID)
}

func TestReservationCommands_CreateDraft_KeyStillProcessing(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newReservationUseCase(ctrl)
	b := builder.NewDraftBuilder()
	req := b.BuildCreateRequestDTO()
	key := uuid.New()
	hash := requestHashOf(t, req)

	m.idempotency.EXPECT().TryInsert(ctx, key, b.UserID, "POST /reservations", hash, gomock.Any()).
		Return(false, nil)
	m.idempotency.EXPECT().Get(ctx, key, b.UserID).
		Return(&shared.IdempotencyRecord{Status: "processing", RequestHash: hash}, nil)

	_, err := uc.CreateDraft(ctx, req, b.UserID, key)
	assert.ErrorIs(t, err, commands.ErrIdempotencyInProgress)
}

func TestReservationCommands_CreateDraft_KeyReusedForDifferentRequest(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newReservationUseCase(ctrl)
	b := builder.NewDraftBuilder()
	req := b.BuildCreateRequestDTO()
	key := uuid.New()

	m.idempotency.EXPECT().TryInsert(ctx, key, b.UserID, "POST /reservations", gomock.Any(), gomock.Any()).
		Return(false, nil)
	m.idempotency.EXPECT().Get(ctx, key, b.UserID).
		Return(&shared.IdempotencyRecord{Status: "processing", RequestHash: "hash-of-another-body"}, nil)

	_, err := uc.CreateDraft(ctx, req, b.UserID, key)
	assert.ErrorIs(t, err, commands.ErrDuplicateRequest)
}

func TestReservationCommands_CreateDraft_NothingSelected(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newReservationUseCase(ctrl)
	b := builder.NewDraftBuilder()
	req := b.BuildCreateRequestDTO()
	key := uuid.New()

	m.idempotency.EXPECT().TryInsert(ctx, key, b.UserID, "POST /reservations", gomock.Any(), gomock.Any()).
		Return(true, nil)
	m.sessions.EXPECT().Find(ctx, b.UserID, b.RoomID, gomock.Any()).
		Return(nil, notFoundErr())
	m.idempotency.EXPECT().Delete(ctx, key, b.UserID).Return(nil)

	_, err := uc.CreateDraft(ctx, req, b.UserID, key)
	assert.ErrorIs(t, err, commands.ErrNothingSelected)
}

func TestReservationCommands_CreateDraft_SelectionNotConfirmed(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newReservationUseCase(ctrl)
	b := builder.NewDraftBuilder()
	req := b.BuildCreateRequestDTO()
	key := uuid.New()

	sheet := builder.NewSheetBuilder()
	sheet.UserID = b.UserID
	sheet.RoomID = b.RoomID
	session := sheet.BuildSession() // empty selection

	m.idempotency.EXPECT().TryInsert(ctx, key, b.UserID, "POST /reservations", gomock.Any(), gomock.Any()).
		Return(true, nil)
	m.sessions.EXPECT().Find(ctx, b.UserID, b.RoomID, gomock.Any()).
		Return(session, nil)
	m.idempotency.EXPECT().Delete(ctx, key, b.UserID).Return(nil)

	_, err := uc.CreateDraft(ctx, req, b.UserID, key)
	assert.ErrorIs(t, err, commands.ErrNothingSelected)
}

func TestReservationCommands_CreateDraft_PlatformRejects(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newReservationUseCase(ctrl)
	b := builder.NewDraftBuilder()
	req := b.BuildCreateRequestDTO()
	key := uuid.New()

	sheet := builder.NewSheetBuilder()
	sheet.UserID = b.UserID
	sheet.RoomID = b.RoomID
	session := sheet.BuildSession()
	first, err := session.State.Click(session.Catalog, 0)
	require.NoError(t, err)
	confirmed, err := first.Click(session.Catalog, 1)
	require.NoError(t, err)
	session.State = confirmed

	m.idempotency.EXPECT().TryInsert(ctx, key, b.UserID, "POST /reservations", gomock.Any(), gomock.Any()).
		Return(true, nil)
	m.sessions.EXPECT().Find(ctx, b.UserID, b.RoomID, gomock.Any()).
		Return(session, nil)
	m.gateway.EXPECT().CreateReservation(ctx, b.RoomID, gomock.Any(), []string{"09:00", "09:30"}).
		Return(nil, errs.Mark(errs.New("rooms are taken"), upstream.ErrRejected))
	m.idempotency.EXPECT().Delete(ctx, key, b.UserID).Return(nil)

	_, err = uc.CreateDraft(ctx, req, b.UserID, key)
	assert.True(t, errs.Is(err, commands.ErrPlatformRejected))
}

func TestReservationCommands_CreateDraft_ReleasesKeyWhenCreationFails(t *testing.T) {
	// The platform is down on the first attempt. The freshly claimed
	// key must be released so a retry with the same key claims it
	// again instead of conflicting on a dead processing row.
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newReservationUseCase(ctrl)
	b := builder.NewDraftBuilder()
	req := b.BuildCreateRequestDTO()
	key := uuid.New()

	sheet := builder.NewSheetBuilder()
	sheet.UserID = b.UserID
	sheet.RoomID = b.RoomID
	session := sheet.BuildSession()
	first, err := session.State.Click(session.Catalog, 0)
	require.NoError(t, err)
	confirmed, err := first.Click(session.Catalog, 1)
	require.NoError(t, err)
	session.State = confirmed

	m.idempotency.EXPECT().TryInsert(ctx, key, b.UserID, "POST /reservations", gomock.Any(), gomock.Any()).
		Return(true, nil).Times(2)
	m.sessions.EXPECT().Find(ctx, b.UserID, b.RoomID, gomock.Any()).
		Return(session, nil).Times(2)
	m.gateway.EXPECT().CreateReservation(ctx, b.RoomID, gomock.Any(), gomock.Any()).
		Return(nil, errs.Mark(errs.New("connection refused"), upstream.ErrUnavailable)).Times(2)
	m.idempotency.EXPECT().Delete(ctx, key, b.UserID).Return(nil).Times(2)

	_, err = uc.CreateDraft(ctx, req, b.UserID, key)
	require.True(t, errs.Is(err, commands.ErrPlatformUnavailable))

	// The retry claims the key afresh; it must not be answered with
	// the in-progress conflict. Get is not expected at all.
	_, err = uc.CreateDraft(ctx, req, b.UserID, key)
	require.True(t, errs.Is(err, commands.ErrPlatformUnavailable))
	assert.False(t, errs.Is(err, commands.ErrIdempotencyInProgress))
}

// =============================================================================
// Step Command Tests
// =============================================================================

func TestReservationCommands_AttachProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("success: forwards products and advances the draft", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, m := newReservationUseCase(ctrl)
		b := builder.NewDraftBuilder()
		req := b.BuildAttachProductsRequestDTO()
		view := b.BuildViewQuery()
		view.Step = "products_attached"

		m.drafts.EXPECT().FindByID(ctx, b.ID, b.UserID).Return(b.BuildDomain(), nil)
		m.gateway.EXPECT().AttachProducts(ctx, b.ReservationID,
			[]upstream.ProductQuantityDTO{{ProductID: 501, Quantity: 2}}).Return(nil)
		m.drafts.EXPECT().Update(ctx, gomock.Any(), gomock.Any()).Return(nil)
		m.draftQueries.EXPECT().GetByID(ctx, b.UserID, b.ID).Return(view, nil)

		got, err := uc.AttachProducts(ctx, b.ID, b.UserID, req)
		require.NoError(t, err)
		assert.Equal(t, "products_attached", got.Step)
	})

	t.Run("error: out of order, platform never called", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, m := newReservationUseCase(ctrl)
		b := builder.NewDraftBuilder()
		b.Step = reservation.StepReserverAttached

		m.drafts.EXPECT().FindByID(ctx, b.ID, b.UserID).Return(b.BuildDomain(), nil)

		_, err := uc.AttachProducts(ctx, b.ID, b.UserID, b.BuildAttachProductsRequestDTO())
		assert.ErrorIs(t, err, commands.ErrStepOrder)
	})

	t.Run("error: draft not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, m := newReservationUseCase(ctrl)
		b := builder.NewDraftBuilder()

		m.drafts.EXPECT().FindByID(ctx, b.ID, b.UserID).Return(nil, draftNotFoundErr())

		_, err := uc.AttachProducts(ctx, b.ID, b.UserID, b.BuildAttachProductsRequestDTO())
		assert.ErrorIs(t, err, commands.ErrDraftNotFound)
	})
}

func TestReservationCommands_AttachReserver(t *testing.T) {
	ctx := context.Background()

	t.Run("success: forwards contact info to the platform", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, m := newReservationUseCase(ctrl)
		b := builder.NewDraftBuilder()
		b.Step = reservation.StepProductsAttached
		req := b.BuildAttachReserverRequestDTO()
		view := b.BuildViewQuery()
		view.Step = "reserver_attached"

		m.drafts.EXPECT().FindByID(ctx, b.ID, b.UserID).Return(b.BuildDomain(), nil)
		m.gateway.EXPECT().AttachUserInfo(ctx, b.ReservationID, "Kim Jiwoo", "01012345678", gomock.Any()).Return(nil)
		m.drafts.EXPECT().Update(ctx, gomock.Any(), gomock.Any()).Return(nil)
		m.draftQueries.EXPECT().GetByID(ctx, b.UserID, b.ID).Return(view, nil)

		got, err := uc.AttachReserver(ctx, b.ID, b.UserID, req)
		require.NoError(t, err)
		assert.Equal(t, "reserver_attached", got.Step)
	})

	t.Run("error: invalid phone rejected before any lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, _ := newReservationUseCase(ctrl)
		b := builder.NewDraftBuilder()
		req := b.BuildAttachReserverRequestDTO()
		req.Phone = "12345"

		_, err := uc.AttachReserver(ctx, b.ID, b.UserID, req)
		assert.True(t, errs.Is(err, commands.ErrInvalidReserver))
	})

	t.Run("error: cancelled draft cannot advance", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, m := newReservationUseCase(ctrl)
		b := builder.NewDraftBuilder()
		b.Step = reservation.StepCancelled

		m.drafts.EXPECT().FindByID(ctx, b.ID, b.UserID).Return(b.BuildDomain(), nil)

		_, err := uc.AttachReserver(ctx, b.ID, b.UserID, b.BuildAttachReserverRequestDTO())
		assert.ErrorIs(t, err, commands.ErrStepOrder)
	})
}

func TestReservationCommands_Confirm(t *testing.T) {
	ctx := context.Background()

	t.Run("success: records the platform's authoritative total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, m := newReservationUseCase(ctrl)
		b := builder.NewDraftBuilder()
		b.Step = reservation.StepReserverAttached
		view := b.BuildViewQuery()
		view.Step = "confirmed"
		view.TotalPrice = 48000

		m.drafts.EXPECT().FindByID(ctx, b.ID, b.UserID).Return(b.BuildDomain(), nil)
		m.gateway.EXPECT().ConfirmReservation(ctx, b.ReservationID).
			Return(&upstream.ConfirmedReservationDTO{TotalPrice: 48000}, nil)
		m.drafts.EXPECT().Update(ctx, gomock.Any(), gomock.Any()).Return(nil)
		m.draftQueries.EXPECT().GetByID(ctx, b.UserID, b.ID).Return(view, nil)

		got, err := uc.Confirm(ctx, b.ID, b.UserID)
		require.NoError(t, err)
		assert.Equal(t, "confirmed", got.Step)
		assert.Equal(t, int64(48000), got.TotalPrice)
	})

	t.Run("error: reserver not attached yet, platform never called", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, m := newReservationUseCase(ctrl)
		b := builder.NewDraftBuilder() // StepCreated

		m.drafts.EXPECT().FindByID(ctx, b.ID, b.UserID).Return(b.BuildDomain(), nil)

		_, err := uc.Confirm(ctx, b.ID, b.UserID)
		assert.ErrorIs(t, err, commands.ErrStepOrder)
	})

	t.Run("error: platform unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, m := newReservationUseCase(ctrl)
		b := builder.NewDraftBuilder()
		b.Step = reservation.StepReserverAttached

		m.drafts.EXPECT().FindByID(ctx, b.ID, b.UserID).Return(b.BuildDomain(), nil)
		m.gateway.EXPECT().ConfirmReservation(ctx, b.ReservationID).
			Return(nil, errs.Mark(errs.New("upstream timeout"), upstream.ErrUnavailable))

		_, err := uc.Confirm(ctx, b.ID, b.UserID)
		assert.True(t, errs.Is(err, commands.ErrPlatformUnavailable))
	})
}

func TestReservationCommands_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("success: cancels and reports the quoted fee", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, m := newReservationUseCase(ctrl)
		b := builder.NewDraftBuilder()
		b.Step = reservation.StepConfirmed
		quote := b.BuildCancelQuoteQuery(30)
		view := b.BuildViewQuery()
		view.Step = "cancelled"

		m.drafts.EXPECT().FindByID(ctx, b.ID, b.UserID).Return(b.BuildDomain(), nil)
		m.draftQueries.EXPECT().CancelQuote(ctx, b.UserID, b.ID).Return(quote, nil)
		m.gateway.EXPECT().CancelReservation(ctx, b.ReservationID).
			Return(&upstream.CancelResultDTO{Message: "Reservation cancelled"}, nil)
		m.drafts.EXPECT().Update(ctx, gomock.Any(), gomock.Any()).Return(nil)
		m.draftQueries.EXPECT().GetByID(ctx, b.UserID, b.ID).Return(view, nil)

		result, err := uc.Cancel(ctx, b.ID, b.UserID)
		require.NoError(t, err)
		assert.Equal(t, quote.Fee, result.Fee)
		assert.Equal(t, quote.Refund, result.Refund)
		assert.Equal(t, 30, result.FeePercent)
		assert.Equal(t, "Reservation cancelled", result.Message)
		assert.Equal(t, "cancelled", result.Draft.Step)
	})

	t.Run("error: quote says cancellation is blocked, platform never called", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, m := newReservationUseCase(ctrl)
		b := builder.NewDraftBuilder()
		b.Step = reservation.StepConfirmed
		quote := b.BuildCancelQuoteQuery(100)
		quote.CanCancel = false

		m.drafts.EXPECT().FindByID(ctx, b.ID, b.UserID).Return(b.BuildDomain(), nil)
		m.draftQueries.EXPECT().CancelQuote(ctx, b.UserID, b.ID).Return(quote, nil)

		_, err := uc.Cancel(ctx, b.ID, b.UserID)
		assert.ErrorIs(t, err, commands.ErrPlatformRejected)
	})

	t.Run("error: already cancelled, platform never called again", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, m := newReservationUseCase(ctrl)
		b := builder.NewDraftBuilder()
		b.Step = reservation.StepCancelled

		m.drafts.EXPECT().FindByID(ctx, b.ID, b.UserID).Return(b.BuildDomain(), nil)

		_, err := uc.Cancel(ctx, b.ID, b.UserID)
		assert.ErrorIs(t, err, commands.ErrDraftClosed)
	})

	t.Run("error: draft not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, m := newReservationUseCase(ctrl)
		b := builder.NewDraftBuilder()

		m.drafts.EXPECT().FindByID(ctx, b.ID, b.UserID).Return(nil, draftNotFoundErr())

		_, err := uc.Cancel(ctx, b.ID, b.UserID)
		assert.ErrorIs(t, err, commands.ErrDraftNotFound)
	})

	t.Run("error: quote lookup loses the race with deletion", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, m := newReservationUseCase(ctrl)
		b := builder.NewDraftBuilder()
		b.Step = reservation.StepConfirmed

		m.drafts.EXPECT().FindByID(ctx, b.ID, b.UserID).Return(b.BuildDomain(), nil)
		m.draftQueries.EXPECT().CancelQuote(ctx, b.UserID, b.ID).Return(nil, queries.ErrDraftNotFound)

		_, err := uc.Cancel(ctx, b.ID, b.UserID)
		assert.ErrorIs(t, err, commands.ErrDraftNotFound)
	})
}
