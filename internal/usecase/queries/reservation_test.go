//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"studiobook/internal/domain/reservation"
	"studiobook/internal/infra"
	"studiobook/internal/infra/upstream"
	"studiobook/internal/pkg/clock"
	"studiobook/internal/pkg/ptr"
	"studiobook/internal/usecase/queries"
	"studiobook/tests/common/builder"
	queriesmock "studiobook/tests/mock/queries"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func draftNotFoundErr() error {
	return infra.WrapRepoErr("draft not found", pgx.ErrNoRows, infra.KindNotFound)
}

type draftQueryMocks struct {
	drafts *queriesmock.MockDraftReader
	source *queriesmock.MockReservationSource
}

func newDraftQueries(ctrl *gomock.Controller, now time.Time) (queries.DraftQueries, *draftQueryMocks) {
	m := &draftQueryMocks{
		drafts: queriesmock.NewMockDraftReader(ctrl),
		source: queriesmock.NewMockReservationSource(ctrl),
	}
	return queries.NewDraftQueries(m.drafts, m.source, clock.NewMockClock(now), time.UTC), m
}

func TestDraftQueries_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("success: platform detail is merged in", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		b := builder.NewDraftBuilder()
		q, m := newDraftQueries(ctrl, now)

		m.drafts.EXPECT().FindByID(ctx, b.ID, b.UserID).Return(b.BuildDomain(), nil)
		m.source.EXPECT().GetReservation(ctx, b.ReservationID).Return(&upstream.ReservationDetailDTO{
			ReservationID: b.ReservationID,
			Status:        ptr.To("TEMPORARY"),
			TotalPrice:    ptr.To(int64(48000)),
		}, nil)

		view, err := q.GetByID(ctx, b.UserID, b.ID)
		require.NoError(t, err)

		assert.Equal(t, b.ID, view.ID)
		assert.Equal(t, b.ReservationID, view.ReservationID)
		require.NotNil(t, view.PlatformStatus)
		assert.Equal(t, "TEMPORARY", *view.PlatformStatus)
		assert.Equal(t, int64(48000), view.TotalPrice)
		assert.Equal(t, b.EstimatedPrice, view.EstimatedPrice)
	})

	t.Run("success: platform outage degrades to the local view", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		b := builder.NewDraftBuilder()
		q, m := newDraftQueries(ctrl, now)

		m.drafts.EXPECT().FindByID(ctx, b.ID, b.UserID).Return(b.BuildDomain(), nil)
		m.source.EXPECT().GetReservation(ctx, b.ReservationID).Return(nil, upstream.ErrUnavailable)

		view, err := q.GetByID(ctx, b.UserID, b.ID)
		require.NoError(t, err)

		assert.Nil(t, view.PlatformStatus)
		assert.Equal(t, b.ServerPrice, view.TotalPrice)
	})

	t.Run("error: draft not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		b := builder.NewDraftBuilder()
		q, m := newDraftQueries(ctrl, now)

		m.drafts.EXPECT().FindByID(ctx, b.ID, b.UserID).Return(nil, draftNotFoundErr())

		_, err := q.GetByID(ctx, b.UserID, b.ID)
		assert.ErrorIs(t, err, queries.ErrDraftNotFound)
	})
}

func TestDraftQueries_ListByUser(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("success: zero limit falls back to the default page size", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		b := builder.NewDraftBuilder()
		q, m := newDraftQueries(ctrl, now)

		m.drafts.EXPECT().ListByUser(ctx, b.UserID, int32(50)).
			Return([]*reservation.Draft{b.BuildDomain()}, nil)

		items, err := q.ListByUser(ctx, b.UserID, 0)
		require.NoError(t, err)

		require.Len(t, items, 1)
		assert.Equal(t, b.ID, items[0].ID)
		assert.Equal(t, b.ReservationID, items[0].ReservationID)
		assert.Equal(t, b.ServerPrice, items[0].TotalPrice)
		assert.Equal(t, string(reservation.StepCreated), items[0].Step)
	})

	t.Run("success: explicit limit is passed through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		b := builder.NewDraftBuilder()
		q, m := newDraftQueries(ctrl, now)

		m.drafts.EXPECT().ListByUser(ctx, b.UserID, int32(10)).Return([]*reservation.Draft{}, nil)

		items, err := q.ListByUser(ctx, b.UserID, 10)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestDraftQueries_CancelQuote(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("success: three days out quotes the 50 percent tier", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		b := builder.NewDraftBuilder().With(func(b *builder.DraftBuilder) {
			b.Date = time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
			b.CreatedAt = now.Add(-2 * time.Hour)
			b.UpdatedAt = b.CreatedAt
		})
		q, m := newDraftQueries(ctrl, now)

		m.drafts.EXPECT().FindByID(ctx, b.ID, b.UserID).Return(b.BuildDomain(), nil)

		quote, err := q.CancelQuote(ctx, b.UserID, b.ID)
		require.NoError(t, err)

		assert.Equal(t, b.ReservationID, quote.ReservationID)
		assert.Equal(t, int64(45000), quote.TotalPrice)
		assert.Equal(t, int64(22500), quote.Fee)
		assert.Equal(t, int64(22500), quote.Refund)
		assert.Equal(t, 50, quote.FeePercent)
		assert.True(t, quote.CanCancel)
	})

	t.Run("success: day of use is non cancellable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		b := builder.NewDraftBuilder().With(func(b *builder.DraftBuilder) {
			b.Date = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
			b.CreatedAt = now.Add(-48 * time.Hour)
			b.UpdatedAt = b.CreatedAt
		})
		q, m := newDraftQueries(ctrl, now)

		m.drafts.EXPECT().FindByID(ctx, b.ID, b.UserID).Return(b.BuildDomain(), nil)

		quote, err := q.CancelQuote(ctx, b.UserID, b.ID)
		require.NoError(t, err)

		assert.Equal(t, int64(45000), quote.Fee)
		assert.Equal(t, int64(0), quote.Refund)
		assert.Equal(t, 100, quote.FeePercent)
		assert.False(t, quote.CanCancel)
	})

	t.Run("error: draft not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		b := builder.NewDraftBuilder()
		q, m := newDraftQueries(ctrl, now)

		m.drafts.EXPECT().FindByID(ctx, b.ID, b.UserID).Return(nil, draftNotFoundErr())

		_, err := q.CancelQuote(ctx, b.UserID, b.ID)
		assert.ErrorIs(t, err, queries.ErrDraftNotFound)
	})
}
