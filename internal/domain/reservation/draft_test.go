//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"studiobook/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraft(t *testing.T) *reservation.Draft {
	t.Helper()
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	d, err := reservation.NewDraft(
		501, uuid.New(), 12, 3,
		time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		[]string{"10:00", "10:30", "11:00"},
		30, 45000, 45000, now,
	)
	require.NoError(t, err)
	return d
}

func TestDraftStepOrder(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 5, 0, 0, time.UTC)

	t.Run("full flow with products", func(t *testing.T) {
		d := newDraft(t)
		require.Equal(t, reservation.StepCreated, d.Step())

		require.NoError(t, d.AttachProducts(now))
		require.Equal(t, reservation.StepProductsAttached, d.Step())

		require.NoError(t, d.AttachReserver(now))
		require.Equal(t, reservation.StepReserverAttached, d.Step())

		require.NoError(t, d.Confirm(47000, now))
		assert.Equal(t, reservation.StepConfirmed, d.Step())
		assert.Equal(t, int64(47000), d.ServerPrice(), "confirm stores the authoritative total")
		assert.True(t, d.IsClosed())
	})

	t.Run("product step is optional", func(t *testing.T) {
		d := newDraft(t)

		require.NoError(t, d.AttachReserver(now))
		assert.Equal(t, reservation.StepReserverAttached, d.Step())
	})

	t.Run("confirm before reserver is rejected", func(t *testing.T) {
		d := newDraft(t)

		err := d.Confirm(47000, now)

		assert.ErrorIs(t, err, reservation.ErrStepOrder)
		assert.Equal(t, reservation.StepCreated, d.Step())
	})

	t.Run("products after reserver is rejected", func(t *testing.T) {
		d := newDraft(t)
		require.NoError(t, d.AttachReserver(now))

		assert.ErrorIs(t, d.AttachProducts(now), reservation.ErrStepOrder)
	})

	t.Run("cancel is terminal", func(t *testing.T) {
		d := newDraft(t)
		require.NoError(t, d.Cancel(now))

		assert.Equal(t, reservation.StepCancelled, d.Step())
		assert.ErrorIs(t, d.Cancel(now), reservation.ErrAlreadyClosed)
	})

	t.Run("empty slot list is rejected at creation", func(t *testing.T) {
		_, err := reservation.NewDraft(501, uuid.New(), 12, 3, now, nil, 30, 0, 0, now)

		assert.ErrorIs(t, err, reservation.ErrNoTimes)
	})
}

func TestDraftPriceMismatch(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	d, err := reservation.NewDraft(501, uuid.New(), 12, 3, now,
		[]string{"10:00"}, 30, 46000, 45000, now)
	require.NoError(t, err)

	assert.True(t, d.PriceMismatch())
	assert.Equal(t, int64(46000), d.ServerPrice(), "server figure stays authoritative")
}

func TestReserver(t *testing.T) {
	testCases := []struct {
		name  string
		rname string
		phone string
		errIs error
	}{
		{name: "valid", rname: "Kim Jiwoo", phone: "01012345678"},
		{name: "trims whitespace", rname: "  Kim Jiwoo  ", phone: " 01012345678 "},
		{name: "empty name", rname: "   ", phone: "01012345678", errIs: reservation.ErrEmptyName},
		{name: "landline prefix", rname: "Kim", phone: "02012345678", errIs: reservation.ErrInvalidPhone},
		{name: "too short", rname: "Kim", phone: "0101234567", errIs: reservation.ErrInvalidPhone},
		{name: "too long", rname: "Kim", phone: "010123456789", errIs: reservation.ErrInvalidPhone},
		{name: "separators rejected", rname: "Kim", phone: "010-1234-5678", errIs: reservation.ErrInvalidPhone},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := reservation.NewReserver(tc.rname, tc.phone, map[string]string{"purpose": "recording"})

			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Kim Jiwoo", r.Name())
			assert.Equal(t, "01012345678", r.Phone().String())
			assert.Equal(t, "recording", r.Extra()["purpose"])
		})
	}
}

func TestProductSelection(t *testing.T) {
	_, err := reservation.NewProductSelection(7, 0)
	assert.ErrorIs(t, err, reservation.ErrInvalidQuantity)

	p, err := reservation.NewProductSelection(7, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.ProductID)
	assert.Equal(t, 2, p.Quantity)
}
