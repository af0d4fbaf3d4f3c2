//go:build unit

package upstream_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"studiobook/internal/infra/upstream"
	"studiobook/internal/pkg/config"
	"studiobook/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.Handler) *upstream.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.UpstreamConfig{
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
		APIKey:  "test-key",
	}
	return upstream.NewClient(cfg, slog.New(slog.DiscardHandler))
}

func TestGetRoomSlots(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/rooms/12/slots", r.URL.Path)
		assert.Equal(t, "2026-03-10", r.URL.Query().Get("date"))
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"slots":[
			{"slotTime":"09:00:00","status":"AVAILABLE"},
			{"slotTime":"09:30:00","status":null},
			{"slotTime":"10:00:00","status":"BOOKED"}
		]}`))
	}))

	slots, err := client.GetRoomSlots(context.Background(), 12, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, "09:00:00", slots[0].SlotTime)
	require.NotNil(t, slots[0].Status)
	assert.Equal(t, "AVAILABLE", *slots[0].Status)
	assert.Nil(t, slots[1].Status, "null status stays nil")
}

func TestCreateReservation(t *testing.T) {
	t.Run("success returns id and price", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/internal/reservations", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"reservationId":501,"placeId":3,"totalPrice":45000}`))
		}))

		created, err := client.CreateReservation(context.Background(), 12,
			time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), []string{"10:00", "10:30"})

		require.NoError(t, err)
		assert.Equal(t, int64(501), created.ReservationID)
		require.NotNil(t, created.TotalPrice)
		assert.Equal(t, int64(45000), *created.TotalPrice)
	})

	t.Run("business rejection keeps the platform message", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"message":"slot is no longer available"}`))
		}))

		_, err := client.CreateReservation(context.Background(), 12, time.Now(), []string{"10:00"})

		require.True(t, errs.Is(err, upstream.ErrRejected))
		assert.Equal(t, "slot is no longer available", upstream.RejectionMessage(err, "fallback"))
	})

	t.Run("rejection without body falls back", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))

		_, err := client.CreateReservation(context.Background(), 12, time.Now(), []string{"10:00"})

		require.True(t, errs.Is(err, upstream.ErrRejected))
		assert.Equal(t, "fallback", upstream.RejectionMessage(err, "fallback"))
	})
}

func TestErrorMapping(t *testing.T) {
	t.Run("404 maps to not found", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))

		_, err := client.GetReservation(context.Background(), 999)

		assert.True(t, errs.Is(err, upstream.ErrNotFound))
	})

	t.Run("5xx maps to unavailable", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))

		_, err := client.ConfirmReservation(context.Background(), 501)

		assert.True(t, errs.Is(err, upstream.ErrUnavailable))
	})

	t.Run("connection failure maps to unavailable", func(t *testing.T) {
		cfg := config.UpstreamConfig{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond}
		client := upstream.NewClient(cfg, slog.New(slog.DiscardHandler))

		_, err := client.GetRoomSlots(context.Background(), 12, time.Now())

		assert.True(t, errs.Is(err, upstream.ErrUnavailable))
	})
}

func TestAttachUserInfo(t *testing.T) {
	var gotBody string
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		_, _ = r.Body.Read(buf)
		gotBody = string(buf)
		w.WriteHeader(http.StatusNoContent)
	}))

	err := client.AttachUserInfo(context.Background(), 501, "Kim Jiwoo", "01012345678",
		map[string]string{"purpose": "recording"})

	require.NoError(t, err)
	assert.Contains(t, gotBody, `"phone":"01012345678"`)
	assert.Contains(t, gotBody, `"purpose":"recording"`)
}
