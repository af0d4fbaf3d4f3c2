//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"studiobook/internal/handler/dto/request"
	"studiobook/internal/handler/dto/response"
	"studiobook/tests/common/authtest"
	"studiobook/tests/common/dbtest"
	"studiobook/tests/common/httptest"
	"studiobook/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const reservationsURL = "/api/reservations"

type ReservationSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func (s *ReservationSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

func (s *ReservationSuite) bookingDate() string {
	loc, err := time.LoadLocation(s.Config.Booking.TimeZone)
	require.NoError(s.T(), err)
	return time.Now().In(loc).AddDate(0, 0, 14).Format("2006-01-02")
}

// confirmRange drives the click-twice flow so a create call can follow.
func (s *ReservationSuite) confirmRange(token, date string, from, to int) {
	t := s.T()

	w := httptest.PerformRequest(t, s.Router, http.MethodGet,
		fmt.Sprintf(sheetURL, testRoomID, date), nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var sheet response.SheetResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &sheet))

	for _, index := range []int{from, to} {
		idx := index
		cw := httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(selectionURL, testRoomID),
			request.ClickRequest{Date: date, Index: &idx, SheetHash: sheet.SheetHash}, token)
		require.Equal(t, http.StatusOK, cw.Code, cw.Body.String())
	}
}

func (s *ReservationSuite) createDraft(token, date, idempotencyKey string) (response.DraftResponse, int) {
	t := s.T()
	w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL,
		request.CreateDraftRequest{RoomID: testRoomID, Date: date},
		map[string]string{"Idempotency-Key": idempotencyKey}, token)

	var draft response.DraftResponse
	if w.Code == http.StatusCreated || w.Code == http.StatusOK {
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &draft))
	}
	return draft, w.Code
}

func (s *ReservationSuite) postStep(token, draftID, step string, body any) *response.DraftResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost,
		reservationsURL+"/"+draftID+"/"+step, body, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var draft response.DraftResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &draft))
	return &draft
}

// =============================================================================
// TestBookingFlow - full create/products/reserver/confirm path
// =============================================================================

func (s *ReservationSuite) TestBookingFlow() {
	s.Run("Normal case: full four-step booking succeeds", func() {
		t := s.T()
		token := s.jwt.GenerateToken(t, uuid.New())
		date := s.bookingDate()
		s.confirmRange(token, date, 0, 2)

		draft, code := s.createDraft(token, date, uuid.New().String())
		require.Equal(t, http.StatusCreated, code)
		require.Equal(t, testRoomID, draft.RoomID)
		require.Equal(t, "created", draft.Step)
		require.Equal(t, []string{"10:00", "10:30", "11:00"}, draft.Times)
		require.Equal(t, 3*s.Platform.DefaultPrice(), draft.TotalPrice)

		id := draft.ID.String()
		withProducts := s.postStep(token, id, "products", request.AttachProductsRequest{
			Products: []request.ProductItem{{ProductID: 501, Quantity: 2}},
		})
		require.Equal(t, "products_attached", withProducts.Step)

		withReserver := s.postStep(token, id, "reserver", request.AttachReserverRequest{
			Name:  "Kim Jiwoo",
			Phone: "01012345678",
		})
		require.Equal(t, "reserver_attached", withReserver.Step)

		confirmed := s.postStep(token, id, "confirm", nil)
		require.Equal(t, "confirmed", confirmed.Step)
		require.Equal(t, 3*s.Platform.DefaultPrice()+2*s.Platform.ProductPrice(), confirmed.TotalPrice)

		// Detail merges the platform status
		dw := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"/"+id, nil, token)
		require.Equal(t, http.StatusOK, dw.Code)
		var detail response.DraftResponse
		require.NoError(t, httptest.DecodeResponseBody(t, dw.Body, &detail))
		require.NotNil(t, detail.PlatformStatus)
		require.Equal(t, "CONFIRMED", *detail.PlatformStatus)

		// And the list shows the draft
		lw := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL, nil, token)
		require.Equal(t, http.StatusOK, lw.Code)
		var items []response.DraftListItemResponse
		require.NoError(t, httptest.DecodeResponseBody(t, lw.Body, &items))
		require.Len(t, items, 1)
		require.Equal(t, draft.ID, items[0].ID)
	})

	s.Run("Normal case: products step is optional", func() {
		t := s.T()
		token := s.jwt.GenerateToken(t, uuid.New())
		date := s.bookingDate()
		s.confirmRange(token, date, 0, 0)

		draft, code := s.createDraft(token, date, uuid.New().String())
		require.Equal(t, http.StatusCreated, code)

		id := draft.ID.String()
		s.postStep(token, id, "reserver", request.AttachReserverRequest{Name: "Kim Jiwoo", Phone: "01012345678"})
		confirmed := s.postStep(token, id, "confirm", nil)
		require.Equal(t, "confirmed", confirmed.Step)
	})

	s.Run("Normal case: same idempotency key replays the first result", func() {
		t := s.T()
		token := s.jwt.GenerateToken(t, uuid.New())
		date := s.bookingDate()
		s.confirmRange(token, date, 0, 1)

		key := uuid.New().String()
		first, code := s.createDraft(token, date, key)
		require.Equal(t, http.StatusCreated, code)

		replay, code := s.createDraft(token, date, key)
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, first.ID, replay.ID)
		require.Equal(t, first.ReservationID, replay.ReservationID)
	})

	s.Run("Error case: create without a confirmed selection returns 422", func() {
		t := s.T()
		token := s.jwt.GenerateToken(t, uuid.New())

		_, code := s.createDraft(token, s.bookingDate(), uuid.New().String())
		require.Equal(t, http.StatusUnprocessableEntity, code)
	})

	s.Run("Error case: missing idempotency key returns 400", func() {
		t := s.T()
		token := s.jwt.GenerateToken(t, uuid.New())
		date := s.bookingDate()
		s.confirmRange(token, date, 0, 1)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			request.CreateDraftRequest{RoomID: testRoomID, Date: date}, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	s.Run("Error case: slots taken between selection and create returns 409", func() {
		t := s.T()
		token := s.jwt.GenerateToken(t, uuid.New())
		date := s.bookingDate()
		s.confirmRange(token, date, 0, 1)
		s.Platform.MarkTaken(testRoomID, date, "10:30")

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL,
			request.CreateDraftRequest{RoomID: testRoomID, Date: date},
			map[string]string{"Idempotency-Key": uuid.New().String()}, token)
		require.Equal(t, http.StatusConflict, w.Code)
		require.Contains(t, w.Body.String(), "already taken", "platform message reaches the client")
	})

	s.Run("Normal case: a failed create does not burn the idempotency key", func() {
		t := s.T()
		token := s.jwt.GenerateToken(t, uuid.New())
		date := s.bookingDate()
		s.confirmRange(token, date, 0, 1)
		s.Platform.MarkTaken(testRoomID, date, "10:30")

		key := uuid.New().String()
		_, code := s.createDraft(token, date, key)
		require.Equal(t, http.StatusConflict, code)

		// The claimed key was released, so the retry reaches the
		// platform again instead of tripping the in-progress conflict.
		again := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL,
			request.CreateDraftRequest{RoomID: testRoomID, Date: date},
			map[string]string{"Idempotency-Key": key}, token)
		require.Equal(t, http.StatusConflict, again.Code)
		require.NotContains(t, again.Body.String(), "being processed")
		require.Contains(t, again.Body.String(), "already taken")
	})

	s.Run("Error case: confirm before reserver returns 409", func() {
		t := s.T()
		token := s.jwt.GenerateToken(t, uuid.New())
		date := s.bookingDate()
		s.confirmRange(token, date, 0, 1)

		draft, code := s.createDraft(token, date, uuid.New().String())
		require.Equal(t, http.StatusCreated, code)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+draft.ID.String()+"/confirm", nil, token)
		require.Equal(t, http.StatusConflict, w.Code)
	})

	s.Run("Error case: idempotency key already claimed returns 409", func() {
		t := s.T()
		userID := uuid.New()
		token := s.jwt.GenerateToken(t, userID)
		date := s.bookingDate()
		s.confirmRange(token, date, 0, 1)

		key := uuid.New()
		dbtest.SeedIdempotencyKey(t, s.DB, key, userID, "processing", nil)

		_, code := s.createDraft(token, date, key.String())
		require.Equal(t, http.StatusConflict, code)
	})

	s.Run("Error case: another user's draft is invisible", func() {
		t := s.T()
		owner := s.jwt.GenerateToken(t, uuid.New())
		date := s.bookingDate()
		s.confirmRange(owner, date, 0, 1)
		draft, code := s.createDraft(owner, date, uuid.New().String())
		require.Equal(t, http.StatusCreated, code)

		intruder := s.jwt.GenerateToken(t, uuid.New())
		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			reservationsURL+"/"+draft.ID.String(), nil, intruder)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// =============================================================================
// TestCancellation - quote and cancel API tests
// =============================================================================

func (s *ReservationSuite) TestCancellation() {
	s.Run("Normal case: quote within the booking grace window is free", func() {
		t := s.T()
		token := s.jwt.GenerateToken(t, uuid.New())
		date := s.bookingDate()
		s.confirmRange(token, date, 0, 2)
		draft, code := s.createDraft(token, date, uuid.New().String())
		require.Equal(t, http.StatusCreated, code)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			reservationsURL+"/"+draft.ID.String()+"/cancel-quote", nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var quote response.CancelQuoteResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &quote))
		require.Equal(t, draft.ReservationID, quote.ReservationID)
		require.Equal(t, int64(0), quote.Fee)
		require.Equal(t, draft.TotalPrice, quote.Refund)
		require.True(t, quote.CanCancel)
	})

	s.Run("Normal case: three days out quotes the 50 percent tier", func() {
		t := s.T()
		userID := uuid.New()
		token := s.jwt.GenerateToken(t, userID)
		loc, err := time.LoadLocation(s.Config.Booking.TimeZone)
		require.NoError(t, err)

		useDate := time.Now().In(loc).AddDate(0, 0, 3)
		draftID := dbtest.SeedDraftAt(t, s.DB, userID, 70555, "created", useDate, time.Now().Add(-time.Hour))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			reservationsURL+"/"+draftID.String()+"/cancel-quote", nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var quote response.CancelQuoteResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &quote))
		require.Equal(t, 50, quote.FeePercent)
		require.Equal(t, int64(22500), quote.Fee)
		require.Equal(t, int64(22500), quote.Refund)
		require.True(t, quote.CanCancel)
	})

	s.Run("Normal case: cancel closes the draft and frees the slots", func() {
		t := s.T()
		token := s.jwt.GenerateToken(t, uuid.New())
		date := s.bookingDate()
		s.confirmRange(token, date, 0, 1)
		draft, code := s.createDraft(token, date, uuid.New().String())
		require.Equal(t, http.StatusCreated, code)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+draft.ID.String()+"/cancel", nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var cancelled response.CancelResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &cancelled))
		require.Equal(t, "cancelled", cancelled.Draft.Step)
		require.Equal(t, int64(0), cancelled.Fee)
		require.NotEmpty(t, cancelled.Message)

		// The freed slots show as available again
		sw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf(sheetURL, testRoomID, date), nil, token)
		require.Equal(t, http.StatusOK, sw.Code)
		var sheet response.SheetResponse
		require.NoError(t, httptest.DecodeResponseBody(t, sw.Body, &sheet))
		require.True(t, sheet.Slots[0].Available)
		require.True(t, sheet.Slots[1].Available)
	})

	s.Run("Error case: cancelling twice returns 409", func() {
		t := s.T()
		token := s.jwt.GenerateToken(t, uuid.New())
		date := s.bookingDate()
		s.confirmRange(token, date, 0, 0)
		draft, code := s.createDraft(token, date, uuid.New().String())
		require.Equal(t, http.StatusCreated, code)

		id := draft.ID.String()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL+"/"+id+"/cancel", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		again := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL+"/"+id+"/cancel", nil, token)
		require.Equal(t, http.StatusConflict, again.Code)
	})
}
