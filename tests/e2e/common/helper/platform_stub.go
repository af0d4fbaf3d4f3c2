//go:build e2e

package helper

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
)

// StubPlatform is an in-memory stand-in for the studio platform API.
// It serves the same wire format the real platform does and keeps just
// enough state (taken slots, reservation lifecycle) for full booking
// flows to round-trip against it.
type StubPlatform struct {
	mu sync.Mutex

	server *httptest.Server

	slotTimes    []string
	defaultPrice int64
	minUnit      int
	productPrice int64

	down         bool
	taken        map[string]bool // "roomID/date/time"
	nextID       int64
	reservations map[int64]*stubReservation
}

type stubReservation struct {
	ID         int64
	RoomID     int64
	Date       string
	Times      []string
	Status     string
	TotalPrice int64
	Quantity   int
	Name       string
	Phone      string
}

func NewStubPlatform() *StubPlatform {
	p := &StubPlatform{
		slotTimes:    []string{"10:00", "10:30", "11:00", "11:30", "12:00", "12:30", "13:00", "13:30"},
		defaultPrice: 15000,
		minUnit:      30,
		productPrice: 1000,
		taken:        map[string]bool{},
		nextID:       70000,
		reservations: map[int64]*stubReservation{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /internal/rooms/{roomID}/slots", p.handleSlots)
	mux.HandleFunc("GET /internal/rooms/{roomID}/pricing", p.handlePricing)
	mux.HandleFunc("POST /internal/reservations", p.handleCreate)
	mux.HandleFunc("POST /internal/reservations/{id}/products", p.handleProducts)
	mux.HandleFunc("POST /internal/reservations/{id}/user-info", p.handleUserInfo)
	mux.HandleFunc("POST /internal/reservations/{id}/confirm", p.handleConfirm)
	mux.HandleFunc("GET /internal/reservations/{id}", p.handleDetail)
	mux.HandleFunc("POST /internal/reservations/{id}/cancel", p.handleCancel)

	p.server = httptest.NewServer(p.gate(mux))
	return p
}

func (p *StubPlatform) URL() string { return p.server.URL }

func (p *StubPlatform) Close() { p.server.Close() }

// SetDown makes every endpoint answer 503 until reset.
func (p *StubPlatform) SetDown(down bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.down = down
}

// MarkTaken blocks slots so range selections across them fail.
func (p *StubPlatform) MarkTaken(roomID int64, date string, times ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, tm := range times {
		p.taken[slotKey(roomID, date, tm)] = true
	}
}

// Reset clears all reservation state between subtests.
func (p *StubPlatform) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.down = false
	p.taken = map[string]bool{}
	p.reservations = map[int64]*stubReservation{}
}

// DefaultPrice is the per-slot price the stub quotes.
func (p *StubPlatform) DefaultPrice() int64 { return p.defaultPrice }

// ProductPrice is the per-quantity surcharge applied at confirm time.
func (p *StubPlatform) ProductPrice() int64 { return p.productPrice }

func (p *StubPlatform) gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		down := p.down
		p.mu.Unlock()
		if down {
			http.Error(w, "platform down", http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (p *StubPlatform) handleSlots(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.ParseInt(r.PathValue("roomID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid room id", "")
		return
	}
	date := r.URL.Query().Get("date")

	p.mu.Lock()
	defer p.mu.Unlock()

	type slotJSON struct {
		SlotTime string  `json:"slotTime"`
		Status   *string `json:"status"`
	}
	slots := make([]slotJSON, 0, len(p.slotTimes))
	for _, tm := range p.slotTimes {
		status := "AVAILABLE"
		if p.taken[slotKey(roomID, date, tm)] {
			status = "RESERVED"
		}
		slots = append(slots, slotJSON{SlotTime: tm, Status: &status})
	}
	writeJSON(w, http.StatusOK, map[string]any{"slots": slots})
}

func (p *StubPlatform) handlePricing(w http.ResponseWriter, _ *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"minUnitMinutes": p.minUnit,
		"defaultPrice":   p.defaultPrice,
	})
}

func (p *StubPlatform) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RoomID        int64    `json:"roomId"`
		Date          string   `json:"date"`
		SelectedTimes []string `json:"selectedTimes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.SelectedTimes) == 0 {
		writeError(w, http.StatusBadRequest, "invalid reservation request", "")
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, tm := range req.SelectedTimes {
		if p.taken[slotKey(req.RoomID, req.Date, tm)] {
			writeError(w, http.StatusConflict, "selected slots already taken", "SLOT_TAKEN")
			return
		}
	}
	for _, tm := range req.SelectedTimes {
		p.taken[slotKey(req.RoomID, req.Date, tm)] = true
	}

	p.nextID++
	res := &stubReservation{
		ID:         p.nextID,
		RoomID:     req.RoomID,
		Date:       req.Date,
		Times:      req.SelectedTimes,
		Status:     "TEMPORARY",
		TotalPrice: int64(len(req.SelectedTimes)) * p.defaultPrice,
	}
	p.reservations[res.ID] = res

	placeID := int64(3)
	writeJSON(w, http.StatusOK, map[string]any{
		"reservationId": res.ID,
		"placeId":       placeID,
		"totalPrice":    res.TotalPrice,
	})
}

func (p *StubPlatform) handleProducts(w http.ResponseWriter, r *http.Request) {
	res, ok := p.lookup(w, r)
	if !ok {
		return
	}
	var req struct {
		Products []struct {
			ProductID int64 `json:"productId"`
			Quantity  int   `json:"quantity"`
		} `json:"products"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid products payload", "")
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	res.Quantity = 0
	for _, item := range req.Products {
		if item.Quantity <= 0 {
			writeError(w, http.StatusUnprocessableEntity, "invalid product quantity", "INVALID_PRODUCT")
			return
		}
		res.Quantity += item.Quantity
	}
	writeJSON(w, http.StatusOK, map[string]any{"reservationId": res.ID})
}

func (p *StubPlatform) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	res, ok := p.lookup(w, r)
	if !ok {
		return
	}
	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid user info", "")
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	res.Name = req.Name
	res.Phone = req.Phone
	writeJSON(w, http.StatusOK, map[string]any{"reservationId": res.ID})
}

func (p *StubPlatform) handleConfirm(w http.ResponseWriter, r *http.Request) {
	res, ok := p.lookup(w, r)
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if res.Status != "TEMPORARY" {
		writeError(w, http.StatusConflict, "reservation is not confirmable", "INVALID_STATE")
		return
	}
	res.Status = "CONFIRMED"
	total := res.TotalPrice + int64(res.Quantity)*p.productPrice
	res.TotalPrice = total
	writeJSON(w, http.StatusOK, map[string]any{"totalPrice": total})
}

func (p *StubPlatform) handleDetail(w http.ResponseWriter, r *http.Request) {
	res, ok := p.lookup(w, r)
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	roomID := res.RoomID
	status := res.Status
	total := res.TotalPrice
	writeJSON(w, http.StatusOK, map[string]any{
		"reservationId":   res.ID,
		"roomId":          roomID,
		"status":          status,
		"totalPrice":      total,
		"reservationDate": res.Date,
		"selectedTimes":   res.Times,
	})
}

func (p *StubPlatform) handleCancel(w http.ResponseWriter, r *http.Request) {
	res, ok := p.lookup(w, r)
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if res.Status == "CANCELLED" {
		writeError(w, http.StatusConflict, "reservation already cancelled", "INVALID_STATE")
		return
	}
	res.Status = "CANCELLED"
	for _, tm := range res.Times {
		delete(p.taken, slotKey(res.RoomID, res.Date, tm))
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "reservation cancelled"})
}

func (p *StubPlatform) lookup(w http.ResponseWriter, r *http.Request) (*stubReservation, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reservation id", "")
		return nil, false
	}

	p.mu.Lock()
	res, found := p.reservations[id]
	p.mu.Unlock()
	if !found {
		writeError(w, http.StatusNotFound, "reservation not found", "")
		return nil, false
	}
	return res, true
}

func slotKey(roomID int64, date, tm string) string {
	return fmt.Sprintf("%d/%s/%s", roomID, date, tm)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	body := map[string]any{"message": message}
	if code != "" {
		body["code"] = code
	}
	writeJSON(w, status, body)
}
