package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "studiobook/internal/handler/dto/request"
	resdto "studiobook/internal/handler/dto/response"
	"studiobook/internal/handler/httperr"
	"studiobook/internal/handler/middleware"
	"studiobook/internal/infra/upstream"
	"studiobook/internal/pkg/errs"
	"studiobook/internal/usecase/commands"
	"studiobook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errIdempotencyKeyRequired = errors.New("Idempotency-Key header required")

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.DraftQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.DraftQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation draft
// @Description Turn the confirmed slot selection into a platform reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param request body reqdto.CreateDraftRequest true "Create request"
// @Success 201 {object} resdto.DraftResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}
	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}
	var req reqdto.CreateDraftRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	result, err := h.cmds.CreateDraft(c.Request.Context(), req, userID, idempotencyKey)
	if err != nil {
		h.abortCommandError(c, err, "Create reservation failed")
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromDraftView(result.Draft))
}

// @Summary Attach products
// @Description Attach add-on products to a draft reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Draft ID"
// @Param request body reqdto.AttachProductsRequest true "Products"
// @Success 200 {object} resdto.DraftResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /reservations/{id}/products [post]
func (h *ReservationHandler) AttachProducts(c *gin.Context) {
	h.stepRequest(c, func(c *gin.Context, draftID, userID uuid.UUID) (*queries.DraftView, error) {
		var req reqdto.AttachProductsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return nil, nil
		}
		return h.cmds.AttachProducts(c.Request.Context(), draftID, userID, req)
	}, "Attach products failed")
}

// @Summary Attach reserver
// @Description Attach reserver contact info to a draft reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Draft ID"
// @Param request body reqdto.AttachReserverRequest true "Reserver info"
// @Success 200 {object} resdto.DraftResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /reservations/{id}/reserver [post]
func (h *ReservationHandler) AttachReserver(c *gin.Context) {
	h.stepRequest(c, func(c *gin.Context, draftID, userID uuid.UUID) (*queries.DraftView, error) {
		var req reqdto.AttachReserverRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return nil, nil
		}
		return h.cmds.AttachReserver(c.Request.Context(), draftID, userID, req)
	}, "Attach reserver failed")
}

// @Summary Confirm reservation
// @Description Finalize the draft on the platform
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Draft ID"
// @Success 200 {object} resdto.DraftResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /reservations/{id}/confirm [post]
func (h *ReservationHandler) Confirm(c *gin.Context) {
	h.stepRequest(c, func(c *gin.Context, draftID, userID uuid.UUID) (*queries.DraftView, error) {
		return h.cmds.Confirm(c.Request.Context(), draftID, userID)
	}, "Confirm failed")
}

// @Summary Cancel reservation
// @Description Cancel the reservation and report the fee charged
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Draft ID"
// @Success 200 {object} resdto.CancelResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	userID, draftID, ok := h.authAndID(c)
	if !ok {
		return
	}

	result, err := h.cmds.Cancel(c.Request.Context(), draftID, userID)
	if err != nil {
		h.abortCommandError(c, err, "Cancel failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromCancelResult(result))
}

// @Summary Get reservation
// @Description Get a draft merged with the platform's reservation detail
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Draft ID"
// @Success 200 {object} resdto.DraftResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	userID, draftID, ok := h.authAndID(c)
	if !ok {
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), userID, draftID)
	if err != nil {
		if errs.Is(err, queries.ErrDraftNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load reservation", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDraftView(view))
}

// @Summary List reservations
// @Description List the current user's reservation drafts
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 50)"
// @Success 200 {array} resdto.DraftListItemResponse
// @Failure 401 {object} map[string]string
// @Router /reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}
	limit := 50
	if v := c.Query("limit"); v != "" {
		if iv, err := strconv.Atoi(v); err == nil {
			limit = iv
		}
	}

	items, err := h.q.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list reservations", nil)
		return
	}

	resp := make([]*resdto.DraftListItemResponse, len(items))
	for i, item := range items {
		resp[i] = resdto.FromDraftListItem(item)
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Cancellation quote
// @Description Price a cancellation at this moment without performing it
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Draft ID"
// @Success 200 {object} resdto.CancelQuoteResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id}/cancel-quote [get]
func (h *ReservationHandler) CancelQuote(c *gin.Context) {
	userID, draftID, ok := h.authAndID(c)
	if !ok {
		return
	}

	quote, err := h.q.CancelQuote(c.Request.Context(), userID, draftID)
	if err != nil {
		if errs.Is(err, queries.ErrDraftNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to compute quote", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCancelQuoteView(quote))
}

func (h *ReservationHandler) stepRequest(
	c *gin.Context,
	run func(c *gin.Context, draftID, userID uuid.UUID) (*queries.DraftView, error),
	failMsg string,
) {
	userID, draftID, ok := h.authAndID(c)
	if !ok {
		return
	}

	view, err := run(c, draftID, userID)
	if err != nil {
		h.abortCommandError(c, err, failMsg)
		return
	}
	if view == nil {
		// run already wrote the response
		return
	}
	c.JSON(http.StatusOK, resdto.FromDraftView(view))
}

func (h *ReservationHandler) authAndID(c *gin.Context) (userID, draftID uuid.UUID, ok bool) {
	userID, hasUser := middleware.GetUserID(c)
	if !hasUser {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return uuid.Nil, uuid.Nil, false
	}
	draftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation id", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, draftID, true
}

// abortCommandError maps command sentinels to HTTP statuses. Commands
// attach their sentinels with errs.Mark, which the stdlib errors.Is
// cannot see, so the checks go through errs.Is.
func (h *ReservationHandler) abortCommandError(c *gin.Context, err error, fallback string) {
	switch {
	case errs.Is(err, commands.ErrNothingSelected):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "No confirmed slot selection", nil)
	case errs.Is(err, commands.ErrDraftNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	case errs.Is(err, commands.ErrStepOrder):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation step out of order", nil)
	case errs.Is(err, commands.ErrDraftClosed):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation already closed", nil)
	case errs.Is(err, commands.ErrInvalidReserver):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid reserver info", nil)
	case errs.Is(err, commands.ErrInvalidProducts):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid product selection", nil)
	case errs.Is(err, commands.ErrDuplicateRequest):
		httperr.AbortWithError(c, http.StatusConflict, err, "Idempotency key reused with different request", nil)
	case errs.Is(err, commands.ErrIdempotencyInProgress):
		httperr.AbortWithError(c, http.StatusConflict, err, "Request is currently being processed", nil)
	case errs.Is(err, commands.ErrPlatformRejected):
		httperr.AbortWithError(c, http.StatusConflict, err, upstream.RejectionMessage(err, "Platform rejected the request"), nil)
	case errs.Is(err, commands.ErrPlatformUnavailable):
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Platform unavailable", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, fallback, nil)
	}
}

func getIdempotencyKey(c *gin.Context) (uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return uuid.Nil, errIdempotencyKeyRequired
	}
	key, err := uuid.Parse(keyStr)
	if err != nil {
		return uuid.Nil, errors.New("invalid idempotency key format")
	}
	return key, nil
}
