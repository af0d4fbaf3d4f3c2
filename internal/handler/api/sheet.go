package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	reqdto "studiobook/internal/handler/dto/request"
	resdto "studiobook/internal/handler/dto/response"
	"studiobook/internal/handler/httperr"
	"studiobook/internal/handler/middleware"
	"studiobook/internal/pkg/errs"
	"studiobook/internal/usecase/commands"
	"studiobook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SheetHandler struct {
	q    queries.SheetQueries
	cmds commands.SelectionCommands
	loc  *time.Location
}

func NewSheetHandler(q queries.SheetQueries, cmds commands.SelectionCommands, loc *time.Location) *SheetHandler {
	return &SheetHandler{q: q, cmds: cmds, loc: loc}
}

// @Summary Get day sheet
// @Description Get the slot sheet for a room and date with the current selection folded in
// @Tags sheets
// @Produce json
// @Security BearerAuth
// @Param roomId path int true "Room ID"
// @Param date query string true "Sheet date (YYYY-MM-DD)"
// @Success 200 {object} resdto.SheetResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /rooms/{roomId}/sheet [get]
func (h *SheetHandler) GetDaySheet(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}
	roomID, err := strconv.ParseInt(c.Param("roomId"), 10, 64)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room id", nil)
		return
	}
	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), h.loc)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
		return
	}

	view, err := h.q.DaySheet(c.Request.Context(), userID, roomID, date)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Failed to load sheet", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSheetView(view))
}

// @Summary Click slot
// @Description Apply one tap of the click-twice range selection
// @Tags sheets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param roomId path int true "Room ID"
// @Param request body reqdto.ClickRequest true "Click request"
// @Success 200 {object} resdto.ClickResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /rooms/{roomId}/selection [put]
func (h *SheetHandler) Click(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}
	roomID, err := strconv.ParseInt(c.Param("roomId"), 10, 64)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room id", nil)
		return
	}
	var req reqdto.ClickRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	date, err := req.ParseDate(h.loc)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
		return
	}

	result, err := h.cmds.Click(c.Request.Context(), userID, roomID, date, *req.Index, req.SheetHash)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrSheetChanged):
			httperr.AbortWithError(c, http.StatusConflict, err, "Sheet changed, refetch required", nil)
		case errs.Is(err, commands.ErrRangeUnavailable):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Range contains unavailable slot", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Click failed", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromClickResult(result))
}

// @Summary Reset selection
// @Description Drop the selection session for a room and date
// @Tags sheets
// @Security BearerAuth
// @Param roomId path int true "Room ID"
// @Param date query string true "Sheet date (YYYY-MM-DD)"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /rooms/{roomId}/selection [delete]
func (h *SheetHandler) ResetSelection(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}
	roomID, err := strconv.ParseInt(c.Param("roomId"), 10, 64)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room id", nil)
		return
	}
	var req reqdto.ResetSelectionRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid date", nil)
		return
	}
	date, err := req.ParseDate(h.loc)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
		return
	}

	if err := h.cmds.Reset(c.Request.Context(), userID, roomID, date); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Reset failed", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
