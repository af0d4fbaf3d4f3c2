package request

import "time"

// ClickRequest is one tap on the booking sheet. Index is a pointer so
// that slot 0 still binds as present.
type ClickRequest struct {
	Date      string `json:"date" binding:"required"`
	Index     *int   `json:"index" binding:"required"`
	SheetHash string `json:"sheet_hash" binding:"required"`
}

func (r ClickRequest) ParseDate(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", r.Date, loc)
}

type ResetSelectionRequest struct {
	Date string `form:"date" binding:"required"`
}

func (r ResetSelectionRequest) ParseDate(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", r.Date, loc)
}
