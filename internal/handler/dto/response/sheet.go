package response

import (
	"studiobook/internal/usecase/commands"
	"studiobook/internal/usecase/queries"
)

type SlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Price     int64  `json:"price"`
	Selected  bool   `json:"selected"`
}

type SelectionResponse struct {
	Phase      string `json:"phase"`
	Indices    []int  `json:"indices"`
	Label      string `json:"label,omitempty"`
	TotalPrice int64  `json:"totalPrice"`
	CanConfirm bool   `json:"canConfirm"`
}

type SheetResponse struct {
	RoomID    int64              `json:"roomId"`
	Date      string             `json:"date"`
	MinUnit   int                `json:"minUnit"`
	SheetHash string             `json:"sheetHash"`
	Slots     []SlotResponse     `json:"slots"`
	Selection *SelectionResponse `json:"selection,omitempty"`
}

type ClickResponse struct {
	Phase      string `json:"phase"`
	Indices    []int  `json:"indices"`
	Label      string `json:"label,omitempty"`
	TotalPrice int64  `json:"totalPrice"`
	CanConfirm bool   `json:"canConfirm"`
	SheetHash  string `json:"sheetHash"`
}

func FromSheetView(v *queries.SheetView) *SheetResponse {
	resp := &SheetResponse{
		RoomID:    v.RoomID,
		Date:      v.Date,
		MinUnit:   v.MinUnit,
		SheetHash: v.SheetHash,
		Slots:     make([]SlotResponse, len(v.Slots)),
	}
	for i, s := range v.Slots {
		resp.Slots[i] = SlotResponse{
			Time:      s.Time,
			Available: s.Available,
			Price:     s.Price,
			Selected:  s.Selected,
		}
	}
	if v.Selection != nil {
		resp.Selection = &SelectionResponse{
			Phase:      v.Selection.Phase,
			Indices:    v.Selection.Indices,
			Label:      v.Selection.Label,
			TotalPrice: v.Selection.TotalPrice,
			CanConfirm: v.Selection.CanConfirm,
		}
	}
	return resp
}

func FromClickResult(r *commands.ClickResult) *ClickResponse {
	return &ClickResponse{
		Phase:      r.Phase,
		Indices:    r.Indices,
		Label:      r.Label,
		TotalPrice: r.TotalPrice,
		CanConfirm: r.CanConfirm,
		SheetHash:  r.SheetHash,
	}
}
