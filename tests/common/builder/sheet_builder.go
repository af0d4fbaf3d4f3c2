//go:build unit || e2e

package builder

import (
	"time"

	"studiobook/internal/domain/selection"
	"studiobook/internal/domain/slot"
	reqdto "studiobook/internal/handler/dto/request"
	"studiobook/internal/usecase/commands"
	"studiobook/internal/usecase/queries"
	"studiobook/internal/usecase/shared"

	"github.com/google/uuid"
)

type SheetBuilder struct {
	UserID    uuid.UUID
	RoomID    int64
	Date      time.Time
	MinUnit   int
	SheetHash string
	Times     []string
	Price     int64
}

func NewSheetBuilder() *SheetBuilder {
	return &SheetBuilder{
		UserID:    uuid.New(),
		RoomID:    12,
		Date:      time.Now().AddDate(0, 0, 14).Truncate(24 * time.Hour),
		MinUnit:   30,
		SheetHash: "a1b2c3d4e5f60718",
		Times:     []string{"09:00", "09:30", "10:00", "10:30"},
		Price:     15000,
	}
}

func (b *SheetBuilder) With(mutate func(*SheetBuilder)) *SheetBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *SheetBuilder) BuildCatalog() slot.Catalog {
	catalog := make(slot.Catalog, 0, len(b.Times))
	for _, t := range b.Times {
		catalog = append(catalog, slot.Item{
			DisplayTime:  t,
			OriginalTime: t,
			Available:    true,
			Price:        b.Price,
		})
	}
	return catalog
}

func (b *SheetBuilder) BuildSession() *shared.SelectionSession {
	return &shared.SelectionSession{
		UserID:    b.UserID,
		RoomID:    b.RoomID,
		Date:      b.Date,
		State:     selection.Empty(),
		Catalog:   b.BuildCatalog(),
		SheetHash: b.SheetHash,
		MinUnit:   b.MinUnit,
		UpdatedAt: time.Now(),
	}
}

func (b *SheetBuilder) BuildViewQuery() *queries.SheetView {
	slots := make([]queries.SlotView, 0, len(b.Times))
	for _, t := range b.Times {
		slots = append(slots, queries.SlotView{
			Time:      t,
			Available: true,
			Price:     b.Price,
		})
	}
	return &queries.SheetView{
		RoomID:    b.RoomID,
		Date:      b.Date.Format("2006-01-02"),
		MinUnit:   b.MinUnit,
		SheetHash: b.SheetHash,
		Slots:     slots,
	}
}

func (b *SheetBuilder) BuildClickRequestDTO(index int) reqdto.ClickRequest {
	return reqdto.ClickRequest{
		Date:      b.Date.Format("2006-01-02"),
		Index:     &index,
		SheetHash: b.SheetHash,
	}
}

func (b *SheetBuilder) BuildClickResult(indices []int) *commands.ClickResult {
	phase := selection.PhaseFirstPicked
	if len(indices) > 1 {
		phase = selection.PhaseConfirmed
	}
	return &commands.ClickResult{
		Phase:      string(phase),
		Indices:    indices,
		Label:      "09:00 ~ 09:30 (0.5h)",
		TotalPrice: b.Price * int64(len(indices)),
		CanConfirm: len(indices) > 0,
		SheetHash:  b.SheetHash,
	}
}
