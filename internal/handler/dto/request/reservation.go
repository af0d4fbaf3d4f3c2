package request

import (
	"time"

	"studiobook/internal/domain/reservation"
)

type CreateDraftRequest struct {
	RoomID int64  `json:"room_id" binding:"required"`
	Date   string `json:"date" binding:"required"`
}

func (r CreateDraftRequest) ParseDate(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", r.Date, loc)
}

type ProductItem struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

type AttachProductsRequest struct {
	Products []ProductItem `json:"products" binding:"required,min=1,dive"`
}

func (r AttachProductsRequest) ToDomain() ([]reservation.ProductSelection, error) {
	products := make([]reservation.ProductSelection, 0, len(r.Products))
	for _, p := range r.Products {
		ps, err := reservation.NewProductSelection(p.ProductID, p.Quantity)
		if err != nil {
			return nil, err
		}
		products = append(products, ps)
	}
	return products, nil
}

type AttachReserverRequest struct {
	Name        string            `json:"name" binding:"required"`
	Phone       string            `json:"phone" binding:"required"`
	ExtraFields map[string]string `json:"extra_fields,omitempty"`
}

func (r AttachReserverRequest) ToDomain() (reservation.Reserver, error) {
	return reservation.NewReserver(r.Name, r.Phone, r.ExtraFields)
}
