package reservation

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrEmptyName       = errors.New("reserver name is empty")
	ErrInvalidPhone    = errors.New("invalid mobile phone number")
	ErrInvalidQuantity = errors.New("product quantity must be at least 1")
)

// phonePattern accepts Korean mobile numbers only: 010 followed by eight
// digits, no separators. Validated here so a bad number never reaches the
// platform API.
var phonePattern = regexp.MustCompile(`^010\d{8}$`)

type Phone struct {
	value string
}

func NewPhone(value string) (Phone, error) {
	trimmed := strings.TrimSpace(value)
	if !phonePattern.MatchString(trimmed) {
		return Phone{}, ErrInvalidPhone
	}
	return Phone{value: trimmed}, nil
}

func (p Phone) String() string {
	return p.value
}

// Reserver is the contact block attached to a reservation before
// confirmation.
type Reserver struct {
	name  string
	phone Phone
	extra map[string]string
}

func NewReserver(name string, phone string, extra map[string]string) (Reserver, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Reserver{}, ErrEmptyName
	}
	p, err := NewPhone(phone)
	if err != nil {
		return Reserver{}, err
	}
	r := Reserver{name: trimmed, phone: p}
	if len(extra) > 0 {
		r.extra = make(map[string]string, len(extra))
		for k, v := range extra {
			r.extra[k] = v
		}
	}
	return r, nil
}

func (r Reserver) Name() string { return r.name }
func (r Reserver) Phone() Phone { return r.phone }

func (r Reserver) Extra() map[string]string {
	if r.extra == nil {
		return nil
	}
	out := make(map[string]string, len(r.extra))
	for k, v := range r.extra {
		out[k] = v
	}
	return out
}

// ProductSelection is one add-on product attached to a reservation.
type ProductSelection struct {
	ProductID int64
	Quantity  int
}

func NewProductSelection(productID int64, quantity int) (ProductSelection, error) {
	if quantity < 1 {
		return ProductSelection{}, ErrInvalidQuantity
	}
	return ProductSelection{ProductID: productID, Quantity: quantity}, nil
}
