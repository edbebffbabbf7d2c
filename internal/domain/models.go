package domain

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Version     int       `db:"version" json:"version"`
	Name        string    `db:"name" json:"name"`
	Email       string    `db:"email" json:"email"`
	CreatedDate time.Time `db:"created_date" json:"createdDate"`
	UpdatedDate time.Time `db:"updated_date" json:"updatedDate"`

	Orders []*BeerOrder `db:"-" json:"orders,omitempty"`
}

type CustomerDTO struct {
	ID          uuid.UUID `json:"id"`
	Version     int       `json:"version"`
	Name        string    `json:"name" validate:"notblank,max=255"`
	Email       string    `json:"email" validate:"omitempty,email,max=255"`
	CreatedDate time.Time `json:"createdDate"`
	UpdatedDate time.Time `json:"updatedDate"`
}

type BeerOrder struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Version     int       `db:"version" json:"version"`
	CustomerRef string    `db:"customer_ref" json:"customerRef"`
	CustomerID  uuid.UUID `db:"customer_id" json:"customerId"`
	CreatedDate time.Time `db:"created_date" json:"createdDate"`
	UpdatedDate time.Time `db:"updated_date" json:"updatedDate"`

	// Back-reference; Customer.Orders is the owning side for JSON.
	Customer *Customer          `db:"-" json:"-"`
	Lines    []BeerOrderLine    `db:"-" json:"lines"`
	Shipment *BeerOrderShipment `db:"-" json:"shipment,omitempty"`
}

type BeerOrderLine struct {
	ID                uuid.UUID `db:"id" json:"id"`
	Version           int       `db:"version" json:"version"`
	BeerOrderID       uuid.UUID `db:"beer_order_id" json:"beerOrderId"`
	BeerID            uuid.UUID `db:"beer_id" json:"beerId"`
	OrderQuantity     int       `db:"order_quantity" json:"orderQuantity"`
	QuantityAllocated int       `db:"quantity_allocated" json:"quantityAllocated"`
	CreatedDate       time.Time `db:"created_date" json:"createdDate"`
	UpdatedDate       time.Time `db:"updated_date" json:"updatedDate"`
}

type BeerOrderShipment struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Version        int       `db:"version" json:"version"`
	BeerOrderID    uuid.UUID `db:"beer_order_id" json:"beerOrderId"`
	TrackingNumber string    `db:"tracking_number" json:"trackingNumber"`
	CreatedDate    time.Time `db:"created_date" json:"createdDate"`
	UpdatedDate    time.Time `db:"updated_date" json:"updatedDate"`
}

type Category struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Version     int       `db:"version" json:"version"`
	Description string    `db:"description" json:"description"`
	CreatedDate time.Time `db:"created_date" json:"createdDate"`
	UpdatedDate time.Time `db:"updated_date" json:"updatedDate"`

	Beers []Beer `db:"-" json:"beers,omitempty"`
}
