package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"beerservice/internal/domain"
	"beerservice/internal/events"
	"beerservice/internal/repos"
)

type OrderLineInput struct {
	BeerID   uuid.UUID `json:"beerId" validate:"required"`
	Quantity int       `json:"orderQuantity" validate:"min=1"`
}

type PlaceOrderInput struct {
	CustomerRef    string           `json:"customerRef" validate:"max=255"`
	Lines          []OrderLineInput `json:"lines" validate:"required,min=1,dive"`
	TrackingNumber string           `json:"trackingNumber" validate:"max=50"`
}

type OrderService struct {
	Customers *repos.CustomerRepo
	Beers     *repos.BeerRepo
	Orders    *repos.OrderRepo
	Events    events.Publisher
}

func NewOrderService(customers *repos.CustomerRepo, beers *repos.BeerRepo, orders *repos.OrderRepo, pub events.Publisher) *OrderService {
	return &OrderService{Customers: customers, Beers: beers, Orders: orders, Events: pub}
}

// Place stores the order with its lines and optional shipment, then links both
// sides of every relationship on the returned values. A missing customer or beer
// yields ErrNotFound.
func (s *OrderService) Place(ctx context.Context, customerID uuid.UUID, in PlaceOrderInput) (*domain.BeerOrder, error) {
	customer, err := s.Customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("customer %s: %w", customerID, ErrNotFound)
	}

	order := &domain.BeerOrder{CustomerRef: in.CustomerRef, CustomerID: customer.ID}
	for _, l := range in.Lines {
		ok, err := s.Beers.ExistsByID(ctx, l.BeerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("beer %s: %w", l.BeerID, ErrNotFound)
		}
		order.Lines = append(order.Lines, domain.BeerOrderLine{BeerID: l.BeerID, OrderQuantity: l.Quantity})
	}
	var shipment *domain.BeerOrderShipment
	if in.TrackingNumber != "" {
		shipment = &domain.BeerOrderShipment{TrackingNumber: in.TrackingNumber}
		order.Shipment = shipment
	}

	if err := s.Orders.Create(ctx, order); err != nil {
		return nil, err
	}

	order.Customer = customer
	customer.Orders = append(customer.Orders, order)
	if shipment != nil {
		shipment.BeerOrderID = order.ID
		order.Shipment = shipment
	}

	publish(ctx, s.Events, events.OrderPlaced, order.ID.String(), order)
	return order, nil
}

// ListForCustomer returns the customer with its orders attached, or nil when
// the customer does not exist.
func (s *OrderService) ListForCustomer(ctx context.Context, customerID uuid.UUID) (*domain.Customer, error) {
	customer, err := s.Customers.FindByID(ctx, customerID)
	if err != nil || customer == nil {
		return nil, err
	}
	orders, err := s.Orders.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		o.Customer = customer
	}
	customer.Orders = orders
	return customer, nil
}
