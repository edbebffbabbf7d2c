package repos

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"beerservice/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// Create persists an order header, its lines and its optional shipment in one
// transaction. Ids, versions and timestamps are assigned here; the foreign keys
// on lines and shipment are set to the new order id.
func (r *OrderRepo) Create(ctx context.Context, o *domain.BeerOrder) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	ts := now()
	o.ID = uuid.New()
	o.Version = 0
	o.CreatedDate, o.UpdatedDate = ts, ts
	if _, err := tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO beer_order (id, version, customer_ref, customer_id, created_date, updated_date)
		VALUES (?, ?, ?, ?, ?, ?)`),
		o.ID, o.Version, o.CustomerRef, o.CustomerID, o.CreatedDate, o.UpdatedDate,
	); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range o.Lines {
		l := &o.Lines[i]
		l.ID = uuid.New()
		l.Version = 0
		l.BeerOrderID = o.ID
		l.CreatedDate, l.UpdatedDate = ts, ts
		if _, err := tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO beer_order_line (id, version, beer_order_id, beer_id, order_quantity, quantity_allocated, created_date, updated_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
			l.ID, l.Version, l.BeerOrderID, l.BeerID, l.OrderQuantity, l.QuantityAllocated, l.CreatedDate, l.UpdatedDate,
		); err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}

	if s := o.Shipment; s != nil {
		s.ID = uuid.New()
		s.Version = 0
		s.BeerOrderID = o.ID
		s.CreatedDate, s.UpdatedDate = ts, ts
		if _, err := tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO beer_order_shipment (id, version, beer_order_id, tracking_number, created_date, updated_date)
			VALUES (?, ?, ?, ?, ?, ?)`),
			s.ID, s.Version, s.BeerOrderID, s.TrackingNumber, s.CreatedDate, s.UpdatedDate,
		); err != nil {
			return fmt.Errorf("insert shipment: %w", err)
		}
	}

	return tx.Commit()
}

// ListByCustomer loads the customer's orders, newest first, with lines and shipment.
func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.BeerOrder, error) {
	var orders []*domain.BeerOrder
	if err := r.db.SelectContext(ctx, &orders, r.db.Rebind(`
		SELECT id, version, customer_ref, customer_id, created_date, updated_date
		FROM beer_order
		WHERE customer_id = ?
		ORDER BY created_date DESC, id`), customerID); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	byID := make(map[uuid.UUID]*domain.BeerOrder, len(orders))
	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		o.Lines = []domain.BeerOrderLine{}
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	query, args, err := sqlx.In(`
		SELECT id, version, beer_order_id, beer_id, order_quantity, quantity_allocated, created_date, updated_date
		FROM beer_order_line
		WHERE beer_order_id IN (?)
		ORDER BY created_date, id`, ids)
	if err != nil {
		return nil, err
	}
	var lines []domain.BeerOrderLine
	if err := r.db.SelectContext(ctx, &lines, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	for _, l := range lines {
		if o := byID[l.BeerOrderID]; o != nil {
			o.Lines = append(o.Lines, l)
		}
	}

	query, args, err = sqlx.In(`
		SELECT id, version, beer_order_id, tracking_number, created_date, updated_date
		FROM beer_order_shipment
		WHERE beer_order_id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	var shipments []domain.BeerOrderShipment
	if err := r.db.SelectContext(ctx, &shipments, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	for i := range shipments {
		if o := byID[shipments[i].BeerOrderID]; o != nil {
			o.Shipment = &shipments[i]
		}
	}
	return orders, nil
}
