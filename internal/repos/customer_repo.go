package repos

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"beerservice/internal/domain"
)

const customerCols = `id, version, name, email, created_date, updated_date`

type CustomerRepo struct{ db *sqlx.DB }

func NewCustomerRepo(db *sqlx.DB) *CustomerRepo { return &CustomerRepo{db: db} }

// FindByID returns nil, nil when the customer does not exist.
func (r *CustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.GetContext(ctx, &c, r.db.Rebind(`SELECT `+customerCols+` FROM customer WHERE id = ?`), id)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query customer: %w", err)
	}
	return &c, nil
}

func (r *CustomerRepo) FindAll(ctx context.Context) ([]domain.Customer, error) {
	out := []domain.Customer{}
	if err := r.db.SelectContext(ctx, &out, `SELECT `+customerCols+` FROM customer ORDER BY name, id`); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return out, nil
}

func (r *CustomerRepo) Insert(ctx context.Context, c *domain.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.Version = 0
	c.CreatedDate = now()
	c.UpdatedDate = c.CreatedDate
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO customer (`+customerCols+`)
		VALUES (?, ?, ?, ?, ?, ?)`),
		c.ID, c.Version, c.Name, c.Email, c.CreatedDate, c.UpdatedDate,
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// Update is version-checked like BeerRepo.Update.
func (r *CustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	ts := now()
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE customer
		SET name = ?, email = ?, version = version + 1, updated_date = ?
		WHERE id = ? AND version = ?`),
		c.Name, c.Email, ts, c.ID, c.Version,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("customer %s: %w", c.ID, ErrOptimisticLock)
	}
	c.Version++
	c.UpdatedDate = ts
	return nil
}

func (r *CustomerRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM customer WHERE id = ?`), id); err != nil {
		return false, fmt.Errorf("exists customer: %w", err)
	}
	return n > 0, nil
}

func (r *CustomerRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM customer WHERE id = ?`), id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM customer`); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}
