package repos

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"beerservice/internal/domain"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.SelectContext(ctx, &out, `
  SELECT id, version, description, created_date, updated_date
  FROM category
  ORDER BY description, id
`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

// FindByID returns nil, nil when the category does not exist.
func (r *CategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	var c domain.Category
	err := r.db.GetContext(ctx, &c, r.db.Rebind(`
  SELECT id, version, description, created_date, updated_date
  FROM category
  WHERE id = ?`), id)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) Insert(ctx context.Context, c *domain.Category) error {
	c.ID = uuid.New()
	c.Version = 0
	c.CreatedDate = now()
	c.UpdatedDate = c.CreatedDate
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO category (id, version, description, created_date, updated_date)
		VALUES (?, ?, ?, ?, ?)`),
		c.ID, c.Version, c.Description, c.CreatedDate, c.UpdatedDate,
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// Link adds the beer/category pair; an existing pair is left alone.
func (r *CategoryRepo) Link(ctx context.Context, categoryID, beerID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	if err := tx.GetContext(ctx, &n, tx.Rebind(`SELECT COUNT(*) FROM beer_category WHERE beer_id = ? AND category_id = ?`), beerID, categoryID); err != nil {
		return fmt.Errorf("check link: %w", err)
	}
	if n == 0 {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO beer_category (beer_id, category_id) VALUES (?, ?)`), beerID, categoryID); err != nil {
			return fmt.Errorf("link beer: %w", err)
		}
	}
	return tx.Commit()
}

// Beers lists the beers in a category ordered by name.
func (r *CategoryRepo) Beers(ctx context.Context, categoryID uuid.UUID) ([]domain.Beer, error) {
	out := []domain.Beer{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
  SELECT b.id, b.version, b.beer_name, b.beer_style, b.upc, b.price, b.quantity_on_hand, b.created_date, b.updated_date
  FROM beer_category bc
  JOIN beer b ON b.id = bc.beer_id
  WHERE bc.category_id = ?
  ORDER BY b.beer_name, b.id`), categoryID)
	if err != nil {
		return nil, fmt.Errorf("list category beers: %w", err)
	}
	return out, nil
}

// ForBeer lists the categories a beer belongs to.
func (r *CategoryRepo) ForBeer(ctx context.Context, beerID uuid.UUID) ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
  SELECT c.id, c.version, c.description, c.created_date, c.updated_date
  FROM beer_category bc
  JOIN category c ON c.id = bc.category_id
  WHERE bc.beer_id = ?
  ORDER BY c.description, c.id`), beerID)
	if err != nil {
		return nil, fmt.Errorf("list beer categories: %w", err)
	}
	return out, nil
}
