package repos

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"beerservice/internal/domain"
)

const beerCols = `id, version, beer_name, beer_style, upc, price, quantity_on_hand, created_date, updated_date`

type BeerRepo struct{ db *sqlx.DB }

func NewBeerRepo(db *sqlx.DB) *BeerRepo { return &BeerRepo{db: db} }

// FindByID returns nil, nil when the beer does not exist.
func (r *BeerRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Beer, error) {
	var b domain.Beer
	err := r.db.GetContext(ctx, &b, r.db.Rebind(`SELECT `+beerCols+` FROM beer WHERE id = ?`), id)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query beer: %w", err)
	}
	return &b, nil
}

func (r *BeerRepo) FindAll(ctx context.Context, pr domain.PageRequest) (domain.Page[domain.Beer], error) {
	return r.page(ctx, "", nil, pr)
}

// FindByNameLike matches a LIKE pattern case-insensitively; callers supply the wildcards.
func (r *BeerRepo) FindByNameLike(ctx context.Context, pattern string, pr domain.PageRequest) (domain.Page[domain.Beer], error) {
	return r.page(ctx, `LOWER(beer_name) LIKE LOWER(?)`, []any{pattern}, pr)
}

func (r *BeerRepo) FindByStyle(ctx context.Context, style domain.BeerStyle, pr domain.PageRequest) (domain.Page[domain.Beer], error) {
	return r.page(ctx, `beer_style = ?`, []any{style}, pr)
}

func (r *BeerRepo) FindByNameLikeAndStyle(ctx context.Context, pattern string, style domain.BeerStyle, pr domain.PageRequest) (domain.Page[domain.Beer], error) {
	return r.page(ctx, `LOWER(beer_name) LIKE LOWER(?) AND beer_style = ?`, []any{pattern, style}, pr)
}

// page runs the count and the slice query for one filter. Order is always beer_name ascending.
func (r *BeerRepo) page(ctx context.Context, where string, args []any, pr domain.PageRequest) (domain.Page[domain.Beer], error) {
	if where != "" {
		where = ` WHERE ` + where
	}
	var total int64
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(`SELECT COUNT(*) FROM beer`+where), args...); err != nil {
		return domain.Page[domain.Beer]{}, fmt.Errorf("count beers: %w", err)
	}

	out := []domain.Beer{}
	q := `SELECT ` + beerCols + ` FROM beer` + where + ` ORDER BY beer_name ASC, id ASC LIMIT ? OFFSET ?`
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(q), append(args, pr.Size, pr.Offset())...); err != nil {
		return domain.Page[domain.Beer]{}, fmt.Errorf("list beers: %w", err)
	}
	return domain.NewPage(out, pr, total), nil
}

// Insert assigns id (when unset), version 0 and both timestamps.
func (r *BeerRepo) Insert(ctx context.Context, b *domain.Beer) error {
	return insertBeer(ctx, r.db, b)
}

// InsertBatch inserts all beers in one transaction.
func (r *BeerRepo) InsertBatch(ctx context.Context, beers []*domain.Beer) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, b := range beers {
		if err := insertBeer(ctx, tx, b); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertBeer(ctx context.Context, ex sqlx.ExtContext, b *domain.Beer) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.Version = 0
	b.CreatedDate = now()
	b.UpdatedDate = b.CreatedDate
	_, err := ex.ExecContext(ctx, ex.Rebind(`
		INSERT INTO beer (`+beerCols+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		b.ID, b.Version, b.BeerName, b.BeerStyle, b.UPC, b.Price, b.QuantityOnHand, b.CreatedDate, b.UpdatedDate,
	)
	if err != nil {
		return fmt.Errorf("insert beer: %w", err)
	}
	return nil
}

// Update writes every mutable column guarded by the version the caller read.
// On success b.Version and b.UpdatedDate reflect the stored row.
func (r *BeerRepo) Update(ctx context.Context, b *domain.Beer) error {
	ts := now()
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE beer
		SET beer_name = ?, beer_style = ?, upc = ?, price = ?, quantity_on_hand = ?,
		    version = version + 1, updated_date = ?
		WHERE id = ? AND version = ?`),
		b.BeerName, b.BeerStyle, b.UPC, b.Price, b.QuantityOnHand, ts, b.ID, b.Version,
	)
	if err != nil {
		return fmt.Errorf("update beer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("beer %s: %w", b.ID, ErrOptimisticLock)
	}
	b.Version++
	b.UpdatedDate = ts
	return nil
}

func (r *BeerRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM beer WHERE id = ?`), id); err != nil {
		return false, fmt.Errorf("exists beer: %w", err)
	}
	return n > 0, nil
}

func (r *BeerRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM beer WHERE id = ?`), id); err != nil {
		return fmt.Errorf("delete beer: %w", err)
	}
	return nil
}

func (r *BeerRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM beer`); err != nil {
		return 0, fmt.Errorf("count beers: %w", err)
	}
	return n, nil
}
