package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"beerservice/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.DB.GetContext(ctx, &u, r.DB.Rebind(`SELECT username, password_hash, role FROM app_user WHERE username = ?`), username)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
