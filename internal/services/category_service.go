package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"beerservice/internal/domain"
	"beerservice/internal/repos"
)

type CategoryInput struct {
	Description string `json:"description" validate:"notblank,max=50"`
}

type CategoryService struct {
	Categories *repos.CategoryRepo
	Beers      *repos.BeerRepo
}

func NewCategoryService(categories *repos.CategoryRepo, beers *repos.BeerRepo) *CategoryService {
	return &CategoryService{Categories: categories, Beers: beers}
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	c := &domain.Category{Description: in.Description}
	if err := s.Categories.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.Categories.List(ctx)
}

// AssignBeer links a beer to a category and returns both sides with each
// collection holding the other. Assigning twice is harmless.
func (s *CategoryService) AssignBeer(ctx context.Context, categoryID, beerID uuid.UUID) (*domain.Category, *domain.Beer, error) {
	cat, err := s.Categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, nil, err
	}
	if cat == nil {
		return nil, nil, fmt.Errorf("category %s: %w", categoryID, ErrNotFound)
	}
	beer, err := s.Beers.FindByID(ctx, beerID)
	if err != nil {
		return nil, nil, err
	}
	if beer == nil {
		return nil, nil, fmt.Errorf("beer %s: %w", beerID, ErrNotFound)
	}

	if cat.Beers, err = s.Categories.Beers(ctx, categoryID); err != nil {
		return nil, nil, err
	}
	if beer.Categories, err = s.Categories.ForBeer(ctx, beerID); err != nil {
		return nil, nil, err
	}
	if err := s.Categories.Link(ctx, categoryID, beerID); err != nil {
		return nil, nil, err
	}

	if !containsBeer(cat.Beers, beer.ID) {
		cat.Beers = append(cat.Beers, *beer)
	}
	if !containsCategory(beer.Categories, cat.ID) {
		beer.Categories = append(beer.Categories, *cat)
	}
	return cat, beer, nil
}

func containsBeer(bs []domain.Beer, id uuid.UUID) bool {
	for _, b := range bs {
		if b.ID == id {
			return true
		}
	}
	return false
}

func containsCategory(cs []domain.Category, id uuid.UUID) bool {
	for _, c := range cs {
		if c.ID == id {
			return true
		}
	}
	return false
}
