package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"beerservice/internal/domain"
	"beerservice/internal/events"
	"beerservice/internal/mapper"
	"beerservice/internal/repos"
)

type BeerService struct {
	Beers   *repos.BeerRepo
	Events  events.Publisher
	Metrics *Metrics

	DefaultPageSize int
	PageLimit       int
}

func NewBeerService(beers *repos.BeerRepo, pub events.Publisher, m *Metrics, defaultPageSize, pageLimit int) *BeerService {
	return &BeerService{Beers: beers, Events: pub, Metrics: m, DefaultPageSize: defaultPageSize, PageLimit: pageLimit}
}

// ListBeersParams carries the optional query values of a listing request.
type ListBeersParams struct {
	BeerName      *string
	BeerStyle     *domain.BeerStyle
	ShowInventory *bool
	PageNumber    *int
	PageSize      *int
}

func (s *BeerService) List(ctx context.Context, p ListBeersParams) (domain.Page[domain.BeerDTO], error) {
	pr := BuildPageRequest(p.PageNumber, p.PageSize, s.DefaultPageSize, s.PageLimit)

	hasName := p.BeerName != nil && strings.TrimSpace(*p.BeerName) != ""
	hasStyle := p.BeerStyle != nil && *p.BeerStyle != ""

	var (
		page domain.Page[domain.Beer]
		err  error
	)
	switch {
	case hasName && hasStyle:
		page, err = s.Beers.FindByNameLikeAndStyle(ctx, likePattern(*p.BeerName), *p.BeerStyle, pr)
	case hasName:
		page, err = s.Beers.FindByNameLike(ctx, likePattern(*p.BeerName), pr)
	case hasStyle:
		page, err = s.Beers.FindByStyle(ctx, *p.BeerStyle, pr)
	default:
		page, err = s.Beers.FindAll(ctx, pr)
	}
	if err != nil {
		return domain.Page[domain.BeerDTO]{}, err
	}
	s.Metrics.beerListed()

	if p.ShowInventory != nil && !*p.ShowInventory {
		for i := range page.Content {
			page.Content[i].QuantityOnHand = nil
		}
	}
	return domain.MapPage(page, func(b domain.Beer) domain.BeerDTO { return *mapper.BeerToDTO(&b) }), nil
}

func likePattern(name string) string { return "%" + name + "%" }

// Get returns nil when the beer does not exist.
func (s *BeerService) Get(ctx context.Context, id uuid.UUID) (*domain.BeerDTO, error) {
	b, err := s.Beers.FindByID(ctx, id)
	if err != nil || b == nil {
		return nil, err
	}
	return mapper.BeerToDTO(b), nil
}

func (s *BeerService) Create(ctx context.Context, d *domain.BeerDTO) (*domain.BeerDTO, error) {
	b := mapper.BeerFromDTO(d)
	b.ID = uuid.Nil
	if err := s.Beers.Insert(ctx, b); err != nil {
		return nil, err
	}
	s.Metrics.beerCreated()
	out := mapper.BeerToDTO(b)
	publish(ctx, s.Events, events.BeerCreated, b.ID.String(), out)
	return out, nil
}

// Replace overwrites every mutable field. Returns nil when the beer does not exist.
func (s *BeerService) Replace(ctx context.Context, id uuid.UUID, d *domain.BeerDTO) (*domain.BeerDTO, error) {
	b, err := s.Beers.FindByID(ctx, id)
	if err != nil || b == nil {
		return nil, err
	}
	src := mapper.BeerFromDTO(d)
	b.BeerName = src.BeerName
	b.BeerStyle = src.BeerStyle
	b.UPC = src.UPC
	b.Price = src.Price
	b.QuantityOnHand = src.QuantityOnHand
	if err := s.Beers.Update(ctx, b); err != nil {
		return nil, err
	}
	out := mapper.BeerToDTO(b)
	publish(ctx, s.Events, events.BeerUpdated, b.ID.String(), out)
	return out, nil
}

// Patch applies the non-blank text fields and the non-nil optional fields.
// Nothing can be cleared. When no field changes the row is not written, so
// version and updatedDate stay as they were. Returns nil when the beer does not exist.
func (s *BeerService) Patch(ctx context.Context, id uuid.UUID, d *domain.BeerDTO) (*domain.BeerDTO, error) {
	b, err := s.Beers.FindByID(ctx, id)
	if err != nil || b == nil {
		return nil, err
	}
	if d == nil {
		return mapper.BeerToDTO(b), nil
	}

	changed := false
	if name := d.BeerName; strings.TrimSpace(name) != "" && name != b.BeerName {
		b.BeerName, changed = name, true
	}
	if d.BeerStyle != "" && d.BeerStyle != b.BeerStyle {
		b.BeerStyle, changed = d.BeerStyle, true
	}
	if upc := d.UPC; strings.TrimSpace(upc) != "" && upc != b.UPC {
		b.UPC, changed = upc, true
	}
	if d.Price != nil && !d.Price.Equal(b.Price) {
		b.Price, changed = *d.Price, true
	}
	if q := d.QuantityOnHand; q != nil && (b.QuantityOnHand == nil || *q != *b.QuantityOnHand) {
		v := *q
		b.QuantityOnHand, changed = &v, true
	}

	if !changed {
		return mapper.BeerToDTO(b), nil
	}
	if err := s.Beers.Update(ctx, b); err != nil {
		return nil, err
	}
	out := mapper.BeerToDTO(b)
	publish(ctx, s.Events, events.BeerUpdated, b.ID.String(), out)
	return out, nil
}

// Delete reports false when there was nothing to delete.
func (s *BeerService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	ok, err := s.Beers.ExistsByID(ctx, id)
	if err != nil || !ok {
		return false, err
	}
	if err := s.Beers.DeleteByID(ctx, id); err != nil {
		return false, err
	}
	publish(ctx, s.Events, events.BeerDeleted, id.String(), nil)
	return true, nil
}
