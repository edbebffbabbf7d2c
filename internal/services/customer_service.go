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

type CustomerService struct {
	Customers *repos.CustomerRepo
	Events    events.Publisher
}

func NewCustomerService(customers *repos.CustomerRepo, pub events.Publisher) *CustomerService {
	return &CustomerService{Customers: customers, Events: pub}
}

func (s *CustomerService) List(ctx context.Context) ([]domain.CustomerDTO, error) {
	cs, err := s.Customers.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.CustomersToDTO(cs), nil
}

func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*domain.CustomerDTO, error) {
	c, err := s.Customers.FindByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	return mapper.CustomerToDTO(c), nil
}

func (s *CustomerService) Create(ctx context.Context, d *domain.CustomerDTO) (*domain.CustomerDTO, error) {
	c := mapper.CustomerFromDTO(d)
	c.ID = uuid.Nil
	c.Email = strings.TrimSpace(c.Email)
	if err := s.Customers.Insert(ctx, c); err != nil {
		return nil, err
	}
	out := mapper.CustomerToDTO(c)
	publish(ctx, s.Events, events.CustomerCreated, c.ID.String(), out)
	return out, nil
}

func (s *CustomerService) Replace(ctx context.Context, id uuid.UUID, d *domain.CustomerDTO) (*domain.CustomerDTO, error) {
	c, err := s.Customers.FindByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	c.Name = d.Name
	c.Email = strings.TrimSpace(d.Email)
	if err := s.Customers.Update(ctx, c); err != nil {
		return nil, err
	}
	out := mapper.CustomerToDTO(c)
	publish(ctx, s.Events, events.CustomerUpdated, c.ID.String(), out)
	return out, nil
}

// Patch follows the same rules as BeerService.Patch.
func (s *CustomerService) Patch(ctx context.Context, id uuid.UUID, d *domain.CustomerDTO) (*domain.CustomerDTO, error) {
	c, err := s.Customers.FindByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	if d == nil {
		return mapper.CustomerToDTO(c), nil
	}
	changed := false
	if strings.TrimSpace(d.Name) != "" && d.Name != c.Name {
		c.Name, changed = d.Name, true
	}
	if email := strings.TrimSpace(d.Email); email != "" && email != c.Email {
		c.Email, changed = email, true
	}
	if !changed {
		return mapper.CustomerToDTO(c), nil
	}
	if err := s.Customers.Update(ctx, c); err != nil {
		return nil, err
	}
	out := mapper.CustomerToDTO(c)
	publish(ctx, s.Events, events.CustomerUpdated, c.ID.String(), out)
	return out, nil
}

func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	ok, err := s.Customers.ExistsByID(ctx, id)
	if err != nil || !ok {
		return false, err
	}
	if err := s.Customers.DeleteByID(ctx, id); err != nil {
		return false, err
	}
	publish(ctx, s.Events, events.CustomerDeleted, id.String(), nil)
	return true, nil
}
