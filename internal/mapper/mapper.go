// Package mapper converts between persisted entities and transfer objects.
//
// Conversions are total: a nil input yields a nil output. Converting a DTO
// into an entity never fills relationship collections; callers that need
// them set them explicitly.
package mapper

import (
	"github.com/shopspring/decimal"

	"beerservice/internal/domain"
)

func BeerToDTO(b *domain.Beer) *domain.BeerDTO {
	if b == nil {
		return nil
	}
	price := b.Price
	return &domain.BeerDTO{
		ID:             b.ID,
		Version:        b.Version,
		BeerName:       b.BeerName,
		BeerStyle:      b.BeerStyle,
		UPC:            b.UPC,
		Price:          &price,
		QuantityOnHand: copyInt(b.QuantityOnHand),
		CreatedDate:    b.CreatedDate,
		UpdatedDate:    b.UpdatedDate,
	}
}

func BeerFromDTO(d *domain.BeerDTO) *domain.Beer {
	if d == nil {
		return nil
	}
	price := decimal.Zero
	if d.Price != nil {
		price = *d.Price
	}
	return &domain.Beer{
		ID:             d.ID,
		Version:        d.Version,
		BeerName:       d.BeerName,
		BeerStyle:      d.BeerStyle,
		UPC:            d.UPC,
		Price:          price,
		QuantityOnHand: copyInt(d.QuantityOnHand),
		CreatedDate:    d.CreatedDate,
		UpdatedDate:    d.UpdatedDate,
	}
}

// BeersToDTO maps a slice; the result is never nil so it encodes as [].
func BeersToDTO(in []domain.Beer) []domain.BeerDTO {
	out := make([]domain.BeerDTO, 0, len(in))
	for i := range in {
		out = append(out, *BeerToDTO(&in[i]))
	}
	return out
}

func CustomerToDTO(c *domain.Customer) *domain.CustomerDTO {
	if c == nil {
		return nil
	}
	return &domain.CustomerDTO{
		ID:          c.ID,
		Version:     c.Version,
		Name:        c.Name,
		Email:       c.Email,
		CreatedDate: c.CreatedDate,
		UpdatedDate: c.UpdatedDate,
	}
}

func CustomerFromDTO(d *domain.CustomerDTO) *domain.Customer {
	if d == nil {
		return nil
	}
	return &domain.Customer{
		ID:          d.ID,
		Version:     d.Version,
		Name:        d.Name,
		Email:       d.Email,
		CreatedDate: d.CreatedDate,
		UpdatedDate: d.UpdatedDate,
	}
}

func CustomersToDTO(in []domain.Customer) []domain.CustomerDTO {
	out := make([]domain.CustomerDTO, 0, len(in))
	for i := range in {
		out = append(out, *CustomerToDTO(&in[i]))
	}
	return out
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
