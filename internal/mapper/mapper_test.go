package mapper_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beerservice/internal/domain"
	"beerservice/internal/mapper"
)

func TestNilInNilOut(t *testing.T) {
	assert.Nil(t, mapper.BeerToDTO(nil))
	assert.Nil(t, mapper.BeerFromDTO(nil))
	assert.Nil(t, mapper.CustomerToDTO(nil))
	assert.Nil(t, mapper.CustomerFromDTO(nil))
	assert.NotNil(t, mapper.BeersToDTO(nil))
}

func TestBeerRoundTrip(t *testing.T) {
	q := 7
	now := time.Now().UTC()
	b := &domain.Beer{
		ID: uuid.New(), Version: 2, BeerName: "Crank", BeerStyle: domain.StylePaleAle, UPC: "12356222",
		Price: decimal.RequireFromString("11.99"), QuantityOnHand: &q, CreatedDate: now, UpdatedDate: now,
		Categories: []domain.Category{{Description: "x"}},
	}
	d := mapper.BeerToDTO(b)
	require.NotNil(t, d.Price)
	assert.True(t, d.Price.Equal(b.Price))
	require.NotNil(t, d.QuantityOnHand)
	assert.NotSame(t, b.QuantityOnHand, d.QuantityOnHand)

	back := mapper.BeerFromDTO(d)
	assert.Equal(t, b.ID, back.ID)
	assert.Equal(t, b.Version, back.Version)
	assert.Equal(t, b.BeerName, back.BeerName)
	assert.Equal(t, 7, *back.QuantityOnHand)
	assert.Nil(t, back.Categories, "relationships are never filled from a DTO")
}

func TestBeerFromDTONilPrice(t *testing.T) {
	b := mapper.BeerFromDTO(&domain.BeerDTO{BeerName: "x"})
	assert.True(t, b.Price.IsZero())
	assert.Nil(t, b.QuantityOnHand)
}

func TestCustomerRoundTrip(t *testing.T) {
	c := &domain.Customer{ID: uuid.New(), Name: "Customer 1", Email: "c@example.com", Orders: []*domain.BeerOrder{{}}}
	back := mapper.CustomerFromDTO(mapper.CustomerToDTO(c))
	assert.Equal(t, c.ID, back.ID)
	assert.Equal(t, c.Email, back.Email)
	assert.Nil(t, back.Orders)

	list := mapper.CustomersToDTO([]domain.Customer{*c})
	require.Len(t, list, 1)
	assert.Equal(t, "Customer 1", list[0].Name)
}
