package services

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"

	"beerservice/internal/domain"
	"beerservice/internal/repos"
)

// Bootstrap seeds demo data on an empty database.
type Bootstrap struct {
	Beers     *repos.BeerRepo
	Customers *repos.CustomerRepo
	CSVPath   string
}

func (b *Bootstrap) Run(ctx context.Context) error {
	if err := b.loadBeers(ctx); err != nil {
		return err
	}
	if err := b.loadCSV(ctx); err != nil {
		return err
	}
	return b.loadCustomers(ctx)
}

func (b *Bootstrap) loadBeers(ctx context.Context) error {
	n, err := b.Beers.Count(ctx)
	if err != nil || n > 0 {
		return err
	}
	q := func(v int) *int { return &v }
	beers := []*domain.Beer{
		{BeerName: "Galaxy Cat", BeerStyle: domain.StylePaleAle, UPC: "12356", Price: decimal.RequireFromString("12.99"), QuantityOnHand: q(122)},
		{BeerName: "Crank", BeerStyle: domain.StylePaleAle, UPC: "12356222", Price: decimal.RequireFromString("11.99"), QuantityOnHand: q(392)},
		{BeerName: "Sunshine City", BeerStyle: domain.StyleIPA, UPC: "12356", Price: decimal.RequireFromString("13.99"), QuantityOnHand: q(144)},
	}
	if err := b.Beers.InsertBatch(ctx, beers); err != nil {
		return err
	}
	log.Printf("[seed] %d beers", len(beers))
	return nil
}

func (b *Bootstrap) loadCSV(ctx context.Context) error {
	if b.CSVPath == "" {
		return nil
	}
	n, err := b.Beers.Count(ctx)
	if err != nil || n >= 10 {
		return err
	}
	f, err := os.Open(b.CSVPath)
	if err != nil {
		return fmt.Errorf("open beer csv: %w", err)
	}
	defer f.Close()

	recs, err := ParseBeerCSV(f)
	if err != nil {
		return err
	}
	beers := make([]*domain.Beer, 0, len(recs))
	for _, r := range recs {
		beers = append(beers, BeerFromCSV(r))
	}
	if err := b.Beers.InsertBatch(ctx, beers); err != nil {
		return err
	}
	log.Printf("[seed] %d beers from %s", len(beers), b.CSVPath)
	return nil
}

func (b *Bootstrap) loadCustomers(ctx context.Context) error {
	n, err := b.Customers.Count(ctx)
	if err != nil || n > 0 {
		return err
	}
	for i := 1; i <= 3; i++ {
		c := &domain.Customer{Name: fmt.Sprintf("Customer %d", i)}
		if err := b.Customers.Insert(ctx, c); err != nil {
			return err
		}
	}
	log.Printf("[seed] 3 customers")
	return nil
}
