package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BeerStyle string

const (
	StyleLager   BeerStyle = "LAGER"
	StylePilsner BeerStyle = "PILSNER"
	StyleStout   BeerStyle = "STOUT"
	StyleGose    BeerStyle = "GOSE"
	StylePorter  BeerStyle = "PORTER"
	StyleAle     BeerStyle = "ALE"
	StyleWheat   BeerStyle = "WHEAT"
	StyleIPA     BeerStyle = "IPA"
	StylePaleAle BeerStyle = "PALE_ALE"
	StyleSaison  BeerStyle = "SAISON"
	StyleCider   BeerStyle = "CIDER"
	StyleBitter  BeerStyle = "BITTER"
)

var BeerStyles = []BeerStyle{
	StyleLager, StylePilsner, StyleStout, StyleGose, StylePorter, StyleAle,
	StyleWheat, StyleIPA, StylePaleAle, StyleSaison, StyleCider, StyleBitter,
}

// ParseBeerStyle is case-insensitive: "pale_ale" and "PALE_ALE" are the same style.
func ParseBeerStyle(s string) (BeerStyle, error) {
	up := BeerStyle(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range BeerStyles {
		if st == up {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown beer style %q", s)
}

func (s BeerStyle) Valid() bool {
	_, err := ParseBeerStyle(string(s))
	return err == nil
}

// UnmarshalText rejects unknown styles while decoding request bodies.
// The empty string decodes to the zero style, which PATCH treats as absent.
func (s *BeerStyle) UnmarshalText(b []byte) error {
	if len(strings.TrimSpace(string(b))) == 0 {
		*s = ""
		return nil
	}
	st, err := ParseBeerStyle(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Beer is the persisted shape, including relationships.
type Beer struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	Version        int             `db:"version" json:"version"`
	BeerName       string          `db:"beer_name" json:"beerName"`
	BeerStyle      BeerStyle       `db:"beer_style" json:"beerStyle"`
	UPC            string          `db:"upc" json:"upc"`
	Price          decimal.Decimal `db:"price" json:"price"`
	QuantityOnHand *int            `db:"quantity_on_hand" json:"quantityOnHand"`
	CreatedDate    time.Time       `db:"created_date" json:"createdDate"`
	UpdatedDate    time.Time       `db:"updated_date" json:"updatedDate"`

	Categories []Category `db:"-" json:"-"`
}

// BeerDTO crosses the HTTP boundary. Price and QuantityOnHand are pointers so a
// PATCH body can leave them out without meaning zero.
type BeerDTO struct {
	ID             uuid.UUID        `json:"id"`
	Version        int              `json:"version"`
	BeerName       string           `json:"beerName" validate:"notblank,max=50"`
	BeerStyle      BeerStyle        `json:"beerStyle" validate:"required,beerstyle"`
	UPC            string           `json:"upc" validate:"notblank,max=255"`
	Price          *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	QuantityOnHand *int             `json:"quantityOnHand" validate:"omitempty,min=0"`
	CreatedDate    time.Time        `json:"createdDate"`
	UpdatedDate    time.Time        `json:"updatedDate"`
}
