package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"beerservice/internal/domain"
)

// BeerCSVRecord is one row of the craft beer dataset; only the columns the
// import uses are kept.
type BeerCSVRecord struct {
	Row    string
	CountX *int
	Beer   string
	Style  string
}

var csvStyles = map[string]domain.BeerStyle{
	"American IPA":                        domain.StyleIPA,
	"American Double / Imperial IPA":      domain.StyleIPA,
	"Belgian IPA":                         domain.StyleIPA,
	"Oatmeal Stout":                       domain.StyleStout,
	"American Stout":                      domain.StyleStout,
	"Milk / Sweet Stout":                  domain.StyleStout,
	"Schwarzbier":                         domain.StyleStout,
	"American Porter":                     domain.StylePorter,
	"Baltic Porter":                       domain.StylePorter,
	"Saison / Farmhouse Ale":              domain.StyleSaison,
	"Cider":                               domain.StyleCider,
	"Fruit / Vegetable Beer":              domain.StyleWheat,
	"Berliner Weissbier":                  domain.StyleWheat,
	"Altbier":                             domain.StyleWheat,
	"Winter Warmer":                       domain.StyleWheat,
	"Hefeweizen":                          domain.StyleWheat,
	"Rauchbier":                           domain.StyleWheat,
	"German Pilsener":                     domain.StylePilsner,
	"Czech Pilsener":                      domain.StylePilsner,
	"American Pale Lager":                 domain.StyleLager,
	"Vienna Lager":                        domain.StyleLager,
	"Euro Pale Lager":                     domain.StyleLager,
	"Munich Helles Lager":                 domain.StyleLager,
	"Dortmunder / Export Lager":           domain.StyleLager,
	"American Adjunct Lager":              domain.StyleLager,
	"Extra Special / Strong Bitter (ESB)": domain.StyleBitter,
}

// MapCSVStyle maps a dataset style name onto a BeerStyle; unknown names are ALE.
func MapCSVStyle(s string) domain.BeerStyle {
	if st, ok := csvStyles[strings.TrimSpace(s)]; ok {
		return st
	}
	return domain.StyleAle
}

// ParseBeerCSV reads records by header name. Rows with too few columns are skipped.
func ParseBeerCSV(r io.Reader) ([]BeerCSVRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, name := range []string{"row", "beer", "style"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("csv header missing %q", name)
		}
	}
	countIdx, hasCount := col["count.x"]

	var out []BeerCSVRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if len(row) <= max(col["row"], col["beer"], col["style"]) {
			continue
		}
		rec := BeerCSVRecord{
			Row:   strings.TrimSpace(row[col["row"]]),
			Beer:  strings.TrimSpace(row[col["beer"]]),
			Style: strings.TrimSpace(row[col["style"]]),
		}
		if hasCount && countIdx < len(row) {
			if n, err := strconv.Atoi(strings.TrimSpace(row[countIdx])); err == nil {
				rec.CountX = &n
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// BeerFromCSV builds an unsaved beer from a record.
func BeerFromCSV(rec BeerCSVRecord) *domain.Beer {
	var qty *int
	if rec.CountX != nil {
		v := *rec.CountX
		qty = &v
	}
	return &domain.Beer{
		BeerName:       abbreviate(rec.Beer, 50),
		BeerStyle:      MapCSVStyle(rec.Style),
		UPC:            rec.Row,
		Price:          decimal.NewFromInt(10),
		QuantityOnHand: qty,
	}
}

// abbreviate shortens s to at most n runes, ending in "..." when cut.
func abbreviate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
