package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beerservice/internal/domain"
	"beerservice/internal/events"
	"beerservice/internal/repos"
	"beerservice/internal/services"
)

func beerService(t *testing.T) (*services.BeerService, *recorder) {
	t.Helper()
	rec := &recorder{}
	return services.NewBeerService(repos.NewBeerRepo(memdb(t)), rec, &services.Metrics{}, 25, 1000), rec
}

func seedBeers(t *testing.T, s *services.BeerService, n int) {
	t.Helper()
	styles := []domain.BeerStyle{domain.StyleIPA, domain.StyleLager, domain.StylePaleAle}
	batch := make([]*domain.Beer, 0, n)
	for i := 0; i < n; i++ {
		q := i
		batch = append(batch, &domain.Beer{
			BeerName:       fmt.Sprintf("Beer %04d", i),
			BeerStyle:      styles[i%len(styles)],
			UPC:            fmt.Sprintf("%d", 10000+i),
			Price:          decimal.NewFromInt(10),
			QuantityOnHand: &q,
		})
	}
	require.NoError(t, s.Beers.InsertBatch(context.Background(), batch))
}

func sampleDTO() *domain.BeerDTO {
	return &domain.BeerDTO{
		BeerName:       "Galaxy Cat",
		BeerStyle:      domain.StylePaleAle,
		UPC:            "12356",
		Price:          ptr(decimal.RequireFromString("12.99")),
		QuantityOnHand: ptr(122),
	}
}

func TestListLargeCatalogClampsPageSize(t *testing.T) {
	s, _ := beerService(t)
	seedBeers(t, s, 2413)

	page, err := s.List(context.Background(), services.ListBeersParams{PageNumber: ptr(1), PageSize: ptr(1001)})
	require.NoError(t, err)
	assert.Len(t, page.Content, 1000)
	assert.Equal(t, 3, page.TotalPages)
	assert.EqualValues(t, 2413, page.TotalElements)
	assert.Equal(t, 0, page.Number)
	assert.True(t, page.First)
	assert.False(t, page.Last)
}

func TestListDefaults(t *testing.T) {
	s, _ := beerService(t)
	seedBeers(t, s, 30)

	page, err := s.List(context.Background(), services.ListBeersParams{})
	require.NoError(t, err)
	assert.Len(t, page.Content, 25)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "Beer 0000", page.Content[0].BeerName)

	second, err := s.List(context.Background(), services.ListBeersParams{PageNumber: ptr(2)})
	require.NoError(t, err)
	assert.Len(t, second.Content, 5)
	assert.Equal(t, "Beer 0025", second.Content[0].BeerName)
	assert.True(t, second.Last)
}

func TestListFilteredResultsArePaginated(t *testing.T) {
	s, _ := beerService(t)
	seedBeers(t, s, 90)

	style := domain.StyleIPA
	page, err := s.List(context.Background(), services.ListBeersParams{BeerStyle: &style, PageSize: ptr(10)})
	require.NoError(t, err)
	assert.EqualValues(t, 30, page.TotalElements)
	assert.Len(t, page.Content, 10)
	assert.Equal(t, 3, page.TotalPages)
	for _, b := range page.Content {
		assert.Equal(t, domain.StyleIPA, b.BeerStyle)
	}

	name := "beer 00"
	byName, err := s.List(context.Background(), services.ListBeersParams{BeerName: &name, PageSize: ptr(4), PageNumber: ptr(2)})
	require.NoError(t, err)
	assert.EqualValues(t, 90, byName.TotalElements)
	assert.Len(t, byName.Content, 4)
	assert.Equal(t, "Beer 0004", byName.Content[0].BeerName)

	both, err := s.List(context.Background(), services.ListBeersParams{BeerName: ptr("Beer 000"), BeerStyle: &style})
	require.NoError(t, err)
	// Beer 0000, 0003, 0006, 0009
	assert.EqualValues(t, 4, both.TotalElements)
}

func TestListByNameIsCaseInsensitive(t *testing.T) {
	s, _ := beerService(t)
	ctx := context.Background()
	for _, n := range []string{"Sunshine City IPA", "Hazy ipa", "Crank"} {
		d := sampleDTO()
		d.BeerName = n
		_, err := s.Create(ctx, d)
		require.NoError(t, err)
	}

	page, err := s.List(ctx, services.ListBeersParams{BeerName: ptr("IPA")})
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "Hazy ipa", page.Content[0].BeerName)
	assert.Equal(t, "Sunshine City IPA", page.Content[1].BeerName)

	blank, err := s.List(ctx, services.ListBeersParams{BeerName: ptr("  ")})
	require.NoError(t, err)
	assert.Len(t, blank.Content, 3)
}

func TestListShowInventory(t *testing.T) {
	s, _ := beerService(t)
	seedBeers(t, s, 3)
	ctx := context.Background()

	hidden, err := s.List(ctx, services.ListBeersParams{ShowInventory: ptr(false)})
	require.NoError(t, err)
	for _, b := range hidden.Content {
		assert.Nil(t, b.QuantityOnHand)
	}

	for _, show := range []*bool{nil, ptr(true)} {
		page, err := s.List(ctx, services.ListBeersParams{ShowInventory: show})
		require.NoError(t, err)
		for _, b := range page.Content {
			assert.NotNil(t, b.QuantityOnHand)
		}
	}

	// redaction is view-only
	stored, err := s.Beers.FindAll(ctx, domain.PageRequest{Size: 10})
	require.NoError(t, err)
	assert.NotNil(t, stored.Content[0].QuantityOnHand)
}

func TestCreateGetDelete(t *testing.T) {
	s, rec := beerService(t)
	ctx := context.Background()

	in := sampleDTO()
	in.ID = uuid.New()
	out, err := s.Create(ctx, in)
	require.NoError(t, err)
	assert.NotEqual(t, in.ID, out.ID, "client supplied ids are ignored")
	assert.Equal(t, 0, out.Version)
	assert.False(t, out.CreatedDate.IsZero())
	assert.Equal(t, int64(1), s.Metrics.Snapshot()["beer.object.count"])

	got, err := s.Get(ctx, out.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Galaxy Cat", got.BeerName)

	ok, err := s.Delete(ctx, out.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Delete(ctx, out.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err = s.Get(ctx, out.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.Equal(t, []string{events.BeerCreated, events.BeerDeleted}, rec.types())
}

func TestReplaceOverwritesEverything(t *testing.T) {
	s, _ := beerService(t)
	ctx := context.Background()
	created, err := s.Create(ctx, sampleDTO())
	require.NoError(t, err)

	out, err := s.Replace(ctx, created.ID, &domain.BeerDTO{BeerName: "Crank", BeerStyle: domain.StyleIPA, UPC: "1"})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "Crank", out.BeerName)
	assert.Equal(t, domain.StyleIPA, out.BeerStyle)
	assert.True(t, out.Price.IsZero())
	assert.Nil(t, out.QuantityOnHand)
	assert.Equal(t, 1, out.Version)
	assert.True(t, out.CreatedDate.Equal(created.CreatedDate))

	missing, err := s.Replace(ctx, uuid.New(), sampleDTO())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPatchAppliesPresentFieldsOnly(t *testing.T) {
	s, _ := beerService(t)
	ctx := context.Background()
	created, err := s.Create(ctx, sampleDTO())
	require.NoError(t, err)

	out, err := s.Patch(ctx, created.ID, &domain.BeerDTO{BeerName: "Galaxy Cat v2", QuantityOnHand: ptr(0)})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "Galaxy Cat v2", out.BeerName)
	assert.Equal(t, domain.StylePaleAle, out.BeerStyle)
	assert.Equal(t, "12356", out.UPC)
	assert.True(t, out.Price.Equal(decimal.RequireFromString("12.99")))
	require.NotNil(t, out.QuantityOnHand)
	assert.Equal(t, 0, *out.QuantityOnHand)
	assert.Equal(t, 1, out.Version)

	// blank text never clears a field
	out, err = s.Patch(ctx, created.ID, &domain.BeerDTO{BeerName: "   ", UPC: ""})
	require.NoError(t, err)
	assert.Equal(t, "Galaxy Cat v2", out.BeerName)
	assert.Equal(t, "12356", out.UPC)
}

func TestPatchEmptyIsNoOp(t *testing.T) {
	s, rec := beerService(t)
	ctx := context.Background()
	created, err := s.Create(ctx, sampleDTO())
	require.NoError(t, err)

	out, err := s.Patch(ctx, created.ID, &domain.BeerDTO{})
	require.NoError(t, err)
	assert.Equal(t, created.Version, out.Version)
	assert.True(t, out.UpdatedDate.Equal(created.UpdatedDate))
	assert.Equal(t, []string{events.BeerCreated}, rec.types())
}

func TestPatchIsIdempotent(t *testing.T) {
	s, _ := beerService(t)
	ctx := context.Background()
	created, err := s.Create(ctx, sampleDTO())
	require.NoError(t, err)

	p := &domain.BeerDTO{BeerStyle: domain.StyleStout, Price: ptr(decimal.RequireFromString("5.50"))}
	first, err := s.Patch(ctx, created.ID, p)
	require.NoError(t, err)
	second, err := s.Patch(ctx, created.ID, p)
	require.NoError(t, err)

	assert.Equal(t, first.Version, second.Version)
	assert.Equal(t, first.BeerStyle, second.BeerStyle)
	assert.True(t, first.Price.Equal(*second.Price))

	stored, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StyleStout, stored.BeerStyle)
}

func TestPatchNilLeavesBeerUntouched(t *testing.T) {
	s, rec := beerService(t)
	ctx := context.Background()
	created, err := s.Create(ctx, sampleDTO())
	require.NoError(t, err)

	out, err := s.Patch(ctx, created.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, created.Version, out.Version)
	assert.Equal(t, "Galaxy Cat", out.BeerName)
	assert.Equal(t, []string{events.BeerCreated}, rec.types())
}

func TestPatchMissing(t *testing.T) {
	s, _ := beerService(t)
	out, err := s.Patch(context.Background(), uuid.New(), &domain.BeerDTO{BeerName: "x"})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	s, rec := beerService(t)
	rec.fail = true
	out, err := s.Create(context.Background(), sampleDTO())
	require.NoError(t, err)
	assert.NotNil(t, out)
}
