package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beerservice/internal/domain"
)

func TestCustomerCRUD(t *testing.T) {
	a := newTestApp(t)
	admin := basic("admin", "admin")

	resp := a.do(t, "POST", "/api/v1/customer", map[string]any{"name": "Customer 1", "email": "one@example.com"}, admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var c domain.CustomerDTO
	decode(t, resp, &c)
	path := "/api/v1/customer/" + c.ID.String()
	assert.Equal(t, path, resp.Header.Get("Location"))

	resp = a.do(t, "PATCH", path, map[string]any{"name": "Customer One"}, admin)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = a.do(t, "GET", path, nil, basic("user", "user"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &c)
	assert.Equal(t, "Customer One", c.Name)
	assert.Equal(t, "one@example.com", c.Email)

	resp = a.do(t, "PUT", path, map[string]any{"name": "", "email": "bad"}, admin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = a.do(t, "PUT", path, map[string]any{"name": "Replaced"}, admin)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var list []domain.CustomerDTO
	resp = a.do(t, "GET", "/api/v1/customer", nil, admin)
	decode(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Replaced", list[0].Name)
	assert.Empty(t, list[0].Email)

	resp = a.do(t, "DELETE", path, nil, admin)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = a.do(t, "GET", path, nil, admin)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrdersForCustomer(t *testing.T) {
	a := newTestApp(t)
	admin := basic("admin", "admin")
	beer := createBeer(t, a, "Crank", domain.StylePaleAle)

	resp := a.do(t, "POST", "/api/v1/customer", map[string]any{"name": "Customer 1"}, admin)
	var c domain.CustomerDTO
	decode(t, resp, &c)
	path := "/api/v1/customer/" + c.ID.String() + "/orders"

	resp = a.do(t, "POST", path, map[string]any{
		"customerRef":    "po-1",
		"lines":          []map[string]any{{"beerId": beer.ID, "orderQuantity": 2}},
		"trackingNumber": "TRK-9",
	}, admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order domain.BeerOrder
	decode(t, resp, &order)
	assert.Equal(t, c.ID, order.CustomerID)
	require.NotNil(t, order.Shipment)
	assert.Equal(t, order.ID, order.Shipment.BeerOrderID)

	resp = a.do(t, "POST", path, map[string]any{"lines": []map[string]any{}}, admin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = a.do(t, "POST", path, map[string]any{
		"lines": []map[string]any{{"beerId": "3f1c2a5e-8d5b-4f7a-9a55-0b6f0f5b8c11", "orderQuantity": 1}},
	}, admin)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = a.do(t, "GET", path, nil, admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var withOrders domain.Customer
	decode(t, resp, &withOrders)
	require.Len(t, withOrders.Orders, 1)
	assert.Equal(t, "po-1", withOrders.Orders[0].CustomerRef)
	require.Len(t, withOrders.Orders[0].Lines, 1)
	assert.Equal(t, 2, withOrders.Orders[0].Lines[0].OrderQuantity)
}

func TestCategoryAssignment(t *testing.T) {
	a := newTestApp(t)
	user := basic("user", "user")
	beer := createBeer(t, a, "Crank", domain.StylePaleAle)

	resp := a.do(t, "POST", "/api/v1/category", map[string]any{"description": " "}, user)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = a.do(t, "POST", "/api/v1/category", map[string]any{"description": "Seasonal"}, user)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var cat domain.Category
	decode(t, resp, &cat)

	resp = a.do(t, "POST", "/api/v1/category/"+cat.ID.String()+"/beers/"+beer.ID.String(), nil, user)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Category       domain.Category   `json:"category"`
		BeerCategories []domain.Category `json:"beerCategories"`
	}
	decode(t, resp, &out)
	require.Len(t, out.Category.Beers, 1)
	assert.Equal(t, beer.ID, out.Category.Beers[0].ID)
	require.Len(t, out.BeerCategories, 1)
	assert.Equal(t, "Seasonal", out.BeerCategories[0].Description)

	resp = a.do(t, "POST", "/api/v1/category/"+cat.ID.String()+"/beers/not-a-uuid", nil, user)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
