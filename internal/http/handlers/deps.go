package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/jmoiron/sqlx"

	"beerservice/internal/config"
	"beerservice/internal/events"
	"beerservice/internal/log"
	"beerservice/internal/repos"
	"beerservice/internal/services"
)

type Deps struct {
	Auth *services.AuthService

	BeerHandler     *BeerHandler
	CustomerHandler *CustomerHandler
	OrderHandler    *OrderHandler
	CategoryHandler *CategoryHandler
	AuthHandler     *AuthHandler
	ActuatorHandler *ActuatorHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService, pub events.Publisher, m *services.Metrics) *Deps {
	beerRepo := repos.NewBeerRepo(db)
	customerRepo := repos.NewCustomerRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	catRepo := repos.NewCategoryRepo(db)

	beerSvc := services.NewBeerService(beerRepo, pub, m, cfg.DefaultPageSize, cfg.PageLimit)
	customerSvc := services.NewCustomerService(customerRepo, pub)
	orderSvc := services.NewOrderService(customerRepo, beerRepo, orderRepo, pub)
	catSvc := services.NewCategoryService(catRepo, beerRepo)

	return &Deps{
		Auth:            auth,
		BeerHandler:     &BeerHandler{Beers: beerSvc},
		CustomerHandler: &CustomerHandler{Customers: customerSvc},
		OrderHandler:    &OrderHandler{Orders: orderSvc},
		CategoryHandler: &CategoryHandler{Categories: catSvc},
		AuthHandler:     &AuthHandler{Auth: auth},
		ActuatorHandler: &ActuatorHandler{DB: db, Driver: cfg.DBDriver, Beers: beerRepo, Counters: m},
	}
}

// Register mounts the access policy and every route. store backs the token
// limiter; nil keeps counters in memory.
func Register(app *fiber.App, d *Deps, store fiber.Storage) {
	app.Use(Authorize(d.Auth, DefaultPolicy()))

	api := app.Group("/api/v1")

	api.Post("/auth/token", limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		Storage:    store,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|token"
		},
		LimitReached: func(c *fiber.Ctx) error {
			log.Security(c, "rate.token.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}), d.AuthHandler.Token)

	api.Get("/beer", d.BeerHandler.List)
	api.Post("/beer", d.BeerHandler.Create)
	api.Get("/beer/:id", d.BeerHandler.Get)
	api.Put("/beer/:id", d.BeerHandler.Replace)
	api.Patch("/beer/:id", d.BeerHandler.Patch)
	api.Delete("/beer/:id", d.BeerHandler.Delete)

	api.Get("/customer", d.CustomerHandler.List)
	api.Post("/customer", d.CustomerHandler.Create)
	api.Get("/customer/:id", d.CustomerHandler.Get)
	api.Put("/customer/:id", d.CustomerHandler.Replace)
	api.Patch("/customer/:id", d.CustomerHandler.Patch)
	api.Delete("/customer/:id", d.CustomerHandler.Delete)
	api.Get("/customer/:id/orders", d.OrderHandler.List)
	api.Post("/customer/:id/orders", d.OrderHandler.Place)

	api.Get("/category", d.CategoryHandler.List)
	api.Post("/category", d.CategoryHandler.Create)
	api.Post("/category/:id/beers/:beerId", d.CategoryHandler.AssignBeer)

	app.Get("/actuator/health", d.ActuatorHandler.Health)
	app.Get("/actuator/info", d.ActuatorHandler.Info)
	app.Get("/actuator/metrics", d.ActuatorHandler.Metrics)

	app.Use(notFound)
}
