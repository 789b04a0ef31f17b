// Package main provides the flowd API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/goflowd/flowd/pkg/engine"
	"github.com/goflowd/flowd/pkg/eventbus"
	"github.com/goflowd/flowd/pkg/identity"
	"github.com/goflowd/flowd/pkg/persistence"
	"github.com/goflowd/flowd/pkg/registry"
	"github.com/goflowd/flowd/pkg/web"
)

type API struct {
	logger      *slog.Logger
	registry    *registry.Registry
	persistence persistence.Persistence
	identity    identity.Manager
	eventBus    eventbus.EventBus
	validate    *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	reg *registry.Registry,
	store persistence.Persistence,
	identityManager identity.Manager,
	eventBus eventbus.EventBus,
) *API {
	return &API{
		logger:      logger,
		registry:    reg,
		persistence: store,
		identity:    identityManager,
		eventBus:    eventBus,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	runtime := engine.NewEngine(a.logger, a.registry, a.persistence, a.eventBus)
	handlers := web.NewAPIHandlers(runtime, runtime, a.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("flowd API")
	})

	v1 := app.Group("/v1", web.NewAuthMiddleware(a.identity))

	v1.Get("/process-definitions", handlers.GetDefinitions)

	p := v1.Group("/process-instances")
	p.Post("/", handlers.StartProcess)
	p.Get("/", handlers.GetProcessInstances)
	p.Get("/:id", handlers.GetProcessInstance)
	p.Get("/:id/variables", handlers.GetVariables)
	p.Put("/:id/variables", handlers.SetVariables)

	tasks := v1.Group("/tasks")
	tasks.Get("/", handlers.GetTasks)
	tasks.Post("/:id/claim", handlers.ClaimTask)
	tasks.Post("/:id/complete", handlers.CompleteTask)
	tasks.Get("/:id/candidate-groups", handlers.GetCandidateGroups)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	return app.Listen(":" + strconv.Itoa(port))
}
