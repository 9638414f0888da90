package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/avendano/puntoventa-api/internal/application/sales"
	"github.com/avendano/puntoventa-api/internal/application/usecase"
	"github.com/avendano/puntoventa-api/internal/domain/repository"
	"github.com/avendano/puntoventa-api/internal/infrastructure/events"
	"github.com/avendano/puntoventa-api/internal/infrastructure/mongodb"
	infrapdf "github.com/avendano/puntoventa-api/internal/infrastructure/pdf"
	"github.com/avendano/puntoventa-api/internal/infrastructure/postgres"
	httpRouter "github.com/avendano/puntoventa-api/internal/interfaces/http"
	"github.com/avendano/puntoventa-api/pkg/config"
	"github.com/avendano/puntoventa-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Storage.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Adaptadores de persistencia según el backend configurado.
	var (
		txRunner     sales.TxRunner
		productoRepo repository.ProductoRepository
		clienteRepo  repository.ClienteRepository
		ventaRepo    repository.VentaRepository
	)
	switch cfg.Storage.Backend {
	case "mongo":
		db, err := mongodb.NewDatabase(ctx, cfg.Mongo)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a MongoDB")
		}
		defer func() { _ = db.Client().Disconnect(context.Background()) }()
		txRunner = mongodb.NewTxRunner(db, log.Zerolog())
		productoRepo = mongodb.NewProductoRepository(db, nil)
		clienteRepo = mongodb.NewClienteRepository(db, nil)
		ventaRepo = mongodb.NewVentaRepository(db, nil)
	default: // postgres
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner = postgres.NewTxRunner(pool)
		productoRepo = postgres.NewProductoRepository(pool)
		clienteRepo = postgres.NewClienteRepository(pool)
		ventaRepo = postgres.NewVentaRepository(pool)
	}

	// Señal de invalidación del dashboard: Redis pub/sub o no-op si no hay URL.
	var notifier sales.DashboardNotifier = events.NewNoopNotifier()
	if cfg.Redis.URL != "" {
		rdb, err := events.NewRedis(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer func() { _ = rdb.Close() }()
		notifier = events.NewRedisNotifier(rdb, log.Zerolog())
	}

	productoUC := usecase.NewProductoUseCase(productoRepo)
	clienteUC := usecase.NewClienteUseCase(clienteRepo)
	crearVentaUC := sales.NewCreateSaleUseCase(txRunner, productoRepo, clienteRepo, notifier, log.Zerolog())
	eliminarVentaUC := sales.NewDeleteSaleUseCase(txRunner, ventaRepo, notifier, log.Zerolog())
	ventaQueriesUC := sales.NewSaleQueryUseCase(ventaRepo)
	ventaEstadoUC := sales.NewUpdateEstadoUseCase(ventaRepo, notifier, log.Zerolog())
	reciboUC := sales.NewReceiptUseCase(ventaRepo, productoRepo, clienteRepo, infrapdf.NewMarotoReciboGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PuntoVenta API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductoUC:    productoUC,
		ClienteUC:     clienteUC,
		CrearVenta:    crearVentaUC,
		EliminarVenta: eliminarVentaUC,
		VentaQueries:  ventaQueriesUC,
		VentaEstado:   ventaEstadoUC,
		Recibo:        reciboUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado del servidor HTTP")
	}
	log.Info().Msg("servidor detenido")
}
