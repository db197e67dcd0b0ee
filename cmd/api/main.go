package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/davidmparra/libreria-api/internal/application/catalog"
	"github.com/davidmparra/libreria-api/internal/application/ledger"
	"github.com/davidmparra/libreria-api/internal/application/sales"
	"github.com/davidmparra/libreria-api/internal/infrastructure/postgres"
	httpRouter "github.com/davidmparra/libreria-api/internal/interfaces/http"
	"github.com/davidmparra/libreria-api/pkg/config"
	"github.com/davidmparra/libreria-api/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios de lectura (atados al pool); las escrituras pasan por el TxRunner.
	genreRepo := postgres.NewGenreRepository(pool)
	bookRepo := postgres.NewBookRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movRepo := postgres.NewMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.Ledger.LockTimeout)

	ledgerUC := ledger.NewUseCase(txRunner, bookRepo, stockRepo, movRepo, ledger.Config{
		MaxRetries: cfg.Ledger.MaxRetries,
	})
	salesUC := sales.NewUseCase(txRunner, ledgerUC, bookRepo, genreRepo, saleRepo, cfg.Ledger.MaxRetries)
	genreUC := catalog.NewGenreUseCase(genreRepo, bookRepo)
	bookUC := catalog.NewBookUseCase(bookRepo, genreRepo, movRepo, saleRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.LoggingMiddleware(log))

	httpRouter.Router(app, httpRouter.RouterDeps{
		GenreUC:   genreUC,
		BookUC:    bookUC,
		LedgerUC:  ledgerUC,
		SalesUC:   salesUC,
		JWTSecret: cfg.JWT.Secret,
	})

	// Apagado ordenado: se termina de atender lo en vuelo antes de cerrar el pool.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("señal de apagado recibida")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("apagado del servidor HTTP")
		}
	}()

	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
	if err := app.Listen(cfg.HTTP.Addr()); err != nil {
		log.Fatal().Err(err).Msg("servidor HTTP")
	}
	log.Info().Msg("aplicación detenida")
}
