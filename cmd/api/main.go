package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/tu-usuario/stock-ledger/internal/application/auth"
	"github.com/tu-usuario/stock-ledger/internal/application/ledger"
	"github.com/tu-usuario/stock-ledger/internal/application/usecase"
	"github.com/tu-usuario/stock-ledger/internal/infrastructure/mail"
	"github.com/tu-usuario/stock-ledger/internal/infrastructure/monitor"
	"github.com/tu-usuario/stock-ledger/internal/infrastructure/postgres"
	httpapi "github.com/tu-usuario/stock-ledger/internal/interfaces/http"
	"github.com/tu-usuario/stock-ledger/migrations"
	"github.com/tu-usuario/stock-ledger/pkg/config"
	"github.com/tu-usuario/stock-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})
	log.Info().Str("env", cfg.App.Env).Msg("iniciando " + cfg.App.Name)

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	// Migraciones con goose sobre los SQL embebidos
	if err := runMigrations(cfg); err != nil {
		log.Fatal().Err(err).Msg("error ejecutando migraciones")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	pool, err := postgres.NewPool(ctx, cfg.DB)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("error conectando a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (las operaciones del ledger usan repos
	// atados a tx vía TxRunner)
	storeRepo := postgres.NewStoreRepository(pool)
	articleRepo := postgres.NewArticleRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	notifier := mail.NewLowStockNotifier(cfg.SMTP, userRepo, log)

	// Casos de uso
	authUC := auth.NewAuthUseCase(userRepo, storeRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	storeUC := usecase.NewStoreUseCase(storeRepo, articleRepo)
	articleUC := usecase.NewArticleUseCase(articleRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	movementUC := usecase.NewMovementUseCase(movementRepo)
	saleUC := ledger.NewSaleUseCase(txRunner, storeRepo, saleRepo, notifier, log)
	transferUC := ledger.NewTransferUseCase(txRunner, storeRepo, log)
	intakeUC := ledger.NewIntakeUseCase(txRunner, storeRepo, supplierRepo, log)
	reversalUC := ledger.NewReversalUseCase(txRunner, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	httpapi.RegisterRoutes(app, cfg.JWT.Secret, httpapi.Handlers{
		Auth:      httpapi.NewAuthHandler(authUC),
		Store:     httpapi.NewStoreHandler(storeUC),
		Article:   httpapi.NewArticleHandler(articleUC),
		Supplier:  httpapi.NewSupplierHandler(supplierUC),
		Inventory: httpapi.NewInventoryHandler(transferUC, intakeUC, reversalUC, movementUC),
		Sale:      httpapi.NewSaleHandler(saleUC),
	})

	var monitorSrv *http.Server
	if cfg.Monitor.Enabled {
		monitorSrv = monitor.Start(cfg.Monitor.Addr, log)
	}

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("API escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Fatal().Err(err).Msg("error del servidor HTTP")
		}
	}()

	// Apagado ordenado
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error en el apagado de la API")
	}
	if monitorSrv != nil {
		if err := monitorSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("error en el apagado del monitor")
		}
	}
	log.Info().Msg("servidor detenido")
}

// runMigrations aplica las migraciones pendientes usando el driver stdlib de
// pgx (goose trabaja con database/sql).
func runMigrations(cfg *config.Config) error {
	db, err := goose.OpenDBWithDriver("pgx", cfg.DB.ConnectionString())
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}
