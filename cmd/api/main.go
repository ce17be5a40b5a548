// @title                       Green Thread API
// @version                     1.0
// @description                 Marketplace de artesanías sostenibles: catálogo, órdenes, analítica de ventas y asistente IA.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token JWT>
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/greenthread-api/docs"
	"github.com/jhoicas/greenthread-api/internal/application/analytics"
	"github.com/jhoicas/greenthread-api/internal/application/auth"
	"github.com/jhoicas/greenthread-api/internal/application/orders"
	"github.com/jhoicas/greenthread-api/internal/application/ports"
	"github.com/jhoicas/greenthread-api/internal/application/usecase"
	"github.com/jhoicas/greenthread-api/internal/domain/repository"
	infraai "github.com/jhoicas/greenthread-api/internal/infrastructure/ai"
	"github.com/jhoicas/greenthread-api/internal/infrastructure/audit"
	"github.com/jhoicas/greenthread-api/internal/infrastructure/cache"
	"github.com/jhoicas/greenthread-api/internal/infrastructure/carbon"
	"github.com/jhoicas/greenthread-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/greenthread-api/internal/infrastructure/pdf"
	"github.com/jhoicas/greenthread-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/greenthread-api/internal/interfaces/http"
	"github.com/jhoicas/greenthread-api/pkg/config"
	"github.com/jhoicas/greenthread-api/pkg/logger"
)

// storage repositorios del driver elegido.
type storage struct {
	users    repository.UserRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
	tx       orders.TxRunner
	pinger   httpRouter.Pinger
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Str("ai_provider", cfg.AI.Provider).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	// Los precios viajan como números JSON, no como strings.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	healthChecks := map[string]httpRouter.Pinger{"storage": store.pinger}

	// Caché de analítica (opcional)
	var insightsCache ports.InsightsCache = ports.NopInsightsCache{}
	if cfg.Redis.Addr != "" {
		rc := cache.NewRedisInsightsCache(cfg.Redis)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible al arrancar; se reintentará en cada petición")
		}
		defer rc.Close()
		insightsCache = rc
		healthChecks["redis"] = rc
	}

	// Auditoría (opcional)
	var auditLog ports.AuditLogger = ports.NopAuditLogger{}
	if cfg.Mongo.URI != "" {
		ml, err := audit.NewMongoAuditLogger(ctx, cfg.Mongo)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a MongoDB")
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = ml.Close(closeCtx)
		}()
		auditLog = ml
		healthChecks["mongo"] = ml
	}

	chat, images := newAIProvider(cfg, log)

	var estimator ports.CarbonEstimator = carbon.LinearEstimator{}
	if cfg.Carbon.ScriptPath != "" {
		estimator = carbon.NewScriptEstimator(cfg.Carbon.PythonBin, cfg.Carbon.ScriptPath, cfg.Carbon.Timeout, log)
	}

	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Green Thread API",
		}))
	}
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return err
		}
		c.Type("json")
		return c.SendString(doc)
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        usecase.NewUserUseCase(store.users),
		ProductUC:     usecase.NewProductUseCase(store.products, insightsCache, auditLog, log),
		PlaceOrder:    orders.NewPlaceOrderUseCase(store.tx, store.users, insightsCache, auditLog, log),
		OrderQuery:    orders.NewQueryUseCase(store.orders, store.products),
		OrderStatus:   orders.NewUpdateStatusUseCase(store.orders, store.products, auditLog, log),
		OrderReceipt:  orders.NewReceiptUseCase(store.orders, store.products, store.users, infrapdf.NewMarotoReceiptGenerator()),
		SalesInsights: analytics.NewSalesInsightsUseCase(store.products, store.orders, insightsCache, cfg.Analytics.CacheTTL, log),
		AIUC:          usecase.NewAIUseCase(chat, images),
		CarbonUC:      usecase.NewCarbonUseCase(estimator),
		JWTSecret:     cfg.JWT.Secret,
		ServiceName:   cfg.App.Name,
		HealthChecks:  healthChecks,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			users:    s.Users(),
			products: s.Products(),
			orders:   s.Orders(),
			tx:       s.TxRunner(),
			pinger:   s,
			close:    func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		users:    postgres.NewUserRepository(pool),
		products: postgres.NewProductRepository(pool),
		orders:   postgres.NewOrderRepository(pool),
		tx:       postgres.NewTxRunner(pool),
		pinger:   pool,
		close:    pool.Close,
	}, nil
}

// newAIProvider devuelve el mismo adaptador para chat e imágenes.
func newAIProvider(cfg *config.Config, log *logger.Logger) (ports.ChatAssistant, ports.ImageAnalyzer) {
	switch cfg.AI.Provider {
	case config.AIProviderAnthropic:
		if cfg.AI.AnthropicAPIKey == "" {
			log.Warn().Msg("ANTHROPIC_API_KEY vacío: /api/ai responderá 503")
		}
		svc := infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
		return svc, svc
	default:
		if cfg.AI.GeminiAPIKey == "" {
			log.Warn().Msg("GEMINI_API_KEY vacío: /api/ai responderá 503")
		}
		svc := infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModels, log)
		return svc, svc
	}
}
