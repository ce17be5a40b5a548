package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/greenthread-api/internal/application/analytics"
	"github.com/jhoicas/greenthread-api/internal/application/auth"
	"github.com/jhoicas/greenthread-api/internal/application/dto"
	"github.com/jhoicas/greenthread-api/internal/application/orders"
	"github.com/jhoicas/greenthread-api/internal/application/usecase"
	"github.com/jhoicas/greenthread-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	ProductUC     *usecase.ProductUseCase
	PlaceOrder    *orders.PlaceOrderUseCase
	OrderQuery    *orders.QueryUseCase
	OrderStatus   *orders.UpdateStatusUseCase
	OrderReceipt  *orders.ReceiptUseCase
	SalesInsights *analytics.SalesInsightsUseCase
	AIUC          *usecase.AIUseCase
	CarbonUC      *usecase.CarbonUseCase
	JWTSecret     string
	ServiceName   string
	HealthChecks  map[string]Pinger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", NewHealthHandler(deps.ServiceName, deps.HealthChecks).Health)

	api := app.Group("/api")
	authn := AuthMiddleware(deps.JWTSecret)
	sellerOnly := RequireRole(entity.RoleSeller)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Users: solo el propio usuario
	users := api.Group("/users", authn)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/:id", userHandler.GetByID)
	users.Get("/:id/addresses", userHandler.ListAddresses)
	users.Post("/:id/addresses", userHandler.AddAddress)

	// Products: catálogo público, escritura solo vendedores
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/seller/:id", validID, productHandler.ListBySeller)
	products.Get("/:id", validID, productHandler.GetByID)
	products.Post("/", authn, sellerOnly, productHandler.Create)
	products.Patch("/:id", authn, sellerOnly, validID, productHandler.Update)
	products.Delete("/:id", authn, sellerOnly, validID, productHandler.Delete)

	// Orders (protegido)
	ordersGroup := api.Group("/orders", authn)
	orderHandler := NewOrderHandler(deps.PlaceOrder, deps.OrderQuery, deps.OrderStatus, deps.OrderReceipt)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/buyer/:id", orderHandler.ListByBuyer)
	ordersGroup.Get("/seller/:id", orderHandler.ListBySeller)
	ordersGroup.Get("/:id/receipt", validID, orderHandler.Receipt)
	ordersGroup.Get("/:id", validID, orderHandler.GetByID)
	ordersGroup.Patch("/:id", sellerOnly, validID, orderHandler.UpdateStatus)

	// Analytics (vendedor)
	analyticsHandler := NewAnalyticsHandler(deps.SalesInsights)
	api.Post("/analytics/getSalesInsights", authn, sellerOnly, analyticsHandler.GetSalesInsights)

	// IA: el chat es público (ayuda a registrarse); el análisis de imagen requiere sesión
	aiHandler := NewAIHandler(deps.AIUC)
	api.Post("/ai/chat", aiHandler.Chat)
	api.Post("/ai/analyze-image", authn, aiHandler.AnalyzeImage)

	carbonHandler := NewCarbonHandler(deps.CarbonUC)
	api.Post("/predict/carbon", carbonHandler.Predict)
}

// validID responde 404 si :id no es un UUID.
func validID(c *fiber.Ctx) error {
	if _, err := uuid.Parse(c.Params("id")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	}
	return c.Next()
}
