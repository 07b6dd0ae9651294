package routes

import (
	"log"
	"os"
	"strconv"

	_ "tovyalla_billing/docs" // This will be auto-generated
	"tovyalla_billing/internal/adapter/expense"
	"tovyalla_billing/internal/adapter/http/handlers"
	repository2 "tovyalla_billing/internal/adapter/persistence/repository"
	"tovyalla_billing/internal/domain/pricing"
	"tovyalla_billing/internal/infrastructure/database"
	"tovyalla_billing/internal/infrastructure/payments"
	"tovyalla_billing/internal/infrastructure/rendering"
	"tovyalla_billing/internal/usecase"
	"tovyalla_billing/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	milestoneRepo := repository2.NewMilestoneDynamoRepository(ddb)
	documentRepo := repository2.NewDocumentDynamoRepository(ddb)
	paymentRepo := repository2.NewMilestonePaymentDynamoRepository(ddb)

	expenseSource, err := expense.NewClientFromEnv()
	if err != nil {
		log.Fatalf("Expense source not configured: %v", err)
	}

	renderer, err := rendering.NewRendererGateway(os.Getenv("RENDERER_URL"))
	if err != nil {
		log.Fatalf("Document renderer not configured: %v", err)
	}

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	engine := pricing.NewEngineWithDefaults(
		envFloat("DEFAULT_INITIAL_FEE", 1000),
		envFloat("DEFAULT_FINAL_FEE", 1000),
	)

	documentUseCase := usecase.NewDocumentUseCase(engine, expenseSource, milestoneRepo, documentRepo, renderer)
	milestoneUseCase := usecase.NewMilestoneUseCase(milestoneRepo)
	paymentUseCase := usecase.NewMilestonePaymentUseCase(paymentRepo, milestoneRepo, paymentGateway)

	documentHandler := handlers.NewDocumentHandler(documentUseCase)
	milestoneHandler := handlers.NewMilestoneHandler(milestoneUseCase)
	milestonePaymentHandler := handlers.NewMilestonePaymentHandler(paymentUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addProjectRoutes(v1, documentHandler, milestoneHandler, milestonePaymentHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %.2f", key, raw, fallback)
		return fallback
	}
	return v
}
