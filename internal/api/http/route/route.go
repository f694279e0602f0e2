package route

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"messaging-back/internal/api/http/handler"
	"messaging-back/internal/api/http/middleware"
	"messaging-back/internal/config"
	"messaging-back/internal/identity"
)

const maxMultipartMemory = 1 << 20

func SetupRouter(
	log *zap.Logger,
	cfg *config.Config,
	verifier identity.Verifier,
	healthHdl HealthHandler,
	conversationHdl ConversationHandler,
	messageHdl MessageHandler,
	receiptHdl ReceiptHandler,
	socketHdl SocketHandler,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = io.Discard

	router := gin.Default()
	router.MaxMultipartMemory = maxMultipartMemory

	// middleware
	router.Use(middleware.Logger(log))
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(cfg.CORS))

	jwtAuthMiddleware := middleware.JWTAuth(verifier)
	timeoutMiddleware := middleware.RequestTimeout(cfg.HTTPServer.Timeout.Request)

	router.HandleMethodNotAllowed = true
	router.NoMethod(handler.NoMethod)
	router.NoRoute(handler.NoRoute)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	basePath := router.Group(cfg.BasePath)

	// the socket outlives any request timeout and authenticates before upgrading
	RegisterSocket(basePath, socketHdl)

	api := basePath.Group("", timeoutMiddleware)

	docsPath := api.Group("/docs")
	RegisterDock(docsPath)

	healthPath := api.Group("/health")
	RegisterHealth(healthPath, healthHdl)

	protected := api.Group("", jwtAuthMiddleware)
	RegisterConversationRoutes(protected, conversationHdl, messageHdl)
	RegisterMessageRoutes(protected, messageHdl, receiptHdl)

	return router
}
