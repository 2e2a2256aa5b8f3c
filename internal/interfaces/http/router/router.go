package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appidentity "github.com/seorganiza/backend/internal/application/identity"
	"github.com/seorganiza/backend/internal/infrastructure/config"
	"github.com/seorganiza/backend/internal/infrastructure/logger"
	"github.com/seorganiza/backend/internal/interfaces/http/handler"
	"github.com/seorganiza/backend/internal/interfaces/http/middleware"
)

// Dependencies bundles everything the router needs
type Dependencies struct {
	Products  *handler.ProductHandler
	Sales     *handler.SaleHandler
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	System    *handler.SystemHandler
	Tokens    appidentity.TokenManager
	Blacklist appidentity.TokenBlacklist
}

// New builds the gin engine with all routes mounted under /api/v1
func New(cfg *config.Config, log *zap.Logger, deps Dependencies) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.CORS(),
	)

	deps.System.RegisterRoutes(engine)

	api := engine.Group("/api/v1")
	deps.Auth.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.JWTAuth(deps.Tokens, deps.Blacklist))

	deps.Auth.RegisterProtectedRoutes(protected)
	deps.Products.RegisterRoutes(protected)
	deps.Sales.RegisterRoutes(protected)
	deps.Users.RegisterRoutes(protected)

	return engine
}
