package router

import (
	"time"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/config"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/handler"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/infra"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/middleware"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/model"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/repository"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/service"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, crmCB *infra.CircuitBreaker, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	cache := infra.NewCache(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	canalRepo := repository.NewCanalRepository(db)
	gastoRepo := repository.NewGastoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	planRepo := repository.NewPlanRepository(db)
	reglaRepo := repository.NewReglaCotizacionRepository(db)
	operacionRepo := repository.NewOperacionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	canalSvc := service.NewCanalService(canalRepo, gastoRepo, usuarioRepo, log.Logger)
	clienteSvc := service.NewClienteService(clienteRepo)
	planSvc := service.NewPlanService(planRepo, reglaRepo, log.Logger)
	cotizacionSvc := service.NewCotizacionService(planRepo, reglaRepo, gastoRepo, canalRepo, usuarioRepo)
	operacionSvc := service.NewOperacionService(operacionRepo, clienteRepo, planRepo, usuarioRepo, canalRepo, dispatcher)
	webhookSvc := service.NewWebhookService(operacionRepo, log.Logger)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	canalesH := handler.NewCanalesHandler(canalSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	planesH := handler.NewPlanesHandler(planSvc)
	reglasH := handler.NewReglasHandler(planSvc)
	cotizacionesH := handler.NewCotizacionesHandler(cotizacionSvc, cache)
	operacionesH := handler.NewOperacionesHandler(operacionSvc)
	webhookH := handler.NewWebhookHandler(webhookSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, crmCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Anonymous quote — landing page widget, no auth required
	r.POST("/v1/cotizaciones/publica", cotizacionesH.CotizarPublico)

	// Kommo webhook — the CRM cannot authenticate with a JWT; the endpoint is
	// referenced from the Kommo integration settings.
	r.POST("/v1/webhooks/kommo", webhookH.Kommo)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todosLosRoles := middleware.RequireRol(
		model.RolAdministrador, model.RolAdminCanal, model.RolVendedor, model.RolOficialComercial)
	backOffice := middleware.RequireRol(model.RolAdministrador, model.RolOficialComercial)
	soloAdmin := middleware.RequireRol(model.RolAdministrador)

	v1 := r.Group("/v1", jwtMW)
	{
		v1.POST("/cotizaciones", todosLosRoles, cotizacionesH.Cotizar)

		v1.POST("/operaciones", todosLosRoles, operacionesH.Crear)
		v1.GET("/operaciones", todosLosRoles, operacionesH.Listar)
		v1.GET("/operaciones/:id", todosLosRoles, operacionesH.Obtener)
		// Lifecycle transitions and date corrections — back office only
		v1.POST("/operaciones/:id/aprobar", backOffice, operacionesH.Aprobar)
		v1.POST("/operaciones/:id/liquidar", backOffice, operacionesH.Liquidar)
		v1.PATCH("/operaciones/:id/fecha-aprobacion", backOffice, operacionesH.ActualizarFechaAprobacion)
		v1.PATCH("/operaciones/:id/fecha-liquidacion", backOffice, operacionesH.ActualizarFechaLiquidacion)

		v1.POST("/clientes", todosLosRoles, clientesH.Crear)
		v1.GET("/clientes", todosLosRoles, clientesH.Listar)
		v1.GET("/clientes/:id", todosLosRoles, clientesH.Obtener)
		v1.GET("/clientes/dni/:dni", todosLosRoles, clientesH.BuscarPorDni)
		v1.PUT("/clientes/:id", todosLosRoles, clientesH.Actualizar)

		v1.GET("/planes", todosLosRoles, planesH.Listar)
		v1.GET("/planes/:id", todosLosRoles, planesH.Obtener)
		planes := v1.Group("/planes", soloAdmin)
		{
			planes.POST("", planesH.Crear)
			planes.PUT("/:id", planesH.Actualizar)
			planes.PATCH("/:id/activar", planesH.Activar)
			planes.DELETE("/:id", planesH.Desactivar)
			planes.POST("/:id/tasas", planesH.AgregarTasa)
			planes.POST("/:id/canales/:canalId", planesH.VincularCanal)
		}

		reglas := v1.Group("/reglas", soloAdmin)
		{
			reglas.POST("", reglasH.Crear)
			reglas.GET("", reglasH.Listar)
			reglas.PATCH("/:id/activar", reglasH.Activar)
			reglas.DELETE("/:id", reglasH.Desactivar)
		}

		v1.GET("/canales", todosLosRoles, canalesH.Listar)
		v1.GET("/canales/:id", todosLosRoles, canalesH.Obtener)
		v1.GET("/canales/:id/subcanales", todosLosRoles, canalesH.ListarSubcanales)
		canales := v1.Group("/canales", soloAdmin)
		{
			canales.POST("", canalesH.Crear)
			canales.DELETE("/:id", canalesH.Desactivar)
		}
		subcanales := v1.Group("/subcanales", soloAdmin)
		{
			subcanales.POST("", canalesH.CrearSubcanal)
			subcanales.PATCH("/:id/admin/:adminId", canalesH.AsignarAdmin)
			subcanales.POST("/:id/gastos", canalesH.CrearGasto)
		}
		v1.DELETE("/gastos/:id", soloAdmin, canalesH.EliminarGasto)

		usuarios := v1.Group("/usuarios", soloAdmin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
