package router

import (
	"github.com/23121005-sketch/D-arlet/internal/events"
	"github.com/23121005-sketch/D-arlet/internal/service"
	"github.com/23121005-sketch/D-arlet/internal/token"
	"github.com/23121005-sketch/D-arlet/internal/transport/http/handlers"
	"github.com/23121005-sketch/D-arlet/internal/transport/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Deps struct {
	Pedidos       *service.PedidoService
	Cocina        *service.CocinaService
	Reservas      *service.ReservaService
	Reclamaciones *service.ReclamacionService
	Empleados     *service.EmpleadoService
	Auditoria     *service.AuditService
	Tokens        *token.HSProvider
	Sessions      service.SessionCache
	Hub           *events.Hub
	Log           *zap.Logger
}

func Router(d Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authHandler := handlers.NewAuthHandler(d.Empleados, d.Log)
	pedidoHandler := handlers.NewPedidoHandler(d.Pedidos, d.Log)
	cocinaHandler := handlers.NewCocinaHandler(d.Cocina, d.Log)
	reservaHandler := handlers.NewReservaHandler(d.Reservas, d.Log)
	reclamacionHandler := handlers.NewReclamacionHandler(d.Reclamaciones, d.Log)
	empleadoHandler := handlers.NewEmpleadoHandler(d.Empleados, d.Log)
	auditoriaHandler := handlers.NewAuditoriaHandler(d.Auditoria, d.Log)
	eventosHandler := handlers.NewEventosHandler(d.Hub, d.Log)

	// Superficie pública: carta y Libro de Reclamaciones, sin sesión.
	pub := r.Group("/api/public")
	{
		pub.GET("/menu", handlers.Menu)
		pub.POST("/reclamaciones", reclamacionHandler.Registrar)
		pub.GET("/reclamaciones/:codigo", reclamacionHandler.ConsultarPorCodigo)
	}

	r.POST("/api/auth/login", authHandler.Login)

	api := r.Group("/api")
	api.Use(middleware.AuthRequired(d.Tokens, d.Sessions, d.Log))
	{
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/auth/me", authHandler.Me)

		api.GET("/eventos/:tabla", eventosHandler.Stream)

		pedidos := api.Group("/pedidos", middleware.RequirePanel(service.PanelDelivery))
		{
			pedidos.POST("", pedidoHandler.Crear)
			pedidos.GET("", pedidoHandler.Listar)
			pedidos.GET("/stats", pedidoHandler.Estadisticas)
			pedidos.GET("/:id", pedidoHandler.Get)
			pedidos.PUT("/:id", pedidoHandler.Editar)
			pedidos.POST("/:id/estado", pedidoHandler.Transicion)
			pedidos.POST("/:id/cancelar", pedidoHandler.Cancelar)
		}

		cocina := api.Group("/cocina", middleware.RequirePanel(service.PanelCocina))
		{
			cocina.GET("/tablero", cocinaHandler.Tablero)
			cocina.POST("/:id/iniciar", cocinaHandler.Iniciar)
			cocina.POST("/:id/listo", cocinaHandler.MarcarListo)
		}

		reservas := api.Group("/reservas", middleware.RequirePanel(service.PanelReservas))
		{
			reservas.POST("", reservaHandler.Crear)
			reservas.GET("", reservaHandler.Listar)
			reservas.GET("/:id", reservaHandler.Get)
			reservas.PUT("/:id", reservaHandler.Editar)
			reservas.POST("/:id/estado", reservaHandler.CambiarEstado)
			reservas.DELETE("/:id", reservaHandler.Eliminar)
		}

		mesas := api.Group("/mesas", middleware.RequirePanel(service.PanelReservas))
		{
			mesas.GET("", reservaHandler.MapaMesas)
			mesas.GET("/sugerencia", reservaHandler.SugerirMesa)
		}

		reclamaciones := api.Group("/reclamaciones", middleware.RequirePanel(service.PanelReclamaciones))
		{
			reclamaciones.GET("", reclamacionHandler.Listar)
			reclamaciones.GET("/:id", reclamacionHandler.Get)
			reclamaciones.POST("/:id/estado", reclamacionHandler.CambiarEstado)
			reclamaciones.POST("/:id/responder", reclamacionHandler.Responder)
		}

		auditoria := api.Group("/auditoria", middleware.RequirePanel(service.PanelAuditoria))
		{
			auditoria.GET("", auditoriaHandler.Listar)
			auditoria.GET("/stats", auditoriaHandler.Estadisticas)
			auditoria.GET("/export", auditoriaHandler.Exportar)
		}

		empleados := api.Group("/empleados", middleware.RequirePanel(service.PanelEmpleados))
		{
			empleados.POST("", empleadoHandler.Crear)
			empleados.GET("", empleadoHandler.Listar)
			empleados.PUT("/:id", empleadoHandler.Actualizar)
			empleados.POST("/:id/password", empleadoHandler.CambiarPassword)
			empleados.DELETE("/:id", empleadoHandler.Eliminar)
		}
	}

	return r
}
