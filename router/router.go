package router

import (
	"makini-agent-backend/controller"
	"makini-agent-backend/middleware"
	"makini-agent-backend/model"

	"github.com/gin-gonic/gin"
)

func Register() *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")
	{
		public := api.Group("/user")
		{
			public.POST("/register", controller.UserRegister)
			public.POST("/login", controller.UserLogin)
		}

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/session", controller.CreateSession)
			protected.GET("/sessions", controller.GetSessions)
			protected.DELETE("/session/:id", controller.DeleteSession)
			protected.GET("/session/:id/messages", controller.GetSessionMessages)
			protected.DELETE("/session/:id/messages", controller.ClearSessionMessages)
			protected.PUT("/session/:id/title", controller.UpdateSessionTitle)

			protected.POST("/session/:id/open", controller.OpenChat)
			protected.POST("/chat", controller.AgentChat)

			protected.GET("/listings", controller.GetListings)
			protected.GET("/listing/:id", controller.GetListing)

			fornecedor := protected.Group("")
			fornecedor.Use(middleware.RequireRole(model.RoleFornecedor))
			{
				fornecedor.POST("/listing", controller.CreateListing)
				fornecedor.GET("/listings/mine", controller.GetMyListings)
				fornecedor.DELETE("/listing/:id", controller.DeleteListing)
				fornecedor.PUT("/reserva/:id/status", controller.UpdateReservaStatus)
			}

			agricultor := protected.Group("")
			agricultor.Use(middleware.RequireRole(model.RoleAgricultor))
			{
				agricultor.POST("/reserva", controller.CreateReserva)
			}
			protected.GET("/reservas", controller.GetMyReservas)

			protected.GET("/notifications", controller.GetNotifications)
			protected.PUT("/notification/:id/read", controller.MarkNotificationRead)

			protected.GET("/media/upload-link", controller.GetUploadLink)
			protected.GET("/media/download-link", controller.GetDownloadLink)
		}
	}

	return r
}
