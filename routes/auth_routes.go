package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripguide/api/controllers/user_controllers"
	middleware "github.com/tripguide/api/middlewares"
	"github.com/tripguide/api/middlewares/auth"
)

func RegisterAuthRoutes(router *gin.Engine, db *pgxpool.Pool) {
	userController := user_controllers.NewUserController(db)

	public := router.Group("/api/auth")
	{
		public.POST("/register", middleware.CombinedRateLimiter("register", "10-2m", "30-60m"), userController.Register)
		public.POST("/login", middleware.CombinedRateLimiter("login", "10-2m", "30-30m"), userController.Login)
	}

	protected := router.Group("/api/auth")
	protected.Use(auth.AuthMiddleware(db))
	{
		protected.GET("/profile/:userId", userController.GetProfile)
		protected.GET("/me", userController.GetMe)
		protected.PUT("/profile", userController.UpdateProfile)
		protected.PUT("/change-password", middleware.CombinedRateLimiter("change-password", "5-1m", "20-10m"), userController.ChangePassword)
	}
}
