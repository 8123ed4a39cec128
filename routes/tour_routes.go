package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripguide/api/controllers/booking_controller"
	"github.com/tripguide/api/controllers/tour_controller"
	"github.com/tripguide/api/middlewares/auth"
)

func RegisterTourRoutes(router *gin.Engine, db *pgxpool.Pool) {
	tourController := tour_controller.NewTourController(db)

	bookingController, err := booking_controller.NewBookingController(db)
	if err != nil {
		panic(fmt.Errorf("failed to initialize booking controller: %w", err))
	}

	public := router.Group("/api/tours")
	{
		public.GET("/guides", tourController.ListGuides)
		public.GET("/guides/:guideId", tourController.GetGuide)
		public.GET("/destinations/popular", tourController.PopularDestinations)
		public.GET("", tourController.ListTours)
		public.GET("/:tourId", tourController.GetTour)
	}

	protected := router.Group("/api/tours/bookings")
	protected.Use(auth.AuthMiddleware(db))
	{
		protected.POST("", bookingController.CreateBooking)
		protected.GET("", bookingController.ListBookings)
		protected.GET("/:bookingId", bookingController.GetBooking)
		protected.DELETE("/:bookingId", bookingController.CancelBooking)
	}
}
