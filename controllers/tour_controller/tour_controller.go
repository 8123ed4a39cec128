package tour_controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripguide/api/config"
	redisclient "github.com/tripguide/api/config/redis"
	"github.com/tripguide/api/logger"
	"github.com/tripguide/api/models/guide_models"
	"github.com/tripguide/api/models/tour_models"
)

const (
	popularDestinationsKey   = "popular_destinations"
	popularDestinationsTTL   = 5 * time.Minute
	popularDestinationsLimit = 10
)

// TourController serves the read-only guide and tour catalog.
type TourController struct {
	DB *pgxpool.Pool
}

// NewTourController creates a new TourController.
func NewTourController(db *pgxpool.Pool) *TourController {
	return &TourController{DB: db}
}

func serverError(c *gin.Context, err error) {
	logger.ErrorLogger.Errorf("Unexpected server error: %v", err)
	if config.IsDevelopment() {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
}

// ListGuides returns available guides matching the query filters.
func (tc *TourController) ListGuides(c *gin.Context) {
	filter := guide_models.ParseFilter(c.Request.URL.Query())

	guides, err := guide_models.ListGuides(c.Request.Context(), tc.DB, filter)
	if err != nil {
		serverError(c, err)
		return
	}
	if guides == nil {
		guides = []guide_models.Guide{}
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(guides),
		"guides": guides,
	})
}

// GetGuide returns a guide with its tours populated.
func (tc *TourController) GetGuide(c *gin.Context) {
	guideID, err := uuid.Parse(c.Param("guideId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Guide not found"})
		return
	}

	guide, err := guide_models.GetGuideByID(c.Request.Context(), tc.DB, guideID)
	if err != nil {
		if errors.Is(err, guide_models.ErrGuideNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Guide not found"})
			return
		}
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, guide)
}

// ListTours returns one page of active tours matching the query filters.
func (tc *TourController) ListTours(c *gin.Context) {
	filter := tour_models.ParseFilter(c.Request.URL.Query())

	tours, total, err := tour_models.ListTours(c.Request.Context(), tc.DB, filter)
	if err != nil {
		serverError(c, err)
		return
	}
	if tours == nil {
		tours = []tour_models.Tour{}
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(tours),
		"total": total,
		"page":  filter.Page,
		"pages": tour_models.Pages(total, filter.Limit),
		"tours": tours,
	})
}

// GetTour returns a tour with its guide populated.
func (tc *TourController) GetTour(c *gin.Context) {
	tourID, err := uuid.Parse(c.Param("tourId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Tour not found"})
		return
	}

	tour, err := tour_models.GetTourByID(c.Request.Context(), tc.DB, tourID)
	if err != nil {
		if errors.Is(err, tour_models.ErrTourNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Tour not found"})
			return
		}
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, tour)
}

// PopularDestinations aggregates top destinations across active tours. The
// result is cached in Redis for a few minutes when Redis is configured.
func (tc *TourController) PopularDestinations(c *gin.Context) {
	ctx := c.Request.Context()

	if rdb, err := redisclient.GetRedisClient(ctx); err == nil {
		if cached, err := rdb.Get(ctx, popularDestinationsKey).Bytes(); err == nil {
			var destinations []tour_models.PopularDestination
			if err := json.Unmarshal(cached, &destinations); err == nil {
				c.JSON(http.StatusOK, gin.H{
					"count":        len(destinations),
					"destinations": destinations,
				})
				return
			}
		}
	}

	destinations, err := tour_models.GetPopularDestinations(ctx, tc.DB, popularDestinationsLimit)
	if err != nil {
		serverError(c, err)
		return
	}
	if destinations == nil {
		destinations = []tour_models.PopularDestination{}
	}

	if rdb, err := redisclient.GetRedisClient(ctx); err == nil {
		if payload, err := json.Marshal(destinations); err == nil {
			if err := rdb.Set(ctx, popularDestinationsKey, payload, popularDestinationsTTL).Err(); err != nil {
				logger.WarnLogger.Warnf("Failed to cache popular destinations: %v", err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"count":        len(destinations),
		"destinations": destinations,
	})
}
