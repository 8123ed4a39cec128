package tour_models

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripguide/api/logger"
)

var ErrTourNotFound = errors.New("tour not found")

// Tour categories and difficulties are closed sets.
var (
	Categories   = []string{"adventure", "cultural", "wildlife", "beach", "mountain", "heritage", "spiritual"}
	Difficulties = []string{"easy", "moderate", "challenging"}
)

// Duration is the tour length in days and nights.
type Duration struct {
	Days   int `json:"days"`
	Nights int `json:"nights"`
}

// ItineraryDay is one entry of the ordered tour itinerary.
type ItineraryDay struct {
	Day         int      `json:"day"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Activities  []string `json:"activities"`
}

// GuideRef is the shallow guide projection attached to tour responses.
type GuideRef struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Photo       string    `json:"photo"`
	Location    string    `json:"location"`
	Rating      float64   `json:"rating"`
	PricePerDay float64   `json:"pricePerDay"`
}

// Tour is a catalog entry queried read-only by the API.
type Tour struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Destination   string         `json:"destination"`
	Duration      Duration       `json:"duration"`
	Price         float64        `json:"price"`
	DiscountPrice *float64       `json:"discountPrice,omitempty"`
	Images        []string       `json:"images"`
	CoverImage    string         `json:"coverImage"`
	Highlights    []string       `json:"highlights"`
	Inclusions    []string       `json:"inclusions"`
	Exclusions    []string       `json:"exclusions"`
	Itinerary     []ItineraryDay `json:"itinerary"`
	MaxGroupSize  int            `json:"maxGroupSize"`
	Difficulty    string         `json:"difficulty"`
	Rating        float64        `json:"rating"`
	TotalReviews  int            `json:"totalReviews"`
	GuideID       *uuid.UUID     `json:"-"`
	Guide         *GuideRef      `json:"guide,omitempty"`
	StartDates    []time.Time    `json:"startDates"`
	IsActive      bool           `json:"isActive"`
	Category      string         `json:"category"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// Filter holds the recognized tour listing parameters plus pagination.
type Filter struct {
	Destination string
	Category    string
	MinPrice    *float64
	MaxPrice    *float64
	Duration    *int
	SortBy      string
	Page        int
	Limit       int
}

// ParseFilter builds a Filter from raw query parameters. Malformed numeric
// parameters are treated as absent; page and limit fall back to 1 and 10.
func ParseFilter(values url.Values) Filter {
	f := Filter{
		Destination: strings.TrimSpace(values.Get("destination")),
		Category:    strings.TrimSpace(values.Get("category")),
		SortBy:      values.Get("sortBy"),
		Page:        1,
		Limit:       10,
	}

	if raw := values.Get("minPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			f.MinPrice = &v
		}
	}
	if raw := values.Get("maxPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			f.MaxPrice = &v
		}
	}
	if raw := values.Get("duration"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			f.Duration = &v
		}
	}
	if raw := values.Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 1 {
			f.Page = v
		}
	}
	if raw := values.Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 1 {
			f.Limit = v
		}
	}

	return f
}

// WhereClause renders the filter as SQL conditions plus bind arguments.
// Listings are always restricted to active tours.
func (f Filter) WhereClause() (string, []any) {
	conditions := []string{"is_active = TRUE"}
	var args []any

	if f.Destination != "" {
		args = append(args, "%"+f.Destination+"%")
		conditions = append(conditions, fmt.Sprintf("destination ILIKE $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.MinPrice != nil {
		args = append(args, *f.MinPrice)
		conditions = append(conditions, fmt.Sprintf("price >= $%d", len(args)))
	}
	if f.MaxPrice != nil {
		args = append(args, *f.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("price <= $%d", len(args)))
	}
	if f.Duration != nil {
		args = append(args, *f.Duration)
		conditions = append(conditions, fmt.Sprintf("duration_days = $%d", len(args)))
	}

	return strings.Join(conditions, " AND "), args
}

// OrderClause maps the client sort key through a fixed set of sort orders.
// Unrecognized keys fall back to newest first.
func (f Filter) OrderClause() string {
	switch f.SortBy {
	case "price_low":
		return "price ASC"
	case "price_high":
		return "price DESC"
	case "rating":
		return "rating DESC"
	case "duration":
		return "duration_days ASC"
	default:
		return "created_at DESC"
	}
}

// Pages computes the page count for a total row count and page size.
func Pages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

const tourColumns = `t.id, t.name, t.description, t.destination, t.duration_days, t.duration_nights,
	t.price, t.discount_price, t.images, t.cover_image, t.highlights, t.inclusions, t.exclusions,
	t.itinerary, t.max_group_size, t.difficulty, t.rating, t.total_reviews, t.guide_id,
	t.start_dates, t.is_active, t.category, t.created_at,
	g.id, g.name, g.photo, g.location, g.rating, g.price_per_day`

func scanTour(row pgx.Row) (*Tour, error) {
	tour := &Tour{}
	var guideID, refID *uuid.UUID
	var refName, refPhoto, refLocation *string
	var refRating, refPrice *float64

	err := row.Scan(
		&tour.ID,
		&tour.Name,
		&tour.Description,
		&tour.Destination,
		&tour.Duration.Days,
		&tour.Duration.Nights,
		&tour.Price,
		&tour.DiscountPrice,
		&tour.Images,
		&tour.CoverImage,
		&tour.Highlights,
		&tour.Inclusions,
		&tour.Exclusions,
		&tour.Itinerary,
		&tour.MaxGroupSize,
		&tour.Difficulty,
		&tour.Rating,
		&tour.TotalReviews,
		&guideID,
		&tour.StartDates,
		&tour.IsActive,
		&tour.Category,
		&tour.CreatedAt,
		&refID,
		&refName,
		&refPhoto,
		&refLocation,
		&refRating,
		&refPrice,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTourNotFound
		}
		return nil, fmt.Errorf("database error fetching tour: %w", err)
	}

	tour.GuideID = guideID
	if refID != nil {
		tour.Guide = &GuideRef{
			ID:          *refID,
			Name:        derefString(refName),
			Photo:       derefString(refPhoto),
			Location:    derefString(refLocation),
			Rating:      derefFloat(refRating),
			PricePerDay: derefFloat(refPrice),
		}
	}
	return tour, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// ListTours returns one page of tours matching the filter, plus the total
// match count for pagination.
func ListTours(ctx context.Context, db *pgxpool.Pool, filter Filter) ([]Tour, int, error) {
	where, args := filter.WhereClause()

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM tours t WHERE %s`, where)
	var total int
	if err := db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		logger.ErrorLogger.Errorf("Failed to count tours: %v", err)
		return nil, 0, fmt.Errorf("failed to count tours: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM tours t
		LEFT JOIN guides g ON g.id = t.guide_id
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		tourColumns, where, filter.OrderClause(), len(args)-1, len(args))

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list tours: %v", err)
		return nil, 0, fmt.Errorf("failed to list tours: %w", err)
	}
	defer rows.Close()

	var tours []Tour
	for rows.Next() {
		tour, err := scanTour(rows)
		if err != nil {
			return nil, 0, err
		}
		tours = append(tours, *tour)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read tour rows: %w", err)
	}

	return tours, total, nil
}

// GetTourByID fetches a tour with its guide populated.
func GetTourByID(ctx context.Context, db *pgxpool.Pool, tourID uuid.UUID) (*Tour, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM tours t
		LEFT JOIN guides g ON g.id = t.guide_id
		WHERE t.id = $1`, tourColumns)
	return scanTour(db.QueryRow(ctx, query, tourID))
}

// PopularDestination is one row of the destinations aggregate.
type PopularDestination struct {
	Destination string  `json:"_id"`
	TourCount   int     `json:"tourCount"`
	AvgRating   float64 `json:"avgRating"`
	MinPrice    float64 `json:"minPrice"`
}

// GetPopularDestinations groups active tours by destination, most tours first.
func GetPopularDestinations(ctx context.Context, db *pgxpool.Pool, limit int) ([]PopularDestination, error) {
	query := `
		SELECT destination, COUNT(*) AS tour_count, AVG(rating) AS avg_rating, MIN(price) AS min_price
		FROM tours
		WHERE is_active = TRUE
		GROUP BY destination
		ORDER BY tour_count DESC
		LIMIT $1`

	rows, err := db.Query(ctx, query, limit)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to aggregate destinations: %v", err)
		return nil, fmt.Errorf("failed to aggregate destinations: %w", err)
	}
	defer rows.Close()

	var destinations []PopularDestination
	for rows.Next() {
		var d PopularDestination
		if err := rows.Scan(&d.Destination, &d.TourCount, &d.AvgRating, &d.MinPrice); err != nil {
			return nil, fmt.Errorf("failed to scan destination row: %w", err)
		}
		destinations = append(destinations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read destination rows: %w", err)
	}

	return destinations, nil
}
