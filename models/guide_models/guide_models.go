package guide_models

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

var ErrGuideNotFound = errors.New("guide not found")

// Guide is a bookable local guide profile.
type Guide struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Photo        string    `json:"photo"`
	Location     string    `json:"location"`
	Languages    []string  `json:"languages"`
	Specialties  []string  `json:"specialties"`
	Experience   int       `json:"experience"`
	Rating       float64   `json:"rating"`
	TotalReviews int       `json:"totalReviews"`
	PricePerDay  float64   `json:"pricePerDay"`
	Bio          string    `json:"bio"`
	IsAvailable  bool      `json:"isAvailable"`
	Tours        []TourRef `json:"tours,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TourRef is the shallow tour projection attached to a guide detail response.
type TourRef struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Destination string    `json:"destination"`
	CoverImage  string    `json:"coverImage"`
	Price       float64   `json:"price"`
}

// Filter holds the recognized guide listing parameters. Nil numeric fields
// mean the constraint is absent and must be omitted from the query.
type Filter struct {
	Location  string
	Language  string
	MinRating *float64
	MaxPrice  *float64
	SortBy    string
}

// ParseFilter builds a Filter from raw query parameters. Numeric parameters
// that fail to parse are treated as absent rather than rejected.
func ParseFilter(values url.Values) Filter {
	f := Filter{
		Location: strings.TrimSpace(values.Get("location")),
		Language: strings.TrimSpace(values.Get("language")),
		SortBy:   values.Get("sortBy"),
	}

	if raw := values.Get("minRating"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			f.MinRating = &v
		}
	}
	if raw := values.Get("maxPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			f.MaxPrice = &v
		}
	}

	return f
}

// WhereClause renders the filter as SQL conditions plus bind arguments.
// Listings are always restricted to available guides.
func (f Filter) WhereClause() (string, []any) {
	conditions := []string{"is_available = TRUE"}
	var args []any

	if f.Location != "" {
		args = append(args, "%"+f.Location+"%")
		conditions = append(conditions, fmt.Sprintf("location ILIKE $%d", len(args)))
	}
	if f.Language != "" {
		args = append(args, "%"+f.Language+"%")
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM unnest(languages) AS lang WHERE lang ILIKE $%d)", len(args)))
	}
	if f.MinRating != nil {
		args = append(args, *f.MinRating)
		conditions = append(conditions, fmt.Sprintf("rating >= $%d", len(args)))
	}
	if f.MaxPrice != nil {
		args = append(args, *f.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("price_per_day <= $%d", len(args)))
	}

	return strings.Join(conditions, " AND "), args
}

// OrderClause maps the client sort key through a fixed set of sort orders.
// Unrecognized keys fall back to rating descending.
func (f Filter) OrderClause() string {
	switch f.SortBy {
	case "rating":
		return "rating DESC"
	case "price_low":
		return "price_per_day ASC"
	case "price_high":
		return "price_per_day DESC"
	case "experience":
		return "experience DESC"
	default:
		return "rating DESC"
	}
}

const guideColumns = `id, name, email, phone, photo, location, languages, specialties,
	experience, rating, total_reviews, price_per_day, bio, is_available, created_at`

func scanGuide(row pgx.Row) (*Guide, error) {
	guide := &Guide{}
	err := row.Scan(
		&guide.ID,
		&guide.Name,
		&guide.Email,
		&guide.Phone,
		&guide.Photo,
		&guide.Location,
		&guide.Languages,
		&guide.Specialties,
		&guide.Experience,
		&guide.Rating,
		&guide.TotalReviews,
		&guide.PricePerDay,
		&guide.Bio,
		&guide.IsAvailable,
		&guide.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGuideNotFound
		}
		return nil, fmt.Errorf("database error fetching guide: %w", err)
	}
	return guide, nil
}

// ListGuides returns available guides matching the filter in the requested order.
func ListGuides(ctx context.Context, db *pgxpool.Pool, filter Filter) ([]Guide, error) {
	where, args := filter.WhereClause()
	query := fmt.Sprintf(`SELECT %s FROM guides WHERE %s ORDER BY %s`,
		guideColumns, where, filter.OrderClause())

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list guides: %v", err)
		return nil, fmt.Errorf("failed to list guides: %w", err)
	}
	defer rows.Close()

	var guides []Guide
	for rows.Next() {
		guide, err := scanGuide(rows)
		if err != nil {
			return nil, err
		}
		guides = append(guides, *guide)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read guide rows: %w", err)
	}

	return guides, nil
}

// GetGuideByID fetches a guide and populates its owned tours.
func GetGuideByID(ctx context.Context, db *pgxpool.Pool, guideID uuid.UUID) (*Guide, error) {
	query := `SELECT ` + guideColumns + ` FROM guides WHERE id = $1`
	guide, err := scanGuide(db.QueryRow(ctx, query, guideID))
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(ctx,
		`SELECT id, name, destination, cover_image, price FROM tours WHERE guide_id = $1 AND is_active = TRUE`,
		guideID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch tours for guide %s: %v", guideID, err)
		return nil, fmt.Errorf("failed to fetch guide tours: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ref TourRef
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Destination, &ref.CoverImage, &ref.Price); err != nil {
			return nil, fmt.Errorf("failed to scan guide tour: %w", err)
		}
		guide.Tours = append(guide.Tours, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read guide tour rows: %w", err)
	}

	return guide, nil
}
