// Command seed creates the database schema and loads a small sample catalog
// of guides and tours, plus an admin account. It is safe to re-run: tables
// are created if missing and sample rows are keyed by email/name.
package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripguide/api/config"
	"github.com/tripguide/api/config/db"
	"github.com/tripguide/api/logger"
	"github.com/tripguide/api/models/shared_models"
	"github.com/tripguide/api/models/tour_models"
	"github.com/tripguide/api/models/user_models"
)

func init() {
	logger.InitLoggers()
	config.LoadEnv()
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	first_name    TEXT NOT NULL,
	last_name     TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	phone         TEXT NOT NULL,
	country       TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS guides (
	id            UUID PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	phone         TEXT NOT NULL,
	photo         TEXT NOT NULL DEFAULT 'https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=200',
	location      TEXT NOT NULL,
	languages     TEXT[] NOT NULL DEFAULT '{}',
	specialties   TEXT[] NOT NULL DEFAULT '{}',
	experience    INT NOT NULL DEFAULT 1,
	rating        NUMERIC NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 5),
	total_reviews INT NOT NULL DEFAULT 0,
	price_per_day NUMERIC NOT NULL,
	bio           TEXT NOT NULL DEFAULT '',
	is_available  BOOLEAN NOT NULL DEFAULT TRUE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS tours (
	id              UUID PRIMARY KEY,
	name            TEXT NOT NULL,
	description     TEXT NOT NULL,
	destination     TEXT NOT NULL,
	duration_days   INT NOT NULL,
	duration_nights INT NOT NULL,
	price           NUMERIC NOT NULL,
	discount_price  NUMERIC,
	images          TEXT[] NOT NULL DEFAULT '{}',
	cover_image     TEXT NOT NULL,
	highlights      TEXT[] NOT NULL DEFAULT '{}',
	inclusions      TEXT[] NOT NULL DEFAULT '{}',
	exclusions      TEXT[] NOT NULL DEFAULT '{}',
	itinerary       JSONB NOT NULL DEFAULT '[]',
	max_group_size  INT NOT NULL DEFAULT 15,
	difficulty      TEXT NOT NULL DEFAULT 'easy' CHECK (difficulty IN ('easy', 'moderate', 'challenging')),
	rating          NUMERIC NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 5),
	total_reviews   INT NOT NULL DEFAULT 0,
	guide_id        UUID REFERENCES guides(id),
	start_dates     TIMESTAMPTZ[] NOT NULL DEFAULT '{}',
	is_active       BOOLEAN NOT NULL DEFAULT TRUE,
	category        TEXT NOT NULL DEFAULT 'cultural'
		CHECK (category IN ('adventure', 'cultural', 'wildlife', 'beach', 'mountain', 'heritage', 'spiritual')),
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS bookings (
	id                  UUID PRIMARY KEY,
	user_id             UUID NOT NULL REFERENCES users(id),
	tour_id             UUID REFERENCES tours(id),
	guide_id            UUID REFERENCES guides(id),
	booking_type        TEXT NOT NULL CHECK (booking_type IN ('tour', 'guide')),
	destination         TEXT NOT NULL,
	start_date          TIMESTAMPTZ NOT NULL,
	end_date            TIMESTAMPTZ NOT NULL,
	adults              INT NOT NULL DEFAULT 1 CHECK (adults >= 1),
	children            INT NOT NULL DEFAULT 0 CHECK (children >= 0),
	total_price         NUMERIC NOT NULL,
	payment_status      TEXT NOT NULL DEFAULT 'pending'
		CHECK (payment_status IN ('pending', 'paid', 'refunded', 'failed')),
	booking_status      TEXT NOT NULL DEFAULT 'pending'
		CHECK (booking_status IN ('pending', 'confirmed', 'cancelled', 'completed')),
	special_requests    TEXT CHECK (char_length(special_requests) <= 500),
	contact_name        TEXT NOT NULL,
	contact_email       TEXT NOT NULL,
	contact_phone       TEXT NOT NULL,
	payment_details     JSONB,
	cancellation_reason TEXT,
	cancelled_at        TIMESTAMPTZ,
	booking_reference   TEXT NOT NULL UNIQUE,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_tours_name ON tours(name);
CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings(user_id);
CREATE INDEX IF NOT EXISTS idx_tours_destination ON tours(destination);
CREATE INDEX IF NOT EXISTS idx_guides_location ON guides(location);
`

type seedGuide struct {
	name, email, phone, photo, location, bio string
	languages, specialties                   []string
	experience                               int
	rating                                   float64
	totalReviews                             int
	pricePerDay                              float64
}

type seedTour struct {
	name, description, destination, coverImage, difficulty, category string
	days, nights, maxGroupSize, totalReviews                         int
	price                                                            float64
	discountPrice                                                    *float64
	rating                                                           float64
	images, highlights, inclusions, exclusions                       []string
	itinerary                                                        []tour_models.ItineraryDay
	guideEmail                                                       string
}

func price(v float64) *float64 { return &v }

var guides = []seedGuide{
	{
		name: "Rajesh Kumar", email: "rajesh@tripguide.com", phone: "+91 98765 43210",
		photo:       "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=200",
		location:    "Jaipur, Rajasthan",
		languages:   []string{"Hindi", "English", "Rajasthani"},
		specialties: []string{"Heritage Tours", "Cultural Experiences", "Photography Tours"},
		experience:  12, rating: 4.9, totalReviews: 156, pricePerDay: 2500,
		bio: "Experienced guide specializing in Rajasthan's rich heritage and culture.",
	},
	{
		name: "Priya Sharma", email: "priya@tripguide.com", phone: "+91 98765 43211",
		photo:       "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=200",
		location:    "Varanasi, Uttar Pradesh",
		languages:   []string{"Hindi", "English", "Sanskrit"},
		specialties: []string{"Spiritual Tours", "Ganga Aarti", "Temple Visits"},
		experience:  8, rating: 4.8, totalReviews: 98, pricePerDay: 2000,
		bio: "Passionate about sharing the spiritual essence of Varanasi.",
	},
	{
		name: "Vikram Singh", email: "vikram@tripguide.com", phone: "+91 98765 43214",
		photo:       "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=200",
		location:    "Leh, Ladakh",
		languages:   []string{"Hindi", "English", "Ladakhi"},
		specialties: []string{"Adventure Tours", "Trekking", "Motorcycle Tours"},
		experience:  15, rating: 4.9, totalReviews: 203, pricePerDay: 4000,
		bio: "Mountain lover specialized in high-altitude treks and Ladakh expeditions.",
	},
}

var tours = []seedTour{
	{
		name:        "Golden Triangle Tour",
		description: "Experience the best of North India with visits to Delhi, Agra, and Jaipur.",
		destination: "Delhi, Agra, Jaipur",
		days:        6, nights: 5, price: 25000, discountPrice: price(22000),
		coverImage: "https://images.unsplash.com/photo-1564507592333-c60657eea523?w=800",
		images: []string{
			"https://images.unsplash.com/photo-1564507592333-c60657eea523?w=800",
			"https://images.unsplash.com/photo-1599661046289-e31897846e41?w=800",
		},
		highlights: []string{"Taj Mahal at Sunrise", "Amber Fort Elephant Ride", "Old Delhi Food Walk"},
		inclusions: []string{"Accommodation", "Breakfast", "AC Transport", "Monument Entry Fees"},
		exclusions: []string{"Flights", "Lunch & Dinner", "Personal Expenses"},
		itinerary: []tour_models.ItineraryDay{
			{Day: 1, Title: "Arrival in Delhi", Description: "Welcome and city orientation.", Activities: []string{"Airport pickup", "India Gate drive"}},
			{Day: 2, Title: "Old Delhi", Description: "Walk through the old city.", Activities: []string{"Red Fort", "Chandni Chowk food walk"}},
			{Day: 3, Title: "Agra", Description: "Drive to Agra and visit the Taj Mahal.", Activities: []string{"Taj Mahal", "Agra Fort"}},
		},
		maxGroupSize: 12, difficulty: "easy", rating: 4.8, totalReviews: 234,
		category: "heritage", guideEmail: "rajesh@tripguide.com",
	},
	{
		name:        "Kerala Backwaters Experience",
		description: "Cruise through serene backwaters on a traditional houseboat.",
		destination: "Kerala",
		days:        7, nights: 6, price: 35000, discountPrice: price(32000),
		coverImage: "https://images.unsplash.com/photo-1602216056096-3b40cc0c9944?w=800",
		images:     []string{"https://images.unsplash.com/photo-1602216056096-3b40cc0c9944?w=800"},
		highlights: []string{"Alleppey Houseboat Stay", "Munnar Tea Gardens", "Kathakali Performance"},
		inclusions: []string{"Houseboat Stay", "All Meals on Houseboat", "Transfers"},
		exclusions: []string{"Flights", "Personal Expenses"},
		itinerary: []tour_models.ItineraryDay{
			{Day: 1, Title: "Arrival in Kochi", Description: "Fort Kochi walk.", Activities: []string{"Chinese fishing nets", "Spice market"}},
			{Day: 2, Title: "Munnar", Description: "Drive to the tea hills.", Activities: []string{"Tea museum", "Plantation walk"}},
		},
		maxGroupSize: 10, difficulty: "easy", rating: 4.9, totalReviews: 189,
		category: "beach",
	},
	{
		name:        "Ladakh Adventure Expedition",
		description: "High-altitude adventure across passes, monasteries and Pangong Lake.",
		destination: "Leh, Ladakh",
		days:        9, nights: 8, price: 45000,
		coverImage: "https://images.unsplash.com/photo-1581793745862-99fde7fa73d2?w=800",
		images:     []string{"https://images.unsplash.com/photo-1581793745862-99fde7fa73d2?w=800"},
		highlights: []string{"Khardung La Pass", "Pangong Lake Camp", "Thiksey Monastery"},
		inclusions: []string{"Accommodation", "All Meals", "Oxygen Support", "Inner Line Permits"},
		exclusions: []string{"Flights", "Personal Gear"},
		itinerary: []tour_models.ItineraryDay{
			{Day: 1, Title: "Arrival in Leh", Description: "Acclimatization day.", Activities: []string{"Rest", "Leh market stroll"}},
			{Day: 2, Title: "Monastery circuit", Description: "Indus valley monasteries.", Activities: []string{"Thiksey", "Hemis"}},
		},
		maxGroupSize: 8, difficulty: "challenging", rating: 4.9, totalReviews: 167,
		category: "adventure", guideEmail: "vikram@tripguide.com",
	},
}

func seedGuides(ctx context.Context, pool *pgxpool.Pool) map[string]uuid.UUID {
	ids := make(map[string]uuid.UUID)
	for _, g := range guides {
		id, err := shared_models.GenerateUUIDv7()
		if err != nil {
			logger.ErrorLogger.Errorf("Failed to generate guide ID: %v", err)
			os.Exit(1)
		}
		var insertedID uuid.UUID
		err = pool.QueryRow(ctx, `
			INSERT INTO guides (id, name, email, phone, photo, location, languages, specialties,
				experience, rating, total_reviews, price_per_day, bio, is_available)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, TRUE)
			ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`,
			id, g.name, g.email, g.phone, g.photo, g.location, g.languages, g.specialties,
			g.experience, g.rating, g.totalReviews, g.pricePerDay, g.bio,
		).Scan(&insertedID)
		if err != nil {
			logger.ErrorLogger.Errorf("Failed to seed guide %s: %v", g.email, err)
			os.Exit(1)
		}
		ids[g.email] = insertedID
	}
	logger.InfoLogger.Infof("Seeded %d guides", len(guides))
	return ids
}

func seedTours(ctx context.Context, pool *pgxpool.Pool, guideIDs map[string]uuid.UUID) {
	for _, t := range tours {
		id, err := shared_models.GenerateUUIDv7()
		if err != nil {
			logger.ErrorLogger.Errorf("Failed to generate tour ID: %v", err)
			os.Exit(1)
		}
		var guideID *uuid.UUID
		if gid, ok := guideIDs[t.guideEmail]; ok {
			guideID = &gid
		}
		_, err = pool.Exec(ctx, `
			INSERT INTO tours (id, name, description, destination, duration_days, duration_nights,
				price, discount_price, images, cover_image, highlights, inclusions, exclusions,
				itinerary, max_group_size, difficulty, rating, total_reviews, guide_id,
				start_dates, is_active, category)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
				$14, $15, $16, $17, $18, $19, $20, TRUE, $21)
			ON CONFLICT DO NOTHING`,
			id, t.name, t.description, t.destination, t.days, t.nights,
			t.price, t.discountPrice, t.images, t.coverImage, t.highlights, t.inclusions, t.exclusions,
			t.itinerary, t.maxGroupSize, t.difficulty, t.rating, t.totalReviews, guideID,
			[]time.Time{time.Now().AddDate(0, 1, 0), time.Now().AddDate(0, 2, 0)}, t.category,
		)
		if err != nil {
			logger.ErrorLogger.Errorf("Failed to seed tour %s: %v", t.name, err)
			os.Exit(1)
		}
	}
	logger.InfoLogger.Infof("Seeded %d tours", len(tours))
}

func seedAdmin(ctx context.Context, pool *pgxpool.Pool) {
	hash, err := user_models.HashPassword("admin123")
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to hash admin password: %v", err)
		os.Exit(1)
	}
	id, err := shared_models.GenerateUUIDv7()
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to generate admin ID: %v", err)
		os.Exit(1)
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, first_name, last_name, email, phone, country, password_hash, role)
		VALUES ($1, 'Admin', 'User', 'admin@tripguide.com', '+91 00000 00000', 'India', $2, 'admin')
		ON CONFLICT (email) DO NOTHING`,
		id, hash,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to seed admin user: %v", err)
		os.Exit(1)
	}
	logger.InfoLogger.Info("Seeded admin user (admin@tripguide.com)")
}

func main() {
	ctx := context.Background()

	pool, err := db.Connect(ctx)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer db.Close(pool)

	if _, err := pool.Exec(ctx, schema); err != nil {
		logger.ErrorLogger.Errorf("Failed to create schema: %v", err)
		os.Exit(1)
	}
	logger.InfoLogger.Info("Schema ready")

	guideIDs := seedGuides(ctx, pool)
	seedTours(ctx, pool, guideIDs)
	seedAdmin(ctx, pool)

	logger.InfoLogger.Info("Seeding complete")
}
