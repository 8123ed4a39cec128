package user_models

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/argon2"

	"github.com/tripguide/api/logger"
	"github.com/tripguide/api/models/shared_models"
)

// Argon2 parameters.
const (
	Memory      = 64 * 1024
	Iterations  = 3
	Parallelism = 4
	SaltLength  = 16
	KeyLength   = 64
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrIncorrectPassword  = errors.New("current password is incorrect")
)

// User Model
type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Country      string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the client-facing projection of a User. The credential hash
// never leaves the model layer.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Country   string    `json:"country"`
	Role      string    `json:"role"`
}

// Public returns the projection of the user safe to hand to clients.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Name:      strings.TrimSpace(u.FirstName + " " + u.LastName),
		Email:     u.Email,
		Phone:     u.Phone,
		Country:   u.Country,
		Role:      u.Role,
	}
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == shared_models.RoleAdmin
}

func generateSalt(size int) ([]byte, error) {
	salt := make([]byte, size)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// HashPassword hashes a password using Argon2id.
func HashPassword(password string) (string, error) {
	salt, err := generateSalt(SaltLength)
	if err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, Iterations, Memory, uint8(Parallelism), KeyLength)

	saltBase64 := base64.RawStdEncoding.EncodeToString(salt)
	hashBase64 := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("%s$%s", saltBase64, hashBase64), nil
}

// VerifyPassword verifies a password against a stored hash.
func VerifyPassword(password, storedHash string) (bool, error) {
	parts := strings.Split(storedHash, "$")
	if len(parts) != 2 {
		return false, errors.New("invalid stored hash format")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[0])
	if err != nil {
		return false, err
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil {
		return false, err
	}

	computedHash := argon2.IDKey([]byte(password), salt, Iterations, Memory, uint8(Parallelism), KeyLength)
	if subtle.ConstantTimeCompare(computedHash, expectedHash) == 1 {
		return true, nil
	}
	return false, nil
}

// NormalizeEmail lowercases and trims an email address before lookup or storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

const userColumns = `id, first_name, last_name, email, phone, country, password_hash, role, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Phone,
		&user.Country,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error fetching user: %w", err)
	}
	return user, nil
}

// GetUserByID fetches a user by primary key.
func GetUserByID(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(db.QueryRow(ctx, query, userID))
}

// GetUserByEmail fetches a user by normalized email.
func GetUserByEmail(ctx context.Context, db *pgxpool.Pool, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(db.QueryRow(ctx, query, NormalizeEmail(email)))
}

// CreateUser registers a new user with a hashed password.
func CreateUser(ctx context.Context, db *pgxpool.Pool, firstName, lastName, email, phone, country, password string) (*User, error) {
	logger.InfoLogger.Info("CreateUser called on models")

	email = NormalizeEmail(email)

	passwordHash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := shared_models.GenerateUUIDv7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUIDv7: %w", err)
	}

	query := `
		INSERT INTO users (id, first_name, last_name, email, phone, country, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + userColumns

	user, err := scanUser(db.QueryRow(ctx, query,
		userID, firstName, lastName, email, phone, country, passwordHash, shared_models.RoleUser,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			logger.WarnLogger.Warnf("Registration attempt with existing email: %s", email)
			return nil, ErrEmailTaken
		}
		logger.ErrorLogger.Errorf("Failed to insert user %s: %v", email, err)
		return nil, err
	}

	logger.InfoLogger.Infof("User %s created successfully", user.ID)
	return user, nil
}

// LoginUser authenticates a user and issues an access token. Lookup and
// password failures collapse into the same error so callers cannot tell
// which one happened.
func LoginUser(ctx context.Context, db *pgxpool.Pool, email, password string) (*User, string, error) {
	logger.InfoLogger.Info("LoginUser called on models")

	user, err := GetUserByEmail(ctx, db, email)
	if err != nil {
		logger.WarnLogger.Warnf("Login failed for email %s: %v", email, err)
		return nil, "", ErrInvalidCredentials
	}

	valid, err := VerifyPassword(password, user.PasswordHash)
	if err != nil || !valid {
		logger.WarnLogger.Warnf("Invalid password attempt for user %s", user.ID)
		return nil, "", ErrInvalidCredentials
	}

	token, err := shared_models.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// UpdateUserFields applies a partial update of mutable profile fields.
// Allowed keys: first_name, last_name, phone, country.
func UpdateUserFields(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID, updates map[string]any) (*User, error) {
	allowed := map[string]bool{"first_name": true, "last_name": true, "phone": true, "country": true}

	setClauses := make([]string, 0, len(updates))
	args := []any{userID}
	for column, value := range updates {
		if !allowed[column] {
			return nil, fmt.Errorf("field %q is not updatable", column)
		}
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if len(setClauses) == 0 {
		return GetUserByID(ctx, db, userID)
	}

	query := fmt.Sprintf(
		`UPDATE users SET %s, updated_at = now() WHERE id = $1 RETURNING %s`,
		strings.Join(setClauses, ", "), userColumns,
	)

	user, err := scanUser(db.QueryRow(ctx, query, args...))
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to update user fields for %s: %v", userID, err)
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before storing a new hash.
func ChangePassword(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := GetUserByID(ctx, db, userID)
	if err != nil {
		return err
	}

	valid, err := VerifyPassword(currentPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("password verification failed: %w", err)
	}
	if !valid {
		return ErrIncorrectPassword
	}

	newHash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	cmdTag, err := db.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, userID, newHash)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to update password for user %s: %v", userID, err)
		return fmt.Errorf("failed to update password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	logger.InfoLogger.Infof("Password changed for user %s", userID)
	return nil
}
