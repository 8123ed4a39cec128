package user_controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripguide/api/config"
	"github.com/tripguide/api/logger"
	"github.com/tripguide/api/middlewares/auth"
	"github.com/tripguide/api/models/shared_models"
	"github.com/tripguide/api/models/user_models"
	"github.com/tripguide/api/utils"
)

// UserController handles registration, login and profile requests.
type UserController struct {
	DB *pgxpool.Pool
}

// NewUserController creates a new UserController.
func NewUserController(db *pgxpool.Pool) *UserController {
	return &UserController{DB: db}
}

func serverError(c *gin.Context, err error) {
	logger.ErrorLogger.Errorf("Unexpected server error: %v", err)
	if config.IsDevelopment() {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
}

type registerRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Country   string `json:"country" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
}

// Register handles user registration.
func (uc *UserController) Register(c *gin.Context) {
	logger.InfoLogger.Info("Register controller called")

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := user_models.CreateUser(c.Request.Context(), uc.DB,
		req.FirstName, req.LastName, req.Email, req.Phone, req.Country, req.Password)
	if err != nil {
		if errors.Is(err, user_models.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User with this email already exists"})
			return
		}
		serverError(c, err)
		return
	}

	token, err := shared_models.GenerateToken(user.ID)
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user":    user.Public(),
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles authentication. Unknown email and wrong password produce
// the identical response.
func (uc *UserController) Login(c *gin.Context) {
	logger.InfoLogger.Info("Login controller called")

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, token, err := user_models.LoginUser(c.Request.Context(), uc.DB, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user_models.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
			return
		}
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user.Public(),
	})
}

// GetProfile returns a user profile, restricted to the profile owner or an
// admin.
func (uc *UserController) GetProfile(c *gin.Context) {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	// A missing target is reported as 404 even to callers who would not be
	// allowed to see it; the access check applies to users that exist.
	user, err := user_models.GetUserByID(c.Request.Context(), uc.DB, targetID)
	if err != nil {
		if errors.Is(err, user_models.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		serverError(c, err)
		return
	}

	if actor.ID != user.ID && !actor.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

// GetMe returns the authenticated user's own profile.
func (uc *UserController) GetMe(c *gin.Context) {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, actor.Public())
}

type updateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	Country   *string `json:"country"`
}

// UpdateProfile applies a partial update of the mutable profile fields.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	logger.InfoLogger.Info("UpdateProfile controller called")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	updates := make(map[string]any)
	if req.FirstName != nil && *req.FirstName != "" {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil && *req.LastName != "" {
		updates["last_name"] = *req.LastName
	}
	if req.Phone != nil && *req.Phone != "" {
		updates["phone"] = *req.Phone
	}
	if req.Country != nil && *req.Country != "" {
		updates["country"] = *req.Country
	}

	user, err := user_models.UpdateUserFields(c.Request.Context(), uc.DB, actor.ID, updates)
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    user.Public(),
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// ChangePassword verifies the current password before storing a new one.
func (uc *UserController) ChangePassword(c *gin.Context) {
	logger.InfoLogger.Info("ChangePassword controller called")

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	err = user_models.ChangePassword(c.Request.Context(), uc.DB, userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, user_models.ErrIncorrectPassword) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Current password is incorrect"})
			return
		}
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
