package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/topcardetailing/booking-api/internal/config"
	"github.com/topcardetailing/booking-api/internal/httperr"
	"github.com/topcardetailing/booking-api/internal/httpresp"
	"github.com/topcardetailing/booking-api/internal/models"
	"github.com/topcardetailing/booking-api/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
}

type sessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// --------- Handlers ---------

// Handle dispatches on the action query parameter, matching the portal's
// single auth endpoint.
func (h *AuthHandler) Handle(c *gin.Context) {
	switch c.Query("action") {
	case "login":
		h.login(c)
	case "signup":
		h.signup(c)
	default:
		httperr.BadRequest(c, "invalid_action", "Invalid action")
	}
}

// login is intentionally a demo gate: any credentials are accepted and the
// role comes from the email address. Known users keep their stored identity.
func (h *AuthHandler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Email and password are required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailValid(email) {
		httperr.BadRequest(c, "invalid_email", "Invalid email address")
		return
	}

	user := sessionUser{
		ID:    uuid.NewString(),
		Name:  "Mock User",
		Email: email,
		Role:  validators.RoleForEmail(email),
	}

	var stored models.User
	err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&stored).Error
	if err == nil {
		user.ID = stored.ID
		user.Name = stored.Name
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Internal(c, "internal_error", "Authentication failed")
		return
	}

	token, err := h.generateToken(user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Authentication failed")
		return
	}

	httpresp.OKMessage(c, gin.H{"user": user, "token": token}, "Login successful")
}

func (h *AuthHandler) signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "All fields are required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailValid(email) {
		httperr.BadRequest(c, "invalid_email", "Invalid email address")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Account creation failed")
		return
	}

	stored := models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         "customer",
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&stored).Error; err != nil {
		httperr.BadRequest(c, "email_already_registered", "An account with this email already exists")
		return
	}

	user := sessionUser{
		ID:    stored.ID,
		Name:  stored.Name,
		Email: stored.Email,
		Role:  stored.Role,
	}

	token, err := h.generateToken(user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Account creation failed")
		return
	}

	httpresp.Created(c, gin.H{"user": user, "token": token}, "Account created successfully")
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user sessionUser) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
