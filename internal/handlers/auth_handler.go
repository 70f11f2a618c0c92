package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"muattrans/internal/models"
	"muattrans/internal/services"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	auth := router.Group("/auth")
	auth.Post("/register", h.HandleRegister)
	auth.Post("/login", h.HandleLogin)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	const opType = "REGISTER_USER"

	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return respondBadRequest(c, "invalid request body", opType)
	}

	if err := h.validate.Struct(user); err != nil {
		return respondBadRequest(c, "validation failed: "+err.Error(), opType)
	}

	if err := h.authService.RegisterUser(c.Context(), &user); err != nil {
		log.Printf("error registering user: %v", err)
		return respondError(c, err, opType)
	}

	user.Password = ""
	return respondCreated(c, user, opType)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	const opType = "LOGIN_USER"

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid request body", opType)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondBadRequest(c, "username and password are required", opType)
	}

	token, err := h.authService.LoginUser(c.Context(), req.Username, req.Password)
	if err != nil {
		log.Printf("login failed for user %s: %v", req.Username, err)
		return respondError(c, err, opType)
	}

	return respondOK(c, fiber.Map{"token": token}, opType)
}
