package handlers

import (
	"fmt"
	"log"

	"github.com/KMuszynski/Cloud-Computing/middleware"
	"github.com/KMuszynski/Cloud-Computing/models"
	"github.com/KMuszynski/Cloud-Computing/repositories"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandlers struct {
	userRepo *repositories.UserRepository
	logRepo  *repositories.LogRepository
}

func NewAuthHandlers(userRepo *repositories.UserRepository, logRepo *repositories.LogRepository) *AuthHandlers {
	return &AuthHandlers{userRepo: userRepo, logRepo: logRepo}
}

type addUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AddUser handles POST /add_user
func (h *AuthHandlers) AddUser(c *fiber.Ctx) error {
	var req addUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	exists, err := h.userRepo.EmailExists(req.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check email"})
	}
	if exists {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email already in use"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := h.userRepo.Create(&user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email already in use"})
	}

	h.appendLog(models.ActionUserAccountAdded, user.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("User %s added successfully!", user.Username),
		"user_id": user.ID,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /login. Invalid credentials produce no log entry;
// validation fails before any append happens.
func (h *AuthHandlers) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	user, err := h.userRepo.GetByEmail(req.Email)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	h.appendLog(models.ActionUserLoggedIn, user.ID)

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Welcome, %s!", user.Username),
		"user_id": user.ID,
	})
}

// Logout handles POST /logout
func (h *AuthHandlers) Logout(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	user, err := h.userRepo.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	h.appendLog(models.ActionUserLoggedOut, user.ID)

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

type updateProfileRequest struct {
	UserID uint `json:"user_id"`
}

// UpdateProfile handles POST /update_profile
func (h *AuthHandlers) UpdateProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil || req.UserID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing user_id"})
	}

	h.appendLog(models.ActionUserUpdatedProfile, req.UserID)

	return c.JSON(fiber.Map{"message": "Profile updated successfully"})
}

// appendLog records a user-lifecycle event. A failed append leaves the
// primary mutation in place; there is nothing to roll back for these actions.
func (h *AuthHandlers) appendLog(action models.Action, userID uint) {
	entry := models.LogEntry{Action: action, UserID: userID}
	if err := h.logRepo.Append(&entry); err != nil {
		log.Printf("Failed to append %s log entry for user %d: %v", action, userID, err)
	}
}
