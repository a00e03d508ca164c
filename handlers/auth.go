package handlers

import (
	"net/http"

	"food-marketplace-api/middleware"
	"food-marketplace-api/models"
	"food-marketplace-api/services"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"omitempty,oneof=Customer RestaurantOwner"`
	Phone    string          `json:"phone"`
	Address  string          `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// Register creates a new user account and logs it in
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		h.fail(c, "register", err)
		return
	}
	res, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, "register", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Account created successfully",
		"token":      res.Token,
		"expires_in": int64(res.ExpiresIn.Seconds()),
		"user":       user,
	})
}

// Login authenticates and returns a JWT
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, "login", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Login successful",
		"token":      res.Token,
		"expires_in": int64(res.ExpiresIn.Seconds()),
		"user":       res.User,
	})
}

// GetProfile returns the logged-in user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.users.Profile(c.Request.Context(), middleware.CurrentCaller(c))
	if err != nil {
		h.fail(c, "get_profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.users.UpdateProfile(c.Request.Context(), middleware.CurrentCaller(c), services.ProfileUpdate{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		h.fail(c, "update_profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": user})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	err := h.users.ChangePassword(c.Request.Context(), middleware.CurrentCaller(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		h.fail(c, "change_password", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	if err := h.users.DeleteAccount(c.Request.Context(), middleware.CurrentCaller(c)); err != nil {
		h.fail(c, "delete_account", err)
		return
	}
	c.Status(http.StatusNoContent)
}
