package handlers

import (
	"net/http"

	"food-marketplace-api/middleware"
	"food-marketplace-api/services"

	"github.com/gin-gonic/gin"
)

type CardRequest struct {
	HolderName string `json:"holder_name" binding:"required"`
	Number     string `json:"number" binding:"required"`
	ExpMonth   int    `json:"exp_month" binding:"required,min=1,max=12"`
	ExpYear    int    `json:"exp_year" binding:"required"`
}

// SaveCard stores or replaces the caller's payment card
func (h *Handler) SaveCard(c *gin.Context) {
	var req CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	card, err := h.cards.Save(c.Request.Context(), middleware.CurrentCaller(c), services.CardInput{
		HolderName: req.HolderName,
		Number:     req.Number,
		ExpMonth:   req.ExpMonth,
		ExpYear:    req.ExpYear,
	})
	if err != nil {
		h.fail(c, "save_card", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Card saved", "card": newCardView(card)})
}

// GetCard returns the caller's card with the number masked
func (h *Handler) GetCard(c *gin.Context) {
	card, err := h.cards.Get(c.Request.Context(), middleware.CurrentCaller(c))
	if err != nil {
		h.fail(c, "get_card", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"card": newCardView(card)})
}

func (h *Handler) DeleteCard(c *gin.Context) {
	if err := h.cards.Delete(c.Request.Context(), middleware.CurrentCaller(c)); err != nil {
		h.fail(c, "delete_card", err)
		return
	}
	c.Status(http.StatusNoContent)
}
