package handlers

import (
	"net/http"

	"food-marketplace-api/middleware"

	"github.com/gin-gonic/gin"
)

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment" binding:"max=2000"`
}

// AddReview rates a restaurant; owners cannot rate their own
func (h *Handler) AddReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	review, err := h.reviews.Add(c.Request.Context(), middleware.CurrentCaller(c), id, req.Rating, req.Comment)
	if err != nil {
		h.fail(c, "add_review", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Review added", "review": review})
}

func (h *Handler) DeleteReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.reviews.Delete(c.Request.Context(), middleware.CurrentCaller(c), id); err != nil {
		h.fail(c, "delete_review", err)
		return
	}
	c.Status(http.StatusNoContent)
}
