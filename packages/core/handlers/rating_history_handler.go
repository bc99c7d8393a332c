package handlers

import (
	"core/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type RatingHistoryHandler struct {
	ratingHistoryService *services.RatingHistoryService
}

func NewRatingHistoryHandler(ratingHistoryService *services.RatingHistoryService) *RatingHistoryHandler {
	return &RatingHistoryHandler{
		ratingHistoryService: ratingHistoryService,
	}
}

// GetRecentRatingChanges gets the most recent rating changes
// @Summary Get recent rating changes
// @Description Get the N most recent rating changes across all players
// @Tags rating-history
// @Produce json
// @Param limit query int false "Number of entries to retrieve (default: 10, max: 100)"
// @Success 200 {array} models.RatingHistory
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /rating-history/recent [get]
func (h *RatingHistoryHandler) GetRecentRatingChanges(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}

	if limit > 100 {
		limit = 100
	}

	history, err := h.ratingHistoryService.GetRecentRatingChanges(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rating changes"})
		return
	}

	c.JSON(http.StatusOK, history)
}
