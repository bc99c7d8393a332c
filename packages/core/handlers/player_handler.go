package handlers

import (
	"core/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PlayerHandler struct {
	playerService *services.PlayerService
}

func NewPlayerHandler(playerService *services.PlayerService) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
	}
}

// GetAllPlayers lists players ordered by rating
// @Summary List players
// @Description Get all players ordered by rating (highest first)
// @Tags players
// @Produce json
// @Param page query int false "Page number (default: 1)" default(1)
// @Param per_page query int false "Items per page (default: 10, max: 100)" default(10)
// @Success 200 {object} models.PaginatedPlayersResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players [get]
func (h *PlayerHandler) GetAllPlayers(c *gin.Context) {
	page, perPage, ok := parsePagination(c)
	if !ok {
		return
	}

	players, err := h.playerService.GetAllPlayers(page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve players"})
		return
	}

	c.JSON(http.StatusOK, players)
}

// GetTopPlayers gets the highest rated players
// @Summary Get top players
// @Description Get the N highest rated players
// @Tags players
// @Produce json
// @Param limit query int false "Number of players to retrieve (default: 10, max: 100)"
// @Success 200 {array} models.Player
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/top [get]
func (h *PlayerHandler) GetTopPlayers(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}

	if limit > 100 {
		limit = 100
	}

	players, err := h.playerService.GetTopPlayersByRating(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve top players"})
		return
	}

	c.JSON(http.StatusOK, players)
}

// GetPlayer gets a player by ID
// @Summary Get player by ID
// @Description Get a player's profile and record
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} models.Player
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /players/{id} [get]
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player ID"})
		return
	}

	player, err := h.playerService.GetPlayerByID(uint(id))
	if err != nil {
		if err.Error() == "player not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, player)
}

// GetRatingHistory gets a player's rating history
// @Summary Get player rating history
// @Description Get the chronological rating changes of a player
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {array} models.RatingHistory
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/{id}/rating-history [get]
func (h *PlayerHandler) GetRatingHistory(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player ID"})
		return
	}

	history, err := h.playerService.GetRatingHistoryByPlayerID(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rating history"})
		return
	}

	c.JSON(http.StatusOK, history)
}

// GetPlayerMatches gets a player's matches
// @Summary Get player matches
// @Description Get the matches a player took part in, newest first
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Param page query int false "Page number (default: 1)" default(1)
// @Param per_page query int false "Items per page (default: 10, max: 100)" default(10)
// @Success 200 {object} models.PaginatedMatchResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/{id}/matches [get]
func (h *PlayerHandler) GetPlayerMatches(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player ID"})
		return
	}

	page, perPage, ok := parsePagination(c)
	if !ok {
		return
	}

	matches, err := h.playerService.GetPlayerMatches(uint(id), page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve player matches"})
		return
	}

	c.JSON(http.StatusOK, matches)
}
