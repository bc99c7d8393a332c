package handlers

import (
	"core/models"
	"core/services"
	"net/http"
	"strconv"

	authMiddleware "auth/middleware"
	authModels "auth/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MatchHandler struct {
	matchService *services.MatchService
	db           *gorm.DB
}

func NewMatchHandler(matchService *services.MatchService, db *gorm.DB) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
		db:           db,
	}
}

// GetRecentMatches retrieves the N most recently confirmed matches
// @Summary Get recent matches
// @Description Get the N most recently confirmed matches (newest first)
// @Tags matches
// @Produce json
// @Param limit query int false "Number of matches to retrieve (default: 10, max: 100)"
// @Success 200 {array} models.Match
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/recent [get]
func (h *MatchHandler) GetRecentMatches(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}

	// Cap the limit to prevent excessive queries
	if limit > 100 {
		limit = 100
	}

	matches, err := h.matchService.GetRecentMatches(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recent matches"})
		return
	}

	c.JSON(http.StatusOK, matches)
}

// GetMatches retrieves matches with pagination and filters
// @Summary List matches
// @Description Get matches with optional tournament, player, status and round filters
// @Tags matches
// @Produce json
// @Param page query int false "Page number (default: 1)" default(1)
// @Param per_page query int false "Items per page (default: 10, max: 100)" default(10)
// @Param tournament_id query int false "Filter by tournament ID"
// @Param player_id query int false "Filter by player ID (either slot)"
// @Param status query string false "Filter by match status" Enums(waiting,scheduled,reported,confirmed,bye)
// @Param round query int false "Filter by round number"
// @Success 200 {object} models.PaginatedMatchResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches [get]
func (h *MatchHandler) GetMatches(c *gin.Context) {
	page, perPage, ok := parsePagination(c)
	if !ok {
		return
	}

	var tournamentID *uint
	if param := c.Query("tournament_id"); param != "" {
		id, err := strconv.ParseUint(param, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament_id parameter"})
			return
		}
		v := uint(id)
		tournamentID = &v
	}

	var playerID *uint
	if param := c.Query("player_id"); param != "" {
		id, err := strconv.ParseUint(param, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player_id parameter"})
			return
		}
		v := uint(id)
		playerID = &v
	}

	var status *string
	if param := c.Query("status"); param != "" {
		status = &param
	}

	var round *int
	if param := c.Query("round"); param != "" {
		r, err := strconv.Atoi(param)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid round parameter"})
			return
		}
		round = &r
	}

	matches, err := h.matchService.GetMatches(page, perPage, tournamentID, playerID, status, round)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve matches"})
		return
	}

	c.JSON(http.StatusOK, matches)
}

// GetMatch gets a match by ID
// @Summary Get match by ID
// @Description Get a single match with its players and winner
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matches/{id} [get]
func (h *MatchHandler) GetMatch(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}

	match, err := h.matchService.GetMatchByID(id)
	if err != nil {
		if err.Error() == "match not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, match)
}

// ReportScore submits a result for a match
// @Summary Report a match score
// @Description Submit scores for a scheduled match; the winner is derived from them
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param scores body models.ReportScoreRequest true "Match scores"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matches/{id}/report [post]
func (h *MatchHandler) ReportScore(c *gin.Context) {
	userID, ok := authMiddleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, ok := parseMatchID(c)
	if !ok {
		return
	}

	var req models.ReportScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := h.matchService.ReportScore(id, userID, req)
	if err != nil {
		if err.Error() == "match not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, match)
}

// ConfirmMatch confirms a reported result
// @Summary Confirm a reported result
// @Description Confirm the reported result as the opponent (or admin); the winner advances
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matches/{id}/confirm [post]
func (h *MatchHandler) ConfirmMatch(c *gin.Context) {
	userID, ok := authMiddleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, ok := parseMatchID(c)
	if !ok {
		return
	}

	match, err := h.matchService.ConfirmMatch(id, userID, h.isAdmin(userID))
	if err != nil {
		if err.Error() == "match not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, match)
}

// DisputeMatch rejects a reported result
// @Summary Dispute a reported result
// @Description Reject the reported result and reopen the match for reporting
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matches/{id}/dispute [post]
func (h *MatchHandler) DisputeMatch(c *gin.Context) {
	userID, ok := authMiddleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, ok := parseMatchID(c)
	if !ok {
		return
	}

	match, err := h.matchService.DisputeMatch(id, userID, h.isAdmin(userID))
	if err != nil {
		if err.Error() == "match not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, match)
}

// ResetMatch undoes a confirmed result
// @Summary Reset a confirmed match
// @Description Undo a confirmed result while its next match is still unplayed (admin only)
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matches/{id}/reset [post]
func (h *MatchHandler) ResetMatch(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}

	match, err := h.matchService.ResetMatch(id)
	if err != nil {
		if err.Error() == "match not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, match)
}

func (h *MatchHandler) isAdmin(userID uint) bool {
	var user authModels.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return false
	}
	return user.HasRole(authModels.RoleAdmin)
}

func parseMatchID(c *gin.Context) (uint, bool) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID"})
		return 0, false
	}
	return uint(id), true
}
