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

type TournamentHandler struct {
	tournamentService *services.TournamentService
	db                *gorm.DB
}

func NewTournamentHandler(tournamentService *services.TournamentService, db *gorm.DB) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: tournamentService,
		db:                db,
	}
}

// CreateTournament creates a new tournament
// @Summary Create a new tournament
// @Description Create a new tournament; the authenticated user becomes its organizer
// @Tags tournaments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param tournament body models.CreateTournamentRequest true "Tournament data"
// @Success 201 {object} models.Tournament
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /tournaments [post]
func (h *TournamentHandler) CreateTournament(c *gin.Context) {
	userID, ok := authMiddleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tournament, err := h.tournamentService.CreateTournament(req, userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, tournament)
}

// GetTournament gets a tournament by ID
// @Summary Get tournament by ID
// @Description Get tournament information
// @Tags tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} models.TournamentListItem
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id} [get]
func (h *TournamentHandler) GetTournament(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament ID"})
		return
	}

	tournament, err := h.tournamentService.GetTournamentByID(uint(id))
	if err != nil {
		if err.Error() == "tournament not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, tournament)
}

// GetTournamentBySlug gets a tournament by slug
// @Summary Get tournament by slug
// @Description Get tournament information by its URL slug
// @Tags tournaments
// @Produce json
// @Param slug path string true "Tournament slug"
// @Success 200 {object} models.TournamentListItem
// @Failure 404 {object} map[string]string
// @Router /tournaments/slug/{slug} [get]
func (h *TournamentHandler) GetTournamentBySlug(c *gin.Context) {
	slug := c.Param("slug")

	tournament, err := h.tournamentService.GetTournamentBySlug(slug)
	if err != nil {
		if err.Error() == "tournament not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, tournament)
}

// GetAllTournaments lists tournaments with pagination and filters
// @Summary List tournaments
// @Description Get tournaments with optional status and game filters
// @Tags tournaments
// @Produce json
// @Param page query int false "Page number (default: 1)" default(1)
// @Param per_page query int false "Items per page (default: 10, max: 100)" default(10)
// @Param status query string false "Filter by status" Enums(registration,in_progress,completed)
// @Param game query string false "Filter by game"
// @Success 200 {object} models.PaginatedTournamentsResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /tournaments [get]
func (h *TournamentHandler) GetAllTournaments(c *gin.Context) {
	page, perPage, ok := parsePagination(c)
	if !ok {
		return
	}

	var status *string
	if statusParam := c.Query("status"); statusParam != "" {
		status = &statusParam
	}

	var game *string
	if gameParam := c.Query("game"); gameParam != "" {
		game = &gameParam
	}

	tournaments, err := h.tournamentService.GetAllTournaments(page, perPage, status, game)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tournaments"})
		return
	}

	c.JSON(http.StatusOK, tournaments)
}

// UpdateTournament updates a tournament
// @Summary Update a tournament
// @Description Update name, description, or close an in-progress tournament
// @Tags tournaments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Tournament ID"
// @Param tournament body models.UpdateTournamentRequest true "Fields to update"
// @Success 200 {object} models.TournamentListItem
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id} [patch]
func (h *TournamentHandler) UpdateTournament(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament ID"})
		return
	}

	if !h.isCreatorOrAdmin(c, uint(id)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the tournament creator can update it"})
		return
	}

	var req models.UpdateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tournament, err := h.tournamentService.UpdateTournament(uint(id), req)
	if err != nil {
		if err.Error() == "tournament not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, tournament)
}

// DeleteTournament deletes a tournament
// @Summary Delete a tournament
// @Description Delete a tournament (admin only)
// @Tags tournaments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id} [delete]
func (h *TournamentHandler) DeleteTournament(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament ID"})
		return
	}

	if err := h.tournamentService.DeleteTournament(uint(id)); err != nil {
		if err.Error() == "tournament not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tournament deleted"})
}

// SignUp registers the authenticated player in a tournament
// @Summary Sign up for a tournament
// @Description Register the authenticated player as an entrant
// @Tags tournaments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 201 {object} models.TournamentPlayer
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /tournaments/{id}/signup [post]
func (h *TournamentHandler) SignUp(c *gin.Context) {
	userID, ok := authMiddleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament ID"})
		return
	}

	entry, err := h.tournamentService.SignUp(uint(id), userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// Withdraw removes the authenticated player's signup
// @Summary Withdraw from a tournament
// @Description Remove the authenticated player's signup while registration is open
// @Tags tournaments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /tournaments/{id}/withdraw [post]
func (h *TournamentHandler) Withdraw(c *gin.Context) {
	userID, ok := authMiddleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament ID"})
		return
	}

	if err := h.tournamentService.Withdraw(uint(id), userID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Withdrawn from tournament"})
}

// GetEntrants lists the entrants of a tournament
// @Summary List tournament entrants
// @Description Get the entrants of a tournament, in seed order once seeded
// @Tags tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Param page query int false "Page number (default: 1)" default(1)
// @Param per_page query int false "Items per page (default: 10, max: 100)" default(10)
// @Success 200 {object} models.PaginatedEntrantsResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /tournaments/{id}/entrants [get]
func (h *TournamentHandler) GetEntrants(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament ID"})
		return
	}

	page, perPage, ok := parsePagination(c)
	if !ok {
		return
	}

	entrants, err := h.tournamentService.GetEntrants(uint(id), page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entrants"})
		return
	}

	c.JSON(http.StatusOK, entrants)
}

// isCreatorOrAdmin reports whether the authenticated user created the
// tournament or carries the admin role.
func (h *TournamentHandler) isCreatorOrAdmin(c *gin.Context, tournamentID uint) bool {
	userID, ok := authMiddleware.GetUserID(c)
	if !ok {
		return false
	}

	var tournament models.Tournament
	if err := h.db.First(&tournament, tournamentID).Error; err != nil {
		// Let the service report not-found with the right status
		return true
	}

	if tournament.CreatedByID == userID {
		return true
	}

	var user authModels.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return false
	}

	return user.HasRole(authModels.RoleAdmin)
}

// parsePagination reads page/per_page query parameters, writing the error
// response itself when they are invalid.
func parsePagination(c *gin.Context) (page, perPage int, ok bool) {
	pageStr := c.DefaultQuery("page", "1")
	perPageStr := c.DefaultQuery("per_page", "10")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page parameter"})
		return 0, 0, false
	}

	perPage, err = strconv.Atoi(perPageStr)
	if err != nil || perPage < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid per_page parameter"})
		return 0, 0, false
	}

	if perPage > 100 {
		perPage = 100
	}

	return page, perPage, true
}
