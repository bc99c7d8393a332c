package handlers

import (
	"core/services"
	"net/http"
	"strconv"

	authMiddleware "auth/middleware"
	authModels "auth/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BracketHandler struct {
	bracketService *services.BracketService
	db             *gorm.DB
}

func NewBracketHandler(bracketService *services.BracketService, db *gorm.DB) *BracketHandler {
	return &BracketHandler{
		bracketService: bracketService,
		db:             db,
	}
}

// StartTournament seeds the entrants and generates the bracket
// @Summary Start a tournament
// @Description Assign seeds, generate the single-elimination bracket and open round 1
// @Tags brackets
// @Security BearerAuth
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} models.Tournament
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id}/start [post]
func (h *BracketHandler) StartTournament(c *gin.Context) {
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

	tournament, err := h.bracketService.StartTournament(uint(id), userID, h.isAdmin(userID))
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

// GetBracket returns the bracket as ordered rounds
// @Summary Get tournament bracket
// @Description Get the full bracket grouped into ordered rounds of matches
// @Tags brackets
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} models.BracketResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id}/bracket [get]
func (h *BracketHandler) GetBracket(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament ID"})
		return
	}

	bracket, err := h.bracketService.GetBracket(uint(id))
	if err != nil {
		if err.Error() == "tournament not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, bracket)
}

func (h *BracketHandler) isAdmin(userID uint) bool {
	var user authModels.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return false
	}
	return user.HasRole(authModels.RoleAdmin)
}
