package core

import (
	"core/cron"
	"core/handlers"
	"core/services"
	"log"

	authMiddleware "auth/middleware"
	authModels "auth/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	TournamentHandler     *handlers.TournamentHandler
	TournamentService     *services.TournamentService
	BracketHandler        *handlers.BracketHandler
	BracketService        *services.BracketService
	MatchHandler          *handlers.MatchHandler
	MatchService          *services.MatchService
	PlayerHandler         *handlers.PlayerHandler
	PlayerService         *services.PlayerService
	RatingHistoryHandler  *handlers.RatingHistoryHandler
	RatingHistoryService  *services.RatingHistoryService
	StatsHandler          *handlers.StatsHandler
	StatsService          *services.StatsService
	AutoValidationService *services.AutoValidationService
	Scheduler             *cron.Scheduler
	db                    *gorm.DB
}

func NewModule(db *gorm.DB) *Module {
	tournamentService := services.NewTournamentService(db)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService, db)

	bracketService := services.NewBracketService(db)
	bracketHandler := handlers.NewBracketHandler(bracketService, db)

	matchService := services.NewMatchService(db)
	matchHandler := handlers.NewMatchHandler(matchService, db)

	playerService := services.NewPlayerService(db)
	playerHandler := handlers.NewPlayerHandler(playerService)

	ratingHistoryService := services.NewRatingHistoryService(db)
	ratingHistoryHandler := handlers.NewRatingHistoryHandler(ratingHistoryService)

	statsService := services.NewStatsService(db)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Auto-validation confirms reported results once the reporting window
	// has elapsed
	autoValidationService := services.NewAutoValidationService(db, matchService)
	scheduler := cron.NewScheduler(autoValidationService, db)

	return &Module{
		TournamentHandler:     tournamentHandler,
		TournamentService:     tournamentService,
		BracketHandler:        bracketHandler,
		BracketService:        bracketService,
		MatchHandler:          matchHandler,
		MatchService:          matchService,
		PlayerHandler:         playerHandler,
		PlayerService:         playerService,
		RatingHistoryHandler:  ratingHistoryHandler,
		RatingHistoryService:  ratingHistoryService,
		StatsHandler:          statsHandler,
		StatsService:          statsService,
		AutoValidationService: autoValidationService,
		Scheduler:             scheduler,
		db:                    db,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	tournaments := r.Group("/tournaments")
	{
		tournaments.GET("", m.TournamentHandler.GetAllTournaments)
		tournaments.GET("/:id", m.TournamentHandler.GetTournament)
		tournaments.GET("/slug/:slug", m.TournamentHandler.GetTournamentBySlug)
		tournaments.GET("/:id/entrants", m.TournamentHandler.GetEntrants)
		tournaments.GET("/:id/bracket", m.BracketHandler.GetBracket)
		tournaments.POST("", authMiddleware.JWTMiddleware(), m.TournamentHandler.CreateTournament)
		tournaments.PATCH("/:id", authMiddleware.JWTMiddleware(), m.TournamentHandler.UpdateTournament)
		tournaments.POST("/:id/signup", authMiddleware.JWTMiddleware(), m.TournamentHandler.SignUp)
		tournaments.POST("/:id/withdraw", authMiddleware.JWTMiddleware(), m.TournamentHandler.Withdraw)
		tournaments.POST("/:id/start", authMiddleware.JWTMiddleware(), m.BracketHandler.StartTournament)
		tournaments.DELETE("/:id", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.TournamentHandler.DeleteTournament)
	}

	matches := r.Group("/matches")
	{
		matches.GET("", m.MatchHandler.GetMatches)
		matches.GET("/recent", m.MatchHandler.GetRecentMatches)
		matches.GET("/:id", m.MatchHandler.GetMatch)
		matches.POST("/:id/report", authMiddleware.JWTMiddleware(), m.MatchHandler.ReportScore)
		matches.POST("/:id/confirm", authMiddleware.JWTMiddleware(), m.MatchHandler.ConfirmMatch)
		matches.POST("/:id/dispute", authMiddleware.JWTMiddleware(), m.MatchHandler.DisputeMatch)
		matches.POST("/:id/reset", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.MatchHandler.ResetMatch)
	}

	players := r.Group("/players")
	{
		players.GET("", m.PlayerHandler.GetAllPlayers)
		players.GET("/top", m.PlayerHandler.GetTopPlayers)
		players.GET("/:id", m.PlayerHandler.GetPlayer)
		players.GET("/:id/rating-history", m.PlayerHandler.GetRatingHistory)
		players.GET("/:id/matches", m.PlayerHandler.GetPlayerMatches)
	}

	ratingHistory := r.Group("/rating-history")
	{
		ratingHistory.GET("/recent", m.RatingHistoryHandler.GetRecentRatingChanges)
	}

	r.GET("/stats", m.StatsHandler.GetStats)
}

// StartScheduler starts the cron scheduler for auto-validation
func (m *Module) StartScheduler() error {
	log.Println("Starting core module scheduler...")
	return m.Scheduler.Start()
}

// StopScheduler stops the cron scheduler
func (m *Module) StopScheduler() {
	log.Println("Stopping core module scheduler...")
	m.Scheduler.Stop()
}

// RunAutoValidationNow manually triggers auto-validation (useful for testing)
func (m *Module) RunAutoValidationNow() {
	log.Println("Manually triggering auto-validation...")
	m.AutoValidationService.ValidateExpiredMatches()
}
