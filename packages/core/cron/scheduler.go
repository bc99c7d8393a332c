package cron

import (
	"core/services"
	"log"

	authUtils "auth/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

type Scheduler struct {
	cron                  *cron.Cron
	autoValidationService *services.AutoValidationService
	db                    *gorm.DB
}

func NewScheduler(autoValidationService *services.AutoValidationService, db *gorm.DB) *Scheduler {
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	return &Scheduler{
		cron:                  c,
		autoValidationService: autoValidationService,
		db:                    db,
	}
}

// Start registers and starts all scheduled jobs.
func (s *Scheduler) Start() error {
	log.Println("Starting cron scheduler...")

	// Auto-confirm expired reported matches at minute 0 of every hour
	_, err := s.cron.AddFunc("0 0 * * * *", s.runAutoValidation)
	if err != nil {
		log.Printf("Error scheduling auto-validation job: %v", err)
		return err
	}

	// Sweep expired refresh tokens every day at 03:00
	_, err = s.cron.AddFunc("0 0 3 * * *", s.runTokenCleanup)
	if err != nil {
		log.Printf("Error scheduling token cleanup job: %v", err)
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started successfully")

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	s.cron.Stop()
	log.Println("Cron scheduler stopped")
}

func (s *Scheduler) runAutoValidation() {
	log.Println("Running auto-validation job...")

	expiredCount, err := s.autoValidationService.GetExpiredMatchesCount()
	if err != nil {
		log.Printf("Error checking expired matches count: %v", err)
		return
	}

	if expiredCount == 0 {
		log.Println("No expired matches to confirm")
		return
	}

	log.Printf("Found %d expired matches to confirm", expiredCount)

	if err := s.autoValidationService.ValidateExpiredMatches(); err != nil {
		log.Printf("Error during auto-validation: %v", err)
		return
	}

	log.Println("Auto-validation job completed successfully")
}

func (s *Scheduler) runTokenCleanup() {
	log.Println("Running refresh token cleanup job...")

	if err := authUtils.CleanExpiredTokens(s.db); err != nil {
		log.Printf("Error cleaning expired refresh tokens: %v", err)
		return
	}

	log.Println("Refresh token cleanup job completed")
}

// RunNow manually triggers the auto-validation job (useful for testing)
func (s *Scheduler) RunNow() {
	log.Println("Manually triggering auto-validation job...")
	s.runAutoValidation()
}
