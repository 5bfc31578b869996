package services

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"schoolhub-erp/internal/adapters/persistence/repositories"
)

// CronService runs the periodic maintenance jobs
type CronService struct {
	cron          *cron.Cron
	notifyService *NotificationService
	eventRepo     *repositories.EventRepository
}

// NewCronService creates a new cron service
func NewCronService(notifyService *NotificationService, eventRepo *repositories.EventRepository) *CronService {
	return &CronService{
		cron:          cron.New(),
		notifyService: notifyService,
		eventRepo:     eventRepo,
	}
}

// Start registers and launches the scheduled jobs:
//   - daily notification purge at 03:00
//   - hourly close of events whose start time has passed
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc("0 3 * * *", s.purgeNotifications); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@hourly", s.closePastEvents); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("✅ Cron jobs scheduled")
	return nil
}

// Stop halts the scheduler and waits for running jobs to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("✅ Cron jobs stopped")
}

func (s *CronService) purgeNotifications() {
	s.notifyService.PurgeExpired(context.Background())
}

func (s *CronService) closePastEvents() {
	n, err := s.eventRepo.ClosePastEvents(context.Background())
	if err != nil {
		log.Printf("⚠️ Closing past events failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("🧹 Closed %d past events", n)
	}
}
