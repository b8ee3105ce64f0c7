// internal/scheduler/scheduler.go
package scheduler

import (
	"log"
	"time"

	"github.com/partnerhub/crm-backend/internal/queue"
	"github.com/partnerhub/crm-backend/internal/repository"
	"github.com/partnerhub/crm-backend/internal/service"
)

// Scheduler drives the two periodic jobs: the planned-campaign launch
// scan and the daily score sweep. The core services never look at the
// wall clock themselves; the scheduler passes `now` in.
type Scheduler struct {
	Campaigns *service.CampaignService
	LeadRepo  repository.LeadRepositoryInterface
	Queue     queue.Queue

	LaunchInterval time.Duration // default 15m
	ScoreInterval  time.Duration // default 24h
}

// Start launches both loops. They run until stop is closed.
func (s *Scheduler) Start(stop <-chan struct{}) {
	if s.LaunchInterval == 0 {
		s.LaunchInterval = 15 * time.Minute
	}
	if s.ScoreInterval == 0 {
		s.ScoreInterval = 24 * time.Hour
	}

	go s.launchLoop(stop)
	go s.scoreLoop(stop)
}

func (s *Scheduler) launchLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(s.LaunchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			launched := s.Campaigns.LaunchDue(now)
			if launched > 0 {
				log.Println("🚀 Launched", launched, "scheduled campaign(s)")
			}
		}
	}
}

func (s *Scheduler) scoreLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(s.ScoreInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.SweepScores()
		}
	}
}

// SweepScores enqueues a recompute job for every lead.
func (s *Scheduler) SweepScores() {
	leads, err := s.LeadRepo.ListAll()
	if err != nil {
		log.Println("⚠️ score sweep: failed to list leads:", err)
		return
	}

	for _, lead := range leads {
		if err := s.Queue.Publish(queue.ScoreRecomputeTopic, lead.ID); err != nil {
			log.Println("⚠️ score sweep: failed to enqueue lead", lead.ID, ":", err)
		}
	}
	log.Println("📊 Score sweep enqueued for", len(leads), "leads")
}
