package scheduler_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/partnerhub/crm-backend/internal/errors"
	"github.com/partnerhub/crm-backend/internal/model"
	"github.com/partnerhub/crm-backend/internal/queue"
	"github.com/partnerhub/crm-backend/internal/scheduler"
)

type stubLeadRepo struct {
	leads []model.Lead
}

func (s *stubLeadRepo) GetByID(id int) (*model.Lead, error) {
	return nil, appErrors.NewLeadNotFound(id)
}
func (s *stubLeadRepo) ListAll() ([]model.Lead, error)      { return s.leads, nil }
func (s *stubLeadRepo) UpdateScore(leadID, score int) error { return nil }
func (s *stubLeadRepo) ListInteractions(leadID int) ([]model.Interaction, error) {
	return nil, nil
}
func (s *stubLeadRepo) CreateInteraction(in *model.Interaction) error { return nil }

func TestSweepScoresEnqueuesEveryLead(t *testing.T) {
	repo := &stubLeadRepo{leads: []model.Lead{{ID: 1}, {ID: 2}, {ID: 3}}}
	q := queue.NewInMemoryQueue()

	var mu sync.Mutex
	seen := map[int]bool{}
	done := make(chan struct{}, 3)
	q.Subscribe(queue.ScoreRecomputeTopic, func(payload any) error {
		mu.Lock()
		seen[payload.(int)] = true
		mu.Unlock()
		done <- struct{}{}
		return nil
	})

	sched := &scheduler.Scheduler{LeadRepo: repo, Queue: q}
	sched.SweepScores()

	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for sweep jobs")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, seen)
}
