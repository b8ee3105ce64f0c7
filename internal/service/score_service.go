// internal/service/score_service.go
package service

import (
    "time"

    "github.com/partnerhub/crm-backend/internal/repository"
    "github.com/partnerhub/crm-backend/internal/scoring"
)

// ScoreService recomputes and persists engagement scores. The
// computation itself lives in the scoring package and stays pure;
// this service owns the write-back.
type ScoreService struct {
    LeadRepo repository.LeadRepositoryInterface
}

// RecomputeLeadScore loads the lead's interaction history, computes
// the time-decayed score as of now, and persists it. Returns the new
// score.
func (s *ScoreService) RecomputeLeadScore(leadID int, now time.Time) (int, error) {
    if _, err := s.LeadRepo.GetByID(leadID); err != nil {
        return 0, err
    }

    interactions, err := s.LeadRepo.ListInteractions(leadID)
    if err != nil {
        return 0, err
    }

    score := scoring.ComputeScore(interactions, now)

    if err := s.LeadRepo.UpdateScore(leadID, score); err != nil {
        return 0, err
    }
    return score, nil
}
