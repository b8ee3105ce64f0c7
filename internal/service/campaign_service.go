// internal/service/campaign_service.go
package service

import (
    "log"
    "time"

    appErrors "github.com/partnerhub/crm-backend/internal/errors"
    "github.com/partnerhub/crm-backend/internal/model"
    "github.com/partnerhub/crm-backend/internal/repository"
    "github.com/partnerhub/crm-backend/internal/segment"
)

// DeliveryPublisher hands the transmission work for dispatched targets
// to the delivery worker, one job per lead.
type DeliveryPublisher interface {
    PublishDeliveries(campaignID int, leadIDs []int) error
}

type CampaignService struct {
    CampaignRepo repository.CampaignRepositoryInterface
    LeadRepo     repository.LeadRepositoryInterface
    ReactionRepo repository.ReactionRepositoryInterface
    Delivery     DeliveryPublisher
}

// Result struct for Launch
type LaunchResult struct {
    CampaignID       int
    Status           string
    TargetsProcessed int
    TargetsFailed    int
    LeadIDs          []int
}

type CampaignDetails struct {
    ID             int            `json:"id"`
    Name           string         `json:"name"`
    Channel        string         `json:"channel"`
    Status         string         `json:"status"`
    BaseTemplate   string         `json:"base_template"`
    TargetTags     []string       `json:"target_tags"`
    ScheduledStart *time.Time     `json:"scheduled_start,omitempty"`
    StartedAt      *time.Time     `json:"started_at,omitempty"`
    CreatedAt      time.Time      `json:"created_at"`
    UpdatedAt      *time.Time     `json:"updated_at"`
    Stats          map[string]int `json:"stats"`
}

// Launch dispatches a planned campaign: flips it to running, resolves
// the target segment from the campaign's tags, and records one `open`
// reaction per target as the simulated delivery. Actual transmission
// belongs to the delivery worker; the reaction records the intent.
//
// The planned->running flip is a single conditional update in the
// repository. Launch never reads the status and then writes it in two
// steps, so two concurrent launches of the same campaign resolve to
// exactly one winner.
//
// Target processing is best-effort: a failed reaction append is
// counted and the loop moves on.
func (s *CampaignService) Launch(campaignID int, now time.Time) (*LaunchResult, error) {
    campaign, err := s.CampaignRepo.GetByID(campaignID)
    if err != nil {
        return nil, err
    }

    moved, err := s.CampaignRepo.UpdateStatusIf(campaignID, model.CampaignPlanned, model.CampaignRunning)
    if err != nil {
        return nil, err
    }
    if !moved {
        return nil, appErrors.NewInvalidStateTransition(campaignID, campaign.Status, model.CampaignRunning)
    }

    leads, err := s.LeadRepo.ListAll()
    if err != nil {
        return nil, err
    }

    targets := segment.Apply(leads, segment.Criteria{Tags: campaign.TargetTags})

    result := &LaunchResult{
        CampaignID: campaignID,
        Status:     model.CampaignRunning,
        LeadIDs:    []int{},
    }

    for _, lead := range targets {
        reaction := &model.Reaction{
            CampaignID: campaignID,
            LeadID:     lead.ID,
            Kind:       model.ReactionOpen,
            OccurredAt: now,
            Detail:     "simulated delivery",
        }
        if err := s.ReactionRepo.Append(reaction); err != nil {
            log.Println("⚠️ failed to record delivery for lead", lead.ID, ":", err)
            result.TargetsFailed++
            continue
        }
        result.LeadIDs = append(result.LeadIDs, lead.ID)
        result.TargetsProcessed++
    }

    // every launch path feeds the delivery worker, not just the HTTP one
    if len(result.LeadIDs) > 0 {
        if s.Delivery == nil {
            log.Println("⚠️ no delivery publisher configured, skipping delivery jobs for campaign", campaignID)
        } else if err := s.Delivery.PublishDeliveries(campaignID, result.LeadIDs); err != nil {
            log.Println("⚠️ failed to publish delivery jobs for campaign", campaignID, ":", err)
        }
    }

    return result, nil
}

// LaunchDue launches every planned campaign whose scheduled start has
// passed. Called by the scheduler on its cadence; each campaign is
// launched at most once because Launch itself guards the transition.
func (s *CampaignService) LaunchDue(now time.Time) int {
    due, err := s.CampaignRepo.ListPlannedDue(now)
    if err != nil {
        log.Println("⚠️ failed to scan for due campaigns:", err)
        return 0
    }

    launched := 0
    for _, c := range due {
        if _, err := s.Launch(c.ID, now); err != nil {
            log.Println("⚠️ scheduled launch failed for campaign", c.ID, ":", err)
            continue
        }
        launched++
    }
    return launched
}

func (s *CampaignService) CreateCampaign(name, channel, baseTemplate string, targetTags []string, scheduledStart *string) (*model.Campaign, error) {
    c := &model.Campaign{
        Name:         name,
        Channel:      channel,
        BaseTemplate: baseTemplate,
        TargetTags:   targetTags,
        Status:       model.CampaignDraft,
    }

    if scheduledStart != nil {
        t, err := time.Parse(time.RFC3339, *scheduledStart)
        if err != nil {
            return nil, err
        }
        c.ScheduledStart = &t
    }

    if err := s.CampaignRepo.Create(c); err != nil {
        return nil, err
    }

    return c, nil
}

// PlanCampaign moves a draft campaign to planned with a start time.
func (s *CampaignService) PlanCampaign(campaignID int, startAt time.Time) error {
    moved, err := s.CampaignRepo.Schedule(campaignID, startAt)
    if err != nil {
        return err
    }
    if moved {
        return nil
    }

    campaign, err := s.CampaignRepo.GetByID(campaignID)
    if err != nil {
        return err
    }
    return appErrors.NewInvalidStateTransition(campaignID, campaign.Status, model.CampaignPlanned)
}

// CancelCampaign cancels a campaign still in draft or planned.
func (s *CampaignService) CancelCampaign(campaignID int) error {
    for _, from := range []string{model.CampaignDraft, model.CampaignPlanned} {
        moved, err := s.CampaignRepo.UpdateStatusIf(campaignID, from, model.CampaignCancelled)
        if err != nil {
            return err
        }
        if moved {
            return nil
        }
    }

    campaign, err := s.CampaignRepo.GetByID(campaignID)
    if err != nil {
        return err
    }
    return appErrors.NewInvalidStateTransition(campaignID, campaign.Status, model.CampaignCancelled)
}

// CompleteCampaign moves a running campaign to completed.
func (s *CampaignService) CompleteCampaign(campaignID int) error {
    moved, err := s.CampaignRepo.UpdateStatusIf(campaignID, model.CampaignRunning, model.CampaignCompleted)
    if err != nil {
        return err
    }
    if moved {
        return nil
    }

    campaign, err := s.CampaignRepo.GetByID(campaignID)
    if err != nil {
        return err
    }
    return appErrors.NewInvalidStateTransition(campaignID, campaign.Status, model.CampaignCompleted)
}

// RecordReaction appends a reaction reported for a campaign delivery
// (open, click, reply, unsubscribe, conversion). Both referents must
// exist at write time.
func (s *CampaignService) RecordReaction(campaignID, leadID int, kind, detail string) (*model.Reaction, error) {
    if !model.IsValidReactionKind(kind) {
        return nil, appErrors.NewInvalidCriteria("unknown reaction kind " + kind)
    }

    if _, err := s.CampaignRepo.GetByID(campaignID); err != nil {
        return nil, err
    }
    if _, err := s.LeadRepo.GetByID(leadID); err != nil {
        return nil, err
    }

    reaction := &model.Reaction{
        CampaignID: campaignID,
        LeadID:     leadID,
        Kind:       kind,
        OccurredAt: time.Now(),
        Detail:     detail,
    }
    if err := s.ReactionRepo.Append(reaction); err != nil {
        return nil, err
    }
    return reaction, nil
}

// ListCampaigns fetches campaigns with pagination
func (s *CampaignService) ListCampaigns(page, pageSize int, channel, status string) ([]model.Campaign, map[string]int, error) {
    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 20
    }
    if pageSize > 100 {
        pageSize = 100
    }
    offset := (page - 1) * pageSize

    ptrs, total, err := s.CampaignRepo.ListCampaigns(offset, pageSize, channel, status)
    if err != nil {
        return nil, nil, err
    }

    campaigns := make([]model.Campaign, len(ptrs))
    for i, c := range ptrs {
        campaigns[i] = *c
    }

    totalPages := (total + pageSize - 1) / pageSize
    pagination := map[string]int{
        "page":        page,
        "page_size":   pageSize,
        "total_count": total,
        "total_pages": totalPages,
    }

    return campaigns, pagination, nil
}

// GetCampaignDetailsWithStats fetches a campaign along with its
// reaction counts per kind.
func (s *CampaignService) GetCampaignDetailsWithStats(campaignID int) (*CampaignDetails, error) {
    campaign, err := s.CampaignRepo.GetByID(campaignID)
    if err != nil {
        return nil, err
    }

    stats, err := s.CampaignRepo.GetReactionStats(campaignID)
    if err != nil {
        return nil, err
    }

    total := 0
    for _, count := range stats {
        total += count
    }
    stats["total"] = total

    return &CampaignDetails{
        ID:             campaign.ID,
        Name:           campaign.Name,
        Channel:        campaign.Channel,
        Status:         campaign.Status,
        BaseTemplate:   campaign.BaseTemplate,
        TargetTags:     campaign.TargetTags,
        ScheduledStart: campaign.ScheduledStart,
        StartedAt:      campaign.StartedAt,
        CreatedAt:      campaign.CreatedAt,
        UpdatedAt:      campaign.UpdatedAt,
        Stats:          stats,
    }, nil
}
