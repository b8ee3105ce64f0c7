// internal/controller/campaign_controller.go
package controller

import (
    "encoding/json"
    "errors"
    "net/http"
    "strconv"
    "time"

    appErrors "github.com/partnerhub/crm-backend/internal/errors"
    "github.com/partnerhub/crm-backend/internal/service"

    "github.com/go-chi/chi/v5"
)

type CampaignController struct {
    CampaignService *service.CampaignService
}

// writeServiceError maps typed service errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
    var campaignNotFound *appErrors.ErrCampaignNotFound
    var leadNotFound *appErrors.ErrLeadNotFound
    var badTransition *appErrors.ErrInvalidStateTransition
    var badCriteria *appErrors.ErrInvalidCriteria

    switch {
    case errors.As(err, &campaignNotFound), errors.As(err, &leadNotFound):
        http.Error(w, err.Error(), http.StatusNotFound)
    case errors.As(err, &badTransition):
        http.Error(w, err.Error(), http.StatusConflict)
    case errors.As(err, &badCriteria):
        http.Error(w, err.Error(), http.StatusBadRequest)
    default:
        http.Error(w, err.Error(), http.StatusInternalServerError)
    }
}

func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
    var body struct {
        Name           string   `json:"name"`
        Channel        string   `json:"channel"`
        BaseTemplate   string   `json:"base_template"`
        TargetTags     []string `json:"target_tags"`
        ScheduledStart *string  `json:"scheduled_start"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    campaign, err := c.CampaignService.CreateCampaign(body.Name, body.Channel, body.BaseTemplate, body.TargetTags, body.ScheduledStart)
    if err != nil {
        writeServiceError(w, err)
        return
    }

    json.NewEncoder(w).Encode(campaign)
}

func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
    page, _ := strconv.Atoi(r.URL.Query().Get("page"))
    pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
    channel := r.URL.Query().Get("channel")
    status := r.URL.Query().Get("status")

    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 20
    }

    campaigns, pagination, err := c.CampaignService.ListCampaigns(page, pageSize, channel, status)
    if err != nil {
        writeServiceError(w, err)
        return
    }

    json.NewEncoder(w).Encode(map[string]interface{}{
        "data":       campaigns,
        "pagination": pagination,
    })
}

func (c *CampaignController) GetCampaignDetails(w http.ResponseWriter, r *http.Request) {
    idStr := chi.URLParam(r, "id")
    id, err := strconv.Atoi(idStr)
    if err != nil {
        http.Error(w, "invalid campaign id", http.StatusBadRequest)
        return
    }

    details, err := c.CampaignService.GetCampaignDetailsWithStats(id)
    if err != nil {
        writeServiceError(w, err)
        return
    }

    json.NewEncoder(w).Encode(details)
}

func (c *CampaignController) PlanCampaign(w http.ResponseWriter, r *http.Request) {
    idStr := chi.URLParam(r, "id")
    id, _ := strconv.Atoi(idStr)

    var body struct {
        ScheduledStart string `json:"scheduled_start"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    startAt, err := time.Parse(time.RFC3339, body.ScheduledStart)
    if err != nil {
        http.Error(w, "scheduled_start must be RFC3339", http.StatusBadRequest)
        return
    }

    if err := c.CampaignService.PlanCampaign(id, startAt); err != nil {
        writeServiceError(w, err)
        return
    }

    json.NewEncoder(w).Encode(map[string]interface{}{
        "campaign_id":     id,
        "status":          "planned",
        "scheduled_start": startAt,
    })
}

func (c *CampaignController) CancelCampaign(w http.ResponseWriter, r *http.Request) {
    idStr := chi.URLParam(r, "id")
    id, _ := strconv.Atoi(idStr)

    if err := c.CampaignService.CancelCampaign(id); err != nil {
        writeServiceError(w, err)
        return
    }

    json.NewEncoder(w).Encode(map[string]interface{}{
        "campaign_id": id,
        "status":      "cancelled",
    })
}

func (c *CampaignController) RecordReaction(w http.ResponseWriter, r *http.Request) {
    idStr := chi.URLParam(r, "id")
    id, _ := strconv.Atoi(idStr)

    var body struct {
        LeadID int    `json:"lead_id"`
        Kind   string `json:"kind"`
        Detail string `json:"detail"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    reaction, err := c.CampaignService.RecordReaction(id, body.LeadID, body.Kind, body.Detail)
    if err != nil {
        writeServiceError(w, err)
        return
    }

    json.NewEncoder(w).Encode(reaction)
}

func (c *CampaignController) LaunchCampaign(w http.ResponseWriter, r *http.Request) {
    idStr := chi.URLParam(r, "id")
    id, _ := strconv.Atoi(idStr)

    // delivery jobs are published by the service itself, so the
    // scheduled launch path feeds the worker the same way
    result, err := c.CampaignService.Launch(id, time.Now())
    if err != nil {
        writeServiceError(w, err)
        return
    }

    json.NewEncoder(w).Encode(map[string]interface{}{
        "campaign_id":       result.CampaignID,
        "status":            result.Status,
        "targets_processed": result.TargetsProcessed,
        "targets_failed":    result.TargetsFailed,
    })
}
