// internal/model/campaign.go
package model

import "time"

// Campaign statuses. draft -> planned -> running -> completed, with
// cancelled reachable from draft or planned.
const (
    CampaignDraft     = "draft"
    CampaignPlanned   = "planned"
    CampaignRunning   = "running"
    CampaignCompleted = "completed"
    CampaignCancelled = "cancelled"
)

type Campaign struct {
    ID             int        `db:"id" json:"id"`
    Name           string     `db:"name" json:"name"`
    Channel        string     `db:"channel" json:"channel"`
    Status         string     `db:"status" json:"status"`
    BaseTemplate   string     `db:"base_template" json:"base_template"`
    TargetTags     []string   `db:"target_tags" json:"target_tags"`
    ScheduledStart *time.Time `db:"scheduled_start" json:"scheduled_start,omitempty"`
    StartedAt      *time.Time `db:"started_at" json:"started_at,omitempty"`
    CreatedAt      time.Time  `db:"created_at" json:"created_at"`
    UpdatedAt      *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
