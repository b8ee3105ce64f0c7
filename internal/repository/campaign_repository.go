package repository

import (
    "database/sql"
    "fmt"
    "time"

    "github.com/lib/pq"

    appErrors "github.com/partnerhub/crm-backend/internal/errors"
    "github.com/partnerhub/crm-backend/internal/model"
)

type CampaignRepositoryInterface interface {
    // Campaign CRUD
    ListCampaigns(offset, limit int, channel, status string) ([]*model.Campaign, int, error)
    GetByID(id int) (*model.Campaign, error)
    Update(c *model.Campaign) error
    Create(c *model.Campaign) error

    // Status transitions. UpdateStatusIf is the single atomic
    // conditional update guarding the state machine; it reports
    // whether the row actually moved.
    UpdateStatusIf(campaignID int, expected, next string) (bool, error)
    Schedule(campaignID int, startAt time.Time) (bool, error)
    ListPlannedDue(now time.Time) ([]*model.Campaign, error)

    // Reaction stats
    GetReactionStats(campaignID int) (map[string]int, error)
}

type CampaignRepository struct {
    DB *sql.DB
}

// ====================== Campaign CRUD ======================

func (r *CampaignRepository) Create(c *model.Campaign) error {
    c.CreatedAt = time.Now()
    if c.Status == "" {
        c.Status = model.CampaignDraft
    }
    query := `
        INSERT INTO campaigns (name, channel, status, base_template, target_tags, scheduled_start, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
    return r.DB.QueryRow(query, c.Name, c.Channel, c.Status, c.BaseTemplate, pq.Array(c.TargetTags), c.ScheduledStart, c.CreatedAt).Scan(&c.ID)
}

func (r *CampaignRepository) Update(c *model.Campaign) error {
    query := `
        UPDATE campaigns
        SET name=$1, base_template=$2, target_tags=$3, updated_at=NOW()
        WHERE id=$4
    `
    _, err := r.DB.Exec(query, c.Name, c.BaseTemplate, pq.Array(c.TargetTags), c.ID)
    return err
}

// UpdateStatusIf performs the conditional status transition in one
// statement. The WHERE clause on the expected status is what makes
// concurrent launches safe: at most one caller sees true. started_at
// is stamped when the campaign moves to running.
func (r *CampaignRepository) UpdateStatusIf(campaignID int, expected, next string) (bool, error) {
    query := `
        UPDATE campaigns
        SET status=$1,
            updated_at=NOW(),
            started_at=CASE WHEN $1 = 'running' THEN NOW() ELSE started_at END
        WHERE id=$2 AND status=$3
    `
    res, err := r.DB.Exec(query, next, campaignID, expected)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    return n > 0, nil
}

// Schedule moves a draft campaign to planned with a start time.
func (r *CampaignRepository) Schedule(campaignID int, startAt time.Time) (bool, error) {
    query := `
        UPDATE campaigns
        SET status='planned', scheduled_start=$1, updated_at=NOW()
        WHERE id=$2 AND status='draft'
    `
    res, err := r.DB.Exec(query, startAt, campaignID)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    return n > 0, nil
}

func (r *CampaignRepository) GetByID(id int) (*model.Campaign, error) {
    query := `
        SELECT id, name, channel, status, base_template, target_tags, scheduled_start, started_at, created_at, updated_at
        FROM campaigns WHERE id=$1
    `
    var c model.Campaign
    err := r.DB.QueryRow(query, id).Scan(&c.ID, &c.Name, &c.Channel, &c.Status, &c.BaseTemplate, pq.Array(&c.TargetTags), &c.ScheduledStart, &c.StartedAt, &c.CreatedAt, &c.UpdatedAt)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewCampaignNotFound(id)
        }
        return nil, err
    }
    return &c, nil
}

// ListPlannedDue returns planned campaigns whose scheduled start has
// passed. Used by the launch scan.
func (r *CampaignRepository) ListPlannedDue(now time.Time) ([]*model.Campaign, error) {
    query := `
        SELECT id, name, channel, status, base_template, target_tags, scheduled_start, started_at, created_at, updated_at
        FROM campaigns
        WHERE status='planned' AND scheduled_start IS NOT NULL AND scheduled_start <= $1
        ORDER BY scheduled_start
    `
    rows, err := r.DB.Query(query, now)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    campaigns := []*model.Campaign{}
    for rows.Next() {
        c := &model.Campaign{}
        if err := rows.Scan(&c.ID, &c.Name, &c.Channel, &c.Status, &c.BaseTemplate, pq.Array(&c.TargetTags), &c.ScheduledStart, &c.StartedAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
            return nil, err
        }
        campaigns = append(campaigns, c)
    }
    return campaigns, rows.Err()
}

func (r *CampaignRepository) ListCampaigns(offset, limit int, channel, status string) ([]*model.Campaign, int, error) {
    campaigns := []*model.Campaign{}
    query := `SELECT id, name, channel, status, base_template, target_tags, scheduled_start, started_at, created_at, updated_at FROM campaigns WHERE 1=1`
    args := []interface{}{}
    argPos := 1

    if channel != "" {
        query += fmt.Sprintf(" AND channel=$%d", argPos)
        args = append(args, channel)
        argPos++
    }
    if status != "" {
        query += fmt.Sprintf(" AND status=$%d", argPos)
        args = append(args, status)
        argPos++
    }

    query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
    args = append(args, limit, offset)

    rows, err := r.DB.Query(query, args...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    for rows.Next() {
        c := &model.Campaign{}
        if err := rows.Scan(&c.ID, &c.Name, &c.Channel, &c.Status, &c.BaseTemplate, pq.Array(&c.TargetTags), &c.ScheduledStart, &c.StartedAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
            return nil, 0, err
        }
        campaigns = append(campaigns, c)
    }

    // Count total
    countQuery := `SELECT COUNT(*) FROM campaigns WHERE 1=1`
    argsCount := []interface{}{}
    argPosCount := 1
    if channel != "" {
        countQuery += fmt.Sprintf(" AND channel=$%d", argPosCount)
        argsCount = append(argsCount, channel)
        argPosCount++
    }
    if status != "" {
        countQuery += fmt.Sprintf(" AND status=$%d", argPosCount)
        argsCount = append(argsCount, status)
    }

    var total int
    if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
        return nil, 0, err
    }

    return campaigns, total, nil
}

// ====================== Reaction stats ======================

func (r *CampaignRepository) GetReactionStats(campaignID int) (map[string]int, error) {
    query := `SELECT kind, COUNT(*) FROM reactions WHERE campaign_id=$1 GROUP BY kind`
    rows, err := r.DB.Query(query, campaignID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    stats := map[string]int{"open": 0, "click": 0, "reply": 0, "unsubscribe": 0, "conversion": 0}
    for rows.Next() {
        var kind string
        var count int
        if err := rows.Scan(&kind, &count); err != nil {
            return nil, err
        }
        stats[kind] = count
    }
    return stats, rows.Err()
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
