package repository

import (
	"database/sql"
	"time"

	"github.com/partnerhub/crm-backend/internal/model"
)

// ReactionRepositoryInterface defines the append-only reaction store
type ReactionRepositoryInterface interface {
	Append(re *model.Reaction) error
	ListByCampaign(campaignID int) ([]model.Reaction, error)
}

type ReactionRepository struct {
	DB *sql.DB
}

// Append inserts a reaction. Reactions are the audit trail; there is
// no update or delete path. The FK constraints on campaign_id and
// lead_id enforce that both referents exist at write time.
func (r *ReactionRepository) Append(re *model.Reaction) error {
	if re.OccurredAt.IsZero() {
		re.OccurredAt = time.Now()
	}
	query := `
        INSERT INTO reactions (campaign_id, lead_id, kind, occurred_at, detail)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	return r.DB.QueryRow(query, re.CampaignID, re.LeadID, re.Kind, re.OccurredAt, re.Detail).Scan(&re.ID)
}

// ListByCampaign fetches a campaign's reactions, oldest first
func (r *ReactionRepository) ListByCampaign(campaignID int) ([]model.Reaction, error) {
	query := `
        SELECT id, campaign_id, lead_id, kind, occurred_at, detail
        FROM reactions
        WHERE campaign_id=$1
        ORDER BY occurred_at ASC, id ASC
    `
	rows, err := r.DB.Query(query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reactions := []model.Reaction{}
	for rows.Next() {
		var re model.Reaction
		if err := rows.Scan(&re.ID, &re.CampaignID, &re.LeadID, &re.Kind, &re.OccurredAt, &re.Detail); err != nil {
			return nil, err
		}
		reactions = append(reactions, re)
	}
	return reactions, rows.Err()
}

var _ ReactionRepositoryInterface = (*ReactionRepository)(nil)
