package repository

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	appErrors "github.com/partnerhub/crm-backend/internal/errors"
	"github.com/partnerhub/crm-backend/internal/model"
)

// LeadRepositoryInterface defines methods used by services
type LeadRepositoryInterface interface {
	GetByID(id int) (*model.Lead, error)
	ListAll() ([]model.Lead, error)
	UpdateScore(leadID, score int) error

	// Interactions (append-only)
	ListInteractions(leadID int) ([]model.Interaction, error)
	CreateInteraction(in *model.Interaction) error
}

// LeadRepository is the concrete implementation
type LeadRepository struct {
	DB *sql.DB
}

// GetByID fetches a lead by ID
func (r *LeadRepository) GetByID(id int) (*model.Lead, error) {
	query := `
        SELECT id, first_name, last_name, email, status, education_level, country, tags, engagement_score, created_at
        FROM leads
        WHERE id = $1
    `
	row := r.DB.QueryRow(query, id)

	var l model.Lead
	if err := row.Scan(&l.ID, &l.FirstName, &l.LastName, &l.Email, &l.Status, &l.EducationLevel, &l.Country, pq.Array(&l.Tags), &l.EngagementScore, &l.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewLeadNotFound(id)
		}
		return nil, err
	}
	return &l, nil
}

// ListAll fetches all leads (used for campaign segmentation)
func (r *LeadRepository) ListAll() ([]model.Lead, error) {
	query := `
        SELECT id, first_name, last_name, email, status, education_level, country, tags, engagement_score, created_at
        FROM leads
        ORDER BY id
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []model.Lead{}
	for rows.Next() {
		var l model.Lead
		if err := rows.Scan(&l.ID, &l.FirstName, &l.LastName, &l.Email, &l.Status, &l.EducationLevel, &l.Country, pq.Array(&l.Tags), &l.EngagementScore, &l.CreatedAt); err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// UpdateScore persists a recomputed engagement score
func (r *LeadRepository) UpdateScore(leadID, score int) error {
	query := `UPDATE leads SET engagement_score=$1 WHERE id=$2`
	res, err := r.DB.Exec(query, score, leadID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return appErrors.NewLeadNotFound(leadID)
	}
	return nil
}

// ListInteractions fetches a lead's interaction history, oldest first
func (r *LeadRepository) ListInteractions(leadID int) ([]model.Interaction, error) {
	query := `
        SELECT id, lead_id, kind, occurred_at, description, result
        FROM interactions
        WHERE lead_id = $1
        ORDER BY occurred_at ASC
    `
	rows, err := r.DB.Query(query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	interactions := []model.Interaction{}
	for rows.Next() {
		var in model.Interaction
		if err := rows.Scan(&in.ID, &in.LeadID, &in.Kind, &in.OccurredAt, &in.Description, &in.Result); err != nil {
			return nil, err
		}
		interactions = append(interactions, in)
	}
	return interactions, rows.Err()
}

// CreateInteraction appends an interaction record. Interactions are
// never updated after this.
func (r *LeadRepository) CreateInteraction(in *model.Interaction) error {
	if in.OccurredAt.IsZero() {
		in.OccurredAt = time.Now()
	}
	query := `
        INSERT INTO interactions (lead_id, kind, occurred_at, description, result)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	return r.DB.QueryRow(query, in.LeadID, in.Kind, in.OccurredAt, in.Description, in.Result).Scan(&in.ID)
}

var _ LeadRepositoryInterface = (*LeadRepository)(nil)
