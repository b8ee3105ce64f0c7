// internal/handler/lead_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/partnerhub/crm-backend/internal/errors"
	"github.com/partnerhub/crm-backend/internal/model"
	"github.com/partnerhub/crm-backend/internal/queue"
	"github.com/partnerhub/crm-backend/internal/repository"
	"github.com/partnerhub/crm-backend/internal/segment"
	"github.com/partnerhub/crm-backend/internal/service"
)

// LeadHandler holds the dependencies for lead-related HTTP handlers
type LeadHandler struct {
	LeadRepo     repository.LeadRepositoryInterface
	ScoreService *service.ScoreService
	Queue        queue.Queue
}

// ListLeadsHandler returns all leads
func (h *LeadHandler) ListLeadsHandler(w http.ResponseWriter, r *http.Request) {
	leads, err := h.LeadRepo.ListAll()
	if err != nil {
		http.Error(w, "failed to fetch leads: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(leads)
}

// RecordInteractionHandler appends an interaction to a lead's history
// and queues a score recompute.
func (h *LeadHandler) RecordInteractionHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid lead id", http.StatusBadRequest)
		return
	}

	var payload struct {
		Kind        string     `json:"kind"`
		OccurredAt  *time.Time `json:"occurred_at,omitempty"`
		Description string     `json:"description"`
		Result      string     `json:"result"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.LeadRepo.GetByID(id); err != nil {
		var notFound *appErrors.ErrLeadNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	interaction := &model.Interaction{
		LeadID:      id,
		Kind:        payload.Kind,
		Description: payload.Description,
		Result:      payload.Result,
	}
	if payload.OccurredAt != nil {
		interaction.OccurredAt = *payload.OccurredAt
	}

	if err := h.LeadRepo.CreateInteraction(interaction); err != nil {
		http.Error(w, "failed to record interaction: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// score refresh happens off the request path
	if err := h.Queue.Publish(queue.ScoreRecomputeTopic, id); err != nil {
		log.Println("⚠️ failed to enqueue score recompute for lead", id, ":", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(interaction)
}

// RecomputeScoreHandler recomputes a lead's engagement score on demand
func (h *LeadHandler) RecomputeScoreHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid lead id", http.StatusBadRequest)
		return
	}

	score, err := h.ScoreService.RecomputeLeadScore(id, time.Now())
	if err != nil {
		var notFound *appErrors.ErrLeadNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to recompute score: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{
		"lead_id":          id,
		"engagement_score": score,
	})
}

// PreviewSegmentHandler runs a criteria set against the full lead
// population and returns the matches. Unrecognized criteria keys are
// a 400, not silently dropped.
func (h *LeadHandler) PreviewSegmentHandler(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	criteria, err := segment.CriteriaFromMap(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	leads, err := h.LeadRepo.ListAll()
	if err != nil {
		http.Error(w, "failed to fetch leads: "+err.Error(), http.StatusInternalServerError)
		return
	}

	matches := segment.Apply(leads, criteria)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"count": len(matches),
		"leads": matches,
	})
}
