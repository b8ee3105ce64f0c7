package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/partnerhub/crm-backend/internal/controller"
	appErrors "github.com/partnerhub/crm-backend/internal/errors"
	"github.com/partnerhub/crm-backend/internal/model"
	"github.com/partnerhub/crm-backend/internal/service"
)

// --- Mock Repositories ---

type MockCampaignRepo struct {
	campaigns []*model.Campaign
}

func (m *MockCampaignRepo) GetByID(id int) (*model.Campaign, error) {
	for _, c := range m.campaigns {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, appErrors.NewCampaignNotFound(id)
}

func (m *MockCampaignRepo) Create(c *model.Campaign) error { return nil }
func (m *MockCampaignRepo) Update(c *model.Campaign) error { return nil }

func (m *MockCampaignRepo) ListCampaigns(offset, limit int, channel, status string) ([]*model.Campaign, int, error) {
	var filtered []*model.Campaign
	for _, c := range m.campaigns {
		if channel != "" && c.Channel != channel {
			continue
		}
		if status != "" && c.Status != status {
			continue
		}
		filtered = append(filtered, c)
	}
	total := len(filtered)

	start := offset
	end := offset + limit
	if start > total {
		return []*model.Campaign{}, total, nil
	}
	if end > total {
		end = total
	}
	return filtered[start:end], total, nil
}

func (m *MockCampaignRepo) UpdateStatusIf(campaignID int, expected, next string) (bool, error) {
	for _, c := range m.campaigns {
		if c.ID == campaignID && c.Status == expected {
			c.Status = next
			return true, nil
		}
	}
	return false, nil
}

func (m *MockCampaignRepo) Schedule(campaignID int, startAt time.Time) (bool, error) {
	for _, c := range m.campaigns {
		if c.ID == campaignID && c.Status == model.CampaignDraft {
			c.Status = model.CampaignPlanned
			c.ScheduledStart = &startAt
			return true, nil
		}
	}
	return false, nil
}

func (m *MockCampaignRepo) ListPlannedDue(now time.Time) ([]*model.Campaign, error) {
	return []*model.Campaign{}, nil
}

func (m *MockCampaignRepo) GetReactionStats(campaignID int) (map[string]int, error) {
	return map[string]int{"open": 3, "click": 1, "reply": 0, "unsubscribe": 0, "conversion": 0}, nil
}

func newRouter(ctrl *controller.CampaignController) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/campaigns", ctrl.ListCampaigns)
	r.Get("/campaigns/{id}", ctrl.GetCampaignDetails)
	r.Post("/campaigns/{id}/plan", ctrl.PlanCampaign)
	r.Post("/campaigns/{id}/launch", ctrl.LaunchCampaign)
	r.Post("/campaigns/{id}/cancel", ctrl.CancelCampaign)
	return r
}

func TestListCampaignsPagination(t *testing.T) {
	totalCampaigns := 25
	campaigns := []*model.Campaign{}
	for i := 1; i <= totalCampaigns; i++ {
		campaigns = append(campaigns, &model.Campaign{
			ID:      i,
			Name:    "Campaign " + strconv.Itoa(i),
			Channel: "email",
			Status:  "draft",
		})
	}

	repo := &MockCampaignRepo{campaigns: campaigns}
	svc := &service.CampaignService{CampaignRepo: repo}
	router := newRouter(&controller.CampaignController{CampaignService: svc})

	pageSize := 10
	seen := map[int]bool{}
	totalPages := (totalCampaigns + pageSize - 1) / pageSize

	for page := 1; page <= totalPages; page++ {
		req := httptest.NewRequest(
			"GET",
			"/campaigns?page="+strconv.Itoa(page)+
				"&page_size="+strconv.Itoa(pageSize)+
				"&channel=email&status=draft",
			nil,
		)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)
		resp := w.Result()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		var res struct {
			Data       []model.Campaign `json:"data"`
			Pagination struct {
				Page       int `json:"page"`
				PageSize   int `json:"page_size"`
				TotalCount int `json:"total_count"`
			} `json:"pagination"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if res.Pagination.Page != page {
			t.Errorf("expected page %d, got %d", page, res.Pagination.Page)
		}
		if res.Pagination.TotalCount != totalCampaigns {
			t.Errorf("expected total count %d, got %d", totalCampaigns, res.Pagination.TotalCount)
		}

		for _, c := range res.Data {
			if seen[c.ID] {
				t.Errorf("duplicate campaign ID %d across pages", c.ID)
			}
			seen[c.ID] = true
		}
	}

	if len(seen) != totalCampaigns {
		t.Errorf("expected %d unique campaigns, got %d", totalCampaigns, len(seen))
	}
}

func TestLaunchDraftCampaignReturnsConflict(t *testing.T) {
	repo := &MockCampaignRepo{campaigns: []*model.Campaign{
		{ID: 1, Status: model.CampaignDraft},
	}}
	svc := &service.CampaignService{CampaignRepo: repo}
	router := newRouter(&controller.CampaignController{CampaignService: svc})

	req := httptest.NewRequest("POST", "/campaigns/1/launch", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Result().StatusCode)
	}

	// guard must leave the campaign untouched
	c, _ := repo.GetByID(1)
	if c.Status != model.CampaignDraft {
		t.Errorf("expected status draft after rejected launch, got %s", c.Status)
	}
}

func TestGetUnknownCampaignReturnsNotFound(t *testing.T) {
	svc := &service.CampaignService{CampaignRepo: &MockCampaignRepo{}}
	router := newRouter(&controller.CampaignController{CampaignService: svc})

	req := httptest.NewRequest("GET", "/campaigns/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Result().StatusCode)
	}
}

func TestGetCampaignIncludesReactionStats(t *testing.T) {
	repo := &MockCampaignRepo{campaigns: []*model.Campaign{
		{ID: 1, Name: "Open day", Status: model.CampaignRunning},
	}}
	svc := &service.CampaignService{CampaignRepo: repo}
	router := newRouter(&controller.CampaignController{CampaignService: svc})

	req := httptest.NewRequest("GET", "/campaigns/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var details service.CampaignDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if details.Stats["open"] != 3 {
		t.Errorf("expected 3 opens, got %d", details.Stats["open"])
	}
	if details.Stats["total"] != 4 {
		t.Errorf("expected total 4, got %d", details.Stats["total"])
	}
}

func TestCancelRunningCampaignReturnsConflict(t *testing.T) {
	repo := &MockCampaignRepo{campaigns: []*model.Campaign{
		{ID: 1, Status: model.CampaignRunning},
	}}
	svc := &service.CampaignService{CampaignRepo: repo}
	router := newRouter(&controller.CampaignController{CampaignService: svc})

	req := httptest.NewRequest("POST", "/campaigns/1/cancel", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Result().StatusCode)
	}
}
