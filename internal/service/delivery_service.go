// internal/service/delivery_service.go
package service

import (
	"github.com/partnerhub/crm-backend/internal/repository"
)

// DeliveryService performs the actual (or mocked) transmission of a
// campaign message to a single lead. The dispatcher records the
// delivery intent as a reaction at launch time; this runs afterwards,
// off the queue, and owns rendering plus the send itself.
type DeliveryService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	LeadRepo     repository.LeadRepositoryInterface
	SendFunc     func(rendered string) error
}

// Deliver renders the campaign template for the lead and sends it.
// Returns the rendered message.
func (s *DeliveryService) Deliver(campaignID, leadID int) (string, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return "", err
	}

	lead, err := s.LeadRepo.GetByID(leadID)
	if err != nil {
		return "", err
	}

	rendered := RenderTemplate(campaign.BaseTemplate, LeadPlaceholders(lead))

	if err := s.SendFunc(rendered); err != nil {
		return rendered, err
	}
	return rendered, nil
}
