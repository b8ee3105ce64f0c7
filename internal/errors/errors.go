// internal/errors/errors.go
package appErrors

import "fmt"

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
    CampaignID int
}

func (e *ErrCampaignNotFound) Error() string {
    return fmt.Sprintf("campaign with ID %d not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id int) error {
    return &ErrCampaignNotFound{CampaignID: id}
}

// ErrLeadNotFound is a sentinel error
type ErrLeadNotFound struct {
    LeadID int
}

func (e *ErrLeadNotFound) Error() string {
    return fmt.Sprintf("lead with ID %d not found", e.LeadID)
}

func NewLeadNotFound(id int) error {
    return &ErrLeadNotFound{LeadID: id}
}

// ErrInvalidStateTransition is returned when a campaign operation is
// attempted from a status that does not allow it. No mutation happens
// when this error is returned.
type ErrInvalidStateTransition struct {
    CampaignID int
    From       string
    To         string
}

func (e *ErrInvalidStateTransition) Error() string {
    return fmt.Sprintf("campaign %d cannot move from %q to %q", e.CampaignID, e.From, e.To)
}

func NewInvalidStateTransition(id int, from, to string) error {
    return &ErrInvalidStateTransition{CampaignID: id, From: from, To: to}
}

// ErrInvalidCriteria is returned for malformed segmentation input,
// e.g. an unrecognized criteria key or a non-numeric score threshold.
type ErrInvalidCriteria struct {
    Reason string
}

func (e *ErrInvalidCriteria) Error() string {
    return fmt.Sprintf("invalid criteria: %s", e.Reason)
}

func NewInvalidCriteria(reason string) error {
    return &ErrInvalidCriteria{Reason: reason}
}
