// internal/segment/segment.go
package segment

import "github.com/partnerhub/crm-backend/internal/model"

// Apply filters the population down to the leads matching every
// constraint in the criteria. Deterministic: same population and
// criteria always produce the same subset, in population order.
func Apply(population []model.Lead, c Criteria) []model.Lead {
    matched := []model.Lead{}
    for _, lead := range population {
        if Matches(lead, c) {
            matched = append(matched, lead)
        }
    }
    return matched
}

// Matches reports whether a single lead satisfies the criteria.
func Matches(lead model.Lead, c Criteria) bool {
    if len(c.Statuses) > 0 && !contains(c.Statuses, lead.Status) {
        return false
    }
    if len(c.EducationLevels) > 0 && !contains(c.EducationLevels, lead.EducationLevel) {
        return false
    }
    if len(c.Countries) > 0 && !contains(c.Countries, lead.Country) {
        return false
    }
    if c.MinScore != nil && lead.EngagementScore < *c.MinScore {
        return false
    }
    // each tag is its own check: the lead must hold all of them
    for _, tag := range c.Tags {
        if !lead.HasTag(tag) {
            return false
        }
    }
    return true
}

func contains(set []string, value string) bool {
    for _, s := range set {
        if s == value {
            return true
        }
    }
    return false
}
