// internal/model/lead.go
package model

import "time"

// Lead statuses
const (
    LeadStatusNew       = "new"
    LeadStatusContacted = "contacted"
    LeadStatusQualified = "qualified"
    LeadStatusConverted = "converted"
    LeadStatusLost      = "lost"
)

type Lead struct {
    ID              int       `db:"id" json:"id"`
    FirstName       string    `db:"first_name" json:"first_name"`
    LastName        string    `db:"last_name" json:"last_name"`
    Email           string    `db:"email" json:"email"`
    Status          string    `db:"status" json:"status"`
    EducationLevel  string    `db:"education_level" json:"education_level"`
    Country         string    `db:"country" json:"country"`
    Tags            []string  `db:"tags" json:"tags"`
    EngagementScore int       `db:"engagement_score" json:"engagement_score"`
    CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// HasTag reports whether the lead carries the given tag.
func (l *Lead) HasTag(tag string) bool {
    for _, t := range l.Tags {
        if t == tag {
            return true
        }
    }
    return false
}
