// internal/model/interaction.go
package model

import "time"

// Interaction kinds. Unknown kinds are accepted but score with the
// default weight.
const (
    InteractionEmail    = "email"
    InteractionCall     = "call"
    InteractionMeeting  = "meeting"
    InteractionEvent    = "event"
    InteractionDocument = "document"
    InteractionInquiry  = "inquiry"
    InteractionOther    = "other"
)

// Interaction is an append-only record; rows are never updated.
type Interaction struct {
    ID          int       `db:"id" json:"id"`
    LeadID      int       `db:"lead_id" json:"lead_id"`
    Kind        string    `db:"kind" json:"kind"`
    OccurredAt  time.Time `db:"occurred_at" json:"occurred_at"`
    Description string    `db:"description" json:"description"`
    Result      string    `db:"result" json:"result"`
}
