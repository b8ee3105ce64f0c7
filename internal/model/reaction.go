// internal/model/reaction.go
package model

import "time"

// Reaction kinds
const (
    ReactionOpen        = "open"
    ReactionClick       = "click"
    ReactionReply       = "reply"
    ReactionUnsubscribe = "unsubscribe"
    ReactionConversion  = "conversion"
)

// Reaction is the append-only audit trail of a lead's response to a
// campaign delivery. Every reaction references a campaign and lead that
// exist at write time.
type Reaction struct {
    ID         int       `db:"id" json:"id"`
    CampaignID int       `db:"campaign_id" json:"campaign_id"`
    LeadID     int       `db:"lead_id" json:"lead_id"`
    Kind       string    `db:"kind" json:"kind"`
    OccurredAt time.Time `db:"occurred_at" json:"occurred_at"`
    Detail     string    `db:"detail" json:"detail"`
}

// IsValidReactionKind validates a reaction kind
func IsValidReactionKind(kind string) bool {
    switch kind {
    case ReactionOpen, ReactionClick, ReactionReply, ReactionUnsubscribe, ReactionConversion:
        return true
    }
    return false
}
