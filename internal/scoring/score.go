// internal/scoring/score.go
package scoring

import (
    "time"

    "github.com/partnerhub/crm-backend/internal/model"
)

// Per-kind weights. Unknown kinds fall back to defaultWeight.
var kindWeights = map[string]float64{
    model.InteractionCall:     3,
    model.InteractionMeeting:  5,
    model.InteractionEvent:    4,
    model.InteractionDocument: 2,
    model.InteractionInquiry:  2,
    model.InteractionEmail:    1,
    model.InteractionOther:    1,
}

const defaultWeight = 1

// decayWindowDays is the recency window. Interactions older than this
// still contribute a 1/decayWindowDays floor, never zero.
const decayWindowDays = 365

// ComputeScore returns the time-decayed engagement score for a lead's
// interaction history. Pure function: persistence of the returned value
// is the caller's job. An empty history yields 0.
//
// Each interaction contributes weight * recencyFactor, where
// recencyFactor = max(1, 365-daysSince)/365, capped at 1 so that
// future-dated interactions do not amplify the score. The real-valued
// sum is truncated to an int at the boundary.
func ComputeScore(interactions []model.Interaction, now time.Time) int {
    total := 0.0
    for _, in := range interactions {
        total += Component(in, now)
    }
    return int(total)
}

// Component returns a single interaction's contribution to the score.
func Component(in model.Interaction, now time.Time) float64 {
    weight, ok := kindWeights[in.Kind]
    if !ok {
        weight = defaultWeight
    }
    return weight * recencyFactor(in.OccurredAt, now)
}

func recencyFactor(occurredAt, now time.Time) float64 {
    days := now.Sub(occurredAt).Hours() / 24
    remaining := decayWindowDays - days
    if remaining < 1 {
        remaining = 1
    }
    factor := remaining / decayWindowDays
    if factor > 1 {
        // future-dated interaction, no amplification
        factor = 1
    }
    return factor
}
