// internal/segment/criteria.go
package segment

import (
    "encoding/json"
    "fmt"

    appErrors "github.com/partnerhub/crm-backend/internal/errors"
)

// Criteria describes a conjunction of membership tests over a lead
// population. A zero field imposes no constraint. All provided fields
// must hold (logical AND).
//
// Tags are ANDed as well: a lead qualifies only if it carries every
// tag listed here. We apply each tag as its own membership check, so
// Tags=[A,B] means "has A AND has B", not "has A or B".
type Criteria struct {
    Statuses        []string `json:"statuses,omitempty"`
    EducationLevels []string `json:"education_levels,omitempty"`
    Countries       []string `json:"countries,omitempty"`
    MinScore        *int     `json:"min_score,omitempty"`
    Tags            []string `json:"tags,omitempty"`
}

// recognized keys for the map form
var criteriaKeys = map[string]bool{
    "statuses":         true,
    "education_levels": true,
    "countries":        true,
    "min_score":        true,
    "tags":             true,
}

// CriteriaFromMap builds a Criteria from a loosely-typed map, as
// received from JSON request bodies. Unrecognized keys are rejected
// with ErrInvalidCriteria rather than silently ignored.
func CriteriaFromMap(raw map[string]any) (Criteria, error) {
    var c Criteria
    for key := range raw {
        if !criteriaKeys[key] {
            return Criteria{}, appErrors.NewInvalidCriteria(fmt.Sprintf("unrecognized key %q", key))
        }
    }

    var err error
    if c.Statuses, err = stringList(raw, "statuses"); err != nil {
        return Criteria{}, err
    }
    if c.EducationLevels, err = stringList(raw, "education_levels"); err != nil {
        return Criteria{}, err
    }
    if c.Countries, err = stringList(raw, "countries"); err != nil {
        return Criteria{}, err
    }
    if c.Tags, err = stringList(raw, "tags"); err != nil {
        return Criteria{}, err
    }

    if v, ok := raw["min_score"]; ok {
        switch n := v.(type) {
        case float64:
            min := int(n)
            c.MinScore = &min
        case int:
            min := n
            c.MinScore = &min
        case json.Number:
            f, convErr := n.Float64()
            if convErr != nil {
                return Criteria{}, appErrors.NewInvalidCriteria("min_score must be numeric")
            }
            min := int(f)
            c.MinScore = &min
        default:
            return Criteria{}, appErrors.NewInvalidCriteria("min_score must be numeric")
        }
    }

    return c, nil
}

func stringList(raw map[string]any, key string) ([]string, error) {
    v, ok := raw[key]
    if !ok {
        return nil, nil
    }
    switch list := v.(type) {
    case []string:
        return list, nil
    case []any:
        out := make([]string, 0, len(list))
        for _, item := range list {
            s, ok := item.(string)
            if !ok {
                return nil, appErrors.NewInvalidCriteria(fmt.Sprintf("%s must be a list of strings", key))
            }
            out = append(out, s)
        }
        return out, nil
    default:
        return nil, appErrors.NewInvalidCriteria(fmt.Sprintf("%s must be a list of strings", key))
    }
}
