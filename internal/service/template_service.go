// internal/service/template_service.go
package service

import (
    "strings"

    "github.com/partnerhub/crm-backend/internal/model"
)

func RenderTemplate(template string, data map[string]string) string {
    result := template
    for k, v := range data {
        if v == "" {
            v = "<unknown>"
        }
        result = strings.ReplaceAll(result, "{"+k+"}", v)
    }
    return result
}

// LeadPlaceholders returns the placeholder values a campaign template
// can reference for a lead.
func LeadPlaceholders(lead *model.Lead) map[string]string {
    return map[string]string{
        "first_name":      lead.FirstName,
        "last_name":       lead.LastName,
        "country":         lead.Country,
        "education_level": lead.EducationLevel,
    }
}
