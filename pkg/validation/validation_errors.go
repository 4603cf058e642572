package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	// Job fields
	"Title":               "Title",
	"Type":                "Job type",
	"SalaryMin":           "Minimum salary",
	"SalaryMax":           "Maximum salary",
	"Color":               "Color",
	"ClosureReason":       "Closure reason",
	"ApplicationDeadline": "Application deadline",
	"MetaTitle":           "Meta title",
	"MetaDescription":     "Meta description",

	// Application fields
	"JobID":       "Job",
	"Name":        "Name",
	"Email":       "Email",
	"Phone":       "Phone number",
	"ResumeURL":   "Resume URL",
	"LinkedIn":    "LinkedIn URL",
	"Portfolio":   "Portfolio URL",
	"CoverLetter": "Cover letter",

	// Pipeline
	"Stage":          "Stage",
	"ApplicationIDs": "Applications",
	"Action":         "Action",
	"NoteType":       "Note type",
	"Content":        "Content",
	"Score":          "Score",
	"MaxScore":       "Maximum score",
	"Category":       "Category",

	// Auth fields
	"Password": "Password",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("%s: must contain at least %s items", label, param)
		}
		return fmt.Sprintf("%s: must be at least %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("%s: must contain at most %s items", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)
	case "gte":
		return fmt.Sprintf("%s: must be %s or more", label, param)
	case "lte":
		return fmt.Sprintf("%s: must be %s or less", label, param)
	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))
	case "email":
		return fmt.Sprintf("%s: invalid email format", label)
	case "url":
		return fmt.Sprintf("%s: invalid URL format", label)
	case "valid_name":
		return fmt.Sprintf("%s: only letters, spaces and common punctuation are allowed", label)
	case "valid_phone":
		return fmt.Sprintf("%s: invalid phone number (7-15 digits, optional +)", label)
	case "no_emoji":
		return fmt.Sprintf("%s: must not contain emoji or special symbols", label)
	case "hex_color":
		return fmt.Sprintf("%s: must be a hex color such as #3B82F6", label)
	case "job_status":
		return fmt.Sprintf("%s: must be one of: draft, published, paused, closed, archived", label)
	case "job_type":
		return fmt.Sprintf("%s: must be one of: full-time, part-time, contract, internship", label)
	case "closure_reason":
		return fmt.Sprintf("%s: must be one of: filled, cancelled, budget, deadline, other", label)
	case "pipeline_stage":
		return fmt.Sprintf("%s: unknown pipeline stage", label)
	case "note_type":
		return fmt.Sprintf("%s: must be one of: general, phone_screen, interview, reference, other", label)
	default:
		return fmt.Sprintf("%s: failed validation (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
