package validation

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"

	"go-careers-backend/internal/domain"
)

// Regex patterns
var (
	// Allow letters, numbers, spaces, and common punctuation: . ' - / & ( ) ,
	nameRegex = regexp.MustCompile(`^[\p{L}0-9 .'/&(),-]+$`)

	// Optional +, then 7-15 digits; spaces, dashes and brackets are ignored
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

	hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("valid_phone", ValidPhone)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("hex_color", HexColor)
	_ = v.RegisterValidation("job_status", enumValidator(func(s string) bool { return domain.JobStatus(s).IsValid() }))
	_ = v.RegisterValidation("job_type", enumValidator(func(s string) bool { return domain.JobType(s).IsValid() }))
	_ = v.RegisterValidation("closure_reason", enumValidator(func(s string) bool { return domain.ClosureReason(s).IsValid() }))
	_ = v.RegisterValidation("pipeline_stage", enumValidator(func(s string) bool { return domain.PipelineStage(s).IsValid() }))
	_ = v.RegisterValidation("note_type", enumValidator(func(s string) bool { return domain.NoteType(s).IsValid() }))
}

// enumValidator accepts empty values so "required" stays a separate concern
func enumValidator(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		if val == "" {
			return true
		}
		return valid(val)
	}
}

// ValidName validates that a string contains only valid name characters
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return nameRegex.MatchString(val)
}

// ValidPhone validates a phone number structure
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	stripped := make([]rune, 0, len(val))
	for _, r := range val {
		switch r {
		case ' ', '-', '(', ')', '.':
			continue
		}
		stripped = append(stripped, r)
	}
	return phoneRegex.MatchString(string(stripped))
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, r := range val {
		// Supplementary planes are mostly emoji and pictographs
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}

// HexColor accepts #RGB and #RRGGBB
func HexColor(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return hexColorRegex.MatchString(val)
}
