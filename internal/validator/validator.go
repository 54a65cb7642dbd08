package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/models"
)

// Validator wraps go-playground/validator with the platform's custom
// enum rules.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Custom enum rules; registration errors only happen for invalid
	// tag names, which would be a programming error.
	_ = v.RegisterValidation("experience_level", func(fl validator.FieldLevel) bool {
		switch models.ExperienceLevel(fl.Field().String()) {
		case models.LevelJunior, models.LevelMid, models.LevelSenior:
			return true
		}
		return false
	})
	_ = v.RegisterValidation("question_type", func(fl validator.FieldLevel) bool {
		switch models.QuestionType(fl.Field().String()) {
		case models.QuestionCoding, models.QuestionConceptual, models.QuestionSystemDesign, models.QuestionBehavioral:
			return true
		}
		return false
	})
	_ = v.RegisterValidation("difficulty_level", func(fl validator.FieldLevel) bool {
		switch models.DifficultyLevel(fl.Field().String()) {
		case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
			return true
		}
		return false
	})

	return &Validator{validate: v}
}

// Validate checks a request struct and converts failures into
// field-level errors suitable for a 400 response body.
func (v *Validator) Validate(value any) error {
	err := v.validate.Struct(value)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make(ValidationErrors, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, FieldError{
			Field:   strings.ToLower(fe.Field()),
			Rule:    fe.Tag(),
			Message: messageFor(fe),
		})
	}
	return fields
}

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Message
	}
	return strings.Join(parts, "; ")
}

func messageFor(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "experience_level":
		return fmt.Sprintf("%s must be one of: junior, mid, senior", field)
	case "question_type":
		return fmt.Sprintf("%s must be one of: coding, conceptual, system-design, behavioral", field)
	case "difficulty_level":
		return fmt.Sprintf("%s must be one of: easy, medium, hard", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
