package intake

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// StepDefinition describes one stage of the flow. The ordered sequence is
// fixed at construction and never changes at runtime.
type StepDefinition struct {
	ID       int    `json:"id"`
	Position int    `json:"position"`
	Label    string `json:"label"`
	Path     string `json:"path"`
}

// Step ids of the default client intake flow.
const (
	StepServices    = 1
	StepDocuments   = 2
	StepAppointment = 3
	StepContact     = 4
	StepReview      = 5
)

// DefaultSteps returns the client intake flow definition.
func DefaultSteps() []StepDefinition {
	return []StepDefinition{
		{ID: StepServices, Position: 1, Label: "Select services", Path: "services"},
		{ID: StepDocuments, Position: 2, Label: "Upload documents", Path: "documents"},
		{ID: StepAppointment, Position: 3, Label: "Pick appointment", Path: "appointment"},
		{ID: StepContact, Position: 4, Label: "Your details", Path: "details"},
		{ID: StepReview, Position: 5, Label: "Review and submit", Path: "review"},
	}
}

// FieldError describes one failed requirement, addressed to a form field so
// the UI can render it inline. Validation failures are ordinary values, not
// errors: they gate Advance but never propagate.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate = validator.New()

// validateStep evaluates the gating predicate for one step against the
// current form. authenticated controls whether step 4 requires credentials.
func validateStep(step int, form *FormState, authenticated bool) []FieldError {
	switch step {
	case StepServices:
		if len(form.ServiceIDs) == 0 {
			return []FieldError{{Field: "service_ids", Message: "select at least one service"}}
		}
	case StepDocuments:
		var errs []FieldError
		for _, id := range form.ServiceIDs {
			if len(form.DocumentsForService(id)) == 0 {
				errs = append(errs, FieldError{
					Field:   "documents",
					Message: fmt.Sprintf("upload at least one document for service %s", id),
				})
			}
		}
		return errs
	case StepAppointment:
		var errs []FieldError
		if form.AppointmentDate == "" {
			errs = append(errs, FieldError{Field: "appointment_date", Message: "pick a date"})
		}
		if form.AppointmentTime == "" {
			errs = append(errs, FieldError{Field: "appointment_time", Message: "pick a time"})
		}
		return errs
	case StepContact:
		return validateContact(form, authenticated)
	case StepReview:
		// Always satisfiable; submission itself may still fail.
	}
	return nil
}

func validateContact(form *FormState, authenticated bool) []FieldError {
	var errs []FieldError
	required := []struct {
		field, value, message string
	}{
		{"first_name", form.FirstName, "first name is required"},
		{"last_name", form.LastName, "last name is required"},
		{"email", form.Email, "email is required"},
		{"phone", form.Phone, "phone number is required"},
		{"street", form.Street, "street address is required"},
		{"city", form.City, "city is required"},
		{"postal_code", form.PostalCode, "postal code is required"},
		{"country", form.Country, "country is required"},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, FieldError{Field: r.field, Message: r.message})
		}
	}
	if form.Email != "" {
		if err := validate.Var(form.Email, "email"); err != nil {
			errs = append(errs, FieldError{Field: "email", Message: "enter a valid email address"})
		}
	}
	if form.Phone != "" {
		if err := validate.Var(form.Phone, "e164"); err != nil {
			errs = append(errs, FieldError{Field: "phone", Message: "enter a valid international phone number"})
		}
	}
	if !authenticated {
		if form.Password == "" {
			errs = append(errs, FieldError{Field: "password", Message: "password is required"})
		}
		if form.ConfirmPassword == "" {
			errs = append(errs, FieldError{Field: "confirm_password", Message: "confirm your password"})
		} else if form.Password != "" && form.Password != form.ConfirmPassword {
			errs = append(errs, FieldError{Field: "confirm_password", Message: "passwords do not match"})
		}
	}
	return errs
}
