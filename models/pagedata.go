package models

// FormErrors maps a form field name to its validation messages.
type FormErrors map[string][]string

// Add appends a message to the errors for a field.
func (fe FormErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Any reports whether any field has an error.
func (fe FormErrors) Any() bool {
	return len(fe) > 0
}

// FormPage backs the registration and login templates.
type FormPage struct {
	Flashes []Flash
	Values  map[string]string
	Errors  FormErrors
}

// UserPage backs the profile template.
type UserPage struct {
	Flashes  []Flash
	User     User
	Feedback []Feedback
}

// FeedbackPage backs the add/edit feedback templates.
type FeedbackPage struct {
	Flashes  []Flash
	User     User
	Feedback Feedback
	Values   map[string]string
	Errors   FormErrors
}
