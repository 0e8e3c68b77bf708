package utils

import (
	netmail "net/mail"
	"strings"

	"speakup/models"
)

func ValidateEmail(email string) error {
	_, err := netmail.ParseAddress(email)
	return err
}

// ValidateRegistration checks the registration form fields and returns
// per-field messages. Uniqueness is not checked here; that is enforced by
// the database constraints at write time.
func ValidateRegistration(username, password, email, firstName, lastName string) models.FormErrors {
	errs := models.FormErrors{}

	username = strings.TrimSpace(username)
	if username == "" {
		errs.Add("username", "Username is required.")
	} else if len(username) > 20 {
		errs.Add("username", "Username must be 20 characters or fewer.")
	}

	if password == "" {
		errs.Add("password", "Password is required.")
	} else if len(password) < 6 {
		errs.Add("password", "Password must be at least 6 characters long.")
	} else if len(password) > 72 {
		errs.Add("password", "Password must be 72 characters or fewer.")
	}

	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required.")
	} else if len(email) > 50 {
		errs.Add("email", "Email must be 50 characters or fewer.")
	} else if ValidateEmail(email) != nil {
		errs.Add("email", "Enter a valid email address.")
	}

	if strings.TrimSpace(firstName) == "" {
		errs.Add("first_name", "First name is required.")
	} else if len(firstName) > 30 {
		errs.Add("first_name", "First name must be 30 characters or fewer.")
	}

	if strings.TrimSpace(lastName) == "" {
		errs.Add("last_name", "Last name is required.")
	} else if len(lastName) > 30 {
		errs.Add("last_name", "Last name must be 30 characters or fewer.")
	}

	return errs
}

// ValidateLogin checks the login form fields.
func ValidateLogin(username, password string) models.FormErrors {
	errs := models.FormErrors{}

	if strings.TrimSpace(username) == "" {
		errs.Add("username", "Username is required.")
	}
	if password == "" {
		errs.Add("password", "Password is required.")
	}

	return errs
}

// ValidateFeedback checks the add/edit feedback form fields.
func ValidateFeedback(title, content string) models.FormErrors {
	errs := models.FormErrors{}

	title = strings.TrimSpace(title)
	if title == "" {
		errs.Add("title", "Title is required.")
	} else if len(title) > 100 {
		errs.Add("title", "Title must be 100 characters or fewer.")
	}

	if strings.TrimSpace(content) == "" {
		errs.Add("content", "Content is required.")
	}

	return errs
}
