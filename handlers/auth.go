package handlers

import (
	"errors"
	"log"
	"net/http"

	"speakup/models"
	"speakup/utils"
)

// RegisterForm shows the registration page, or sends an already logged-in
// user to their own page.
func RegisterForm(w http.ResponseWriter, r *http.Request, sessions SessionStore) {
	if username := currentUser(r, sessions); username != "" {
		http.Redirect(w, r, "/users/"+username, http.StatusSeeOther)
		return
	}

	render(w, "register.html", models.FormPage{
		Flashes: utils.PopFlashes(w, r),
		Values:  map[string]string{},
		Errors:  models.FormErrors{},
	})
}

// Register processes the registration form. A duplicate username or email is
// detected by the database constraint after the failed write; both fields
// are reported as taken and no partial user remains.
func Register(w http.ResponseWriter, r *http.Request, store UserStore, sessions SessionStore) {
	if username := currentUser(r, sessions); username != "" {
		http.Redirect(w, r, "/users/"+username, http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	values := map[string]string{
		"username":   r.FormValue("username"),
		"email":      r.FormValue("email"),
		"first_name": r.FormValue("first_name"),
		"last_name":  r.FormValue("last_name"),
	}

	formErrors := utils.ValidateRegistration(
		r.FormValue("username"),
		r.FormValue("password"),
		r.FormValue("email"),
		r.FormValue("first_name"),
		r.FormValue("last_name"),
	)
	if formErrors.Any() {
		render(w, "register.html", models.FormPage{Values: values, Errors: formErrors})
		return
	}

	user, err := store.RegisterUser(
		r.Context(),
		r.FormValue("username"),
		r.FormValue("password"),
		r.FormValue("email"),
		r.FormValue("first_name"),
		r.FormValue("last_name"),
	)
	if err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			formErrors.Add("username", "Username taken. Please pick another.")
			formErrors.Add("email", "Email taken. Please pick another.")
			render(w, "register.html", models.FormPage{Values: values, Errors: formErrors})
			return
		}
		log.Println("error registering user:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := startSession(w, r, sessions, user.Username); err != nil {
		log.Println("error creating session:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := utils.SendWelcomeEmail(user.Email, user.FirstName); err != nil {
		log.Println("error sending welcome email:", err)
	}

	redirectWithFlash(w, r, "/users/"+user.Username, "success", "Welcome! Successfully Created Your Account!")
}

// LoginForm shows the login page, or sends an already logged-in user to
// their own page.
func LoginForm(w http.ResponseWriter, r *http.Request, sessions SessionStore) {
	if username := currentUser(r, sessions); username != "" {
		http.Redirect(w, r, "/users/"+username, http.StatusSeeOther)
		return
	}

	render(w, "login.html", models.FormPage{
		Flashes: utils.PopFlashes(w, r),
		Values:  map[string]string{},
		Errors:  models.FormErrors{},
	})
}

// Login processes the login form. Bad credentials produce one generic
// message; the handler never reveals whether the username or the password
// was wrong.
func Login(w http.ResponseWriter, r *http.Request, store UserStore, sessions SessionStore) {
	if username := currentUser(r, sessions); username != "" {
		http.Redirect(w, r, "/users/"+username, http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	values := map[string]string{"username": r.FormValue("username")}

	formErrors := utils.ValidateLogin(r.FormValue("username"), r.FormValue("password"))
	if formErrors.Any() {
		render(w, "login.html", models.FormPage{Values: values, Errors: formErrors})
		return
	}

	user, err := store.Authenticate(r.Context(), r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		if errors.Is(err, utils.ErrInvalidCredentials) {
			formErrors.Add("username", "Invalid username/password.")
			render(w, "login.html", models.FormPage{Values: values, Errors: formErrors})
			return
		}
		log.Println("error authenticating user:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := startSession(w, r, sessions, user.Username); err != nil {
		log.Println("error creating session:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	redirectWithFlash(w, r, "/users/"+user.Username, "success", "Welcome Back, "+user.FirstName+" "+user.LastName+"!")
}

// Logout destroys the server-side session if there is one and clears the
// cookie either way. Logging out without an active session is a no-op, not
// an error.
func Logout(w http.ResponseWriter, r *http.Request, sessions SessionStore) {
	if token, ok := utils.SessionToken(r); ok {
		if err := sessions.Destroy(r.Context(), token); err != nil {
			log.Println("error destroying session:", err)
		}
	}

	utils.ClearSessionCookie(w)
	redirectWithFlash(w, r, "/", "info", "See you Later!")
}
