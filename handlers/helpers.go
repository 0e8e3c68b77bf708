package handlers

import (
	"context"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"speakup/models"
	"speakup/ui"
	"speakup/utils"
)

// UserStore is the slice of the data layer the account handlers need.
// *utils.Store satisfies it; tests substitute an in-memory fake.
type UserStore interface {
	RegisterUser(ctx context.Context, username, password, email, firstName, lastName string) (models.User, error)
	Authenticate(ctx context.Context, username, password string) (models.User, error)
	GetUser(ctx context.Context, username string) (models.User, error)
	DeleteUserCascade(ctx context.Context, username string) error
}

// FeedbackStore is the slice of the data layer the feedback handlers need.
type FeedbackStore interface {
	CreateFeedback(ctx context.Context, fb models.Feedback) (int, error)
	GetFeedback(ctx context.Context, id int) (models.Feedback, error)
	UpdateFeedback(ctx context.Context, id int, title, content string) error
	DeleteFeedback(ctx context.Context, id int) error
	ListFeedbackForUser(ctx context.Context, username string) ([]models.Feedback, error)
}

// SessionStore holds the logged-in principal between requests.
// *utils.SessionManager satisfies it.
type SessionStore interface {
	Store(ctx context.Context, session models.Session) error
	Username(ctx context.Context, token string) (string, error)
	Destroy(ctx context.Context, token string) error
	DestroyAll(ctx context.Context, username string) error
	Touch(ctx context.Context, token string) error
}

func render(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.ParseFS(ui.Files, "html/"+name)
	if err != nil {
		log.Println("Error loading template:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if err := tmpl.Execute(w, data); err != nil {
		log.Println("Error rendering template:", err)
	}
}

func redirectWithFlash(w http.ResponseWriter, r *http.Request, path, category, message string) {
	utils.SetFlash(w, category, message)
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// currentUser resolves the session cookie to a logged-in username. The empty
// string means the request is anonymous.
func currentUser(r *http.Request, sessions SessionStore) string {
	token, ok := utils.SessionToken(r)
	if !ok {
		return ""
	}
	username, err := sessions.Username(r.Context(), token)
	if err != nil {
		return ""
	}
	return username
}

// requireOwner is the single authorization gate every protected route runs
// before touching data: a principal must exist and must equal the resource
// owner. On failure it flashes denyMessage (or the login notice) and
// redirects home.
func requireOwner(w http.ResponseWriter, r *http.Request, sessions SessionStore, owner, denyMessage string) bool {
	username := currentUser(r, sessions)
	if username == "" {
		redirectWithFlash(w, r, "/", "danger", "Please login first!")
		return false
	}
	if username != owner {
		redirectWithFlash(w, r, "/", "danger", denyMessage)
		return false
	}
	return true
}

// startSession creates a server-side session for username and attaches its
// token to the response.
func startSession(w http.ResponseWriter, r *http.Request, sessions SessionStore, username string) error {
	token := uuid.NewString()
	now := time.Now()

	session := models.Session{
		SessionToken: token,
		Username:     username,
		CreatedAt:    now.Format(time.RFC3339),
		ExpiresAt:    now.Add(utils.SessionTTL).Format(time.RFC3339),
		LastActivity: now.Format(time.RFC3339),
		UserAgent:    utils.GetUserAgent(r),
		IPAddress:    utils.GetIP(r),
	}

	if err := sessions.Store(r.Context(), session); err != nil {
		return err
	}

	utils.SetSessionCookie(w, token)
	return nil
}

// NotFound handles every unmatched path: a notice and a redirect home
// instead of a raw 404 page.
func NotFound(w http.ResponseWriter, r *http.Request) {
	redirectWithFlash(w, r, "/", "danger", "What you're looking for does not exist")
}
