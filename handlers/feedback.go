package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"speakup/models"
	"speakup/utils"
)

// feedbackByID loads the feedback row named in the {id} path segment. A
// malformed or unknown id is reported as not found before any ownership
// check, and the false return means a response has already been written.
func feedbackByID(w http.ResponseWriter, r *http.Request, store FeedbackStore) (models.Feedback, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		NotFound(w, r)
		return models.Feedback{}, false
	}

	fb, err := store.GetFeedback(r.Context(), id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			NotFound(w, r)
			return models.Feedback{}, false
		}
		log.Println("error loading feedback:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return models.Feedback{}, false
	}

	return fb, true
}

// AddFeedbackForm shows the new-feedback form for the owner of the page.
func AddFeedbackForm(w http.ResponseWriter, r *http.Request, store UserStore, sessions SessionStore) {
	username := r.PathValue("username")

	user, err := store.GetUser(r.Context(), username)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			NotFound(w, r)
			return
		}
		log.Println("error loading user:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if !requireOwner(w, r, sessions, user.Username, "Cannot give feedback for someone else!") {
		return
	}

	render(w, "add_feedback.html", models.FeedbackPage{
		Flashes: utils.PopFlashes(w, r),
		User:    user,
		Values:  map[string]string{},
		Errors:  models.FormErrors{},
	})
}

// AddFeedback inserts a new feedback row owned by the page's user.
func AddFeedback(w http.ResponseWriter, r *http.Request, store UserStore, feedback FeedbackStore, sessions SessionStore) {
	username := r.PathValue("username")

	user, err := store.GetUser(r.Context(), username)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			NotFound(w, r)
			return
		}
		log.Println("error loading user:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if !requireOwner(w, r, sessions, user.Username, "Cannot give feedback for someone else!") {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	title := r.FormValue("title")
	content := r.FormValue("content")

	formErrors := utils.ValidateFeedback(title, content)
	if formErrors.Any() {
		render(w, "add_feedback.html", models.FeedbackPage{
			User:   user,
			Values: map[string]string{"title": title, "content": content},
			Errors: formErrors,
		})
		return
	}

	_, err = feedback.CreateFeedback(r.Context(), models.Feedback{
		Title:    title,
		Content:  content,
		Username: user.Username,
	})
	if err != nil {
		log.Println("error adding feedback:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	redirectWithFlash(w, r, "/users/"+user.Username, "success", "Your feedback has been added!")
}

// UpdateFeedbackForm shows the edit form prefilled with the current values.
func UpdateFeedbackForm(w http.ResponseWriter, r *http.Request, store FeedbackStore, sessions SessionStore) {
	fb, ok := feedbackByID(w, r, store)
	if !ok {
		return
	}

	if !requireOwner(w, r, sessions, fb.Username, "Cannot edit someone else's feedback!") {
		return
	}

	render(w, "edit_feedback.html", models.FeedbackPage{
		Flashes:  utils.PopFlashes(w, r),
		Feedback: fb,
		Values:   map[string]string{"title": fb.Title, "content": fb.Content},
		Errors:   models.FormErrors{},
	})
}

// UpdateFeedback overwrites title and content of a feedback row. The id and
// the owner are immutable across an update.
func UpdateFeedback(w http.ResponseWriter, r *http.Request, store FeedbackStore, sessions SessionStore) {
	fb, ok := feedbackByID(w, r, store)
	if !ok {
		return
	}

	if !requireOwner(w, r, sessions, fb.Username, "Cannot edit someone else's feedback!") {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	title := r.FormValue("title")
	content := r.FormValue("content")

	formErrors := utils.ValidateFeedback(title, content)
	if formErrors.Any() {
		render(w, "edit_feedback.html", models.FeedbackPage{
			Feedback: fb,
			Values:   map[string]string{"title": title, "content": content},
			Errors:   formErrors,
		})
		return
	}

	if err := store.UpdateFeedback(r.Context(), fb.ID, title, content); err != nil {
		log.Println("error updating feedback:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	redirectWithFlash(w, r, "/users/"+fb.Username, "success", "Your feedback has been changed!")
}

// DeleteFeedback removes a single feedback row after the ownership gate.
func DeleteFeedback(w http.ResponseWriter, r *http.Request, store FeedbackStore, sessions SessionStore) {
	fb, ok := feedbackByID(w, r, store)
	if !ok {
		return
	}

	if !requireOwner(w, r, sessions, fb.Username, "Cannot delete someone else's feedback!") {
		return
	}

	if err := store.DeleteFeedback(r.Context(), fb.ID); err != nil {
		log.Println("error deleting feedback:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	redirectWithFlash(w, r, "/", "secondary", "Deleted Feedback!")
}
