package handlers

import (
	"errors"
	"log"
	"net/http"

	"speakup/models"
	"speakup/utils"
)

// UserPage shows a profile and its feedback list. Only the owner may view
// it; an unknown username is reported before the ownership gate runs.
func UserPage(w http.ResponseWriter, r *http.Request, store UserStore, feedback FeedbackStore, sessions SessionStore) {
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

	if !requireOwner(w, r, sessions, user.Username, "Can only see your own account!") {
		return
	}

	entries, err := feedback.ListFeedbackForUser(r.Context(), user.Username)
	if err != nil {
		log.Println("error listing feedback:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if token, ok := utils.SessionToken(r); ok {
		if err := sessions.Touch(r.Context(), token); err != nil {
			log.Println("error updating session activity:", err)
		}
	}

	render(w, "user.html", models.UserPage{
		Flashes:  utils.PopFlashes(w, r),
		User:     user,
		Feedback: entries,
	})
}

// DeleteUser cascade-deletes an account: every feedback row the user owns
// and the user row itself go in one transaction, then every session for the
// account is invalidated.
func DeleteUser(w http.ResponseWriter, r *http.Request, store UserStore, sessions SessionStore) {
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

	if !requireOwner(w, r, sessions, user.Username, "Cannot delete someone else's account!") {
		return
	}

	if err := store.DeleteUserCascade(r.Context(), user.Username); err != nil {
		log.Println("error deleting account:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := sessions.DestroyAll(r.Context(), user.Username); err != nil {
		log.Println("error destroying sessions:", err)
	}
	utils.ClearSessionCookie(w)

	redirectWithFlash(w, r, "/", "secondary", "Successfully deleted account!")
}
