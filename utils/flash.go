package utils

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"speakup/models"
)

// FlashCookie holds at most one pending flash notice between a redirect and
// the next rendered page.
const FlashCookie = "flash"

// SetFlash queues a one-time notice for the next rendered page.
func SetFlash(w http.ResponseWriter, category, message string) {
	payload, err := json.Marshal(models.Flash{Category: category, Message: message})
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookie,
		Value:    base64.URLEncoding.EncodeToString(payload),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
}

// PopFlashes returns any pending flash notices and clears them, so each is
// displayed exactly once.
func PopFlashes(w http.ResponseWriter, r *http.Request) []models.Flash {
	c, err := r.Cookie(FlashCookie)
	if err != nil || c.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookie,
		Value:    "",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})

	payload, err := base64.URLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}

	var flash models.Flash
	if err := json.Unmarshal(payload, &flash); err != nil {
		return nil
	}
	return []models.Flash{flash}
}
