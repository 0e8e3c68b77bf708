package utils_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"speakup/utils"
)

// carry moves the cookies a handler set onto a fresh request, the way a
// browser would across a redirect.
func carry(w *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestFlashRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	utils.SetFlash(w, "success", "Welcome! Successfully Created Your Account!")

	next := httptest.NewRecorder()
	flashes := utils.PopFlashes(next, carry(w))

	if len(flashes) != 1 {
		t.Fatalf("PopFlashes() returned %d flashes, want 1", len(flashes))
	}
	if flashes[0].Category != "success" {
		t.Errorf("flash category = %q, want %q", flashes[0].Category, "success")
	}
	if flashes[0].Message != "Welcome! Successfully Created Your Account!" {
		t.Errorf("flash message = %q", flashes[0].Message)
	}
}

func TestPopFlashesClearsCookie(t *testing.T) {
	w := httptest.NewRecorder()
	utils.SetFlash(w, "danger", "Please login first!")

	next := httptest.NewRecorder()
	utils.PopFlashes(next, carry(w))

	// The pop must expire the cookie so the notice shows only once.
	var cleared bool
	for _, c := range next.Result().Cookies() {
		if c.Name == utils.FlashCookie && c.Value == "" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("PopFlashes() did not clear the flash cookie")
	}

	// A second request carrying the cleared cookie has nothing to show.
	flashes := utils.PopFlashes(httptest.NewRecorder(), carry(next))
	if len(flashes) != 0 {
		t.Errorf("second PopFlashes() returned %d flashes, want 0", len(flashes))
	}
}

func TestPopFlashesWithoutCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	flashes := utils.PopFlashes(httptest.NewRecorder(), req)
	if flashes != nil {
		t.Errorf("PopFlashes() without cookie = %v, want nil", flashes)
	}
}

func TestPopFlashesGarbageCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: utils.FlashCookie, Value: "%%%not-base64%%%"})

	flashes := utils.PopFlashes(httptest.NewRecorder(), req)
	if flashes != nil {
		t.Errorf("PopFlashes() with garbage cookie = %v, want nil", flashes)
	}
}
