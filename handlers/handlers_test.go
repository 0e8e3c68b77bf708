package handlers_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"speakup/models"
	"speakup/utils"
)

// fakeStore is an in-memory stand-in for *utils.Store. It mirrors the
// database behavior the handlers rely on: unique username/email enforcement
// at write time and the feedback-then-user cascade delete.
type fakeStore struct {
	users    map[string]models.User
	feedback map[int]models.Feedback
	nextID   int
	calls    []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[string]models.User{},
		feedback: map[int]models.Feedback{},
		nextID:   1,
	}
}

func (s *fakeStore) record(call string) {
	s.calls = append(s.calls, call)
}

func (s *fakeStore) called(call string) bool {
	for _, c := range s.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (s *fakeStore) RegisterUser(_ context.Context, username, password, email, firstName, lastName string) (models.User, error) {
	s.record("RegisterUser")

	if _, ok := s.users[username]; ok {
		return models.User{}, utils.ErrDuplicate
	}
	for _, u := range s.users {
		if u.Email == email {
			return models.User{}, utils.ErrDuplicate
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return models.User{}, err
	}

	u := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
	}
	s.users[username] = u
	return u, nil
}

func (s *fakeStore) Authenticate(_ context.Context, username, password string) (models.User, error) {
	s.record("Authenticate")

	u, ok := s.users[username]
	if !ok {
		return models.User{}, utils.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return models.User{}, utils.ErrInvalidCredentials
	}
	return u, nil
}

func (s *fakeStore) GetUser(_ context.Context, username string) (models.User, error) {
	u, ok := s.users[username]
	if !ok {
		return models.User{}, utils.ErrNotFound
	}
	return u, nil
}

func (s *fakeStore) DeleteUserCascade(_ context.Context, username string) error {
	s.record("DeleteUserCascade")

	if _, ok := s.users[username]; !ok {
		return utils.ErrNotFound
	}
	for id, fb := range s.feedback {
		if fb.Username == username {
			delete(s.feedback, id)
		}
	}
	delete(s.users, username)
	return nil
}

func (s *fakeStore) CreateFeedback(_ context.Context, fb models.Feedback) (int, error) {
	s.record("CreateFeedback")

	fb.ID = s.nextID
	s.nextID++
	s.feedback[fb.ID] = fb
	return fb.ID, nil
}

func (s *fakeStore) GetFeedback(_ context.Context, id int) (models.Feedback, error) {
	fb, ok := s.feedback[id]
	if !ok {
		return models.Feedback{}, utils.ErrNotFound
	}
	return fb, nil
}

func (s *fakeStore) UpdateFeedback(_ context.Context, id int, title, content string) error {
	s.record("UpdateFeedback")

	fb, ok := s.feedback[id]
	if !ok {
		return utils.ErrNotFound
	}
	fb.Title = title
	fb.Content = content
	s.feedback[id] = fb
	return nil
}

func (s *fakeStore) DeleteFeedback(_ context.Context, id int) error {
	s.record("DeleteFeedback")

	if _, ok := s.feedback[id]; !ok {
		return utils.ErrNotFound
	}
	delete(s.feedback, id)
	return nil
}

func (s *fakeStore) ListFeedbackForUser(_ context.Context, username string) ([]models.Feedback, error) {
	s.record("ListFeedbackForUser")

	var out []models.Feedback
	for _, fb := range s.feedback {
		if fb.Username == username {
			out = append(out, fb)
		}
	}
	return out, nil
}

// fakeSessions is an in-memory stand-in for *utils.SessionManager.
type fakeSessions struct {
	sessions map[string]string // token -> username
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: map[string]string{}}
}

func (f *fakeSessions) Store(_ context.Context, session models.Session) error {
	f.sessions[session.SessionToken] = session.Username
	return nil
}

func (f *fakeSessions) Username(_ context.Context, token string) (string, error) {
	username, ok := f.sessions[token]
	if !ok {
		return "", utils.ErrNoSession
	}
	return username, nil
}

func (f *fakeSessions) Destroy(_ context.Context, token string) error {
	if _, ok := f.sessions[token]; !ok {
		return utils.ErrNoSession
	}
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessions) DestroyAll(_ context.Context, username string) error {
	for token, u := range f.sessions {
		if u == username {
			delete(f.sessions, token)
		}
	}
	return nil
}

func (f *fakeSessions) Touch(_ context.Context, _ string) error {
	return nil
}

// countFor returns how many live sessions a user has.
func (f *fakeSessions) countFor(username string) int {
	n := 0
	for _, u := range f.sessions {
		if u == username {
			n++
		}
	}
	return n
}

// seedUser inserts a user directly, bypassing the registration handler.
func seedUser(t *testing.T, store *fakeStore, username, password, email, firstName, lastName string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash seed password: %v", err)
	}
	store.users[username] = models.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
	}
}

// loginAs creates a session for username and returns the matching cookie.
func loginAs(sessions *fakeSessions, username string) *http.Cookie {
	token := "token-" + username
	sessions.sessions[token] = username
	return &http.Cookie{Name: utils.SessionCookie, Value: token}
}

// postForm builds a form POST the way a browser submits one.
func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// flashFrom decodes the flash notice a handler queued on the response.
func flashFrom(t *testing.T, w *httptest.ResponseRecorder) (models.Flash, bool) {
	t.Helper()

	for _, c := range w.Result().Cookies() {
		if c.Name != utils.FlashCookie || c.Value == "" {
			continue
		}
		payload, err := base64.URLEncoding.DecodeString(c.Value)
		if err != nil {
			t.Fatalf("failed to decode flash cookie: %v", err)
		}
		var flash models.Flash
		if err := json.Unmarshal(payload, &flash); err != nil {
			t.Fatalf("failed to unmarshal flash cookie: %v", err)
		}
		return flash, true
	}
	return models.Flash{}, false
}

// sessionTokenFrom extracts the session token a handler set on the response.
func sessionTokenFrom(w *httptest.ResponseRecorder) (string, bool) {
	for _, c := range w.Result().Cookies() {
		if c.Name == utils.SessionCookie && c.Value != "" {
			return c.Value, true
		}
	}
	return "", false
}
