package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dukerupert/quill/internal/database"
	"github.com/dukerupert/quill/internal/model"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(db, []byte("test-secret"), time.Hour, logger).Router()
}

func do(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// TestRegisterLoginNoteFlow walks the whole surface end to end: register,
// duplicate register, login, create a note, fetch it with and without the
// token.
func TestRegisterLoginNoteFlow(t *testing.T) {
	router := newTestServer(t)

	register := `{"user_name":"Ann","user_email":"ann@x.com","password":"pw1"}`
	if rec := do(t, router, "POST", "/auth/register", "", register); rec.Code != http.StatusOK {
		t.Fatalf("register status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, router, "POST", "/auth/register", "", register); rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	rec := do(t, router, "POST", "/auth/login", "", `{"user_email":"ann@x.com","password":"pw1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var login map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("unmarshal login: %v", err)
	}
	tok := login["access_token"]
	if tok == "" || login["token_type"] != "bearer" {
		t.Fatalf("login body = %s", rec.Body.String())
	}

	rec = do(t, router, "POST", "/notes", tok, `{"note_title":"T","note_content":"C"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create note status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal create: %v", err)
	}
	noteID := created["note_id"]
	if noteID == "" {
		t.Fatal("expected note_id")
	}

	if rec := do(t, router, "GET", "/notes/"+noteID, "", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("get without token: status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	rec = do(t, router, "GET", "/notes/"+noteID, tok, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get with token: status = %d", rec.Code)
	}
	var n model.Note
	if err := json.Unmarshal(rec.Body.Bytes(), &n); err != nil {
		t.Fatalf("unmarshal note: %v", err)
	}
	if n.Title != "T" || n.Content != "C" {
		t.Errorf("note = %+v, want title T content C", n)
	}
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	router := newTestServer(t)

	for _, rt := range []struct{ method, path string }{
		{"POST", "/notes"},
		{"GET", "/notes"},
		{"GET", "/notes/some-id"},
		{"PUT", "/notes/some-id"},
		{"DELETE", "/notes/some-id"},
		{"GET", "/ws"},
	} {
		rec := do(t, router, rt.method, rt.path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want %d", rt.method, rt.path, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestHealthIsPublic(t *testing.T) {
	router := newTestServer(t)

	rec := do(t, router, "GET", "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestListNewestFirstAcrossUsers(t *testing.T) {
	router := newTestServer(t)

	registerAndLogin := func(name, email string) string {
		t.Helper()
		body := `{"user_name":"` + name + `","user_email":"` + email + `","password":"pw"}`
		if rec := do(t, router, "POST", "/auth/register", "", body); rec.Code != http.StatusOK {
			t.Fatalf("register %s: status = %d", email, rec.Code)
		}
		rec := do(t, router, "POST", "/auth/login", "", `{"user_email":"`+email+`","password":"pw"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("login %s: status = %d", email, rec.Code)
		}
		var login map[string]string
		json.Unmarshal(rec.Body.Bytes(), &login)
		return login["access_token"]
	}

	ann := registerAndLogin("Ann", "ann@x.com")
	bob := registerAndLogin("Bob", "bob@x.com")

	for _, title := range []string{"a1", "a2"} {
		if rec := do(t, router, "POST", "/notes", ann, `{"note_title":"`+title+`","note_content":""}`); rec.Code != http.StatusOK {
			t.Fatalf("create %s: status = %d", title, rec.Code)
		}
		time.Sleep(5 * time.Millisecond)
	}
	if rec := do(t, router, "POST", "/notes", bob, `{"note_title":"b1","note_content":""}`); rec.Code != http.StatusOK {
		t.Fatalf("create b1: status = %d", rec.Code)
	}

	rec := do(t, router, "GET", "/notes", ann, "")
	var notes []model.Note
	if err := json.Unmarshal(rec.Body.Bytes(), &notes); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("ann sees %d notes, want 2", len(notes))
	}
	if notes[0].Title != "a2" || notes[1].Title != "a1" {
		t.Errorf("order = [%s %s], want [a2 a1]", notes[0].Title, notes[1].Title)
	}
}
