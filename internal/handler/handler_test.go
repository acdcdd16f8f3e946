package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/videoclub/rental/config"
	"github.com/videoclub/rental/internal/app"
	"github.com/videoclub/rental/internal/handler"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	application := app.New(&config.Config{}, db, nil, nil, zap.NewNop())
	if err := application.Init(); err != nil {
		t.Fatalf("failed to init application: %v", err)
	}
	return handler.NewRouter(application)
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Session-Token", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON response %q: %v", w.Body.String(), err)
		}
	}
	return w.Code, resp
}

func login(t *testing.T, r http.Handler, username, password string) string {
	t.Helper()
	code, resp := doJSON(t, r, "POST", "/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if code != 200 {
		t.Fatalf("login as %s: status = %d, resp = %v", username, code, resp)
	}
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatal("login response has no token")
	}
	return token
}

func TestLogin(t *testing.T) {
	r := newTestRouter(t)

	login(t, r, "admin1", "root")

	code, _ := doJSON(t, r, "POST", "/login", "", map[string]string{
		"username": "admin1",
		"password": "wrong",
	})
	if code != 401 {
		t.Errorf("wrong password status = %d, want 401", code)
	}
}

func TestRentFlow(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "user1", "1234")

	code, resp := doJSON(t, r, "POST", "/rentals", token, map[string]any{"movie_id": 1})
	if code != 200 {
		t.Fatalf("rent status = %d, resp = %v", code, resp)
	}

	// second rental for the same user is refused
	code, _ = doJSON(t, r, "POST", "/rentals", token, map[string]any{"movie_id": 1})
	if code != 409 {
		t.Errorf("second rent status = %d, want 409", code)
	}

	// the rented copy and its movie come back populated
	code, resp = doJSON(t, r, "GET", "/me", token, nil)
	if code != 200 {
		t.Fatalf("me status = %d", code)
	}
	user, _ := resp["user"].(map[string]any)
	assigned, _ := user["AssignedCopy"].(map[string]any)
	if assigned == nil {
		t.Fatalf("AssignedCopy missing in %v", user)
	}
	if assigned["Status"] != "Alquilada" {
		t.Errorf("assigned status = %v, want Alquilada", assigned["Status"])
	}
	movie, _ := assigned["Movie"].(map[string]any)
	if movie == nil || movie["Title"] != "Inception" {
		t.Errorf("assigned movie = %v, want Inception", movie)
	}

	code, _ = doJSON(t, r, "DELETE", "/rentals", token, nil)
	if code != 200 {
		t.Errorf("return status = %d, want 200", code)
	}
	code, _ = doJSON(t, r, "DELETE", "/rentals", token, nil)
	if code != 409 {
		t.Errorf("second return status = %d, want 409", code)
	}
}

func TestRentWithoutSession(t *testing.T) {
	r := newTestRouter(t)

	code, _ := doJSON(t, r, "POST", "/rentals", "", map[string]any{"movie_id": 1})
	if code != 401 {
		t.Errorf("status = %d, want 401", code)
	}
}

func TestCatalogAdminOnly(t *testing.T) {
	r := newTestRouter(t)
	userToken := login(t, r, "user1", "1234")
	adminToken := login(t, r, "admin1", "root")

	movie := map[string]any{
		"title":    "Memento",
		"genre":    "Thriller",
		"director": "Christopher Nolan",
		"year":     2000,
	}

	code, _ := doJSON(t, r, "POST", "/movies", userToken, movie)
	if code != 403 {
		t.Errorf("create as non-admin status = %d, want 403", code)
	}

	code, resp := doJSON(t, r, "POST", "/movies", adminToken, movie)
	if code != 201 {
		t.Fatalf("create as admin status = %d, resp = %v", code, resp)
	}

	code, resp = doJSON(t, r, "GET", "/movies", "", nil)
	if code != 200 {
		t.Fatalf("list status = %d", code)
	}
	movies, _ := resp["movies"].([]any)
	if len(movies) != 2 {
		t.Errorf("movies = %d, want seeded Inception plus Memento", len(movies))
	}
}

func TestGetMovie(t *testing.T) {
	r := newTestRouter(t)

	code, resp := doJSON(t, r, "GET", "/movies/1", "", nil)
	if code != 200 {
		t.Fatalf("status = %d", code)
	}
	movie, _ := resp["movie"].(map[string]any)
	if movie == nil || movie["Title"] != "Inception" {
		t.Errorf("movie = %v, want Inception", movie)
	}

	code, _ = doJSON(t, r, "GET", "/movies/999", "", nil)
	if code != 404 {
		t.Errorf("missing movie status = %d, want 404", code)
	}

	code, _ = doJSON(t, r, "GET", "/movies/abc", "", nil)
	if code != 400 {
		t.Errorf("bad id status = %d, want 400", code)
	}
}
