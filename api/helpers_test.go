package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/go-chi/chi/v5"
	"github.com/tmc/langchaingo/llms"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/blogger-backend/ai"
	"github.com/rpupo63/blogger-backend/auth"
	"github.com/rpupo63/blogger-backend/database"
)

const testJWTSecret = "test-secret-for-handler-tests"

type testServer struct {
	router *chi.Mux
	db     database.Database
	auth   *auth.Service
}

// newTestServer wires the full route table against an in-memory store. The
// model may be nil to exercise the unconfigured AI path.
func newTestServer(t *testing.T, model llms.Model) *testServer {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	d := database.New(db)
	authService := auth.NewService(testJWTSecret, bcrypt.MinCost)
	uploadDir := t.TempDir()

	handlers := initializeHandlers(d, authService, ai.New(model), uploadDir)
	middleware := newAuthMiddleware(authService, d.UserRepo())

	router := chi.NewRouter()
	setupRoutes(router, handlers, middleware, uploadDir)

	return &testServer{router: router, db: d, auth: authService}
}

// do sends a JSON request through the router, with a bearer token when one
// is given, and returns the recorded response.
func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return body
}

// registerUser creates an account through the API and returns its token and id.
func (s *testServer) registerUser(t *testing.T, name, email, password string) (token, userID string) {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", email, rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	token, _ = body["token"].(string)
	user, _ := body["user"].(map[string]any)
	userID, _ = user["id"].(string)
	if token == "" || userID == "" {
		t.Fatalf("register %s: missing token or id in %v", email, body)
	}
	return token, userID
}

// promoteToAdmin flips a registered user's role directly in the store.
func (s *testServer) promoteToAdmin(t *testing.T, email string) {
	t.Helper()
	user, err := s.db.UserRepo().FindByEmail(email)
	if err != nil || user == nil {
		t.Fatalf("find user %s: %v", email, err)
	}
	user.Role = "admin"
	if err := s.db.UserRepo().Update(user); err != nil {
		t.Fatalf("promote %s: %v", email, err)
	}
}

// createPost creates a post through the API and returns its id and slug.
func (s *testServer) createPost(t *testing.T, token, title, content string, isDraft bool) (postID, slug string) {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/posts", token, map[string]any{
		"title":   title,
		"content": content,
		"isDraft": isDraft,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create post %q: status %d body %s", title, rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	post, _ := body["post"].(map[string]any)
	postID, _ = post["id"].(string)
	slug, _ = post["slug"].(string)
	if postID == "" || slug == "" {
		t.Fatalf("create post %q: missing id or slug in %v", title, body)
	}
	return postID, slug
}
