package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamboard/teamboard/internal/api/middleware"
	"github.com/teamboard/teamboard/internal/auth"
	"github.com/teamboard/teamboard/internal/post"
	"github.com/teamboard/teamboard/internal/team"
)

const testSigningKey = "handler-test-key"

// --- Mock Team Repository ---

type mockTeamRepo struct {
	createFn    func(ctx context.Context, t *team.Team) error
	getByIDFn   func(ctx context.Context, id uuid.UUID) (*team.Team, error)
	getByNameFn func(ctx context.Context, name string) (*team.Team, error)
	updateFn    func(ctx context.Context, id uuid.UUID, fields team.UpdateFields) (*team.Team, error)
	deleteFn    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTeamRepo) Create(ctx context.Context, t *team.Team) error {
	if m.createFn != nil {
		return m.createFn(ctx, t)
	}
	t.ID = uuid.New()
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = t.CreatedAt
	return nil
}

func (m *mockTeamRepo) GetByID(ctx context.Context, id uuid.UUID) (*team.Team, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, team.ErrTeamNotFound
}

func (m *mockTeamRepo) GetByName(ctx context.Context, name string) (*team.Team, error) {
	if m.getByNameFn != nil {
		return m.getByNameFn(ctx, name)
	}
	return nil, team.ErrTeamNotFound
}

func (m *mockTeamRepo) Update(ctx context.Context, id uuid.UUID, fields team.UpdateFields) (*team.Team, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, fields)
	}
	return nil, team.ErrTeamNotFound
}

func (m *mockTeamRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- Mock Post Repository ---

type mockPostRepo struct {
	createFn  func(ctx context.Context, p *post.Post) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*post.Post, error)
	listFn    func(ctx context.Context, filter post.ListFilter) (*post.ListResult, error)
	updateFn  func(ctx context.Context, id uuid.UUID, fields post.UpdateFields) (*post.Post, error)
	deleteFn  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockPostRepo) Create(ctx context.Context, p *post.Post) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	return nil
}

func (m *mockPostRepo) GetByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, post.ErrPostNotFound
}

func (m *mockPostRepo) List(ctx context.Context, filter post.ListFilter) (*post.ListResult, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return &post.ListResult{Posts: []post.Post{}, Page: filter.Page, Limit: filter.Limit}, nil
}

func (m *mockPostRepo) Update(ctx context.Context, id uuid.UUID, fields post.UpdateFields) (*post.Post, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, fields)
	}
	return nil, post.ErrPostNotFound
}

func (m *mockPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- Helpers ---

func newAuthService(t *testing.T, repo team.Repository) *auth.Service {
	t.Helper()
	tokens, err := auth.NewTokenService(testSigningKey)
	require.NoError(t, err)
	return auth.NewService(repo, auth.NewBcryptHasher(bcrypt.MinCost), tokens)
}

func makeChiRequest(method, path string, body []byte, params map[string]string) (*http.Request, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	return req, w
}

func withIdentity(req *http.Request, teamID uuid.UUID, name string) *http.Request {
	ctx := middleware.WithIdentity(req.Context(), &auth.Identity{TeamID: teamID, TeamName: name})
	return req.WithContext(ctx)
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var env map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &env)
	require.NoError(t, err, "failed to parse response body")
	return env
}

func errorCode(t *testing.T, env map[string]interface{}) string {
	t.Helper()
	errObj, ok := env["error"].(map[string]interface{})
	require.True(t, ok, "response has no error object")
	return errObj["code"].(string)
}
