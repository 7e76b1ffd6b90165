package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinya-planner/internal/db"
	"pinya-planner/internal/db/repository"
	"pinya-planner/internal/domain"
	authsvc "pinya-planner/internal/service/auth"
	layoutsvc "pinya-planner/internal/service/layout"
	plannersvc "pinya-planner/internal/service/planner"
	rostersvc "pinya-planner/internal/service/roster"
)

type testServer struct {
	router  chi.Router
	members *repository.MemberRepo
}

// setupServer wires the full stack over a test database. Auth middleware
// is not mounted; these tests exercise handlers and services.
func setupServer(t *testing.T) *testServer {
	t.Helper()
	writeDB, _ := db.OpenTestSQLite(t)

	members := repository.NewMemberRepo(writeDB)
	attendance := repository.NewAttendanceRepo(writeDB)
	events := repository.NewEventRepo(writeDB)
	votes := repository.NewVoteRepo(writeDB)
	layouts := layoutsvc.New(repository.NewLayoutRepo(writeDB))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	planner := plannersvc.New(members, attendance, events, votes, layouts, logger)
	roster := rostersvc.New(members, attendance, events)
	auth := authsvc.New(members, []byte("test-secret"), "clau-admin")

	h := NewHandler(auth, layouts, planner, roster, logger)
	routes := h.Routes()

	router := chi.NewRouter()
	router.Route("/api/v1", func(r chi.Router) {
		r.Group(routes.Public)
		r.Group(routes.Member)
		r.Group(routes.Admin)
	})
	return &testServer{router: router, members: members}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestAuthAndCheckIn(t *testing.T) {
	ts := setupServer(t)

	t.Run("login issues a token and registers the member", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/v1/auth/login", loginRequest{Nickname: "ana"})
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody[loginResponse](t, rec)
		assert.NotEmpty(t, resp.AccessToken)
		assert.False(t, resp.IsAdmin)
	})

	t.Run("wrong admin key is forbidden", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/v1/auth/login", loginRequest{Nickname: "ana", AdminKey: "wrong"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("check-in registers and records", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/v1/checkin", checkInRequest{Nickname: "nou", Date: "2026-09-01"})
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = ts.do(t, http.MethodGet, "/api/v1/attendance?date=2026-09-01", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		recs := decodeBody[[]attendanceResponse](t, rec)
		require.Len(t, recs, 1)
		assert.Equal(t, "nou", recs[0].Nickname)
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkin", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMemberEndpoints(t *testing.T) {
	ts := setupServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/members", createMemberRequest{Nickname: "ana", Position: "Baix"})
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("duplicate nickname conflicts", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/v1/members", createMemberRequest{Nickname: "ANA"})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("get and list", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/v1/members/ana", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		m := decodeBody[memberResponse](t, rec)
		assert.Equal(t, "Baix", m.Position)

		rec = ts.do(t, http.MethodGet, "/api/v1/members", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decodeBody[[]memberResponse](t, rec), 1)
	})

	t.Run("patch positions", func(t *testing.T) {
		pos := "Lateral"
		rec := ts.do(t, http.MethodPatch, "/api/v1/members/ana", updateMemberRequest{Position: &pos})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Lateral", decodeBody[memberResponse](t, rec).Position)
	})

	t.Run("unknown member is a 404", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/v1/members/ningu", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPlannerSessionFlow(t *testing.T) {
	ts := setupServer(t)
	ctx := context.Background()

	_, err := ts.members.Create(ctx, &domain.Member{Nickname: "ana", Position: "Vent"})
	require.NoError(t, err)
	_, err = ts.members.Create(ctx, &domain.Member{Nickname: "pau", Position: "Baix"})
	require.NoError(t, err)

	rec := ts.do(t, http.MethodPost, "/api/v1/planner/sessions", startSessionRequest{Mode: "all"})
	require.Equal(t, http.StatusCreated, rec.Code)
	sess := decodeBody[sessionResponse](t, rec)
	require.Len(t, sess.Pool, 2)
	base := "/api/v1/planner/sessions/" + sess.SessionID

	t.Run("add role and drop member", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, base+"/roles", addRoleRequest{Label: "Vent"})
		require.Equal(t, http.StatusCreated, rec.Code)
		ri := decodeBody[roleInstanceResponse](t, rec)

		rec = ts.do(t, http.MethodPost, base+"/roles/"+ri.ID+"/drop", dropMemberRequest{Nickname: "ana"})
		require.Equal(t, http.StatusOK, rec.Code)
		state := decodeBody[sessionResponse](t, rec)
		require.Len(t, state.Instances, 1)
		require.Len(t, state.Instances[0].Members, 1)
		assert.Equal(t, "ana", state.Instances[0].Members[0].Nickname)
		// ana left the visible pool.
		require.Len(t, state.Pool, 1)
		assert.Equal(t, "pau", state.Pool[0].Nickname)
	})

	t.Run("auto-assign fills matching roles", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, base+"/roles", addRoleRequest{Label: "Baix"})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = ts.do(t, http.MethodPost, base+"/autoassign", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		state := decodeBody[sessionResponse](t, rec)
		assert.Empty(t, state.Pool)
	})

	t.Run("save then published overview", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, base+"/save", saveSessionRequest{Name: "Tres de vuit", Folder: "assaig"})
		require.Equal(t, http.StatusOK, rec.Code)
		saved := decodeBody[saveSessionResponse](t, rec)
		assert.False(t, saved.Updated)

		rec = ts.do(t, http.MethodPost, "/api/v1/layouts/publish", publishRequest{
			LayoutIDs: []string{saved.Layout.ID},
			Date:      "2026-09-01",
		})
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = ts.do(t, http.MethodGet, "/api/v1/overview?date=2026-09-01", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		visible := decodeBody[[]layoutResponse](t, rec)
		require.Len(t, visible, 1)
		assert.Equal(t, "Tres de vuit", visible[0].Name)

		rec = ts.do(t, http.MethodGet, "/api/v1/overview?date=2026-09-02", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decodeBody[[]layoutResponse](t, rec))
	})

	t.Run("unknown session is a 404", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/v1/planner/sessions/nope/autoassign", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("close session", func(t *testing.T) {
		rec := ts.do(t, http.MethodDelete, base+"/", nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = ts.do(t, http.MethodGet, base+"/", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRoleCatalogEndpoint(t *testing.T) {
	ts := setupServer(t)
	rec := ts.do(t, http.MethodGet, "/api/v1/roles", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	catalog := decodeBody[[]roleTemplateResponse](t, rec)
	require.NotEmpty(t, catalog)

	var baix *roleTemplateResponse
	for i := range catalog {
		if catalog[i].Label == "Baix" {
			baix = &catalog[i]
		}
	}
	require.NotNil(t, baix)
	assert.True(t, baix.IsBase)
}
