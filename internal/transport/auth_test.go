package transport_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func (f *fixture) login(t *testing.T, body string, cookie *http.Cookie) (*httptest.ResponseRecorder, *http.Cookie) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Request-Source", "qrcode-analytic")
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == "qrcode" {
			return rec, c
		}
	}
	return rec, cookie
}

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)

	rec, cookie := f.login(t, `{"username":"alice","password":"hunter2"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, cookie)

	var resp struct {
		Title string `json:"title"`
		Route string `json:"route"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Logged in!", resp.Title)
	require.Equal(t, "/dashboard", resp.Route)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.login(t, `{"username":"alice","password":"wrong"}`, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_MalformedBody(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.login(t, `{"username":`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_RequiresSourceHeader(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetData_RequiresLogin(t *testing.T) {
	f := newFixture(t)

	rec, cookie := f.do(t, http.MethodGet, "/api/get_data", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, cookie = f.login(t, `{"username":"alice","password":"hunter2"}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/api/get_data", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		State []struct {
			Date      string `json:"date"`
			LastCount int    `json:"last_count"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Len(t, doc.State, 1)
	require.Equal(t, "2025-03-10", doc.State[0].Date)
	require.Equal(t, 0, doc.State[0].LastCount)
}

func TestCanLogin_ClearsStaleAuth(t *testing.T) {
	f := newFixture(t)

	rec, cookie := f.do(t, http.MethodGet, "/api/can_i_login", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, cookie = f.login(t, `{"username":"alice","password":"hunter2"}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/api/can_i_login", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Route string `json:"route"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "/dashboard", resp.Route)
}

func TestDashboard_RequiresLogin(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.webDir, "dashboard.html"), []byte("<h1>stats</h1>"), 0o644))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	_, cookie := f.login(t, `{"username":"alice","password":"hunter2"}`, nil)

	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "stats")
}
