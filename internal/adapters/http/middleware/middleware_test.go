package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"physionomie/internal/adapters/http/perf"
	"physionomie/internal/domain/auth"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSessionStore_CreateGetDelete(t *testing.T) {
	ss := NewSessionStore()

	token, err := ss.Create(auth.Session{UserID: "t1", Role: auth.RoleTherapist})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(token))
	}

	session, ok := ss.Get(token)
	if !ok || session.UserID != "t1" {
		t.Errorf("Get = %+v/%v, want stored session", session, ok)
	}

	ss.Delete(token)
	if _, ok := ss.Get(token); ok {
		t.Error("session survived Delete")
	}

	if _, ok := ss.Get("unknown"); ok {
		t.Error("Get returned a session for an unknown token")
	}
}

func TestAuth_ResolvesCookieIntoContext(t *testing.T) {
	ss := NewSessionStore()
	token, _ := ss.Create(auth.Session{UserID: "t1", Role: auth.RoleTherapist})

	var got auth.Session
	var ok bool
	handler := Auth(ss)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/tracker", nil)
	req.AddCookie(&http.Cookie{Name: "physio_session", Value: token})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !ok || got.UserID != "t1" {
		t.Errorf("context session = %+v/%v, want t1", got, ok)
	}
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(auth.RoleAdmin)(okHandler())

	cases := []struct {
		name    string
		session *auth.Session
		want    int
	}{
		{"no session", nil, http.StatusUnauthorized},
		{"wrong role", &auth.Session{UserID: "t1", Role: auth.RoleTherapist}, http.StatusForbidden},
		{"admin", &auth.Session{UserID: auth.AdminUserID, Role: auth.RoleAdmin}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/analytics", nil)
			if tc.session != nil {
				req = req.WithContext(ContextWithSession(req.Context(), *tc.session))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2, time.Hour)

	if !rl.Allow("1.2.3.4") || !rl.Allow("1.2.3.4") {
		t.Fatal("first requests within the limit were rejected")
	}
	if rl.Allow("1.2.3.4") {
		t.Error("request above the limit was allowed")
	}
	if !rl.Allow("5.6.7.8") {
		t.Error("different IP shares the bucket")
	}
}

func TestTiming_RecordsToCollector(t *testing.T) {
	collector := perf.NewCollector(16)
	handler := Timing(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/activities", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	snap := collector.Snapshot(time.Now().Add(-time.Minute), 5)
	if len(snap.SlowestRoutes) != 1 {
		t.Fatalf("SlowestRoutes = %d entries, want 1", len(snap.SlowestRoutes))
	}
	if snap.SlowestRoutes[0].Name != "POST /api/activities" {
		t.Errorf("Name = %q", snap.SlowestRoutes[0].Name)
	}
}

func TestTiming_SkipsStatic(t *testing.T) {
	collector := perf.NewCollector(16)
	handler := Timing(collector)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/static/app.css", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if collector.TotalRecorded() != 0 {
		t.Errorf("recorded = %d entries for a static asset, want 0", collector.TotalRecorded())
	}
}
