package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"physionomie/internal/adapters/http/middleware"
	"physionomie/internal/application/orchestrators"
	"physionomie/internal/application/projections"
	"physionomie/internal/domain/auth"
	"physionomie/internal/domain/pricing"
	"physionomie/internal/domain/therapist"
	"physionomie/internal/domain/therapy"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the
// client, preventing leakage of internal details.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// requireSession resolves the authenticated session or writes a 401.
func requireSession(w http.ResponseWriter, r *http.Request) (auth.Session, bool) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		jsonError(w, http.StatusUnauthorized, "authentication required")
		return auth.Session{}, false
	}
	return session, true
}

// requireAdmin resolves the session and checks for the admin role.
func requireAdmin(w http.ResponseWriter, r *http.Request) (auth.Session, bool) {
	session, ok := requireSession(w, r)
	if !ok {
		return auth.Session{}, false
	}
	if !session.IsAdmin() {
		jsonError(w, http.StatusForbidden, "admin access required")
		return auth.Session{}, false
	}
	return session, true
}

// resolveTherapistID picks the acting therapist. Admins may act for any
// therapist via the override; therapists are always pinned to themselves.
func resolveTherapistID(session auth.Session, override string) string {
	if session.IsAdmin() && override != "" {
		return override
	}
	return session.UserID
}

// isoDate returns the requested date or today.
func isoDate(v string) string {
	if v != "" {
		return v
	}
	return timeNow().Format("2006-01-02")
}

// handleLogin handles POST /api/login.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input orchestrators.LoginInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid form submission")
			return
		}
		input.Email = r.FormValue("email")
		input.Password = r.FormValue("password")
		input.RememberMe = r.FormValue("rememberMe") == "true" || r.FormValue("rememberMe") == "on"
	} else {
		var body struct {
			Email      string `json:"email"`
			Password   string `json:"password"`
			RememberMe bool   `json:"rememberMe"`
		}
		if err := strictDecode(r, &body); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid request")
			return
		}
		input = orchestrators.LoginInput{Email: body.Email, Password: body.Password, RememberMe: body.RememberMe}
	}

	session, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{
		Roster:        stores.Roster,
		Sessions:      stores.Sessions,
		Verifier:      verifier,
		AdminEmail:    adminEmail,
		AdminPassword: adminPassword,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrInvalidCredentials) {
			loginsTotal.WithLabelValues("rejected").Inc()
			jsonError(w, http.StatusUnauthorized, err.Error())
			return
		}
		loginsTotal.WithLabelValues("error").Inc()
		internalError(w, err)
		return
	}

	token, err := sessions.Create(session)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)
	loginsTotal.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, session)
}

// handleLogout handles POST /api/logout.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}
	if err := orchestrators.ExecuteLogout(r.Context(), orchestrators.LogoutDeps{Sessions: stores.Sessions}); err != nil {
		internalError(w, err)
		return
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleSession handles GET /api/session. Without a live cookie session it
// falls back to the remembered session, re-registering it and issuing a
// fresh cookie, which restores remember-me sign-ins across restarts.
func handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if session, ok := middleware.GetSessionFromContext(r.Context()); ok {
		writeJSON(w, http.StatusOK, session)
		return
	}

	remembered, found, err := stores.Sessions.Load(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	if !found {
		jsonError(w, http.StatusUnauthorized, "not signed in")
		return
	}

	token, err := sessions.Create(remembered)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)
	slog.Info("auth_event", "event", "session_restored", "email", remembered.Email)
	writeJSON(w, http.StatusOK, remembered)
}

// therapistView is the roster entry exposed over the API. Passwords never
// leave the server.
type therapistView struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	BonusTarget    float64 `json:"bonusTarget"`
	RevenuePercent int     `json:"revenuePercent"`
}

func toTherapistView(tp therapist.Therapist) therapistView {
	return therapistView{
		ID:             tp.ID,
		Name:           tp.Name,
		Email:          tp.Email,
		BonusTarget:    tp.BonusTarget,
		RevenuePercent: tp.RevenuePercent,
	}
}

// handleTherapies handles GET (list) and POST (create/update) on
// /api/therapies.
func handleTherapies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		if _, ok := requireSession(w, r); !ok {
			return
		}
		catalog, _, err := stores.Catalog.Load(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		if catalog == nil {
			catalog = []therapy.Therapy{}
		}
		writeJSON(w, http.StatusOK, catalog)
		return
	}

	if r.Method == "POST" {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}

		input := orchestrators.SaveTherapyInput{}
		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			if err := r.ParseForm(); err != nil {
				jsonError(w, http.StatusBadRequest, "invalid form submission")
				return
			}
			input.ID = r.FormValue("id")
			input.Name = r.FormValue("name")
			input.Category = r.FormValue("category")
			input.DurationMin, _ = strconv.Atoi(r.FormValue("time"))
			input.BasePrice, _ = strconv.ParseFloat(r.FormValue("basePrice"), 64)
		} else {
			var body struct {
				ID          string  `json:"id"`
				Name        string  `json:"name"`
				DurationMin int     `json:"time"`
				Category    string  `json:"category"`
				BasePrice   float64 `json:"basePrice"`
			}
			if err := strictDecode(r, &body); err != nil {
				jsonError(w, http.StatusBadRequest, "invalid request")
				return
			}
			input = orchestrators.SaveTherapyInput{
				ID:          body.ID,
				Name:        body.Name,
				DurationMin: body.DurationMin,
				Category:    body.Category,
				BasePrice:   body.BasePrice,
			}
		}

		saved, err := orchestrators.ExecuteSaveTherapy(ctx, input, orchestrators.SaveTherapyDeps{
			Catalog:    stores.Catalog,
			GenerateID: generateID,
		})
		switch {
		case err == nil:
		case errors.Is(err, orchestrators.ErrTherapyNotFound):
			jsonError(w, http.StatusNotFound, err.Error())
			return
		case errors.Is(err, therapy.ErrEmptyName),
			errors.Is(err, therapy.ErrInvalidDuration),
			errors.Is(err, therapy.ErrInvalidCategory),
			errors.Is(err, therapy.ErrNegativeBasePrice):
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		default:
			internalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, saved)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleTherapyByID handles DELETE /api/therapies/{id}.
func handleTherapyByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != "DELETE" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/therapies/")
	if id == "" {
		jsonError(w, http.StatusBadRequest, "therapy id required")
		return
	}

	err := orchestrators.ExecuteDeleteTherapy(r.Context(), id, orchestrators.DeleteTherapyDeps{Catalog: stores.Catalog})
	if errors.Is(err, orchestrators.ErrTherapyNotFound) {
		jsonError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleTherapists handles GET (list) and POST (create/update) on
// /api/therapists. Admin only.
func handleTherapists(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	if r.Method == "GET" {
		roster, _, err := stores.Roster.Load(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		views := make([]therapistView, 0, len(roster))
		for _, tp := range roster {
			views = append(views, toTherapistView(tp))
		}
		writeJSON(w, http.StatusOK, views)
		return
	}

	if r.Method == "POST" {
		input := orchestrators.SaveTherapistInput{}
		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			if err := r.ParseForm(); err != nil {
				jsonError(w, http.StatusBadRequest, "invalid form submission")
				return
			}
			input.ID = r.FormValue("id")
			input.Name = r.FormValue("name")
			input.Email = r.FormValue("email")
			input.BonusTarget, _ = strconv.ParseFloat(r.FormValue("bonusTarget"), 64)
			input.RevenuePercent, _ = strconv.Atoi(r.FormValue("revenuePercent"))
		} else {
			var body struct {
				ID             string  `json:"id"`
				Name           string  `json:"name"`
				Email          string  `json:"email"`
				BonusTarget    float64 `json:"bonusTarget"`
				RevenuePercent int     `json:"revenuePercent"`
			}
			if err := strictDecode(r, &body); err != nil {
				jsonError(w, http.StatusBadRequest, "invalid request")
				return
			}
			input = orchestrators.SaveTherapistInput{
				ID:             body.ID,
				Name:           body.Name,
				Email:          body.Email,
				BonusTarget:    body.BonusTarget,
				RevenuePercent: body.RevenuePercent,
			}
		}

		saved, err := orchestrators.ExecuteSaveTherapist(ctx, input, orchestrators.SaveTherapistDeps{
			Roster:     stores.Roster,
			GenerateID: generateID,
		})
		switch {
		case err == nil:
		case errors.Is(err, orchestrators.ErrTherapistNotFound):
			jsonError(w, http.StatusNotFound, err.Error())
			return
		case errors.Is(err, orchestrators.ErrDuplicateEmail),
			errors.Is(err, therapist.ErrEmptyName),
			errors.Is(err, therapist.ErrInvalidEmail),
			errors.Is(err, therapist.ErrInvalidBonusTarget):
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		default:
			internalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toTherapistView(saved))
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleTherapistByID handles DELETE /api/therapists/{id}.
func handleTherapistByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != "DELETE" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/therapists/")
	if id == "" {
		jsonError(w, http.StatusBadRequest, "therapist id required")
		return
	}

	err := orchestrators.ExecuteDeleteTherapist(r.Context(), id, orchestrators.DeleteTherapistDeps{Roster: stores.Roster})
	if errors.Is(err, orchestrators.ErrTherapistNotFound) {
		jsonError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleTracker handles GET /api/tracker.
func handleTracker(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	therapistID := resolveTherapistID(session, r.URL.Query().Get("therapistId"))
	date := isoDate(r.URL.Query().Get("date"))

	view, err := projections.QueryTracker(r.Context(), therapistID, date, projections.TrackerDeps{
		Ledger:  stores.Ledger,
		Catalog: stores.Catalog,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleActivities handles POST /api/activities.
func handleActivities(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var body struct {
		TherapistID string `json:"therapistId"`
		TherapyID   string `json:"therapyId"`
		Tier        string `json:"kasse"`
		Date        string `json:"date"`
	}
	if err := strictDecode(r, &body); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request")
		return
	}

	input := orchestrators.LogActivityInput{
		TherapistID: resolveTherapistID(session, body.TherapistID),
		TherapyID:   body.TherapyID,
		Tier:        body.Tier,
		Date:        isoDate(body.Date),
	}
	logged, err := orchestrators.ExecuteLogActivity(r.Context(), input, orchestrators.LogActivityDeps{
		Catalog:    stores.Catalog,
		Ledger:     stores.Ledger,
		GenerateID: generateID,
		Now:        timeNow,
	})
	switch {
	case err == nil:
	case errors.Is(err, orchestrators.ErrTherapyNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, pricing.ErrUnknownTier):
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	default:
		internalError(w, err)
		return
	}

	activitiesLoggedTotal.Inc()
	writeJSON(w, http.StatusCreated, logged)
}

// handleActivityByID handles DELETE /api/activities/{id}. The date and, for
// admins, the therapist come from query parameters.
func handleActivityByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != "DELETE" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/activities/")
	if id == "" {
		jsonError(w, http.StatusBadRequest, "activity id required")
		return
	}

	input := orchestrators.RemoveActivityInput{
		TherapistID: resolveTherapistID(session, r.URL.Query().Get("therapistId")),
		ActivityID:  id,
		Date:        isoDate(r.URL.Query().Get("date")),
	}
	if err := orchestrators.ExecuteRemoveActivity(r.Context(), input, orchestrators.RemoveActivityDeps{Ledger: stores.Ledger}); err != nil {
		internalError(w, err)
		return
	}

	activitiesRemovedTotal.Inc()
	w.WriteHeader(http.StatusNoContent)
}

// handleStatistics handles GET /api/statistics.
func handleStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	therapistID := resolveTherapistID(session, r.URL.Query().Get("therapistId"))
	view, err := projections.QueryStatistics(r.Context(), therapistID, projections.StatisticsDeps{
		Roster: stores.Roster,
		Ledger: stores.Ledger,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleAnalytics handles GET /api/analytics. Admin only.
func handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	view, err := projections.QueryAnalytics(r.Context(), projections.AnalyticsDeps{
		Roster:  stores.Roster,
		Ledger:  stores.Ledger,
		Catalog: stores.Catalog,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleStatements handles POST /api/statements. Admins may send for any
// therapist, therapists only for themselves.
func handleStatements(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var body struct {
		TherapistID string `json:"therapistId"`
		Date        string `json:"date"`
	}
	if err := strictDecode(r, &body); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request")
		return
	}

	input := orchestrators.SendStatementInput{
		TherapistID: resolveTherapistID(session, body.TherapistID),
		Date:        isoDate(body.Date),
	}
	messageID, err := orchestrators.ExecuteSendStatement(r.Context(), input, orchestrators.SendStatementDeps{
		Roster:  stores.Roster,
		Ledger:  stores.Ledger,
		Sender:  emailSender,
		From:    emailFromAddress,
		ReplyTo: emailReplyTo,
	})
	if errors.Is(err, orchestrators.ErrTherapistNotFound) {
		statementsSentTotal.WithLabelValues("rejected").Inc()
		jsonError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		statementsSentTotal.WithLabelValues("error").Inc()
		internalError(w, err)
		return
	}

	statementsSentTotal.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusAccepted, map[string]string{"messageId": messageID})
}

// handlePerformance handles GET /api/performance. Admin only.
func handlePerformance(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	snap := perfCollector.Snapshot(timeNow().Add(-time.Hour), 10)
	writeJSON(w, http.StatusOK, snap)
}

// handleHealth handles GET /healthz.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
