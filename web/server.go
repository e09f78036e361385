// Package web serves the supervisor dashboard: login, reference record and
// hour entry forms, and the CSV export.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"hourdesk/auth"
	"hourdesk/output"
	"hourdesk/storage"
	"hourdesk/timesheet"
)

//go:embed templates/*.html
var templateFS embed.FS

const sessionCookieName = "hourdesk_session"

type Server struct {
	store    *storage.SQLiteStore
	sessions *auth.SessionStore
	mux      *http.ServeMux
}

func NewServer(store *storage.SQLiteStore, sessions *auth.SessionStore) http.Handler {
	server := &Server{
		store:    store,
		sessions: sessions,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /login", server.handleLoginForm)
	mux.HandleFunc("POST /login", server.handleLogin)
	mux.HandleFunc("GET /logout", server.requireSupervisor(server.handleLogout))
	mux.HandleFunc("GET /{$}", server.requireSupervisor(server.handleDashboard))
	mux.HandleFunc("POST /{$}", server.requireSupervisor(server.handleDashboardPost))
	mux.HandleFunc("GET /export", server.requireSupervisor(server.handleExport))
	server.mux = mux

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// requireSupervisor is the gate in front of every protected route: a valid
// signed cookie, an unexpired session, and the supervisor role. Anything
// else redirects to the login form; a redirect, not an error, is the
// designed failure path for unauthorized access.
func (s *Server) requireSupervisor(next func(http.ResponseWriter, *http.Request, auth.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		session, ok := s.sessions.Lookup(cookie.Value)
		if !ok || session.Role != timesheet.RoleSupervisor {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next(w, r, session)
	}
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.renderLogin(w, "")
}

// handleLogin checks the credential and issues a fresh session token. The
// failure message is identical for unknown username and wrong password.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	user, found, err := s.store.GetUserByUsername(username)
	if err != nil {
		s.renderLogin(w, "Login is temporarily unavailable")
		return
	}
	if !found || !auth.CheckPassword(user.PasswordHash, password) {
		s.renderLogin(w, "Invalid credentials")
		return
	}

	cookieValue, err := s.sessions.Create(user.Username, user.Role)
	if err != nil {
		s.renderLogin(w, "Login is temporarily unavailable")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    cookieValue,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, _ auth.Session) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		s.sessions.Destroy(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request, session auth.Session) {
	people, teams, projects, hours, err := s.loadAll()
	if err != nil {
		http.Error(w, "failed to load records", http.StatusInternalServerError)
		return
	}

	flash := ""
	if cookie, cookieErr := r.Cookie(sessionCookieName); cookieErr == nil {
		flash = s.sessions.PopFlash(cookie.Value)
	}

	view := BuildDashboardView(session.Username, flash, people, teams, projects, hours)
	if err := renderTemplate(w, "dashboard.html", view); err != nil {
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
	}
}

// handleDashboardPost dispatches on the kind field, validates, persists, and
// always redirects back to the dashboard (redirect-after-post). A failed
// write is discarded and reported through the flash message; the session is
// untouched either way.
func (s *Server) handleDashboardPost(w http.ResponseWriter, r *http.Request, _ auth.Session) {
	var message string

	switch kind := r.FormValue("kind"); kind {
	case "person":
		message = s.createPerson(r)
	case "team":
		message = s.createTeam(r)
	case "project":
		message = s.createProject(r)
	case "hour":
		message = s.createHour(r)
	default:
		message = fmt.Sprintf("Unknown form kind %q", kind)
	}

	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		s.sessions.SetFlash(cookie.Value, message)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) createPerson(r *http.Request) string {
	person, err := timesheet.NewPerson(r.FormValue("name"), r.FormValue("class"))
	if err != nil {
		return userMessage(err)
	}
	if _, err := s.store.InsertPerson(person); err != nil {
		return userMessage(err)
	}
	return fmt.Sprintf("Person %s added", person.Name)
}

func (s *Server) createTeam(r *http.Request) string {
	team, err := timesheet.NewTeam(r.FormValue("code"), r.FormValue("desc"))
	if err != nil {
		return userMessage(err)
	}
	if _, err := s.store.InsertTeam(team); err != nil {
		return userMessage(err)
	}
	return fmt.Sprintf("Team %s added", team.Code)
}

func (s *Server) createProject(r *http.Request) string {
	project, err := timesheet.NewProject(r.FormValue("number"), r.FormValue("client"), r.FormValue("desc"))
	if err != nil {
		return userMessage(err)
	}
	if _, err := s.store.InsertProject(project); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return fmt.Sprintf("Project number %d already exists", project.Number)
		}
		return userMessage(err)
	}
	return fmt.Sprintf("Project %d added", project.Number)
}

func (s *Server) createHour(r *http.Request) string {
	hour, err := timesheet.NewHour(
		r.FormValue("date"),
		r.FormValue("person_id"),
		r.FormValue("team_id"),
		r.FormValue("project_id"),
		r.FormValue("entry"),
		r.FormValue("exit"),
	)
	if err != nil {
		return userMessage(err)
	}
	if _, err := s.store.InsertHour(hour); err != nil {
		return userMessage(err)
	}
	return fmt.Sprintf("Logged %.2f hours on %s", hour.WorkedHours, hour.Date)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, _ auth.Session) {
	people, teams, projects, hours, err := s.loadAll()
	if err != nil {
		http.Error(w, "failed to load records", http.StatusInternalServerError)
		return
	}

	rows := output.BuildRows(hours, people, teams, projects)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="hours.csv"`)

	writer := &output.CSVWriter{}
	_ = writer.WriteTo(w, rows)
}

func (s *Server) loadAll() ([]timesheet.Person, []timesheet.Team, []timesheet.Project, []timesheet.Hour, error) {
	people, err := s.store.ListPeople()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	teams, err := s.store.ListTeams()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	projects, err := s.store.ListProjects()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	hours, err := s.store.ListHours()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return people, teams, projects, hours, nil
}

// userMessage maps an error to the single line shown to the user. Raw
// storage detail stays out of the page.
func userMessage(err error) string {
	var vErr *timesheet.ValidationError
	switch {
	case errors.As(err, &vErr):
		return "Invalid " + vErr.Field + ": " + vErr.Reason
	case errors.Is(err, storage.ErrUnknownReference):
		return "Referenced record does not exist, nothing was saved"
	case errors.Is(err, storage.ErrConflict):
		return "Record already exists, nothing was saved"
	default:
		return "Storage failure, nothing was saved"
	}
}

func (s *Server) renderLogin(w http.ResponseWriter, errorMessage string) {
	view := loginView{Title: "hourdesk - login", Error: errorMessage}
	if err := renderTemplate(w, "login.html", view); err != nil {
		http.Error(w, "failed to render login form", http.StatusInternalServerError)
	}
}

func renderTemplate(w http.ResponseWriter, pageTemplate string, data any) error {
	tmpl, err := template.New("base.html").Funcs(template.FuncMap{
		"fmtHours": func(value float64) string {
			return fmt.Sprintf("%.2f", value)
		},
	}).ParseFS(templateFS, "templates/base.html", "templates/"+pageTemplate)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", pageTemplate, err)
	}
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("render template %s: %w", pageTemplate, err)
	}
	return nil
}
