package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"shopfront/internal/render"
	"shopfront/internal/session"
	"shopfront/internal/store"
)

// Auth groups registration, login, and logout handlers.
type Auth struct {
	renderer *render.Renderer
	sessions *session.Store
	users    *store.UserStore
	profiles *store.ProfileStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, sessions *session.Store, users *store.UserStore, profiles *store.ProfileStore) *Auth {
	return &Auth{
		renderer: renderer,
		sessions: sessions,
		users:    users,
		profiles: profiles,
	}
}

// RegisterPage renders the registration form.
func (a *Auth) RegisterPage(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "register", &render.PageData{
		Title: "Register",
		Data:  map[string]any{"Username": "", "Email": ""},
	})
}

// RegisterSubmit processes the registration form. On success the new user
// gets an empty profile eagerly and is redirected to the login page; no
// auto-login. On validation failure the form is redisplayed with
// field-level errors and the entered username/email (never the password).
func (a *Auth) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	errs := validateRegistration(username, email, password)

	if len(errs) == 0 {
		existing, err := a.users.FindByUsername(username)
		if err != nil {
			slog.Error("registration lookup failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if existing != nil {
			errs = append(errs, "That username is already taken.")
		}
	}

	if len(errs) > 0 {
		a.renderer.Page(w, r, "register", &render.PageData{
			Title:  "Register",
			Errors: errs,
			Data:   map[string]any{"Username": username, "Email": email},
		})
		return
	}

	user, err := a.users.Create(username, email, password)
	if err != nil {
		// The unique constraint can still fire if a concurrent request
		// registered the same username after our lookup.
		slog.Error("registration create failed", "username", username, "error", err)
		a.renderer.Page(w, r, "register", &render.PageData{
			Title:  "Register",
			Errors: []string{"That username is already taken."},
			Data:   map[string]any{"Username": username, "Email": email},
		})
		return
	}

	if _, err := a.profiles.GetOrCreate(user.ID); err != nil {
		slog.Error("profile create failed", "user_id", user.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	slog.Info("user registered", "username", username)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	// Already signed in: skip straight to the dashboard.
	if sess := sessionFrom(r); sess != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "login", &render.PageData{
		Title: "Sign In",
		Data:  map[string]any{"Username": ""},
	})
}

// LoginSubmit processes the login form.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	user, err := a.users.FindByUsername(username)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		a.renderer.Page(w, r, "login", &render.PageData{
			Title:  "Sign In",
			Errors: []string{"An unexpected error occurred."},
			Data:   map[string]any{"Username": username},
		})
		return
	}

	if user == nil || !a.users.CheckPassword(user, password) {
		a.renderer.Page(w, r, "login", &render.PageData{
			Title:  "Sign In",
			Errors: []string{"Invalid username or password."},
			Data:   map[string]any{"Username": username},
		})
		return
	}

	if _, err := a.sessions.Create(r.Context(), w, &session.Data{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}); err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout destroys the session and returns to the home page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
