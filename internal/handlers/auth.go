package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/DanNess-system/Jardin-Infinito/internal/auth"
	"github.com/DanNess-system/Jardin-Infinito/internal/models"
)

// SessionCookie is the name of the session token cookie.
const SessionCookie = "session"

const sessionMaxAge = 86400 // seconds, matches auth.SessionTTL

type AuthHandler struct {
	Auth         *auth.Service
	CookieSecure bool
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool                `json:"success"`
	User    *models.SessionUser `json:"user,omitempty"`
}

type meResponse struct {
	Success       bool                `json:"success"`
	Authenticated bool                `json:"authenticated"`
	User          *models.SessionUser `json:"user,omitempty"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email == "" || creds.Password == "" {
		respondError(w, http.StatusBadRequest, "Email y contraseña son requeridos")
		return
	}

	user, err := h.Auth.Authenticate(creds.Email, creds.Password)
	if err != nil {
		internalError(w, "Login failed", err)
		return
	}
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}

	token, err := h.Auth.CreateSession(user.ID)
	if err != nil {
		internalError(w, "Failed to create session", err)
		return
	}

	h.setSessionCookie(w, token, sessionMaxAge)
	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		User:    &models.SessionUser{ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role},
	})
}

// Logout handles POST /api/auth/logout. Deleting an already-dead session is
// fine; the cookie is cleared either way.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		if err := h.Auth.DeleteSession(cookie.Value); err != nil {
			internalError(w, "Logout failed", err)
			return
		}
	}
	h.setSessionCookie(w, "", -1)
	respondMessage(w, http.StatusOK, "Sesión cerrada exitosamente")
}

// Me handles GET /api/auth/me. Always 200 for the unauthenticated case so
// the panel can probe without tripping error handling.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		writeJSON(w, http.StatusOK, meResponse{})
		return
	}

	user, err := h.Auth.VerifySession(cookie.Value)
	if err != nil {
		internalError(w, "Session lookup failed", err)
		return
	}
	if user == nil {
		writeJSON(w, http.StatusOK, meResponse{})
		return
	}

	writeJSON(w, http.StatusOK, meResponse{Success: true, Authenticated: true, User: user})
}

// RequireSession guards mutating API routes: a missing cookie is 401, an
// unknown or expired token is 401, and only a live session passes through.
func (h *AuthHandler) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil || cookie.Value == "" {
			respondError(w, http.StatusUnauthorized, "No autorizado")
			return
		}

		user, err := h.Auth.VerifySession(cookie.Value)
		if err != nil {
			internalError(w, "Session lookup failed", err)
			return
		}
		if user == nil {
			respondError(w, http.StatusUnauthorized, "Sesión inválida")
			return
		}

		next(w, r)
	}
}

// CurrentUser resolves the request's session, if any. (nil, nil) means
// anonymous.
func (h *AuthHandler) CurrentUser(r *http.Request) (*models.SessionUser, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}
	return h.Auth.VerifySession(cookie.Value)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}
