package handlers

import (
	"net/http"
)

// AdminHandler serves the server-rendered admin panel pages. The panel's
// data all flows through the JSON API; these pages only ship the shell.
type AdminHandler struct {
	Auth      *AuthHandler
	Templates *TemplateCache
}

// LoginPage handles GET /login. An already-authenticated visitor goes
// straight to the panel.
func (h *AdminHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if user, err := h.Auth.CurrentUser(r); err == nil && user != nil {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	tmpl := h.Templates.Get("login.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, nil)
}

// Panel handles GET /admin, which requires a live session.
func (h *AdminHandler) Panel(w http.ResponseWriter, r *http.Request) {
	user, err := h.Auth.CurrentUser(r)
	if err != nil || user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	tmpl := h.Templates.Get("admin.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, map[string]interface{}{
		"User": user,
	})
}
