package handler

import (
	"net/http"

	"github.com/mmeshcher/linkedin-collector/internal/form"
)

type formPage struct {
	UserEmail string
	Counts    []int
}

func (h *Handler) IndexHandler(rw http.ResponseWriter, r *http.Request) {
	http.Redirect(rw, r, "/login", http.StatusFound)
}

func (h *Handler) LoginPageHandler(rw http.ResponseWriter, r *http.Request) {
	h.render(rw, "login.html", nil)
}

func (h *Handler) FormPageHandler(rw http.ResponseWriter, r *http.Request) {
	sess := h.currentSession(r)
	if !sess.Data.LoggedIn {
		http.Redirect(rw, r, "/login", http.StatusFound)
		return
	}

	h.render(rw, "form.html", formPage{
		UserEmail: sess.Data.UserEmail,
		Counts:    form.CountChoices,
	})
}
