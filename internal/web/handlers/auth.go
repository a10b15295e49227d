package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/buysphere/storefront/internal/api"
	"github.com/buysphere/storefront/internal/web/session"
)

type loginView struct {
	Next  string
	Email string
}

// LoginForm renders the sign-in page.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if session.Get(r).SignedIn() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, "login", "Sign In", loginView{Next: safeNext(r.URL.Query().Get("next"))})
}

// Login exchanges the posted credentials for a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	next := safeNext(r.FormValue("next"))

	if email == "" || password == "" {
		session.Get(r).SetFlash("Email and password are required.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	remote, err := h.api.Login(r.Context(), email, password)
	if err != nil {
		session.Get(r).SetFlash(api.UserMessage(err))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	session.Get(r).SignIn(remote.Token, remote.User.ID, remote.User.Name, remote.User.IsAdmin)
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// RegisterForm renders the account-creation page.
func (h *Handler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if session.Get(r).SignedIn() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, "register", "Create Account", nil)
}

// Register creates the account and signs the new user in.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	req := api.RegisterRequest{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
		Name:     strings.TrimSpace(r.FormValue("name")),
		Phone:    strings.TrimSpace(r.FormValue("phone")),
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		session.Get(r).SetFlash("Name, email, and password are required.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	remote, err := h.api.Register(r.Context(), req)
	if err != nil {
		session.Get(r).SetFlash(api.UserMessage(err))
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	session.Get(r).SignIn(remote.Token, remote.User.ID, remote.User.Name, remote.User.IsAdmin)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout drops the credential and returns to the home page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session.Get(r).SignOut()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type profileView struct {
	User    api.User
	Returns []api.ReturnRequest
}

// Profile shows the account page: contact details, addresses, and return
// requests.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.api.Profile(r.Context())
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}
	returns, err := h.api.Returns(r.Context())
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}
	h.render(w, r, http.StatusOK, "profile", "My Account", profileView{User: user, Returns: returns})
}

// ProfileUpdate saves the display name and phone number.
func (h *Handler) ProfileUpdate(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	phone := strings.TrimSpace(r.FormValue("phone"))
	if name == "" {
		session.Get(r).SetFlash("Name is required.")
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	if err := h.api.UpdateProfile(r.Context(), name, phone); err != nil {
		h.fail(w, r, err, "/profile")
		return
	}

	sess := session.Get(r)
	sess.UserName = name
	sess.MarkDirty()
	sess.SetFlash("Profile updated.")
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// AddressAdd appends a shipping address to the profile.
func (h *Handler) AddressAdd(w http.ResponseWriter, r *http.Request) {
	address := api.Address{
		FullName:    strings.TrimSpace(r.FormValue("full_name")),
		Phone:       strings.TrimSpace(r.FormValue("phone")),
		AddressLine: strings.TrimSpace(r.FormValue("address_line")),
		City:        strings.TrimSpace(r.FormValue("city")),
		State:       strings.TrimSpace(r.FormValue("state")),
		Pincode:     strings.TrimSpace(r.FormValue("pincode")),
		IsDefault:   r.FormValue("is_default") == "on",
	}
	if address.FullName == "" || address.AddressLine == "" || address.City == "" || address.Pincode == "" {
		session.Get(r).SetFlash("Name, address, city, and pincode are required.")
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	if err := h.api.AddAddress(r.Context(), address); err != nil {
		h.fail(w, r, err, "/profile")
		return
	}

	session.Get(r).SetFlash("Address added.")
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// AddressDelete removes an address from the profile.
func (h *Handler) AddressDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.api.DeleteAddress(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err, "/profile")
		return
	}
	session.Get(r).SetFlash("Address removed.")
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}
