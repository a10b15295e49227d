// Package handlers renders the storefront's pages and translates form posts
// into calls against the storefront API.
package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/buysphere/storefront/internal/api"
	"github.com/buysphere/storefront/internal/cart"
	"github.com/buysphere/storefront/internal/checkout"
	"github.com/buysphere/storefront/internal/content"
	"github.com/buysphere/storefront/internal/platform/observability"
	"github.com/buysphere/storefront/internal/web/session"
)

// Deps bundles the handler set's collaborators.
type Deps struct {
	API      *api.Client
	Content  *content.Library
	Renderer *Renderer
	Logger   *zap.Logger
}

// Handler carries the shared dependencies of every page handler.
type Handler struct {
	api      *api.Client
	content  *content.Library
	renderer *Renderer
	logger   *zap.Logger
	checkout *checkout.Orchestrator
}

// New wires the handler set.
func New(deps Deps) (*Handler, error) {
	if deps.API == nil {
		return nil, errors.New("handlers: api client is required")
	}
	if deps.Content == nil {
		return nil, errors.New("handlers: content library is required")
	}
	if deps.Renderer == nil {
		return nil, errors.New("handlers: renderer is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	orch, err := checkout.New(checkout.Deps{Orders: deps.API, Logger: logger})
	if err != nil {
		return nil, err
	}
	return &Handler{
		api:      deps.API,
		content:  deps.Content,
		renderer: deps.Renderer,
		logger:   logger,
		checkout: orch,
	}, nil
}

// cartModel builds a fresh cart model over the API client. The model is
// per-request; the server-side cart is the authority between requests.
func (h *Handler) cartModel() *cart.Model {
	model, err := cart.NewModel(h.api, h.api)
	if err != nil {
		// Both deps are the non-nil API client, so this cannot happen.
		panic(err)
	}
	return model
}

// fail routes an error to the right place: unauthenticated sessions go to
// login, everything else becomes a flash message on the fallback page.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if errors.Is(err, api.ErrUnauthenticated) {
		sess := session.Get(r)
		if sess.SignedIn() {
			sess.SignOut()
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	observability.FromContext(r.Context()).Warn("request failed",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	session.Get(r).SetFlash(api.UserMessage(err))
	http.Redirect(w, r, fallback, http.StatusSeeOther)
}

// NotFound renders the storefront's 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "notfound", "Page Not Found", nil)
}

// safeNext keeps post-login redirects on-site.
func safeNext(raw string) string {
	if raw == "" {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return u.RequestURI()
}
