// Command web serves the BuySphere storefront: a server-rendered front-end
// over the storefront REST API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/buysphere/storefront/internal/api"
	"github.com/buysphere/storefront/internal/content"
	"github.com/buysphere/storefront/internal/platform/config"
	"github.com/buysphere/storefront/internal/platform/observability"
	"github.com/buysphere/storefront/internal/web/handlers"
	"github.com/buysphere/storefront/internal/web/middleware"
	"github.com/buysphere/storefront/internal/web/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "web: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client := api.NewClient(cfg.API.BaseURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		api.WithTokenSource(api.TokenSourceFunc(session.TokenFromContext)),
	)

	pages, err := content.Load(cfg.Content.PagesFile)
	if err != nil {
		return fmt.Errorf("load content pages: %w", err)
	}

	renderer, err := handlers.NewRenderer(cfg.Content.TemplatesDir, cfg.Dev)
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	h, err := handlers.New(handlers.Deps{
		API:      client,
		Content:  pages,
		Renderer: renderer,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	sessions, err := session.NewManager(cfg.Session)
	if err != nil {
		return err
	}

	router := newRouter(h, sessions, logger, cfg.Content.PublicDir)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("storefront listening",
			zap.String("addr", srv.Addr),
			zap.String("api", cfg.API.BaseURL),
			zap.Bool("dev", cfg.Dev),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRouter(h *handlers.Handler, sessions *session.Manager, logger *zap.Logger, publicDir string) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5))
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	assets := http.StripPrefix("/assets/", http.FileServer(http.Dir(filepath.Join(publicDir, "assets"))))
	r.Handle("/assets/*", assets)

	r.Group(func(r chi.Router) {
		r.Use(sessions.Middleware)

		r.Get("/", h.Home)
		r.Get("/products", h.Products)
		r.Get("/products/{id}", h.ProductDetail)
		r.Get("/pages/{slug}", h.ContentPage)

		r.Get("/login", h.LoginForm)
		r.Post("/login", h.Login)
		r.Get("/register", h.RegisterForm)
		r.Post("/register", h.Register)
		r.Post("/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Post("/products/{id}/reviews", h.SubmitReview)

			r.Get("/cart", h.CartView)
			r.Post("/cart/add", h.CartAdd)
			r.Post("/cart/update/{productID}", h.CartUpdate)
			r.Post("/cart/remove/{productID}", h.CartRemove)
			r.Post("/cart/clear", h.CartClear)
			r.Post("/cart/coupon", h.CartApplyCoupon)

			r.Get("/checkout", h.CheckoutForm)
			r.Post("/checkout", h.CheckoutPlace)

			r.Get("/orders", h.Orders)
			r.Get("/orders/{id}", h.OrderDetail)
			r.Post("/orders/{id}/return", h.ReturnCreate)

			r.Get("/wishlist", h.Wishlist)
			r.Post("/wishlist/add/{productID}", h.WishlistAdd)
			r.Post("/wishlist/remove/{productID}", h.WishlistRemove)

			r.Get("/profile", h.Profile)
			r.Post("/profile", h.ProfileUpdate)
			r.Post("/profile/address", h.AddressAdd)
			r.Post("/profile/address/{id}/delete", h.AddressDelete)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(h.NotFound))

			r.Get("/", h.AdminDashboard)
			r.Get("/products", h.AdminProducts)
			r.Post("/products", h.AdminProductCreate)
			r.Post("/products/{id}", h.AdminProductUpdate)
			r.Post("/products/{id}/delete", h.AdminProductDelete)
			r.Get("/orders", h.AdminOrders)
			r.Post("/orders/{id}/status", h.AdminOrderStatus)
			r.Post("/seed", h.AdminSeed)
		})

		r.NotFound(h.NotFound)
	})

	return r
}
