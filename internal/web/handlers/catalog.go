package handlers

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/buysphere/storefront/internal/api"
	"github.com/buysphere/storefront/internal/content"
	"github.com/buysphere/storefront/internal/web/session"
)

const featuredLimit = 8

type homeView struct {
	Featured   []api.Product
	Categories []api.Category
}

// Home shows the newest products and the category facets.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	products, err := h.api.Products(r.Context(), api.ProductFilter{})
	if err != nil {
		h.fail(w, r, err, "/products")
		return
	}
	if len(products) > featuredLimit {
		products = products[:featuredLimit]
	}

	categories, err := h.api.Categories(r.Context())
	if err != nil {
		h.fail(w, r, err, "/products")
		return
	}

	h.render(w, r, http.StatusOK, "home", "BuySphere", homeView{
		Featured:   products,
		Categories: categories,
	})
}

type productsView struct {
	Products   []api.Product
	Categories []api.Category
	Filter     api.ProductFilter
	Query      string
}

// Products lists the catalog with the query-string filters applied.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)

	products, err := h.api.Products(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}
	categories, err := h.api.Categories(r.Context())
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}

	h.render(w, r, http.StatusOK, "products", "Products", productsView{
		Products:   products,
		Categories: categories,
		Filter:     filter,
		Query:      r.URL.RawQuery,
	})
}

func filterFromQuery(r *http.Request) api.ProductFilter {
	q := r.URL.Query()
	filter := api.ProductFilter{
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
		Sort:     q.Get("sort"),
		Search:   strings.TrimSpace(q.Get("search")),
	}
	if v, err := strconv.ParseFloat(q.Get("min_price"), 64); err == nil {
		filter.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(q.Get("max_price"), 64); err == nil {
		filter.MaxPrice = &v
	}
	return filter
}

type productView struct {
	Product     api.Product
	Description template.HTML
	Reviews     []api.Review
	InStock     bool
}

// ProductDetail shows one product with its reviews. The markdown description
// is rendered and sanitized before it reaches the template.
func (h *Handler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	product, err := h.api.Product(r.Context(), productID)
	if err != nil {
		if api.IsNotFound(err) {
			h.NotFound(w, r)
			return
		}
		h.fail(w, r, err, "/products")
		return
	}

	description, err := content.RenderMarkdown(product.Description)
	if err != nil {
		description = template.HTML(template.HTMLEscapeString(product.Description))
	}

	reviews, err := h.api.Reviews(r.Context(), productID)
	if err != nil {
		h.fail(w, r, err, "/products")
		return
	}

	h.render(w, r, http.StatusOK, "product", product.Name, productView{
		Product:     product,
		Description: description,
		Reviews:     reviews,
		InStock:     product.Stock > 0,
	})
}

// SubmitReview posts a product review and returns to the product page.
func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	back := "/products/" + productID

	rating, err := strconv.Atoi(r.FormValue("rating"))
	if err != nil || rating < 1 || rating > 5 {
		session.Get(r).SetFlash("Rating must be between 1 and 5.")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	if err := h.api.SubmitReview(r.Context(), productID, rating, strings.TrimSpace(r.FormValue("comment"))); err != nil {
		h.fail(w, r, err, back)
		return
	}

	session.Get(r).SetFlash("Thanks for your review.")
	http.Redirect(w, r, back, http.StatusSeeOther)
}
