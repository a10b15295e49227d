package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/buysphere/storefront/internal/api"
	"github.com/buysphere/storefront/internal/order"
	"github.com/buysphere/storefront/internal/web/session"
)

type adminDashboardView struct {
	Analytics api.Analytics
}

// AdminDashboard shows the back-office summary counters.
func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.api.AdminAnalytics(r.Context())
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}
	h.render(w, r, http.StatusOK, "admin_dashboard", "Admin", adminDashboardView{Analytics: analytics})
}

type adminProductsView struct {
	Products []api.Product
}

// AdminProducts lists the catalog with the create form.
func (h *Handler) AdminProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.api.Products(r.Context(), api.ProductFilter{})
	if err != nil {
		h.fail(w, r, err, "/admin")
		return
	}
	h.render(w, r, http.StatusOK, "admin_products", "Admin · Products", adminProductsView{Products: products})
}

// AdminProductCreate adds a catalog product from the posted form.
func (h *Handler) AdminProductCreate(w http.ResponseWriter, r *http.Request) {
	req, err := productFromForm(r)
	if err != nil {
		session.Get(r).SetFlash(err.Error())
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	if _, err := h.api.AdminCreateProduct(r.Context(), req); err != nil {
		h.fail(w, r, err, "/admin/products")
		return
	}
	session.Get(r).SetFlash("Product created.")
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// AdminProductUpdate replaces a product's editable fields.
func (h *Handler) AdminProductUpdate(w http.ResponseWriter, r *http.Request) {
	req, err := productFromForm(r)
	if err != nil {
		session.Get(r).SetFlash(err.Error())
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	if err := h.api.AdminUpdateProduct(r.Context(), chi.URLParam(r, "id"), req); err != nil {
		h.fail(w, r, err, "/admin/products")
		return
	}
	session.Get(r).SetFlash("Product updated.")
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// AdminProductDelete removes a product from the catalog.
func (h *Handler) AdminProductDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.api.AdminDeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err, "/admin/products")
		return
	}
	session.Get(r).SetFlash("Product deleted.")
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

type adminOrdersView struct {
	Orders []api.Order
	// Statuses offered in the reassignment dropdown: the linear stages plus
	// the side states.
	Statuses []order.Status
}

// AdminOrders lists every order with the status-reassignment control.
func (h *Handler) AdminOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.api.AdminOrders(r.Context())
	if err != nil {
		h.fail(w, r, err, "/admin")
		return
	}
	statuses := append(order.Progression(), order.StatusCancelled, order.StatusReturnRequested)
	h.render(w, r, http.StatusOK, "admin_orders", "Admin · Orders", adminOrdersView{
		Orders:   orders,
		Statuses: statuses,
	})
}

// AdminOrderStatus reassigns an order's status. Reassignment is free-form so
// operators can also pull a cancelled order back into the flow.
func (h *Handler) AdminOrderStatus(w http.ResponseWriter, r *http.Request) {
	status := r.FormValue("status")
	if status == "" {
		session.Get(r).SetFlash("Choose a status.")
		http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
		return
	}

	if err := h.api.AdminUpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), status); err != nil {
		h.fail(w, r, err, "/admin/orders")
		return
	}
	session.Get(r).SetFlash("Order status updated.")
	http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
}

// AdminSeed loads the demo dataset into the backend.
func (h *Handler) AdminSeed(w http.ResponseWriter, r *http.Request) {
	if err := h.api.Seed(r.Context()); err != nil {
		h.fail(w, r, err, "/admin")
		return
	}
	session.Get(r).SetFlash("Demo data seeded.")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func productFromForm(r *http.Request) (api.ProductCreate, error) {
	req := api.ProductCreate{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: r.FormValue("description"),
		Category:    strings.TrimSpace(r.FormValue("category")),
		Brand:       strings.TrimSpace(r.FormValue("brand")),
	}
	if req.Name == "" || req.Category == "" {
		return api.ProductCreate{}, errInvalidProductForm
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price < 0 {
		return api.ProductCreate{}, errInvalidProductForm
	}
	req.Price = price

	if raw := strings.TrimSpace(r.FormValue("original_price")); raw != "" {
		original, err := strconv.ParseFloat(raw, 64)
		if err != nil || original < 0 {
			return api.ProductCreate{}, errInvalidProductForm
		}
		req.OriginalPrice = &original
	}

	stock, err := strconv.Atoi(r.FormValue("stock"))
	if err != nil || stock < 0 {
		return api.ProductCreate{}, errInvalidProductForm
	}
	req.Stock = stock

	for _, image := range strings.Split(r.FormValue("images"), "\n") {
		if image = strings.TrimSpace(image); image != "" {
			req.Images = append(req.Images, image)
		}
	}
	return req, nil
}

var errInvalidProductForm = validationMessage("Name, category, a non-negative price, and stock are required.")

type validationMessage string

func (m validationMessage) Error() string { return string(m) }
