package api

import "time"

// Product is a catalog entry as served by the storefront API.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	OriginalPrice *float64  `json:"original_price,omitempty"`
	Category      string    `json:"category"`
	Brand         string    `json:"brand"`
	Images        []string  `json:"images"`
	Stock         int       `json:"stock"`
	Rating        float64   `json:"rating"`
	ReviewsCount  int       `json:"reviews_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// Image returns the primary product image, or empty when none was uploaded.
func (p Product) Image() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Category is a catalog facet derived server-side from the product set.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Review is a customer review attached to a product.
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	ProductID string    `json:"product_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Address is a shipping address owned by a user profile.
type Address struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
	IsDefault   bool   `json:"is_default"`
}

// User is the authenticated profile returned at login and from the profile
// endpoint.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Addresses []Address `json:"addresses"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// CartItem is the wire shape of one cart mutation: a product reference and
// the requested quantity.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CartLine is one populated line of the fetched cart, with the product
// details the server joined in.
type CartLine struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
}

// Cart is the server-side cart snapshot for the authenticated user.
type Cart struct {
	Items []CartLine `json:"items"`
}

// Line returns the cart line for the given product, if present.
func (c Cart) Line(productID string) (CartLine, bool) {
	for _, line := range c.Items {
		if line.ProductID == productID {
			return line, true
		}
	}
	return CartLine{}, false
}

// OrderItem is a line item snapshot copied into the order at creation time.
// It is not a live reference to the catalog.
type OrderItem struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
}

// Order is an immutable record created from a cart at checkout; only its
// status changes afterwards. The stored totals are trusted as-is and never
// recomputed from the items.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	Items           []OrderItem `json:"items"`
	Subtotal        float64     `json:"subtotal"`
	Shipping        float64     `json:"shipping"`
	Discount        float64     `json:"discount"`
	Total           float64     `json:"total"`
	Status          string      `json:"status"`
	PaymentMethod   string      `json:"payment_method"`
	PaymentStatus   string      `json:"payment_status"`
	ShippingAddress Address     `json:"shipping_address"`
	TrackingID      *string     `json:"tracking_id,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderCreate is the order-creation request. Items carry product id and
// quantity only; unit prices are re-derived server-side and never trusted
// from the client.
type OrderCreate struct {
	Items           []CartItem `json:"items"`
	ShippingAddress Address    `json:"shipping_address"`
	PaymentMethod   string     `json:"payment_method"`
	DiscountCode    string     `json:"discount_code,omitempty"`
}

// ReturnRequest is a user-initiated return of a delivered order.
type ReturnRequest struct {
	ID           string    `json:"id"`
	OrderID      string    `json:"order_id"`
	UserID       string    `json:"user_id"`
	Reason       string    `json:"reason"`
	Status       string    `json:"status"`
	RefundAmount float64   `json:"refund_amount"`
	CreatedAt    time.Time `json:"created_at"`
}

// Analytics is the admin dashboard summary.
type Analytics struct {
	TotalOrders   int     `json:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalProducts int     `json:"total_products"`
	TotalUsers    int     `json:"total_users"`
}

// Session is the credential bundle returned by login and registration.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ProductCreate is the admin payload for creating or replacing a product.
type ProductCreate struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	Category      string   `json:"category"`
	Brand         string   `json:"brand"`
	Images        []string `json:"images"`
	Stock         int      `json:"stock"`
}

// ProductFilter narrows and orders catalog listings.
type ProductFilter struct {
	Category string
	Brand    string
	MinPrice *float64
	MaxPrice *float64
	// Sort is one of "price_low", "price_high", "rating", or empty for
	// newest-first.
	Sort   string
	Search string
}
