package router

import (
	"net/http"

	"pizza-storefront/internal/handler"
	"pizza-storefront/internal/middleware"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Catalog  *handler.CatalogHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Account  *handler.AccountHandler
	Orders   *handler.OrderHandler
	Kitchen  *handler.KitchenHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, staff middleware.StaffVerifier, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Menu
	mux.HandleFunc("GET /api/menu", h.Catalog.Menu)
	mux.HandleFunc("GET /api/categories", h.Catalog.Categories)

	// Cart
	mux.HandleFunc("GET /api/cart", h.Cart.Get)
	mux.HandleFunc("DELETE /api/cart", h.Cart.Clear)
	mux.HandleFunc("PUT /api/cart/open", h.Cart.SetOpen)
	mux.HandleFunc("POST /api/cart/items", h.Cart.AddItem)
	mux.HandleFunc("PUT /api/cart/items/{key}", h.Cart.UpdateItem)
	mux.HandleFunc("DELETE /api/cart/items/{key}", h.Cart.RemoveItem)

	// Delivery and checkout
	mux.HandleFunc("GET /api/delivery/cities", h.Checkout.Cities)
	mux.HandleFunc("GET /api/delivery/quote", h.Checkout.Quote)
	mux.HandleFunc("GET /api/checkout/slots", h.Checkout.Slots)
	mux.HandleFunc("GET /api/checkout/prefill", h.Checkout.Prefill)
	mux.HandleFunc("POST /api/checkout", h.Checkout.Checkout)

	// Customer account
	mux.HandleFunc("POST /api/account/login", h.Account.Login)
	mux.HandleFunc("POST /api/account/register", h.Account.Register)
	mux.HandleFunc("POST /api/account/google", h.Account.Google)
	mux.HandleFunc("POST /api/account/logout", h.Account.Logout)
	mux.HandleFunc("GET /api/session", h.Account.Session)
	mux.HandleFunc("GET /api/account/profile", h.Account.Profile)
	mux.HandleFunc("PUT /api/account/profile", h.Account.UpdateProfile)

	// Order tracker
	mux.HandleFunc("GET /api/orders/today", h.Orders.Today)
	mux.HandleFunc("GET /api/orders/history", h.Orders.History)
	mux.HandleFunc("GET /api/orders/{id}/receipt", h.Orders.Receipt)
	mux.HandleFunc("POST /api/orders/{id}/reorder", h.Orders.Reorder)

	// Staff session
	mux.HandleFunc("POST /api/staff/login", h.Account.StaffLogin)
	mux.HandleFunc("POST /api/staff/logout", h.Account.StaffLogout)

	// Staff only
	staffOnly := middleware.StaffAuth(staff, logger)
	mux.Handle("GET /api/kitchen/orders", staffOnly(http.HandlerFunc(h.Kitchen.Board)))
	mux.Handle("POST /api/kitchen/orders/{id}/{action}", staffOnly(http.HandlerFunc(h.Kitchen.Action)))
	mux.Handle("GET /api/admin/products", staffOnly(http.HandlerFunc(h.Catalog.AdminList)))
	mux.Handle("POST /api/admin/products", staffOnly(http.HandlerFunc(h.Catalog.AdminCreate)))
	mux.Handle("DELETE /api/admin/products/{id}", staffOnly(http.HandlerFunc(h.Catalog.AdminDelete)))
	mux.Handle("PATCH /api/admin/products/{id}/availability", staffOnly(http.HandlerFunc(h.Catalog.AdminToggle)))

	// Apply middleware in order: Recovery -> CorrelationID -> Logging -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.CorrelationID(handler)
	handler = otelhttp.NewHandler(handler, "storefront")
	handler = middleware.Recovery(logger)(handler)

	return handler
}
