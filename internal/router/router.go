package router

import (
	"net/http"

	"cardaloom/internal/auth"
	"cardaloom/internal/handler"
	"cardaloom/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth    *handler.AuthHandler
	Tenant  *handler.TenantHandler
	Catalog *handler.CatalogHandler
	Billing *handler.BillingHandler
	Webhook *handler.WebhookHandler
	Upload  *handler.UploadHandler
	Public  *handler.PublicHandler
}

// New creates the HTTP router with all routes and middleware configured.
// Routes under /api except auth, webhooks and public require a bearer token;
// uploaded images are served statically from uploadDir.
func New(h Handlers, tokens *auth.TokenManager, uploadDir string, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.HandleFunc("POST /api/auth/signup", h.Auth.Signup)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)

	mux.HandleFunc("POST /api/webhooks/billing", h.Webhook.Handle)

	mux.HandleFunc("GET /api/public/menu", h.Public.Menu)
	mux.HandleFunc("POST /api/public/order-message", h.Public.OrderMessage)

	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	// Authenticated routes share one sub-mux behind the bearer-token middleware.
	authed := http.NewServeMux()

	authed.HandleFunc("GET /api/tenant", h.Tenant.Get)
	authed.HandleFunc("PUT /api/tenant", h.Tenant.Update)

	authed.HandleFunc("POST /api/categories", h.Catalog.CreateCategory)
	authed.HandleFunc("GET /api/categories", h.Catalog.ListCategories)
	authed.HandleFunc("PUT /api/categories/{id}", h.Catalog.UpdateCategory)
	authed.HandleFunc("DELETE /api/categories/{id}", h.Catalog.DeleteCategory)

	authed.HandleFunc("POST /api/addons", h.Catalog.CreateAddon)
	authed.HandleFunc("GET /api/addons", h.Catalog.ListAddons)
	authed.HandleFunc("PUT /api/addons/{id}", h.Catalog.UpdateAddon)
	authed.HandleFunc("DELETE /api/addons/{id}", h.Catalog.DeleteAddon)

	authed.HandleFunc("POST /api/products", h.Catalog.CreateProduct)
	authed.HandleFunc("GET /api/products", h.Catalog.ListProducts)
	authed.HandleFunc("PUT /api/products/{id}", h.Catalog.UpdateProduct)
	authed.HandleFunc("DELETE /api/products/{id}", h.Catalog.DeleteProduct)

	authed.HandleFunc("POST /api/images", h.Upload.Upload)
	authed.HandleFunc("GET /api/images", h.Upload.List)
	authed.HandleFunc("DELETE /api/images/{id}", h.Upload.Delete)

	authed.HandleFunc("POST /api/billing/session", h.Billing.StartSession)
	authed.HandleFunc("POST /api/billing/sync", h.Billing.Sync)
	authed.HandleFunc("POST /api/billing/cancel", h.Billing.Cancel)
	authed.HandleFunc("GET /api/billing/invoices", h.Billing.ListInvoices)

	mux.Handle("/api/", middleware.BearerAuth(tokens, logger)(authed))

	// Apply middleware in order: Recovery -> Logging -> CORS
	var root http.Handler = mux
	root = middleware.CORS(root)
	root = middleware.Logging(logger)(root)
	root = middleware.Recovery(logger)(root)

	return root
}
