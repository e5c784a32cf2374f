package router

import (
	"net/http"
	"os"
	"strings"

	"tripbudget/internal/api/v1/handler"
	"tripbudget/internal/config"
	"tripbudget/internal/middleware"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// Handlers groups everything the v1 API serves.
type Handlers struct {
	Credit        *handler.CreditHandler
	Referral      *handler.ReferralHandler
	Purchase      *handler.PurchaseHandler
	DLQ           *handler.DLQHandler
	Health        *handler.HealthHandler
	StripeWebhook http.HandlerFunc
}

// Middlewares are the per-audience authentication layers.
type Middlewares struct {
	Auth       func(http.Handler) http.Handler
	PubSubAuth func(http.Handler) http.Handler
	AdminAuth  func(http.Handler) http.Handler
}

// New builds the root handler: the Huma API mounted under /v1 behind CORS and request logging.
func New(cfg *config.Config, h Handlers, m Middlewares, logger zerolog.Logger) http.Handler {
	chiRouter, api := SetupHumaAPI(cfg, h, m, logger)
	RegisterRoutes(api, h, logger)

	mux := http.NewServeMux()
	mux.Handle("/v1/", http.StripPrefix("/v1", chiRouter))

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(logger)(c.Handler(mux))
}

func isPublicPath(path string) bool {
	switch {
	case path == "/docs", path == "/healthz", path == "/webhooks/stripe":
		return true
	case strings.HasPrefix(path, "/openapi"), strings.HasPrefix(path, "/schemas"):
		return true
	}
	return false
}

// SetupHumaAPI creates a Huma API instance on a chi router and picks the
// authentication layer for each request by path.
func SetupHumaAPI(cfg *config.Config, h Handlers, m Middlewares, logger zerolog.Logger) (*chi.Mux, huma.API) {
	chiRouter := chi.NewRouter()

	chiRouter.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			switch {
			case isPublicPath(path):
				next.ServeHTTP(w, r)
			case path == "/dlq/record":
				m.PubSubAuth(next).ServeHTTP(w, r)
			case strings.HasPrefix(path, "/admin/"):
				m.AdminAuth(next).ServeHTTP(w, r)
			default:
				m.Auth(next).ServeHTTP(w, r)
			}
		})
	})

	version := os.Getenv("GIT_COMMIT_SHA")
	if version == "" {
		version = "development"
	}

	humaConfig := huma.DefaultConfig("Trip Budget API v1", version)
	humaConfig.Info.Description = "Message credits, referrals and credit pack purchases"
	humaConfig.Servers = []*huma.Server{{URL: cfg.APIBaseURL}}

	api := humachi.New(chiRouter, humaConfig)

	// Stripe signs the raw body, so the webhook bypasses Huma's decoding.
	chiRouter.Post("/webhooks/stripe", h.StripeWebhook)

	logger.Info().Str("version", version).Msg("Huma API initialized for /v1")
	return chiRouter, api
}

// RegisterRoutes registers all Huma operations
func RegisterRoutes(api huma.API, h Handlers, logger zerolog.Logger) {
	// ========== CREDIT OPERATIONS ==========
	huma.Register(api, huma.Operation{
		OperationID: "getCredits",
		Method:      http.MethodGet,
		Path:        "/credits/me",
		Summary:     "Get message balance",
		Description: "Returns the caller's remaining messages, granting the initial allowance on first access",
		Tags:        []string{"credits"},
	}, h.Credit.GetCredits)

	huma.Register(api, huma.Operation{
		OperationID: "checkCredits",
		Method:      http.MethodGet,
		Path:        "/credits/me/check",
		Summary:     "Check message balance",
		Description: "Reports whether the caller can afford the required number of messages",
		Tags:        []string{"credits"},
	}, h.Credit.CheckCredits)

	huma.Register(api, huma.Operation{
		OperationID: "chargeCredits",
		Method:      http.MethodPost,
		Path:        "/credits/me/charge",
		Summary:     "Charge messages",
		Description: "Debits the caller only if the balance covers the amount; responds 402 otherwise",
		Tags:        []string{"credits"},
	}, h.Credit.ChargeCredits)

	huma.Register(api, huma.Operation{
		OperationID: "decrementCredits",
		Method:      http.MethodPost,
		Path:        "/credits/me/decrement",
		Summary:     "Decrement messages",
		Description: "Debits the caller, never letting the balance drop below zero",
		Tags:        []string{"credits"},
	}, h.Credit.DecrementCredits)

	// ========== REFERRAL OPERATIONS ==========
	huma.Register(api, huma.Operation{
		OperationID:   "createReferral",
		Method:        http.MethodPost,
		Path:          "/referrals",
		Summary:       "Issue a referral code",
		Description:   "Creates a single-use code and optionally mails it to a friend",
		Tags:          []string{"referrals"},
		DefaultStatus: http.StatusCreated,
	}, h.Referral.CreateReferral)

	huma.Register(api, huma.Operation{
		OperationID: "listReferrals",
		Method:      http.MethodGet,
		Path:        "/referrals",
		Summary:     "List referral codes",
		Description: "Lists the caller's codes, newest first, with aggregate stats",
		Tags:        []string{"referrals"},
	}, h.Referral.ListReferrals)

	huma.Register(api, huma.Operation{
		OperationID: "redeemReferral",
		Method:      http.MethodPost,
		Path:        "/referrals/redeem",
		Summary:     "Redeem a referral code",
		Description: "Consumes a code and credits the bonus to both the issuer and the caller",
		Tags:        []string{"referrals"},
	}, h.Referral.RedeemReferral)

	// ========== PURCHASE OPERATIONS ==========
	huma.Register(api, huma.Operation{
		OperationID: "listCreditPacks",
		Method:      http.MethodGet,
		Path:        "/purchases/packs",
		Summary:     "List credit packs",
		Tags:        []string{"purchases"},
	}, h.Purchase.ListPacks)

	huma.Register(api, huma.Operation{
		OperationID: "listPurchases",
		Method:      http.MethodGet,
		Path:        "/purchases",
		Summary:     "List my purchases",
		Description: "Returns the caller's credited credit pack purchases, newest first",
		Tags:        []string{"purchases"},
	}, h.Purchase.ListPurchases)

	huma.Register(api, huma.Operation{
		OperationID: "createCheckout",
		Method:      http.MethodPost,
		Path:        "/purchases/checkout",
		Summary:     "Start a credit pack checkout",
		Description: "Creates a Stripe Checkout session and returns its URL",
		Tags:        []string{"purchases"},
	}, h.Purchase.CreateCheckout)

	// ========== ADMIN OPERATIONS ==========
	huma.Register(api, huma.Operation{
		OperationID: "grantCredits",
		Method:      http.MethodPost,
		Path:        "/admin/credits/grant",
		Summary:     "Grant messages",
		Description: "Credits a user; requires the X-Admin-Token header",
		Tags:        []string{"admin"},
	}, h.Credit.GrantCredits)

	// ========== SYSTEM OPERATIONS ==========
	huma.Register(api, huma.Operation{
		OperationID:   "recordDLQ",
		Method:        http.MethodPost,
		Path:          "/dlq/record",
		Summary:       "Record DLQ message",
		Description:   "Records a credit event Pub/Sub could not deliver",
		Tags:          []string{"dlq"},
		DefaultStatus: http.StatusNoContent,
	}, h.DLQ.RecordDLQ)

	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Health check",
		Tags:        []string{"system"},
	}, h.Health.Health)

	logger.Info().Msg("All operations registered successfully")
}
